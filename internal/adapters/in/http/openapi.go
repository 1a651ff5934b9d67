package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// APIDoc is the loaded and validated OpenAPI document of the API.
type APIDoc struct {
	doc    *openapi3.T
	router routers.Router
	json   string
}

// LoadAPIDoc parses the embedded document and checks it is a valid
// OpenAPI 3 description.
func LoadAPIDoc(ctx context.Context) (*APIDoc, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return &APIDoc{doc: doc, router: router, json: string(raw)}, nil
}

// ReadDoc returns the document as JSON for the swagger UI.
func (d *APIDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// mountDocs serves the document at /openapi.json and the swagger UI under
// /swagger/. The swag registry is process wide so only the first document
// registered is served by the UI.
func (d *APIDoc) mountDocs(e *echo.Echo) {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, d)
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(d.json))
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// validateRequests rejects request bodies that do not match the document.
// Requests without a body and routes the document does not describe pass
// through to the handlers, which apply the domain validation.
func (d *APIDoc) validateRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Method != http.MethodPost && req.Method != http.MethodPatch {
			return next(c)
		}
		route, pathParams, err := d.router.FindRoute(req)
		if err != nil {
			return next(c)
		}
		err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		})
		if err != nil {
			return badRequest(c, requestValidationMessage(err))
		}
		return next(c)
	}
}

func requestValidationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("parameter %q: %s", reqErr.Parameter.Name, reqErr.Reason)
		}
		if reqErr.Err != nil {
			return "request body: " + reqErr.Err.Error()
		}
		return reqErr.Reason
	}
	return err.Error()
}
