package kernel_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain label", input: "Nairobi hub", want: "Nairobi hub"},
		{name: "trims whitespace", input: "  Mombasa depot\n", want: "Mombasa depot"},
		{name: "empty is allowed", input: "", want: ""},
		{name: "max length", input: strings.Repeat("x", kernel.LocationMaxLength), want: strings.Repeat("x", kernel.LocationMaxLength)},
		{name: "too long", input: strings.Repeat("x", kernel.LocationMaxLength+1), wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.String())
			assert.Equal(t, tt.want == "", loc.IsEmpty())
		})
	}
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation("Hub A")
	b, _ := kernel.NewLocation(" Hub A ")
	c, _ := kernel.NewLocation("Hub C")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.True(t, kernel.EmptyLocation().IsEmpty())
}
