package kernel_test

import (
	"encoding/json"
	"testing"

	"arenoexpress/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonical = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("accepts the usual spellings", func(t *testing.T) {
		for _, input := range []string{
			canonical,
			"{" + canonical + "}",
			"urn:uuid:" + canonical,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)
			require.NoError(t, err, input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", canonical + "-extra"} {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	raw := uuid.MustParse(canonical)

	id, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.Equal(t, canonical, id.String())
	assert.Equal(t, raw, id.Bytes())

	_, err = kernel.UUIDFromBytes([]byte{0x55, 0x0e})
	require.Error(t, err)

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
}

func TestOptionalUUID(t *testing.T) {
	t.Run("nil column stays unset", func(t *testing.T) {
		id, err := kernel.OptionalUUIDFromBytes(nil)
		require.NoError(t, err)
		assert.Nil(t, id)
		assert.Nil(t, kernel.OptionalBytes(nil))
	})

	t.Run("round trips a set value", func(t *testing.T) {
		original := kernel.NewUUID()

		id, err := kernel.OptionalUUIDFromBytes(kernel.OptionalBytes(&original))
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.True(t, original.IsEqual(*id))
	})
}

func TestUUID_Matches(t *testing.T) {
	driver := kernel.NewUUID()
	other := kernel.NewUUID()

	assert.True(t, driver.Matches(&driver))
	assert.False(t, driver.Matches(&other))
	assert.False(t, driver.Matches(nil))
}

func TestUUID_Validate(t *testing.T) {
	var id kernel.UUID
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
}

func TestUUID_MarshalText(t *testing.T) {
	id, err := kernel.UUIDFromString(canonical)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]kernel.UUID{"id": id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+canonical+`"}`, string(body))
}

func TestUUID_UnmarshalText(t *testing.T) {
	var body struct {
		ID kernel.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"`+canonical+`"}`), &body))
	assert.Equal(t, canonical, body.ID.String())

	require.Error(t, json.Unmarshal([]byte(`{"id":"00000000-0000-0000-0000-000000000000"}`), &body))
}
