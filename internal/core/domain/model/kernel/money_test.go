package kernel_test

import (
	"testing"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := kernel.NewMoney(5000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), m.Cents())
	assert.Equal(t, "50.00", m.String())
	assert.False(t, m.IsZero())

	_, err = kernel.NewMoney(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		cents   int64
		wantErr error
	}{
		{input: "50.00", cents: 5000},
		{input: "50", cents: 5000},
		{input: "50.5", cents: 5050},
		{input: "0.07", cents: 7},
		{input: " 12.34 ", cents: 1234},
		{input: "", wantErr: errs.ErrValueIsRequired},
		{input: "abc", wantErr: errs.ErrValueIsInvalid},
		{input: "1.234", wantErr: errs.ErrValueIsInvalid},
		{input: "1.", wantErr: errs.ErrValueIsInvalid},
		{input: "1.-5", wantErr: errs.ErrValueIsInvalid},
		{input: "-3.00", wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := kernel.ParseMoney(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, m.Cents())
		})
	}
}

func TestMoney_MarshalText(t *testing.T) {
	m, _ := kernel.NewMoney(105)
	text, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.05", string(text))
}

func TestMoney_UnmarshalText(t *testing.T) {
	var m kernel.Money
	require.NoError(t, m.UnmarshalText([]byte("12.5")))
	assert.Equal(t, int64(1250), m.Cents())

	require.ErrorIs(t, m.UnmarshalText([]byte("-1")), errs.ErrValueIsOutOfRange)
}
