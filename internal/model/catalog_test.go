package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ParseClass(t *testing.T) {
	cat := DefaultCatalog()

	for name, want := range map[string]TravelClass{
		"first":      ClassFirst,
		"Business":   ClassBusiness,
		" ECONOMY  ": ClassEconomy,
	} {
		got, err := cat.ParseClass(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := cat.ParseClass("premium")
	require.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, cat.IsClass("premium"))
	assert.True(t, cat.IsClass("First"))
}

func TestCatalog_ParseSeatType(t *testing.T) {
	cat := DefaultCatalog()

	tests := []struct {
		in   string
		want SeatType
	}{
		{"window", SeatWindow},
		{"W", SeatWindow},
		{"aisle", SeatAisle},
		{"a", SeatAisle},
		{"none", SeatOther},
		{"any", SeatOther},
		{"", SeatOther},
	}
	for _, tt := range tests {
		got, err := cat.ParseSeatType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := cat.ParseSeatType("middle-ish")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCatalog_Names(t *testing.T) {
	cat := DefaultCatalog()

	assert.Equal(t, "economy", cat.ClassName(ClassEconomy))
	assert.Equal(t, "W", cat.SeatTypeCode(SeatWindow))
	assert.Equal(t, "A", cat.SeatTypeCode(SeatAisle))
	assert.Equal(t, "", cat.SeatTypeCode(SeatOther))
	assert.Equal(t, "none", cat.SeatTypeName(SeatOther))
	assert.Equal(t, []TravelClass{ClassFirst, ClassBusiness, ClassEconomy}, cat.Classes())
	assert.Equal(t, "business", ClassBusiness.String())
	assert.Same(t, cat, DefaultCatalog())
}
