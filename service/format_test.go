package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, int64(3), RoundHalfUp(2.5))
	assert.Equal(t, int64(2), RoundHalfUp(2.4999))
	assert.Equal(t, int64(-3), RoundHalfUp(-2.5))
	assert.Equal(t, int64(19566), RoundHalfUp(19566.148218728675))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{99999.5, "₹1,00,000"},
		{1173968.89, "₹11,73,969"},
		{10_000_000, "₹1,00,00,000"},
		{123456789, "₹12,34,56,789"},
		{-1500, "-₹1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.value))
		})
	}
}

func TestFormatRateAndTerm(t *testing.T) {
	assert.Equal(t, "6.5%", FormatRate(6.5))
	assert.Equal(t, "20%", FormatRate(20))
	assert.Equal(t, "1 year", FormatTerm(1))
	assert.Equal(t, "30 years", FormatTerm(30))
}
