package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"03001234567", true},
		{"+923001234567", true},
		{"+1 (555) 123-4567", true},
		{"555-123-4567", true},
		{"12345", false},
		{"not-a-number", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePhone(tt.phone))
		})
	}
}

func TestValidateLicensePlate(t *testing.T) {
	tests := []struct {
		plate string
		valid bool
	}{
		{"ABC-123", true},
		{"abc 123", true},
		{"  LEA-9921  ", true},
		{"A", false},
		{"", false},
		{"PLATE#WITH$SYMBOLS", false},
	}

	for _, tt := range tests {
		t.Run(tt.plate, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateLicensePlate(tt.plate))
		})
	}
}

func TestValidateVIN(t *testing.T) {
	tests := []struct {
		vin   string
		valid bool
	}{
		{"1HGBH41JXMN109186", true},
		{"1hgbh41jxmn109186", true},
		{"1HGBH41JXMN10918", false},   // 16 chars
		{"IHGBH41JXMN109186", false},  // contains I
		{"OHGBH41JXMN109186", false},  // contains O
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.vin, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateVIN(tt.vin))
		})
	}
}

func TestValidateSKU(t *testing.T) {
	tests := []struct {
		sku   string
		valid bool
	}{
		{"WAX-500", true},
		{"mf_towel_12", true},
		{"A1", true},
		{"X", false},
		{"", false},
		{"SKU WITH SPACES", false},
	}

	for _, tt := range tests {
		t.Run(tt.sku, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateSKU(tt.sku))
		})
	}
}
