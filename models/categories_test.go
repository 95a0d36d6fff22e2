// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Roofing", "roofing"},
		{"Painting / Painters", "painting__painters"},
		{"Tree Service / Arborist", "tree_service__arborist"},
		{"  Pressure   Washing  ", "_pressure_washing_"},
		{"Tile & Grout", "tile__grout"},
		{"ALL CAPS", "all_caps"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryKey(tt.name), "CategoryKey(%q)", tt.name)
	}
}

func TestCategoryKeyIdempotent(t *testing.T) {
	for _, name := range AdditionalCategories {
		key := CategoryKey(name)
		assert.Equal(t, key, CategoryKey(key), "key must be stable under re-normalization")
	}
}

func TestCategoryByID(t *testing.T) {
	c, ok := CategoryByID("hvac")
	assert.True(t, ok)
	assert.Equal(t, "HVAC / Air Conditioning", c.Title)
	assert.Len(t, c.Vendors, 5)

	_, ok = CategoryByID("bogus")
	assert.False(t, ok)
}

func TestRegistryShape(t *testing.T) {
	assert.Len(t, VendorCategories, 8)
	assert.GreaterOrEqual(t, len(VendorCategories), SurveyedCategories)

	seen := map[string]bool{}
	for _, c := range VendorCategories {
		assert.False(t, seen[c.ID], "duplicate category id %q", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Vendors)
	}
}
