package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFiltersNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListFilters
		want ListFilters
	}{
		{"defaults", ListFilters{}, ListFilters{Page: DefaultPage, Limit: DefaultLimit}},
		{"clamps limit", ListFilters{Page: 3, Limit: 500}, ListFilters{Page: 3, Limit: MaxLimit}},
		{"negative page", ListFilters{Page: -2, Limit: 5, Search: "x"}, ListFilters{Page: 1, Limit: 5, Search: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestOffsetAndTotalPages(t *testing.T) {
	assert.Equal(t, int64(10), ListFilters{Page: 3, Limit: 5}.Offset())
	assert.Equal(t, 1, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 1, TotalPages(10, 0))
}

func TestVendorCityState(t *testing.T) {
	v := Vendor{Name: "Acme"}
	assert.Equal(t, "-", v.City())
	assert.Equal(t, "-", v.State())

	v.Address = &Address{City: "Pune"}
	assert.Equal(t, "Pune", v.City())
	assert.Equal(t, "-", v.State())
}
