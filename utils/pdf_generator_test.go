package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/models"
)

func TestVendorDirectoryHTML(t *testing.T) {
	vendors := []models.Vendor{
		{VendorCode: "V1", Name: "Acme & Sons", Address: &models.Address{City: "Pune", State: "MH"}},
		{VendorCode: "V2", Name: "Globex"},
	}
	html, err := VendorDirectoryHTML(vendors, time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "02-Jan-2026 15:04")
	assert.Contains(t, html, "2 vendors")
	assert.Contains(t, html, "Acme &amp; Sons")
	assert.Contains(t, html, "<td>Pune</td>")
	assert.Contains(t, html, "<td>-</td>")
	assert.Contains(t, html, "width: 100%;")
}

func TestVendorDirectoryHTMLEmpty(t *testing.T) {
	html, err := VendorDirectoryHTML(nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, html, "No vendors found")
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/vendors%20list.pdf", PublicURL("https://cdn.example.com/", "vendors list.pdf"))
}
