package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/auth"
	"procurement/config"
	"procurement/handlers"
	"procurement/models"
	"procurement/repository"
	"procurement/routes"
)

type apiFixture struct {
	vendors *repository.MemoryVendorRepo
	users   *repository.MemoryUserRepo
	url     string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	vendors := repository.NewMemoryVendorRepo()
	users := repository.NewMemoryUserRepo()
	items := repository.NewMemoryItemRepo()
	_, err := auth.EnsureAdmin(context.Background(), users, "admin", "admin-pass")
	require.NoError(t, err)

	router := routes.NewRouter(
		routes.Deps{Config: &config.Config{LoginRateLimit: 100}, Logger: logger, Tokens: tokens, Denylist: auth.NoopDenylist{}},
		routes.Handlers{
			Users:   &handlers.UserHandler{Repo: users, Vendors: vendors, Tokens: tokens, Denylist: auth.NoopDenylist{}, Logger: logger},
			Vendors: &handlers.VendorHandler{Repo: vendors, Users: users, Logger: logger},
			Items:   &handlers.ItemHandler{Repo: items, Logger: logger},
			Export:  &handlers.ExportHandler{Repo: vendors, Logger: logger},
		},
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	t.Setenv("VENDORCTL_BASE_URL", srv.URL)
	t.Setenv("VENDORCTL_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
	t.Setenv("VENDORCTL_TOKEN", "")
	return &apiFixture{vendors: vendors, users: users, url: srv.URL}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestLoginListCreateDelete(t *testing.T) {
	api := newAPI(t)

	out, _, err := run(t, "admin-pass\n", "login", "-u", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin (admin)")

	form := strings.Join([]string{
		"V1", "Acme", "", "", "", "", "Pune", "", "",
		"abc", "abc",
		"abcdef", "abcdef",
	}, "\n") + "\n"
	out, errOut, err := run(t, form, "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Password must be at least 6 characters long")
	assert.Contains(t, errOut, "✔ Vendor registered successfully!")
	assert.Regexp(t, `V1\s+Acme\s+-\s+-\s+Pune\s+-`, out)

	page, total, err := api.vendors.ListVendors(context.Background(), models.ListFilters{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	id := page[0].ID

	out, _, err = run(t, "", "list", "--search", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 1")

	out, _, err = run(t, "n\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this vendor?")
	assert.Contains(t, out, "Cancelled")

	out, errOut, err = run(t, "y\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, errOut, "✔ Vendor deleted successfully")
	assert.Contains(t, out, "No vendors found")
}

func TestEditKeepsDefaults(t *testing.T) {
	api := newAPI(t)
	vendor := &models.Vendor{VendorCode: "V1", Name: "Acme", ContactPerson: "Ravi"}
	require.NoError(t, api.vendors.CreateVendor(context.Background(), vendor))

	_, _, err := run(t, "admin-pass\n", "login", "-u", "admin")
	require.NoError(t, err)

	// change only the name; everything else keeps its current value
	input := strings.Repeat("\n", 1) + "Acme Corp\n" + strings.Repeat("\n", 7)
	out, errOut, err := run(t, input, "edit", vendor.ID)
	require.NoError(t, err)
	assert.Contains(t, errOut, "✔ Vendor updated successfully!")
	assert.Regexp(t, `V1\s+Acme Corp\s+Ravi`, out)
}

func TestDeleteWithYesSkipsPrompt(t *testing.T) {
	api := newAPI(t)
	vendor := &models.Vendor{VendorCode: "V1", Name: "Acme"}
	require.NoError(t, api.vendors.CreateVendor(context.Background(), vendor))

	_, _, err := run(t, "admin-pass\n", "login", "-u", "admin")
	require.NoError(t, err)

	out, errOut, err := run(t, "", "delete", "-y", vendor.ID)
	require.NoError(t, err)
	assert.NotContains(t, out, "Are you sure")
	assert.Contains(t, errOut, "✔ Vendor deleted successfully")

	_, err = api.vendors.GetVendor(context.Background(), vendor.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateCancelledByEOF(t *testing.T) {
	api := newAPI(t)
	_, _, err := run(t, "admin-pass\n", "login", "-u", "admin")
	require.NoError(t, err)

	_, _, err = run(t, "V1\nAcme\n", "create")
	require.Error(t, err)

	_, total, err := api.vendors.ListVendors(context.Background(), models.ListFilters{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListWithoutLoginReportsFailure(t *testing.T) {
	newAPI(t)
	out, errOut, err := run(t, "", "list")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "✖ Failed to fetch vendors. Please try again later.")
	assert.Contains(t, out, "Error! Failed to fetch vendors. Please try again later.")
}

func TestLogoutClearsToken(t *testing.T) {
	newAPI(t)
	_, _, err := run(t, "admin-pass\n", "login", "-u", "admin")
	require.NoError(t, err)

	out, _, err := run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, _, err = run(t, "", "list")
	assert.ErrorIs(t, err, errReported)
}
