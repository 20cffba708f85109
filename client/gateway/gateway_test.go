package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/models"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

type brokenToken struct{}

func (brokenToken) Token() (string, error) { return "", errors.New("permission denied") }

func TestListVendorsSendsQueryAndBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/vendors", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "acme co", r.URL.Query().Get("search"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vendors":[{"_id":"1","vendorCode":"V1","name":"Acme"}],"totalPages":3}`))
	}))
	defer server.Close()

	client := New(server.URL+"/", staticToken("tok"))
	page, err := client.ListVendors(context.Background(), Query{Page: 2, Limit: 5, Search: "acme co"})
	require.NoError(t, err)
	require.Len(t, page.Vendors, 1)
	assert.Equal(t, "Acme", page.Vendors[0].Name)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListVendorsDefaultsMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	page, err := New(server.URL, staticToken("")).ListVendors(context.Background(), Query{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Vendors)
	assert.NotNil(t, page.Vendors)
	assert.Equal(t, 1, page.TotalPages)
}

func TestEmptyTokenIsStillSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Unauthorized"}`))
	}))
	defer server.Close()

	err := New(server.URL, staticToken("")).DeleteVendor(context.Background(), "42")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.Unauthorized())
	assert.Equal(t, "Unauthorized", reqErr.Message)
}

func TestUpdateVendorPassesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/vendors/abc", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body models.Vendor
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "V1", body.VendorCode)

		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Vendor code already exists"}`))
	}))
	defer server.Close()

	err := New(server.URL, staticToken("tok")).UpdateVendor(context.Background(), "abc", models.Vendor{VendorCode: "V1", Name: "Acme"})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindServer, reqErr.Kind)
	assert.True(t, reqErr.Conflict())
	assert.Equal(t, "Vendor code already exists", ServerMessage(err))
}

func TestRegisterVendorFlattensPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/vendor-register", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme", body["name"])
		assert.Equal(t, "V1", body["vendorCode"])
		assert.Equal(t, "abcdef", body["password"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Vendor registered successfully"}`))
	}))
	defer server.Close()

	err := New(server.URL, staticToken("tok")).RegisterVendor(context.Background(), models.VendorRegistration{
		Vendor:   models.Vendor{Name: "Acme", VendorCode: "V1"},
		Password: "abcdef",
	})
	require.NoError(t, err)
}

func TestServerErrorWithoutBody(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := New(server.URL, staticToken("tok")).DeleteVendor(context.Background(), "42")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Empty(t, reqErr.Message)
	assert.Contains(t, err.Error(), "Internal Server Error")
	assert.EqualValues(t, 1, calls.Load(), "no retries")
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(url, staticToken("tok"), WithTimeout(time.Second)).ListVendors(context.Background(), Query{Page: 1, Limit: 5})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindNetwork, reqErr.Kind)
	assert.Empty(t, ServerMessage(err))
}

func TestTokenSourceFailure(t *testing.T) {
	err := New("http://127.0.0.1:1", brokenToken{}).DeleteVendor(context.Background(), "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestLoginAndListItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "admin", creds["username"])
			_, _ = w.Write([]byte(`{"success":true,"data":{"token":"jwt","user":{"username":"admin","role":"admin"}}}`))
		case "/items":
			_, _ = w.Write([]byte(`{"items":[{"_id":"i1","ItemCode":"I-1","ItemName":"Rod","IGST_Rate":18}],"totalPages":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := New(server.URL, staticToken(""))
	res, err := client.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, models.RoleAdmin, res.User.Role)

	items, err := client.ListItems(context.Background(), Query{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items.Items, 1)
	require.NotNil(t, items.Items[0].IGST_Rate)
	assert.InDelta(t, 18, *items.Items[0].IGST_Rate, 0.001)
}

func TestGetVendorNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vendors/missing", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Vendor not found"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, staticToken("tok")).GetVendor(context.Background(), "missing")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.NotFound())
	assert.Equal(t, "Vendor not found", reqErr.Message)
}
