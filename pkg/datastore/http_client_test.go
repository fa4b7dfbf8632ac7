package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admin "github.com/refugehq/crisis-admin/components/admin"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewHTTPClient(HTTPConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestNewHTTPClientRequiresCredentials(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{APIKey: "k"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, admin.ErrConfiguration))

	_, err = NewHTTPClient(HTTPConfig{BaseURL: "https://example.test"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, admin.ErrConfiguration))
}

func TestQueryBuildsFilterParams(t *testing.T) {
	var captured *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]admin.Record{{"id": "1", "severity": "critical"}})
	})

	rows, err := client.Query(context.Background(), admin.Query{
		Collection: admin.CollectionScenarios,
		Filters: []admin.Filter{
			admin.Eq("severity", "critical"),
			admin.GTE("created_at", "2026-06-01T00:00:00Z"),
			admin.NotNull("matched_scenario_id"),
		},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      5,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NotNil(t, captured)
	assert.Equal(t, "/rest/v1/"+admin.CollectionScenarios, captured.URL.Path)
	query := captured.URL.Query()
	assert.Equal(t, "*", query.Get("select"))
	assert.Equal(t, "eq.critical", query.Get("severity"))
	assert.Equal(t, "gte.2026-06-01T00:00:00Z", query.Get("created_at"))
	assert.Equal(t, "not.is.null", query.Get("matched_scenario_id"))
	assert.Equal(t, "created_at.desc", query.Get("order"))
	assert.Equal(t, "5", query.Get("limit"))
	assert.Equal(t, "test-key", captured.Header.Get("apikey"))
	assert.Equal(t, "Bearer test-key", captured.Header.Get("Authorization"))
}

func TestCountUsesExactPreference(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		assert.Equal(t, "0-0", r.Header.Get("Range"))
		assert.Equal(t, "id", r.URL.Query().Get("select"))
		w.Header().Set("Content-Range", "0-0/42")
		w.WriteHeader(http.StatusOK)
	})

	count, err := client.Count(context.Background(), admin.CollectionMessages)
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestCountRejectsUnknownTotal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "*/*")
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.Count(context.Background(), admin.CollectionMessages)
	require.Error(t, err)
	assert.True(t, errors.Is(err, admin.ErrConnectivity))
}

func TestInsertReturnsRepresentation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var payload admin.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Hotline", payload["name"])

		payload["id"] = "res-1"
		payload["created_at"] = "2026-06-15T12:00:00Z"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]admin.Record{payload})
	})

	row, err := client.Insert(context.Background(), admin.CollectionResources, admin.Record{"name": "Hotline"})
	require.NoError(t, err)
	assert.Equal(t, "res-1", row["id"])
}

func TestInsertEmptyRepresentationIsConnectivity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("[]"))
	})

	_, err := client.Insert(context.Background(), admin.CollectionResources, admin.Record{"name": "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, admin.ErrConnectivity))
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.missing", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	})

	err := client.Delete(context.Background(), admin.CollectionScenarios, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, admin.ErrNotFound))
}

func TestDeleteExistingRow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]admin.Record{{"id": "scn-1"}})
	})

	require.NoError(t, client.Delete(context.Background(), admin.CollectionScenarios, "scn-1"))
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		target error
	}{
		{"unauthorized", http.StatusUnauthorized, admin.ErrConfiguration},
		{"forbidden", http.StatusForbidden, admin.ErrConfiguration},
		{"not found", http.StatusNotFound, admin.ErrNotFound},
		{"bad request", http.StatusBadRequest, admin.ErrValidation},
		{"conflict", http.StatusConflict, admin.ErrValidation},
		{"unprocessable", http.StatusUnprocessableEntity, admin.ErrValidation},
		{"server error", http.StatusInternalServerError, admin.ErrConnectivity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := client.Query(context.Background(), admin.Query{Collection: admin.CollectionScenarios})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}

func TestInsertConstraintRejectionIsValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"23514","message":"new row violates check constraint"}`))
	})

	_, err := client.Insert(context.Background(), admin.CollectionScenarios, admin.Record{"severity": "bogus"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, admin.ErrValidation), "got %v", err)
	assert.False(t, errors.Is(err, admin.ErrConnectivity), "a store rejection is not a connectivity failure")
}

func TestNetworkFailureIsConnectivity(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "k"})
	require.NoError(t, err)
	server.Close()

	_, err = client.Query(context.Background(), admin.Query{Collection: admin.CollectionScenarios})
	require.Error(t, err)
	assert.True(t, errors.Is(err, admin.ErrConnectivity))
}
