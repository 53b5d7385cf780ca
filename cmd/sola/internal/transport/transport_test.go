package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sola-app/sola/pkg/api"
)

func TestCallDecodesPayload(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "/api/xpstate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.XPState{TotalXP: 120, Level: 2, XPInLevel: 20, XPForNext: 200, Streak: 3})
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})

	var xp api.XPState
	ok, err := client.Call(context.Background(), http.MethodGet, "/api/xpstate", nil, &xp)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 120, xp.TotalXP)
	assert.Equal(t, 3, xp.Streak)
	assert.NotEmpty(t, gotRequestID, "every request carries an X-Request-ID")
}

func TestCallEncodesBody(t *testing.T) {
	var received api.MoodUpsert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})

	ok, err := client.Call(context.Background(), http.MethodPost, "/api/mood", api.MoodUpsert{Date: "2024-05-01", Rating: 4}, nil)
	require.NoError(t, err)
	assert.False(t, ok, "204 is an explicitly-empty success")
	assert.Equal(t, api.MoodUpsert{Date: "2024-05-01", Rating: 4}, received)
}

func TestCallReportsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no mood for this day", http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})

	ok, err := client.Call(context.Background(), http.MethodGet, "/api/mood/2024-05-01", nil, &api.Mood{})
	assert.False(t, ok)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusInternalServerError))
}

func TestCallRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})

	var xp api.XPState
	ok, err := client.Call(context.Background(), http.MethodGet, "/api/xpstate", nil, &xp)
	assert.False(t, ok)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestCallNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := New(Config{BaseURL: srv.URL})

	ok, err := client.Call(context.Background(), http.MethodGet, "/api/xpstate", nil, nil)
	assert.False(t, ok)
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se), "network failures are not status errors")
}
