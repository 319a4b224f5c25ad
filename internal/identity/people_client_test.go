package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addrgen/internal/config"
	"addrgen/models"
)

func testPeopleClient(t *testing.T, handler http.Handler) *PeopleClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPeopleClient(config.PeopleConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func personPayload(first, last, gender string) map[string]any {
	return map[string]any{
		"results": []map[string]any{{
			"gender": gender,
			"name":   map[string]any{"title": "Mx", "first": first, "last": last},
			"nat":    "US",
		}},
		"info": map[string]any{"seed": "abc", "results": 1, "page": 1, "version": "1.4"},
	}
}

func TestRandomPerson_RequestAndDecode(t *testing.T) {
	faker := gofakeit.New(42)
	first, last := faker.FirstName(), faker.LastName()

	c := testPeopleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/", r.URL.Path)
		assert.Equal(t, "gb", r.URL.Query().Get("nat"))
		assert.Equal(t, "female", r.URL.Query().Get("gender"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(personPayload(first, last, "female"))
	}))

	p, err := c.RandomPerson(context.Background(), "gb", models.GenderFemale)
	require.NoError(t, err)
	assert.Equal(t, first, p.First)
	assert.Equal(t, last, p.Last)
	assert.Equal(t, "female", p.Gender)
}

func TestRandomPerson_NoFilters(t *testing.T) {
	c := testPeopleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		json.NewEncoder(w).Encode(personPayload("a", "b", "male"))
	}))

	_, err := c.RandomPerson(context.Background(), "", models.GenderUnknown)
	assert.NoError(t, err)
}

func TestRandomPerson_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			check: func(t *testing.T, err error) {
				var he *HTTPError
				require.True(t, errors.As(err, &he))
				assert.Equal(t, http.StatusServiceUnavailable, he.StatusCode)
			},
		},
		{
			name: "error payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"error": "Uh oh, something has gone wrong."})
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "something has gone wrong")
			},
		},
		{
			name: "empty results",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoResults)
			},
		},
		{
			name: "garbage",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("<html>"))
			},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "unmarshal")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testPeopleClient(t, tt.handler)
			_, err := c.RandomPerson(context.Background(), "us", models.GenderMale)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestHTTPError_Message(t *testing.T) {
	err := &HTTPError{StatusCode: 502, Message: "Bad Gateway"}
	assert.Equal(t, "randomuser: Bad Gateway (status 502)", err.Error())
}
