package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reportgen/reportgen/core"
)

func newTestServer(t *testing.T, status int, body string, check func(*http.Request)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if check != nil {
			check(req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWeb_Extract(t *testing.T) {
	type testCase struct {
		name        string
		status      int
		body        string
		dataKey     string
		expected    []core.Record
		expectedErr error
	}

	testCases := []testCase{
		{
			name:    "list under data key",
			status:  http.StatusOK,
			body:    `{"products": [{"id": 1, "name": "A"}, {"name": "B", "id": 2}]}`,
			dataKey: "products",
			expected: []core.Record{
				core.NewRecord("id", json.Number("1"), "name", "A"),
				core.NewRecord("name", "B", "id", json.Number("2")),
			},
		},
		{
			name:     "empty list",
			status:   http.StatusOK,
			body:     `{"products": []}`,
			dataKey:  "products",
			expected: []core.Record{},
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			body:        `{}`,
			dataKey:     "products",
			expectedErr: core.ErrNetwork,
		},
		{
			name:        "undecodable body",
			status:      http.StatusOK,
			body:        `<html>`,
			dataKey:     "products",
			expectedErr: core.ErrParse,
		},
		{
			name:        "value is not a list",
			status:      http.StatusOK,
			body:        `{"products": {"id": 1}}`,
			dataKey:     "products",
			expectedErr: core.ErrInvalidResponseShape,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			srv := newTestServer(t, tc.status, tc.body, nil)

			e, err := NewWeb().Connect(&core.SourceParams{Type: "web", Location: srv.URL, DataKey: tc.dataKey})
			r.NoError(err)

			records, err := e.Extract(context.Background())
			if tc.expectedErr != nil {
				r.ErrorIs(err, tc.expectedErr)
				return
			}
			r.NoError(err)
			r.Equal(tc.expected, records)
		})
	}
}

func TestWeb_Auth(t *testing.T) {
	type testCase struct {
		name   string
		creds  map[string]string
		header string
		value  string
	}

	testCases := []testCase{
		{name: "bearer", creds: map[string]string{"token": "abc"}, header: "Authorization", value: "Bearer abc"},
		{name: "basic", creds: map[string]string{"username": "u", "password": "p"}, header: "Authorization", value: "Basic dTpw"},
		{name: "api key", creds: map[string]string{"api_key": "k"}, header: "X-API-Key", value: "k"},
		{name: "api key custom header", creds: map[string]string{"api_key": "k", "api_key_header": "X-Token"}, header: "X-Token", value: "k"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			var got string
			srv := newTestServer(t, http.StatusOK, `[]`, func(req *http.Request) {
				got = req.Header.Get(tc.header)
			})

			e, err := NewWeb().Connect(&core.SourceParams{Type: "web", Location: srv.URL, Credentials: tc.creds})
			r.NoError(err)

			_, err = e.Extract(context.Background())
			r.NoError(err)
			r.Equal(tc.value, got)
		})
	}
}

func TestWeb_ConnectAndCancel(t *testing.T) {
	r := require.New(t)

	_, err := NewWeb().Connect(&core.SourceParams{Type: "web", Location: "ftp://example.com/data"})
	r.Error(err)

	_, err = NewWeb().Connect(&core.SourceParams{Type: "web", Location: "http://[::1"})
	r.Error(err)

	srv := newTestServer(t, http.StatusOK, `[]`, nil)
	e, err := NewWeb().Connect(&core.SourceParams{Type: "web", Location: srv.URL})
	r.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Extract(ctx)
	r.ErrorIs(err, context.Canceled)

	// closed server is a transport failure
	srv.Close()
	_, err = e.Extract(context.Background())
	r.ErrorIs(err, core.ErrNetwork)
}
