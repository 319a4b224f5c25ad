package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestServer wraps httptest.Server with a client that keeps cookies, so
// session state carries across requests.
type TestServer struct {
	*httptest.Server
	t      *testing.T
	client *http.Client
}

func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	server := httptest.NewServer(handler)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &TestServer{
		Server: server,
		t:      t,
		client: &http.Client{Jar: jar},
	}
}

func (ts *TestServer) GET(path string) *http.Response {
	resp, err := ts.client.Get(ts.URL + path)
	require.NoError(ts.t, err)
	return resp
}

func (ts *TestServer) Do(method, path string, header http.Header) *http.Response {
	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(ts.t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := ts.client.Do(req)
	require.NoError(ts.t, err)
	return resp
}

func AssertJSONResponse(t *testing.T, resp *http.Response, expectedStatus int, target interface{}) {
	require.Equal(t, expectedStatus, resp.StatusCode)

	if target != nil {
		defer resp.Body.Close()
		err := json.NewDecoder(resp.Body).Decode(target)
		require.NoError(t, err)
	}
}

// AssertTextResponse checks a plain-text response, as written by http.Error.
func AssertTextResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedBody string) {
	require.Equal(t, expectedStatus, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, expectedBody, strings.TrimSpace(string(body)))
}

// ReadBody drains and closes resp.Body.
func ReadBody(t *testing.T, resp *http.Response) string {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
