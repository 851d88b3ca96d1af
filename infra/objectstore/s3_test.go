package objectstore

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type putRecord struct {
	path        string
	contentType string
	body        []byte
}

// mockRoundTripper accepts PUT requests and records them.
type mockRoundTripper struct {
	mu     sync.Mutex
	puts   []putRecord
	status int
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	if req.Method == http.MethodPut {
		m.mu.Lock()
		m.puts = append(m.puts, putRecord{path: req.URL.Path, contentType: req.Header.Get("Content-Type"), body: body})
		m.mu.Unlock()
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Header:     http.Header{"ETag": {"\"etag\""}},
		Request:    req,
	}, nil
}

func newMockStore(t *testing.T, rt http.RoundTripper, prefix string) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{
		Bucket:          "grids",
		Region:          "eu-west-1",
		Endpoint:        "https://mock.s3.local",
		Prefix:          prefix,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
	}, WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)
	return s
}

func TestStorePut(t *testing.T) {
	rt := &mockRoundTripper{}
	s := newMockStore(t, rt, "/exports/")

	key, err := s.Put(context.Background(), "run-1", "csv", "text/csv", []byte("day,period,tutor,student,subject\n"))
	require.NoError(t, err)
	assert.Equal(t, "exports/run-1.csv", key)

	require.Len(t, rt.puts, 1)
	assert.Equal(t, "/grids/exports/run-1.csv", rt.puts[0].path)
	assert.Equal(t, "text/csv", rt.puts[0].contentType)
	assert.True(t, strings.Contains(string(rt.puts[0].body), "day,period,tutor"))
}

func TestStoreKeyWithoutPrefix(t *testing.T) {
	s := newMockStore(t, &mockRoundTripper{}, "")
	assert.Equal(t, "run-2.json", s.Key("run-2", ".json"))
}

func TestStorePutError(t *testing.T) {
	rt := &mockRoundTripper{status: http.StatusForbidden}
	s := newMockStore(t, rt, "")
	_, err := s.Put(context.Background(), "run-3", "json", "application/json", []byte("{}"))
	assert.Error(t, err)
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
	assert.False(t, Config{}.Enabled())
}
