package ifconfig

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	exists    bool
	tree      map[string]any
	templates map[string]map[string]any
	err       error
}

func (f *fakeClient) NodeExists(ctx context.Context, path []string) (bool, error) {
	return f.exists, f.err
}

func (f *fakeClient) TreeGet(ctx context.Context, path []string) (map[string]any, error) {
	return f.tree, nil
}

func (f *fakeClient) TemplateGet(ctx context.Context, path []string) (map[string]any, error) {
	return f.templates[path[len(path)-1]], nil
}

func dialer(c ConfigClient) DialFunc {
	return func(ctx context.Context) (ConfigClient, error) { return c, nil }
}

func sampleTree() map[string]any {
	return map[string]any{
		"interfaces": map[string]any{
			"dataplane": []any{
				map[string]any{"tagnode": "dp0xe0", "mtu": 1500.0},
				map[string]any{"tagnode": "dp0xe1"},
				map[string]any{"tagnode": ""},
			},
			"loopback": []any{
				map[string]any{"tagnode": "lo"},
			},
			"bonding": []any{
				map[string]any{"tagnode": "dp0bond0"},
			},
		},
	}
}

func TestGetInterfaceConfig(t *testing.T) {
	client := &fakeClient{
		exists: true,
		tree:   sampleTree(),
		templates: map[string]map[string]any{
			"dataplane": {"key": "tagnode"},
			"loopback":  {"key": "tagnode"},
			"bonding":   {},
		},
	}

	result, err := GetInterfaceConfig(context.Background(), dialer(client))
	require.NoError(t, err)
	assert.Equal(t, map[string]IfConfig{
		"dp0xe0": {Type: "dataplane", Key: "tagnode"},
		"dp0xe1": {Type: "dataplane", Key: "tagnode"},
		"lo":     {Type: "loopback", Key: "tagnode"},
	}, result)
}

func TestGetInterfaceConfigEmpty(t *testing.T) {
	client := &fakeClient{exists: true, tree: map[string]any{"interfaces": map[string]any{}}}
	result, err := GetInterfaceConfig(context.Background(), dialer(client))
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestGetInterfaceConfigUnavailable(t *testing.T) {
	failing := func(ctx context.Context) (ConfigClient, error) {
		return nil, errors.New("connection refused")
	}
	_, err := GetInterfaceConfig(context.Background(), failing)
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = GetInterfaceConfig(context.Background(), dialer(&fakeClient{exists: false}))
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = GetInterfaceConfig(context.Background(), dialer(&fakeClient{err: errors.New("boom")}))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func newConfigd(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /exists/interfaces", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"exists": true}`))
	})
	mux.HandleFunc("GET /tree/interfaces", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"interfaces": {"dataplane": [{"tagnode": "dp0s3"}], "vti": [{"tagnode": "vti0"}]}}`))
	})
	mux.HandleFunc("GET /template/interfaces/{type}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key": "tagnode"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient(t *testing.T) {
	srv := newConfigd(t)

	result, err := GetInterfaceConfig(context.Background(), HTTPDialer(srv.URL+"/", time.Second))
	require.NoError(t, err)
	assert.Equal(t, map[string]IfConfig{
		"dp0s3": {Type: "dataplane", Key: "tagnode"},
		"vti0":  {Type: "vti", Key: "tagnode"},
	}, result)
}

func TestHTTPClientErrors(t *testing.T) {
	srv := newConfigd(t)
	c := NewHTTPClient(srv.URL, 0)

	_, err := c.TreeGet(context.Background(), []string{"protocols"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	srv.Close()
	_, err = GetInterfaceConfig(context.Background(), HTTPDialer(srv.URL, time.Second))
	assert.True(t, errors.Is(err, ErrUnavailable))
}
