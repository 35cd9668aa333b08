package ifconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient talks to configd's REST surface:
//
//	GET {base}/status
//	GET {base}/exists/{path...}   -> {"exists": bool}
//	GET {base}/tree/{path...}     -> JSON object
//	GET {base}/template/{path...} -> JSON object
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// HTTPDialer returns a DialFunc that probes the status endpoint before
// handing out a client.
func HTTPDialer(baseURL string, timeout time.Duration) DialFunc {
	return func(ctx context.Context) (ConfigClient, error) {
		c := NewHTTPClient(baseURL, timeout)
		if err := c.get(ctx, "status", nil, nil); err != nil {
			return nil, err
		}
		return c, nil
	}
}

func (c *HTTPClient) NodeExists(ctx context.Context, path []string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.get(ctx, "exists", path, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *HTTPClient) TreeGet(ctx context.Context, path []string) (map[string]any, error) {
	var tree map[string]any
	if err := c.get(ctx, "tree", path, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (c *HTTPClient) TemplateGet(ctx context.Context, path []string) (map[string]any, error) {
	var tmpl map[string]any
	if err := c.get(ctx, "template", path, &tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (c *HTTPClient) get(ctx context.Context, op string, path []string, out any) error {
	segments := make([]string, 0, len(path)+1)
	segments = append(segments, op)
	for _, p := range path {
		segments = append(segments, url.PathEscape(p))
	}
	endpoint := c.baseURL + "/" + strings.Join(segments, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request %s: HTTP %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
