package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TestContext drives the API as a black box and keeps the last response
// around for assertions. One instance per scenario.
type TestContext struct {
	baseURL    string
	providerID string
	client     *http.Client

	lastStatus int
	lastBody   []byte
	lastJSON   any
}

// NewTestContext targets a running server. The portal stub should back the
// server so scenarios stay deterministic and offline.
func NewTestContext(baseURL, providerID string) *TestContext {
	return &TestContext{
		baseURL:    strings.TrimRight(baseURL, "/"),
		providerID: providerID,
		client:     &http.Client{Timeout: 2 * time.Minute},
	}
}

// ProviderID returns the seeded provider id scenarios tagged @provider run
// against.
func (tc *TestContext) ProviderID() string { return tc.providerID }

// GET performs a request and captures the response.
func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

// POST performs a request with an empty body and captures the response.
func (tc *TestContext) POST(path string) error {
	return tc.do(http.MethodPost, path, bytes.NewReader(nil))
}

func (tc *TestContext) do(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.baseURL+path, body)
	if err != nil {
		return err
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	tc.lastStatus = resp.StatusCode
	tc.lastBody = raw
	tc.lastJSON = nil
	if len(raw) > 0 {
		// Non-JSON bodies are kept raw; Field then reports the parse
		// problem instead of the request failing here.
		_ = json.Unmarshal(raw, &tc.lastJSON)
	}
	return nil
}

// Status returns the last response status code.
func (tc *TestContext) Status() int { return tc.lastStatus }

// Field resolves a dotted path into the last JSON response, with numeric
// segments indexing arrays: "records.0.status".
func (tc *TestContext) Field(path string) (any, error) {
	if tc.lastJSON == nil {
		return nil, fmt.Errorf("last response was not JSON: %.120s", tc.lastBody)
	}

	current := tc.lastJSON
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q: key %q missing", path, segment)
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("field %q: %q is not an array index", path, segment)
			}
			if idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("field %q: index %d out of range (len %d)", path, idx, len(node))
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("field %q: cannot descend into %T at %q", path, current, segment)
		}
	}
	return current, nil
}
