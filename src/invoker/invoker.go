// Package invoker performs single parameterized calls against catalog
// endpoints: required-parameter validation, {param} path substitution, query
// encoding, and JSON decoding of the response body, returned unmodified.
package invoker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/open-camara/mcp-camara/src/catalog"
	"github.com/open-camara/mcp-camara/src/json"
)

// Invoker issues calls against a single remote API base URL.
type Invoker struct {
	baseURL string
	client  *http.Client
	logger  func(format string, args ...interface{})
}

// New constructs an Invoker. A nil client gets a bounded default timeout.
func New(baseURL string, client *http.Client, logger func(format string, args ...interface{})) *Invoker {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	return &Invoker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Call performs exactly one request against the endpoint with the given
// arguments and returns the decoded response body unmodified. Required
// parameters are checked before any network I/O.
func (inv *Invoker) Call(ctx context.Context, ep catalog.Endpoint, args map[string]any) (any, error) {
	if missing := missingRequired(ep, args); len(missing) > 0 {
		return nil, &MissingParameterError{Endpoint: ep.Key(), Missing: missing}
	}

	// Work on a copy so path substitution does not eat the caller's map.
	remaining := make(map[string]any, len(args))
	for k, v := range args {
		remaining[k] = v
	}

	path := ep.Path
	for key, val := range args {
		placeholder := "{" + key + "}"
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(cast.ToString(val)))
			delete(remaining, key)
		}
	}

	u, err := url.Parse(inv.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("building URL for %s: %w", ep.Key(), err)
	}
	q := u.Query()
	for k, v := range remaining {
		q.Set(k, cast.ToString(v))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, ep.Method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", ep.Key(), err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	inv.logger("calling %s %s", ep.Method, u.String())
	resp, err := inv.client.Do(req)
	if err != nil {
		return nil, &RemoteError{Endpoint: ep.Key(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &RemoteError{
			Endpoint: ep.Key(),
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	var result any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &DecodeError{Endpoint: ep.Key(), Err: err}
	}
	return result, nil
}

func missingRequired(ep catalog.Endpoint, args map[string]any) []string {
	var missing []string
	for _, p := range ep.Parameters {
		if !p.Required {
			continue
		}
		if v, ok := args[p.Name]; !ok || v == nil {
			missing = append(missing, p.Name)
		}
	}
	return missing
}
