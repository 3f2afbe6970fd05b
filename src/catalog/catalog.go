// Package catalog loads the Câmara dos Deputados OpenAPI document and turns
// it into an in-memory endpoint catalog: one entry per path+method, each with
// its declared query and path parameters.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/open-camara/mcp-camara/src/json"
)

// Parameter is one declared parameter of an endpoint.
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Type        string `json:"type"`
	Format      string `json:"format,omitempty"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// Endpoint is a single remote operation reachable by path and method.
type Endpoint struct {
	Path        string      `json:"path"`
	Method      string      `json:"method"`
	Description string      `json:"description,omitempty"`
	Parameters  []Parameter `json:"parameters"`
}

// Key identifies the endpoint inside the catalog.
func (e Endpoint) Key() string {
	return e.Method + " " + e.Path
}

// UnknownEndpointError reports a lookup for an endpoint the catalog does not
// contain. It is raised before any network call.
type UnknownEndpointError struct {
	Method string
	Path   string
}

func (e *UnknownEndpointError) Error() string {
	return fmt.Sprintf("unknown endpoint %s %s", e.Method, e.Path)
}

// Catalog is the parsed endpoint list plus a lookup index.
type Catalog struct {
	Endpoints []Endpoint
	index     map[string]int
}

// New builds a catalog from parsed endpoints.
func New(endpoints []Endpoint) *Catalog {
	idx := make(map[string]int, len(endpoints))
	for i, e := range endpoints {
		idx[e.Key()] = i
	}
	return &Catalog{Endpoints: endpoints, index: idx}
}

// Lookup returns the endpoint registered for method+path.
func (c *Catalog) Lookup(method, path string) (Endpoint, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	i, ok := c.index[m+" "+path]
	if !ok {
		return Endpoint{}, &UnknownEndpointError{Method: m, Path: path}
	}
	return c.Endpoints[i], nil
}

// LoadSpec fetches the OpenAPI document at url, decoding it first as JSON and
// falling back to YAML. The YAML branch round-trips through JSON so nested
// values end up as map[string]interface{} either way.
func LoadSpec(ctx context.Context, client *http.Client, url string) (map[string]interface{}, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spec from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected HTTP status fetching spec: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading spec body: %w", err)
	}

	var spec map[string]interface{}
	if err := json.Unmarshal(body, &spec); err == nil {
		return spec, nil
	}

	var yamlRaw interface{}
	if err := yaml.Unmarshal(body, &yamlRaw); err != nil {
		return nil, fmt.Errorf("spec is neither valid JSON nor YAML: %w", err)
	}
	intermediate, err := json.Marshal(yamlRaw)
	if err != nil {
		return nil, fmt.Errorf("re-marshaling YAML spec: %w", err)
	}
	if err := json.Unmarshal(intermediate, &spec); err != nil {
		return nil, fmt.Errorf("decoding YAML spec: %w", err)
	}
	return spec, nil
}

var methodOrder = []string{"get", "post", "put", "patch", "delete"}

// Parse walks the spec's paths and builds the endpoint list. Only query and
// path parameters are kept; header and cookie parameters are not forwarded by
// this adapter. Paths are sorted so the catalog order is stable across runs.
func Parse(spec map[string]interface{}) []Endpoint {
	paths, _ := spec["paths"].(map[string]interface{})

	sortedPaths := make([]string, 0, len(paths))
	for p := range paths {
		sortedPaths = append(sortedPaths, p)
	}
	sort.Strings(sortedPaths)

	var endpoints []Endpoint
	for _, rawPath := range sortedPaths {
		pathItem, ok := paths[rawPath].(map[string]interface{})
		if !ok {
			continue
		}
		for _, method := range methodOrder {
			op, ok := pathItem[method].(map[string]interface{})
			if !ok {
				continue
			}
			endpoints = append(endpoints, Endpoint{
				Path:        rawPath,
				Method:      strings.ToUpper(method),
				Description: operationDescription(op),
				Parameters:  parseParameters(op),
			})
		}
	}
	return endpoints
}

func operationDescription(op map[string]interface{}) string {
	if d, _ := op["description"].(string); d != "" {
		return d
	}
	d, _ := op["summary"].(string)
	return d
}

func parseParameters(op map[string]interface{}) []Parameter {
	rawParams, _ := op["parameters"].([]interface{})
	var params []Parameter
	for _, raw := range rawParams {
		pm, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		in, _ := pm["in"].(string)
		if in != "query" && in != "path" {
			continue
		}
		p := Parameter{In: in}
		p.Name, _ = pm["name"].(string)
		p.Description, _ = pm["description"].(string)
		p.Required, _ = pm["required"].(bool)

		// OpenAPI 3 nests type information under "schema"; OpenAPI 2
		// keeps it on the parameter itself.
		if schema, ok := pm["schema"].(map[string]interface{}); ok {
			p.Type, _ = schema["type"].(string)
			p.Format, _ = schema["format"].(string)
			p.Default = schema["default"]
		} else {
			p.Type, _ = pm["type"].(string)
			p.Format, _ = pm["format"].(string)
			p.Default = pm["default"]
		}
		params = append(params, p)
	}
	return params
}
