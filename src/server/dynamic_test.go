package server

import (
	"context"
	"strings"
	"testing"

	"github.com/open-camara/mcp-camara/src/catalog"
)

func TestEndpointToolSchema(t *testing.T) {
	ep := catalog.Endpoint{
		Path:        "/deputados/{id}/despesas",
		Method:      "GET",
		Description: "Despesas do deputado",
		Parameters: []catalog.Parameter{
			{Name: "id", In: "path", Type: "integer", Required: true},
			{Name: "ano", In: "query", Type: "integer"},
			{Name: "cnpjCpfFornecedor", In: "query", Type: "string"},
		},
	}
	tool := endpointTool(ep)
	if tool.Name != "list_despesas_by_deputado" {
		t.Fatalf("unexpected tool name: %s", tool.Name)
	}
	if tool.Description != "Despesas do deputado" {
		t.Fatalf("unexpected description: %s", tool.Description)
	}
	props := tool.InputSchema.Properties
	for _, name := range []string{"id", "ano", "cnpjCpfFornecedor"} {
		if _, ok := props[name]; !ok {
			t.Fatalf("schema missing property %s: %#v", name, props)
		}
	}
	if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "id" {
		t.Fatalf("unexpected required list: %v", tool.InputSchema.Required)
	}
}

func TestExposeEndpointsHandlersPassThrough(t *testing.T) {
	s, queries := newTestServer(t)
	if err := s.ExposeEndpoints(context.Background()); err != nil {
		t.Fatalf("expose error: %v", err)
	}

	cat, err := s.catalog.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog error: %v", err)
	}
	ep, err := cat.Lookup("GET", "/deputados")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	res, err := s.endpointHandler(ep)(context.Background(), request(map[string]any{
		"nome": "João Pereira Alves",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected failure: %s", textOf(t, res))
	}
	if !strings.Contains(queries["/deputados"], "nome=") {
		t.Fatalf("arguments not forwarded: %q", queries["/deputados"])
	}
}
