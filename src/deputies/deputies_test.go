package deputies

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/open-camara/mcp-camara/src/catalog"
	"github.com/open-camara/mcp-camara/src/invoker"
)

const fakeSpec = `{
	"openapi": "3.0.0",
	"paths": {
		"/deputados": {
			"get": {"parameters": [{"name": "nome", "in": "query", "schema": {"type": "string"}}]}
		},
		"/deputados/{id}/despesas": {
			"get": {"parameters": [
				{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}},
				{"name": "ano", "in": "query", "schema": {"type": "integer"}}
			]}
		},
		"/proposicoes": {
			"get": {"parameters": [{"name": "idDeputadoAutor", "in": "query", "schema": {"type": "integer"}}]}
		}
	}
}`

// searchResults maps the nome filter to canned candidate rows.
var searchResults = map[string]string{
	"Maria Silva":        `[{"id":1,"nome":"Maria Silva Santos","siglaPartido":"AA","siglaUf":"SP"},{"id":2,"nome":"Maria Silva Costa","siglaPartido":"BB","siglaUf":"RJ"}]`,
	"João Pereira Alves": `[{"id":12345,"nome":"João Pereira Alves","siglaPartido":"CC","siglaUf":"MG"}]`,
	"Ana Lima":           `[{"id":7,"nome":"Ana Lima","siglaPartido":"DD","siglaUf":"BA"},{"id":8,"nome":"Ana Lima Souza","siglaPartido":"EE","siglaUf":"CE"}]`,
	"Jose Reis":          `[{"id":3,"nome":"Jose Reis","siglaPartido":"FF","siglaUf":"PR"},{"id":4,"nome":"JOSE REIS","siglaPartido":"GG","siglaUf":"SC"}]`,
}

type fakeAPI struct {
	srv *httptest.Server
	// last query string seen per path
	queries map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Service) {
	t.Helper()
	api := &fakeAPI{queries: make(map[string]string)}
	api.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.queries[r.URL.Path] = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api-docs":
			fmt.Fprint(w, fakeSpec)
		case "/deputados":
			// the real API matches names case-insensitively
			rows := "[]"
			for name, canned := range searchResults {
				if strings.EqualFold(name, r.URL.Query().Get("nome")) {
					rows = canned
					break
				}
			}
			fmt.Fprintf(w, `{"dados":%s,"links":[]}`, rows)
		case "/deputados/12345/despesas":
			fmt.Fprint(w, `{"dados":[{"ano":2023,"valorLiquido":150.75}],"links":[{"rel":"next","href":"page2"}]}`)
		case "/proposicoes":
			fmt.Fprint(w, `{"dados":[{"id":99,"siglaTipo":"PL"}],"links":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(api.srv.Close)

	cat := catalog.NewService(api.srv.URL+"/api-docs", api.srv.Client(), nil)
	inv := invoker.New(api.srv.URL, api.srv.Client(), nil)
	return api, NewService(cat, inv, nil)
}

func TestResolveAmbiguousListsCandidates(t *testing.T) {
	_, svc := newFakeAPI(t)
	_, err := svc.ResolveByName(context.Background(), "Maria Silva")

	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousMatchError, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 ||
		ambiguous.Candidates[0] != "Maria Silva Santos" ||
		ambiguous.Candidates[1] != "Maria Silva Costa" {
		t.Fatalf("unexpected candidates: %v", ambiguous.Candidates)
	}
}

func TestResolveNoMatch(t *testing.T) {
	_, svc := newFakeAPI(t)
	_, err := svc.ResolveByName(context.Background(), "Nobody At All")

	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
}

func TestResolveSingleCandidate(t *testing.T) {
	_, svc := newFakeAPI(t)
	dep, err := svc.ResolveByName(context.Background(), "João Pereira Alves")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if dep.ID != 12345 || dep.Name != "João Pereira Alves" {
		t.Fatalf("unexpected deputy: %+v", dep)
	}
}

func TestResolveExactMatchWins(t *testing.T) {
	_, svc := newFakeAPI(t)
	dep, err := svc.ResolveByName(context.Background(), "ana lima")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if dep.ID != 7 {
		t.Fatalf("expected exact match id 7, got %+v", dep)
	}
}

func TestResolveMultipleExactMatchesIsAmbiguous(t *testing.T) {
	_, svc := newFakeAPI(t)
	_, err := svc.ResolveByName(context.Background(), "Jose Reis")

	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousMatchError for duplicate exact matches, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 {
		t.Fatalf("unexpected candidates: %v", ambiguous.Candidates)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	_, svc := newFakeAPI(t)
	ctx := context.Background()
	first, err := svc.ResolveByName(ctx, "João Pereira Alves")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	second, err := svc.ResolveByName(ctx, "João Pereira Alves")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("resolution not idempotent: %d vs %d", first.ID, second.ID)
	}
}

func TestExpensesUsesResolvedIDAndFilters(t *testing.T) {
	api, svc := newFakeAPI(t)
	payload, err := svc.Expenses(context.Background(), "João Pereira Alves", map[string]any{"ano": 2023})
	if err != nil {
		t.Fatalf("expenses error: %v", err)
	}
	if api.queries["/deputados/12345/despesas"] != "ano=2023" {
		t.Fatalf("unexpected expenses query: %q", api.queries["/deputados/12345/despesas"])
	}
	m, ok := payload.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected payload: %#v", payload)
	}
	// pagination links pass through untouched
	if m["links"] == nil {
		t.Fatalf("links stripped from payload: %#v", m)
	}
}

func TestBillsUsesResolvedID(t *testing.T) {
	api, svc := newFakeAPI(t)
	_, err := svc.Bills(context.Background(), "João Pereira Alves", nil)
	if err != nil {
		t.Fatalf("bills error: %v", err)
	}
	if api.queries["/proposicoes"] != "idDeputadoAutor=12345" {
		t.Fatalf("unexpected bills query: %q", api.queries["/proposicoes"])
	}
}

func TestAggregateFailurePropagatesUnchanged(t *testing.T) {
	api, svc := newFakeAPI(t)
	_, err := svc.Expenses(context.Background(), "Maria Silva", nil)

	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousMatchError, got %v", err)
	}
	if _, called := api.queries["/deputados/12345/despesas"]; called {
		t.Fatal("aggregate call must not reach the expenses endpoint on resolution failure")
	}
}
