// Package deputies builds convenience lookups on top of the generic invoker:
// free-text name resolution against the deputy search endpoint, and the
// two-hop aggregate queries (expenses, authored bills) that depend on it.
package deputies

import (
	"context"
	"strings"

	"github.com/spf13/cast"

	"github.com/open-camara/mcp-camara/src/catalog"
	"github.com/open-camara/mcp-camara/src/invoker"
)

// Endpoints the aggregate queries compose. All must exist in the remote
// catalog; lookups fail with catalog.UnknownEndpointError otherwise.
const (
	searchPath   = "/deputados"
	expensesPath = "/deputados/{id}/despesas"
	billsPath    = "/proposicoes"
)

// Deputy is the slice of a search result the composition depends on. ID is
// the only field passed to downstream endpoints.
type Deputy struct {
	ID    int    `json:"id"`
	Name  string `json:"nome"`
	Party string `json:"siglaPartido,omitempty"`
	State string `json:"siglaUf,omitempty"`
}

// Service resolves deputy names and runs the aggregate queries.
type Service struct {
	catalog *catalog.Service
	invoker *invoker.Invoker
	logger  func(format string, args ...interface{})
}

// NewService wires the deputy queries to a catalog and an invoker.
func NewService(cat *catalog.Service, inv *invoker.Invoker, logger func(format string, args ...interface{})) *Service {
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	return &Service{catalog: cat, invoker: inv, logger: logger}
}

// ResolveByName turns a free-text name into a single Deputy. An exact
// case-insensitive full-name match takes precedence; with no exact match a
// lone candidate is accepted. Zero candidates fail with NoMatchError;
// anything else that cannot be reduced to one record fails with
// AmbiguousMatchError listing every candidate. No diacritic folding or other
// silent tie-break is applied.
func (s *Service) ResolveByName(ctx context.Context, name string) (Deputy, error) {
	ep, err := s.catalog.Lookup(ctx, "GET", searchPath)
	if err != nil {
		return Deputy{}, err
	}
	payload, err := s.invoker.Call(ctx, ep, map[string]any{"nome": name})
	if err != nil {
		return Deputy{}, err
	}
	candidates := parseCandidates(payload)
	if len(candidates) == 0 {
		return Deputy{}, &NoMatchError{Name: name}
	}

	var exact []Deputy
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name)) {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}
	if len(candidates) == 1 && len(exact) == 0 {
		return candidates[0], nil
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return Deputy{}, &AmbiguousMatchError{Name: name, Candidates: names}
}

// Expenses resolves the name and lists the deputy's expenses. Filters (ano,
// mes, ...) are forwarded verbatim; the decoded payload, pagination links
// included, is returned unchanged.
func (s *Service) Expenses(ctx context.Context, name string, filters map[string]any) (any, error) {
	return s.resolveThenCall(ctx, name, "GET", expensesPath, "id", filters)
}

// Bills resolves the name and lists bills authored by the deputy.
func (s *Service) Bills(ctx context.Context, name string, filters map[string]any) (any, error) {
	return s.resolveThenCall(ctx, name, "GET", billsPath, "idDeputadoAutor", filters)
}

// resolveThenCall is the two-hop composition every aggregate query follows:
// resolve the name, then invoke the target endpoint with the resolved ID
// under idParam plus the caller's filters. Resolution failures propagate
// unchanged; there is no fallback call.
func (s *Service) resolveThenCall(ctx context.Context, name, method, path, idParam string, filters map[string]any) (any, error) {
	dep, err := s.ResolveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.logger("resolved %q to deputy id %d", name, dep.ID)

	ep, err := s.catalog.Lookup(ctx, method, path)
	if err != nil {
		return nil, err
	}
	args := make(map[string]any, len(filters)+1)
	for k, v := range filters {
		args[k] = v
	}
	args[idParam] = dep.ID
	return s.invoker.Call(ctx, ep, args)
}

// parseCandidates pulls the deputy records out of the API's standard
// {"dados": [...], "links": [...]} envelope.
func parseCandidates(payload any) []Deputy {
	envelope, ok := payload.(map[string]interface{})
	if !ok {
		return nil
	}
	rows, _ := envelope["dados"].([]interface{})
	var out []Deputy
	for _, raw := range rows {
		rec, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, Deputy{
			ID:    cast.ToInt(rec["id"]),
			Name:  cast.ToString(rec["nome"]),
			Party: cast.ToString(rec["siglaPartido"]),
			State: cast.ToString(rec["siglaUf"]),
		})
	}
	return out
}
