// Package naming derives tool names for catalog endpoints. Resource segments
// come from Portuguese plural path names, so singularization follows
// Portuguese inflection rules rather than an English -s heuristic.
package naming

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/open-camara/mcp-camara/src/catalog"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Words that keep the same form in singular and plural.
var invariable = map[string]struct{}{
	"parabens": {},
	"lapis":    {},
	"virus":    {},
	"atlas":    {},
	"pires":    {},
	"bonus":    {},
	"cais":     {},
	"oculos":   {},
	"onibus":   {},
}

type inflection struct {
	pattern *regexp.Regexp
	replace string
}

// Ordered plural-suffix rules; the first match wins.
var inflections = []inflection{
	{regexp.MustCompile(`^([a-z]*)ns$`), "${1}m"},
	{regexp.MustCompile(`^([a-z]*)zes$`), "${1}z"},
	{regexp.MustCompile(`^([a-z]*)ses$`), "${1}s"},
	{regexp.MustCompile(`^([a-z]*)oes$`), "${1}ao"},
	{regexp.MustCompile(`^([a-z]*)aos$`), "${1}ao"},
	{regexp.MustCompile(`^([a-z]*)aes$`), "${1}ao"},
	{regexp.MustCompile(`^([a-z]*)les$`), "${1}l"},
	{regexp.MustCompile(`^([a-z]*)([aeou])is$`), "${1}${2}l"},
	{regexp.MustCompile(`^([a-z]*)is$`), "${1}il"},
	{regexp.MustCompile(`^([a-z]*)([aiou])s$`), "${1}${2}"},
	{regexp.MustCompile(`^([a-z]*)(to|lo|do)res$`), "${1}${2}r"},
	{regexp.MustCompile(`^([a-z]*)(vo)res$`), "${1}${2}re"},
	{regexp.MustCompile(`^([a-z]*)tes$`), "${1}te"},
}

// Singularize lowercases, strips accents, and removes the Portuguese plural
// suffix of a word. Unrecognized forms come back unchanged.
func Singularize(word string) string {
	w := strings.ToLower(stripAccents(strings.TrimSpace(word)))
	if _, ok := invariable[w]; ok {
		return w
	}
	for _, rule := range inflections {
		if rule.pattern.MatchString(w) {
			return rule.pattern.ReplaceAllString(w, rule.replace)
		}
	}
	return w
}

func prefix(ep catalog.Endpoint) string {
	switch ep.Method {
	case "GET":
		if strings.HasSuffix(ep.Path, "}") {
			return "get"
		}
		return "list"
	case "POST":
		return "create"
	case "PUT", "PATCH":
		return "update"
	case "DELETE":
		return "delete"
	}
	return ""
}

// ToolName builds a readable tool name for an endpoint:
//
//	GET /deputados              -> list_deputados
//	GET /deputados/{id}         -> get_deputado_by_id
//	GET /deputados/{id}/despesas -> list_despesas_by_deputado
func ToolName(ep catalog.Endpoint) string {
	p := prefix(ep)

	var parts []string
	for _, part := range strings.Split(ep.Path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return p + "_root"
	}

	// The "_by_" forms need a resource segment next to the parameter. Paths
	// that open with a parameter have none; they fall through to the joined
	// form instead of indexing before the slice.
	last := parts[len(parts)-1]
	if strings.HasSuffix(last, "}") {
		if len(parts) >= 2 {
			param := strings.Trim(last, "{}")
			resource := Singularize(parts[len(parts)-2])
			return p + "_" + resource + "_by_" + param
		}
	} else {
		for i, part := range parts {
			if !strings.HasSuffix(part, "}") {
				continue
			}
			if i == 0 {
				break
			}
			resource := parts[i+1]
			parent := Singularize(parts[i-1])
			return p + "_" + resource + "_by_" + parent
		}
	}

	joined := make([]string, len(parts))
	for i, part := range parts {
		joined[i] = strings.Trim(part, "{}")
	}
	return p + "_" + strings.Join(joined, "_")
}
