// Package server registers the adapter's tools on an MCP server: the six
// fixed operations, plus an optional tool per catalog endpoint.
package server

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/open-camara/mcp-camara/src/catalog"
	"github.com/open-camara/mcp-camara/src/config"
	"github.com/open-camara/mcp-camara/src/deputies"
	"github.com/open-camara/mcp-camara/src/invoker"
)

const (
	Name    = "mcp-camara"
	Version = "0.1.0"
)

// Server owns the MCP server instance and the services behind its tools.
type Server struct {
	mcp      *mcpserver.MCPServer
	catalog  *catalog.Service
	invoker  *invoker.Invoker
	deputies *deputies.Service
	logger   func(format string, args ...interface{})
}

// New wires the catalog, invoker, and deputy services from cfg and registers
// the six fixed tools.
func New(cfg config.Config, logger func(format string, args ...interface{})) *Server {
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	client := &http.Client{Timeout: cfg.Timeout}
	cat := catalog.NewService(cfg.SpecURL, client, logger)
	inv := invoker.New(cfg.BaseURL, client, logger)

	s := &Server{
		mcp:      mcpserver.NewMCPServer(Name, Version),
		catalog:  cat,
		invoker:  inv,
		deputies: deputies.NewService(cat, inv, logger),
		logger:   logger,
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger("serving MCP over stdio")
	return mcpserver.ServeStdio(s.mcp)
}

// ServeHTTP blocks serving the streamable HTTP transport on addr.
func (s *Server) ServeHTTP(addr string) error {
	s.logger("serving MCP over HTTP on %s", addr)
	return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("list_endpoints",
		mcp.WithDescription("List every endpoint of the Câmara dos Deputados open-data API: path, method, and description."),
	), s.handleListEndpoints)

	s.mcp.AddTool(mcp.NewTool("get_endpoint_schema",
		mcp.WithDescription("Describe the parameters of one endpoint: name, type, required/optional, description."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Endpoint path as listed by list_endpoints, e.g. /deputados/{id}/despesas")),
		mcp.WithString("method", mcp.Required(), mcp.Description("HTTP method of the endpoint, e.g. GET")),
	), s.handleEndpointSchema)

	s.mcp.AddTool(mcp.NewTool("call_endpoint",
		mcp.WithDescription("Call one endpoint with named arguments. Path parameters are substituted, the rest become query parameters. The decoded payload is returned unchanged, pagination links included."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Endpoint path as listed by list_endpoints")),
		mcp.WithString("method", mcp.Required(), mcp.Description("HTTP method of the endpoint")),
		mcp.WithObject("arguments", mcp.Description("Parameter name to value mapping for the call")),
	), s.handleCallEndpoint)

	s.mcp.AddTool(mcp.NewTool("get_deputy_by_name",
		mcp.WithDescription("Resolve a deputy's free-text name to a single record. Fails with the candidate list when the name is ambiguous."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name of the deputy")),
	), s.handleDeputyByName)

	s.mcp.AddTool(mcp.NewTool("get_deputy_expenses",
		mcp.WithDescription("Resolve a deputy by name and list their expenses. Filters are forwarded verbatim to the expenses endpoint."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name of the deputy")),
		mcp.WithObject("filters", mcp.Description("Optional filters forwarded verbatim, e.g. ano, mes")),
	), s.handleDeputyExpenses)

	s.mcp.AddTool(mcp.NewTool("get_bills_by_deputy",
		mcp.WithDescription("Resolve a deputy by name and list bills they authored. Filters are forwarded verbatim to the bills endpoint."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name of the deputy")),
		mcp.WithObject("filters", mcp.Description("Optional filters forwarded verbatim, e.g. ano, siglaTipo")),
	), s.handleBillsByDeputy)
}

// objectArg extracts an optional object-valued argument. A present value of
// any other type (a stringified JSON object, typically) is a validation
// failure, never a silently empty map.
func objectArg(args map[string]interface{}, name string) (map[string]interface{}, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, &InvalidArgumentError{Name: name}
	}
	return m, nil
}

func (s *Server) handleListEndpoints(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return failureResult(err), nil
	}
	type entry struct {
		Path        string `json:"path"`
		Method      string `json:"method"`
		Description string `json:"description,omitempty"`
	}
	entries := make([]entry, len(cat.Endpoints))
	for i, ep := range cat.Endpoints {
		entries[i] = entry{Path: ep.Path, Method: ep.Method, Description: ep.Description}
	}
	return successResult(entries), nil
}

func (s *Server) handleEndpointSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	ep, err := s.catalog.Lookup(ctx, cast.ToString(args["method"]), cast.ToString(args["path"]))
	if err != nil {
		return failureResult(err), nil
	}
	return successResult(ep.Parameters), nil
}

func (s *Server) handleCallEndpoint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	ep, err := s.catalog.Lookup(ctx, cast.ToString(args["method"]), cast.ToString(args["path"]))
	if err != nil {
		return failureResult(err), nil
	}
	callArgs, err := objectArg(args, "arguments")
	if err != nil {
		return failureResult(err), nil
	}
	payload, err := s.invoker.Call(ctx, ep, callArgs)
	if err != nil {
		return failureResult(err), nil
	}
	return successResult(payload), nil
}

func (s *Server) handleDeputyByName(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := cast.ToString(req.GetArguments()["name"])
	dep, err := s.deputies.ResolveByName(ctx, name)
	if err != nil {
		return failureResult(err), nil
	}
	return successResult(dep), nil
}

func (s *Server) handleDeputyExpenses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	filters, err := objectArg(args, "filters")
	if err != nil {
		return failureResult(err), nil
	}
	payload, err := s.deputies.Expenses(ctx, cast.ToString(args["name"]), filters)
	if err != nil {
		return failureResult(err), nil
	}
	return successResult(payload), nil
}

func (s *Server) handleBillsByDeputy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	filters, err := objectArg(args, "filters")
	if err != nil {
		return failureResult(err), nil
	}
	payload, err := s.deputies.Bills(ctx, cast.ToString(args["name"]), filters)
	if err != nil {
		return failureResult(err), nil
	}
	return successResult(payload), nil
}
