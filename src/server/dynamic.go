package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/open-camara/mcp-camara/src/catalog"
	"github.com/open-camara/mcp-camara/src/naming"
)

// ExposeEndpoints registers one tool per catalog endpoint, named by the
// naming package, each a plain pass-through to the invoker. Loading happens
// eagerly here because tool registration needs the full list up front.
func (s *Server) ExposeEndpoints(ctx context.Context) error {
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return err
	}
	for _, ep := range cat.Endpoints {
		s.mcp.AddTool(endpointTool(ep), s.endpointHandler(ep))
	}
	s.logger("exposed %d endpoint tools", len(cat.Endpoints))
	return nil
}

func endpointTool(ep catalog.Endpoint) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ep.Description)}
	for _, p := range ep.Parameters {
		var propOpts []mcp.PropertyOption
		if p.Description != "" {
			propOpts = append(propOpts, mcp.Description(p.Description))
		}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		switch p.Type {
		case "integer", "number":
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(naming.ToolName(ep), opts...)
}

func (s *Server) endpointHandler(ep catalog.Endpoint) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := s.invoker.Call(ctx, ep, req.GetArguments())
		if err != nil {
			return failureResult(err), nil
		}
		return successResult(payload), nil
	}
}
