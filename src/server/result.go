package server

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/open-camara/mcp-camara/src/catalog"
	"github.com/open-camara/mcp-camara/src/deputies"
	"github.com/open-camara/mcp-camara/src/invoker"
	"github.com/open-camara/mcp-camara/src/json"
)

// Failure is the structured error envelope every tool returns instead of a
// payload. Kind tells the caller which class of problem occurred so a remote
// complaint is distinguishable from a local validation error or an
// unreadable response.
type Failure struct {
	Kind       string   `json:"kind"`
	Message    string   `json:"message"`
	Status     int      `json:"status,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// Failure kinds.
const (
	KindValidation      = "validation"
	KindUnknownEndpoint = "unknown_endpoint"
	KindRemote          = "remote"
	KindDecode          = "decode"
	KindNoMatch         = "no_match"
	KindAmbiguous       = "ambiguous"
)

// InvalidArgumentError reports a tool argument of the wrong shape. It is
// raised before any network call.
type InvalidArgumentError struct {
	Name string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("argument %q must be a JSON object", e.Name)
}

// classify maps an error from the lower layers onto the failure taxonomy.
func classify(err error) Failure {
	var (
		missing   *invoker.MissingParameterError
		invalid   *InvalidArgumentError
		unknown   *catalog.UnknownEndpointError
		remote    *invoker.RemoteError
		decode    *invoker.DecodeError
		noMatch   *deputies.NoMatchError
		ambiguous *deputies.AmbiguousMatchError
	)
	switch {
	case errors.As(err, &missing):
		return Failure{Kind: KindValidation, Message: missing.Error()}
	case errors.As(err, &invalid):
		return Failure{Kind: KindValidation, Message: invalid.Error()}
	case errors.As(err, &unknown):
		return Failure{Kind: KindUnknownEndpoint, Message: unknown.Error()}
	case errors.As(err, &decode):
		return Failure{Kind: KindDecode, Message: decode.Error()}
	case errors.As(err, &noMatch):
		return Failure{Kind: KindNoMatch, Message: noMatch.Error()}
	case errors.As(err, &ambiguous):
		return Failure{
			Kind:       KindAmbiguous,
			Message:    ambiguous.Error(),
			Candidates: ambiguous.Candidates,
		}
	case errors.As(err, &remote):
		return Failure{Kind: KindRemote, Message: remote.Error(), Status: remote.Status}
	}
	// Anything else reached the network or tried to: catalog loads and
	// transport-level surprises land here.
	return Failure{Kind: KindRemote, Message: err.Error()}
}

// successResult renders a decoded payload as pretty-printed JSON text with
// non-ASCII characters preserved.
func successResult(payload any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return failureResult(&invoker.DecodeError{Err: err})
	}
	return mcp.NewToolResultText(string(data))
}

// failureResult renders the classified failure envelope as an error result.
func failureResult(err error) *mcp.CallToolResult {
	f := classify(err)
	data, merr := json.Marshal(f)
	if merr != nil {
		return mcp.NewToolResultError(f.Message)
	}
	return mcp.NewToolResultError(string(data))
}
