package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-camara/mcp-camara/src/catalog"
	"github.com/open-camara/mcp-camara/src/deputies"
	"github.com/open-camara/mcp-camara/src/invoker"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{&invoker.MissingParameterError{Endpoint: "GET /x", Missing: []string{"id"}}, KindValidation},
		{&InvalidArgumentError{Name: "arguments"}, KindValidation},
		{&catalog.UnknownEndpointError{Method: "GET", Path: "/x"}, KindUnknownEndpoint},
		{&invoker.RemoteError{Endpoint: "GET /x", Status: 500, Body: "boom"}, KindRemote},
		{&invoker.DecodeError{Endpoint: "GET /x", Err: errors.New("bad json")}, KindDecode},
		{&deputies.NoMatchError{Name: "x"}, KindNoMatch},
		{&deputies.AmbiguousMatchError{Name: "x", Candidates: []string{"a", "b"}}, KindAmbiguous},
		{errors.New("spec fetch failed"), KindRemote},
	}
	for _, c := range cases {
		f := classify(c.err)
		assert.Equal(t, c.kind, f.Kind, "classify(%T)", c.err)
		assert.NotEmpty(t, f.Message)
	}
}

func TestClassifyAmbiguousCarriesCandidates(t *testing.T) {
	f := classify(&deputies.AmbiguousMatchError{
		Name:       "Maria Silva",
		Candidates: []string{"Maria Silva Santos", "Maria Silva Costa"},
	})
	assert.Equal(t, []string{"Maria Silva Santos", "Maria Silva Costa"}, f.Candidates)
}

func TestClassifyRemotePreservesStatus(t *testing.T) {
	f := classify(&invoker.RemoteError{Endpoint: "GET /x", Status: 404, Body: "not here"})
	assert.Equal(t, 404, f.Status)
	assert.Contains(t, f.Message, "not here")
}
