package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/exrun/internal/cli"
	"github.com/vk/exrun/internal/dispatch"
	"github.com/vk/exrun/internal/exit"
)

type stubEngine struct {
	evalErr error
	evaled  []string
}

func (s *stubEngine) Eval(_ context.Context, expr string) error {
	s.evaled = append(s.evaled, expr)
	return s.evalErr
}

func (s *stubEngine) LoadFile(context.Context, string) error { return nil }

func (s *stubEngine) Compile(_ context.Context, req dispatch.CompileRequest) ([]string, error) {
	return req.Files, nil
}

func newDispatcher(eng *stubEngine) *dispatch.Dispatcher {
	return dispatch.New(dispatch.Deps{Engine: eng})
}

func TestEntry_CleanPlanReturnsNil(t *testing.T) {
	t.Parallel()

	eng := &stubEngine{}
	cfg := cli.NewConfig()
	cfg.Commands = []cli.Command{{Kind: cli.KindEval, Arg: "1+1"}}
	errW := &bytes.Buffer{}

	err := entry(context.Background(), newDispatcher(eng), cfg, errW)()

	require.NoError(t, err)
	assert.Equal(t, []string{"1+1"}, eng.evaled)
	assert.Empty(t, errW.String())
}

func TestEntry_AggregatedErrorsPrintAndForceFailureExit(t *testing.T) {
	t.Parallel()

	cfg := cli.NewConfig()
	cfg.Errors = []string{"-x : Unknown option", "-y : Unknown option"}
	errW := &bytes.Buffer{}

	err := entry(context.Background(), newDispatcher(&stubEngine{}), cfg, errW)()

	var req *exit.Request
	require.ErrorAs(t, err, &req)
	assert.Equal(t, 1, req.Code)
	assert.Equal(t, "-x : Unknown option\n-y : Unknown option\n", errW.String())
}

func TestEntry_TerminationRequestPassesThrough(t *testing.T) {
	t.Parallel()

	eng := &stubEngine{evalErr: exit.WithCode(3)}
	cfg := cli.NewConfig()
	cfg.Commands = []cli.Command{{Kind: cli.KindEval, Arg: "halt(3)"}}
	errW := &bytes.Buffer{}

	err := entry(context.Background(), newDispatcher(eng), cfg, errW)()

	var req *exit.Request
	require.ErrorAs(t, err, &req)
	assert.Equal(t, 3, req.Code)
	assert.Empty(t, errW.String())
}
