package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veesix-networks/netcfg/pkg/config"
	"github.com/veesix-networks/netcfg/pkg/notify"
)

type recordingEmitter struct {
	calls []notify.InterfaceState
	err   error
}

func (r *recordingEmitter) Emit(ctx context.Context, module, notification string, data any) error {
	if state, ok := data.(notify.InterfaceState); ok {
		r.calls = append(r.calls, state)
	}
	return r.err
}

func withEmitter(t *testing.T, e notify.Emitter) {
	t.Helper()
	prev := newEmitter
	newEmitter = func(*config.Config) notify.Emitter { return e }
	t.Cleanup(func() { newEmitter = prev })
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func noConfig(t *testing.T) []string {
	return []string{"-config", filepath.Join(t.TempDir(), "absent.yaml")}
}

func TestRunEmits(t *testing.T) {
	rec := &recordingEmitter{}
	withEmitter(t, rec)

	var stderr bytes.Buffer
	code := run(noConfig(t), env(map[string]string{"INTERFACE": "dp0xe0", "ACTION": "add"}), &stderr)
	assert.Equal(t, 0, code)
	if assert.Len(t, rec.calls, 1) {
		assert.Equal(t, "dp0xe0", rec.calls[0].Interface.Name)
		assert.Equal(t, "add", rec.calls[0].Interface.State)
	}
}

func TestRunMissingEnv(t *testing.T) {
	withEmitter(t, &recordingEmitter{})

	var stderr bytes.Buffer
	code := run(noConfig(t), env(map[string]string{"ACTION": "add"}), &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "INTERFACE")
}

func TestRunBusUnreachable(t *testing.T) {
	withEmitter(t, &recordingEmitter{err: &notify.UnreachableError{Err: errors.New("connection refused")}})

	var stderr bytes.Buffer
	code := run(noConfig(t), env(map[string]string{"INTERFACE": "dp0xe0", "ACTION": "remove"}), &stderr)
	assert.Equal(t, 0, code)
}

func TestRunEmitRejected(t *testing.T) {
	withEmitter(t, &recordingEmitter{err: errors.New("HTTP 400")})

	var stderr bytes.Buffer
	code := run(noConfig(t), env(map[string]string{"INTERFACE": "dp0xe0", "ACTION": "remove"}), &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "HTTP 400")
}

func TestRunRejectsArgs(t *testing.T) {
	var stderr bytes.Buffer
	code := run(append(noConfig(t), "extra"), env(nil), &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "usage")
}
