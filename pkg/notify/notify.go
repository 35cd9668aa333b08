// Package notify emits interface state notifications onto the component bus.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Module            = "vyatta-interfaces-v1"
	InterfaceStateMsg = "interface-state"
)

var (
	ErrNoInterface = errors.New("environment INTERFACE is not set")
	ErrNoAction    = errors.New("environment ACTION is not set")
)

type InterfaceState struct {
	Interface struct {
		State string `json:"state"`
		Name  string `json:"name"`
	} `json:"vyatta-interfaces-v1:interface"`
}

func NewInterfaceState(name, state string) InterfaceState {
	var s InterfaceState
	s.Interface.Name = name
	s.Interface.State = state
	return s
}

// FromEnv reads the udev INTERFACE and ACTION variables.
func FromEnv(getenv func(string) string) (InterfaceState, error) {
	name := getenv("INTERFACE")
	if name == "" {
		return InterfaceState{}, ErrNoInterface
	}
	action := getenv("ACTION")
	if action == "" {
		return InterfaceState{}, ErrNoAction
	}
	return NewInterfaceState(name, action), nil
}

type Emitter interface {
	Emit(ctx context.Context, module, notification string, data any) error
}

// HTTPEmitter posts notifications as JSON to {base}/notify/{module}/{name}.
type HTTPEmitter struct {
	baseURL string
	client  *http.Client
}

func NewHTTPEmitter(baseURL string, timeout time.Duration) *HTTPEmitter {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPEmitter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// UnreachableError means the bus could not be contacted at all, as opposed
// to rejecting the notification.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("notification bus unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

func (e *HTTPEmitter) Emit(ctx context.Context, module, notification string, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	endpoint := fmt.Sprintf("%s/notify/%s/%s", e.baseURL, url.PathEscape(module), url.PathEscape(notification))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := e.client.Do(req)
	if err != nil {
		return &UnreachableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emit %s:%s: HTTP %d: %s", module, notification, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// EmitInterfaceState sends an interface-state notification.
func EmitInterfaceState(ctx context.Context, e Emitter, state InterfaceState) error {
	return e.Emit(ctx, Module, InterfaceStateMsg, state)
}
