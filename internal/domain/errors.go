package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownTool is returned when a dispatched tool name is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ConfigurationError reports a missing or empty startup setting. It is fatal:
// the process must refuse to serve tools.
type ConfigurationError struct {
	Variable string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Variable, e.Reason)
}

// MissingParameterError lists every required argument absent from an
// invocation, not just the first one found.
type MissingParameterError struct {
	Names []string
}

func (e *MissingParameterError) Error() string {
	names := append([]string(nil), e.Names...)
	sort.Strings(names)
	return fmt.Sprintf("missing required parameters: %s", strings.Join(names, ", "))
}

// InvalidParameterError reports an argument whose value could not be
// interpreted (e.g. a malformed date).
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Name, e.Reason)
}

// TransportError wraps connection and timeout failures, distinct from
// HTTP-level errors the upstream actually answered with.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError reports a non-2xx answer from the upstream API.
type UpstreamError struct {
	StatusCode int
	Snippet    string
}

func (e *UpstreamError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.StatusCode, e.Snippet)
}

// NormalizationError wraps failures while reshaping an upstream body.
type NormalizationError struct {
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization error: %v", e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }
