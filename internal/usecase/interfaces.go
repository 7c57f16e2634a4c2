package usecase

import (
	"context"
	"net/http"

	"sportsbridge/internal/domain"
)

// PreparedRequest is a fully built outbound call: the final URL with every
// placeholder substituted and authentication applied, plus any static headers.
type PreparedRequest struct {
	URL    string
	Header http.Header
}

// RequestBuilder turns a path template plus resolved parameters into a
// PreparedRequest. Implementations must be pure: deterministic, no I/O.
type RequestBuilder interface {
	Build(template string, params map[string]string, cfg domain.ProviderConfig) (*PreparedRequest, error)
}

// Executor performs the single outbound GET for a prepared request.
// Transport failures map to *domain.TransportError, non-2xx statuses to
// *domain.UpstreamError; a 2xx answer returns the raw body.
type Executor interface {
	Execute(ctx context.Context, req *PreparedRequest) (status int, body []byte, err error)
}

// Normalizer parses an upstream body into a payload suitable for textual
// presentation, and renders payloads with the configured truncation bound.
type Normalizer interface {
	Normalize(body []byte) (any, error)
	// Render serializes a payload and reports whether it was truncated.
	Render(payload any) (text string, truncated bool)
}

// SpecRepository stores the immutable tool registry. Implementations are
// written once during initialization and read-shared per invocation.
type SpecRepository interface {
	Save(ctx context.Context, specs []domain.ToolSpec) error
	List(ctx context.Context) ([]domain.ToolSpec, error)
	FindByName(ctx context.Context, name string) (*domain.ToolSpec, error)
}
