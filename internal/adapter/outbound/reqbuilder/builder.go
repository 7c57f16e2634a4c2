// Package reqbuilder constructs fully qualified upstream URLs from path
// templates, resolved tool parameters, and provider configuration.
package reqbuilder

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sportsbridge/internal/domain"
	"sportsbridge/internal/usecase"
)

// apiKeyParam is the query parameter name SportRadar expects.
const apiKeyParam = "api_key"

// apiKeyHeader is used for providers configured with header authentication.
const apiKeyHeader = "X-API-Key"

// Builder implements usecase.RequestBuilder. It is stateless; Build is a pure
// function of its inputs.
type Builder struct{}

// New creates a new Builder.
func New() *Builder {
	return &Builder{}
}

// Build substitutes every {name} placeholder in the template with the
// percent-encoded parameter value, routes the remaining parameters to the
// query string, appends provider default query parameters unless overridden,
// and injects the API key per the provider's auth style.
//
// A placeholder with no corresponding parameter yields a
// *domain.MissingParameterError listing every unresolved name.
func (b *Builder) Build(template string, params map[string]string, cfg domain.ProviderConfig) (*usecase.PreparedRequest, error) {
	path := template
	used := make(map[string]struct{})
	var missing []string
	for _, name := range domain.Placeholders(template) {
		value, ok := params[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
		used[name] = struct{}{}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingParameterError{Names: missing}
	}

	// An empty parameter value drops its path segment entirely. Optional
	// scoping segments (e.g. a round number narrowing a season endpoint)
	// rely on this.
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	path = strings.TrimSuffix(path, "/")

	query := url.Values{}
	for k, v := range params {
		if _, inPath := used[k]; inPath {
			continue
		}
		query.Set(k, v)
	}
	for k, v := range cfg.DefaultQuery {
		if !query.Has(k) {
			query.Set(k, v)
		}
	}

	header := make(http.Header)
	switch cfg.AuthStyle {
	case domain.AuthStyleQuery:
		// Exactly once, regardless of caller-supplied values.
		query.Set(apiKeyParam, cfg.APIKey)
	case domain.AuthStyleHeader:
		header.Set(apiKeyHeader, cfg.APIKey)
	case domain.AuthStyleNone:
	default:
		return nil, fmt.Errorf("unsupported auth style %q for provider %s", cfg.AuthStyle, cfg.ID)
	}

	finalURL := cfg.BaseURL + path
	if encoded := query.Encode(); encoded != "" {
		finalURL += "?" + encoded
	}

	return &usecase.PreparedRequest{URL: finalURL, Header: header}, nil
}
