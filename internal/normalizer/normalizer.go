// Package normalizer shapes raw upstream bodies into payloads suitable for
// textual presentation back to the MCP host.
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"sportsbridge/internal/domain"
)

// TruncationMarker is appended whenever a rendered payload is shortened, so
// oversized data is never dropped silently.
const TruncationMarker = "\n… [truncated]"

// Normalizer implements usecase.Normalizer.
type Normalizer struct {
	maxChars int
	logger   *slog.Logger
}

// New creates a Normalizer that truncates rendered payloads beyond maxChars
// characters. maxChars <= 0 disables truncation.
func New(maxChars int, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		maxChars: maxChars,
		logger:   logger.With("component", "normalizer"),
	}
}

// Normalize parses a JSON body into a payload value with non-finite numbers
// replaced by nulls. A body that is not valid JSON is an upstream defect and
// maps to a NormalizationError.
func (n *Normalizer) Normalize(body []byte) (any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		n.logger.Warn("Failed to parse upstream body", slog.Any("error", err))
		return nil, &domain.NormalizationError{Err: errors.New("invalid upstream response")}
	}
	return Sanitize(payload), nil
}

// Render serializes a payload to JSON text, truncating past the configured
// threshold with an explicit marker. The bool reports whether truncation
// happened.
func (n *Normalizer) Render(payload any) (string, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		// Payloads come from json.Unmarshal or Columns, so this should be
		// unreachable; degrade to fmt rather than fail the invocation.
		data = []byte(fmt.Sprintf("%v", payload))
	}
	text := string(data)
	if n.maxChars <= 0 || len(text) <= n.maxChars {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= n.maxChars {
		return text, false
	}
	n.logger.Debug("Truncating oversized payload",
		slog.Int("chars", len(runes)), slog.Int("limit", n.maxChars))
	return string(runes[:n.maxChars]) + TruncationMarker, true
}

// Sanitize walks a decoded payload and replaces NaN and infinite floats with
// nil, recursively through objects and arrays. Everything else is returned
// unchanged.
func Sanitize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k, elem := range v {
			v[k] = Sanitize(elem)
		}
		return v
	case []any:
		for i, elem := range v {
			v[i] = Sanitize(elem)
		}
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	default:
		return v
	}
}

// Columns converts a row-oriented record list into a column-name → ordered
// value sequence mapping. Rows missing a column contribute nil, keeping every
// column the same length as the row count.
func Columns(rows []map[string]any) map[string][]any {
	names := make([]string, 0)
	seen := make(map[string]bool)
	for _, row := range rows {
		for name := range row {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	columns := make(map[string][]any, len(names))
	for _, name := range names {
		values := make([]any, len(rows))
		for i, row := range rows {
			if v, ok := row[name]; ok {
				values[i] = Sanitize(v)
			}
		}
		columns[name] = values
	}
	return columns
}
