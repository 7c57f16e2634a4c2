package domain

import (
	"fmt"
	"regexp"
)

// ParamType describes how a tool argument is advertised and interpreted.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
	// ParamDate arguments arrive as YYYY-MM-DD strings and are expanded into
	// {year}, {month} and {day} path components before the URL is built.
	ParamDate ParamType = "date"
)

// ParamSpec declares a single named tool argument.
type ParamSpec struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool

	// Default is substituted when an optional argument is absent. The special
	// value "today" on a date parameter resolves to the current date, and
	// "current" on an integer parameter resolves to the current year, both at
	// dispatch time.
	Default string

	// Local arguments are consumed by the tool's Transform (response
	// filtering) and never forwarded upstream.
	Local bool
}

// TransformFunc reshapes the raw upstream JSON body before normalization.
// It receives the resolved tool arguments so filters can depend on them.
// A nil return body means "no change".
type TransformFunc func(body []byte, args map[string]any) ([]byte, error)

// ToolSpec ties an externally advertised tool name to the upstream endpoint it
// wraps. Specs are static: built during initialization, validated once, and
// never mutated afterwards.
type ToolSpec struct {
	// Name MUST be unique within one server.
	Name string

	// Description is the natural-language explanation shown to the model.
	Description string

	// PathTemplate is the upstream request path with {name} placeholders,
	// relative to the provider base URL (e.g. "/en/games/{game_id}/summary.json").
	PathTemplate string

	// Params declares every argument the tool accepts, required and optional.
	Params []ParamSpec

	// Transform optionally post-processes the raw upstream body (filtering,
	// reshaping) before normalization.
	Transform TransformFunc
}

// Param returns the declaration for the named argument.
func (s ToolSpec) Param(name string) (ParamSpec, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// Placeholders returns the placeholder names in a path template, in order.
func Placeholders(template string) []string {
	matches := placeholderRe.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Validate checks the spec's internal consistency: every template placeholder
// must be covered by a declared parameter. A date parameter covers the
// {year}, {month} and {day} placeholders. Violations are programming errors
// and abort registration at startup, never at invocation time.
func (s ToolSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("tool spec has empty name")
	}
	covered := make(map[string]bool)
	for _, p := range s.Params {
		if p.Type == ParamDate {
			covered["year"] = true
			covered["month"] = true
			covered["day"] = true
			continue
		}
		covered[p.Name] = true
	}
	for _, ph := range Placeholders(s.PathTemplate) {
		if !covered[ph] {
			return fmt.Errorf("tool %s: placeholder {%s} has no declared parameter", s.Name, ph)
		}
	}
	return nil
}
