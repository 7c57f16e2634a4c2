package domain

// AuthStyle selects how a provider's API key is attached to outbound requests.
type AuthStyle string

const (
	// AuthStyleQuery appends the key as an `api_key` query parameter
	// (SportRadar's scheme).
	AuthStyleQuery AuthStyle = "query"
	// AuthStyleHeader sends the key in an `X-API-Key` header.
	AuthStyleHeader AuthStyle = "header"
	// AuthStyleNone is for providers that require no credential (Jolpica-Ergast).
	AuthStyleNone AuthStyle = "none"
)

// ProviderConfig holds the upstream connection settings for a single provider.
// It is resolved exactly once at process start and read-shared afterwards;
// nothing mutates it, so no synchronization is needed.
type ProviderConfig struct {
	// ID identifies the provider ("mlb", "nba", "f1").
	ID string

	// BaseURL is the upstream API root, without a trailing slash.
	BaseURL string

	// APIKey is the provider credential. Empty only when AuthStyle is none.
	APIKey string

	// AuthStyle selects where APIKey is injected.
	AuthStyle AuthStyle

	// DefaultQuery is appended to every request unless the caller supplies
	// the same key itself (e.g. format=json for Jolpica).
	DefaultQuery map[string]string
}
