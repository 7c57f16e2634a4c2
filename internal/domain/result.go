package domain

// ResultStatus is the outcome of a single tool invocation.
type ResultStatus string

const (
	StatusOK    ResultStatus = "ok"
	StatusError ResultStatus = "error"
)

// NormalizedResult is the uniform per-invocation result shape handed back to
// the MCP host. Transient: one per call.
type NormalizedResult struct {
	Status      ResultStatus `json:"status"`
	Payload     any          `json:"payload,omitempty"`
	ErrorDetail string       `json:"error_detail,omitempty"`
}

// OKResult wraps a payload in a successful result.
func OKResult(payload any) NormalizedResult {
	return NormalizedResult{Status: StatusOK, Payload: payload}
}

// ErrorResult wraps an error message in a failed result.
func ErrorResult(detail string) NormalizedResult {
	return NormalizedResult{Status: StatusError, ErrorDetail: detail}
}
