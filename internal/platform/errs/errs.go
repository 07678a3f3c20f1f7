package errs

import "fmt"

// Kind categorizes application errors for HTTP status mapping and logging.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput means the audit request itself was malformed (HTTP 400).
	InvalidInput
	// Unreachable means the target URL never answered (HTTP 502).
	Unreachable
	// Timeout means the target answered too slowly (HTTP 504).
	Timeout
	// ParsingFailed means the target's markup defeated the parser (HTTP 500).
	ParsingFailed
)

// String returns the snake_case name used in structured logs.
func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Unreachable:
		return "unreachable"
	case Timeout:
		return "timeout"
	case ParsingFailed:
		return "parsing_failed"
	default:
		return "unknown"
	}
}

// AppError pairs a user-facing message with its category and underlying cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // status code the audited site returned, when there is one
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
