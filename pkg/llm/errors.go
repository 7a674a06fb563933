package llm

import "errors"

// ErrorKind is the closed set of failure categories a provider can report.
// Callers match on the kind to decide how a failure surfaces to the user;
// the raw provider detail stays server-side.
type ErrorKind int

const (
	// KindGeneric covers unexpected provider statuses not covered below.
	KindGeneric ErrorKind = iota
	// KindConfiguration means the request or client config is invalid (HTTP 400
	// from the provider, or missing credentials at construction). Not retryable.
	KindConfiguration
	// KindAuthorization means the provider rejected our credentials. Not retryable.
	KindAuthorization
	// KindRateLimit means quota or credits are exhausted (402/429). The caller
	// may back off and retry; the client never retries internally.
	KindRateLimit
	// KindModelUnavailable covers provider 5xx, transport failures, timeouts
	// and malformed success envelopes. Retryable by resubmitting.
	KindModelUnavailable
	// KindParse means a structured response was requested but the content is
	// not valid JSON.
	KindParse
	// KindValidation means the content parsed but is not a JSON object.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthorization:
		return "authorization"
	case KindRateLimit:
		return "rate_limit"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	default:
		return "generic"
	}
}

// Error is the typed error every provider in this package returns.
// Status carries the upstream HTTP status (0 when no response was received)
// and Details an opaque diagnostic payload safe for server logs.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, status int, message string, details map[string]interface{}) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Details: details}
}

// AsError unwraps err into *Error if it carries one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
