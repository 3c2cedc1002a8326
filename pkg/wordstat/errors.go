package wordstat

import (
	"fmt"
)

// Kind identifies a class of failure returned by the client
type Kind int

const (
	KindMalformedResponse Kind = iota + 1
	KindInvalidKeyphrase
	KindTooManyKeyphrases
	KindUnrecognizedStatusCode
	KindTransport
	KindReportNotFound
	KindInvalidReportID
	KindReportQueueFull
	KindQuotaExhausted
	KindAuthenticationFailed
	KindAccessDenied
	KindServiceInternal
	KindInvalidRequest
	KindReportNotReady
	KindInvalidRequestParameters
	KindUnexpectedResult
)

var kindMessages = map[Kind]string{
	KindMalformedResponse:        "response had bad structure",
	KindInvalidKeyphrase:         "bad keyphrase supplied",
	KindTooManyKeyphrases:        "too many keyphrases were supplied",
	KindUnrecognizedStatusCode:   "unrecognized status code",
	KindTransport:                "transport error",
	KindReportNotFound:           "the specified report does not exist",
	KindInvalidReportID:          "the specified report ID is not valid",
	KindReportQueueFull:          "the report queue is full",
	KindQuotaExhausted:           "the report quota has been exhausted",
	KindAuthenticationFailed:     "invalid login, token or token has expired",
	KindAccessDenied:             "access to the API has been denied",
	KindServiceInternal:          "internal server error",
	KindInvalidRequest:           "the request was invalid",
	KindReportNotReady:           "the report is not ready yet",
	KindInvalidRequestParameters: "the request parameters were invalid",
	KindUnexpectedResult:         "unexpected result returned by the service",
}

// String returns a short human-readable description of the kind
func (k Kind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single error type produced by this package.
// Reason is set for malformed responses and rejected keyphrases,
// Code for transport failures (HTTP status) and unrecognized service codes.
type Error struct {
	Kind   Kind
	Reason string
	Code   int64
	Err    error
}

func (e *Error) Error() string {
	msg := "wordstat: " + e.Kind.String()
	switch {
	case e.Reason != "":
		msg += ": " + e.Reason
	case e.Kind == KindTransport && e.Code != 0:
		msg += fmt.Sprintf(": HTTP status %d", e.Code)
	case e.Kind == KindUnrecognizedStatusCode:
		msg += fmt.Sprintf(": %d", e.Code)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so the
// sentinels below can be matched with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is. Use errors.As to read Reason or Code.
var (
	ErrMalformedResponse        = &Error{Kind: KindMalformedResponse}
	ErrInvalidKeyphrase         = &Error{Kind: KindInvalidKeyphrase}
	ErrTooManyKeyphrases        = &Error{Kind: KindTooManyKeyphrases}
	ErrUnrecognizedStatusCode   = &Error{Kind: KindUnrecognizedStatusCode}
	ErrTransport                = &Error{Kind: KindTransport}
	ErrReportNotFound           = &Error{Kind: KindReportNotFound}
	ErrInvalidReportID          = &Error{Kind: KindInvalidReportID}
	ErrReportQueueFull          = &Error{Kind: KindReportQueueFull}
	ErrQuotaExhausted           = &Error{Kind: KindQuotaExhausted}
	ErrAuthenticationFailed     = &Error{Kind: KindAuthenticationFailed}
	ErrAccessDenied             = &Error{Kind: KindAccessDenied}
	ErrServiceInternal          = &Error{Kind: KindServiceInternal}
	ErrInvalidRequest           = &Error{Kind: KindInvalidRequest}
	ErrReportNotReady           = &Error{Kind: KindReportNotReady}
	ErrInvalidRequestParameters = &Error{Kind: KindInvalidRequestParameters}
	ErrUnexpectedResult         = &Error{Kind: KindUnexpectedResult}
)

func malformed(reason string) *Error {
	return &Error{Kind: KindMalformedResponse, Reason: reason}
}

func invalidKeyphrase(reason string) *Error {
	return &Error{Kind: KindInvalidKeyphrase, Reason: reason}
}

// MapServiceErrorCode converts an error_code reported by the service into
// an *Error. Codes that are not listed never guess a bucket; they come back
// as KindUnrecognizedStatusCode carrying the raw code.
func MapServiceErrorCode(code int64) *Error {
	switch code {
	case 24, 91:
		return &Error{Kind: KindReportNotFound, Code: code}
	case 22, 93:
		return &Error{Kind: KindInvalidReportID, Code: code}
	case 31:
		return &Error{Kind: KindReportQueueFull, Code: code}
	case 152:
		return &Error{Kind: KindQuotaExhausted, Code: code}
	case 53:
		return &Error{Kind: KindAuthenticationFailed, Code: code}
	case 58:
		return &Error{Kind: KindAccessDenied, Code: code}
	case 500:
		return &Error{Kind: KindServiceInternal, Code: code}
	case 501:
		return &Error{Kind: KindInvalidRequest, Code: code}
	case 74, 92:
		return &Error{Kind: KindReportNotReady, Code: code}
	case 71:
		return &Error{Kind: KindInvalidRequestParameters, Code: code}
	default:
		return &Error{Kind: KindUnrecognizedStatusCode, Code: code}
	}
}
