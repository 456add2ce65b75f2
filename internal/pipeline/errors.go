package pipeline

import "net/http"

// ErrorKind names the stage-level failure classes. Every failure is terminal
// for its request; nothing is retried.
type ErrorKind string

const (
	KindMissingFile         ErrorKind = "missing_file"
	KindUnsupportedFormat   ErrorKind = "unsupported_format"
	KindUnreadableDocument  ErrorKind = "unreadable_document"
	KindAnalysisUnavailable ErrorKind = "analysis_unavailable"
	KindRenderError         ErrorKind = "render_error"
	KindStorageUnavailable  ErrorKind = "storage_unavailable"
)

type Error struct {
	Kind    ErrorKind
	Message string // user-facing
	Err     error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps failure kinds onto response codes: client-input problems are
// 400, upstream-service outages are 502, rendering faults are 500.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindMissingFile, KindUnsupportedFormat, KindUnreadableDocument:
		return http.StatusBadRequest
	case KindAnalysisUnavailable, KindStorageUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func failure(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
