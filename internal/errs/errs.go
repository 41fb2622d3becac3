// Package errs defines the typed error taxonomy for the RAG pipeline.
// Errors are classified where they occur (missing credential, upstream HTTP
// failure, unreadable corpus file) so the HTTP layer can map them to
// responses without re-deriving intent from message text.
package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindUpstream is a generic network/API failure from an embedding,
	// vector-store, or generation call. The default for unclassified errors.
	KindUpstream Kind = iota
	// KindValidation is a malformed or missing request field.
	KindValidation
	// KindCredential is a missing or rejected provider credential.
	KindCredential
	// KindInputFile means the corpus source file could not be read.
	KindInputFile
)

// Error carries the failure kind plus the provider and upstream HTTP status
// when known. There is no retry anywhere: every Error bubbles to the request
// boundary unchanged.
type Error struct {
	Kind     Kind
	Provider string // "openai", "upstage", "qdrant" when known
	Status   int    // upstream HTTP status when known
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	prefix := ""
	if e.Provider != "" {
		prefix = e.Provider + ": "
	}
	if e.Status != 0 {
		return fmt.Sprintf("%sstatus %d: %s", prefix, e.Status, msg)
	}
	return prefix + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a request-validation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Credential creates a missing/invalid-credential error for a provider.
func Credential(provider, message string) *Error {
	return &Error{Kind: KindCredential, Provider: provider, Message: message}
}

// Upstream wraps a generic upstream failure for a provider.
func Upstream(provider string, err error) *Error {
	return &Error{Kind: KindUpstream, Provider: provider, Err: err}
}

// UpstreamStatus creates an upstream error carrying the HTTP status and
// response message returned by the provider.
func UpstreamStatus(provider string, status int, message string) *Error {
	return &Error{Kind: KindUpstream, Provider: provider, Status: status, Message: message}
}

// InputFile wraps a corpus-file read failure.
func InputFile(path string, err error) *Error {
	return &Error{Kind: KindInputFile, Message: "read corpus file " + path, Err: err}
}

// FromAPI classifies an openai-go SDK error for the given provider.
// 401/403 responses are credential failures; other API errors keep their
// status and message; transport errors stay generic upstream failures.
func FromAPI(provider string, err error) *Error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == http.StatusUnauthorized || apierr.StatusCode == http.StatusForbidden {
			return &Error{Kind: KindCredential, Provider: provider, Status: apierr.StatusCode, Message: apierr.Message, Err: err}
		}
		return &Error{Kind: KindUpstream, Provider: provider, Status: apierr.StatusCode, Message: apierr.Message, Err: err}
	}
	return Upstream(provider, err)
}

// KindOf returns the Kind of err, or KindUpstream for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

// ProviderOf returns the provider label of err, or "" if unknown.
func ProviderOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Provider
	}
	return ""
}

// StatusOf returns the upstream HTTP status of err, or 0 if unknown.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
