package apify

import (
	"net/http"

	"github.com/google/uuid"
)

// Preprocessor runs before the handler. A returned error short-circuits the
// request; return an Error such as ErrUnauthorized to reject it with a
// structured body.
type Preprocessor func(r *http.Request) error

// Postprocessor transforms the handler's raw return value before coercion.
type Postprocessor func(r *http.Request, raw any) (any, error)

// Finalizer runs after the Result exists and before it is rendered,
// typically to set response headers. A returned Error replaces the response.
type Finalizer func(res *Result) error

// Preprocessor registers preprocessors; they run in registration order.
func (a *Apify) Preprocessor(fns ...Preprocessor) {
	a.preprocessors = append(a.preprocessors, fns...)
}

// Postprocessor registers postprocessors; they run in registration order.
func (a *Apify) Postprocessor(fns ...Postprocessor) {
	a.postprocessors = append(a.postprocessors, fns...)
}

// Finalizer registers finalizers; they run in registration order.
func (a *Apify) Finalizer(fns ...Finalizer) {
	a.finalizers = append(a.finalizers, fns...)
}

// RequestID returns a finalizer that stamps each response with a unique
// X-Request-ID header for tracing.
func RequestID() Finalizer {
	return RequestIDWithHeader("X-Request-ID")
}

// RequestIDWithHeader is RequestID with a custom header name.
func RequestIDWithHeader(name string) Finalizer {
	return func(res *Result) error {
		res.SetHeader(name, uuid.New().String())
		return nil
	}
}
