package apify

import "net/http"

// Result is the normalized response shape handed to finalizers and the
// serialization step: a payload, a status code, and optional extra headers.
// Handlers that need more than a 200 wrap their payload in a Result via
// WithStatus or NoContent; a bare payload is coerced to a 200 Result.
type Result struct {
	Data       any
	StatusCode int
	Header     http.Header
}

// SetHeader sets an extra response header, allocating the header map on
// first use.
func (res *Result) SetHeader(key, value string) {
	if res.Header == nil {
		res.Header = make(http.Header)
	}
	res.Header.Set(key, value)
}

// WithStatus pairs a payload with an explicit status code.
func WithStatus(v any, status int) *Result {
	return &Result{Data: v, StatusCode: status}
}

// NoContent creates an empty 204 No Content result.
func NoContent() *Result {
	return &Result{StatusCode: http.StatusNoContent}
}

// coerce normalizes a handler's raw return value into a Result.
// Supported shapes: nil (empty 204 body), *Result or Result (explicit
// status), and any other value (serialized with status 200).
func coerce(raw any) *Result {
	switch v := raw.(type) {
	case nil:
		return &Result{StatusCode: http.StatusNoContent}
	case *Result:
		if v == nil {
			return &Result{StatusCode: http.StatusNoContent}
		}
		return fillStatus(v)
	case Result:
		return fillStatus(&v)
	default:
		return &Result{Data: raw, StatusCode: http.StatusOK}
	}
}

// fillStatus supplies the default status for results built without one:
// 204 for a nil payload, 200 otherwise.
func fillStatus(res *Result) *Result {
	if res.StatusCode == 0 {
		if res.Data == nil {
			res.StatusCode = http.StatusNoContent
		} else {
			res.StatusCode = http.StatusOK
		}
	}
	return res
}

// bodyless reports whether a status code forbids a response body.
func bodyless(status int) bool {
	return status == http.StatusNoContent || status == http.StatusNotModified
}
