// Package apify turns plain functions into JSON API endpoints on any host
// dispatcher that understands http.Handler, such as *http.ServeMux. It records
// routes declared during startup, installs them under a configured URL prefix
// with a single RegisterRoutes call, coerces handler return values into
// serialized responses, and maps status-bearing Error values to structured
// JSON error bodies.
//
// The package does not parse HTTP, match routes, or manage connections; all of
// that belongs to the host dispatcher. It is a registration and
// response-shaping layer only.
//
// Basic usage:
//
//	api := apify.New(apify.WithPrefix("/api"))
//
//	api.Get("/ping", func(r *http.Request) (any, error) {
//		return map[string]any{"value": 200}, nil
//	})
//
//	mux := http.NewServeMux()
//	api.RegisterRoutes(mux)
//	http.ListenAndServe(":8080", mux)
//
// Handlers return their payload directly. A plain value is serialized with
// status 200, WithStatus attaches an explicit status code, and nil produces an
// empty 204 response. Returning an Error renders a JSON error body with the
// matching status code; any other error is passed to the configured
// ErrorHandler.
package apify
