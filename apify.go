package apify

import (
	"errors"
	"log/slog"
	"net/http"
)

// HandlerFunc is a plain API endpoint. It returns the response payload (a
// value serialized with status 200, a *Result for an explicit status, or nil
// for an empty 204 body) and an error. A returned Error renders as a JSON
// error body; any other error goes to the configured ErrorHandler.
type HandlerFunc func(r *http.Request) (any, error)

// ErrorHandler handles errors that are not Error values, the analog of the
// host framework's own error handling.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Dispatcher is the host framework hook routes are installed into.
// *http.ServeMux satisfies it.
type Dispatcher interface {
	Handle(pattern string, handler http.Handler)
}

// routeEntry is a recorded path/methods/handler association awaiting
// installation. Immutable after creation except for the installed flag.
type routeEntry struct {
	pattern   string
	methods   []string
	handler   HandlerFunc
	installed bool
}

// Apify accumulates route declarations during startup and, per matched
// request, wraps the registered handler with content negotiation, hooks,
// response coercion and error translation. The zero value is not usable;
// construct with New.
type Apify struct {
	prefix          string
	defaultMimetype string
	log             *slog.Logger
	errorHandler    ErrorHandler
	serializers     map[string]Serializer
	preprocessors   []Preprocessor
	postprocessors  []Postprocessor
	finalizers      []Finalizer
	routes          []routeEntry
}

// New creates the extension with the given options.
func New(opts ...Option) *Apify {
	a := &Apify{
		defaultMimetype: MimetypeJSON,
		log:             slog.Default(),
		errorHandler:    defaultErrorHandler,
		serializers:     defaultSerializers(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Route records a handler for the given pattern and HTTP methods without
// altering its behavior. Methods default to GET. Nothing is installed until
// RegisterRoutes runs.
func (a *Apify) Route(pattern string, fn HandlerFunc, methods ...string) {
	if len(methods) == 0 {
		methods = []string{http.MethodGet}
	}
	a.routes = append(a.routes, routeEntry{
		pattern: pattern,
		methods: methods,
		handler: fn,
	})
}

// Get records a GET route.
func (a *Apify) Get(pattern string, fn HandlerFunc) {
	a.Route(pattern, fn, http.MethodGet)
}

// Post records a POST route.
func (a *Apify) Post(pattern string, fn HandlerFunc) {
	a.Route(pattern, fn, http.MethodPost)
}

// Put records a PUT route.
func (a *Apify) Put(pattern string, fn HandlerFunc) {
	a.Route(pattern, fn, http.MethodPut)
}

// Patch records a PATCH route.
func (a *Apify) Patch(pattern string, fn HandlerFunc) {
	a.Route(pattern, fn, http.MethodPatch)
}

// Delete records a DELETE route.
func (a *Apify) Delete(pattern string, fn HandlerFunc) {
	a.Route(pattern, fn, http.MethodDelete)
}

// RegisterRoutes installs every route recorded since the last call into the
// host dispatcher, each under the configured URL prefix as a
// "METHOD prefix/pattern" entry. Entries are consumed exactly once, so
// calling it again registers nothing new and never duplicates dispatcher
// entries. Method dispatch and pattern matching follow the host's own rules.
func (a *Apify) RegisterRoutes(host Dispatcher) {
	for i := range a.routes {
		entry := &a.routes[i]
		if entry.installed {
			continue
		}
		h := a.dispatch(entry.handler)
		for _, method := range entry.methods {
			host.Handle(method+" "+a.prefix+entry.pattern, h)
		}
		entry.installed = true
	}
}

// dispatch wraps a handler into the per-request pipeline: negotiate the
// serializer, run preprocessors, invoke the handler, run postprocessors,
// coerce the raw value into a Result, run finalizers, render.
func (a *Apify) dispatch(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mimetype, serialize, err := a.negotiate(r)
		if err != nil {
			a.fail(w, r, mimetype, serialize, err)
			return
		}

		raw, err := a.invoke(r, fn)
		if err != nil {
			a.fail(w, r, mimetype, serialize, err)
			return
		}

		res := coerce(raw)
		for _, finalize := range a.finalizers {
			if err := finalize(res); err != nil {
				a.fail(w, r, mimetype, serialize, err)
				return
			}
		}

		a.render(w, r, mimetype, serialize, res)
	})
}

// invoke runs preprocessors, the handler, and postprocessors in order,
// short-circuiting on the first error.
func (a *Apify) invoke(r *http.Request, fn HandlerFunc) (any, error) {
	for _, pre := range a.preprocessors {
		if err := pre(r); err != nil {
			return nil, err
		}
	}

	raw, err := fn(r)
	if err != nil {
		return nil, err
	}

	for _, post := range a.postprocessors {
		raw, err = post(r, raw)
		if err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// fail translates an error into a response. Error values render as JSON
// error bodies with their status code (zero status coerced to 500); anything
// else is handed to the configured ErrorHandler. Finalizers do not run on
// error responses.
func (a *Apify) fail(w http.ResponseWriter, r *http.Request, mimetype string, serialize Serializer, err error) {
	var apiErr Error
	if !errors.As(err, &apiErr) {
		a.logException(r, http.StatusInternalServerError, err)
		a.errorHandler(w, r, err)
		return
	}

	status := apiErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	a.logException(r, status, apiErr)

	a.render(w, r, mimetype, serialize, &Result{
		Data:       errorBody{Error: http.StatusText(status), Message: apiErr.Message},
		StatusCode: status,
	})
}

// render serializes the result and writes it out. Serialization happens
// before any write so a failing serializer still produces a clean 500
// through the error handler.
func (a *Apify) render(w http.ResponseWriter, r *http.Request, mimetype string, serialize Serializer, res *Result) {
	var body []byte
	if !bodyless(res.StatusCode) {
		var err error
		body, err = serialize(r, res.Data)
		if err != nil {
			a.logException(r, http.StatusInternalServerError, err)
			a.errorHandler(w, r, err)
			return
		}
	}

	header := w.Header()
	for key, values := range res.Header {
		for _, value := range values {
			header.Add(key, value)
		}
	}
	if body != nil {
		header.Set("Content-Type", mimetype+"; charset=utf-8")
	}

	w.WriteHeader(res.StatusCode)
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			a.log.ErrorContext(r.Context(), "response write failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()))
		}
	}
}

// logException records a request failure: server errors at Error level,
// client errors at Info.
func (a *Apify) logException(r *http.Request, status int, err error) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.log.LogAttrs(r.Context(), level, "exception on "+r.Method+" "+r.URL.Path,
		slog.Int("status", status),
		slog.String("error", err.Error()))
}

// defaultErrorHandler is the fallback for errors the extension does not
// recognize, mirroring a host framework's generic 500.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
