package apify_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalk/apify"
)

// do performs a request with an arbitrary Accept header and target.
func do(t *testing.T, mux *http.ServeMux, target, accept string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestContentNegotiation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		accept          string
		target          string
		wantContentType string
		wantBody        string
	}{
		{
			name:            "json",
			accept:          "application/json",
			target:          "/ping",
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"value":200}`,
		},
		{
			name:            "wildcard_selects_default",
			accept:          "*/*",
			target:          "/ping",
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"value":200}`,
		},
		{
			name:            "subtype_wildcard_of_default_selects_default",
			accept:          "application/*",
			target:          "/ping",
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"value":200}`,
		},
		{
			name:            "jsonp_without_callback_is_bare_json",
			accept:          "application/javascript",
			target:          "/ping",
			wantContentType: "application/javascript; charset=utf-8",
			wantBody:        `{"value":200}`,
		},
		{
			name:            "jsonp_with_callback_is_padded",
			accept:          "application/json-p",
			target:          "/ping?callback=console.log",
			wantContentType: "application/json-p; charset=utf-8",
			wantBody:        `console.log({"value":200});`,
		},
		{
			name:            "quality_ordering_wins",
			accept:          "text/html;q=0.1, application/json",
			target:          "/ping",
			wantContentType: "application/json; charset=utf-8",
			wantBody:        `{"value":200}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := pingAPI()
			mux := http.NewServeMux()
			api.RegisterRoutes(mux)

			w := do(t, mux, tt.target, tt.accept)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantContentType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestNegotiationHTMLDump(t *testing.T) {
	t.Parallel()

	api := pingAPI()
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	w := do(t, mux, "/ping", "text/html")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<pre>")
	assert.Contains(t, w.Body.String(), "&#34;value&#34;: 200")
}

func TestNegotiationFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		accept string
	}{
		{name: "missing_accept_header", accept: ""},
		{name: "unknown_mimetype", accept: "application/xml"},
		{name: "zero_quality_only", accept: "application/json;q=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := pingAPI()
			mux := http.NewServeMux()
			api.RegisterRoutes(mux)

			w := do(t, mux, "/ping", tt.accept)

			// The 406 body is rendered with the default serializer so the
			// client still gets a structured explanation.
			assert.Equal(t, http.StatusNotAcceptable, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), `"error":"Not Acceptable"`)
		})
	}
}

func TestCustomSerializer(t *testing.T) {
	t.Parallel()

	api := pingAPI()
	api.Serializer("application/vnd.ping", func(r *http.Request, v any) ([]byte, error) {
		return []byte(fmt.Sprintf("ping=%v", v)), nil
	})

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	w := do(t, mux, "/ping", "application/vnd.ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.ping; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "ping=map[value:200]", w.Body.String())
}

func TestSerializerFailureFallsBackToErrorHandler(t *testing.T) {
	t.Parallel()

	api := apify.New()
	api.Get("/broken", func(r *http.Request) (any, error) {
		// Channels cannot be marshalled to JSON.
		return map[string]any{"ch": make(chan int)}, nil
	})

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	w := do(t, mux, "/broken", "application/json")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDefaultMimetypeOption(t *testing.T) {
	t.Parallel()

	api := apify.New(apify.WithDefaultMimetype("text/html"))
	api.Get("/ping", func(r *http.Request) (any, error) {
		return map[string]any{"value": 200}, nil
	})

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	w := do(t, mux, "/ping", "*/*")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	require.Contains(t, w.Body.String(), "<pre>")
}
