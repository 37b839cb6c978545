package apify_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalk/apify"
)

func TestLoadConfig(t *testing.T) {
	// t.Setenv forbids t.Parallel.
	t.Setenv("APIFY_URL_PREFIX", "/v2")
	t.Setenv("APIFY_DEFAULT_MIMETYPE", "text/html")

	cfg, err := apify.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "/v2", cfg.URLPrefix)
	assert.Equal(t, "text/html", cfg.DefaultMimetype)
}

func TestConfigAppliesToExtension(t *testing.T) {
	t.Setenv("APIFY_URL_PREFIX", "/v2/")
	t.Setenv("APIFY_DEFAULT_MIMETYPE", "application/json")

	cfg, err := apify.LoadConfig()
	require.NoError(t, err)

	api := apify.New(apify.WithConfig(cfg))
	api.Get("/ping", func(r *http.Request) (any, error) {
		return map[string]any{"value": 200}, nil
	})

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	// The trailing slash in the prefix is normalized away.
	w := doJSON(t, mux, http.MethodGet, "/v2/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
