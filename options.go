package apify

import (
	"log/slog"
	"strings"
)

// Option configures an Apify instance during creation.
type Option func(*Apify)

// WithPrefix sets the URL prefix routes are installed under. The prefix is
// normalized to a leading slash and no trailing slash; an empty prefix mounts
// routes at the dispatcher root.
func WithPrefix(prefix string) Option {
	return func(a *Apify) {
		a.prefix = normalizePrefix(prefix)
	}
}

// WithDefaultMimetype sets the mimetype used when the client accepts any
// format, and the format 406 responses are rendered in. A serializer must be
// registered for it.
func WithDefaultMimetype(mimetype string) Option {
	return func(a *Apify) {
		if mimetype != "" {
			a.defaultMimetype = mimetype
		}
	}
}

// WithLogger sets the logger for request exception logging.
func WithLogger(log *slog.Logger) Option {
	return func(a *Apify) {
		if log != nil {
			a.log = log
		}
	}
}

// WithErrorHandler sets the handler for errors that are not Error values.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *Apify) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithConfig applies an environment-loaded Config.
func WithConfig(cfg Config) Option {
	return func(a *Apify) {
		a.prefix = normalizePrefix(cfg.URLPrefix)
		if cfg.DefaultMimetype != "" {
			a.defaultMimetype = cfg.DefaultMimetype
		}
	}
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
