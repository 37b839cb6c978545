package apify

import (
	"bytes"
	"encoding/json"
	"html"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Serializer converts a handler's payload into a response body. The request
// is passed through so serializers can consult query parameters, as the
// JSON-P serializer does for its callback name.
type Serializer func(r *http.Request, v any) ([]byte, error)

// Mimetypes with built-in serializers.
const (
	MimetypeJSON      = "application/json"
	MimetypeJS        = "application/javascript"
	MimetypeJSONP     = "application/json-p"
	MimetypeTextJSONP = "text/json-p"
	MimetypeHTML      = "text/html"
)

// jsonpCallbackParam is the query parameter carrying the JSON-P padding name.
const jsonpCallbackParam = "callback"

func defaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		MimetypeJSON:      ToJSON,
		MimetypeJS:        ToJSONP,
		MimetypeJSONP:     ToJSONP,
		MimetypeTextJSONP: ToJSONP,
		MimetypeHTML:      ToHTML,
	}
}

// ToJSON serializes the payload as compact JSON.
func ToJSON(_ *http.Request, v any) ([]byte, error) {
	return json.Marshal(v)
}

// ToJSONP serializes the payload as JSON wrapped in the callback named by the
// "callback" query parameter. Without a callback the output is bare JSON.
func ToJSONP(r *http.Request, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	callback := r.URL.Query().Get(jsonpCallbackParam)
	if callback == "" {
		return b, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(callback) + len(b) + 3)
	buf.WriteString(callback)
	buf.WriteByte('(')
	buf.Write(b)
	buf.WriteString(");")
	return buf.Bytes(), nil
}

// ToHTML dumps the payload as indented JSON inside a minimal HTML page, for
// inspecting endpoints in a browser.
func ToHTML(_ *http.Request, v any) ([]byte, error) {
	dump, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!doctype html>\n<html><head><title>API dump</title></head><body><pre>")
	buf.WriteString(html.EscapeString(string(dump)))
	buf.WriteString("</pre></body></html>\n")
	return buf.Bytes(), nil
}

// Serializer registers fn as the serializer for mimetype, replacing any
// previous registration. Must be called before RegisterRoutes.
func (a *Apify) Serializer(mimetype string, fn Serializer) {
	a.serializers[mimetype] = fn
}

// acceptEntry is a single parsed Accept header alternative.
type acceptEntry struct {
	mimetype string
	quality  float64
}

// parseAccept splits an Accept header into its alternatives, ordered by
// descending quality then header position. Malformed parts are skipped.
func parseAccept(header string) []acceptEntry {
	var entries []acceptEntry
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		mimetype := strings.ToLower(strings.TrimSpace(fields[0]))
		if mimetype == "" {
			continue
		}

		quality := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if value, ok := strings.CutPrefix(param, "q="); ok {
				if q, err := strconv.ParseFloat(value, 64); err == nil {
					quality = q
				}
			}
		}
		if quality <= 0 {
			continue
		}
		entries = append(entries, acceptEntry{mimetype: mimetype, quality: quality})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].quality > entries[j].quality
	})
	return entries
}

// bestMimetype picks the response mimetype for the request. A wildcard
// matching the default mimetype selects the default; otherwise the highest
// quality Accept alternative with a registered serializer wins. An empty
// string means nothing acceptable was found; clients must send an explicit
// Accept header.
func (a *Apify) bestMimetype(r *http.Request) string {
	entries := parseAccept(r.Header.Get("Accept"))

	defType, _, _ := strings.Cut(a.defaultMimetype, "/")
	for _, e := range entries {
		if e.mimetype == "*/*" || e.mimetype == defType+"/*" || e.mimetype == "*" {
			return a.defaultMimetype
		}
	}

	for _, e := range entries {
		if _, ok := a.serializers[e.mimetype]; ok {
			return e.mimetype
		}
	}
	return ""
}

// negotiate resolves the serializer for the request. On failure it returns
// the default mimetype and serializer alongside ErrNotAcceptable so the 406
// body can still be rendered in a format the API speaks.
func (a *Apify) negotiate(r *http.Request) (string, Serializer, error) {
	if mimetype := a.bestMimetype(r); mimetype != "" {
		return mimetype, a.serializers[mimetype], nil
	}
	return a.defaultMimetype, a.serializers[a.defaultMimetype], ErrNotAcceptable
}
