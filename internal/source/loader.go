// Package source loads pages and scripts from local files, http(s) URLs
// and data URLs.
package source

import (
	"compress/gzip"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrStatus is wrapped by errors for responses outside the 2xx/3xx range.
var ErrStatus = errors.New("unexpected HTTP status")

// Resource is a loaded page or script.
type Resource struct {
	URL         string // absolute URL or file path the content came from
	Content     []byte
	ContentType string
}

// AsString returns the resource content as a string.
func (r *Resource) AsString() string {
	return string(r.Content)
}

// Loader fetches resources. The zero value is not usable; use New.
type Loader struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	log        logrus.FieldLogger
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.httpClient = c
	}
}

// WithLogger sets the logger for fetch events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		timeout:   30 * time.Second,
		userAgent: "slotshim/1.0",
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.httpClient == nil {
		l.httpClient = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load fetches ref. A ref with an http, https, file or data scheme is loaded
// accordingly; anything else is a local path.
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	switch scheme(ref) {
	case "data":
		return loadDataURL(ref)
	case "http", "https":
		return l.loadHTTP(ctx, ref)
	case "file":
		u, err := url.Parse(ref)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", ref)
		}
		return loadFile(u.Path)
	}
	return loadFile(ref)
}

// Resolve resolves ref against base, which is a URL or a local path.
func Resolve(base, ref string) (string, error) {
	if scheme(ref) != "" || base == "" {
		return ref, nil
	}
	switch scheme(base) {
	case "http", "https", "file":
		b, err := url.Parse(base)
		if err != nil {
			return "", errors.Wrapf(err, "parsing %s", base)
		}
		r, err := url.Parse(ref)
		if err != nil {
			return "", errors.Wrapf(err, "parsing %s", ref)
		}
		return b.ResolveReference(r).String(), nil
	case "data":
		return ref, nil
	}
	if filepath.IsAbs(ref) {
		return ref, nil
	}
	return filepath.Join(filepath.Dir(base), ref), nil
}

// scheme returns the lowercased URL scheme of ref, or "" when ref has none
// that Load understands.
func scheme(ref string) string {
	i := strings.Index(ref, ":")
	if i <= 0 {
		return ""
	}
	s := strings.ToLower(ref[:i])
	switch s {
	case "http", "https", "file", "data":
		return s
	}
	return ""
}

func loadFile(path string) (*Resource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return &Resource{
		URL:         path,
		Content:     content,
		ContentType: guessContentType(path),
	}, nil
}

func (l *Loader) loadHTTP(ctx context.Context, ref string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "creating request for %s", ref)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", ref)
	}
	defer resp.Body.Close()

	l.log.WithFields(logrus.Fields{
		"url":     ref,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("source: fetched")

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, errors.Wrapf(ErrStatus, "%s: %s", ref, resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "decompressing %s", ref)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", ref)
	}

	mediaType, _ := parseContentType(resp.Header.Get("Content-Type"))
	return &Resource{
		URL:         resp.Request.URL.String(),
		Content:     body,
		ContentType: mediaType,
	}, nil
}

// loadDataURL decodes data:[<mediatype>][;base64],<data>.
func loadDataURL(ref string) (*Resource, error) {
	content := ref[len("data:"):]
	comma := strings.Index(content, ",")
	if comma == -1 {
		return nil, errors.New("invalid data URL: missing comma")
	}
	metadata, data := content[:comma], content[comma+1:]

	mediaType := "text/plain"
	isBase64 := false
	for i, part := range strings.Split(metadata, ";") {
		switch {
		case part == "base64":
			isBase64 = true
		case i == 0 && part != "" && !strings.Contains(part, "="):
			mediaType = part
		}
	}

	var decoded []byte
	if isBase64 {
		b, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, errors.Wrap(err, "decoding base64 data URL")
		}
		decoded = b
	} else {
		s, err := url.PathUnescape(data)
		if err != nil {
			return nil, errors.Wrap(err, "decoding data URL")
		}
		decoded = []byte(s)
	}

	return &Resource{URL: ref, Content: decoded, ContentType: mediaType}, nil
}

// parseContentType splits a Content-Type header into media type and charset.
func parseContentType(contentType string) (mediaType, charset string) {
	if contentType == "" {
		return "application/octet-stream", ""
	}
	parts := strings.Split(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(parts[0]))
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(strings.ToLower(part), "charset=") {
			charset = strings.ToLower(strings.Trim(part[len("charset="):], `"`))
			break
		}
	}
	return mediaType, charset
}

func guessContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "text/html"
	case ".js", ".mjs":
		return "text/javascript"
	case ".json":
		return "application/json"
	}
	return "application/octet-stream"
}
