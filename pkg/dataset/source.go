package dataset

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope/pkg/constants"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/logging"
)

// Source yields the raw bytes of one dataset.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Open returns a reader over the dataset. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a dataset from the local filesystem.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s FileSource) Name() string { return s.Path }

// Open implements Source.
func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "dataset", ID: s.Path}
		}
		return nil, errors.WrapIO("open", s.Path, err)
	}
	return f, nil
}

// BytesSource serves a dataset held in memory.
type BytesSource struct {
	Label string
	Data  []byte
}

// Name implements Source.
func (s BytesSource) Name() string { return s.Label }

// Open implements Source.
func (s BytesSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

// HTTPSource fetches a dataset over HTTP. Transient failures are retried.
type HTTPSource struct {
	URL     string
	Timeout time.Duration
	Retries int
}

// NewHTTPSource returns an HTTPSource with the default timeout and retry budget.
func NewHTTPSource(rawURL string) *HTTPSource {
	return &HTTPSource{URL: rawURL, Timeout: constants.DefaultHTTPTimeout, Retries: 2}
}

// Name implements Source.
func (s *HTTPSource) Name() string { return s.URL }

// Open implements Source. Any non-2xx status is an error.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.WrapValidation("url", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := s.client(logging.FromContext(ctx)).Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &errors.FetchError{URL: s.URL, Message: "request failed", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, errors.NewFetchError(s.URL, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return resp.Body, nil
}

func (s *HTTPSource) client(logger *zerolog.Logger) *retryablehttp.Client {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}
	c := retryablehttp.NewClient()
	c.HTTPClient = &http.Client{Timeout: timeout}
	c.RetryMax = max(s.Retries, 0)
	c.RetryWaitMin = 100 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c.Logger = retryLogger{logger}
	return c
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger.
type retryLogger struct {
	l *zerolog.Logger
}

func (r retryLogger) Error(msg string, kv ...any) { r.emit(r.l.Error(), msg, kv) }
func (r retryLogger) Warn(msg string, kv ...any)  { r.emit(r.l.Warn(), msg, kv) }
func (r retryLogger) Info(msg string, kv ...any)  { r.emit(r.l.Debug(), msg, kv) }
func (r retryLogger) Debug(msg string, kv ...any) { r.emit(r.l.Trace(), msg, kv) }

func (r retryLogger) emit(ev *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}

// SourceFor picks a Source for a location: http and https URLs are fetched,
// file URLs and anything else are read from disk.
func SourceFor(location string, timeout time.Duration) Source {
	if u, err := url.Parse(location); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			src := NewHTTPSource(location)
			if timeout > 0 {
				src.Timeout = timeout
			}
			return src
		case "file":
			return FileSource{Path: u.Path}
		}
	}
	return FileSource{Path: location}
}
