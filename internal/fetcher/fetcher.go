package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultTimeout     = 180 * time.Second
	DefaultMaxBodySize = 50 * 1024 * 1024

	userAgent = "getbot/1.0"
)

type Result struct {
	Status        int
	StatusText    string
	MediaType     string
	ContentLength int64
	Body          []byte
}

type Options struct {
	// BaseURL is the download endpoint; the source URL goes in its postUrl
	// query parameter.
	BaseURL     string
	Timeout     time.Duration
	MaxBodySize int64
	Client      *http.Client
	Logger      *log.Logger
}

type Fetcher struct {
	baseURL string
	timeout time.Duration
	maxBody int64
	client  *http.Client
	log     *log.Logger
}

func New(opts Options) *Fetcher {
	f := &Fetcher{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		maxBody: opts.MaxBodySize,
		client:  opts.Client,
		log:     opts.Logger,
	}
	if f.timeout <= 0 {
		f.timeout = DefaultTimeout
	}
	if f.maxBody <= 0 {
		f.maxBody = DefaultMaxBodySize
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	if f.log == nil {
		f.log = log.Default()
	}
	f.log = f.log.WithPrefix("fetcher")
	return f
}

func (f *Fetcher) DownloadURL(sourceURL string) string {
	sep := "?"
	if strings.Contains(f.baseURL, "?") {
		sep = "&"
	}
	return f.baseURL + sep + "postUrl=" + url.QueryEscape(sourceURL)
}

// Fetch performs one GET against endpoint and buffers the whole body. Statuses
// below 500 come back as a Result; everything else is a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindUnknown, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	f.log.Debug("GET", "url", endpoint)
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.classify(ctx, err)
	}
	defer resp.Body.Close()

	f.log.Debug("response headers",
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"content_length", resp.Header.Get("Content-Length"),
	)

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, &FetchError{Kind: KindHTTPStatus, Code: resp.StatusCode, Text: statusText(resp)}
	}

	if resp.ContentLength > f.maxBody {
		return nil, &FetchError{Kind: KindTooLarge, Limit: f.maxBody}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, f.classify(ctx, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, &FetchError{Kind: KindTooLarge, Limit: f.maxBody}
	}

	f.log.Debug("body received", "bytes", len(body), "took", time.Since(start).Round(time.Millisecond))

	return &Result{
		Status:        resp.StatusCode,
		StatusText:    statusText(resp),
		MediaType:     resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Body:          body,
	}, nil
}

func (f *Fetcher) classify(ctx context.Context, err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &FetchError{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: KindTimeout, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &FetchError{Kind: KindUnknown, Err: err}
	}
	return &FetchError{Kind: KindTransport, Err: err}
}

// statusText strips the numeric code from resp.Status, falling back to the
// canonical text when the server sent none.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
