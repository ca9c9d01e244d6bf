package fetcher

import "fmt"

type Kind int

const (
	KindUnknown Kind = iota
	KindTimeout
	KindHTTPStatus
	KindTransport
	KindTooLarge
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	case KindTransport:
		return "transport"
	case KindTooLarge:
		return "too_large"
	default:
		return "unknown"
	}
}

// FetchError is the only error type Fetch returns. Code and Text are set for
// KindHTTPStatus; Limit is set for KindTooLarge.
type FetchError struct {
	Kind  Kind
	Code  int
	Text  string
	Limit int64
	Err   error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "download request timed out"
	case KindHTTPStatus:
		return fmt.Sprintf("download API responded %d %s", e.Code, e.Text)
	case KindTooLarge:
		return fmt.Sprintf("maxContentLength size of %d exceeded", e.Limit)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "download failed"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
