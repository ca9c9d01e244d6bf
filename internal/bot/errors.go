package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/coah80/getbot/internal/fetcher"
)

type InvalidURLError struct {
	URL    string
	Reason string
	Err    error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("Invalid URL: %s", e.Reason)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// StatusError is a download API response below 500 that was not a 200.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("La API respondió con código %d", e.Code)
}

type FailureReport struct {
	Title       string
	Detail      string
	OriginalURL string
}

const (
	KindInvalidURL   = "invalid_url"
	KindTimeout      = "timeout"
	KindUpstreamHTTP = "upstream_http"
	KindTransport    = "transport"
	KindUnknown      = "unknown"
)

const (
	titleTimeout    = "⏱️ La solicitud tardó demasiado tiempo."
	titleInvalidURL = "🔗 La URL proporcionada no es válida."
	titleGeneric    = "❌ Error al procesar el video"

	detailTimeout    = "La API podría estar ocupada, el video podría ser muy grande, o la plataforma está bloqueando la descarga."
	detailInvalidURL = "Verifica que hayas copiado la URL completa correctamente."
	detailAPI        = "La API no pudo procesar la solicitud."
	detailUnknown    = "Hubo un error al procesar tu solicitud."
)

// Classify turns a pipeline failure into the copy shown to the user. Rules are
// checked in order and the first match wins.
func Classify(err error, originalURL string) FailureReport {
	r := FailureReport{OriginalURL: originalURL}

	if isTimeout(err) {
		r.Title, r.Detail = titleTimeout, detailTimeout
		return r
	}

	var invalid *InvalidURLError
	if errors.As(err, &invalid) {
		r.Title, r.Detail = titleInvalidURL, detailInvalidURL
		return r
	}

	if code, text, ok := httpStatus(err); ok && code >= 400 {
		r.Title = fmt.Sprintf("❌ Error de la API: %d", code)
		r.Detail = orDefault(text, detailAPI)
		return r
	}

	if err != nil && err.Error() != "" {
		r.Title, r.Detail = titleGeneric, err.Error()
		return r
	}

	r.Title, r.Detail = titleGeneric, detailUnknown
	return r
}

// Kind labels err for metrics and alerts.
func Kind(err error) string {
	if err == nil {
		return KindUnknown
	}
	if isTimeout(err) {
		return KindTimeout
	}
	var invalid *InvalidURLError
	if errors.As(err, &invalid) {
		return KindInvalidURL
	}
	if _, _, ok := httpStatus(err); ok {
		return KindUpstreamHTTP
	}
	var fe *fetcher.FetchError
	if errors.As(err, &fe) && (fe.Kind == fetcher.KindTransport || fe.Kind == fetcher.KindTooLarge) {
		return KindTransport
	}
	return KindUnknown
}

func isTimeout(err error) bool {
	var fe *fetcher.FetchError
	if errors.As(err, &fe) && fe.Kind == fetcher.KindTimeout {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func httpStatus(err error) (int, string, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, se.Text, true
	}
	var fe *fetcher.FetchError
	if errors.As(err, &fe) && fe.Kind == fetcher.KindHTTPStatus {
		return fe.Code, fe.Text, true
	}
	return 0, "", false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
