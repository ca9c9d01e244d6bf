package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coah80/getbot/internal/fetcher"
)

func TestClassify(t *testing.T) {
	const src = "https://www.tiktok.com/@user/video/123"

	tests := []struct {
		name       string
		err        error
		wantTitle  string
		wantDetail string
		wantKind   string
	}{
		{
			name:       "fetch timeout",
			err:        &fetcher.FetchError{Kind: fetcher.KindTimeout, Err: context.DeadlineExceeded},
			wantTitle:  "⏱️ La solicitud tardó demasiado tiempo.",
			wantDetail: detailTimeout,
			wantKind:   KindTimeout,
		},
		{
			name:       "bare deadline",
			err:        fmt.Errorf("waiting: %w", context.DeadlineExceeded),
			wantTitle:  "⏱️ La solicitud tardó demasiado tiempo.",
			wantDetail: detailTimeout,
			wantKind:   KindTimeout,
		},
		{
			name:       "invalid url",
			err:        ValidateURL("not a url"),
			wantTitle:  "🔗 La URL proporcionada no es válida.",
			wantDetail: "Verifica que hayas copiado la URL completa correctamente.",
			wantKind:   KindInvalidURL,
		},
		{
			name:       "non-200 below 500",
			err:        &StatusError{Code: 404, Text: "Not Found"},
			wantTitle:  "❌ Error de la API: 404",
			wantDetail: "Not Found",
			wantKind:   KindUpstreamHTTP,
		},
		{
			name:       "status without text",
			err:        &StatusError{Code: 429},
			wantTitle:  "❌ Error de la API: 429",
			wantDetail: "La API no pudo procesar la solicitud.",
			wantKind:   KindUpstreamHTTP,
		},
		{
			name:       "upstream server error",
			err:        &fetcher.FetchError{Kind: fetcher.KindHTTPStatus, Code: 503, Text: "Service Unavailable"},
			wantTitle:  "❌ Error de la API: 503",
			wantDetail: "Service Unavailable",
			wantKind:   KindUpstreamHTTP,
		},
		{
			name:       "2xx other than 200",
			err:        &StatusError{Code: 204, Text: "No Content"},
			wantTitle:  "❌ Error al procesar el video",
			wantDetail: "La API respondió con código 204",
			wantKind:   KindUpstreamHTTP,
		},
		{
			name:       "transport",
			err:        &fetcher.FetchError{Kind: fetcher.KindTransport, Err: errors.New("connection reset by peer")},
			wantTitle:  "❌ Error al procesar el video",
			wantDetail: "connection reset by peer",
			wantKind:   KindTransport,
		},
		{
			name:       "body ceiling",
			err:        &fetcher.FetchError{Kind: fetcher.KindTooLarge, Limit: 52428800},
			wantTitle:  "❌ Error al procesar el video",
			wantDetail: "maxContentLength size of 52428800 exceeded",
			wantKind:   KindTransport,
		},
		{
			name:       "generic message",
			err:        errors.New("something broke"),
			wantTitle:  "❌ Error al procesar el video",
			wantDetail: "something broke",
			wantKind:   KindUnknown,
		},
		{
			name:       "empty message",
			err:        errors.New(""),
			wantTitle:  "❌ Error al procesar el video",
			wantDetail: "Hubo un error al procesar tu solicitud.",
			wantKind:   KindUnknown,
		},
		{
			name:       "nil",
			err:        nil,
			wantTitle:  "❌ Error al procesar el video",
			wantDetail: "Hubo un error al procesar tu solicitud.",
			wantKind:   KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify(tt.err, src)
			assert.Equal(t, tt.wantTitle, r.Title)
			assert.Equal(t, tt.wantDetail, r.Detail)
			assert.Equal(t, src, r.OriginalURL)
			assert.Equal(t, tt.wantKind, Kind(tt.err))

			assert.Equal(t, r, Classify(tt.err, src), "classification must be deterministic")
		})
	}
}

func TestClassify_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("fetching: %w", &fetcher.FetchError{Kind: fetcher.KindHTTPStatus, Code: 500, Text: "Internal Server Error"})
	r := Classify(err, "https://x.com/a")
	assert.Equal(t, "❌ Error de la API: 500", r.Title)
	assert.Equal(t, "Internal Server Error", r.Detail)
}
