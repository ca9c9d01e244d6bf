// Package media maps upstream payloads onto Discord attachments: extension
// from the Content-Type header and the per-attachment size gate.
package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MiB = 1024 * 1024

	// AttachmentLimit is Discord's upload limit for guilds without boosts.
	AttachmentLimit = 25 * MiB

	DefaultExtension = ".mp4"
)

// Order matters: the first substring hit wins.
var extensions = []struct {
	mediaType string
	ext       string
}{
	{"video/mp4", ".mp4"},
	{"video/quicktime", ".mov"},
	{"video/mpeg", ".mpeg"},
	{"video/webm", ".webm"},
	{"video/x-msvideo", ".avi"},
}

func Classify(mediaType string) string {
	mt := strings.ToLower(mediaType)
	for _, e := range extensions {
		if strings.Contains(mt, e.mediaType) {
			return e.ext
		}
	}
	return DefaultExtension
}

type Verdict struct {
	OK      bool
	Bytes   int
	SizeMiB float64
}

func Check(body []byte) Verdict {
	return Verdict{
		OK:      len(body) <= AttachmentLimit,
		Bytes:   len(body),
		SizeMiB: float64(len(body)) / MiB,
	}
}

func FormatMiB(size float64) string {
	return fmt.Sprintf("%.2f MB", size)
}

func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("video_%d%s", now.UnixMilli(), ext)
}

// Sniff reports the MIME type detected from the payload's leading bytes. It is
// advisory only; the header still decides the extension.
func Sniff(body []byte) string {
	return mimetype.Detect(body).String()
}

func LooksLikeVideo(sniffed string) bool {
	return strings.HasPrefix(sniffed, "video/")
}
