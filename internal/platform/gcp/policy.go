package gcp

import (
	"fmt"
	"strings"
)

var (
	ErrObjectTooLarge        = fmt.Errorf("object exceeds maximum allowed size")
	ErrContentTypeNotAllowed = fmt.Errorf("content type not allowed")
)

// ObjectPolicy is the write-side policy for the audio bucket. Reads are
// public; the policy only constrains what the service itself will upload.
type ObjectPolicy struct {
	MaxBytes            int64
	AllowedContentTypes []string
}

func (p ObjectPolicy) Validate(contentType string, size int64) error {
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrObjectTooLarge, size, p.MaxBytes)
	}
	ct := normalizeContentType(contentType)
	for _, allowed := range p.AllowedContentTypes {
		if ct == normalizeContentType(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrContentTypeNotAllowed, contentType)
}

func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	// Drop parameters like "; charset=utf-8".
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	if s == "" {
		return ""
	}
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	switch {
	case strings.HasSuffix(s, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(s, ".m4a"), strings.HasSuffix(s, ".mp4"):
		return "audio/mp4"
	case strings.HasSuffix(s, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(s, ".ogg"), strings.HasSuffix(s, ".oga"):
		return "audio/ogg"
	case strings.HasSuffix(s, ".aac"):
		return "audio/aac"
	default:
		return ""
	}
}
