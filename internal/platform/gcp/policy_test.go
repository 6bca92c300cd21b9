package gcp

import (
	"errors"
	"testing"
)

func testPolicy() ObjectPolicy {
	return ObjectPolicy{
		MaxBytes: 50 << 20,
		AllowedContentTypes: []string{
			"audio/mpeg",
			"audio/mp4",
			"audio/wav",
			"audio/ogg",
			"audio/aac",
			"application/octet-stream",
		},
	}
}

func TestObjectPolicyValidate(t *testing.T) {
	p := testPolicy()

	if err := p.Validate("audio/mpeg", 1<<20); err != nil {
		t.Fatalf("mp3 within limit rejected: %v", err)
	}
	if err := p.Validate("audio/mpeg", 50<<20); err != nil {
		t.Fatalf("exactly at limit rejected: %v", err)
	}
	if err := p.Validate("Audio/MPEG; charset=binary", 1024); err != nil {
		t.Fatalf("content type normalization failed: %v", err)
	}

	err := p.Validate("audio/mpeg", 50<<20+1)
	if !errors.Is(err, ErrObjectTooLarge) {
		t.Fatalf("oversized object: got %v", err)
	}

	err = p.Validate("video/mp4", 1024)
	if !errors.Is(err, ErrContentTypeNotAllowed) {
		t.Fatalf("non-audio content type: got %v", err)
	}
}

func TestContentTypeForKey(t *testing.T) {
	cases := map[string]string{
		"videos/abc/full_audio.mp3":        "audio/mpeg",
		"videos/abc/phrase_0_slowed.wav":   "audio/wav",
		"videos/abc/clip.M4A":              "audio/mp4",
		"videos/abc/clip.ogg?generation=1": "audio/ogg",
		"videos/abc/notes.txt":             "",
	}
	for key, want := range cases {
		if got := contentTypeForKey(key); got != want {
			t.Fatalf("contentTypeForKey(%q) = %q, want %q", key, got, want)
		}
	}
}
