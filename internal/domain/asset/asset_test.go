package asset

import (
	"strings"
	"testing"
	"time"
)

func TestTypeFromMime(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"", "document"},
		{"image/png", "image"},
		{"image/jpeg", "image"},
		{"video/mp4", "video"},
		{"audio/mpeg", "audio"},
		{"application/pdf", "document"},
		{"text/plain", "document"},
		{"text/html", "document"},
		{"application/zip", "data"},
		{"application/json", "data"},
		{"font/woff2", "document"},
	}

	for _, tc := range cases {
		if got := TypeFromMime(tc.mime); got != tc.want {
			t.Errorf("TypeFromMime(%q) = %q, want %q", tc.mime, got, tc.want)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	now := time.Now()

	if _, err := New("", "ws", "n", "", "c", "", "", 0, "", now); err == nil {
		t.Error("expected error for empty ID")
	}
	if _, err := New("id", "", "n", "", "c", "", "", 0, "", now); err == nil {
		t.Error("expected error for empty workspace ID")
	}
	if _, err := New("id", "ws", "", "", "c", "", "", 0, "", now); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := New("id", "ws", "n", "", strings.Repeat("x", MaxContentSize+1), "", "", 0, "", now); err == nil {
		t.Error("expected error for oversized content")
	}
}

func TestNew_DerivesAssetType(t *testing.T) {
	now := time.Now()

	a, err := New("id", "ws", "pic", "", "data", "", "image/png", 4, "pic.png", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.AssetType() != "image" {
		t.Errorf("derived type: got %q, want image", a.AssetType())
	}

	b, err := New("id", "ws", "note", "", "data", "note", "image/png", 4, "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.AssetType() != "note" {
		t.Errorf("explicit type should win, got %q", b.AssetType())
	}
}
