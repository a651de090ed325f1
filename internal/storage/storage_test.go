package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base string
		key  string
		want string
	}{
		{base: "https://cdn.example.com", key: "logos/team/1/a.png", want: "https://cdn.example.com/logos/team/1/a.png"},
		{base: "https://cdn.example.com/assets/", key: "/logos/a.png", want: "https://cdn.example.com/assets/logos/a.png"},
	}
	for _, tt := range tests {
		got, err := PublicURL(tt.base, tt.key)
		if err != nil {
			t.Fatalf("public url: %v", err)
		}
		if got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}

	if _, err := PublicURL("", "key"); err == nil {
		t.Fatal("expected error for missing base url")
	}
}

func TestLogoKey(t *testing.T) {
	key := LogoKey("team", 12, "image/png")
	if !strings.HasPrefix(key, "logos/team/12/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key %q", key)
	}
	if key == LogoKey("team", 12, "image/png") {
		t.Fatal("expected keys to be unique")
	}
}

func TestReadImage(t *testing.T) {
	data, contentType, err := ReadImage(bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if contentType != "image/png" || len(data) != len(pngHeader) {
		t.Fatalf("unexpected result %q (%d bytes)", contentType, len(data))
	}

	if _, _, err := ReadImage(strings.NewReader("plain text")); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}

	large := append(append([]byte{}, pngHeader...), make([]byte, MaxLogoBytes)...)
	if _, _, err := ReadImage(bytes.NewReader(large)); err == nil {
		t.Fatal("expected oversized image to be rejected")
	}
}
