package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxLogoBytes caps uploaded logo size.
const MaxLogoBytes = 2 << 20

var ErrUnsupportedImage = errors.New("logo must be a PNG, JPEG, GIF or WebP image")

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ReadImage reads at most MaxLogoBytes from r and sniffs its content type.
func ReadImage(r io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxLogoBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrUnsupportedImage
	}
	if len(data) > MaxLogoBytes {
		return nil, "", fmt.Errorf("logo exceeds %d bytes", MaxLogoBytes)
	}
	contentType := http.DetectContentType(data)
	if _, ok := imageExtensions[contentType]; !ok {
		return nil, "", ErrUnsupportedImage
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	return imageExtensions[contentType]
}
