package client

import (
	"errors"
	"image"
	"io"

	// Register the decoders the pre-check accepts.
	_ "image/jpeg"
	_ "image/png"
)

// Minimum pixel dimensions an avatar must have.
const (
	minAvatarWidth  = 800
	minAvatarHeight = 800
)

var (
	// ErrDisallowedImageType is returned for declared types other than PNG/JPEG.
	ErrDisallowedImageType = errors.New("Only PNG and JPG uploads are allowed.")

	// ErrImageTooSmall is returned when the image is under 800x800 px.
	ErrImageTooSmall = errors.New("Image must be at least 800x800 px.")

	// ErrInvalidImage is returned when the bytes do not decode as an image.
	ErrInvalidImage = errors.New("Invalid image file.")
)

// CheckAvatarImage rejects an avatar locally before any bytes reach the
// server: the declared type must be PNG or JPEG and the image header must
// decode to at least 800x800 px. Only the header is read, never the full
// pixel data.
func CheckAvatarImage(contentType string, content io.Reader) error {
	if contentType != "image/png" && contentType != "image/jpeg" {
		return ErrDisallowedImageType
	}

	cfg, _, err := image.DecodeConfig(content)
	if err != nil {
		return ErrInvalidImage
	}

	if cfg.Width < minAvatarWidth || cfg.Height < minAvatarHeight {
		return ErrImageTooSmall
	}

	return nil
}
