package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/raysh454/mycv/internal/model"
)

// maxPhotoDataURL mirrors the server's limit on the encoded data URL.
const maxPhotoDataURL = 15_000_000

var (
	ErrUnsupportedImage = errors.New("unsupported image type: use jpeg, png or webp")
	ErrImageTooLarge    = errors.New("image too large")
)

// GetPhoto returns nil when no photo is stored.
func (c *Client) GetPhoto(ctx context.Context) (*model.Photo, error) {
	return get[*model.Photo](ctx, c, "/photos", "/photos")
}

// UploadPhoto stores a data URL; see PhotoDataURL.
func (c *Client) UploadPhoto(ctx context.Context, imageData string) (*model.Photo, error) {
	return send[*model.Photo](ctx, c, http.MethodPut, "/photos", "/photos", model.Photo{ImageData: imageData})
}

func (c *Client) DeletePhoto(ctx context.Context) error {
	return remove(ctx, c, "/photos", "/photos")
}

// PhotoDataURL encodes raw image bytes as the data URL the photos endpoint
// accepts. An empty contentType is sniffed from the data.
func PhotoDataURL(contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	if len(dataURL) > maxPhotoDataURL {
		return "", fmt.Errorf("%w: %d bytes encoded", ErrImageTooLarge, len(dataURL))
	}
	return dataURL, nil
}
