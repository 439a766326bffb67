package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// MaxUploadSize caps uploaded image files at 5MB.
	MaxUploadSize = 5 * 1024 * 1024

	thumbWidth   = 200
	thumbHeight  = 200
	thumbQuality = 80
)

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// ImageProcessor validates uploads and derives thumbnails.
type ImageProcessor struct {
	MaxSize int64
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: MaxUploadSize}
}

// ValidateUpload checks the file extension allow-list and size cap.
func (p *ImageProcessor) ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("file type %q not allowed (jpg/jpeg/png/gif only)", ext)
	}
	if size > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB limit", p.MaxSize/(1024*1024))
	}
	return nil
}

// Thumbnail decodes data and returns a 200x200 center fill-crop encoded as
// JPEG quality 80.
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	cropped := imaging.Fill(img, thumbWidth, thumbHeight, imaging.Center, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, cropped, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type for an allowed upload filename.
func ContentType(filename string) string {
	if ct, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// NewObjectKey generates a unique object key for an uploaded scientist image,
// preserving the original extension.
func NewObjectKey(filename string) string {
	return "scientists/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

// ThumbKey derives the thumbnail object key from an original object key.
func ThumbKey(key string) string {
	return strings.TrimSuffix(key, filepath.Ext(key)) + "-thumb.jpg"
}
