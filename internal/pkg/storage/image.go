package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

const (
	CoverMaxWidth      = 1600
	CoverMaxHeight     = 1200
	ThumbnailMaxWidth  = 400
	ThumbnailMaxHeight = 300
)

// ProcessedImage is a cover photo re-encoded at two sizes.
type ProcessedImage struct {
	Cover     []byte
	Thumbnail []byte
}

// ProcessCover decodes an uploaded photo, applies its EXIF orientation and
// produces a bounded JPEG cover plus a thumbnail.
func ProcessCover(content io.Reader) (*ProcessedImage, error) {
	img, err := imaging.Decode(content, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	cover, err := encodeJPEG(imaging.Fit(img, CoverMaxWidth, CoverMaxHeight, imaging.Lanczos), 85)
	if err != nil {
		return nil, err
	}
	thumb, err := encodeJPEG(imaging.Fill(img, ThumbnailMaxWidth, ThumbnailMaxHeight, imaging.Center, imaging.Lanczos), 80)
	if err != nil {
		return nil, err
	}

	return &ProcessedImage{Cover: cover, Thumbnail: thumb}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
