package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"rocketboost-admin/logging"
)

// Slip preview sizes
const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ValidImageSize reports whether size is a known preview size
func ValidImageSize(size string) bool {
	return size == SizeThumb || size == SizeMedium
}

// OptimizeImage re-encodes imageData (PNG, JPEG or GIF) as JPEG, scaled so
// that neither side exceeds the size's max dimension
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	switch size {
	case SizeThumb:
		maxDim, quality = maxSizeThumb, qualityThumb
	case SizeMedium:
	default:
		logging.Sugar.Warnf("⚠️ Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	resized := img
	if width > maxDim || height > maxDim {
		// 0 keeps the aspect ratio
		if width > height {
			resized = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			resized = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
		logging.Sugar.Debugf("🔄 Resized %s image: %dx%d -> %dx%d",
			format, width, height, resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	logging.Sugar.Debugf("✓ Image optimized: size=%s quality=%d bytes=%d", size, quality, buf.Len())
	return buf.Bytes(), nil
}
