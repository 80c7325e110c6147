package imageutil

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// allowedTypes are the image MIME types accepted at intake
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	ErrNotDataURI      = errors.New("not a base64 image data URI")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// ParseDataURI strips the data-URI header and decodes the payload.
// Expected shape: data:<mime>;base64,<payload>
func ParseDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, ErrNotDataURI
	}

	header, payload, found := strings.Cut(uri[len("data:"):], ",")
	if !found || !strings.HasSuffix(header, ";base64") {
		return "", nil, ErrNotDataURI
	}
	mimeType := strings.TrimSuffix(header, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return mimeType, data, nil
}

// AllowedType reports whether the declared MIME type is accepted
func AllowedType(mimeType string) bool {
	return allowedTypes[strings.ToLower(strings.TrimSpace(mimeType))]
}

// Normalize applies the EXIF orientation (JPEG only) and downscales the
// bitmap so its longest side fits maxDimension, re-encoding as JPEG when
// any transform was needed. Untouched inputs are returned as-is so small
// uploads keep their original bytes and MIME type.
func Normalize(data []byte, mimeType string, maxDimension int) ([]byte, string, error) {
	orientation := 1
	if mimeType == "image/jpeg" {
		orientation = readOrientation(data)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	needsScale := maxDimension > 0 && (cfg.Width > maxDimension || cfg.Height > maxDimension)
	if orientation == 1 && !needsScale {
		return data, mimeType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	if orientation != 1 {
		img = applyOrientation(img, orientation)
	}

	if needsScale {
		img = scaleDown(img, maxDimension)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// readOrientation returns the EXIF orientation tag, defaulting to 1
// (upright) when the tag or the EXIF block is missing.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// scaleDown resizes img so its longest side equals maxDimension,
// preserving the aspect ratio.
func scaleDown(img image.Image, maxDimension int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	scale := float64(maxDimension) / float64(width)
	if height > width {
		scale = float64(maxDimension) / float64(height)
	}

	newWidth := int(float64(width) * scale)
	newHeight := int(float64(height) * scale)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// applyOrientation maps pixels according to the EXIF orientation value.
// Values 2-8 cover mirrored and rotated camera output.
func applyOrientation(img image.Image, orientation int) image.Image {
	if orientation < 2 || orientation > 8 {
		return img
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	var dst *image.RGBA
	switch orientation {
	case 5, 6, 7, 8:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	default:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			switch orientation {
			case 2: // mirrored horizontally
				dst.Set(w-1-x, y, c)
			case 3: // rotated 180
				dst.Set(w-1-x, h-1-y, c)
			case 4: // mirrored vertically
				dst.Set(x, h-1-y, c)
			case 5: // mirrored then rotated 270 CW
				dst.Set(y, x, c)
			case 6: // rotated 90 CW
				dst.Set(h-1-y, x, c)
			case 7: // mirrored then rotated 90 CW
				dst.Set(h-1-y, w-1-x, c)
			case 8: // rotated 270 CW
				dst.Set(y, w-1-x, c)
			}
		}
	}
	return dst
}
