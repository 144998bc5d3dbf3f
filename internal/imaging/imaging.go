// Package imaging validates and downsizes profile photos and encodes them
// as self-contained data URLs.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"log"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

// MaxDimension is the longest side of a compressed photo in pixels.
const MaxDimension = 800

// JPEGQuality is the quality used when re-encoding photos.
const JPEGQuality = 80

// AllowedTypes are the accepted photo MIME types.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// ErrEmpty is returned for an empty upload.
var ErrEmpty = errors.New("image is empty")

// ErrUnsupportedType reports an upload that is not an accepted image type
type ErrUnsupportedType struct {
	MIME string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported image type %q: use JPEG, PNG or GIF", e.MIME)
}

// ErrTooLarge reports an upload above the size limit
type ErrTooLarge struct {
	Size  int64
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("image is %d bytes, limit is %d", e.Size, e.Limit)
}

// Validate sniffs the content type of data and checks it against the
// accepted types and maxSize. It returns the detected MIME type.
func Validate(data []byte, maxSize int64) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", &ErrTooLarge{Size: int64(len(data)), Limit: maxSize}
	}
	mime := mimetype.Detect(data).String()
	if !slices.Contains(AllowedTypes, mime) {
		return "", &ErrUnsupportedType{MIME: mime}
	}
	return mime, nil
}

// Compress scales the image so its longest side is at most MaxDimension and
// re-encodes it as JPEG. When the image cannot be decoded or encoded the
// original bytes and MIME type are returned unchanged.
func Compress(data []byte) ([]byte, string) {
	original := mimetype.Detect(data).String()

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("[imaging] decode failed, keeping original: %v", err)
		return data, original
	}

	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), MaxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha channel; flatten onto white.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		log.Printf("[imaging] encode failed, keeping original: %v", err)
		return data, original
	}
	return buf.Bytes(), "image/jpeg"
}

// fit returns w and h scaled down so neither exceeds limit.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

// DataURL encodes data as a base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Process validates, compresses and encodes an uploaded photo.
func Process(data []byte, maxSize int64) (string, error) {
	if _, err := Validate(data, maxSize); err != nil {
		return "", err
	}
	out, mime := Compress(data)
	return DataURL(mime, out), nil
}
