package convert

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"winterroom/internal/utils"
)

// MaxTextureSize caps the longest edge of converted textures. Zero keeps the
// source size.
var MaxTextureSize = 4096

// NeedsConversion reports whether raylib cannot load the file directly.
func NeedsConversion(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tex", ".dds", ".webp", ".tif", ".tiff":
		return true
	}
	return false
}

// DecodeFile decodes any supported texture container into an image.
func DecodeFile(path string) (image.Image, error) {
	utils.Debug("Decoding texture: %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tex":
		img, err = DecodeTex(f)
	case ".dds":
		img, err = DecodeDDS(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Fit scales img down so that neither edge exceeds maxSize, keeping the
// aspect ratio.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// ConvertFile decodes src and stores it as PNG under the converted cache.
// An existing conversion is reused.
func ConvertFile(src string) (string, error) {
	dst := utils.ConvertedPath(src)
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}

	img, err := DecodeFile(src)
	if err != nil {
		return "", err
	}
	if err := WritePNG(dst, Fit(img, MaxTextureSize)); err != nil {
		return "", err
	}
	utils.Debug("Converted %s -> %s", src, dst)
	return dst, nil
}

// ResolveTexture finds a texture by asset name and returns a path raylib can
// load, converting packed formats on demand.
func ResolveTexture(name string) (string, error) {
	path := utils.FindTextureFile(name)
	if path == "" {
		return "", fmt.Errorf("texture not found: %s", name)
	}
	if !NeedsConversion(path) {
		return path, nil
	}
	return ConvertFile(path)
}
