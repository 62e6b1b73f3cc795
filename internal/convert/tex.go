package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"

	"winterroom/internal/utils"
)

// TexMagic starts every packed .tex texture.
const TexMagic = "TEXV0005"

// Pixel formats stored in the .tex header.
const (
	TexFormatRGBA8888 = 0
	TexFormatDXT5     = 4
	TexFormatDXT1     = 7
	TexFormatRG88     = 8
	TexFormatR8       = 9
)

// maxMipBytes bounds allocations driven by sizes read from the file.
const maxMipBytes = 256 << 20

var ErrNoImage = errors.New("no image found in texture")

// texReader reads little-endian fields and keeps the first error.
type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) u32() uint32 {
	if t.err != nil {
		return 0
	}
	var v uint32
	t.err = binary.Read(t.r, binary.LittleEndian, &v)
	return v
}

// tag reads a fixed-width NUL-terminated magic such as "TEXB0003\x00".
func (t *texReader) tag(n int) string {
	if t.err != nil {
		return ""
	}
	b := make([]byte, n+1)
	if _, err := io.ReadFull(t.r, b); err != nil {
		t.err = err
		return ""
	}
	return string(bytes.TrimRight(b, "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	b := make([]byte, n)
	_, t.err = io.ReadFull(t.r, b)
	return b
}

// TexHeader is the part of a .tex file needed to decode its first mip level.
type TexHeader struct {
	Format        uint32
	TextureWidth  uint32
	TextureHeight uint32
	ImageWidth    uint32
	ImageHeight   uint32
	Container     string
	ImageCount    uint32
}

// DecodeTex decodes the first mip level of the first image in a .tex stream.
// The result is cropped to the image size recorded in the header.
func DecodeTex(r io.Reader) (image.Image, error) {
	t := &texReader{r: r}

	magic := t.tag(8)
	_ = t.tag(8)
	if t.err != nil {
		return nil, fmt.Errorf("read tex header: %w", t.err)
	}
	if magic != TexMagic {
		return nil, fmt.Errorf("invalid magic: %q", magic)
	}

	var h TexHeader
	h.Format = t.u32()
	_ = t.u32() // flags
	h.TextureWidth = t.u32()
	h.TextureHeight = t.u32()
	h.ImageWidth = t.u32()
	h.ImageHeight = t.u32()
	_ = t.u32()
	h.Container = t.tag(8)
	h.ImageCount = t.u32()
	if h.Container == "TEXB0003" {
		_ = t.u32() // source image format
	}
	if t.err != nil {
		return nil, fmt.Errorf("read tex header: %w", t.err)
	}
	utils.Debug("    Format: %d, Target Size: %dx%d, Container: %s", h.Format, h.ImageWidth, h.ImageHeight, h.Container)

	if h.ImageCount == 0 {
		return nil, ErrNoImage
	}

	mipCount := t.u32()
	if t.err != nil {
		return nil, fmt.Errorf("read mip count: %w", t.err)
	}
	if mipCount == 0 {
		return nil, ErrNoImage
	}

	w := t.u32()
	hgt := t.u32()
	var compressed bool
	var rawSize uint32
	if h.Container != "TEXB0001" {
		compressed = t.u32() == 1
		rawSize = t.u32()
	}
	size := t.u32()
	if size > maxMipBytes || rawSize > maxMipBytes {
		return nil, fmt.Errorf("mip 0 too large: %d bytes", max(size, rawSize))
	}
	data := t.bytes(size)
	if t.err != nil {
		return nil, fmt.Errorf("read mip 0: %w", t.err)
	}

	if compressed {
		utils.Debug("    Decompressing LZ4: %d -> %d", size, rawSize)
		raw := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, raw)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = raw[:n]
	}

	pix, err := decodePixels(h.Format, data, w, hgt)
	if err != nil {
		return nil, err
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: int(w) * 4,
		Rect:   image.Rect(0, 0, int(w), int(hgt)),
	}
	crop := image.Rect(0, 0, int(min(h.ImageWidth, w)), int(min(h.ImageHeight, hgt)))
	if crop.Empty() {
		return img, nil
	}
	return img.SubImage(crop), nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	size := uint32(len(data))

	switch {
	case format == TexFormatR8 && size == w*h:
		utils.Debug("    Type: R8")
		pix := make([]byte, w*h*4)
		for i, v := range data {
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
		}
		return pix, nil
	case format == TexFormatRG88 && size == w*h*2:
		utils.Debug("    Type: RG88")
		pix := make([]byte, w*h*4)
		for i := uint32(0); i < w*h; i++ {
			l, a := data[i*2], data[i*2+1]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = l, l, l, a
		}
		return pix, nil
	case size == w*h*4:
		utils.Debug("    Type: RGBA")
		return data, nil
	case size == blocks*16 && format != TexFormatDXT1:
		utils.Debug("    Type: DXT5")
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case size == blocks*8:
		utils.Debug("    Type: DXT1")
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	}
	return nil, fmt.Errorf("unsupported format %d with size %d for %dx%d", format, size, w, h)
}
