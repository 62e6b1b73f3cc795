package convert

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redDXT1 is one 4x4 DXT1 block: color0 pure red, every index 0.
var redDXT1 = []byte{0x00, 0xF8, 0x1F, 0x00, 0, 0, 0, 0}

type texMip struct {
	w, h       uint32
	data       []byte
	compressed bool
	rawSize    uint32
}

func le(buf *bytes.Buffer, vs ...uint32) {
	for _, v := range vs {
		binary.Write(buf, binary.LittleEndian, v)
	}
}

func buildTex(format, imgW, imgH uint32, container string, mip texMip) []byte {
	var buf bytes.Buffer
	buf.WriteString(TexMagic + "\x00")
	buf.WriteString("TEXI0001\x00")
	le(&buf, format, 0, mip.w, mip.h, imgW, imgH, 0)
	buf.WriteString(container + "\x00")
	le(&buf, 1)
	if container == "TEXB0003" {
		le(&buf, 0)
	}
	le(&buf, 1, mip.w, mip.h)
	if container != "TEXB0001" {
		flag := uint32(0)
		if mip.compressed {
			flag = 1
		}
		le(&buf, flag, mip.rawSize)
	}
	le(&buf, uint32(len(mip.data)))
	buf.Write(mip.data)
	return buf.Bytes()
}

func solidRGBA(w, h int, c color.RGBA) []byte {
	pix := make([]byte, 0, w*h*4)
	for i := 0; i < w*h; i++ {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	return pix
}

func TestDecodeTexRGBACropsToImageSize(t *testing.T) {
	pix := solidRGBA(4, 4, color.RGBA{10, 20, 30, 255})
	data := buildTex(TexFormatRGBA8888, 3, 2, "TEXB0003", texMip{w: 4, h: 4, data: pix})

	img, err := DecodeTex(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, img.At(2, 1))
}

func TestDecodeTexLZ4(t *testing.T) {
	raw := solidRGBA(16, 16, color.RGBA{200, 220, 255, 180})
	compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, compressed, nil)
	require.NoError(t, err)
	require.NotZero(t, n)

	data := buildTex(TexFormatRGBA8888, 16, 16, "TEXB0002", texMip{
		w: 16, h: 16, data: compressed[:n], compressed: true, rawSize: uint32(len(raw)),
	})

	img, err := DecodeTex(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	assert.Equal(t, color.RGBA{200, 220, 255, 180}, img.At(15, 15))
}

func TestDecodeTexDXT1(t *testing.T) {
	data := buildTex(TexFormatDXT1, 4, 4, "TEXB0001", texMip{w: 4, h: 4, data: redDXT1})

	img, err := DecodeTex(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, b, a := img.At(1, 1).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestDecodeTexR8(t *testing.T) {
	data := buildTex(TexFormatR8, 2, 2, "TEXB0003", texMip{w: 2, h: 2, data: []byte{0, 64, 128, 255}})

	img, err := DecodeTex(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, img.At(0, 1))
}

func TestDecodeTexErrors(t *testing.T) {
	_, err := DecodeTex(bytes.NewReader([]byte("TEXV0004\x00TEXI0001\x00")))
	assert.ErrorContains(t, err, "invalid magic")

	good := buildTex(TexFormatRGBA8888, 2, 2, "TEXB0003", texMip{w: 2, h: 2, data: make([]byte, 16)})
	_, err = DecodeTex(bytes.NewReader(good[:len(good)-4]))
	assert.ErrorContains(t, err, "read mip 0")

	odd := buildTex(TexFormatRGBA8888, 2, 2, "TEXB0003", texMip{w: 2, h: 2, data: make([]byte, 5)})
	_, err = DecodeTex(bytes.NewReader(odd))
	assert.ErrorContains(t, err, "unsupported format")
}

func buildDDS(w, h uint32, pf ddsPixelFormat, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(ddsMagic)
	pf.Size = 32
	binary.Write(&buf, binary.LittleEndian, ddsHeader{
		Size:        ddsHeaderSize,
		Flags:       0x1007,
		Height:      h,
		Width:       w,
		MipMapCount: 1,
		PixelFormat: pf,
	})
	buf.Write(data)
	return buf.Bytes()
}

func TestDecodeDDSDXT1(t *testing.T) {
	data := buildDDS(4, 4, ddsPixelFormat{Flags: ddpfFourCC, FourCC: [4]byte{'D', 'X', 'T', '1'}}, redDXT1)

	img, err := DecodeDDS(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	r, g, _, _ := img.At(3, 3).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Zero(t, g)
}

func TestDecodeDDSUncompressedBGRA(t *testing.T) {
	pf := ddsPixelFormat{
		Flags:       ddpfRGB | ddpfAlphaPixels,
		RGBBitCount: 32,
		RBitMask:    0x00ff0000,
		GBitMask:    0x0000ff00,
		BBitMask:    0x000000ff,
		ABitMask:    0xff000000,
	}
	// Little-endian BGRA for one pixel repeated.
	pix := bytes.Repeat([]byte{0x30, 0x20, 0x10, 0x80}, 4)

	img, err := DecodeDDS(bytes.NewReader(buildDDS(2, 2, pf, pix)))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x10, 0x20, 0x30, 0x80}, img.At(1, 0))
}

func TestDecodeDDSErrors(t *testing.T) {
	_, err := DecodeDDS(bytes.NewReader([]byte("PNG ")))
	assert.ErrorContains(t, err, "invalid magic")

	dxt3 := buildDDS(4, 4, ddsPixelFormat{Flags: ddpfFourCC, FourCC: [4]byte{'D', 'X', 'T', '3'}}, make([]byte, 16))
	_, err = DecodeDDS(bytes.NewReader(dxt3))
	assert.ErrorContains(t, err, "unsupported dds compression")

	short := buildDDS(8, 8, ddsPixelFormat{Flags: ddpfFourCC, FourCC: [4]byte{'D', 'X', 'T', '1'}}, redDXT1)
	_, err = DecodeDDS(bytes.NewReader(short))
	assert.ErrorContains(t, err, "read dds data")
}

func TestFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	assert.Same(t, image.Image(src), Fit(src, 0))
	assert.Same(t, image.Image(src), Fit(src, 400))

	out := Fit(src, 100)
	assert.Equal(t, image.Rect(0, 0, 100, 25), out.Bounds())

	tall := image.NewRGBA(image.Rect(0, 0, 10, 1000))
	assert.Equal(t, image.Rect(0, 0, 1, 100), Fit(tall, 100).Bounds())
}

func TestNeedsConversion(t *testing.T) {
	assert.True(t, NeedsConversion("a/b/Wall.TEX"))
	assert.True(t, NeedsConversion("roof.dds"))
	assert.True(t, NeedsConversion("sky.webp"))
	assert.False(t, NeedsConversion("wall.png"))
	assert.False(t, NeedsConversion("wall.jpg"))
}

func TestWritePNGAndDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 1, color.RGBA{1, 2, 3, 255})
	require.NoError(t, WritePNG(path, src))

	img, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, color.RGBAModel.Convert(img.At(1, 1)))

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.dds"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
