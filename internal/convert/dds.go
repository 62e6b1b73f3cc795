package convert

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/mauserzjeh/dxt"

	"winterroom/internal/utils"
)

const (
	ddsMagic      = "DDS "
	ddsHeaderSize = 124

	ddpfAlphaPixels = 0x1
	ddpfFourCC      = 0x4
	ddpfRGB         = 0x40
)

type ddsPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      [4]byte
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

type ddsHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       ddsPixelFormat
	Caps              [4]uint32
	Reserved2         uint32
}

// DecodeDDS decodes the top mip level of a DXT1, DXT5 or uncompressed 32-bit
// DirectDraw Surface.
func DecodeDDS(r io.Reader) (image.Image, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("read dds magic: %w", err)
	}
	if string(magic) != ddsMagic {
		return nil, fmt.Errorf("invalid magic: %q", magic)
	}

	var h ddsHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read dds header: %w", err)
	}
	if h.Size != ddsHeaderSize {
		return nil, fmt.Errorf("invalid dds header size %d", h.Size)
	}
	if h.Width == 0 || h.Height == 0 {
		return nil, fmt.Errorf("invalid dds size %dx%d", h.Width, h.Height)
	}

	w, hgt := h.Width, h.Height
	blocks := ((w + 3) / 4) * ((hgt + 3) / 4)
	pf := h.PixelFormat

	var pix []byte
	switch {
	case pf.Flags&ddpfFourCC != 0:
		fourCC := string(pf.FourCC[:])
		utils.Debug("    DDS %s %dx%d", fourCC, w, hgt)
		switch fourCC {
		case "DXT1":
			data, err := readMip(r, blocks*8)
			if err != nil {
				return nil, err
			}
			if pix, err = dxt.DecodeDXT1(data, uint(w), uint(hgt)); err != nil {
				return nil, fmt.Errorf("dxt1: %w", err)
			}
		case "DXT5":
			data, err := readMip(r, blocks*16)
			if err != nil {
				return nil, err
			}
			if pix, err = dxt.DecodeDXT5(data, uint(w), uint(hgt)); err != nil {
				return nil, fmt.Errorf("dxt5: %w", err)
			}
		default:
			return nil, fmt.Errorf("unsupported dds compression %q", fourCC)
		}

	case pf.Flags&ddpfRGB != 0 && pf.RGBBitCount == 32:
		data, err := readMip(r, w*hgt*4)
		if err != nil {
			return nil, err
		}
		pix = unpackMasked(data, pf)

	default:
		return nil, fmt.Errorf("unsupported dds pixel format flags=%#x bits=%d", pf.Flags, pf.RGBBitCount)
	}

	return &image.RGBA{
		Pix:    pix,
		Stride: int(w) * 4,
		Rect:   image.Rect(0, 0, int(w), int(hgt)),
	}, nil
}

func readMip(r io.Reader, size uint32) ([]byte, error) {
	if size > maxMipBytes {
		return nil, fmt.Errorf("mip 0 too large: %d bytes", size)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read dds data: %w", err)
	}
	return data, nil
}

// unpackMasked converts 32-bit pixels described by channel bit masks to RGBA.
func unpackMasked(data []byte, pf ddsPixelFormat) []byte {
	hasAlpha := pf.Flags&ddpfAlphaPixels != 0 && pf.ABitMask != 0
	pix := make([]byte, len(data))
	for i := 0; i+3 < len(data); i += 4 {
		v := binary.LittleEndian.Uint32(data[i:])
		pix[i] = channel(v, pf.RBitMask)
		pix[i+1] = channel(v, pf.GBitMask)
		pix[i+2] = channel(v, pf.BBitMask)
		if hasAlpha {
			pix[i+3] = channel(v, pf.ABitMask)
		} else {
			pix[i+3] = 255
		}
	}
	return pix
}

func channel(v, mask uint32) byte {
	if mask == 0 {
		return 0
	}
	shift := 0
	for mask&1 == 0 {
		mask >>= 1
		shift++
	}
	return byte((v >> shift) & mask)
}
