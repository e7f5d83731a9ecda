// Package capture writes rendered frames to disk: single frames as PNG and
// frame sequences as an LZ4-compressed .nbfr stream.
//
// Stream layout, little endian:
//
//	magic   [8]byte  "NBFR0001"
//	width   uint32
//	height  uint32
//	frames, repeated until EOF:
//	  rawSize   uint32  length of the RGBA pixel data
//	  blockSize uint32  length of the LZ4 block, 0 when stored raw
//	  data      [blockSize or rawSize]byte
package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/pierrec/lz4/v4"

	"nebula-wallpaper/internal/utils"
)

const Magic = "NBFR0001"

var (
	ErrBadMagic  = errors.New("capture: not an nbfr stream")
	ErrFrameSize = errors.New("capture: frame size does not match stream")
)

// Recorder appends frames of a fixed size to w.
type Recorder struct {
	w      io.Writer
	width  int
	height int
	frames int

	compressor lz4.Compressor
	block      []byte
}

// NewRecorder writes the stream header and returns a recorder for frames of
// the given size.
func NewRecorder(w io.Writer, width, height int) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("capture: invalid size %dx%d", width, height)
	}

	header := make([]byte, 0, len(Magic)+8)
	header = append(header, Magic...)
	header = binary.LittleEndian.AppendUint32(header, uint32(width))
	header = binary.LittleEndian.AppendUint32(header, uint32(height))
	if _, err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	return &Recorder{
		w:      w,
		width:  width,
		height: height,
		block:  make([]byte, lz4.CompressBlockBound(width*height*4)),
	}, nil
}

// WriteFrame appends img, which must match the recorder's size.
func (r *Recorder) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != r.width || b.Dy() != r.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), r.width, r.height)
	}

	raw := packPixels(img)
	n, err := r.compressor.CompressBlock(raw, r.block)
	if err != nil {
		return fmt.Errorf("compress frame %d: %w", r.frames, err)
	}

	payload := r.block[:n]
	// Incompressible frames are stored as-is.
	if n == 0 || n >= len(raw) {
		payload, n = raw, 0
	}

	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(sizes[4:], uint32(n))
	if _, err := r.w.Write(sizes[:]); err != nil {
		return fmt.Errorf("write frame %d: %w", r.frames, err)
	}
	if _, err := r.w.Write(payload); err != nil {
		return fmt.Errorf("write frame %d: %w", r.frames, err)
	}

	r.frames++
	utils.Debug("capture: frame %d, %d -> %d bytes", r.frames, len(raw), len(payload))
	return nil
}

func (r *Recorder) Frames() int { return r.frames }

// packPixels returns the tightly packed pixel rows of img.
func packPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	if img.Stride == rowLen && b.Min == (image.Point{}) {
		return img.Pix[:rowLen*b.Dy()]
	}

	out := make([]byte, 0, rowLen*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[i:i+rowLen]...)
	}
	return out
}
