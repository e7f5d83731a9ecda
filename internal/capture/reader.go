package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Reader decodes an nbfr stream frame by frame.
type Reader struct {
	r      io.Reader
	width  int
	height int
	frames int
	block  []byte
}

func NewReader(r io.Reader) (*Reader, error) {
	var header [len(Magic) + 8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(header[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadMagic, header[:len(Magic)])
	}

	width := binary.LittleEndian.Uint32(header[len(Magic):])
	height := binary.LittleEndian.Uint32(header[len(Magic)+4:])
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("capture: invalid size %dx%d", width, height)
	}

	return &Reader{r: r, width: int(width), height: int(height)}, nil
}

func (r *Reader) Size() (int, int) { return r.width, r.height }

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (*image.RGBA, error) {
	var sizes [8]byte
	if _, err := io.ReadFull(r.r, sizes[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame %d: %w", r.frames, err)
	}

	rawSize := binary.LittleEndian.Uint32(sizes[0:])
	blockSize := binary.LittleEndian.Uint32(sizes[4:])
	if int(rawSize) != r.width*r.height*4 {
		return nil, fmt.Errorf("%w: frame %d has %d bytes", ErrFrameSize, r.frames, rawSize)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))

	if blockSize == 0 {
		if _, err := io.ReadFull(r.r, img.Pix); err != nil {
			return nil, fmt.Errorf("read frame %d: %w", r.frames, err)
		}
	} else {
		if cap(r.block) < int(blockSize) {
			r.block = make([]byte, blockSize)
		}
		block := r.block[:blockSize]
		if _, err := io.ReadFull(r.r, block); err != nil {
			return nil, fmt.Errorf("read frame %d: %w", r.frames, err)
		}
		n, err := lz4.UncompressBlock(block, img.Pix)
		if err != nil {
			return nil, fmt.Errorf("decompress frame %d: %w", r.frames, err)
		}
		if n != int(rawSize) {
			return nil, fmt.Errorf("%w: frame %d decoded to %d bytes", ErrFrameSize, r.frames, n)
		}
	}

	r.frames++
	return img, nil
}
