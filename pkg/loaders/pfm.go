package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidPFM is wrapped by every error caused by malformed PFM data
var ErrInvalidPFM = errors.New("invalid PFM file")

// MaxPFMPixels bounds width*height accepted by ReadPFM
const MaxPFMPixels = 1 << 26

// bytesPerPixel is three float32 channels
const bytesPerPixel = 12

// WritePFM encodes img as a three-channel PFM stream. Rows are written from
// the bottom (y = Height-1) to the top (y = 0).
func WritePFM(w io.Writer, img *core.HdrImage, byteOrder binary.ByteOrder) error {
	endianness := "1.0"
	if byteOrder == binary.LittleEndian {
		endianness = "-1.0"
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n%s\n", img.Width, img.Height, endianness); err != nil {
		return fmt.Errorf("failed to write PFM header: %w", err)
	}

	buf := make([]byte, 4)
	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			c := img.GetPixel(x, y)
			for _, v := range [3]float64{c.R, c.G, c.B} {
				byteOrder.PutUint32(buf, math.Float32bits(float32(v)))
				if _, err := bw.Write(buf); err != nil {
					return fmt.Errorf("failed to write PFM data: %w", err)
				}
			}
		}
	}

	return bw.Flush()
}

// ReadPFM decodes a three-channel PFM stream. When r reports its remaining
// length (bytes.Reader, strings.Reader) the payload size is checked before
// any pixel memory is allocated.
func ReadPFM(r io.Reader) (*core.HdrImage, error) {
	size := int64(-1)
	if lr, ok := r.(interface{ Len() int }); ok {
		size = int64(lr.Len())
	}
	return readPFM(r, size)
}

// readPFM decodes a PFM stream of size bytes, or of unknown size when size < 0
func readPFM(r io.Reader, size int64) (*core.HdrImage, error) {
	br := bufio.NewReader(r)
	headerSize := 0

	magic, n, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	headerSize += n
	if magic != "PF" {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidPFM, magic)
	}

	sizeLine, n, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	headerSize += n
	width, height, err := parseImageSize(sizeLine)
	if err != nil {
		return nil, err
	}

	endiannessLine, n, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	headerSize += n
	byteOrder, err := parseEndianness(endiannessLine)
	if err != nil {
		return nil, err
	}

	payload := int64(width) * int64(height) * bytesPerPixel
	if size >= 0 && size-int64(headerSize) < payload {
		return nil, fmt.Errorf("%w: expected %d bytes of pixel data, got %d", ErrInvalidPFM, payload, size-int64(headerSize))
	}

	img := core.NewHdrImage(width, height)
	buf := make([]byte, bytesPerPixel)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			if _, err := io.ReadFull(br, buf); err != nil {
				return nil, fmt.Errorf("%w: truncated pixel data at (%d, %d): %v", ErrInvalidPFM, x, y, err)
			}
			img.SetPixel(x, y, core.NewColor(
				float64(math.Float32frombits(byteOrder.Uint32(buf[0:4]))),
				float64(math.Float32frombits(byteOrder.Uint32(buf[4:8]))),
				float64(math.Float32frombits(byteOrder.Uint32(buf[8:12]))),
			))
		}
	}

	return img, nil
}

// ReadPFMFile reads a PFM image from disk
func ReadPFMFile(filename string) (*core.HdrImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PFM file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat PFM file: %w", err)
	}
	return readPFM(file, info.Size())
}

// WritePFMFile writes img to disk in little-endian PFM format
func WritePFMFile(filename string, img *core.HdrImage) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create PFM file: %w", err)
	}

	if err := WritePFM(file, img, binary.LittleEndian); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// readHeaderLine returns the trimmed line and the number of bytes consumed
func readHeaderLine(br *bufio.Reader) (string, int, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", 0, fmt.Errorf("%w: truncated header: %v", ErrInvalidPFM, err)
	}
	return strings.TrimRight(line, "\r\n"), len(line), nil
}

func parseImageSize(line string) (int, int, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: invalid image size %q", ErrInvalidPFM, line)
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil || width < 0 {
		return 0, 0, fmt.Errorf("%w: invalid width %q", ErrInvalidPFM, parts[0])
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil || height < 0 {
		return 0, 0, fmt.Errorf("%w: invalid height %q", ErrInvalidPFM, parts[1])
	}
	if width > 0 && height > MaxPFMPixels/width {
		return 0, 0, fmt.Errorf("%w: image size %dx%d exceeds %d pixels", ErrInvalidPFM, width, height, MaxPFMPixels)
	}
	return width, height, nil
}

func parseEndianness(line string) (binary.ByteOrder, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endianness %q", ErrInvalidPFM, line)
	}

	switch {
	case value > 0:
		return binary.BigEndian, nil
	case value < 0:
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("%w: endianness cannot be zero", ErrInvalidPFM)
	}
}
