package wavheader

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-audio/riff"
)

// StandardSize is the size of the header written by WriteHeader. Buffers
// used for writing must hold at least this many bytes. Headers read from
// files are often exactly this size too, but can be larger when extra
// sub-chunks precede the data chunk.
const StandardSize = 44

const wavFormatPCM = 1

var (
	// ErrBufferTooSmall is returned when a field access or WriteHeader
	// would reach past the end of the buffer.
	ErrBufferTooSmall = errors.New("buffer too small")
	// ErrChunkNotFound is returned when FindChunk exhausts the populated
	// part of the buffer without a match. Truncated or overlong chunk
	// headers surface the same way; the scanner does not tell a missing
	// chunk from a corrupt one.
	ErrChunkNotFound = errors.New("chunk not found")

	errBadFourCC = errors.New("four character code must be exactly 4 bytes")
)

// Header is a fixed-capacity buffer holding a WAV file header. The buffer
// is either borrowed from the caller (NewHeader) or owned by the Header
// (NewHeaderSize, NewStandardHeader); it is never reallocated.
type Header struct {
	// SkipPadding makes FindChunk advance past the pad byte that follows
	// odd-sized chunk payloads, as the RIFF alignment rule requires. It is
	// off by default for byte-compatibility with tools that ignore the pad
	// byte; note that with it off, an odd-sized chunk ahead of the target
	// shifts every later chunk by one byte.
	SkipPadding bool

	buf        []byte
	filled     int
	dataOffset int
}

// NewHeader wraps a caller-owned buffer. The whole buffer is treated as
// populated; use SetLen to narrow the region FindChunk scans.
func NewHeader(buf []byte) *Header {
	return &Header{buf: buf, filled: len(buf)}
}

// NewHeaderSize allocates a Header owning a buffer of the given capacity.
// The buffer starts out unpopulated.
func NewHeaderSize(size int) *Header {
	return &Header{buf: make([]byte, size)}
}

// NewStandardHeader allocates a Header sized for the canonical 44-byte
// header.
func NewStandardHeader() *Header {
	return NewHeaderSize(StandardSize)
}

// Bytes exposes the underlying buffer, header included.
func (h *Header) Bytes() []byte { return h.buf }

// Cap returns the buffer capacity in bytes.
func (h *Header) Cap() int { return len(h.buf) }

// Len returns how many bytes of the buffer hold valid data. WriteHeader
// sets it to StandardSize; SetLen records bytes filled externally, e.g.
// after reading a header from a file.
func (h *Header) Len() int { return h.filled }

// SetLen records the populated extent of the buffer.
func (h *Header) SetLen(n int) error {
	if n < 0 || n > len(h.buf) {
		return fmt.Errorf("%w: can't mark %d of %d bytes populated", ErrBufferTooSmall, n, len(h.buf))
	}

	h.filled = n

	return nil
}

// DataOffset returns the offset at which sample data starts: StandardSize
// after a successful WriteHeader, zero before. For headers this codec did
// not write, use FindChunk on the data chunk instead.
func (h *Header) DataOffset() int { return h.dataOffset }

func (h *Header) check(offset, width int) error {
	if offset < 0 || offset+width > len(h.buf) {
		return fmt.Errorf("%w: %d byte access at offset %d, capacity %d", ErrBufferTooSmall, width, offset, len(h.buf))
	}

	return nil
}

// Uint16LE reads a little-endian 16-bit value at offset.
func (h *Header) Uint16LE(offset int) (uint16, error) {
	if err := h.check(offset, 2); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(h.buf[offset:]), nil
}

// PutUint16LE writes a little-endian 16-bit value at offset.
func (h *Header) PutUint16LE(offset int, value uint16) error {
	if err := h.check(offset, 2); err != nil {
		return err
	}

	binary.LittleEndian.PutUint16(h.buf[offset:], value)

	return nil
}

// Uint32LE reads a little-endian 32-bit value at offset.
func (h *Header) Uint32LE(offset int) (uint32, error) {
	if err := h.check(offset, 4); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(h.buf[offset:]), nil
}

// PutUint32LE writes a little-endian 32-bit value at offset.
func (h *Header) PutUint32LE(offset int, value uint32) error {
	if err := h.check(offset, 4); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(h.buf[offset:], value)

	return nil
}

// Uint32BE reads a big-endian 32-bit value at offset. Chunk identifiers are
// stored this way so the integer value matches the reading order of the
// four ASCII characters.
func (h *Header) Uint32BE(offset int) (uint32, error) {
	if err := h.check(offset, 4); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(h.buf[offset:]), nil
}

// PutUint32BE writes a big-endian 32-bit value at offset.
func (h *Header) PutUint32BE(offset int, value uint32) error {
	if err := h.check(offset, 4); err != nil {
		return err
	}

	binary.BigEndian.PutUint32(h.buf[offset:], value)

	return nil
}

// FourCC returns the big-endian integer value of a four character chunk ID,
// e.g. FourCC(riff.DataFormatID).
func FourCC(id [4]byte) uint32 {
	return binary.BigEndian.Uint32(id[:])
}

// FourCCString converts a 4-character ASCII string such as "fmt " into the
// big-endian integer used for chunk ID comparison.
func FourCCString(s string) (uint32, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: %q", errBadFourCC, s)
	}

	return binary.BigEndian.Uint32([]byte(s)), nil
}

// unchecked fast paths, callers must have validated capacity
func (h *Header) put16(offset int, value uint16) {
	binary.LittleEndian.PutUint16(h.buf[offset:], value)
}

func (h *Header) put32(offset int, value uint32) {
	binary.LittleEndian.PutUint32(h.buf[offset:], value)
}

func (h *Header) put32be(offset int, value uint32) {
	binary.BigEndian.PutUint32(h.buf[offset:], value)
}

// WriteHeader renders the canonical 44-byte PCM header into the start of
// the buffer and moves the data cursor to StandardSize.
//
// Pass dataSize 0 when the payload length isn't known yet and patch it in
// with SetDataSize once streaming completes; WAV files must carry the
// length in the header, there is no stream-bounded variant.
//
// The buffer is left untouched when its capacity is below StandardSize.
func (h *Header) WriteHeader(sampleRate, bitDepth, numChans int, dataSize uint32) error {
	if len(h.buf) < StandardSize {
		return fmt.Errorf("%w: header needs %d bytes, capacity %d", ErrBufferTooSmall, StandardSize, len(h.buf))
	}

	blockAlign := numChans * bitDepth / 8
	byteRate := sampleRate * blockAlign

	h.put32be(0, FourCC(riff.RiffID))
	h.put32(4, dataSize+36)
	h.put32be(8, FourCC(riff.WavFormatID))
	h.put32be(12, FourCC(riff.FmtID))
	h.put32(16, 16)
	h.put16(20, wavFormatPCM)
	h.put16(22, uint16(numChans))
	h.put32(24, uint32(sampleRate))
	h.put32(28, uint32(byteRate))
	h.put16(32, uint16(blockAlign))
	h.put16(34, uint16(bitDepth))
	h.put32be(36, FourCC(riff.DataFormatID))
	h.put32(40, dataSize)

	h.dataOffset = StandardSize
	if h.filled < StandardSize {
		h.filled = StandardSize
	}

	return nil
}

// SetDataSize patches the two length fields of an already written header:
// the RIFF chunk size at offset 4 and the data chunk size at offset 40.
// No other byte is touched and no format validation is performed; the
// caller guarantees the buffer holds a header in the canonical layout.
func (h *Header) SetDataSize(dataSize uint32) error {
	if len(h.buf) < StandardSize {
		return fmt.Errorf("%w: header needs %d bytes, capacity %d", ErrBufferTooSmall, StandardSize, len(h.buf))
	}

	h.put32(4, dataSize+36)
	h.put32(40, dataSize)

	return nil
}

// FindChunk scans the sub-chunks after the 12-byte RIFF/WAVE preamble for
// the given ID and returns the absolute offset and declared size of its
// payload. Only the populated part of the buffer is scanned; the payload
// itself need not be present (the data chunk of a 44-byte header matches
// with offset 44 and whatever size the header declares).
func (h *Header) FindChunk(id [4]byte) (dataOffset int, dataSize uint32, err error) {
	target := FourCC(id)

	offset := 12
	for offset+8 <= h.filled {
		chunkID := binary.BigEndian.Uint32(h.buf[offset:])
		chunkSize := binary.LittleEndian.Uint32(h.buf[offset+4:])

		if chunkID == target {
			return offset + 8, chunkSize, nil
		}

		next := int64(offset) + 8 + int64(chunkSize)
		if h.SkipPadding && chunkSize%2 == 1 {
			next++
		}

		// a declared size past the populated extent reads the same as an
		// absent chunk
		if next > int64(h.filled) {
			break
		}

		offset = int(next)
	}

	return 0, 0, fmt.Errorf("%w: %q", ErrChunkNotFound, id[:])
}
