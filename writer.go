package wavheader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
)

var (
	errNilWriter           = errors.New("can't write to a nil writer")
	errNilBuffer           = errors.New("can't add a nil buffer")
	errAlreadyStarted      = errors.New("already wrote header")
	errNotStarted          = errors.New("header not written yet")
	errUnsupportedBitDepth = errors.New("unsupported PCM bit depth")
)

// Writer streams a PCM WAV file to an io.WriteSeeker. It writes the
// 44-byte header first, passes sample bytes through untouched, and patches
// the two length fields once Finalize is called, since the payload length
// is usually unknown until all samples have been written.
//
// The seeker doubles as the size probe: Finalize measures the file with
// Seek(0, io.SeekEnd). The Writer never opens or closes the sink.
type Writer struct {
	SampleRate int
	BitDepth   int
	NumChans   int

	// WrittenBytes counts every byte sent to the sink, header included.
	WrittenBytes int

	w       io.WriteSeeker
	hdr     *Header
	started bool
}

// NewWriter creates a Writer for the passed sink. Open the sink with
// truncate semantics; any prior content would corrupt the length math.
func NewWriter(w io.WriteSeeker, sampleRate, bitDepth, numChans int) *Writer {
	return &Writer{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		NumChans:   numChans,
		w:          w,
		hdr:        NewStandardHeader(),
	}
}

// Header returns the in-memory header the Writer maintains.
func (w *Writer) Header() *Header { return w.hdr }

// Start writes the header with a zero data size and positions the sink for
// sample data. Write calls Start implicitly when needed.
func (w *Writer) Start() error {
	if w == nil || w.w == nil {
		return errNilWriter
	}

	if w.started {
		return errAlreadyStarted
	}

	err := w.hdr.WriteHeader(w.SampleRate, w.BitDepth, w.NumChans, 0)
	if err != nil {
		return err
	}

	n, err := w.w.Write(w.hdr.Bytes())
	w.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write wav header: %w", err)
	}

	w.started = true

	return nil
}

// Write sends raw little-endian sample bytes to the sink. 8-bit samples
// are unsigned, 16-bit samples signed little endian.
func (w *Writer) Write(p []byte) (int, error) {
	if !w.started {
		err := w.Start()
		if err != nil {
			return 0, err
		}
	}

	n, err := w.w.Write(p)
	w.WrittenBytes += n

	if err != nil {
		return n, fmt.Errorf("failed to write sample data: %w", err)
	}

	return n, nil
}

// WriteBuffer encodes the passed float32 frames as PCM and writes them.
// Samples are clamped to [-1, 1]; only 8 and 16-bit depths are supported.
func (w *Writer) WriteBuffer(buf *audio.Float32Buffer) error {
	if buf == nil {
		return errNilBuffer
	}

	if w.BitDepth != 8 && w.BitDepth != 16 {
		return fmt.Errorf("%w: %d", errUnsupportedBitDepth, w.BitDepth)
	}

	numChans := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		numChans = buf.Format.NumChannels
	}

	frameCount := buf.NumFrames()

	out := make([]byte, 0, frameCount*numChans*w.BitDepth/8)
	for i := 0; i < frameCount; i++ {
		for j := 0; j < numChans; j++ {
			val := buf.Data[i*numChans+j]

			switch w.BitDepth {
			case 8:
				out = append(out, float32ToPCMUint8(val))
			case 16:
				out = binary.LittleEndian.AppendUint16(out, uint16(float32ToPCMInt16(val)))
			}
		}
	}

	_, err := w.Write(out)

	return err
}

// Finalize patches both header length fields from the sink's current size
// and rewrites the header span at offset 0. The sink is left positioned at
// its end, so more samples can follow as long as Finalize runs again.
func (w *Writer) Finalize() error {
	if w == nil || w.w == nil {
		return errNilWriter
	}

	if !w.started {
		return errNotStarted
	}

	totalSize, err := w.w.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to measure written size: %w", err)
	}

	err = w.hdr.SetDataSize(uint32(totalSize) - StandardSize)
	if err != nil {
		return err
	}

	if _, err := w.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to header position: %w", err)
	}

	n, err := w.w.Write(w.hdr.Bytes())
	w.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to rewrite wav header: %w", err)
	}

	if _, err := w.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek back to end: %w", err)
	}

	if f, ok := w.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

func float32ToPCMUint8(value float32) uint8 {
	value = clampFloat32(value, -1, 1)

	scaled := int(math.Round(float64((value + 1.0) * 127.5)))
	if scaled < 0 {
		return 0
	}

	if scaled > 255 {
		return 255
	}

	return uint8(scaled)
}

func float32ToPCMInt16(value float32) int16 {
	value = clampFloat32(value, -1, 1)

	sample := int64(math.Round(float64(value) * 32768.0))
	if sample > 32767 {
		sample = 32767
	}

	if sample < -32768 {
		sample = -32768
	}

	return int16(sample)
}
