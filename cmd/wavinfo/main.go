// This tool prints the format parameters and chunk locations of a wav file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/wavheader"
	"github.com/go-audio/riff"
)

const missingPathMessage = "You must pass the path of the file to inspect"

// headerRegion bounds how much of the file is scanned for chunks. The
// header is usually 44 bytes but files written by other tools can carry
// extra sub-chunks before the data chunk.
const headerRegion = 4096

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var (
	errMissingPath = errors.New("missing path argument")
	errNotWav      = errors.New("not a RIFF/WAVE file")
)

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	buf := make([]byte, headerRegion)

	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}

	hdr := wavheader.NewHeader(buf)
	if err := hdr.SetLen(n); err != nil {
		return err
	}

	if err := checkPreamble(hdr); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	fmtOffset, fmtSize, err := hdr.FindChunk(riff.FmtID)
	if err != nil {
		return err
	}

	audioFormat, _ := hdr.Uint16LE(fmtOffset)
	numChans, _ := hdr.Uint16LE(fmtOffset + 2)
	sampleRate, _ := hdr.Uint32LE(fmtOffset + 4)
	byteRate, _ := hdr.Uint32LE(fmtOffset + 8)
	blockAlign, _ := hdr.Uint16LE(fmtOffset + 12)
	bitDepth, _ := hdr.Uint16LE(fmtOffset + 14)

	fmt.Fprintf(out, "fmt chunk: offset %d, size %d\n", fmtOffset, fmtSize)
	fmt.Fprintf(out, "AudioFormat: %d\n", audioFormat)
	fmt.Fprintf(out, "NumChannels: %d\n", numChans)
	fmt.Fprintf(out, "SampleRate: %d\n", sampleRate)
	fmt.Fprintf(out, "ByteRate: %d\n", byteRate)
	fmt.Fprintf(out, "BlockAlign: %d\n", blockAlign)
	fmt.Fprintf(out, "BitsPerSample: %d\n", bitDepth)

	dataOffset, dataSize, err := hdr.FindChunk(riff.DataFormatID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "data chunk: offset %d, size %d\n", dataOffset, dataSize)

	if byteRate > 0 {
		fmt.Fprintf(out, "Duration: %.3fs\n", float64(dataSize)/float64(byteRate))
	}

	return nil
}

func checkPreamble(hdr *wavheader.Header) error {
	riffID, err := hdr.Uint32BE(0)
	if err != nil {
		return err
	}

	waveID, err := hdr.Uint32BE(8)
	if err != nil {
		return err
	}

	if riffID != wavheader.FourCC(riff.RiffID) || waveID != wavheader.FourCC(riff.WavFormatID) {
		return errNotWav
	}

	return nil
}
