package wavheader

import (
	"fmt"
	"log"

	"github.com/go-audio/riff"
)

func ExampleHeader_WriteHeader() {
	hdr := NewStandardHeader()

	err := hdr.WriteHeader(16000, 16, 1, 0)
	if err != nil {
		log.Fatal(err)
	}

	// once the payload has been streamed, patch the length fields
	err = hdr.SetDataSize(32000)
	if err != nil {
		log.Fatal(err)
	}

	riffSize, _ := hdr.Uint32LE(4)
	fmt.Printf("data starts at %d, riff chunk size %d\n", hdr.DataOffset(), riffSize)
	// Output: data starts at 44, riff chunk size 32036
}

func ExampleHeader_FindChunk() {
	hdr := NewStandardHeader()

	err := hdr.WriteHeader(44100, 16, 2, 1764000)
	if err != nil {
		log.Fatal(err)
	}

	offset, size, err := hdr.FindChunk(riff.DataFormatID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("data chunk: offset %d, size %d\n", offset, size)
	// Output: data chunk: offset 44, size 1764000
}
