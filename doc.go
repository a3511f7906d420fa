// Package wavheader reads and writes canonical PCM WAV (RIFF) file headers
// in place, inside a fixed-capacity byte buffer.
//
// The package is built for the streaming-record workflow where the payload
// length is only known after all samples have been written: Header renders
// the standard 44-byte header with a placeholder length, SetDataSize patches
// the two length fields afterwards, and FindChunk locates sub-chunks such as
// "fmt " and "data" in headers produced elsewhere.
//
// Writer ties the codec to an io.WriteSeeker, writing the header up front,
// passing raw sample bytes through, and rewriting the length fields on
// Finalize.
package wavheader
