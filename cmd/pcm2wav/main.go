// This tool wraps a raw PCM sample stream in a WAV container.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/wavheader"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("pcm2wav", flag.ContinueOnError)

	input := flagSet.String("input", "-", "raw PCM file to read, - for stdin")
	output := flagSet.String("output", "output.wav", "filename to write to")
	rate := flagSet.Int("rate", 16000, "sample rate in hertz")
	bits := flagSet.Int("bits", 16, "bits per sample, typically 8 or 16")
	channels := flagSet.Int("channels", 1, "number of channels")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)

	if *input != "-" {
		file, err := os.Open(*input)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", *input, err)
		}
		defer file.Close()

		in = file
	}

	out, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer out.Close()

	wavOut := wavheader.NewWriter(out, *rate, *bits, *channels)

	err = wavOut.Start()
	if err != nil {
		return err
	}

	copied, err := io.Copy(wavOut, in)
	if err != nil {
		return fmt.Errorf("error copying sample data: %w", err)
	}

	log.Printf("wrapped %d PCM bytes into %s", copied, *output)

	return wavOut.Finalize()
}
