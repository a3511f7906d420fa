package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavheader"
)

func writeTestWav(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := wavheader.NewWriter(f, 16000, 16, 1)

	_, err = w.Write(make([]byte, 3200))
	if err != nil {
		t.Fatal(err)
	}

	err = w.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunPrintsHeaderInfo(t *testing.T) {
	path := writeTestWav(t)

	var out strings.Builder

	err := run([]string{path}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, want := range []string{
		"fmt chunk: offset 20, size 16",
		"AudioFormat: 1",
		"NumChannels: 1",
		"SampleRate: 16000",
		"ByteRate: 32000",
		"BlockAlign: 2",
		"BitsPerSample: 16",
		"data chunk: offset 44, size 3200",
		"Duration: 0.100s",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunMissingPath(t *testing.T) {
	var out strings.Builder

	err := run(nil, &out)
	if !errors.Is(err, errMissingPath) {
		t.Fatalf("err=%v, want errMissingPath", err)
	}
}

func TestRunNotWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")

	err := os.WriteFile(path, []byte("this is not a riff file at all, just text"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder

	err = run([]string{path}, &out)
	if !errors.Is(err, errNotWav) {
		t.Fatalf("err=%v, want errNotWav", err)
	}
}
