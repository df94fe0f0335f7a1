// This tool prints the chunk structure and format summary of a wav file,
// and can export a single chunk or the raw audio data to a file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jmcmeen/riffy"
)

const missingPathMessage = "You must pass the path of the file to inspect"

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

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("riffdump", flag.ContinueOnError)
	chunkID := fs.String("chunk", "", "export the named chunk instead of printing a summary")
	audio := fs.Bool("audio", false, "export the raw audio data instead of printing a summary")
	outPath := fs.String("o", "out.bin", "destination file for -chunk/-audio")

	err := fs.Parse(args)
	if err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return errMissingPath
	}

	file, err := riffy.Open(fs.Arg(0))
	if err != nil {
		return err
	}

	if *audio {
		n, err := file.ExportAudioDataFile(*outPath)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "wrote %d bytes of audio data to %s\n", n, *outPath)

		return nil
	}

	if *chunkID != "" {
		n, err := file.ExportChunkFile(*chunkID, *outPath)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "wrote %d bytes of chunk %q to %s\n", n, *chunkID, *outPath)

		return nil
	}

	return printSummary(file, out)
}

func printSummary(file *riffy.File, out io.Writer) error {
	info, err := file.Info()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Path: %s\n", info.Path)
	fmt.Fprintf(out, "FileSize: %d\n", info.FileSize)
	fmt.Fprintf(out, "FormatTag: %d (PCM: %t)\n", info.Format.FormatTag, info.IsPCM)
	fmt.Fprintf(out, "Channels: %d\n", info.Format.NumChannels)
	fmt.Fprintf(out, "SampleRate: %d\n", info.Format.SampleRate)
	fmt.Fprintf(out, "AvgBytesPerSec: %d\n", info.Format.AvgBytesPerSec)
	fmt.Fprintf(out, "BlockAlign: %d\n", info.Format.BlockAlign)
	fmt.Fprintf(out, "BitsPerSample: %d\n", info.Format.BitsPerSample)
	fmt.Fprintf(out, "Duration: %.6f seconds\n", info.DurationSeconds)
	fmt.Fprintf(out, "AudioDataSize: %d\n", info.AudioDataSize)
	fmt.Fprintf(out, "SampleCount: %d\n", info.SampleCount)

	chunks, err := file.ListChunks()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Chunks:")

	for _, c := range chunks {
		fmt.Fprintf(out, "\t%q\tsize=%d\toffset=%d\n", c.ID, c.Size, c.Offset)
	}

	return nil
}
