// This tool converts a wav file into an aiff file and stores it in the same
// folder as the source.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/aiff"
	"github.com/jmcmeen/riffy"
)

var flagPath = flag.String("path", "", "The path to the wav file to convert to aiff")

func main() {
	flag.Parse()

	if *flagPath == "" {
		fmt.Println("You must set the -path flag")
		os.Exit(1)
	}

	outPath, err := convert(*flagPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("Wav file converted to %s\n", outPath)
}

func convert(sourcePath string) (string, error) {
	file, err := riffy.Open(sourcePath)
	if err != nil {
		return "", err
	}

	buf, err := file.IntBuffer()
	if err != nil {
		return "", err
	}

	outPath := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile,
		int(file.Format.SampleRate),
		int(file.Format.BitsPerSample),
		int(file.Format.NumChannels))

	err = encoder.Write(buf)
	if err != nil {
		return "", fmt.Errorf("failed to encode aiff: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return "", fmt.Errorf("failed to finalize aiff: %w", err)
	}

	return outPath, nil
}
