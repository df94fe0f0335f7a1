package riffy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestIntBuffer16Bit(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 1234}

	payload := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(payload[i*2:], uint16(s))
	}

	image := buildWav(
		testChunk{id: FmtChunkID, data: pcmFormatPayload(2, 44100, 16)},
		testChunk{id: DataChunkID, data: payload},
	)

	file, err := Parse(bytes.NewReader(image))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	buf, err := file.IntBuffer()
	if err != nil {
		t.Fatalf("IntBuffer: %v", err)
	}

	if buf.SourceBitDepth != 16 {
		t.Fatalf("source bit depth: got %d want 16", buf.SourceBitDepth)
	}

	if buf.Format.NumChannels != 2 || buf.Format.SampleRate != 44100 {
		t.Fatalf("format: got %+v", buf.Format)
	}

	if len(buf.Data) != len(samples) {
		t.Fatalf("sample count: got %d want %d", len(buf.Data), len(samples))
	}

	for i, s := range samples {
		if buf.Data[i] != int(s) {
			t.Fatalf("sample %d: got %d want %d", i, buf.Data[i], s)
		}
	}
}

func TestIntBuffer8BitUnsigned(t *testing.T) {
	payload := []byte{0, 128, 255}

	image := buildWav(
		testChunk{id: FmtChunkID, data: pcmFormatPayload(1, 8000, 8)},
		testChunk{id: DataChunkID, data: payload},
	)

	file, err := Parse(bytes.NewReader(image))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	buf, err := file.IntBuffer()
	if err != nil {
		t.Fatalf("IntBuffer: %v", err)
	}

	want := []int{0, 128, 255}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Fatalf("sample %d: got %d want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestIntBuffer24Bit(t *testing.T) {
	// 0x010203 little-endian and a negative value
	payload := []byte{0x03, 0x02, 0x01, 0xFF, 0xFF, 0xFF}

	image := buildWav(
		testChunk{id: FmtChunkID, data: pcmFormatPayload(1, 48000, 24)},
		testChunk{id: DataChunkID, data: payload},
	)

	file, err := Parse(bytes.NewReader(image))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	buf, err := file.IntBuffer()
	if err != nil {
		t.Fatalf("IntBuffer: %v", err)
	}

	if len(buf.Data) != 2 {
		t.Fatalf("sample count: got %d want 2", len(buf.Data))
	}

	if buf.Data[0] != 0x010203 {
		t.Fatalf("sample 0: got %d want %d", buf.Data[0], 0x010203)
	}

	if buf.Data[1] != -1 {
		t.Fatalf("sample 1: got %d want -1", buf.Data[1])
	}
}

func TestIntBufferIgnoresTrailingPartialSample(t *testing.T) {
	image := buildWav(
		testChunk{id: FmtChunkID, data: pcmFormatPayload(1, 8000, 16)},
		testChunk{id: DataChunkID, data: []byte{1, 0, 2, 0, 3}},
	)

	file, err := Parse(bytes.NewReader(image))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	buf, err := file.IntBuffer()
	if err != nil {
		t.Fatalf("IntBuffer: %v", err)
	}

	if len(buf.Data) != 2 {
		t.Fatalf("sample count: got %d want 2", len(buf.Data))
	}
}

func TestSampleDecodeFuncUnhandledDepth(t *testing.T) {
	_, err := sampleDecodeFunc(64)
	if !errors.Is(err, errUnhandledByteDepth) {
		t.Fatalf("error %v, want errUnhandledByteDepth", err)
	}
}

func TestBytesPerSample(t *testing.T) {
	tests := []struct {
		bits int
		want int
	}{
		{8, 1},
		{16, 2},
		{24, 3},
		{32, 4},
		{12, 2},
	}

	for _, tt := range tests {
		if got := bytesPerSample(tt.bits); got != tt.want {
			t.Fatalf("bytesPerSample(%d)=%d, want %d", tt.bits, got, tt.want)
		}
	}
}

func TestPCMFormatNilSafety(t *testing.T) {
	var file *File
	if file.PCMFormat() != nil {
		t.Fatal("PCMFormat on nil file should be nil")
	}

	if (&File{}).PCMFormat() != nil {
		t.Fatal("PCMFormat without a parsed format should be nil")
	}
}
