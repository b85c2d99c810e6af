package speech

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildWAV(sampleRate int, dataSize uint32, data []byte, extra ...[]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0xffffffff))
	buf.WriteString("WAVE")
	for _, chunk := range extra {
		buf.Write(chunk)
	}
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(data)
	return buf.Bytes()
}

func TestDecodeWAV(t *testing.T) {
	data := []byte{1, 0, 2, 0, 3, 0}
	pcm, err := DecodeWAV(buildWAV(22050, uint32(len(data)), data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pcm.SampleRate != 22050 || pcm.Channels != 1 {
		t.Fatalf("unexpected format: %+v", pcm)
	}
	if !bytes.Equal(pcm.Data, data) {
		t.Fatalf("unexpected data: %v", pcm.Data)
	}
}

func TestDecodeWAVStreamedSize(t *testing.T) {
	data := []byte{9, 0, 8, 0}
	pcm, err := DecodeWAV(buildWAV(22050, 0x7ffff000, data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(pcm.Data, data) {
		t.Fatalf("expected data cut at end of input, got %v", pcm.Data)
	}
}

func TestDecodeWAVSkipsOddChunk(t *testing.T) {
	list := []byte{'L', 'I', 'S', 'T', 3, 0, 0, 0, 'a', 'b', 'c', 0}
	data := []byte{5, 0}
	pcm, err := DecodeWAV(buildWAV(16000, 2, data, list))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pcm.SampleRate != 16000 || !bytes.Equal(pcm.Data, data) {
		t.Fatalf("unexpected pcm: %+v", pcm)
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	if _, err := DecodeWAV([]byte("not a wav file at all")); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := DecodeWAV([]byte("RIFF")); err == nil {
		t.Fatalf("expected error for short input")
	}
}
