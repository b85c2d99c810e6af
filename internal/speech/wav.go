package speech

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// PCM is decoded signed 16-bit little-endian audio.
type PCM struct {
	Data       []byte
	SampleRate int
	Channels   int
}

// DecodeWAV walks the RIFF chunks of a WAV file and returns its PCM payload.
// Streamed output from espeak-ng carries placeholder sizes, so a data chunk
// that claims more bytes than are present is cut at the end of the input.
func DecodeWAV(wav []byte) (PCM, error) {
	if len(wav) < 12 {
		return PCM{}, errors.New("wav data too short")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return PCM{}, errors.New("not a valid WAV file")
	}

	var out PCM
	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		start := pos + 8

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 || start+16 > len(wav) {
				return PCM{}, errors.New("truncated fmt chunk")
			}
			format := binary.LittleEndian.Uint16(wav[start:])
			out.Channels = int(binary.LittleEndian.Uint16(wav[start+2:]))
			out.SampleRate = int(binary.LittleEndian.Uint32(wav[start+4:]))
			bits := binary.LittleEndian.Uint16(wav[start+14:])
			if format != 1 || bits != 16 {
				return PCM{}, fmt.Errorf("unsupported WAV encoding (format %d, %d bits)", format, bits)
			}
		case "data":
			if out.SampleRate == 0 {
				return PCM{}, errors.New("data chunk before fmt chunk")
			}
			end := start + chunkSize
			if end > len(wav) || end < start {
				end = len(wav)
			}
			out.Data = wav[start:end]
			return out, nil
		}

		pos = start + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}
	return PCM{}, errors.New("data chunk not found in WAV")
}
