package audio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() []byte {
	return bytes.Repeat([]byte{0x01}, MinSourceSize)
}

func TestNewSourceAcceptsKnownTypes(t *testing.T) {
	tests := []struct {
		mediaType string
		filename  string
	}{
		{"audio/wav", "call.wav"},
		{"audio/mpeg", "call.mp3"},
		{"audio/webm;codecs=opus", "call.webm"},
		{"", "recording.flac"},
		{"application/octet-stream", "voicemail.m4a"},
	}

	for _, tt := range tests {
		src, err := NewSource(validPayload(), tt.mediaType, tt.filename)
		require.NoError(t, err, "type %q file %q", tt.mediaType, tt.filename)
		assert.Equal(t, MinSourceSize, src.Size())
	}
}

func TestNewSourceRejectsOversized(t *testing.T) {
	data := make([]byte, MaxSourceSize+1)
	_, err := NewSource(data, "audio/wav", "big.wav")

	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "too large")
}

func TestNewSourceRejectsTooSmall(t *testing.T) {
	_, err := NewSource([]byte("tiny"), "audio/wav", "tiny.wav")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "too small")
}

func TestNewSourceRejectsUnknownType(t *testing.T) {
	_, err := NewSource(validPayload(), "video/mp4", "clip.mp4")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "unsupported type")
}

func TestNewSourceNormalizesMediaType(t *testing.T) {
	src, err := NewSource(validPayload(), " Audio/WAV; charset=binary ", "call.bin")
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", src.MediaType())
}

func TestNewSourceCopiesBuffer(t *testing.T) {
	data := validPayload()
	src, err := NewSource(data, "audio/wav", "call.wav")
	require.NoError(t, err)

	data[0] = 0xFF
	assert.Equal(t, byte(0x01), src.Bytes()[0])
}
