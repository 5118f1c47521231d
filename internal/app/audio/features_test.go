package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 8000

// buildWAV wraps 16-bit PCM samples in a minimal RIFF/WAVE container.
func buildWAV(t *testing.T, samples []int16) []byte {
	t.Helper()

	var pcm bytes.Buffer
	for _, s := range samples {
		require.NoError(t, binary.Write(&pcm, binary.LittleEndian, s))
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+pcm.Len()))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(testSampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(testSampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(pcm.Len()))
	buf.Write(pcm.Bytes())

	return buf.Bytes()
}

func wavSource(t *testing.T, samples []int16) *Source {
	t.Helper()
	src, err := NewSource(buildWAV(t, samples), "audio/wav", "test.wav")
	require.NoError(t, err)
	return src
}

func sineSamples(seconds float64, freq, amplitude float64) []int16 {
	n := int(seconds * testSampleRate)
	out := make([]int16, n)
	for i := range out {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/testSampleRate)
		out[i] = int16(v * 32767)
	}
	return out
}

func noiseSamples(seconds float64, amplitude float64) []int16 {
	rng := rand.New(rand.NewSource(42))
	n := int(seconds * testSampleRate)
	out := make([]int16, n)
	for i := range out {
		v := amplitude * (2*rng.Float64() - 1)
		out[i] = int16(v * 32767)
	}
	return out
}

func TestExtractFeaturesSilence(t *testing.T) {
	src := wavSource(t, make([]int16, testSampleRate))

	features, err := ExtractFeatures(src)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, features.DurationSeconds, 0.01)
	assert.InDelta(t, 1.0, features.SilenceRatio, 0.01)
	assert.InDelta(t, 0.0, features.AverageAmplitude, 0.01)
	assert.False(t, features.HasBackgroundNoise)
}

func TestExtractFeaturesTone(t *testing.T) {
	src := wavSource(t, sineSamples(2.0, 440, 0.5))

	features, err := ExtractFeatures(src)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, features.DurationSeconds, 0.01)
	// RMS of a 0.5-amplitude sine is 0.5/sqrt(2).
	assert.InDelta(t, 0.3536, features.AverageAmplitude, 0.02)
	assert.InDelta(t, 0.0, features.SilenceRatio, 0.01)
	assert.False(t, features.HasBackgroundNoise)
}

func TestExtractFeaturesNoise(t *testing.T) {
	src := wavSource(t, noiseSamples(1.0, 0.5))

	features, err := ExtractFeatures(src)
	require.NoError(t, err)

	assert.True(t, features.HasBackgroundNoise)
	assert.InDelta(t, 0.0, features.SilenceRatio, 0.01)
}

func TestExtractFeaturesHalfSilent(t *testing.T) {
	samples := append(sineSamples(1.0, 440, 0.5), make([]int16, testSampleRate)...)
	src := wavSource(t, samples)

	features, err := ExtractFeatures(src)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, features.SilenceRatio, 0.05)
}

func TestExtractFeaturesRejectsNonWAV(t *testing.T) {
	src, err := NewSource(bytes.Repeat([]byte{0x55}, 4096), "audio/mpeg", "call.mp3")
	require.NoError(t, err)

	_, err = ExtractFeatures(src)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestExtractFeaturesRejectsUnsupportedBitDepth(t *testing.T) {
	data := buildWAV(t, sineSamples(0.5, 440, 0.5))
	// Rewrite bits-per-sample in the fmt chunk to 8.
	binary.LittleEndian.PutUint16(data[34:36], 8)

	src, err := NewSource(data, "audio/wav", "call.wav")
	require.NoError(t, err)

	_, err = ExtractFeatures(src)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestExtractFeaturesTruncatedChunk(t *testing.T) {
	data := buildWAV(t, sineSamples(0.5, 440, 0.5))
	truncated := data[:len(data)-100]

	src, err := NewSource(truncated, "audio/wav", "call.wav")
	require.NoError(t, err)

	_, err = ExtractFeatures(src)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}
