package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"scamshield/internal/app/model"
)

// DecodeError reports a buffer that could not be decoded as audio. Feature
// extraction is best-effort at the analysis level, so callers typically
// degrade rather than abort on it.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "audio decode failed: " + e.Reason
}

// IsDecodeError reports whether err is a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

const (
	// frameMillis is the analysis window for silence and flatness measures.
	frameMillis = 20

	// silenceRMS is the per-frame RMS energy below which a frame counts as
	// silent, on the normalized [0,1] amplitude scale.
	silenceRMS = 0.01

	// flatnessThreshold marks a frame as noise-like. Spectral flatness runs
	// from 0 (pure tone) to 1 (white noise); voiced speech sits well below.
	flatnessThreshold = 0.5

	// noisyFrameRatio is the fraction of noise-like, non-silent frames above
	// which the recording is considered to carry background noise.
	noisyFrameRatio = 0.35

	// flatnessBins is the DFT size used for the flatness estimate. Frames are
	// truncated or zero-padded to this length.
	flatnessBins = 256
)

// ExtractFeatures decodes src and derives acoustic measurements from its
// samples. Only 16-bit PCM WAV payloads are decodable in-process; any other
// buffer yields a *DecodeError. The function is deterministic and safe to run
// concurrently with transcription over the same source.
func ExtractFeatures(src *Source) (*model.AudioFeatures, error) {
	samples, sampleRate, err := decodeWAV(src.Bytes())
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 || sampleRate <= 0 {
		return nil, &DecodeError{Reason: "no audio samples in data chunk"}
	}

	frameLen := sampleRate * frameMillis / 1000
	if frameLen <= 0 {
		frameLen = 1
	}

	var sumSquares float64
	silentFrames, noisyFrames, totalFrames := 0, 0, 0

	for start := 0; start < len(samples); start += frameLen {
		end := start + frameLen
		if end > len(samples) {
			end = len(samples)
		}
		frame := samples[start:end]
		totalFrames++

		var frameEnergy float64
		for _, s := range frame {
			frameEnergy += s * s
			sumSquares += s * s
		}
		frameRMS := math.Sqrt(frameEnergy / float64(len(frame)))

		if frameRMS < silenceRMS {
			silentFrames++
			continue
		}
		if spectralFlatness(frame) > flatnessThreshold {
			noisyFrames++
		}
	}

	activeFrames := totalFrames - silentFrames
	hasNoise := activeFrames > 0 &&
		float64(noisyFrames)/float64(activeFrames) > noisyFrameRatio

	return &model.AudioFeatures{
		DurationSeconds:    float64(len(samples)) / float64(sampleRate),
		AverageAmplitude:   math.Sqrt(sumSquares / float64(len(samples))),
		SilenceRatio:       float64(silentFrames) / float64(totalFrames),
		HasBackgroundNoise: hasNoise,
	}, nil
}

// decodeWAV parses a RIFF/WAVE container holding 16-bit PCM and returns the
// first channel's samples normalized to [-1,1].
func decodeWAV(data []byte) ([]float64, int, error) {
	if len(data) < 44 {
		return nil, 0, &DecodeError{Reason: "buffer shorter than a WAV header"}
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, &DecodeError{Reason: "not a RIFF/WAVE container"}
	}

	var (
		sampleRate    int
		numChannels   int
		bitsPerSample int
		pcm           []byte
		haveFmt       bool
	)

	// Walk the chunk list; fmt must precede data.
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if chunkSize < 0 || body+chunkSize > len(data) {
			return nil, 0, &DecodeError{Reason: fmt.Sprintf("truncated %q chunk", chunkID)}
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, 0, &DecodeError{Reason: "fmt chunk too short"}
			}
			audioFormat := int(binary.LittleEndian.Uint16(data[body : body+2]))
			if audioFormat != 1 {
				return nil, 0, &DecodeError{Reason: fmt.Sprintf("unsupported WAV encoding %d, want PCM", audioFormat)}
			}
			numChannels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, 0, &DecodeError{Reason: "data chunk before fmt chunk"}
			}
			pcm = data[body : body+chunkSize]
		}

		// Chunks are word-aligned.
		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
		if pcm != nil {
			break
		}
	}

	if !haveFmt || pcm == nil {
		return nil, 0, &DecodeError{Reason: "missing fmt or data chunk"}
	}
	if bitsPerSample != 16 {
		return nil, 0, &DecodeError{Reason: fmt.Sprintf("unsupported bit depth %d, want 16", bitsPerSample)}
	}
	if numChannels <= 0 {
		return nil, 0, &DecodeError{Reason: "invalid channel count"}
	}

	bytesPerFrame := numChannels * 2
	frames := len(pcm) / bytesPerFrame
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		raw := int16(binary.LittleEndian.Uint16(pcm[i*bytesPerFrame : i*bytesPerFrame+2]))
		samples[i] = float64(raw) / 32768.0
	}
	return samples, sampleRate, nil
}

// spectralFlatness computes the geometric-to-arithmetic mean ratio of the
// magnitude spectrum of one frame, via a direct DFT over flatnessBins points.
func spectralFlatness(frame []float64) float64 {
	n := flatnessBins
	if len(frame) < n {
		n = len(frame)
	}
	if n < 2 {
		return 0
	}

	half := n / 2
	var logSum, sum float64
	count := 0
	for k := 1; k < half; k++ {
		var re, im float64
		for t := 0; t < n; t++ {
			angle := -2 * math.Pi * float64(k) * float64(t) / float64(n)
			re += frame[t] * math.Cos(angle)
			im += frame[t] * math.Sin(angle)
		}
		mag := math.Hypot(re, im) + 1e-12
		logSum += math.Log(mag)
		sum += mag
		count++
	}

	geometric := math.Exp(logSum / float64(count))
	arithmetic := sum / float64(count)
	if arithmetic == 0 {
		return 0
	}
	return geometric / arithmetic
}
