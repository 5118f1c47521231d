// Package runtime captures what the local environment can do, computed once
// at startup instead of queried ad hoc.
package runtime

import (
	"os"
	"os/exec"
)

// Capabilities is an immutable snapshot of local transcription support.
type Capabilities struct {
	// WhisperCppBinary is the whisper.cpp executable path, empty when absent.
	WhisperCppBinary string
	// WhisperCppModel is the model file path, empty when absent.
	WhisperCppModel string
	// OpenAIKey reports whether an OpenAI API key is configured.
	OpenAIKey bool
}

// Detect inspects the environment once. binaryPath and modelPath come from
// configuration; they are kept only when they actually resolve on disk or in
// PATH.
func Detect(binaryPath, modelPath string, openAIKey string) Capabilities {
	caps := Capabilities{OpenAIKey: openAIKey != ""}

	if binaryPath != "" {
		if resolved, err := exec.LookPath(binaryPath); err == nil {
			caps.WhisperCppBinary = resolved
		}
	}
	if modelPath != "" {
		if _, err := os.Stat(modelPath); err == nil {
			caps.WhisperCppModel = modelPath
		}
	}
	return caps
}

// SupportsWhisperCpp reports whether the in-process engine can run at all.
func (c Capabilities) SupportsWhisperCpp() bool {
	return c.WhisperCppBinary != "" && c.WhisperCppModel != ""
}
