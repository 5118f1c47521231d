package main

import (
	"scamshield/cmd/scamshield/cmd"

	// Import engines to register them
	_ "scamshield/internal/app/engine/openaiwhisper"
	_ "scamshield/internal/app/engine/whispercpp"
	_ "scamshield/internal/app/engine/whisperserver"
)

func main() {
	cmd.Execute()
}
