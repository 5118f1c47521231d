package whisperserver

import "scamshield/internal/app/engine"

func init() {
	engine.RegisterEngine(EngineName, NewFromSettings)
}
