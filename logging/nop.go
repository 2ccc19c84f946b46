package logging

import "go.uber.org/zap"

// Nop returns a logger which discards everything
func Nop() Logger {
	return FromZap(zap.NewNop())
}
