package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the global zap logger at the given level. Unknown levels
// fall back to info.
func Init(logLevel string) {
	cfg := zap.NewProductionConfig()

	switch logLevel {
	case "debug":
		cfg.Level.SetLevel(zap.DebugLevel)
	case "info":
		cfg.Level.SetLevel(zap.InfoLevel)
	case "warn":
		cfg.Level.SetLevel(zap.WarnLevel)
	case "error":
		cfg.Level.SetLevel(zap.ErrorLevel)
	default:
		cfg.Level.SetLevel(zap.InfoLevel)
	}

	lgr, err := cfg.Build()
	if err != nil {
		panic(fmt.Errorf("building logger: %w", err))
	}

	zap.ReplaceGlobals(lgr)
}
