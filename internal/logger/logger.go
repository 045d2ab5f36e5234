package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New arma el logger global de la API: consola legible en dev,
// JSON plano cuando LOG_FORMAT=json (deploy).
func New(level string, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format == "json" {
		return zerolog.New(os.Stdout).
			Level(lvl).
			With().
			Timestamp().
			Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
