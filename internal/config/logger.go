package config

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger instala um logger JSON como default do slog.
// Os logs vão para w (stderr no binário) para não se misturar com as linhas de
// progresso impressas no stdout.
func InitLogger(level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	l := slog.New(h)
	slog.SetDefault(l) // permite usar slog.Info/Error globalmente
	return l
}

// LogLevelFromEnv lê LOG_LEVEL; usado antes de Load para que até erros de
// configuração saiam no formato certo.
func LogLevelFromEnv() slog.Level {
	return parseLevel(getenv("LOG_LEVEL", "info"))
}
