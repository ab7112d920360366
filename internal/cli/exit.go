package cli

import (
	"errors"

	"github.com/Werneck0live/importa-empresas/internal/admin"
	"github.com/Werneck0live/importa-empresas/internal/config"
	"github.com/Werneck0live/importa-empresas/internal/db"
)

// Exit codes do binário.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1 // inclui DATABASE_URL ausente
	ExitUsageError      = 2
	ExitPanic           = 3
	ExitConfigError     = 10
	ExitConnectionError = 11
	ExitInputError      = 12
	ExitLoadError       = 13
)

// ErrUsage marca argumentos ou flags inválidos.
var ErrUsage = errors.New("uso inválido")

// ExitCodeForError mapeia o erro devolvido por Execute para o exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, config.ErrMissingDatabaseURL):
		return ExitGeneralError
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, config.ErrInvalidDatabaseURL):
		return ExitConfigError
	case errors.Is(err, db.ErrConnection):
		return ExitConnectionError
	case errors.Is(err, admin.ErrInput):
		return ExitInputError
	case errors.Is(err, admin.ErrLoad):
		return ExitLoadError
	}
	return ExitGeneralError
}
