package admin

import (
	"errors"
	"fmt"
)

var (
	// ErrInput cobre falhas ao ler o CSV: arquivo ausente, UTF-8 inválido,
	// cabeçalho incompleto, campo que não converte.
	ErrInput = errors.New("entrada CSV inválida")

	// ErrLoad cobre falhas do lado do banco: DELETE, INSERT, COMMIT.
	ErrLoad = errors.New("falha na carga")
)

// RowError identifica a linha e o campo do CSV que não puderam ser convertidos.
type RowError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("linha %d, campo %s=%q: %v", e.Line, e.Field, e.Value, e.Err)
}

// Unwrap expõe ErrInput e a causa, para errors.Is/As nos dois.
func (e *RowError) Unwrap() []error {
	return []error{ErrInput, e.Err}
}
