package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidCNPJ = errors.New("cnpj não numérico")

// NormalizeCNPJ converte o valor exportado pela planilha (muitas vezes em notação
// científica, ex.: "1.234567E11") para a string inteira "123456700000".
// Célula vazia vira nil (NULL no banco).
//
// O valor passa por float64 e é truncado: zeros à esquerda e dígitos além da
// precisão do float não são recuperados.
func NormalizeCNPJ(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCNPJ, raw)
	}

	t := math.Trunc(f)
	if t == 0 {
		// evita "-0"
		t = 0
	}
	s := strconv.FormatFloat(t, 'f', 0, 64)
	return &s, nil
}

// NullIfEmpty devolve nil para string vazia; qualquer outro valor passa sem alteração.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
