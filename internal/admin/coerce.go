package admin

import (
	"strconv"
	"strings"

	"github.com/Werneck0live/importa-empresas/internal/models"
	"github.com/Werneck0live/importa-empresas/internal/utils"
)

// toCompany converte uma linha crua.
// razaoSocial e nomeEmpresa passam sem alteração, inclusive vazios.
func toCompany(row csvRow) (*models.Company, error) {
	cnpj, err := utils.NormalizeCNPJ(row.cnpj)
	if err != nil {
		return nil, &RowError{Line: row.line, Field: colCNPJ, Value: row.cnpj, Err: err}
	}

	id, err := strconv.ParseInt(strings.TrimSpace(row.id), 10, 64)
	if err != nil {
		return nil, &RowError{Line: row.line, Field: colID, Value: row.id, Err: err}
	}

	return &models.Company{
		ID:          id,
		RazaoSocial: row.razaoSocial,
		NomeEmpresa: row.nomeEmpresa,
		CNPJ:        cnpj,
		Telefone:    utils.NullIfEmpty(row.telefone),
	}, nil
}
