package models

import "time"

// Company é uma linha da tabela empresas.
// CNPJ e Telefone são nil quando a célula do CSV vem vazia (gravados como NULL).
type Company struct {
	ID          int64     `json:"id"`
	RazaoSocial string    `json:"razaoSocial"`
	NomeEmpresa string    `json:"nomeEmpresa"`
	CNPJ        *string   `json:"cnpj"` // apenas dígitos, sem notação científica
	Telefone    *string   `json:"telefone"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
