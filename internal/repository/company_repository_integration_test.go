//go:build integration
// +build integration

package repository

/*
	Para Rodar: go test -tags=integration -v ./internal/repository -run TestCompanyRepository_Integration -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"errors"
	"testing"

	"github.com/Werneck0live/importa-empresas/internal/config"
	"github.com/Werneck0live/importa-empresas/internal/models"
	"github.com/Werneck0live/importa-empresas/internal/testinfra"
	"github.com/Werneck0live/importa-empresas/internal/utils"
)

func insertAll(ctx context.Context, companies ...models.Company) func(Inserter) error {
	return func(ins Inserter) error {
		for i := range companies {
			if err := ins.Insert(ctx, &companies[i]); err != nil {
				return err
			}
		}
		return nil
	}
}

// Exercita: ReplaceAll (sucesso) -> GetAll -> ReplaceAll (falha no meio) -> GetAll -> ReplaceAll (id duplicado)
func TestCompanyRepository_Integration_ReplaceAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mysqlC := testinfra.StartMySQL(ctx, t)
	repo := NewCompanyRepository(mysqlC.Open(ctx, t), config.DriverMySQL)

	// 1) Carga inicial
	deleted, err := repo.ReplaceAll(ctx, insertAll(ctx,
		models.Company{ID: 1, RazaoSocial: "ACME S.A.", NomeEmpresa: "ACME", CNPJ: utils.NullIfEmpty("11222333000181"), Telefone: utils.NullIfEmpty("(11) 4002-8922")},
		models.Company{ID: 2, RazaoSocial: "", NomeEmpresa: "Oficina Pombal"},
	))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted=%d want=0", deleted)
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d want=2: %#v", len(got), got)
	}
	if got[0].CNPJ == nil || *got[0].CNPJ != "11222333000181" || got[0].Telefone == nil {
		t.Fatalf("linha 1 inesperada: %#v", got[0])
	}
	if got[1].CNPJ != nil || got[1].Telefone != nil || got[1].RazaoSocial != "" {
		t.Fatalf("linha 2 deveria ter NULLs e razão vazia: %#v", got[1])
	}
	if got[0].CreatedAt.IsZero() || got[0].UpdatedAt.IsZero() {
		t.Fatalf("timestamps não preenchidos: %#v", got[0])
	}

	// 2) Falha no meio da carga: DELETE também é desfeito
	boom := errors.New("csv quebrado")
	_, err = repo.ReplaceAll(ctx, func(ins Inserter) error {
		if err := ins.Insert(ctx, &models.Company{ID: 10, NomeEmpresa: "Nova"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	after, err := repo.GetAll(ctx)
	if err != nil || len(after) != 2 || after[0].ID != 1 || after[1].ID != 2 {
		t.Fatalf("conteúdo anterior deveria continuar intacto: %#v err=%v", after, err)
	}

	// 3) Id duplicado aborta a carga
	_, err = repo.ReplaceAll(ctx, insertAll(ctx,
		models.Company{ID: 7, NomeEmpresa: "A"},
		models.Company{ID: 7, NomeEmpresa: "B"},
	))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("want ErrDuplicateID, got %v", err)
	}
	after, err = repo.GetAll(ctx)
	if err != nil || len(after) != 2 {
		t.Fatalf("conteúdo anterior deveria continuar intacto: %#v err=%v", after, err)
	}

	// 4) Nova carga substitui tudo
	deleted, err = repo.ReplaceAll(ctx, insertAll(ctx, models.Company{ID: 3, NomeEmpresa: "Garage 347"}))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted=%d want=2", deleted)
	}
	after, err = repo.GetAll(ctx)
	if err != nil || len(after) != 1 || after[0].ID != 3 {
		t.Fatalf("tabela deveria conter só a nova carga: %#v err=%v", after, err)
	}
}
