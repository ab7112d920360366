package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Werneck0live/importa-empresas/internal/models"
	"github.com/Werneck0live/importa-empresas/internal/repository"
)

type repoMock struct {
	ReplaceAllFn func(ctx context.Context, load func(ins repository.Inserter) error) (int64, error)
}

func (m *repoMock) ReplaceAll(ctx context.Context, load func(ins repository.Inserter) error) (int64, error) {
	if m.ReplaceAllFn == nil {
		return 0, errors.New("ReplaceAllFn not set")
	}
	return m.ReplaceAllFn(ctx, load)
}

type pubMock struct {
	NotifyImportFn func(ctx context.Context, s models.ImportSummary) error
}

func (m *pubMock) NotifyImport(ctx context.Context, s models.ImportSummary) error {
	if m.NotifyImportFn == nil {
		return nil
	}
	return m.NotifyImportFn(ctx, s)
}

// memRepo imita a transação do CompanyRepository em memória:
// o novo conteúdo só substitui o antigo se load terminar sem erro.
type memRepo struct {
	rows map[int64]models.Company
}

func newMemRepo(seed ...models.Company) *memRepo {
	m := &memRepo{rows: map[int64]models.Company{}}
	for _, c := range seed {
		m.rows[c.ID] = c
	}
	return m
}

func (m *memRepo) ReplaceAll(_ context.Context, load func(ins repository.Inserter) error) (int64, error) {
	staged := &memInserter{rows: map[int64]models.Company{}}
	if err := load(staged); err != nil {
		return 0, err
	}
	deleted := int64(len(m.rows))
	m.rows = staged.rows
	return deleted, nil
}

func (m *memRepo) sorted() []models.Company {
	out := make([]models.Company, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memInserter struct {
	rows map[int64]models.Company
}

func (m *memInserter) Insert(ctx context.Context, c *models.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := m.rows[c.ID]; ok {
		return fmt.Errorf("%w: %d", repository.ErrDuplicateID, c.ID)
	}
	m.rows[c.ID] = *c
	return nil
}
