package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Werneck0live/importa-empresas/internal/models"
	"github.com/Werneck0live/importa-empresas/internal/repository"
)

// Repository é o que o importador precisa da camada de dados.
type Repository interface {
	ReplaceAll(ctx context.Context, load func(ins repository.Inserter) error) (int64, error)
}

// Notifier recebe o resumo de uma carga confirmada.
type Notifier interface {
	NotifyImport(ctx context.Context, s models.ImportSummary) error
}

const notifyTimeout = 5 * time.Second

// Importer substitui todo o conteúdo da tabela empresas pelo CSV.
type Importer struct {
	Repo    Repository
	Pub     Notifier // opcional
	CSVPath string
	Out     io.Writer // mensagens de progresso; nil = stdout
	Log     *slog.Logger
}

// ImportCompanies roda a carga numa única transação: limpa a tabela,
// insere cada linha do CSV e confirma. Qualquer erro desfaz tudo e a
// tabela fica como estava.
func (im *Importer) ImportCompanies(ctx context.Context) (models.ImportSummary, error) {
	out := im.Out
	if out == nil {
		out = os.Stdout
	}
	log := im.Log
	if log == nil {
		log = slog.Default()
	}

	sum := models.ImportSummary{
		RunID:     uuid.NewString(),
		Table:     repository.Table,
		Source:    im.CSVPath,
		StartedAt: time.Now(),
	}
	log = log.With("run_id", sum.RunID)
	log.Info("import_started", "table", sum.Table, "source", sum.Source)

	fmt.Fprintf(out, "Limpando tabela %s...\n", repository.Table)
	deleted, err := im.Repo.ReplaceAll(ctx, func(ins repository.Inserter) error {
		log.Debug("table_cleared")
		fmt.Fprintln(out, "Lendo CSV...")
		n, err := im.loadCSV(ctx, ins, log)
		sum.Count = n
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInput) && !errors.Is(err, ErrLoad) {
			err = fmt.Errorf("%w: %w", ErrLoad, err)
		}
		log.Error("import_rolled_back", "err", err, "rows_read", sum.Count)
		return models.ImportSummary{}, err
	}

	sum.Deleted = deleted
	sum.FinishedAt = time.Now()
	log.Info("import_committed",
		"deleted", sum.Deleted,
		"count", sum.Count,
		"duration_ms", sum.Duration().Milliseconds(),
	)
	fmt.Fprintf(out, "Importados %d registros com sucesso!\n", sum.Count)

	im.notify(ctx, sum, log)
	return sum, nil
}

func (im *Importer) loadCSV(ctx context.Context, ins repository.Inserter, log *slog.Logger) (int, error) {
	rd, err := openCompanyCSV(im.CSVPath)
	if err != nil {
		return 0, err
	}
	defer rd.Close()

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, fmt.Errorf("%w: %w", ErrLoad, err)
		}

		row, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		c, err := toCompany(row)
		if err != nil {
			return count, err
		}
		if err := ins.Insert(ctx, c); err != nil {
			return count, fmt.Errorf("%w: linha %d (id %d): %w", ErrLoad, row.line, c.ID, err)
		}
		count++
		log.Debug("company_inserted", "id", c.ID, "line", row.line)
	}
}

// notify é best-effort: a carga já foi confirmada.
func (im *Importer) notify(ctx context.Context, sum models.ImportSummary, log *slog.Logger) {
	if im.Pub == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := im.Pub.NotifyImport(nctx, sum); err != nil {
		log.Warn("broker_publish_failed", "err", err)
		return
	}
	log.Debug("broker_published")
}
