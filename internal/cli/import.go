package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Werneck0live/importa-empresas/internal/admin"
	"github.com/Werneck0live/importa-empresas/internal/broker"
	"github.com/Werneck0live/importa-empresas/internal/config"
	"github.com/Werneck0live/importa-empresas/internal/db"
	"github.com/Werneck0live/importa-empresas/internal/repository"
)

func runImport(cmd *cobra.Command, _ []string) error {
	// .env é opcional e não sobrescreve o ambiente; é o único arquivo lido
	// antes da checagem de DATABASE_URL
	_ = godotenv.Load()

	level := config.LogLevelFromEnv()
	if getVerboseFlag(cmd) {
		level = slog.LevelDebug
	}
	log := config.InitLogger(level, cmd.ErrOrStderr())

	// nada de banco nem de CSV antes de validar a configuração
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := importContext(ctx, cfg.Timeout)
	defer cancel()

	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		log.Error("db_connect_error", "db", cfg.Database.String(), "err", err)
		return err
	}
	defer conn.Close()
	log.Info("db_connected", "db", cfg.Database.String())

	im := &admin.Importer{
		Repo:    repository.NewCompanyRepository(conn, cfg.Database.Driver),
		CSVPath: cfg.CSVPath,
		Out:     cmd.OutOrStdout(),
		Log:     log,
	}

	// publisher (Rabbit) é opcional: sem ele a carga roda igual
	if cfg.RabbitURI != "" {
		pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
		if err != nil {
			log.Warn("broker_unavailable", "queue", cfg.RabbitQueue, "err", err)
		} else {
			defer pub.Close()
			im.Pub = pub
		}
	}

	_, err = im.ImportCompanies(ctx)
	return err
}

// importContext só impõe prazo quando IMPORT_TIMEOUT foi configurado.
func importContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return context.WithCancel(parent)
}
