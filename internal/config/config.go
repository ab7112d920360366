package config

import (
	"errors"
	"os"
	"time"
)

// DefaultCSVPath é o arquivo exportado que alimenta a carga. O caminho é fixo:
// a carga não aceita outra origem.
const DefaultCSVPath = "/home/ubuntu/upload/empresas_20260202_100005.csv"

// ErrMissingDatabaseURL carrega a mensagem exibida ao usuário quando a variável
// não existe.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL não encontrada")

type Config struct {
	Database    *Database
	CSVPath     string
	RabbitURI   string // vazio = sem notificação
	RabbitQueue string
	Timeout     time.Duration // 0 = sem limite
}

// Load resolve a configuração a partir do ambiente. DATABASE_URL é obrigatória;
// nada além dela é exigido.
func Load() (*Config, error) {
	raw := os.Getenv("DATABASE_URL")
	if raw == "" {
		return nil, ErrMissingDatabaseURL
	}

	db, err := ParseDatabaseURL(raw)
	if err != nil {
		return nil, err
	}

	return &Config{
		Database:    db,
		CSVPath:     DefaultCSVPath,
		RabbitURI:   getenvAny("", "RABBITMQ_URL", "RABBIT_URI"),
		RabbitQueue: getenvAny("empresas_log", "RABBITMQ_QUEUE", "RABBIT_QUEUE"),
		Timeout:     parseDuration("IMPORT_TIMEOUT", 0),
	}, nil
}
