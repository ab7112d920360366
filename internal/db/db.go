// Package db abre a sessão única usada pela carga.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registra o driver "pgx"

	"github.com/Werneck0live/importa-empresas/internal/config"
)

var ErrConnection = errors.New("falha ao conectar no banco")

const connectTimeout = 10 * time.Second

// Open abre o banco descrito por c, com TLS desabilitado, e valida a conexão
// com um ping. O pool fica limitado a uma conexão: a carga inteira roda numa
// única sessão. Não há nova tentativa em caso de falha.
func Open(ctx context.Context, c *config.Database) (*sql.DB, error) {
	driverName, dsn := DSN(c)

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w (%s): %w", ErrConnection, c, err)
	}
	return conn, nil
}

// DSN devolve o nome do driver database/sql e a string de conexão para c.
func DSN(c *config.Database) (driverName, dsn string) {
	if c.Driver == config.DriverPostgres {
		return "pgx", postgresDSN(c)
	}
	return "mysql", mysqlDSN(c)
}

func mysqlDSN(c *config.Database) string {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.Addr()
	mc.DBName = c.Name
	mc.TLSConfig = "false"
	mc.ParseTime = true
	mc.Timeout = connectTimeout
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func postgresDSN(c *config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.Addr(),
		Path:   "/" + c.Name,
	}
	if c.Username != "" || c.Password != "" {
		u.User = url.UserPassword(c.Username, c.Password)
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	q.Set("connect_timeout", strconv.Itoa(int(connectTimeout.Seconds())))
	u.RawQuery = q.Encode()
	return u.String()
}
