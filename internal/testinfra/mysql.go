// Package testinfra sobe as dependências reais usadas pelos testes de integração.
package testinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/Werneck0live/importa-empresas/internal/config"
	"github.com/Werneck0live/importa-empresas/internal/db"
)

const (
	MySQLImage    = "mysql:8.0.36"
	MySQLDatabase = "empresasdb"
	MySQLUser     = "carga"
	MySQLPassword = "carga"
)

// Mesmo layout da tabela de produção (00_empresas no app).
const CreateEmpresasMySQL = "CREATE TABLE IF NOT EXISTS `empresas` (" +
	"`id` INT NOT NULL PRIMARY KEY," +
	"`razaoSocial` VARCHAR(255)," +
	"`nomeEmpresa` VARCHAR(255) NOT NULL," +
	"`cnpj` VARCHAR(20)," +
	"`telefone` VARCHAR(20)," +
	"`createdAt` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP," +
	"`updatedAt` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP)"

type MySQL struct {
	Container *tcmysql.MySQLContainer
	Database  *config.Database
	URL       string // formato DATABASE_URL
}

// StartMySQL sobe um MySQL descartável e cria a tabela empresas.
// O container é encerrado no Cleanup do teste.
func StartMySQL(ctx context.Context, t testing.TB) *MySQL {
	t.Helper()

	ctr, err := tcmysql.Run(ctx, MySQLImage,
		tcmysql.WithDatabase(MySQLDatabase),
		tcmysql.WithUsername(MySQLUser),
		tcmysql.WithPassword(MySQLPassword),
	)
	if err != nil {
		t.Fatalf("start mysql: %v", err)
	}
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := ctr.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	p, err := strconv.Atoi(port.Port())
	if err != nil {
		t.Fatalf("port %q: %v", port.Port(), err)
	}
	dbc := &config.Database{
		Driver:   config.DriverMySQL,
		Host:     host,
		Port:     p,
		Username: MySQLUser,
		Password: MySQLPassword,
		Name:     MySQLDatabase,
	}

	conn, err := db.Open(ctx, dbc)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()
	if _, err := conn.ExecContext(ctx, CreateEmpresasMySQL); err != nil {
		t.Fatalf("create table: %v", err)
	}

	return &MySQL{
		Container: ctr,
		Database:  dbc,
		URL:       fmt.Sprintf("mysql://%s:%s@%s/%s", MySQLUser, MySQLPassword, dbc.Addr(), MySQLDatabase),
	}
}

// Open abre uma sessão nova no banco do container.
func (m *MySQL) Open(ctx context.Context, t testing.TB) *sql.DB {
	t.Helper()
	conn, err := db.Open(ctx, m.Database)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
