package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Werneck0live/importa-empresas/internal/config"
	"github.com/Werneck0live/importa-empresas/internal/models"
)

// Table é a tabela substituída a cada carga.
const Table = "empresas"

var ErrDuplicateID = errors.New("id de empresa duplicado")

var columns = []string{"id", "razaoSocial", "nomeEmpresa", "cnpj", "telefone", "createdAt", "updatedAt"}

// Inserter grava uma empresa dentro da transação aberta por ReplaceAll.
type Inserter interface {
	Insert(ctx context.Context, c *models.Company) error
}

type CompanyRepository struct {
	db      *sql.DB
	dialect dialect
}

func NewCompanyRepository(db *sql.DB, driver config.Driver) *CompanyRepository {
	return &CompanyRepository{db: db, dialect: dialect{driver: driver}}
}

// ReplaceAll apaga todas as linhas da tabela e chama load para inserir as novas,
// tudo na mesma transação. O commit só acontece se load retornar nil; qualquer
// erro (ou cancelamento do ctx) desfaz também o DELETE.
func (r *CompanyRepository) ReplaceAll(ctx context.Context, load func(ins Inserter) error) (deleted int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := rollbackError(tx.Rollback()); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	res, err := tx.ExecContext(ctx, "DELETE FROM "+r.dialect.quote(Table))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", Table, err)
	}
	deleted, _ = res.RowsAffected()

	stmt, err := tx.PrepareContext(ctx, r.insertSQL())
	if err != nil {
		return deleted, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	if err := load(&txInserter{stmt: stmt}); err != nil {
		return deleted, err
	}

	if err := tx.Commit(); err != nil {
		return deleted, fmt.Errorf("commit: %w", err)
	}
	committed = true
	return deleted, nil
}

// GetAll lista a tabela inteira ordenada por id.
func (r *CompanyRepository) GetAll(ctx context.Context) ([]models.Company, error) {
	q := "SELECT " + r.dialect.columnList(columns) + " FROM " + r.dialect.quote(Table) + " ORDER BY " + r.dialect.quote("id")
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Company{}
	for rows.Next() {
		var c models.Company
		var cnpj, telefone sql.NullString
		if err := rows.Scan(&c.ID, &c.RazaoSocial, &c.NomeEmpresa, &cnpj, &telefone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.CNPJ = fromNullString(cnpj)
		c.Telefone = fromNullString(telefone)
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CompanyRepository) insertSQL() string {
	ph := make([]string, 0, len(columns))
	for i := range columns[:5] {
		ph = append(ph, r.dialect.placeholder(i+1))
	}
	ph = append(ph, "NOW()", "NOW()")

	return "INSERT INTO " + r.dialect.quote(Table) +
		" (" + r.dialect.columnList(columns) + ") VALUES (" + strings.Join(ph, ", ") + ")"
}

type txInserter struct {
	stmt *sql.Stmt
}

func (i *txInserter) Insert(ctx context.Context, c *models.Company) error {
	_, err := i.stmt.ExecContext(ctx,
		c.ID,
		c.RazaoSocial,
		c.NomeEmpresa,
		toNullString(c.CNPJ),
		toNullString(c.Telefone),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
		}
		return err
	}
	return nil
}

// rollbackError ignora ErrTxDone (o ctx cancelado já desfez a transação).
func rollbackError(err error) error {
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return fmt.Errorf("rollback: %w", err)
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 { // ER_DUP_ENTRY
		return true
	}
	var pe *pgconn.PgError
	return errors.As(err, &pe) && pe.Code == "23505" // unique_violation
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// dialect cobre as duas diferenças que importam aqui: aspas em identificadores
// (as colunas são camelCase) e placeholders.
type dialect struct {
	driver config.Driver
}

func (d dialect) quote(ident string) string {
	if d.driver == config.DriverPostgres {
		return `"` + ident + `"`
	}
	return "`" + ident + "`"
}

func (d dialect) placeholder(n int) string {
	if d.driver == config.DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d dialect) columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.quote(c)
	}
	return strings.Join(quoted, ", ")
}
