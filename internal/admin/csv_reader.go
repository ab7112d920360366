package admin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Colunas exigidas no cabeçalho do CSV exportado.
const (
	colID          = "id_empresas"
	colRazaoSocial = "razaoSocial"
	colNomeEmpresa = "nomeEmpresa"
	colCNPJ        = "cnpj"
	colTelefone    = "telefone"
)

var requiredColumns = []string{colID, colRazaoSocial, colNomeEmpresa, colCNPJ, colTelefone}

// csvRow são os valores crus de uma linha, ainda sem conversão.
type csvRow struct {
	line        int
	id          string
	razaoSocial string
	nomeEmpresa string
	cnpj        string
	telefone    string
}

// companyReader lê o CSV linha a linha (separador ';', primeira linha = cabeçalho).
type companyReader struct {
	r      *csv.Reader
	index  map[string]int
	empty  bool
	closer io.Closer
}

func openCompanyCSV(path string) (*companyReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}
	cr, err := newCompanyReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	cr.closer = f
	return cr, nil
}

// newCompanyReader valida o UTF-8 (BOM inicial é descartado) e lê o cabeçalho.
// Arquivo totalmente vazio é aceito e não produz linhas.
func newCompanyReader(r io.Reader) (*companyReader, error) {
	utf8 := transform.NewReader(r, transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder()))

	cr := csv.NewReader(utf8)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // linhas curtas/longas são tratadas em field()

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &companyReader{r: cr, empty: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cabeçalho: %w", ErrInput, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: colunas ausentes no cabeçalho: %s", ErrInput, strings.Join(missing, ", "))
	}

	return &companyReader{r: cr, index: index}, nil
}

// Next devolve a próxima linha ou io.EOF ao fim do arquivo.
func (c *companyReader) Next() (csvRow, error) {
	if c.empty {
		return csvRow{}, io.EOF
	}

	rec, err := c.r.Read()
	if errors.Is(err, io.EOF) {
		return csvRow{}, io.EOF
	}
	if err != nil {
		return csvRow{}, fmt.Errorf("%w: %w", ErrInput, err)
	}

	line, _ := c.r.FieldPos(0)
	return csvRow{
		line:        line,
		id:          c.field(rec, colID),
		razaoSocial: c.field(rec, colRazaoSocial),
		nomeEmpresa: c.field(rec, colNomeEmpresa),
		cnpj:        c.field(rec, colCNPJ),
		telefone:    c.field(rec, colTelefone),
	}, nil
}

func (c *companyReader) field(rec []string, col string) string {
	i := c.index[col]
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func (c *companyReader) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
