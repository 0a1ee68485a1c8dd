package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column names of the student spreadsheet contract. Headers are matched
// after trimming and uppercasing, so "numero_doc " in the file still
// resolves to NUMERO_DOC.
const (
	ColDocumentType   = "TIPO_DOC"
	ColDocumentNumber = "NUMERO_DOC"
	ColFullName       = "NOMBRE_APELLIDO"
	ColGender         = "GENERO"
	ColBirthDate      = "FECHA_NACIMIENTO"
	ColPhone          = "TELEFONO"
	ColEmail          = "CORREO"
	ColProgram        = "NOMBRE_CARRERA"
	ColVillage        = "CODIGO_ALDEA"
	ColStage          = "TRAMO"
	ColPeriod         = "PERIODO"
)

// RequiredColumns must all be present in the header row or the whole
// file is rejected before any row is processed.
var RequiredColumns = []string{ColDocumentNumber, ColProgram, ColVillage, ColStage, ColPeriod}

// Row is one data line of an uploaded spreadsheet, keyed by normalized
// column name. Line is the 1-based line in the file; the header is
// line 1, so the first data row is line 2.
type Row struct {
	Line  int
	Cells map[string]string
}

// Get returns the raw cell value for a column, or "" when absent.
func (r Row) Get(col string) string {
	return r.Cells[col]
}

func normalizeHeader(h string) string {
	return strings.ToUpper(strings.TrimSpace(h))
}

func buildRows(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalizeHeader(h)
	}

	var missing []string
	for _, required := range RequiredColumns {
		found := false
		for _, h := range headers {
			if h == required {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		cells := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(record) {
				cells[h] = record[j]
			}
		}
		rows = append(rows, Row{Line: i + 2, Cells: cells})
	}
	return rows, nil
}

// ReadCSV parses a CSV export of the student template.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return buildRows(records)
}

// ReadWorkbook parses the first sheet of an xlsx workbook.
func ReadWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return buildRows(records)
}

// ReadFile loads rows from a .xlsx or .csv file on disk.
func ReadFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadWorkbook(file)
	case ".csv":
		return ReadCSV(file)
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .xlsx or .csv", filepath.Ext(path))
	}
}
