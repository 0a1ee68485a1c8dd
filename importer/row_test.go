package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	data := strings.Join([]string{
		"numero_doc, nombre_carrera ,CODIGO_ALDEA,TRAMO,PERIODO,NOMBRE_APELLIDO",
		"12345678,INFORMATICA,A001,TRAYECTO I,2025-I,JUAN PEREZ",
		"87654321,ELECTRICIDAD,A001,TRAYECTO II,2025-I,MARIA GOMEZ",
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Headers are case/whitespace-normalized; lines are 1-based with
	// the header on line 1.
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "12345678", rows[0].Get(ColDocumentNumber))
	assert.Equal(t, "INFORMATICA", rows[0].Get(ColProgram))
	assert.Equal(t, "MARIA GOMEZ", rows[1].Get(ColFullName))
}

func TestReadCSVMissingRequiredColumn(t *testing.T) {
	data := strings.Join([]string{
		"NUMERO_DOC,NOMBRE_CARRERA,TRAMO,PERIODO",
		"12345678,INFORMATICA,TRAYECTO I,2025-I",
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CODIGO_ALDEA")
	// Wholesale rejection: no rows at all.
	assert.Nil(t, rows)
}

func TestReadCSVEmptyFile(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadCSVShortRecords(t *testing.T) {
	// A data row with fewer cells than the header still parses; the
	// missing cells read as empty.
	data := strings.Join([]string{
		"NUMERO_DOC,NOMBRE_CARRERA,CODIGO_ALDEA,TRAMO,PERIODO",
		"12345678,INFORMATICA",
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get(ColPeriod))
}

func buildWorkbook(t *testing.T, records [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &record))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadWorkbook(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"TIPO_DOC", "NUMERO_DOC", "NOMBRE_CARRERA", "CODIGO_ALDEA", "TRAMO", "PERIODO"},
		{"V", "12345678", "INFORMATICA", "A001", "TRAYECTO I", "2025-I"},
	})

	rows, err := ReadWorkbook(r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "A001", rows[0].Get(ColVillage))
}

func TestReadWorkbookMissingColumn(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"NUMERO_DOC", "NOMBRE_CARRERA", "TRAMO", "PERIODO"},
		{"12345678", "INFORMATICA", "TRAYECTO I", "2025-I"},
	})

	_, err := ReadWorkbook(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "CODIGO_ALDEA")
}

func TestReadWorkbookNotASpreadsheet(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("this is not an xlsx file"))
	require.Error(t, err)
}

func TestReadFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.pdf")
	require.NoError(t, os.WriteFile(path, []byte("whatever"), 0o644))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
