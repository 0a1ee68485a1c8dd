package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmorales/aldeas_db/models"
)

// fakeStore is an in-memory catalog store. Lookups count calls so tests
// can assert that rejected rows short-circuit before touching the
// catalogs.
type fakeStore struct {
	villages map[string]*models.Village
	programs map[string]*models.Program
	stages   map[string]*models.Stage
	periods  map[string]*models.Period
	students map[string]*models.Student

	lookupCalls int
	insertErr   error
	inserted    [][]models.Student
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		villages: map[string]*models.Village{
			"A001": {ID: 1, Code: "A001", Name: "ALDEA SIMON RODRIGUEZ", ParishID: 1},
		},
		programs: map[string]*models.Program{
			"INFORMATICA":  {ID: 10, Name: "INFORMATICA", Kind: models.ProgramPNF},
			"ELECTRICIDAD": {ID: 11, Name: "ELECTRICIDAD", Kind: models.ProgramPNF},
		},
		stages: map[string]*models.Stage{
			"TRAYECTO I":  {ID: 20, Name: "TRAYECTO I"},
			"TRAYECTO II": {ID: 21, Name: "TRAYECTO II"},
		},
		periods: map[string]*models.Period{
			"2025-I": {ID: 30, Name: "2025-I"},
		},
		students: map[string]*models.Student{},
	}
}

func (f *fakeStore) VillageByCode(_ context.Context, code string) (*models.Village, error) {
	f.lookupCalls++
	return f.villages[code], nil
}

func (f *fakeStore) ProgramByName(_ context.Context, name string) (*models.Program, error) {
	f.lookupCalls++
	return f.programs[name], nil
}

func (f *fakeStore) StageByName(_ context.Context, name string) (*models.Stage, error) {
	f.lookupCalls++
	return f.stages[name], nil
}

func (f *fakeStore) PeriodByName(_ context.Context, name string) (*models.Period, error) {
	f.lookupCalls++
	return f.periods[name], nil
}

func (f *fakeStore) StudentByDocument(_ context.Context, number string) (*models.Student, error) {
	f.lookupCalls++
	return f.students[number], nil
}

func (f *fakeStore) InsertStudents(_ context.Context, batch []models.Student) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, batch)
	for i := range batch {
		st := batch[i]
		f.students[st.DocumentNumber] = &st
	}
	return nil
}

// validRow builds a row resolving cleanly against newFakeStore.
func validRow(line int, doc string) Row {
	return Row{
		Line: line,
		Cells: map[string]string{
			ColDocumentNumber: doc,
			ColDocumentType:   "V",
			ColFullName:       "JUAN PEREZ",
			ColVillage:        "A001",
			ColProgram:        "INFORMATICA",
			ColStage:          "TRAYECTO I",
			ColPeriod:         "2025-I",
		},
	}
}

func TestImportCommitsValidRows(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	rows := []Row{validRow(2, "11111111"), validRow(3, "22222222")}
	report := imp.Import(context.Background(), rows)

	require.NoError(t, report.Critical)
	assert.Equal(t, 2, report.Imported)
	assert.Empty(t, report.Errors)

	require.Len(t, store.inserted, 1)
	batch := store.inserted[0]
	require.Len(t, batch, 2)
	assert.Equal(t, "11111111", batch[0].DocumentNumber)
	assert.Equal(t, models.LoadedByBulkImport, batch[0].LoadedBy)
	assert.Equal(t, 10, batch[0].ProgramID)
	assert.Equal(t, 20, batch[0].StageID)
	assert.Equal(t, 30, batch[0].PeriodID)
	assert.Equal(t, 1, batch[0].VillageID)
}

func TestImportPartialSuccess(t *testing.T) {
	store := newFakeStore()
	store.students["12345678"] = &models.Student{DocumentNumber: "12345678"}
	imp := New(store)

	rowB := validRow(3, "33333333")
	rowB.Cells[ColProgram] = "FILOSOFIA"
	rowC := validRow(4, "12345678")

	report := imp.Import(context.Background(), []Row{validRow(2, "11111111"), rowB, rowC})

	require.NoError(t, report.Critical)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Errors, 2)

	assert.Equal(t, 3, report.Errors[0].Line)
	assert.Equal(t, "program 'FILOSOFIA' not in catalog", report.Errors[0].Reason)
	assert.Equal(t, 4, report.Errors[1].Line)
	assert.Equal(t, "student 12345678 already exists", report.Errors[1].Reason)
}

func TestImportIsIdempotent(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	rows := []Row{validRow(2, "11111111"), validRow(3, "22222222")}

	first := imp.Import(context.Background(), rows)
	require.NoError(t, first.Critical)
	require.Equal(t, 2, first.Imported)

	second := imp.Import(context.Background(), rows)
	require.NoError(t, second.Critical)
	assert.Equal(t, 0, second.Imported)
	require.Len(t, second.Errors, 2)
	for _, e := range second.Errors {
		assert.Contains(t, e.Reason, "already exists")
	}
	// Nothing was double-inserted.
	require.Len(t, store.inserted, 1)
}

func TestImportCommitFailureDiscardsBatch(t *testing.T) {
	store := newFakeStore()
	store.insertErr = fmt.Errorf("connection reset")
	imp := New(store)

	var rows []Row
	for i := 0; i < 5; i++ {
		rows = append(rows, validRow(i+2, fmt.Sprintf("1000000%d", i)))
	}

	report := imp.Import(context.Background(), rows)

	assert.Equal(t, 0, report.Imported)
	assert.Empty(t, report.Errors)
	require.Error(t, report.Critical)
	assert.Contains(t, report.Critical.Error(), "no rows were committed")

	msgs := report.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "critical:")
}

func TestReportMessagesOverflow(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	var rows []Row
	for i := 0; i < 15; i++ {
		r := validRow(i+2, fmt.Sprintf("2000000%d", i))
		r.Cells[ColVillage] = "ZZZ9"
		rows = append(rows, r)
	}

	report := imp.Import(context.Background(), rows)

	assert.Equal(t, 0, report.Imported)
	require.Len(t, report.Errors, 15)

	msgs := report.Messages()
	require.Len(t, msgs, MaxReportedErrors+1)
	assert.Equal(t, "... and 5 more errors.", msgs[MaxReportedErrors])
	assert.Equal(t, "Row 2: village code 'ZZZ9' does not exist", msgs[0])
}

func TestImportEmptyFile(t *testing.T) {
	store := newFakeStore()
	report := New(store).Import(context.Background(), nil)

	assert.Equal(t, 0, report.Imported)
	assert.Empty(t, report.Errors)
	assert.NoError(t, report.Critical)
	assert.Empty(t, store.inserted)
}
