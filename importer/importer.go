// Package importer implements the bulk student import pipeline: row
// normalization, catalog validation and atomic batch persistence with
// per-row error accumulation.
package importer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmorales/aldeas_db/catalog"
	"github.com/jcmorales/aldeas_db/models"
)

// MaxReportedErrors caps how many row diagnostics a summary lists
// before collapsing the rest into an overflow count.
const MaxReportedErrors = 10

// Report is the outcome of one import run.
type Report struct {
	// Imported is the number of students durably committed.
	Imported int
	// Errors holds one diagnostic per rejected row, in file order.
	Errors []RowError
	// Critical is set when the final batch insert failed. The whole
	// batch was discarded, so Imported is 0 even for rows that
	// validated cleanly.
	Critical error
}

// Messages renders the diagnostics for display, capped at
// MaxReportedErrors with an overflow line.
func (r *Report) Messages() []string {
	if r.Critical != nil {
		return []string{fmt.Sprintf("critical: %v", r.Critical)}
	}

	msgs := make([]string, 0, MaxReportedErrors+1)
	for i, e := range r.Errors {
		if i == MaxReportedErrors {
			msgs = append(msgs, fmt.Sprintf("... and %d more errors.", len(r.Errors)-MaxReportedErrors))
			break
		}
		msgs = append(msgs, e.String())
	}
	return msgs
}

// Importer drives the row-by-row pipeline against a catalog store.
type Importer struct {
	store     catalog.Store
	validator *Validator
}

func New(store catalog.Store) *Importer {
	return &Importer{
		store:     store,
		validator: NewValidator(store),
	}
}

// Import normalizes and validates every row, staging the valid ones,
// then commits the staged students as one atomic batch. A rejected row
// never aborts the run; re-running the same file is safe because
// already-committed rows fail the duplicate check and are reported as
// rejections instead of re-inserted.
func (imp *Importer) Import(ctx context.Context, rows []Row) *Report {
	report := &Report{}
	var batch []models.Student

	for _, row := range rows {
		candidate := Normalize(row)

		res, rejection := imp.validator.Validate(ctx, candidate)
		if rejection != nil {
			report.Errors = append(report.Errors, *rejection)
			continue
		}

		batch = append(batch, newStudent(candidate, res))
	}

	if len(batch) > 0 {
		if err := imp.store.InsertStudents(ctx, batch); err != nil {
			report.Critical = fmt.Errorf("batch insert failed, no rows were committed: %w", err)
			return report
		}
		report.Imported = len(batch)
	}

	return report
}

func newStudent(c Candidate, res *Resolution) models.Student {
	return models.Student{
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		FullName:       c.FullName,
		Email:          nullString(c.Email),
		Phone:          nullString(c.Phone),
		BirthDate:      c.BirthDate,
		Gender:         nullString(c.Gender),
		ProgramID:      res.Program.ID,
		StageID:        res.Stage.ID,
		PeriodID:       res.Period.ID,
		VillageID:      res.Village.ID,
		LoadedBy:       models.LoadedByBulkImport,
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
