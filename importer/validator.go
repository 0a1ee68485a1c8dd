package importer

import (
	"context"
	"fmt"

	"github.com/jcmorales/aldeas_db/catalog"
	"github.com/jcmorales/aldeas_db/models"
)

// RowError is a per-row rejection diagnostic. Line is the 1-based line
// in the uploaded file.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("Row %d: %s", e.Line, e.Reason)
}

// Resolution carries the catalog entities a validated candidate
// resolved to, ready for persistence.
type Resolution struct {
	Village *models.Village
	Program *models.Program
	Stage   *models.Stage
	Period  *models.Period
}

// Validator resolves candidates against the reference catalogs. It only
// reads; it never writes.
type Validator struct {
	catalogs catalog.Lookup
}

func NewValidator(catalogs catalog.Lookup) *Validator {
	return &Validator{catalogs: catalogs}
}

// Validate checks a candidate in a fixed order, stopping at the first
// failure: required fields, village, program, stage, period, then
// duplicate student. The result is all-or-nothing: either a full
// Resolution or a RowError, never both, never a partial resolution.
func (v *Validator) Validate(ctx context.Context, c Candidate) (*Resolution, *RowError) {
	if c.DocumentNumber == "" || c.VillageCode == "" || c.ProgramName == "" {
		return nil, reject(c, "missing required fields (document, village or program)")
	}

	village, err := v.catalogs.VillageByCode(ctx, c.VillageCode)
	if err != nil {
		return nil, internalError(c, err)
	}
	if village == nil {
		return nil, reject(c, fmt.Sprintf("village code '%s' does not exist", c.VillageCode))
	}

	program, err := v.catalogs.ProgramByName(ctx, c.ProgramName)
	if err != nil {
		return nil, internalError(c, err)
	}
	if program == nil {
		return nil, reject(c, fmt.Sprintf("program '%s' not in catalog", c.ProgramName))
	}

	stage, err := v.catalogs.StageByName(ctx, c.StageName)
	if err != nil {
		return nil, internalError(c, err)
	}
	if stage == nil {
		return nil, reject(c, fmt.Sprintf("stage '%s' not valid", c.StageName))
	}

	period, err := v.catalogs.PeriodByName(ctx, c.PeriodName)
	if err != nil {
		return nil, internalError(c, err)
	}
	if period == nil {
		return nil, reject(c, fmt.Sprintf("period '%s' not valid", c.PeriodName))
	}

	// Uniqueness is keyed on document number alone, matching the unique
	// constraint on estudiantes.numero_documento.
	existing, err := v.catalogs.StudentByDocument(ctx, c.DocumentNumber)
	if err != nil {
		return nil, internalError(c, err)
	}
	if existing != nil {
		return nil, reject(c, fmt.Sprintf("student %s already exists", c.DocumentNumber))
	}

	return &Resolution{Village: village, Program: program, Stage: stage, Period: period}, nil
}

func reject(c Candidate, reason string) *RowError {
	return &RowError{Line: c.Line, Reason: reason}
}

// Catalog store failures while processing a row are reported against
// that row and the run continues, mirroring the recoverable error
// taxonomy of the import pipeline.
func internalError(c Candidate, err error) *RowError {
	return &RowError{Line: c.Line, Reason: fmt.Sprintf("internal error (%v)", err)}
}
