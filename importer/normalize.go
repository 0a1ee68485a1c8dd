package importer

import (
	"database/sql"
	"strings"
	"time"
)

// Candidate is the canonical form of one spreadsheet row, produced
// before any catalog lookup happens.
type Candidate struct {
	Line           int
	DocumentType   string
	DocumentNumber string
	FullName       string
	Gender         string
	Email          string
	Phone          string
	BirthDate      sql.NullTime
	VillageCode    string
	ProgramName    string
	StageName      string
	PeriodName     string
}

// Normalize canonicalizes a raw row. It is a pure transform: no catalog
// access, no rejection. An unparsable birth date becomes absent rather
// than failing the row.
func Normalize(row Row) Candidate {
	c := Candidate{
		Line:           row.Line,
		DocumentType:   upperTrim(row.Get(ColDocumentType)),
		DocumentNumber: cleanDocumentNumber(row.Get(ColDocumentNumber)),
		FullName:       upperTrim(row.Get(ColFullName)),
		Gender:         upperTrim(row.Get(ColGender)),
		Email:          strings.TrimSpace(row.Get(ColEmail)),
		Phone:          strings.TrimSpace(row.Get(ColPhone)),
		BirthDate:      parseBirthDate(row.Get(ColBirthDate)),
		VillageCode:    upperTrim(row.Get(ColVillage)),
		ProgramName:    upperTrim(row.Get(ColProgram)),
		StageName:      upperTrim(row.Get(ColStage)),
		PeriodName:     upperTrim(row.Get(ColPeriod)),
	}
	if c.DocumentType == "" {
		c.DocumentType = "V"
	}
	return c
}

func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// cleanDocumentNumber truncates at the first dot before trimming.
// Spreadsheets routinely coerce numeric-looking IDs to floats, turning
// 12345678 into "12345678.0".
func cleanDocumentNumber(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Date layouts accepted for FECHA_NACIMIENTO, day-first formats ahead
// of the ISO fallback.
var birthDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
}

func parseBirthDate(s string) sql.NullTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullTime{}
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return sql.NullTime{Time: t, Valid: true}
		}
	}
	return sql.NullTime{}
}
