package models

import (
	"database/sql"
	"fmt"
	"time"
)

// Provenance values stored in cargado_por
const (
	LoadedByUser       = "USUARIO"
	LoadedByBulkImport = "CARGA_MASIVA"
)

// Student represents the estudiantes table. DocumentNumber is unique
// across all students; DocumentType is V or E (cédula venezolana or
// extranjera).
type Student struct {
	ID             int            `db:"id" json:"id"`
	DocumentType   string         `db:"tipo_documento" json:"tipo_documento"`
	DocumentNumber string         `db:"numero_documento" json:"numero_documento"`
	FullName       string         `db:"nombre_apellido" json:"nombre_apellido"`
	Email          sql.NullString `db:"correo" json:"correo,omitempty"`
	Phone          sql.NullString `db:"telefono" json:"telefono,omitempty"`
	BirthDate      sql.NullTime   `db:"fecha_nacimiento" json:"fecha_nacimiento,omitempty"`
	Gender         sql.NullString `db:"genero" json:"genero,omitempty"`
	ProgramID      int            `db:"carrera_id" json:"carrera_id"`
	StageID        int            `db:"tramo_id" json:"tramo_id"`
	PeriodID       int            `db:"periodo_id" json:"periodo_id"`
	VillageID      int            `db:"aldea_id" json:"aldea_id"`
	LoadedBy       string         `db:"cargado_por" json:"cargado_por"`
	Program        *Program       `db:"-" json:"carrera,omitempty"`
	Stage          *Stage         `db:"-" json:"tramo,omitempty"`
	Period         *Period        `db:"-" json:"periodo,omitempty"`
	Village        *Village       `db:"-" json:"aldea,omitempty"`
}

// Cedula returns the display form of the identity document, e.g. "V-12345678".
func (s *Student) Cedula() string {
	return fmt.Sprintf("%s-%s", s.DocumentType, s.DocumentNumber)
}

// Age returns the age in whole years, or -1 when the birth date is unknown.
func (s *Student) Age() int {
	return ageAt(s.BirthDate, time.Now())
}

func ageAt(birth sql.NullTime, now time.Time) int {
	if !birth.Valid {
		return -1
	}
	b := birth.Time
	years := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		years--
	}
	return years
}
