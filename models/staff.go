package models

import (
	"database/sql"
	"fmt"
	"time"
)

// Staff represents the personal table, workers attached to a village.
type Staff struct {
	ID             int            `db:"id" json:"id"`
	DocumentType   string         `db:"tipo_documento" json:"tipo_documento"`
	DocumentNumber string         `db:"numero_documento" json:"numero_documento"`
	FullName       string         `db:"nombre_apellido" json:"nombre_apellido"`
	Email          sql.NullString `db:"correo" json:"correo,omitempty"`
	Phone          sql.NullString `db:"telefono" json:"telefono,omitempty"`
	BirthDate      sql.NullTime   `db:"fecha_nacimiento" json:"fecha_nacimiento,omitempty"`
	Gender         sql.NullString `db:"genero" json:"genero,omitempty"`
	PositionID     int            `db:"cargo_id" json:"cargo_id"`
	VillageID      int            `db:"aldea_id" json:"aldea_id"`
	StaffType      sql.NullString `db:"tipo_personal" json:"tipo_personal,omitempty"`
	LoadedBy       string         `db:"cargado_por" json:"cargado_por"`
	Position       *Position      `db:"-" json:"cargo,omitempty"`
	Village        *Village       `db:"-" json:"aldea,omitempty"`
}

// Cedula returns the display form of the identity document, e.g. "V-12345678".
func (s *Staff) Cedula() string {
	return fmt.Sprintf("%s-%s", s.DocumentType, s.DocumentNumber)
}

// Age returns the age in whole years, or -1 when the birth date is unknown.
func (s *Staff) Age() int {
	return ageAt(s.BirthDate, time.Now())
}
