// Package reports exports filtered student and staff listings as CSV,
// joined across the geographic hierarchy.
package reports

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jcmorales/aldeas_db/models"
)

// Filter narrows a report. Zero values mean "no restriction".
type Filter struct {
	StateID        int
	MunicipalityID int
	ParishID       int
	VillageID      int
	ProgramID      int
	PositionID     int
	Gender         string
	DocumentType   string
}

var studentHeader = []string{
	"Tipo", "Cédula", "Nombre", "Programa", "Carrera", "Tramo", "Periodo",
	"Genero", "Edad", "Telefono", "Correo",
	"Estado", "Municipio", "Parroquia", "Aldea",
}

var staffHeader = []string{
	"Tipo", "Cédula", "Nombre", "Cargo", "Tipo Personal",
	"Genero", "Edad", "Telefono", "Correo",
	"Estado", "Municipio", "Parroquia", "Aldea",
}

// ExportStudents writes the filtered student report to w and returns
// the number of data rows written.
func ExportStudents(ctx context.Context, db *sql.DB, w io.Writer, f Filter) (int, error) {
	query := `
		SELECT e.tipo_documento, e.numero_documento, e.nombre_apellido,
		       c.tipo, c.nombre, t.nombre, p.nombre,
		       e.genero, e.fecha_nacimiento, e.telefono, e.correo,
		       es.nombre, m.nombre, pa.nombre, a.nombre
		FROM estudiantes e
		JOIN carreras c ON e.carrera_id = c.id
		JOIN tramos t ON e.tramo_id = t.id
		JOIN periodos_academicos p ON e.periodo_id = p.id
		JOIN aldeas a ON e.aldea_id = a.id
		JOIN parroquias pa ON a.parroquia_id = pa.id
		JOIN municipios m ON pa.municipio_id = m.id
		JOIN estados es ON m.estado_id = es.id
		WHERE 1=1`

	var args []interface{}
	add := func(clause string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND "+clause, len(args))
	}

	if f.ProgramID != 0 {
		add("e.carrera_id = $%d", f.ProgramID)
	}
	if f.Gender != "" {
		add("e.genero = $%d", f.Gender)
	}
	if f.DocumentType != "" {
		add("e.tipo_documento = $%d", f.DocumentType)
	}
	if f.VillageID != 0 {
		add("e.aldea_id = $%d", f.VillageID)
	}
	query = appendGeoFilters(query, f, &args)
	query += " ORDER BY e.nombre_apellido"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("querying students: %w", err)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(studentHeader); err != nil {
		return 0, err
	}

	count := 0
	for rows.Next() {
		var st models.Student
		var kind, program, stage, period string
		var state, municipality, parish, village string

		err := rows.Scan(&st.DocumentType, &st.DocumentNumber, &st.FullName,
			&kind, &program, &stage, &period,
			&st.Gender, &st.BirthDate, &st.Phone, &st.Email,
			&state, &municipality, &parish, &village)
		if err != nil {
			return count, fmt.Errorf("scanning student: %w", err)
		}

		record := []string{
			st.DocumentType, st.DocumentNumber, st.FullName,
			kind, program, stage, period,
			nullDisplay(st.Gender), ageDisplay(st.Age()),
			nullDisplay(st.Phone), nullDisplay(st.Email),
			state, municipality, parish, village,
		}
		if err := cw.Write(record); err != nil {
			return count, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	cw.Flush()
	return count, cw.Error()
}

// ExportStaff writes the filtered staff report to w and returns the
// number of data rows written.
func ExportStaff(ctx context.Context, db *sql.DB, w io.Writer, f Filter) (int, error) {
	query := `
		SELECT pe.tipo_documento, pe.numero_documento, pe.nombre_apellido,
		       ca.nombre, pe.tipo_personal,
		       pe.genero, pe.fecha_nacimiento, pe.telefono, pe.correo,
		       es.nombre, m.nombre, pa.nombre, a.nombre
		FROM personal pe
		JOIN cargos ca ON pe.cargo_id = ca.id
		JOIN aldeas a ON pe.aldea_id = a.id
		JOIN parroquias pa ON a.parroquia_id = pa.id
		JOIN municipios m ON pa.municipio_id = m.id
		JOIN estados es ON m.estado_id = es.id
		WHERE 1=1`

	var args []interface{}
	add := func(clause string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND "+clause, len(args))
	}

	if f.PositionID != 0 {
		add("pe.cargo_id = $%d", f.PositionID)
	}
	if f.Gender != "" {
		add("pe.genero = $%d", f.Gender)
	}
	if f.DocumentType != "" {
		add("pe.tipo_documento = $%d", f.DocumentType)
	}
	if f.VillageID != 0 {
		add("pe.aldea_id = $%d", f.VillageID)
	}
	query = appendGeoFilters(query, f, &args)
	query += " ORDER BY pe.nombre_apellido"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("querying staff: %w", err)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(staffHeader); err != nil {
		return 0, err
	}

	count := 0
	for rows.Next() {
		var st models.Staff
		var position string
		var state, municipality, parish, village string

		err := rows.Scan(&st.DocumentType, &st.DocumentNumber, &st.FullName,
			&position, &st.StaffType,
			&st.Gender, &st.BirthDate, &st.Phone, &st.Email,
			&state, &municipality, &parish, &village)
		if err != nil {
			return count, fmt.Errorf("scanning staff: %w", err)
		}

		record := []string{
			st.DocumentType, st.DocumentNumber, st.FullName,
			position, nullDisplay(st.StaffType),
			nullDisplay(st.Gender), ageDisplay(st.Age()),
			nullDisplay(st.Phone), nullDisplay(st.Email),
			state, municipality, parish, village,
		}
		if err := cw.Write(record); err != nil {
			return count, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	cw.Flush()
	return count, cw.Error()
}

func appendGeoFilters(query string, f Filter, args *[]interface{}) string {
	if f.StateID != 0 {
		*args = append(*args, f.StateID)
		query += fmt.Sprintf(" AND m.estado_id = $%d", len(*args))
	}
	if f.MunicipalityID != 0 {
		*args = append(*args, f.MunicipalityID)
		query += fmt.Sprintf(" AND pa.municipio_id = $%d", len(*args))
	}
	if f.ParishID != 0 {
		*args = append(*args, f.ParishID)
		query += fmt.Sprintf(" AND a.parroquia_id = $%d", len(*args))
	}
	return query
}

func nullDisplay(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}

func ageDisplay(age int) string {
	if age < 0 {
		return ""
	}
	return strconv.Itoa(age)
}
