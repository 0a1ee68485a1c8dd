package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jcmorales/aldeas_db/models"
)

// PostgresStore implements Store on top of database/sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (s *PostgresStore) VillageByCode(ctx context.Context, code string) (*models.Village, error) {
	var v models.Village
	err := s.db.QueryRowContext(ctx,
		`SELECT id, codigo, nombre, parroquia_id FROM aldeas WHERE codigo = $1`,
		normalizeKey(code)).Scan(&v.ID, &v.Code, &v.Name, &v.ParishID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up village %q: %w", code, err)
	}
	return &v, nil
}

func (s *PostgresStore) ProgramByName(ctx context.Context, name string) (*models.Program, error) {
	var p models.Program
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nombre, tipo FROM carreras WHERE nombre = $1`,
		normalizeKey(name)).Scan(&p.ID, &p.Name, &p.Kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up program %q: %w", name, err)
	}
	return &p, nil
}

func (s *PostgresStore) StageByName(ctx context.Context, name string) (*models.Stage, error) {
	var t models.Stage
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nombre FROM tramos WHERE nombre = $1`,
		normalizeKey(name)).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up stage %q: %w", name, err)
	}
	return &t, nil
}

func (s *PostgresStore) PeriodByName(ctx context.Context, name string) (*models.Period, error) {
	var p models.Period
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nombre FROM periodos_academicos WHERE nombre = $1`,
		normalizeKey(name)).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up period %q: %w", name, err)
	}
	return &p, nil
}

func (s *PostgresStore) StudentByDocument(ctx context.Context, number string) (*models.Student, error) {
	var st models.Student
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tipo_documento, numero_documento, nombre_apellido,
		        carrera_id, tramo_id, periodo_id, aldea_id, cargado_por
		 FROM estudiantes WHERE numero_documento = $1`,
		strings.TrimSpace(number)).Scan(
		&st.ID, &st.DocumentType, &st.DocumentNumber, &st.FullName,
		&st.ProgramID, &st.StageID, &st.PeriodID, &st.VillageID, &st.LoadedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up student %q: %w", number, err)
	}
	return &st, nil
}

// InsertStudents writes the batch inside a single transaction. Any
// failure rolls back every row.
func (s *PostgresStore) InsertStudents(ctx context.Context, batch []models.Student) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO estudiantes (
			tipo_documento, numero_documento, nombre_apellido,
			correo, telefono, fecha_nacimiento, genero,
			carrera_id, tramo_id, periodo_id, aldea_id, cargado_por
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range batch {
		_, err := stmt.ExecContext(ctx,
			st.DocumentType, st.DocumentNumber, st.FullName,
			st.Email, st.Phone, st.BirthDate, st.Gender,
			st.ProgramID, st.StageID, st.PeriodID, st.VillageID, st.LoadedBy)
		if err != nil {
			return fmt.Errorf("inserting student %s: %w", st.DocumentNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}
