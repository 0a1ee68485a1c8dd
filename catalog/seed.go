package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Default catalog contents. Seeding is idempotent: entries already
// present are left untouched.
var (
	SeedPrograms = map[string][]string{
		"PNF": {"INFORMATICA", "ELECTRICIDAD", "AGROALIMENTARIA", "ENFERMERIA", "CONSTRUCCION CIVIL"},
		"PFG": {"ESTUDIOS JURIDICOS", "COMUNICACION SOCIAL", "GESTION AMBIENTAL"},
	}

	SeedPositions = []string{
		"ASESOR JURÍDICO",
		"COORDINADOR DE ATENCIÓN AL TRIUNFADOR",
		"COORDINADOR DE ALDEA",
		"COORDINADOR DE DESARROLLO INSTITUCIONAL",
		"COORDINADOR DE EJE",
		"COORDINADOR DE PASANTIAS",
		"COORDINADOR DE PROCESOS Y GESTIÓN",
		"COORDINADOR DE PROYECTO",
		"COORDINADOR DE SALA SUCRE",
		"COORDINADOR DE SERVICIO COMUNITARIO",
		"COORDINADOR MUNICIPAL",
		"COORDINAR GENERAL",
		"DOCENTE",
		"ENLACE MUNICIPAL",
		"OPERARIO",
		"SECRETARIA",
		"VIGILANTE",
	}

	SeedStages = []string{"TRAYECTO INICIAL", "TRAYECTO I", "TRAYECTO II", "TRAYECTO III", "TRAYECTO IV"}

	SeedPeriods = []string{"2024-I", "2024-II", "2025-I"}
)

// Seed inserts any missing catalog entries for programs, positions,
// stages and academic periods.
func Seed(ctx context.Context, db *sql.DB) error {
	for kind, names := range SeedPrograms {
		for _, name := range names {
			_, err := db.ExecContext(ctx,
				`INSERT INTO carreras (nombre, tipo) VALUES ($1, $2)
				 ON CONFLICT (nombre, tipo) DO NOTHING`, name, kind)
			if err != nil {
				return fmt.Errorf("seeding program %s: %w", name, err)
			}
		}
	}

	for _, name := range SeedPositions {
		_, err := db.ExecContext(ctx,
			`INSERT INTO cargos (nombre) VALUES ($1) ON CONFLICT (nombre) DO NOTHING`, name)
		if err != nil {
			return fmt.Errorf("seeding position %s: %w", name, err)
		}
	}

	for _, name := range SeedStages {
		_, err := db.ExecContext(ctx,
			`INSERT INTO tramos (nombre) VALUES ($1) ON CONFLICT (nombre) DO NOTHING`, name)
		if err != nil {
			return fmt.Errorf("seeding stage %s: %w", name, err)
		}
	}

	for _, name := range SeedPeriods {
		_, err := db.ExecContext(ctx,
			`INSERT INTO periodos_academicos (nombre) VALUES ($1) ON CONFLICT (nombre) DO NOTHING`, name)
		if err != nil {
			return fmt.Errorf("seeding period %s: %w", name, err)
		}
	}

	return nil
}
