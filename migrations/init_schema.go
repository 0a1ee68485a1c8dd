package migrations

import (
	"database/sql"
	"fmt"
)

// Table creation statements, ordered so foreign keys always reference
// tables created earlier in the list.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS estados (
		id SERIAL PRIMARY KEY,
		nombre VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS municipios (
		id SERIAL PRIMARY KEY,
		nombre VARCHAR(50) NOT NULL,
		estado_id INTEGER NOT NULL REFERENCES estados(id)
	)`,
	`CREATE TABLE IF NOT EXISTS parroquias (
		id SERIAL PRIMARY KEY,
		nombre VARCHAR(50) NOT NULL,
		municipio_id INTEGER NOT NULL REFERENCES municipios(id)
	)`,
	`CREATE TABLE IF NOT EXISTS aldeas (
		id SERIAL PRIMARY KEY,
		codigo VARCHAR(10) NOT NULL UNIQUE,
		nombre VARCHAR(100) NOT NULL,
		parroquia_id INTEGER NOT NULL REFERENCES parroquias(id)
	)`,
	`CREATE TABLE IF NOT EXISTS carreras (
		id SERIAL PRIMARY KEY,
		nombre VARCHAR(100) NOT NULL,
		tipo VARCHAR(10) NOT NULL,
		UNIQUE (nombre, tipo)
	)`,
	`CREATE TABLE IF NOT EXISTS cargos (
		id SERIAL PRIMARY KEY,
		nombre VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS tramos (
		id SERIAL PRIMARY KEY,
		nombre VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS periodos_academicos (
		id SERIAL PRIMARY KEY,
		nombre VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS personal (
		id SERIAL PRIMARY KEY,
		tipo_documento VARCHAR(1) NOT NULL,
		numero_documento VARCHAR(15) NOT NULL UNIQUE,
		nombre_apellido VARCHAR(100) NOT NULL,
		correo VARCHAR(100),
		telefono VARCHAR(20),
		fecha_nacimiento DATE,
		genero VARCHAR(10),
		cargo_id INTEGER NOT NULL REFERENCES cargos(id),
		aldea_id INTEGER NOT NULL REFERENCES aldeas(id),
		tipo_personal VARCHAR(50),
		cargado_por VARCHAR(50) NOT NULL DEFAULT 'USUARIO'
	)`,
	`CREATE TABLE IF NOT EXISTS estudiantes (
		id SERIAL PRIMARY KEY,
		tipo_documento VARCHAR(1) NOT NULL,
		numero_documento VARCHAR(15) NOT NULL UNIQUE,
		nombre_apellido VARCHAR(100) NOT NULL,
		correo VARCHAR(100),
		telefono VARCHAR(20),
		fecha_nacimiento DATE,
		genero VARCHAR(10),
		carrera_id INTEGER NOT NULL REFERENCES carreras(id),
		tramo_id INTEGER NOT NULL REFERENCES tramos(id),
		periodo_id INTEGER NOT NULL REFERENCES periodos_academicos(id),
		aldea_id INTEGER NOT NULL REFERENCES aldeas(id),
		cargado_por VARCHAR(50) NOT NULL DEFAULT 'USUARIO'
	)`,
}

// InitSchema creates any missing registry tables and verifies the result.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tables := []string{
		"estados", "municipios", "parroquias", "aldeas",
		"carreras", "cargos", "tramos", "periodos_academicos",
		"personal", "estudiantes",
	}

	for _, table := range tables {
		var exists bool
		query := `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = $1
			)`

		err := db.QueryRow(query, table).Scan(&exists)
		if err != nil {
			return err
		}

		if !exists {
			return fmt.Errorf("required table %s does not exist", table)
		}
	}

	return nil
}
