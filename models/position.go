package models

// Position represents the cargos table, the staff position catalog.
type Position struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"nombre" json:"nombre"`
}
