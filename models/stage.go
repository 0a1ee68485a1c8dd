package models

// Stage represents the tramos table, the academic progression catalog
// (TRAYECTO INICIAL, TRAYECTO I, ...). Name is unique.
type Stage struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"nombre" json:"nombre"`
}
