package models

// Period represents the periodos_academicos table (2024-I, 2024-II, ...).
// Name is unique.
type Period struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"nombre" json:"nombre"`
}
