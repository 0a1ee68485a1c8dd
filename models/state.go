package models

// State represents the estados table, the top of the geographic hierarchy.
type State struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"nombre" json:"nombre"`
}
