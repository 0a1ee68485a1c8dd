package models

// Municipality represents the municipios table
type Municipality struct {
	ID      int    `db:"id" json:"id"`
	Name    string `db:"nombre" json:"nombre"`
	StateID int    `db:"estado_id" json:"estado_id"`
	State   *State `db:"-" json:"estado,omitempty"`
}
