package models

// Village represents the aldeas table (aldea universitaria), the unit
// students and staff are attached to. Code is the natural key used in
// spreadsheet imports and is unique across all villages.
type Village struct {
	ID       int     `db:"id" json:"id"`
	Code     string  `db:"codigo" json:"codigo"`
	Name     string  `db:"nombre" json:"nombre"`
	ParishID int     `db:"parroquia_id" json:"parroquia_id"`
	Parish   *Parish `db:"-" json:"parroquia,omitempty"`
}
