package models

// Parish represents the parroquias table
type Parish struct {
	ID             int           `db:"id" json:"id"`
	Name           string        `db:"nombre" json:"nombre"`
	MunicipalityID int           `db:"municipio_id" json:"municipio_id"`
	Municipality   *Municipality `db:"-" json:"municipio,omitempty"`
}
