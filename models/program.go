package models

import "fmt"

// Program kinds as stored in carreras.tipo
const (
	ProgramPNF = "PNF"
	ProgramPFG = "PFG"
)

// Program represents the carreras table, the academic program catalog.
// Name is stored uppercase and looked up by exact match during imports.
type Program struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"nombre" json:"nombre"`
	Kind string `db:"tipo" json:"tipo"`
}

// FullName returns the display form, e.g. "PNF EN INFORMATICA".
func (p *Program) FullName() string {
	return fmt.Sprintf("%s EN %s", p.Kind, p.Name)
}
