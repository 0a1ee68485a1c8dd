// Package catalog exposes the reference catalogs (villages, programs,
// stages, academic periods) and the student store behind small
// interfaces so callers such as the importer can run against either
// Postgres or an in-memory fake.
package catalog

import (
	"context"

	"github.com/jcmorales/aldeas_db/models"
)

// Lookup resolves natural keys against the reference catalogs. Lookups
// are exact-match on case-normalized keys. An absent entry is reported
// as (nil, nil); a non-nil error means the store itself failed.
type Lookup interface {
	VillageByCode(ctx context.Context, code string) (*models.Village, error)
	ProgramByName(ctx context.Context, name string) (*models.Program, error)
	StageByName(ctx context.Context, name string) (*models.Stage, error)
	PeriodByName(ctx context.Context, name string) (*models.Period, error)
	StudentByDocument(ctx context.Context, number string) (*models.Student, error)
}

// Store is a Lookup that can also persist students. InsertStudents is
// atomic: either the whole batch is committed or none of it is.
type Store interface {
	Lookup
	InsertStudents(ctx context.Context, batch []models.Student) error
}
