package laws

import "context"

// Repo reads the legal unit catalog.
type Repo interface {
	List(ctx context.Context, f Filter) ([]LegalUnit, error)
	GetByID(ctx context.Context, id int64) (LegalUnit, error)
}

// Importer bulk loads units. Existing ids are left untouched; it returns the
// number of rows actually inserted.
type Importer interface {
	InsertMany(ctx context.Context, units []LegalUnit) (int, error)
}
