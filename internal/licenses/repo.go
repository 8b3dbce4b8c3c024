package licenses

import "context"

// Repo defines persistence operations for structured license records.
type Repo interface {
	Create(ctx context.Context, lic License) error
	GetByID(ctx context.Context, id string) (License, error)
	// List returns records newest-first, optionally filtered by a substring
	// match on SpecificActivity. The Conditions block is omitted from list
	// results.
	List(ctx context.Context, activity string) ([]License, error)
}
