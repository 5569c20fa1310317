package repository

import "context"

// UnitOfWork runs fn inside a single storage transaction. Repository calls
// made with the context passed to fn share that transaction; fn returning an
// error rolls the whole unit back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
