package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue increments the counter in a single upsert. The row lock taken by
// the update serializes concurrent callers on the same key until their
// transactions end.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, key string) (int64, error) {
	query := `
		INSERT INTO sequences (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = sequences.value + 1
		RETURNING value;
	`
	var value int64
	if err := r.db(ctx).QueryRow(ctx, query, key).Scan(&value); err != nil {
		return 0, mapError(err, "advance sequence %s", key)
	}
	return value, nil
}
