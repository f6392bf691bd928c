package readstore

import (
	"context"

	"slotbooker/internal/infra"
	"slotbooker/internal/pkg/pgconv"
	"slotbooker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LocationReadStore struct {
	pool *pgxpool.Pool
}

func NewLocationReadStore(pool *pgxpool.Pool) *LocationReadStore {
	return &LocationReadStore{pool: pool}
}

func (s *LocationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LocationView, error) {
	const query = `SELECT id, name, timezone FROM locations WHERE id = $1`

	var v queries.LocationView
	err := s.pool.QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.Timezone)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("location not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get location", err)
	}
	return &v, nil
}

func (s *LocationReadStore) PersonExists(ctx context.Context, locationID, personID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM people WHERE id = $1 AND location_id = $2 AND active)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, personID, locationID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check person", err)
	}
	return exists, nil
}
