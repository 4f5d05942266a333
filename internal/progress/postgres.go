package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DigSite_Go/internal/database/generated"
	"github.com/osse101/DigSite_Go/internal/domain"
)

// postgresStore implements Store for PostgreSQL using sqlc
type postgresStore struct {
	q *generated.Queries
}

// NewPostgresStore creates a progress store backed by dig_progress and dig_discoveries
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{q: generated.New(pool)}
}

func (s *postgresStore) Load(ctx context.Context, playerID string) (domain.DigProgress, error) {
	row, err := s.q.GetDigProgress(ctx, playerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DigProgress{PlayerID: playerID}, nil
		}
		return domain.DigProgress{}, fmt.Errorf(ErrMsgLoadProgressFailed, err)
	}
	return domain.DigProgress{
		PlayerID:          playerID,
		Streak:            int(row.Streak),
		LifetimeDigs:      int(row.LifetimeDigs),
		DigsSinceMutation: int(row.DigsSinceMutation),
	}, nil
}

func (s *postgresStore) Save(ctx context.Context, p domain.DigProgress) error {
	if err := validate(p); err != nil {
		return err
	}
	err := s.q.UpsertDigProgress(ctx, generated.UpsertDigProgressParams{
		PlayerID:          p.PlayerID,
		Streak:            int32(p.Streak),
		LifetimeDigs:      int32(p.LifetimeDigs),
		DigsSinceMutation: int32(p.DigsSinceMutation),
	})
	if err != nil {
		return fmt.Errorf(ErrMsgSaveProgressFailed, err)
	}
	return nil
}

func (s *postgresStore) IncrementDiscovery(ctx context.Context, playerID, itemID string) (int, error) {
	count, err := s.q.IncrementDiscovery(ctx, generated.IncrementDiscoveryParams{PlayerID: playerID, ItemID: itemID})
	if err != nil {
		return 0, fmt.Errorf(ErrMsgIncrementDiscoveryFail, err)
	}
	return int(count), nil
}

func (s *postgresStore) Discoveries(ctx context.Context, playerID string) (map[string]int, error) {
	rows, err := s.q.ListDiscoveries(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListDiscoveriesFailed, err)
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.ItemID] = int(row.Count)
	}
	return out, nil
}
