package pity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DigSite_Go/internal/database/generated"
	"github.com/osse101/DigSite_Go/internal/domain"
)

// postgresRepository implements Repository for PostgreSQL using sqlc
type postgresRepository struct {
	q *generated.Queries
}

// NewPostgresRepository creates a pity repository backed by the dig_pity table
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{q: generated.New(pool)}
}

func (r *postgresRepository) Get(ctx context.Context, playerID string) (Record, error) {
	row, err := r.q.GetDigPity(ctx, playerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, nil
		}
		return Record{}, fmt.Errorf(ErrMsgGetPityFailed, err)
	}
	return Record{
		Counter: int(row.Counter),
		Objective: domain.PityObjective{
			ItemID:   row.ObjectiveItemID.String,
			Category: row.ObjectiveCategory.String,
		},
	}, nil
}

func (r *postgresRepository) Increment(ctx context.Context, playerID string) (int, error) {
	counter, err := r.q.IncrementDigPity(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgIncrementPityFailed, err)
	}
	return int(counter), nil
}

func (r *postgresRepository) Reset(ctx context.Context, playerID string) error {
	if err := r.q.ResetDigPity(ctx, playerID); err != nil {
		return fmt.Errorf(ErrMsgResetPityFailed, err)
	}
	return nil
}

func (r *postgresRepository) SetObjective(ctx context.Context, playerID string, objective domain.PityObjective) error {
	err := r.q.UpsertDigPityObjective(ctx, generated.UpsertDigPityObjectiveParams{
		PlayerID:          playerID,
		ObjectiveItemID:   nullText(objective.ItemID),
		ObjectiveCategory: nullText(objective.Category),
	})
	if err != nil {
		return fmt.Errorf(ErrMsgSetObjectiveFailed, err)
	}
	return nil
}

func nullText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
