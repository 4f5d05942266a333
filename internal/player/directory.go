// Package player stands in for the equipment and inventory collaborators:
// it serves player profile snapshots and records what digs hand out.
package player

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// Directory is an in-memory player profile table
type Directory struct {
	mu       sync.RWMutex
	profiles map[string]domain.PlayerProfile
	validate *validator.Validate
}

// NewDirectory creates an empty directory
func NewDirectory() *Directory {
	return &Directory{
		profiles: make(map[string]domain.PlayerProfile),
		validate: validator.New(),
	}
}

// Upsert stores a profile, replacing any previous one
func (d *Directory) Upsert(ctx context.Context, p domain.PlayerProfile) error {
	if err := d.validate.Struct(p); err != nil {
		return fmt.Errorf(ErrFmtInvalidProfile, domain.ErrInvalidInput, err)
	}
	p.ActiveBuffs = slices.Clone(p.ActiveBuffs)
	p.OwnedBuffs = slices.Clone(p.OwnedBuffs)

	d.mu.Lock()
	d.profiles[p.PlayerID] = p
	d.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgProfileUpserted, LogFieldPlayerID, p.PlayerID)
	return nil
}

// Profile returns a snapshot of the player's profile
func (d *Directory) Profile(_ context.Context, playerID string) (domain.PlayerProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.profiles[playerID]
	if !ok {
		return domain.PlayerProfile{}, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	p.ActiveBuffs = slices.Clone(p.ActiveBuffs)
	p.OwnedBuffs = slices.Clone(p.OwnedBuffs)
	return p, nil
}

// ActivateBuff moves one owned buff into the active set
func (d *Directory) ActivateBuff(ctx context.Context, playerID, buffID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.profiles[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	i := slices.Index(p.OwnedBuffs, buffID)
	if i < 0 {
		return fmt.Errorf(ErrFmtBuffNotOwned, domain.ErrBuffNotFound, buffID, playerID)
	}
	p.OwnedBuffs = slices.Delete(slices.Clone(p.OwnedBuffs), i, i+1)
	if !slices.Contains(p.ActiveBuffs, buffID) {
		p.ActiveBuffs = append(slices.Clone(p.ActiveBuffs), buffID)
	}
	d.profiles[playerID] = p

	logger.FromContext(ctx).Info(LogMsgBuffActivated, LogFieldPlayerID, playerID, LogFieldBuffID, buffID)
	return nil
}

// ConsumeBuffs removes used buffs from the player's active set.
// Buffs that are no longer active are ignored.
func (d *Directory) ConsumeBuffs(ctx context.Context, playerID string, buffIDs []string) error {
	if len(buffIDs) == 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.profiles[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	p.ActiveBuffs = slices.DeleteFunc(slices.Clone(p.ActiveBuffs), func(b string) bool {
		return slices.Contains(buffIDs, b)
	})
	d.profiles[playerID] = p

	logger.FromContext(ctx).Debug(LogMsgBuffsConsumed, LogFieldPlayerID, playerID, LogFieldBuffs, buffIDs)
	return nil
}

// HandleInventoryGrant takes one inventory slot for each granted item
func (d *Directory) HandleInventoryGrant(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.InventoryGrantPayload](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeGrant, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.profiles[payload.PlayerID]
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgGrantForUnknown, LogFieldPlayerID, payload.PlayerID)
		return nil
	}
	if p.InventoryFree > 0 {
		p.InventoryFree--
	}
	d.profiles[payload.PlayerID] = p
	return nil
}
