package player

import (
	"context"
	"fmt"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/logger"
	"github.com/osse101/DigSite_Go/internal/progress"
)

// CollectionLedger counts how many times each player has found each item
type CollectionLedger struct {
	store progress.Store
}

// NewCollectionLedger creates a ledger writing to store
func NewCollectionLedger(store progress.Store) *CollectionLedger {
	return &CollectionLedger{store: store}
}

// HandleInventoryGrant records a discovery for every granted item
func (l *CollectionLedger) HandleInventoryGrant(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.InventoryGrantPayload](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeGrant, err)
	}
	count, err := l.store.IncrementDiscovery(ctx, payload.PlayerID, payload.ItemID)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgDiscoveryRecorded,
		LogFieldPlayerID, payload.PlayerID,
		LogFieldItemID, payload.ItemID,
		LogFieldCount, count)
	return nil
}

// Register subscribes the directory and ledger to inventory grants
func Register(bus event.Bus, dir *Directory, ledger *CollectionLedger) {
	bus.Subscribe(event.InventoryGrant, dir.HandleInventoryGrant)
	bus.Subscribe(event.InventoryGrant, ledger.HandleInventoryGrant)
}
