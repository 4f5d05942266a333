package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// PlayerDigState is everything the session machine tracks for one player.
// At most one DigSessionRecord exists per player because it lives here.
type PlayerDigState struct {
	PlayerID   string
	State      domain.DigState
	Binding    *domain.ShinySpotBinding
	Record     *domain.DigSessionRecord
	Progress   domain.DigProgress
	Generation uint64
	UpdatedAt  time.Time

	loaded   bool
	riseTask uuid.UUID
}

// Snapshot is a read-only view of a player's dig state
type Snapshot struct {
	PlayerID          string          `json:"player_id"`
	State             domain.DigState `json:"state"`
	SessionID         string          `json:"session_id,omitempty"`
	ItemID            string          `json:"item_id,omitempty"`
	Progress          float64         `json:"progress"`
	SlotID            *int            `json:"slot_id,omitempty"`
	ShinySpotID       string          `json:"shiny_spot_id,omitempty"`
	Streak            int             `json:"streak"`
	LifetimeDigs      int             `json:"lifetime_digs"`
	DigsSinceMutation int             `json:"digs_since_mutation"`
	Generation        uint64          `json:"generation"`
}

func (st *PlayerDigState) snapshot() Snapshot {
	snap := Snapshot{
		PlayerID:          st.PlayerID,
		State:             st.State,
		Streak:            st.Progress.Streak,
		LifetimeDigs:      st.Progress.LifetimeDigs,
		DigsSinceMutation: st.Progress.DigsSinceMutation,
		Generation:        st.Generation,
	}
	if st.Binding != nil {
		snap.ShinySpotID = st.Binding.SpotID
	}
	if r := st.Record; r != nil {
		slot := r.SlotID
		snap.SessionID = r.SessionID.String()
		snap.ItemID = r.Item.ID
		snap.Progress = r.Progress
		snap.SlotID = &slot
	}
	return snap
}

// stateTable maps player id to state. Callers hold the player's lock from
// the per-player KeyedMutex before reading or writing a state's fields.
// Generations are drawn from one counter so a removed and re-created state
// never repeats a token still held by a pending callback.
type stateTable struct {
	mu     sync.RWMutex
	states map[string]*PlayerDigState
	gen    atomic.Uint64
}

func (t *stateTable) nextGeneration() uint64 {
	return t.gen.Add(1)
}

func (t *stateTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.states)
}

func newStateTable() *stateTable {
	return &stateTable{states: make(map[string]*PlayerDigState)}
}

func (t *stateTable) get(playerID string) (*PlayerDigState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.states[playerID]
	return st, ok
}

func (t *stateTable) getOrCreate(playerID string) *PlayerDigState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[playerID]
	if !ok {
		st = &PlayerDigState{PlayerID: playerID, State: domain.DigStateIdle}
		t.states[playerID] = st
	}
	return st
}

func (t *stateTable) remove(playerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, playerID)
}

func (t *stateTable) playerIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.states))
	for id := range t.states {
		ids = append(ids, id)
	}
	return ids
}
