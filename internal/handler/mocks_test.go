package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/session"
)

// MockSessionService is a testify mock of session.Service
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) QueryCanDig(ctx context.Context, playerID string, pos domain.Position) (*domain.CanDigResult, error) {
	args := m.Called(ctx, playerID, pos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CanDigResult), args.Error(1)
}

func (m *MockSessionService) StartDig(ctx context.Context, req session.StartRequest) (*domain.DigResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DigResult), args.Error(1)
}

func (m *MockSessionService) ReportProgress(ctx context.Context, playerID string, progress float64, itemID string) error {
	return m.Called(ctx, playerID, progress, itemID).Error(0)
}

func (m *MockSessionService) ReportComplete(ctx context.Context, playerID string, success bool, itemID string) (*domain.DigOutcome, error) {
	args := m.Called(ctx, playerID, success, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DigOutcome), args.Error(1)
}

func (m *MockSessionService) PlayerExit(ctx context.Context, playerID string) error {
	return m.Called(ctx, playerID).Error(0)
}

func (m *MockSessionService) LeaveShinySpot(ctx context.Context, playerID string) error {
	return m.Called(ctx, playerID).Error(0)
}

func (m *MockSessionService) State(ctx context.Context, playerID string) (session.Snapshot, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(session.Snapshot), args.Error(1)
}

func (m *MockSessionService) ReapExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockPlayers mocks the player directory endpoints
type MockPlayers struct {
	mock.Mock
}

func (m *MockPlayers) Upsert(ctx context.Context, p domain.PlayerProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlayers) ActivateBuff(ctx context.Context, playerID, buffID string) error {
	return m.Called(ctx, playerID, buffID).Error(0)
}

// MockObjectives mocks ObjectiveSetter
type MockObjectives struct {
	mock.Mock
}

func (m *MockObjectives) SetObjective(ctx context.Context, playerID string, objective domain.PityObjective) error {
	return m.Called(ctx, playerID, objective).Error(0)
}
