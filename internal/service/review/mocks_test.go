package review

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	GetByIDFunc            func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)
	ListAllFunc            func(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)
	ListDueFunc            func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.Session, error)
	UpsertFunc             func(ctx context.Context, s *domain.Session) error
	MarkNotifiedFunc       func(ctx context.Context, ids []uuid.UUID, notifiedAt time.Time) error
	CountDueFunc           func(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	CountFunc              func(ctx context.Context, userID uuid.UUID) (int, error)
	CountReviewedSinceFunc func(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	mu    sync.Mutex
	calls struct {
		Upsert       []*domain.Session
		MarkNotified [][]uuid.UUID
	}
}

func (m *sessionRepoMock) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	if m.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, userID, sessionID)
}

func (m *sessionRepoMock) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	if m.ListAllFunc == nil {
		panic("sessionRepoMock.ListAllFunc is nil")
	}
	return m.ListAllFunc(ctx, userID)
}

func (m *sessionRepoMock) ListDue(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.Session, error) {
	if m.ListDueFunc == nil {
		panic("sessionRepoMock.ListDueFunc is nil")
	}
	return m.ListDueFunc(ctx, userID, now)
}

func (m *sessionRepoMock) Upsert(ctx context.Context, s *domain.Session) error {
	if m.UpsertFunc == nil {
		panic("sessionRepoMock.UpsertFunc is nil")
	}
	m.mu.Lock()
	m.calls.Upsert = append(m.calls.Upsert, s)
	m.mu.Unlock()
	return m.UpsertFunc(ctx, s)
}

func (m *sessionRepoMock) UpsertCalls() []*domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Upsert
}

func (m *sessionRepoMock) MarkNotified(ctx context.Context, ids []uuid.UUID, notifiedAt time.Time) error {
	if m.MarkNotifiedFunc == nil {
		panic("sessionRepoMock.MarkNotifiedFunc is nil")
	}
	m.mu.Lock()
	m.calls.MarkNotified = append(m.calls.MarkNotified, ids)
	m.mu.Unlock()
	return m.MarkNotifiedFunc(ctx, ids, notifiedAt)
}

func (m *sessionRepoMock) MarkNotifiedCalls() [][]uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.MarkNotified
}

func (m *sessionRepoMock) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	if m.CountDueFunc == nil {
		panic("sessionRepoMock.CountDueFunc is nil")
	}
	return m.CountDueFunc(ctx, userID, now)
}

func (m *sessionRepoMock) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountFunc == nil {
		panic("sessionRepoMock.CountFunc is nil")
	}
	return m.CountFunc(ctx, userID)
}

func (m *sessionRepoMock) CountReviewedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	if m.CountReviewedSinceFunc == nil {
		panic("sessionRepoMock.CountReviewedSinceFunc is nil")
	}
	return m.CountReviewedSinceFunc(ctx, userID, since)
}

var _ wordRepo = &wordRepoMock{}

type wordRepoMock struct {
	CountAddedSinceFunc func(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

func (m *wordRepoMock) CountAddedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	if m.CountAddedSinceFunc == nil {
		panic("wordRepoMock.CountAddedSinceFunc is nil")
	}
	return m.CountAddedSinceFunc(ctx, userID, since)
}

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.Settings, error)
	ListAllFunc     func(ctx context.Context) ([]*domain.Settings, error)
}

func (m *settingsRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Settings, error) {
	if m.GetByUserIDFunc == nil {
		panic("settingsRepoMock.GetByUserIDFunc is nil")
	}
	return m.GetByUserIDFunc(ctx, userID)
}

func (m *settingsRepoMock) ListAll(ctx context.Context) ([]*domain.Settings, error) {
	if m.ListAllFunc == nil {
		panic("settingsRepoMock.ListAllFunc is nil")
	}
	return m.ListAllFunc(ctx)
}

var _ reviewLogRepo = &reviewLogRepoMock{}

type reviewLogRepoMock struct {
	CreateFunc        func(ctx context.Context, e *domain.ReviewLog) error
	ListBySessionFunc func(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.ReviewLog, error)

	mu    sync.Mutex
	calls struct {
		Create []*domain.ReviewLog
	}
}

func (m *reviewLogRepoMock) Create(ctx context.Context, e *domain.ReviewLog) error {
	if m.CreateFunc == nil {
		panic("reviewLogRepoMock.CreateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, e)
	m.mu.Unlock()
	return m.CreateFunc(ctx, e)
}

func (m *reviewLogRepoMock) CreateCalls() []*domain.ReviewLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

func (m *reviewLogRepoMock) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.ReviewLog, error) {
	if m.ListBySessionFunc == nil {
		panic("reviewLogRepoMock.ListBySessionFunc is nil")
	}
	return m.ListBySessionFunc(ctx, userID, sessionID)
}

var _ notificationSink = &notificationSinkMock{}

type notificationSinkMock struct {
	DeliverFunc func(ctx context.Context, userID uuid.UUID, deviceToken string, n domain.Notification) error

	mu    sync.Mutex
	calls struct {
		Deliver []domain.Notification
	}
}

func (m *notificationSinkMock) Deliver(ctx context.Context, userID uuid.UUID, deviceToken string, n domain.Notification) error {
	if m.DeliverFunc == nil {
		panic("notificationSinkMock.DeliverFunc is nil")
	}
	m.mu.Lock()
	m.calls.Deliver = append(m.calls.Deliver, n)
	m.mu.Unlock()
	return m.DeliverFunc(ctx, userID, deviceToken, n)
}

func (m *notificationSinkMock) DeliverCalls() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Deliver
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc is nil")
	}
	return m.RunInTxFunc(ctx, fn)
}
