package vocabulary

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
)

var _ vocabularyRepo = &vocabularyRepoMock{}

type vocabularyRepoMock struct {
	CreateFunc     func(ctx context.Context, item domain.VocabularyItem) (uuid.UUID, error)
	DeleteFunc     func(ctx context.Context, userID, id uuid.UUID) error
	ListByUserFunc func(ctx context.Context, userID uuid.UUID, videoID string) ([]domain.VocabularyItem, error)

	calls struct {
		Create []struct {
			Item domain.VocabularyItem
		}
		Delete []struct {
			UserID uuid.UUID
			ID     uuid.UUID
		}
		ListByUser []struct {
			UserID  uuid.UUID
			VideoID string
		}
	}
	lockCreate     sync.RWMutex
	lockDelete     sync.RWMutex
	lockListByUser sync.RWMutex
}

func (mock *vocabularyRepoMock) Create(ctx context.Context, item domain.VocabularyItem) (uuid.UUID, error) {
	if mock.CreateFunc == nil {
		panic("vocabularyRepoMock.CreateFunc: method is nil but vocabularyRepo.Create was just called")
	}
	callInfo := struct {
		Item domain.VocabularyItem
	}{Item: item}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *vocabularyRepoMock) CreateCalls() []struct {
	Item domain.VocabularyItem
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *vocabularyRepoMock) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("vocabularyRepoMock.DeleteFunc: method is nil but vocabularyRepo.Delete was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		ID     uuid.UUID
	}{UserID: userID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

func (mock *vocabularyRepoMock) DeleteCalls() []struct {
	UserID uuid.UUID
	ID     uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *vocabularyRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, videoID string) ([]domain.VocabularyItem, error) {
	if mock.ListByUserFunc == nil {
		panic("vocabularyRepoMock.ListByUserFunc: method is nil but vocabularyRepo.ListByUser was just called")
	}
	callInfo := struct {
		UserID  uuid.UUID
		VideoID string
	}{UserID: userID, VideoID: videoID}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID, videoID)
}

func (mock *vocabularyRepoMock) ListByUserCalls() []struct {
	UserID  uuid.UUID
	VideoID string
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}
