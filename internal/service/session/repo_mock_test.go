package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
)

var _ videoRepo = &videoRepoMock{}

type videoRepoMock struct {
	GetWithTranscriptFunc func(ctx context.Context, videoID string) (*domain.Video, error)

	calls struct {
		GetWithTranscript []struct {
			VideoID string
		}
	}
	lockGetWithTranscript sync.RWMutex
}

func (mock *videoRepoMock) GetWithTranscript(ctx context.Context, videoID string) (*domain.Video, error) {
	if mock.GetWithTranscriptFunc == nil {
		panic("videoRepoMock.GetWithTranscriptFunc: method is nil but videoRepo.GetWithTranscript was just called")
	}
	callInfo := struct {
		VideoID string
	}{VideoID: videoID}
	mock.lockGetWithTranscript.Lock()
	mock.calls.GetWithTranscript = append(mock.calls.GetWithTranscript, callInfo)
	mock.lockGetWithTranscript.Unlock()
	return mock.GetWithTranscriptFunc(ctx, videoID)
}

func (mock *videoRepoMock) GetWithTranscriptCalls() []struct {
	VideoID string
} {
	mock.lockGetWithTranscript.RLock()
	calls := mock.calls.GetWithTranscript
	mock.lockGetWithTranscript.RUnlock()
	return calls
}

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	MostRecentFunc func(ctx context.Context, userID uuid.UUID) (*domain.HistoryEntry, error)

	calls struct {
		MostRecent []struct {
			UserID uuid.UUID
		}
	}
	lockMostRecent sync.RWMutex
}

func (mock *historyRepoMock) MostRecent(ctx context.Context, userID uuid.UUID) (*domain.HistoryEntry, error) {
	if mock.MostRecentFunc == nil {
		panic("historyRepoMock.MostRecentFunc: method is nil but historyRepo.MostRecent was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
	}{UserID: userID}
	mock.lockMostRecent.Lock()
	mock.calls.MostRecent = append(mock.calls.MostRecent, callInfo)
	mock.lockMostRecent.Unlock()
	return mock.MostRecentFunc(ctx, userID)
}

func (mock *historyRepoMock) MostRecentCalls() []struct {
	UserID uuid.UUID
} {
	mock.lockMostRecent.RLock()
	calls := mock.calls.MostRecent
	mock.lockMostRecent.RUnlock()
	return calls
}

var _ VocabularyLoader = &vocabularyLoaderMock{}

type vocabularyLoaderMock struct {
	LoadFunc func(ctx context.Context, videoID string) error

	calls struct {
		Load []struct {
			VideoID string
		}
	}
	lockLoad sync.RWMutex
}

func (mock *vocabularyLoaderMock) Load(ctx context.Context, videoID string) error {
	if mock.LoadFunc == nil {
		panic("vocabularyLoaderMock.LoadFunc: method is nil but VocabularyLoader.Load was just called")
	}
	callInfo := struct {
		VideoID string
	}{VideoID: videoID}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, videoID)
}

func (mock *vocabularyLoaderMock) LoadCalls() []struct {
	VideoID string
} {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}
