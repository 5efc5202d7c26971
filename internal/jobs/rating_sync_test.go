package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRecomputer struct {
	mock.Mock
}

func (m *mockRecomputer) RecomputeAllRatings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestRatingSync_Run(t *testing.T) {
	repo := new(mockRecomputer)
	repo.On("RecomputeAllRatings", mock.Anything).Return(int64(2), nil).Once()

	NewRatingSync(repo).Run()
	repo.AssertExpectations(t)
}

func TestRatingSync_RunSwallowsErrors(t *testing.T) {
	repo := new(mockRecomputer)
	repo.On("RecomputeAllRatings", mock.Anything).Return(int64(0), errors.New("timeout"))

	assert.NotPanics(t, NewRatingSync(repo).Run)
}

func TestScheduler_Add(t *testing.T) {
	s := NewScheduler()
	job := NewRatingSync(new(mockRecomputer))

	assert.NoError(t, s.Add("rating_sync", "", job))
	assert.NoError(t, s.Add("rating_sync", "@every 1h", job))
	assert.Error(t, s.Add("broken", "every tuesday", job))
	assert.Len(t, s.cron.Entries(), 1)

	s.Start()
	s.Stop(context.Background())
}
