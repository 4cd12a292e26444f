package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/store"
)

type mockCounterStore struct {
	mock.Mock
}

func (m *mockCounterStore) Get(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *mockCounterStore) Set(ctx context.Context, key string, value int) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *mockCounterStore) All(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func TestCounterService_LeadCategories(t *testing.T) {
	counters := store.NewMemoryCounters(map[string]int{
		store.CounterKey("video_editors"): 12,
		store.CounterKey("hr_managers"):   3,
	})
	svc := NewCounterService(counters, DefaultLeadCategories())

	cats := svc.LeadCategories(context.Background())
	require.Len(t, cats, 5)
	assert.Equal(t, "Video Editor", cats[0].Name)
	assert.Equal(t, 12, cats[0].Count)
	assert.Equal(t, 0, cats[1].Count)
	assert.Equal(t, 3, cats[4].Count)

	counts := svc.Counts(context.Background())
	assert.Equal(t, 12, counts["video_editors"])
	assert.Equal(t, 0, counts["web_developers"])
}

func TestCounterService_StoreFailureReadsAsZero(t *testing.T) {
	m := new(mockCounterStore)
	m.On("Get", mock.Anything, mock.Anything).Return(0, errors.New("connection refused"))

	svc := NewCounterService(m, DefaultLeadCategories())
	for _, c := range svc.LeadCategories(context.Background()) {
		assert.Equal(t, 0, c.Count)
	}
	m.AssertNumberOfCalls(t, "Get", 5)
}

func TestCounterService_Set(t *testing.T) {
	counters := store.NewMemoryCounters(nil)
	svc := NewCounterService(counters, DefaultLeadCategories())
	ctx := context.Background()

	c, err := svc.Set(ctx, "web_developers", 7)
	require.NoError(t, err)
	assert.Equal(t, "Web Developer", c.Name)
	assert.Equal(t, 7, c.Count)

	v, err := counters.Get(ctx, store.CounterKey("web_developers"))
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = svc.Set(ctx, "web_developers", -1)
	assert.ErrorIs(t, err, ErrNegativeCount)

	_, err = svc.Set(ctx, "astronauts", 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCounterService_SetStoreError(t *testing.T) {
	m := new(mockCounterStore)
	m.On("Set", mock.Anything, store.CounterKey("video_editors"), 2).Return(errors.New("db down"))

	svc := NewCounterService(m, DefaultLeadCategories())
	_, err := svc.Set(context.Background(), "video_editors", 2)
	require.Error(t, err)
	assert.Equal(t, apperror.ErrCodeInternal, apperror.CodeOf(err))
	m.AssertExpectations(t)
}

func TestCounterService_Category(t *testing.T) {
	svc := NewCounterService(store.NewMemoryCounters(nil), DefaultLeadCategories())

	c, err := svc.Category("2")
	require.NoError(t, err)
	assert.Equal(t, "Graphic Designer", c.Name)

	_, err = svc.Category("99")
	assert.ErrorIs(t, err, ErrLeadCategoryNotFound)
}
