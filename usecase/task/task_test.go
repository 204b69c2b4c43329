package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/backend/domain"
	"github.com/taskmaster/backend/repository"
	"github.com/taskmaster/backend/repository/memory"
	taskUC "github.com/taskmaster/backend/usecase/task"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) FindPage(ctx context.Context, userID string, status *domain.Status, page domain.PageRequest) (*domain.TaskPage, error) {
	args := m.Called(ctx, userID, status, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskPage), args.Error(1)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *mockTaskRepo) CountByStatus(ctx context.Context, userID string) ([]domain.StatusCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var alice = &domain.User{ID: "user-a", Username: "alice", Role: domain.RoleUser}

func strPtr(s string) *string { return &s }

func newFixture(t *testing.T) (*taskUC.UseCase, *mockTaskRepo, *mockUserRepo, repository.ListCache) {
	t.Helper()
	tasks := new(mockTaskRepo)
	users := new(mockUserRepo)
	cache := memory.NewListCache()
	uc := taskUC.New(tasks, users, cache, nil)
	return uc, tasks, users, cache
}

func TestCreateDefaultsStatusToTodo(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)
	ctx := context.Background()

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

	var saved *domain.Task
	tasks.On("Save", mock.Anything, mock.AnythingOfType("*domain.Task")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Task)
			saved.ID = "task-1"
		}).
		Return(&domain.Task{ID: "task-1", UserID: alice.ID, Title: "Write spec", Status: domain.StatusTodo}, nil)

	created, err := uc.Create(ctx, "alice", taskUC.Input{Title: "Write spec"})
	require.NoError(t, err)

	assert.Equal(t, "task-1", created.ID)
	assert.Equal(t, domain.StatusTodo, saved.Status)
	assert.Equal(t, alice.ID, saved.UserID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestCreateUnrecognizedStatusFallsBack(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

	var saved *domain.Task
	tasks.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Task) }).
		Return(&domain.Task{ID: "task-1"}, nil)

	_, err := uc.Create(context.Background(), "alice", taskUC.Input{
		Title:  "Write spec",
		Status: strPtr("bogus"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, saved.Status)
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

	_, err := uc.Create(context.Background(), "alice", taskUC.Input{Title: "   "})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	tasks.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetForeignTaskIsNotFound(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	bob := &domain.User{ID: "user-b", Username: "bob"}
	users.On("GetByUsername", mock.Anything, "bob").Return(bob, nil)

	// The adapter reports a task owned by someone else exactly like a
	// missing one.
	tasks.On("FindByID", mock.Anything, "task-of-alice", bob.ID).Return(nil, domain.ErrTaskNotFound)

	_, err := uc.Get(context.Background(), "bob", "task-of-alice")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUpdateIgnoresInvalidStatusAppliesRest(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

	existing := &domain.Task{
		ID:     "task-1",
		UserID: alice.ID,
		Title:  "Write spec",
		Status: domain.StatusInProgress,
	}
	tasks.On("FindByID", mock.Anything, "task-1", alice.ID).Return(existing, nil)

	var saved *domain.Task
	tasks.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Task) }).
		Return(existing, nil)

	due := time.Now().Add(48 * time.Hour)
	_, err := uc.Update(context.Background(), "alice", "task-1", taskUC.Input{
		Title:       "Write spec v2",
		Description: "updated",
		Status:      strPtr("bogus"),
		DueDate:     &due,
	})
	require.NoError(t, err)

	assert.Equal(t, "Write spec v2", saved.Title)
	assert.Equal(t, "updated", saved.Description)
	assert.Equal(t, domain.StatusInProgress, saved.Status)
	require.NotNil(t, saved.DueDate)
	assert.True(t, saved.DueDate.Equal(due))
}

func TestUpdateValidStatusApplies(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

	existing := &domain.Task{ID: "task-1", UserID: alice.ID, Title: "Write spec", Status: domain.StatusTodo}
	tasks.On("FindByID", mock.Anything, "task-1", alice.ID).Return(existing, nil)

	var saved *domain.Task
	tasks.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Task) }).
		Return(existing, nil)

	_, err := uc.Update(context.Background(), "alice", "task-1", taskUC.Input{
		Title:  "Write spec",
		Status: strPtr("done"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, saved.Status)
}

func TestDeleteForeignTaskIsNotFound(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
	tasks.On("FindByID", mock.Anything, "task-x", alice.ID).Return(nil, domain.ErrTaskNotFound)

	err := uc.Delete(context.Background(), "alice", "task-x")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestListCachesAndMutationsEvict(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)
	ctx := context.Background()

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

	page := &domain.TaskPage{
		Items:      []domain.Task{{ID: "task-1", UserID: alice.ID, Title: "Write spec", Status: domain.StatusTodo}},
		Page:       0,
		Size:       10,
		TotalItems: 1,
		TotalPages: 1,
	}
	tasks.On("FindPage", mock.Anything, alice.ID, (*domain.Status)(nil), mock.Anything).Return(page, nil)

	req := domain.PageRequest{Page: 0, Size: 10}

	first, err := uc.List(ctx, "alice", "", req)
	require.NoError(t, err)
	second, err := uc.List(ctx, "alice", "", req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Second call must come from the cache.
	tasks.AssertNumberOfCalls(t, "FindPage", 1)

	tasks.On("Save", mock.Anything, mock.Anything).Return(&domain.Task{ID: "task-2"}, nil)
	_, err = uc.Create(ctx, "alice", taskUC.Input{Title: "Another"})
	require.NoError(t, err)

	_, err = uc.List(ctx, "alice", "", req)
	require.NoError(t, err)
	tasks.AssertNumberOfCalls(t, "FindPage", 2)
}

func TestListEvictionIsPerUser(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)
	ctx := context.Background()

	bob := &domain.User{ID: "user-b", Username: "bob"}
	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
	users.On("GetByUsername", mock.Anything, "bob").Return(bob, nil)

	tasks.On("FindPage", mock.Anything, alice.ID, (*domain.Status)(nil), mock.Anything).Return(&domain.TaskPage{Size: 10}, nil)
	tasks.On("FindPage", mock.Anything, bob.ID, (*domain.Status)(nil), mock.Anything).Return(&domain.TaskPage{Size: 10}, nil)

	req := domain.PageRequest{Page: 0, Size: 10}
	_, err := uc.List(ctx, "alice", "", req)
	require.NoError(t, err)
	_, err = uc.List(ctx, "bob", "", req)
	require.NoError(t, err)

	// A mutation by bob must not evict alice's cached pages.
	tasks.On("Save", mock.Anything, mock.Anything).Return(&domain.Task{ID: "task-b"}, nil)
	_, err = uc.Create(ctx, "bob", taskUC.Input{Title: "Bob task"})
	require.NoError(t, err)

	_, err = uc.List(ctx, "alice", "", req)
	require.NoError(t, err)

	calls := 0
	for _, call := range tasks.Calls {
		if call.Method == "FindPage" && call.Arguments.String(1) == alice.ID {
			calls++
		}
	}
	assert.Equal(t, 1, calls)
}

func TestListDropsUnparseableFilter(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
	tasks.On("FindPage", mock.Anything, alice.ID, (*domain.Status)(nil), mock.Anything).Return(&domain.TaskPage{Size: 10}, nil)

	_, err := uc.List(context.Background(), "alice", "bogus", domain.PageRequest{})
	require.NoError(t, err)

	tasks.AssertCalled(t, "FindPage", mock.Anything, alice.ID, (*domain.Status)(nil), mock.Anything)
}

func TestListAppliesValidFilter(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

	done := domain.StatusDone
	tasks.On("FindPage", mock.Anything, alice.ID, &done, mock.Anything).Return(&domain.TaskPage{Size: 10}, nil)

	_, err := uc.List(context.Background(), "alice", "done", domain.PageRequest{})
	require.NoError(t, err)

	tasks.AssertCalled(t, "FindPage", mock.Anything, alice.ID, &done, mock.Anything)
}

func TestAnalyticsZeroFillsAndTotals(t *testing.T) {
	uc, tasks, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
	tasks.On("CountByStatus", mock.Anything, alice.ID).Return([]domain.StatusCount{
		{Status: domain.StatusTodo, Count: 2},
		{Status: domain.StatusDone, Count: 1},
	}, nil)

	stats, err := uc.Analytics(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"TODO":        2,
		"IN_PROGRESS": 0,
		"DONE":        1,
		"TOTAL_TASKS": 3,
	}, stats)

	// Idempotent without intervening mutations.
	again, err := uc.Analytics(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestUnknownPrincipalFails(t *testing.T) {
	uc, _, users, _ := newFixture(t)

	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := uc.Get(context.Background(), "ghost", "task-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEmptyPrincipalIsUnauthorized(t *testing.T) {
	uc, _, _, _ := newFixture(t)

	_, err := uc.Get(context.Background(), "", "task-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
