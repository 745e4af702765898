package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/request-tracker/internal/domain"
	apperrors "github.com/spec-kit/request-tracker/pkg/util"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByName(ctx context.Context, name string) ([]domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockRequestRepository is a mock implementation of repository.RequestRepository.
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *domain.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) List(ctx context.Context) ([]domain.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) CountBySubmitter(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RequestStatus]int64), args.Error(1)
}

func newRequestService(requests *MockRequestRepository, users *MockUserRepository) *RequestService {
	return NewRequestService(RequestDependencies{
		RequestRepo: requests,
		UserRepo:    users,
	})
}

func domainErrorCode(t *testing.T, err error) string {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr.Code
}

func TestRequestService_Submit_AppliesDefaults(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	var stored *domain.Request
	requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.Request")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Request)
			stored.ID = 7
		}).Return(nil)

	request, err := svc.Submit(context.Background(), SubmitInput{Submitter: "Jo"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), request.ID)
	assert.Equal(t, domain.RequestTypeService, stored.Type)
	assert.Equal(t, domain.RequestPriorityUnassigned, stored.Priority)
	assert.Equal(t, domain.RequestStatusNew, stored.Status)
	assert.Equal(t, "", stored.Title)
	assert.Equal(t, "", stored.Details)
	assert.Equal(t, "", stored.Phone)
}

func TestRequestService_Submit_StoresOutOfSetValuesVerbatim(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	var stored *domain.Request
	requests.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Request)
		}).Return(nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		Submitter: "Jo",
		Type:      "plumbing",
		Priority:  "extreme",
		Status:    "pending",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RequestType("plumbing"), stored.Type)
	assert.Equal(t, domain.RequestPriority("extreme"), stored.Priority)
	assert.Equal(t, domain.RequestStatus("pending"), stored.Status)
}

func TestRequestService_Submit_RequiresSubmitter(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	_, err := svc.Submit(context.Background(), SubmitInput{Submitter: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrorCode(t, err))
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestService_Submit_IdenticalInputYieldsDistinctIDs(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	var nextID int64
	requests.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			nextID++
			args.Get(1).(*domain.Request).ID = nextID
		}).Return(nil)

	input := SubmitInput{Submitter: "Jo", Title: "Printer broken"}
	first, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestRequestService_Detail_NotFound(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	requests.On("GetByID", mock.Anything, int64(42)).Return(nil, pgx.ErrNoRows)

	_, err := svc.Detail(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, err))
}

func TestRequestService_Detail_BlankSubmitterShortCircuits(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	requests.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Request{ID: 1, Submitter: "  "}, nil)

	detail, err := svc.Detail(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, detail.User)
	assert.Equal(t, int64(0), detail.RequestCount)
	users.AssertNotCalled(t, "ListByName", mock.Anything, mock.Anything)
	requests.AssertNotCalled(t, "CountBySubmitter", mock.Anything, mock.Anything)
}

func TestRequestService_Detail_ResolvesSingleUserAndCount(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	email := "alice@x.com"
	requests.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Request{ID: 5, Submitter: "Alice"}, nil)
	users.On("ListByName", mock.Anything, "Alice").
		Return([]domain.User{{ID: 9, Name: "Alice", Email: &email}}, nil)
	requests.On("CountBySubmitter", mock.Anything, "Alice").Return(int64(3), nil)

	detail, err := svc.Detail(context.Background(), 5)
	require.NoError(t, err)

	require.NotNil(t, detail.User)
	assert.Equal(t, int64(9), detail.User.ID)
	assert.Equal(t, int64(3), detail.RequestCount)
}

func TestRequestService_Detail_AmbiguousNameLeavesUserUnresolved(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	requests.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Request{ID: 5, Submitter: "Alice"}, nil)
	users.On("ListByName", mock.Anything, "Alice").
		Return([]domain.User{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Alice"}}, nil)
	requests.On("CountBySubmitter", mock.Anything, "Alice").Return(int64(2), nil)

	detail, err := svc.Detail(context.Background(), 5)
	require.NoError(t, err)

	assert.Nil(t, detail.User)
	assert.Equal(t, int64(2), detail.RequestCount)
}

func TestRequestService_AppendDetails_InsertsNewRow(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	source := &domain.Request{
		ID:        3,
		Submitter: "Jo",
		Type:      domain.RequestTypeTechnical,
		Priority:  domain.RequestPriorityHigh,
		Status:    domain.RequestStatusOpen,
		Details:   "printer still broken",
		Phone:     "555-0101",
		Title:     "Printer broken",
	}
	requests.On("GetByID", mock.Anything, int64(3)).Return(source, nil)

	var stored *domain.Request
	requests.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Request)
			stored.ID = 4
		}).Return(nil)

	amended, err := svc.AppendDetails(context.Background(), 3, "tried replacing toner")
	require.NoError(t, err)

	assert.Equal(t, int64(4), amended.ID)
	assert.Equal(t, source.Submitter, stored.Submitter)
	assert.Equal(t, source.Type, stored.Type)
	assert.Equal(t, source.Priority, stored.Priority)
	assert.Equal(t, source.Status, stored.Status)
	assert.Equal(t, source.Phone, stored.Phone)
	assert.Equal(t, source.Title, stored.Title)
	assert.True(t, strings.HasPrefix(stored.Details, "printer still broken\n\n["))
	assert.True(t, strings.HasSuffix(stored.Details, "]: tried replacing toner"))
}

func TestRequestService_AppendDetails_SourceNotFound(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	requests.On("GetByID", mock.Anything, int64(99)).Return(nil, pgx.ErrNoRows)

	_, err := svc.AppendDetails(context.Background(), 99, "note")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, err))
}

func TestRequestService_AppendDetails_RequiresNote(t *testing.T) {
	requests := new(MockRequestRepository)
	users := new(MockUserRepository)
	svc := newRequestService(requests, users)

	_, err := svc.AppendDetails(context.Background(), 1, " ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrorCode(t, err))
	requests.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
