package job

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
	domjob "github.com/turtacn/TalentMatch-AI/internal/domain/job"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, p *domjob.Posting) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*domjob.Posting, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domjob.Posting), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRepo) ListByRecruiter(ctx context.Context, id uuid.UUID) ([]domjob.Posting, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domjob.Posting), args.Error(1)
}
func (m *mockRepo) ListOpen(ctx context.Context, f domjob.SearchFilter) ([]domjob.Posting, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domjob.Posting), args.Error(1)
}
func (m *mockRepo) Update(ctx context.Context, p *domjob.Posting) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func recruiter() identity.Identity {
	return identity.Identity{UserID: uuid.New(), Role: identity.RoleRecruiter}
}

func TestCreateAssignsOwner(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil, logging.Nop())
	ident := recruiter()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domjob.Posting) bool {
		return p.RecruiterID == ident.UserID
	})).Return(nil)

	p, err := svc.Create(context.Background(), ident, &domjob.Posting{Title: "Go Engineer"})
	require.NoError(t, err)
	assert.Equal(t, ident.UserID, p.RecruiterID)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&mockRepo{}, nil, logging.Nop())

	_, err := svc.Create(context.Background(), recruiter(), &domjob.Posting{})
	assert.Equal(t, appErrors.ErrCodeValidation, appErrors.GetCode(err))

	_, err = svc.Create(context.Background(), recruiter(),
		&domjob.Posting{Title: "x", SalaryMin: 100, SalaryMax: 50})
	assert.Equal(t, appErrors.ErrCodeValidation, appErrors.GetCode(err))
}

func TestCreateRequiresRecruiter(t *testing.T) {
	svc := NewService(&mockRepo{}, nil, logging.Nop())
	seeker := identity.Identity{UserID: uuid.New(), Role: identity.RoleJobSeeker}
	_, err := svc.Create(context.Background(), seeker, &domjob.Posting{Title: "x"})
	assert.Equal(t, appErrors.ErrCodeForbidden, appErrors.GetCode(err))
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil, logging.Nop())
	owner := recruiter()
	posting := &domjob.Posting{ID: uuid.New(), RecruiterID: owner.UserID, Title: "x"}
	repo.On("GetByID", mock.Anything, posting.ID).Return(posting, nil)

	other := recruiter()
	_, err := svc.Update(context.Background(), other, &domjob.Posting{ID: posting.ID, Title: "y"})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeNotJobOwner))
}

func TestCloseAlreadyClosed(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil, logging.Nop())
	owner := recruiter()
	posting := &domjob.Posting{ID: uuid.New(), RecruiterID: owner.UserID, Status: domjob.StatusClosed}
	repo.On("GetByID", mock.Anything, posting.ID).Return(posting, nil)

	err := svc.Close(context.Background(), owner, posting.ID)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeJobClosed))
}

func TestClose(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil, logging.Nop())
	owner := recruiter()
	posting := &domjob.Posting{ID: uuid.New(), RecruiterID: owner.UserID, Status: domjob.StatusOpen}
	repo.On("GetByID", mock.Anything, posting.ID).Return(posting, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domjob.Posting) bool {
		return p.Status == domjob.StatusClosed
	})).Return(nil)

	require.NoError(t, svc.Close(context.Background(), owner, posting.ID))
	repo.AssertExpectations(t)
}

func TestSearchPassesFilter(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil, logging.Nop())
	filter := domjob.SearchFilter{Keyword: "go", Limit: 10}
	repo.On("ListOpen", mock.Anything, filter).Return([]domjob.Posting{{Title: "Go Engineer"}}, nil)

	out, err := svc.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestGetWithoutCacheHitsRepo(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil, logging.Nop())
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).
		Return(nil, appErrors.New(appErrors.ErrCodeJobNotFound, "gone"))

	_, err := svc.Get(context.Background(), id)
	assert.True(t, appErrors.IsNotFound(err))
}
