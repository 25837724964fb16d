package recommendation

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
	"github.com/turtacn/TalentMatch-AI/internal/domain/job"
	domrec "github.com/turtacn/TalentMatch-AI/internal/domain/recommendation"
	"github.com/turtacn/TalentMatch-AI/internal/domain/resume"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/TalentMatch-AI/internal/intelligence/oracle"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

type mockOracle struct{ mock.Mock }

func (m *mockOracle) RecommendJobs(ctx context.Context, req oracle.RecommendJobsRequest) (oracle.RawResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(oracle.RawResult), args.Error(1)
}
func (m *mockOracle) SkillGap(ctx context.Context, req oracle.SkillGapRequest) (oracle.RawResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(oracle.RawResult), args.Error(1)
}
func (m *mockOracle) CareerPath(ctx context.Context, req oracle.CareerPathRequest) (oracle.RawResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(oracle.RawResult), args.Error(1)
}

// memRecRepo is an in-memory recommendation store that mirrors the real
// repository's ordering contract.
type memRecRepo struct {
	mu   sync.Mutex
	rows []domrec.Recommendation
}

func (r *memRecRepo) SaveBatch(_ context.Context, recs []domrec.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, recs...)
	return nil
}

func (r *memRecRepo) ListByJobSeeker(_ context.Context, id uuid.UUID) ([]domrec.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domrec.Recommendation{}
	for _, row := range r.rows {
		if row.JobSeekerID == id {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out, nil
}

func (r *memRecRepo) DeleteByJobSeeker(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.JobSeekerID != id {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type mockResumeRepo struct{ mock.Mock }

func (m *mockResumeRepo) Create(ctx context.Context, r *resume.Resume) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockResumeRepo) GetByID(ctx context.Context, id uuid.UUID) (*resume.Resume, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*resume.Resume), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockResumeRepo) ListByJobSeeker(ctx context.Context, id uuid.UUID) ([]resume.Resume, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]resume.Resume), args.Error(1)
}
func (m *mockResumeRepo) GetPrimaryByJobSeeker(ctx context.Context, id uuid.UUID) (*resume.Resume, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*resume.Resume), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockResumeRepo) SetPrimary(ctx context.Context, seekerID, id uuid.UUID) error {
	return m.Called(ctx, seekerID, id).Error(0)
}
func (m *mockResumeRepo) UpdateParsedContent(ctx context.Context, id uuid.UUID, content string) error {
	return m.Called(ctx, id, content).Error(0)
}
func (m *mockResumeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockJobRepo struct{ mock.Mock }

func (m *mockJobRepo) Create(ctx context.Context, p *job.Posting) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*job.Posting, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*job.Posting), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockJobRepo) ListByRecruiter(ctx context.Context, id uuid.UUID) ([]job.Posting, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]job.Posting), args.Error(1)
}
func (m *mockJobRepo) ListOpen(ctx context.Context, f job.SearchFilter) ([]job.Posting, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]job.Posting), args.Error(1)
}
func (m *mockJobRepo) Update(ctx context.Context, p *job.Posting) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockJobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// passLocker runs fn directly; lock behaviour is covered in the redis package.
type passLocker struct{}

func (passLocker) WithJobSeekerLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	oracle  *mockOracle
	recs    *memRecRepo
	resumes *mockResumeRepo
	jobs    *mockJobRepo
	svc     *Service

	seekerID uuid.UUID
	jobA     job.Posting
	jobB     job.Posting
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		oracle:   &mockOracle{},
		recs:     &memRecRepo{},
		resumes:  &mockResumeRepo{},
		jobs:     &mockJobRepo{},
		seekerID: uuid.New(),
	}
	f.jobA = job.Posting{ID: uuid.New(), Title: "Backend Engineer", Company: "Acme", Status: job.StatusOpen}
	f.jobB = job.Posting{ID: uuid.New(), Title: "Platform Engineer", Company: "Globex", Status: job.StatusOpen}
	f.svc = NewService(f.oracle, f.recs, f.resumes, f.jobs, passLocker{},
		kafka.NopProducer(), nil, logging.Nop())
	return f
}

func (f *fixture) self() identity.Identity {
	return identity.Identity{UserID: f.seekerID, Role: identity.RoleJobSeeker}
}

func (f *fixture) expectPrimaryResume() {
	f.resumes.On("GetPrimaryByJobSeeker", mock.Anything, f.seekerID).Return(&resume.Resume{
		ID: uuid.New(), JobSeekerID: f.seekerID, IsPrimary: true,
		ParsedContent: `{"skills":["Go"]}`,
	}, nil)
}

func (f *fixture) expectOpenJobs() {
	f.jobs.On("ListOpen", mock.Anything, mock.Anything).
		Return([]job.Posting{f.jobA, f.jobB}, nil)
}

func rawJSON(body string) oracle.RawResult { return oracle.RawResult{Body: []byte(body)} }

func jobRef(id uuid.UUID) *uuid.UUID { return &id }

func TestRecommendPersistsEntriesWithoutPostingIDs(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.expectOpenJobs()

	// Entries carry no posting reference of their own.
	f.oracle.On("RecommendJobs", mock.Anything, mock.Anything).Return(rawJSON(`{"jobs":[
		{"title":"Backend Engineer","company":"Acme","reason":"skills overlap","score":64.0},
		{"title":"Platform Engineer","company":"Globex","score":88.0}
	]}`), nil)

	recs, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Nil(t, recs[0].JobID)
	assert.Equal(t, 88.0, recs[0].MatchScore)
	assert.Equal(t, "Platform Engineer", recs[0].JobTitle)
	assert.Equal(t, "Globex", recs[0].Company)
	assert.Equal(t, "skills overlap", recs[1].Reason)
	// Each row keeps its entry's verbatim JSON.
	assert.Contains(t, recs[1].RawData, `"reason":"skills overlap"`)
}

func TestRecommendResolvesTopLevelPostingReference(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.expectOpenJobs()

	f.oracle.On("RecommendJobs", mock.Anything, mock.Anything).Return(rawJSON(`{
		"jobs":[{"reason":"strong match","score":91.0}],
		"job_posting_id":"`+f.jobA.ID.String()+`"
	}`), nil)

	recs, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].JobID)
	assert.Equal(t, f.jobA.ID, *recs[0].JobID)
	// Title and company backfilled from the referenced posting.
	assert.Equal(t, "Backend Engineer", recs[0].JobTitle)
	assert.Equal(t, "Acme", recs[0].Company)
}

func TestRecommendOracleFailureServesHistory(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.expectOpenJobs()

	// Two rows already persisted from an earlier pass.
	require.NoError(t, f.recs.SaveBatch(context.Background(), []domrec.Recommendation{
		{ID: uuid.New(), JobSeekerID: f.seekerID, JobID: jobRef(f.jobA.ID), MatchScore: 70},
		{ID: uuid.New(), JobSeekerID: f.seekerID, JobID: jobRef(f.jobB.ID), MatchScore: 85},
	}))

	f.oracle.On("RecommendJobs", mock.Anything, mock.Anything).
		Return(oracle.RawResult{}, appErrors.New(appErrors.ErrCodeOracleUnavailable, "down"))

	recs, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 85.0, recs[0].MatchScore)
}

func TestRecommendWithoutPrimaryResumeServesHistory(t *testing.T) {
	f := newFixture(t)
	f.resumes.On("GetPrimaryByJobSeeker", mock.Anything, f.seekerID).
		Return(nil, appErrors.New(appErrors.ErrCodeNoPrimaryResume, "none"))

	require.NoError(t, f.recs.SaveBatch(context.Background(), []domrec.Recommendation{
		{ID: uuid.New(), JobSeekerID: f.seekerID, JobID: jobRef(f.jobA.ID), MatchScore: 50},
	}))

	recs, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	f.oracle.AssertNotCalled(t, "RecommendJobs", mock.Anything, mock.Anything)
}

func TestRecommendAppendsWithoutDeduplication(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.expectOpenJobs()

	body := rawJSON(`{"jobs":[{"title":"Backend Engineer","company":"Acme","score":60.0}]}`)
	f.oracle.On("RecommendJobs", mock.Anything, mock.Anything).Return(body, nil)

	_, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	recs, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	// The same suggestion from two passes yields two rows.
	assert.Len(t, recs, 2)
}

func TestRecommendSkipsMalformedEntries(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.expectOpenJobs()

	f.oracle.On("RecommendJobs", mock.Anything, mock.Anything).Return(rawJSON(`{"jobs":[
		{},
		{"unexpectedField":true},
		{"title":"Backend Engineer","score":42.0}
	]}`), nil)

	recs, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Backend Engineer", recs[0].JobTitle)
	assert.Equal(t, 42.0, recs[0].MatchScore)
}

func TestRecommendUnknownPostingReferenceStillPersists(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.expectOpenJobs()
	phantom := uuid.New()
	f.jobs.On("GetByID", mock.Anything, phantom).
		Return(nil, appErrors.New(appErrors.ErrCodeJobNotFound, "gone"))

	f.oracle.On("RecommendJobs", mock.Anything, mock.Anything).Return(rawJSON(`{
		"jobs":[{"title":"Data Engineer","score":55.0}],
		"job_posting_id":"`+phantom.String()+`"
	}`), nil)

	recs, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Data Engineer", recs[0].JobTitle)
}

func TestRecommendNoOpenJobs(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.jobs.On("ListOpen", mock.Anything, mock.Anything).Return([]job.Posting{}, nil)

	recs, err := f.svc.Recommend(context.Background(), f.self(), f.seekerID, Options{})
	require.NoError(t, err)
	assert.Empty(t, recs)
	f.oracle.AssertNotCalled(t, "RecommendJobs", mock.Anything, mock.Anything)
}

func TestRecommendForbiddenForOtherSeeker(t *testing.T) {
	f := newFixture(t)
	other := identity.Identity{UserID: uuid.New(), Role: identity.RoleJobSeeker}
	_, err := f.svc.Recommend(context.Background(), other, f.seekerID, Options{})
	assert.Equal(t, appErrors.ErrCodeForbidden, appErrors.GetCode(err))
}

func TestHistoryDoesNotCallOracle(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.recs.SaveBatch(context.Background(), []domrec.Recommendation{
		{ID: uuid.New(), JobSeekerID: f.seekerID, JobID: &f.jobA.ID, MatchScore: 10},
	}))
	recs, err := f.svc.History(context.Background(), f.self(), f.seekerID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	f.oracle.AssertNotCalled(t, "RecommendJobs", mock.Anything, mock.Anything)
}

func TestClearHistory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.recs.SaveBatch(context.Background(), []domrec.Recommendation{
		{ID: uuid.New(), JobSeekerID: f.seekerID, JobID: &f.jobA.ID},
	}))
	require.NoError(t, f.svc.ClearHistory(context.Background(), f.self(), f.seekerID))
	recs, err := f.svc.History(context.Background(), f.self(), f.seekerID)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSkillGapDefaultsForAbsentFields(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.jobs.On("GetByID", mock.Anything, f.jobA.ID).Return(&f.jobA, nil)
	f.oracle.On("SkillGap", mock.Anything, mock.Anything).Return(rawJSON(`{}`), nil)

	gap, err := f.svc.SkillGap(context.Background(), f.self(), f.seekerID, f.jobA.ID)
	require.NoError(t, err)
	assert.Equal(t, f.jobA.ID, gap.JobID)
	assert.NotNil(t, gap.MissingSkills)
	assert.Empty(t, gap.MissingSkills)
	assert.NotNil(t, gap.MatchingSkills)
	assert.NotNil(t, gap.LearningResources)
	assert.Equal(t, 0.0, gap.OverallMatch)
}

func TestSkillGapPopulatedResponse(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.jobs.On("GetByID", mock.Anything, f.jobA.ID).Return(&f.jobA, nil)
	f.oracle.On("SkillGap", mock.Anything, mock.MatchedBy(func(req oracle.SkillGapRequest) bool {
		return req.JobID == f.jobA.ID.String()
	})).Return(rawJSON(`{
		"missingSkills":["Terraform"],
		"matchingSkills":["Kubernetes"],
		"learningResources":[{"skill":"Terraform","title":"Terraform Up and Running","url":"https://example.com/tf"}],
		"overallMatch":72.5
	}`), nil)

	gap, err := f.svc.SkillGap(context.Background(), f.self(), f.seekerID, f.jobA.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Terraform"}, gap.MissingSkills)
	assert.Equal(t, []string{"Kubernetes"}, gap.MatchingSkills)
	require.Len(t, gap.LearningResources, 1)
	assert.Equal(t, "Terraform Up and Running", gap.LearningResources[0]["title"])
	assert.Equal(t, 72.5, gap.OverallMatch)
}

func TestSkillGapEmptyOracleResultYieldsDefaults(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.jobs.On("GetByID", mock.Anything, f.jobA.ID).Return(&f.jobA, nil)
	f.oracle.On("SkillGap", mock.Anything, mock.Anything).Return(oracle.RawResult{Empty: true}, nil)

	gap, err := f.svc.SkillGap(context.Background(), f.self(), f.seekerID, f.jobA.ID)
	require.NoError(t, err)
	assert.Equal(t, f.jobA.ID, gap.JobID)
	assert.Empty(t, gap.MissingSkills)
}

func TestSkillGapUnknownJobIsNotFound(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()
	f.jobs.On("GetByID", mock.Anything, missing).
		Return(nil, appErrors.New(appErrors.ErrCodeJobNotFound, "no such posting"))

	_, err := f.svc.SkillGap(context.Background(), f.self(), f.seekerID, missing)
	assert.True(t, appErrors.IsNotFound(err))
	f.oracle.AssertNotCalled(t, "SkillGap", mock.Anything, mock.Anything)
}

func TestSkillGapWithoutPrimaryResumeIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.jobs.On("GetByID", mock.Anything, f.jobA.ID).Return(&f.jobA, nil)
	f.resumes.On("GetPrimaryByJobSeeker", mock.Anything, f.seekerID).
		Return(nil, appErrors.New(appErrors.ErrCodeNoPrimaryResume, "none"))

	_, err := f.svc.SkillGap(context.Background(), f.self(), f.seekerID, f.jobA.ID)
	assert.True(t, appErrors.IsNotFound(err))
	f.oracle.AssertNotCalled(t, "SkillGap", mock.Anything, mock.Anything)
}

func TestSkillGapUnparsedPrimaryIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.jobs.On("GetByID", mock.Anything, f.jobA.ID).Return(&f.jobA, nil)
	f.resumes.On("GetPrimaryByJobSeeker", mock.Anything, f.seekerID).Return(&resume.Resume{
		ID: uuid.New(), JobSeekerID: f.seekerID, IsPrimary: true,
	}, nil)

	_, err := f.svc.SkillGap(context.Background(), f.self(), f.seekerID, f.jobA.ID)
	assert.True(t, appErrors.IsNotFound(err))
	f.oracle.AssertNotCalled(t, "SkillGap", mock.Anything, mock.Anything)
}

func TestCareerPathSkipsEntriesWithoutTitle(t *testing.T) {
	f := newFixture(t)
	f.expectPrimaryResume()
	f.oracle.On("CareerPath", mock.Anything, mock.Anything).Return(rawJSON(`{"careerPaths":[
		{"description":"no title here"},
		{"title":"Tech Lead","description":"lead a small team","growthPotential":"high",
		 "timeToAchieve":"2 years","requiredSkills":["mentoring"]}
	]}`), nil)

	paths, err := f.svc.CareerPath(context.Background(), f.self(), f.seekerID)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "Tech Lead", paths[0].Title)
	assert.Equal(t, "high", paths[0].GrowthPotential)
	assert.Equal(t, "2 years", paths[0].TimeToAchieve)
	assert.Equal(t, []string{"mentoring"}, paths[0].RequiredSkills)
}
