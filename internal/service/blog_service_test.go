package service

import (
	"context"
	"testing"

	"aurum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blogRepoStub is a stub for repository.BlogRepository.
type blogRepoStub struct {
	createFn  func(context.Context, *models.Blog) error
	getByIDFn func(context.Context, uint) (*models.Blog, error)
	listFn    func(context.Context, *models.BlogStatus) ([]models.Blog, error)
	updateFn  func(context.Context, *models.Blog) error
	deleteFn  func(context.Context, uint) error
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogRepoStub) List(ctx context.Context, status *models.BlogStatus) ([]models.Blog, error) {
	return s.listFn(ctx, status)
}
func (s *blogRepoStub) Update(ctx context.Context, blog *models.Blog) error {
	return s.updateFn(ctx, blog)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn:  func(_ context.Context, _ *models.Blog) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Blog, error) { return &models.Blog{}, nil },
		listFn:    func(_ context.Context, _ *models.BlogStatus) ([]models.Blog, error) { return nil, nil },
		updateFn:  func(_ context.Context, _ *models.Blog) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// submitterStub records queue submissions.
type submitterStub struct {
	submitted []SubmitInput
	err       error
}

func (s *submitterStub) Submit(_ context.Context, in SubmitInput) (*models.BlogRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.submitted = append(s.submitted, in)
	return &models.BlogRequest{
		ID:          uint(len(s.submitted)),
		Type:        in.Type,
		BlogID:      in.BlogID,
		Data:        in.Data,
		RequesterID: in.RequesterID,
		Status:      models.BlogRequestStatusPending,
	}, nil
}

func user(id uint) models.Principal {
	return models.Principal{ID: id, Username: "author", Role: models.RoleUser}
}

func admin(id uint) models.Principal {
	return models.Principal{ID: id, Username: "admin", Role: models.RoleAdmin}
}

func ownedBlog(id, ownerID uint, status models.BlogStatus) *models.Blog {
	return &models.Blog{
		ID:      id,
		Title:   "Silver market notes",
		Body:    "Body",
		Author:  "Jane Doe",
		Cover:   "https://example.com/c.jpg",
		Status:  status,
		OwnerID: &ownerID,
	}
}

func TestCreateBlogValidation(t *testing.T) {
	svc := NewBlogService(noopBlogRepo(), &submitterStub{})

	_, err := svc.Create(context.Background(), CreateBlogInput{Title: "only title"}, user(1))
	require.Error(t, err)
	assert.ErrorContains(t, err, "Missing required fields")
}

func TestCreateBlogStoresOwnedDraft(t *testing.T) {
	var created *models.Blog
	repo := noopBlogRepo()
	repo.createFn = func(_ context.Context, b *models.Blog) error {
		b.ID = 7
		created = b
		return nil
	}
	svc := NewBlogService(repo, &submitterStub{})

	blog, err := svc.Create(context.Background(), CreateBlogInput{
		Title: "T", Body: "B", Author: "A", Cover: "C",
	}, user(3))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.BlogStatusDraft, blog.Status)
	require.NotNil(t, blog.OwnerID)
	assert.EqualValues(t, 3, *blog.OwnerID)
}

func TestUpdateOwnDraftIsDirect(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusDraft), nil
	}
	var saved *models.Blog
	repo.updateFn = func(_ context.Context, b *models.Blog) error {
		saved = b
		return nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	blog, request, err := svc.Update(context.Background(), 5, UpdateBlogInput{Body: "New body"}, user(3))
	require.NoError(t, err)
	assert.Nil(t, request)
	require.NotNil(t, saved)
	assert.Equal(t, "New body", blog.Body)
	// Empty fields are left alone.
	assert.Equal(t, "Silver market notes", blog.Title)
	assert.Empty(t, sub.submitted)
}

func TestUpdateOwnPublishedRequiresProposal(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusPublished), nil
	}
	repo.updateFn = func(_ context.Context, _ *models.Blog) error {
		t.Fatal("published content must not be written directly")
		return nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	// Even the owner cannot write a published post directly.
	_, _, err := svc.Update(context.Background(), 5, UpdateBlogInput{Title: "New"}, user(3))
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))
	assert.ErrorContains(t, err, "requires a proposal")
	assert.Empty(t, sub.submitted)
}

func TestUpdateOwnPublishedWithFlagBecomesRequest(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusPublished), nil
	}
	repo.updateFn = func(_ context.Context, _ *models.Blog) error {
		t.Fatal("published content must not be written directly")
		return nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	blog, request, err := svc.Update(context.Background(), 5,
		UpdateBlogInput{Title: "New", SubmitForApproval: true}, user(3))
	require.NoError(t, err)
	assert.Nil(t, blog)
	require.NotNil(t, request)
	assert.Equal(t, models.BlogRequestUpdate, request.Type)
	require.Len(t, sub.submitted, 1)
	assert.Equal(t, "New", sub.submitted[0].Data.Title)
	assert.EqualValues(t, 3, sub.submitted[0].RequesterID)
}

func TestUpdateSomeoneElsesBlogForbidden(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 99, models.BlogStatusDraft), nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	// The flag does not open a proposal path for non-owners.
	_, _, err := svc.Update(context.Background(), 5,
		UpdateBlogInput{Title: "New", SubmitForApproval: true}, user(3))
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))
	assert.Empty(t, sub.submitted)
}

func TestDraftEditWithFlagAppliesAndQueues(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusDraft), nil
	}
	var saved *models.Blog
	repo.updateFn = func(_ context.Context, b *models.Blog) error {
		saved = b
		return nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	blog, request, err := svc.Update(context.Background(), 5,
		UpdateBlogInput{Body: "Final body", SubmitForApproval: true}, user(3))
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Final body", blog.Body)
	require.NotNil(t, request)
	assert.Equal(t, models.BlogRequestCreate, request.Type)
	// The queued payload carries the edited content, not the stale draft.
	require.Len(t, sub.submitted, 1)
	assert.Equal(t, "Final body", sub.submitted[0].Data.Body)
}

func TestAdminUpdatesPublishedDirectly(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusPublished), nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	blog, request, err := svc.Update(context.Background(), 5, UpdateBlogInput{Title: "Edited"}, admin(1))
	require.NoError(t, err)
	assert.Nil(t, request)
	require.NotNil(t, blog)
	assert.Equal(t, "Edited", blog.Title)
	assert.Empty(t, sub.submitted)
}

func TestPublishFlagIsAdminOnly(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusDraft), nil
	}
	svc := NewBlogService(repo, &submitterStub{})

	_, _, err := svc.Update(context.Background(), 5, UpdateBlogInput{Publish: true}, user(3))
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))

	blog, _, err := svc.Update(context.Background(), 5, UpdateBlogInput{Publish: true}, admin(1))
	require.NoError(t, err)
	assert.Equal(t, models.BlogStatusPublished, blog.Status)
}

func TestDeleteOwnDraftIsDirect(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusDraft), nil
	}
	deleted := false
	repo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	require.NoError(t, svc.Delete(context.Background(), 5, user(3)))
	assert.True(t, deleted)
	assert.Empty(t, sub.submitted)
}

func TestDeletePublishedForbidden(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusPublished), nil
	}
	repo.deleteFn = func(_ context.Context, _ uint) error {
		t.Fatal("published content must not be deleted directly")
		return nil
	}
	svc := NewBlogService(repo, &submitterStub{})

	err := svc.Delete(context.Background(), 5, user(3))
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))
	assert.ErrorContains(t, err, "delete proposal")
}

func TestProposeDelete(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusPublished), nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	request, err := svc.ProposeDelete(context.Background(), 5, user(3))
	require.NoError(t, err)
	require.NotNil(t, request)
	assert.Equal(t, models.BlogRequestDelete, request.Type)
	assert.Nil(t, request.Data)
}

func TestProposeDeleteRejectsNonOwner(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 99, models.BlogStatusPublished), nil
	}
	svc := NewBlogService(repo, &submitterStub{})

	_, err := svc.ProposeDelete(context.Background(), 5, user(3))
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))
}

func TestSubmitForApproval(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusDraft), nil
	}
	sub := &submitterStub{}
	svc := NewBlogService(repo, sub)

	request, err := svc.SubmitForApproval(context.Background(), 5, user(3))
	require.NoError(t, err)
	assert.Equal(t, models.BlogRequestCreate, request.Type)
	require.NotNil(t, request.Data)
	// The queued payload carries the draft's current content.
	assert.Equal(t, "Silver market notes", request.Data.Title)
}

func TestSubmitForApprovalRejectsOthersDrafts(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 99, models.BlogStatusDraft), nil
	}
	svc := NewBlogService(repo, &submitterStub{})

	_, err := svc.SubmitForApproval(context.Background(), 5, user(3))
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))
}

func TestSubmitForApprovalRejectsPublished(t *testing.T) {
	repo := noopBlogRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Blog, error) {
		return ownedBlog(id, 3, models.BlogStatusPublished), nil
	}
	svc := NewBlogService(repo, &submitterStub{})

	_, err := svc.SubmitForApproval(context.Background(), 5, user(3))
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusForError(err))
}
