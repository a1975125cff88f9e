package service

import (
	"context"

	"aurum/internal/models"
	"aurum/internal/repository"
)

// proposalSubmitter is the slice of the moderation queue the blog service
// needs: routing a disallowed direct mutation into a pending request.
type proposalSubmitter interface {
	Submit(ctx context.Context, in SubmitInput) (*models.BlogRequest, error)
}

// CreateBlogInput holds the fields for a new blog draft.
type CreateBlogInput struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author"`
	Cover  string `json:"cover"`
}

// UpdateBlogInput holds a partial blog edit. Empty fields are left alone.
// Publish is honored for admins only. SubmitForApproval routes the edit into
// the moderation queue: on a draft it applies the edit and also queues a
// publish request; on a published blog it queues an update request instead
// of writing.
type UpdateBlogInput struct {
	Title             string `json:"title"`
	Body              string `json:"body"`
	Author            string `json:"author"`
	Cover             string `json:"cover"`
	Publish           bool   `json:"publish"`
	SubmitForApproval bool   `json:"submit_for_approval"`
}

// BlogService implements the blog lifecycle: drafts are owned and freely
// editable by their author, published content only changes through the
// moderation queue, and admins can do anything directly.
type BlogService struct {
	blogs     repository.BlogRepository
	proposals proposalSubmitter
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogs repository.BlogRepository, proposals proposalSubmitter) *BlogService {
	return &BlogService{blogs: blogs, proposals: proposals}
}

// Create stores a new draft owned by the caller. Content never goes live
// here; publishing happens through approval or by an admin update.
func (s *BlogService) Create(ctx context.Context, in CreateBlogInput, principal models.Principal) (*models.Blog, error) {
	if in.Title == "" || in.Body == "" || in.Author == "" || in.Cover == "" {
		return nil, models.NewValidationError("Missing required fields")
	}

	ownerID := principal.ID
	blog := &models.Blog{
		Title:   in.Title,
		Body:    in.Body,
		Author:  in.Author,
		Cover:   in.Cover,
		Status:  models.BlogStatusDraft,
		OwnerID: &ownerID,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Get returns a single blog by ID.
func (s *BlogService) Get(ctx context.Context, id uint) (*models.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}

// List returns blogs, optionally filtered by status.
func (s *BlogService) List(ctx context.Context, status *models.BlogStatus) ([]models.Blog, error) {
	return s.blogs.List(ctx, status)
}

// ListPublished returns only live content, for the public site.
func (s *BlogService) ListPublished(ctx context.Context) ([]models.Blog, error) {
	status := models.BlogStatusPublished
	return s.blogs.List(ctx, &status)
}

// Update applies an edit. Admins and owners of still-draft blogs write
// directly. An owner editing their published blog must set SubmitForApproval,
// which queues an update request instead; without it the edit is forbidden
// and the blog is untouched. Non-owners are always forbidden.
func (s *BlogService) Update(ctx context.Context, id uint, in UpdateBlogInput, principal models.Principal) (*models.Blog, *models.BlogRequest, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if models.CanMutateDirect(principal, blog) {
		if in.Title != "" {
			blog.Title = in.Title
		}
		if in.Body != "" {
			blog.Body = in.Body
		}
		if in.Author != "" {
			blog.Author = in.Author
		}
		if in.Cover != "" {
			blog.Cover = in.Cover
		}
		if in.Publish {
			if !principal.IsAdmin() {
				return nil, nil, models.NewForbiddenError("Only admins can publish directly")
			}
			blog.Status = models.BlogStatusPublished
		}

		if err := s.blogs.Update(ctx, blog); err != nil {
			return nil, nil, err
		}

		// An owner editing a draft can ask for publication in the same
		// call: the edit lands on the draft and a publish request carrying
		// the result is queued (or refreshed) for review.
		var request *models.BlogRequest
		if in.SubmitForApproval && !principal.IsAdmin() && blog.Status == models.BlogStatusDraft {
			request, err = s.proposals.Submit(ctx, SubmitInput{
				Type:        models.BlogRequestCreate,
				BlogID:      id,
				Data:        payloadFromBlog(blog),
				RequesterID: principal.ID,
			})
			if err != nil {
				return nil, nil, err
			}
		}
		return blog, request, nil
	}

	if !ownedBy(blog, principal) {
		return nil, nil, models.NewForbiddenError("You can only modify your own blogs")
	}
	if !in.SubmitForApproval {
		return nil, nil, models.NewForbiddenError("Published content requires a proposal")
	}

	request, err := s.proposals.Submit(ctx, SubmitInput{
		Type:        models.BlogRequestUpdate,
		BlogID:      id,
		Data:        payloadFromUpdate(in),
		RequesterID: principal.ID,
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, request, nil
}

// Delete removes a blog directly. Admins delete anything; owners only their
// still-draft blogs. Removing published content goes through ProposeDelete.
func (s *BlogService) Delete(ctx context.Context, id uint, principal models.Principal) error {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !models.CanMutateDirect(principal, blog) {
		if !ownedBy(blog, principal) {
			return models.NewForbiddenError("You can only delete your own blogs")
		}
		return models.NewForbiddenError("Published content requires a delete proposal")
	}

	return s.blogs.Delete(ctx, id)
}

// ProposeDelete queues a delete request for review. Owners only.
func (s *BlogService) ProposeDelete(ctx context.Context, id uint, principal models.Principal) (*models.BlogRequest, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && !ownedBy(blog, principal) {
		return nil, models.NewForbiddenError("You can only propose deleting your own blogs")
	}

	return s.proposals.Submit(ctx, SubmitInput{
		Type:        models.BlogRequestDelete,
		BlogID:      id,
		RequesterID: principal.ID,
	})
}

// SubmitForApproval queues a draft for publication: a create-type request
// carrying the draft's current content. Only the owner or an admin may
// submit a draft, and submitting a published blog is rejected.
func (s *BlogService) SubmitForApproval(ctx context.Context, id uint, principal models.Principal) (*models.BlogRequest, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.Status == models.BlogStatusPublished {
		return nil, models.NewConflictError("Blog is already published")
	}
	if !principal.IsAdmin() && !ownedBy(blog, principal) {
		return nil, models.NewForbiddenError("You can only submit your own drafts")
	}

	return s.proposals.Submit(ctx, SubmitInput{
		Type:        models.BlogRequestCreate,
		BlogID:      id,
		Data:        payloadFromBlog(blog),
		RequesterID: principal.ID,
	})
}

func ownedBy(blog *models.Blog, principal models.Principal) bool {
	return blog.OwnerID != nil && *blog.OwnerID == principal.ID
}

func payloadFromUpdate(in UpdateBlogInput) *models.BlogPayload {
	return &models.BlogPayload{
		Title:  in.Title,
		Body:   in.Body,
		Author: in.Author,
		Cover:  in.Cover,
	}
}

func payloadFromBlog(blog *models.Blog) *models.BlogPayload {
	return &models.BlogPayload{
		Title:  blog.Title,
		Body:   blog.Body,
		Author: blog.Author,
		Cover:  blog.Cover,
	}
}
