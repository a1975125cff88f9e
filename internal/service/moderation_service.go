// Package service contains the application's business logic.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"aurum/internal/models"
	"aurum/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitInput describes a change entering the moderation queue.
type SubmitInput struct {
	Type        models.BlogRequestType
	BlogID      uint
	Data        *models.BlogPayload
	RequesterID uint
}

// ModerationService owns the blog request queue: submission, admin
// resolution, and listing. It works on the database directly because every
// operation is a small transaction whose atomicity is the whole point.
type ModerationService struct {
	db *gorm.DB
}

// NewModerationService returns a new ModerationService.
func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// Submit records a change request against a blog. There is at most one
// pending request per blog: the insert upserts on the pending key, so a
// second submission before review overwrites the first in place and the
// latest intent wins. The target blog itself is never touched here.
func (s *ModerationService) Submit(ctx context.Context, in SubmitInput) (*models.BlogRequest, error) {
	switch in.Type {
	case models.BlogRequestCreate, models.BlogRequestUpdate:
		if in.Data == nil {
			return nil, models.NewValidationError("request data is required")
		}
	case models.BlogRequestDelete:
		in.Data = nil
	default:
		return nil, models.NewValidationError("type must be one of: create, update, delete")
	}

	var dataJSON any
	if in.Data != nil {
		b, err := json.Marshal(in.Data)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		dataJSON = string(b)
	}

	blogID := in.BlogID
	var out models.BlogRequest
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request := models.BlogRequest{
			Type:          in.Type,
			BlogID:        in.BlogID,
			PendingBlogID: &blogID,
			Data:          in.Data,
			RequesterID:   in.RequesterID,
			Status:        models.BlogRequestStatusPending,
		}
		// The unique index on pending_blog_id makes this find-or-overwrite a
		// single atomic statement; two concurrent submissions cannot produce
		// two pending rows for the same blog.
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "pending_blog_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"type":         in.Type,
				"data":         dataJSON,
				"requester_id": in.RequesterID,
				"updated_at":   time.Now(),
			}),
		}).Create(&request).Error
		if err != nil {
			return err
		}

		// Checked after the upsert, inside the same transaction: if the
		// target blog is gone, the rollback takes the request with it
		// instead of leaving an orphan in the queue.
		var count int64
		if err := tx.Model(&models.Blog{}).Where("id = ?", in.BlogID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return models.NewNotFoundError("Blog", in.BlogID)
		}

		return tx.
			Where("blog_id = ? AND status = ?", in.BlogID, models.BlogRequestStatusPending).
			First(&out).Error
	})
	if txErr != nil {
		var appErr *models.AppError
		if errors.As(txErr, &appErr) {
			return nil, txErr
		}
		return nil, models.NewInternalError(txErr)
	}

	observability.BlogSubmissions.WithLabelValues(string(in.Type)).Inc()
	return &out, nil
}

// Approve resolves a pending request and applies it to the target blog:
// create publishes the draft with the proposed content, update overwrites
// the published content, delete removes the blog. The status flip is a
// conditional update on "still pending", so concurrent resolutions cannot
// both apply and a resolved request can never be applied again.
func (s *ModerationService) Approve(ctx context.Context, requestID uint, admin models.Principal) (*models.BlogRequest, error) {
	if !admin.IsAdmin() {
		return nil, models.NewForbiddenError("Admin access required")
	}

	var request models.BlogRequest
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog request", requestID)
			}
			return err
		}

		if err := resolvePending(tx, &request, models.BlogRequestStatusApproved, ""); err != nil {
			return err
		}

		switch request.Type {
		case models.BlogRequestCreate:
			updates := payloadUpdates(request.Data)
			updates["status"] = models.BlogStatusPublished
			return applyBlogUpdates(tx, request.BlogID, updates)
		case models.BlogRequestUpdate:
			return applyBlogUpdates(tx, request.BlogID, payloadUpdates(request.Data))
		case models.BlogRequestDelete:
			res := tx.Delete(&models.Blog{}, request.BlogID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.NewNotFoundError("Blog", request.BlogID)
			}
			return nil
		default:
			return models.NewValidationError("unknown request type")
		}
	})
	if txErr != nil {
		var appErr *models.AppError
		if errors.As(txErr, &appErr) {
			return nil, txErr
		}
		return nil, models.NewInternalError(txErr)
	}

	observability.ModerationDecisions.WithLabelValues(string(request.Type), "approved").Inc()
	return &request, nil
}

// Reject resolves a pending request without touching the target blog and
// records the admin's notes on the request.
func (s *ModerationService) Reject(ctx context.Context, requestID uint, admin models.Principal, notes string) (*models.BlogRequest, error) {
	if !admin.IsAdmin() {
		return nil, models.NewForbiddenError("Admin access required")
	}

	var request models.BlogRequest
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog request", requestID)
			}
			return err
		}
		return resolvePending(tx, &request, models.BlogRequestStatusRejected, notes)
	})
	if txErr != nil {
		var appErr *models.AppError
		if errors.As(txErr, &appErr) {
			return nil, txErr
		}
		return nil, models.NewInternalError(txErr)
	}

	observability.ModerationDecisions.WithLabelValues(string(request.Type), "rejected").Inc()
	return &request, nil
}

// List returns blog requests visible to the principal, newest first.
// Admins see the whole queue; everyone else sees only their own requests.
// Target blogs are resolved manually because an approved delete leaves the
// request pointing at a blog that no longer exists.
func (s *ModerationService) List(ctx context.Context, principal models.Principal) ([]models.BlogRequest, error) {
	q := s.db.WithContext(ctx).Preload("Requester").Order("created_at DESC")
	if !principal.IsAdmin() {
		q = q.Where("requester_id = ?", principal.ID)
	}

	var requests []models.BlogRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	blogIDs := make([]uint, 0, len(requests))
	for _, r := range requests {
		blogIDs = append(blogIDs, r.BlogID)
	}

	blogsByID := map[uint]*models.Blog{}
	if len(blogIDs) > 0 {
		var blogs []models.Blog
		if err := s.db.WithContext(ctx).Where("id IN ?", blogIDs).Find(&blogs).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		for i := range blogs {
			blogsByID[blogs[i].ID] = &blogs[i]
		}
	}

	for i := range requests {
		requests[i].Blog = blogsByID[requests[i].BlogID]
		if requests[i].Requester != nil {
			requests[i].Requester.Password = ""
		}
	}
	return requests, nil
}

// resolvePending flips the request's status from pending to the given
// terminal state and clears the pending key. The WHERE on status makes the
// transition a compare-and-swap; zero rows affected means another resolution
// got there first (or the request was already resolved).
func resolvePending(tx *gorm.DB, request *models.BlogRequest, status models.BlogRequestStatus, notes string) error {
	updates := map[string]any{
		"status":          status,
		"pending_blog_id": nil,
		"updated_at":      time.Now(),
	}
	if status == models.BlogRequestStatusRejected {
		updates["admin_notes"] = notes
	}

	res := tx.Model(&models.BlogRequest{}).
		Where("id = ? AND status = ?", request.ID, models.BlogRequestStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("Request not found or not pending")
	}

	request.Status = status
	request.PendingBlogID = nil
	if status == models.BlogRequestStatusRejected {
		request.AdminNotes = notes
	}
	return nil
}

// payloadUpdates converts a request payload into a column update map,
// skipping empty fields so a partial proposal leaves the rest of the blog
// untouched.
func payloadUpdates(data *models.BlogPayload) map[string]any {
	updates := map[string]any{}
	if data == nil {
		return updates
	}
	if data.Title != "" {
		updates["title"] = data.Title
	}
	if data.Body != "" {
		updates["body"] = data.Body
	}
	if data.Author != "" {
		updates["author"] = data.Author
	}
	if data.Cover != "" {
		updates["cover"] = data.Cover
	}
	return updates
}

func applyBlogUpdates(tx *gorm.DB, blogID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	res := tx.Model(&models.Blog{}).Where("id = ?", blogID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Blog", blogID)
	}
	return nil
}
