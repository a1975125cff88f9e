package repository

import (
	"context"
	"errors"

	"aurum/internal/models"
	"aurum/internal/observability"

	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	List(ctx context.Context, status *models.BlogStatus) ([]models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) error
}

// blogRepository implements BlogRepository
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	defer observability.TrackQuery("create", "blogs")()
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	defer observability.TrackQuery("get", "blogs")()
	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("Owner").First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, status *models.BlogStatus) ([]models.Blog, error) {
	defer observability.TrackQuery("list", "blogs")()
	q := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var blogs []models.Blog
	if err := q.Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	defer observability.TrackQuery("update", "blogs")()
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "blogs")()
	res := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Blog", id)
	}
	return nil
}
