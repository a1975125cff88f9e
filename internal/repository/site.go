package repository

import (
	"context"
	"errors"
	"time"

	"aurum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriberRepository stores newsletter signups.
type SubscriberRepository interface {
	Create(ctx context.Context, sub *models.Subscriber) error
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	List(ctx context.Context) ([]models.Subscriber, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, sub *models.Subscriber) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Email is already subscribed")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &sub, nil
}

func (r *subscriberRepository) List(ctx context.Context) ([]models.Subscriber, error) {
	var subs []models.Subscriber
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subs, nil
}

// ContactMessageRepository stores contact form submissions.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type contactMessageRepository struct {
	db *gorm.DB
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *gorm.DB) ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

func (r *contactMessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *contactMessageRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

// StatisticRepository stores the marketing page counters.
type StatisticRepository interface {
	Set(ctx context.Context, name string, value int64) error
	All(ctx context.Context) (map[string]int64, error)
}

type statisticRepository struct {
	db *gorm.DB
}

// NewStatisticRepository creates a new statistic repository
func NewStatisticRepository(db *gorm.DB) StatisticRepository {
	return &statisticRepository{db: db}
}

func (r *statisticRepository) Set(ctx context.Context, name string, value int64) error {
	stat := models.Statistic{Name: name, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&stat).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *statisticRepository) All(ctx context.Context) (map[string]int64, error) {
	var stats []models.Statistic
	if err := r.db.WithContext(ctx).Find(&stats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	out := make(map[string]int64, len(stats))
	for _, s := range stats {
		out[s.Name] = s.Value
	}
	return out, nil
}
