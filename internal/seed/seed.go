// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"aurum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAuthors  int
	NumBlogs    int
	ShouldClean bool
}

// Seed populates the database with test data: an admin account, author
// accounts, a mix of draft and published blogs, and the marketing counters.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	log.Printf("Seeding database with %d authors and %d blogs...", opts.NumAuthors, opts.NumBlogs)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	admin, err := createAdmin(db)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	log.Printf("Admin account ready: %s", admin.Email)

	authors, err := createAuthors(db, opts.NumAuthors)
	if err != nil {
		return fmt.Errorf("failed to create authors: %w", err)
	}
	log.Printf("%d author accounts created", len(authors))

	blogs, err := createBlogs(db, authors, opts.NumBlogs)
	if err != nil {
		return fmt.Errorf("failed to create blogs: %w", err)
	}
	log.Printf("%d blogs created", len(blogs))

	if err := createStatistics(db); err != nil {
		return fmt.Errorf("failed to create statistics: %w", err)
	}
	log.Println("Marketing statistics created")

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE blog_requests, blogs, subscribers, contact_messages, statistics, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createAdmin(db *gorm.DB) (*models.User, error) {
	var existing models.User
	if err := db.Where("email = ?", "admin@aurum.dev").First(&existing).Error; err == nil {
		return &existing, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@aurum.dev",
		Password: string(hashed),
		Role:     models.RoleAdmin,
		Title:    "Senior Market Analyst",
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func createAuthors(db *gorm.DB, count int) ([]models.User, error) {
	if count <= 0 {
		return nil, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hashed),
			Role:     models.RoleUser,
			SocialLinks: models.SocialLinks{
				Twitter: fmt.Sprintf("https://twitter.com/%s", username),
				Website: gofakeit.URL(),
			},
		}
		users = append(users, user)
	}

	if err := db.CreateInBatches(&users, 50).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createBlogs(db *gorm.DB, authors []models.User, count int) ([]models.Blog, error) {
	if count <= 0 || len(authors) == 0 {
		return nil, nil
	}

	//nolint:gosec // weak randomness is fine for seed data
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	blogs := make([]models.Blog, 0, count)
	for i := 0; i < count; i++ {
		owner := authors[r.Intn(len(authors))]
		status := models.BlogStatusPublished
		if r.Intn(3) == 0 {
			status = models.BlogStatusDraft
		}

		blog := models.Blog{
			Title:   gofakeit.Sentence(6),
			Body:    gofakeit.Paragraph(3, 5, 12, "\n\n"),
			Author:  gofakeit.Name(),
			Cover:   fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
			Status:  status,
			OwnerID: &owner.ID,
		}
		daysBack := r.Intn(120)
		blog.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)
		blogs = append(blogs, blog)
	}

	if err := db.CreateInBatches(&blogs, 50).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func createStatistics(db *gorm.DB) error {
	stats := []models.Statistic{
		{Name: "clients_served", Value: int64(1200 + gofakeit.Number(0, 800))},
		{Name: "ounces_traded", Value: int64(50000 + gofakeit.Number(0, 25000))},
		{Name: "years_experience", Value: 15},
		{Name: "partner_dealers", Value: int64(30 + gofakeit.Number(0, 20))},
	}
	for _, s := range stats {
		s := s
		if err := db.Where("name = ?", s.Name).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
