package models

import "time"

// BlogStatus defines the lifecycle state of a blog post.
type BlogStatus string

const (
	// BlogStatusDraft marks content visible only to its owner and admins.
	BlogStatusDraft BlogStatus = "draft"
	// BlogStatusPublished marks content live on the public site.
	BlogStatusPublished BlogStatus = "published"
)

// Blog is a blog post. Posts start as drafts owned by their creator and
// become published through moderation approval; there is no way back from
// published to draft.
type Blog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	Author    string     `gorm:"not null" json:"author"`
	Cover     string     `gorm:"not null" json:"cover"`
	Status    BlogStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	OwnerID   *uint      `gorm:"index" json:"owner_id"`
	Owner     *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CanMutateDirect decides whether the principal may mutate or delete the
// blog in place, without going through the moderation queue. Admins always
// may; owners only while their post is still a draft. An owner of a
// published post must submit a proposal instead.
func CanMutateDirect(p Principal, b *Blog) bool {
	if p.IsAdmin() {
		return true
	}
	return b.Status == BlogStatusDraft && b.OwnerID != nil && *b.OwnerID == p.ID
}
