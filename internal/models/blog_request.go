package models

import "time"

// BlogRequestType discriminates what a moderation request asks for.
type BlogRequestType string

const (
	// BlogRequestCreate asks to publish a draft.
	BlogRequestCreate BlogRequestType = "create"
	// BlogRequestUpdate asks to change an already published post.
	BlogRequestUpdate BlogRequestType = "update"
	// BlogRequestDelete asks to remove a published post.
	BlogRequestDelete BlogRequestType = "delete"
)

// BlogRequestStatus defines lifecycle states for moderation requests.
type BlogRequestStatus string

const (
	// BlogRequestStatusPending indicates the request is awaiting review.
	BlogRequestStatusPending BlogRequestStatus = "pending"
	// BlogRequestStatusApproved indicates the request was accepted.
	BlogRequestStatusApproved BlogRequestStatus = "approved"
	// BlogRequestStatusRejected indicates the request was denied.
	BlogRequestStatusRejected BlogRequestStatus = "rejected"
)

// BlogPayload carries the proposed content of a create or update request.
// Empty fields are left untouched when the request is applied.
type BlogPayload struct {
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
	Author string `json:"author,omitempty"`
	Cover  string `json:"cover,omitempty"`
}

// BlogRequest is a pending change to a blog post awaiting admin review.
//
// PendingBlogID equals BlogID while the request is pending and is cleared on
// resolution. The unique index on it is what guarantees at most one pending
// request per blog: submissions upsert on that key, so a resubmission
// overwrites the pending request instead of duplicating it. Resolved requests
// are never deleted; they remain as an audit trail.
type BlogRequest struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Type          BlogRequestType   `gorm:"type:varchar(20);not null" json:"type"`
	BlogID        uint              `gorm:"not null;index" json:"blog_id"`
	PendingBlogID *uint             `gorm:"uniqueIndex" json:"-"`
	Data          *BlogPayload      `gorm:"serializer:json" json:"data,omitempty"`
	RequesterID   uint              `gorm:"not null;index" json:"requester_id"`
	Requester     *User             `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Status        BlogRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminNotes    string            `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Blog is the target post, resolved at read time. It is not a foreign
	// key: an approved delete removes the post while its requests remain.
	Blog *Blog `gorm:"-" json:"blog,omitempty"`
}
