package models

import "time"

// Statistic is a named counter shown on the marketing pages, e.g. ounces
// traded or active accounts. Values are maintained by the seeder and admin
// tooling rather than computed live.
type Statistic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
