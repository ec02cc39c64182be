// Package models contains data structures for the application's domain models.
package models

import "time"

// User identifies an author or reader. Account credentials live in the
// external auth system; the content layer only needs the stable id and
// the unique username used in profile URLs.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	DisplayName string    `gorm:"size:150" json:"display_name"`
	IsAdmin     bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
