package models

import "time"

// Comment represents a reply attached to exactly one post. The post linkage
// always comes from the request route, never from the payload.
type Comment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"type:text;not null" json:"text"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PostID uint   `gorm:"not null;index" json:"post_id"`
	Post   Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	// Created is set once at insert time and indexed for newest-first listing.
	Created   time.Time `gorm:"autoCreateTime;index;<-:create" json:"created"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
