package models

import "time"

// Post represents a user's publication.
//
// The author and publication date are fixed at creation time and never
// accepted from client payloads. Rows are hard-deleted so the ON DELETE
// CASCADE constraints declared below propagate to dependent comments.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	GroupID  *uint  `gorm:"index" json:"group_id,omitempty"`
	Group    *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"group,omitempty"`
	ImageURL string `json:"image_url"`
	// PubDate is set once when the row is created and ignored on updates.
	PubDate   time.Time `gorm:"autoCreateTime;index;<-:create" json:"pub_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
