package models

import "time"

// Follow represents a directed subscription from one user to another.
//
// The composite unique index makes duplicate edges impossible at the
// storage level, so two concurrent identical inserts cannot both succeed
// even though the service layer also checks for duplicates up front.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_following" json:"user_id"`
	FollowingID uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_following" json:"following_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"following,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
