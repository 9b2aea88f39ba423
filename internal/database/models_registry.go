package database

import "plume/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
//
// Order matters: referenced tables must be created before the tables that
// declare foreign keys against them.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	}
}
