package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Bio          string `gorm:"default:''"`
	Image        string `gorm:"default:''"`

	// Relationships
	Articles  []Article `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Favorites []Article `gorm:"many2many:user_favorites"`
}
