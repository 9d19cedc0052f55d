package models

import (
	"strings"

	"gorm.io/gorm"
)

type Article struct {
	gorm.Model

	Slug        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Description string
	Body        string `gorm:"type:text"`
	// TagList is stored serialized (comma separated) so the tag filter can
	// run a plain substring match against the column.
	TagList        string `gorm:"type:text"`
	FavoritesCount int    `gorm:"not null;default:0"`
	AuthorID       uint   `gorm:"not null;index"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (a *Article) Tags() []string {
	if a.TagList == "" {
		return []string{}
	}
	return strings.Split(a.TagList, ",")
}

func (a *Article) SetTags(tags []string) {
	a.TagList = strings.Join(tags, ",")
}
