package services

import (
	"testing"
	"time"

	"github.com/conduit-dev/conduit/db"
	"github.com/conduit-dev/conduit/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := gormDB.AutoMigrate(&models.User{}, &models.Article{}, &models.Follow{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	db.DB = gormDB
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}

	return user
}

func createArticle(t *testing.T, authorID uint, title string, tags []string, createdAt time.Time) models.Article {
	t.Helper()

	article := models.Article{
		Slug:     title + "-abc123",
		Title:    title,
		Body:     "body of " + title,
		AuthorID: authorID,
	}
	article.SetTags(tags)
	article.CreatedAt = createdAt

	if err := db.DB.Create(&article).Error; err != nil {
		t.Fatalf("create article %s: %v", title, err)
	}

	return article
}

func favoriteRowCount(t *testing.T, userID, articleID uint) int64 {
	t.Helper()

	var count int64
	err := db.DB.Table("user_favorites").
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("count favorites: %v", err)
	}

	return count
}
