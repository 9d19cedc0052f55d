package services

import (
	"context"
	"errors"
	"strings"

	"github.com/conduit-dev/conduit/db"
	"github.com/conduit-dev/conduit/internal/models"
	"github.com/conduit-dev/conduit/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// ListQuery carries the optional listing filters; zero values mean "not
// present".
type ListQuery struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// ArticleResult is an article overlaid with the viewer's favorite state.
type ArticleResult struct {
	models.Article
	Favorited bool
}

// ArticleUpdate holds the updatable fields; nil means "leave unchanged".
type ArticleUpdate struct {
	Title       *string
	Description *string
	Body        *string
	TagList     []string
}

type ArticleService struct{}

func NewArticleService() *ArticleService {
	return &ArticleService{}
}

// List builds the public listing: newest first, author joined, optional
// filters applied independently, the total counted on the filtered set
// before pagination, and the favorited flag stamped for an authenticated
// viewer. An author or favorited username that does not resolve yields an
// empty listing instead of an error.
func (s *ArticleService) List(ctx context.Context, viewerID uint, q ListQuery) ([]ArticleResult, int64, error) {
	query := db.DB.WithContext(ctx).Model(&models.Article{})

	if q.Author != "" {
		var author models.User

		err := db.DB.WithContext(ctx).Where("username = ?", q.Author).First(&author).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ArticleResult{}, 0, nil
		}

		if err != nil {
			return nil, 0, err
		}

		query = query.Where("author_id = ?", author.ID)
	}

	if q.Tag != "" {
		// Substring match against the serialized tag list, so "react"
		// also matches inside a longer tag name.
		query = query.Where("tag_list LIKE ?", "%"+q.Tag+"%")
	}

	if q.Favorited != "" {
		ids, err := s.favoriteIDsByUsername(ctx, q.Favorited)

		if err != nil {
			return nil, 0, err
		}

		if len(ids) == 0 {
			return []ArticleResult{}, 0, nil
		}

		query = query.Where("id IN ?", ids)
	}

	var articlesCount int64

	if err := query.Count(&articlesCount).Error; err != nil {
		return nil, 0, err
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	var articles []models.Article

	if err := query.Order("created_at DESC").Preload("Author").Find(&articles).Error; err != nil {
		return nil, 0, err
	}

	favorited := make(map[uint]bool)

	if viewerID != 0 {
		ids, err := s.favoriteIDs(ctx, viewerID)

		if err != nil {
			return nil, 0, err
		}

		for _, id := range ids {
			favorited[id] = true
		}
	}

	results := make([]ArticleResult, 0, len(articles))

	for _, article := range articles {
		results = append(results, ArticleResult{Article: article, Favorited: favorited[article.ID]})
	}

	return results, articlesCount, nil
}

// Feed lists articles authored by users the viewer follows. A viewer
// following no one gets an empty result without a listing query being
// issued. Feed results are not favorite-stamped.
func (s *ArticleService) Feed(ctx context.Context, viewerID uint, q ListQuery) ([]models.Article, int64, error) {
	var followingIDs []uint

	err := db.DB.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", viewerID).
		Pluck("following_id", &followingIDs).Error

	if err != nil {
		return nil, 0, err
	}

	if len(followingIDs) == 0 {
		return []models.Article{}, 0, nil
	}

	query := db.DB.WithContext(ctx).Model(&models.Article{}).Where("author_id IN ?", followingIDs)

	var articlesCount int64

	if err := query.Count(&articlesCount).Error; err != nil {
		return nil, 0, err
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	var articles []models.Article

	if err := query.Order("created_at DESC").Preload("Author").Find(&articles).Error; err != nil {
		return nil, 0, err
	}

	return articles, articlesCount, nil
}

func (s *ArticleService) Create(ctx context.Context, authorID uint, title, description, body string, tags []string) (*models.Article, error) {
	article := models.Article{
		Slug:        utils.NewSlug(title),
		Title:       title,
		Description: description,
		Body:        body,
		AuthorID:    authorID,
	}
	article.SetTags(tags)

	if err := db.DB.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, err
	}

	if err := db.DB.WithContext(ctx).Preload("Author").First(&article, article.ID).Error; err != nil {
		return nil, err
	}

	return &article, nil
}

func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article

	err := db.DB.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&article).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &article, nil
}

// Update applies the changes and regenerates the slug, so an article's URL
// changes on every edit even when the title did not. The existence check
// runs before the ownership check.
func (s *ArticleService) Update(ctx context.Context, requesterID uint, slug string, upd ArticleUpdate) (*models.Article, error) {
	article, err := s.GetBySlug(ctx, slug)

	if err != nil {
		return nil, err
	}

	if article.AuthorID != requesterID {
		return nil, ErrForbidden
	}

	if upd.Title != nil {
		article.Title = *upd.Title
	}

	if upd.Description != nil {
		article.Description = *upd.Description
	}

	if upd.Body != nil {
		article.Body = *upd.Body
	}

	if upd.TagList != nil {
		article.SetTags(upd.TagList)
	}

	article.Slug = utils.NewSlug(article.Title)

	if err := db.DB.WithContext(ctx).Save(article).Error; err != nil {
		return nil, err
	}

	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, requesterID uint, slug string) error {
	article, err := s.GetBySlug(ctx, slug)

	if err != nil {
		return err
	}

	if article.AuthorID != requesterID {
		return ErrForbidden
	}

	return db.DB.WithContext(ctx).Delete(article).Error
}

// Favorite adds the article to the user's favorites. Adding an already
// favorited article is a no-op. The relation edit and the counter
// adjustment commit in one transaction so they cannot drift apart.
func (s *ArticleService) Favorite(ctx context.Context, userID uint, slug string) (*ArticleResult, error) {
	article, err := s.GetBySlug(ctx, slug)

	if err != nil {
		return nil, err
	}

	err = db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64

		if err := tx.Table("user_favorites").
			Where("user_id = ? AND article_id = ?", userID, article.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		if err := tx.Exec(
			"INSERT INTO user_favorites (user_id, article_id) VALUES (?, ?)",
			userID, article.ID,
		).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Article{}).
			Where("id = ?", article.ID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + 1")).Error; err != nil {
			return err
		}

		article.FavoritesCount++
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &ArticleResult{Article: *article, Favorited: true}, nil
}

// Unfavorite is the mirror of Favorite: removing an article that was never
// favorited is a no-op.
func (s *ArticleService) Unfavorite(ctx context.Context, userID uint, slug string) (*ArticleResult, error) {
	article, err := s.GetBySlug(ctx, slug)

	if err != nil {
		return nil, err
	}

	err = db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64

		if err := tx.Table("user_favorites").
			Where("user_id = ? AND article_id = ?", userID, article.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			return nil
		}

		if err := tx.Exec(
			"DELETE FROM user_favorites WHERE user_id = ? AND article_id = ?",
			userID, article.ID,
		).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Article{}).
			Where("id = ?", article.ID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count - 1")).Error; err != nil {
			return err
		}

		article.FavoritesCount--
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &ArticleResult{Article: *article, Favorited: false}, nil
}

// Tags returns the distinct tags across all articles, in first-seen order.
func (s *ArticleService) Tags(ctx context.Context) ([]string, error) {
	var lists []string

	err := db.DB.WithContext(ctx).Model(&models.Article{}).Pluck("tag_list", &lists).Error

	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	tags := []string{}

	for _, list := range lists {
		for _, tag := range strings.Split(list, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	return tags, nil
}

func (s *ArticleService) favoriteIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint

	err := db.DB.WithContext(ctx).
		Table("user_favorites").
		Where("user_id = ?", userID).
		Pluck("article_id", &ids).Error

	return ids, err
}

func (s *ArticleService) favoriteIDsByUsername(ctx context.Context, username string) ([]uint, error) {
	var user models.User

	err := db.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return s.favoriteIDs(ctx, user.ID)
}
