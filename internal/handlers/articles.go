package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/conduit-dev/conduit/internal/models"
	"github.com/conduit-dev/conduit/internal/services"
	"github.com/conduit-dev/conduit/internal/types"
	"github.com/conduit-dev/conduit/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateArticleRequest struct {
	Article struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Body        string   `json:"body" binding:"required"`
		TagList     []string `json:"tagList"`
	} `json:"article" binding:"required"`
}

type UpdateArticleRequest struct {
	Article struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Body        *string  `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article" binding:"required"`
}

type ArticlesHandler struct {
	articles *services.ArticleService
}

func NewArticlesHandler() *ArticlesHandler {
	return &ArticlesHandler{articles: services.NewArticleService()}
}

func (h *ArticlesHandler) List(ctx *gin.Context) {
	query, ok := listQuery(ctx)

	if !ok {
		return
	}

	viewerID := utils.GetCurrentUserID(ctx)

	results, articlesCount, err := h.articles.List(ctx.Request.Context(), viewerID, query)

	if err != nil {
		log.Printf("Failed to list articles: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]types.ArticleResponse, 0, len(results))

	for _, result := range results {
		responses = append(responses, articleResponse(&result.Article, result.Favorited))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"articles":      responses,
		"articlesCount": articlesCount,
	})
}

func (h *ArticlesHandler) Feed(ctx *gin.Context) {
	query, ok := listQuery(ctx)

	if !ok {
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	articles, articlesCount, err := h.articles.Feed(ctx.Request.Context(), currentUser.ID, query)

	if err != nil {
		log.Printf("Failed to build feed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	responses := make([]types.ArticleResponse, 0, len(articles))

	for i := range articles {
		responses = append(responses, articleResponse(&articles[i], false))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"articles":      responses,
		"articlesCount": articlesCount,
	})
}

func (h *ArticlesHandler) Create(ctx *gin.Context) {
	var body CreateArticleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	article, err := h.articles.Create(
		ctx.Request.Context(),
		currentUser.ID,
		body.Article.Title,
		body.Article.Description,
		body.Article.Body,
		body.Article.TagList,
	)

	if err != nil {
		log.Printf("Failed to create article: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"article": articleResponse(article, false)})
}

func (h *ArticlesHandler) Get(ctx *gin.Context) {
	article, err := h.articles.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		log.Printf("Failed to fetch article: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"article": articleResponse(article, false)})
}

func (h *ArticlesHandler) Update(ctx *gin.Context) {
	var body UpdateArticleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	article, err := h.articles.Update(ctx.Request.Context(), currentUser.ID, ctx.Param("slug"), services.ArticleUpdate{
		Title:       body.Article.Title,
		Description: body.Article.Description,
		Body:        body.Article.Body,
		TagList:     body.Article.TagList,
	})

	if err != nil {
		h.renderArticleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"article": articleResponse(article, false)})
}

func (h *ArticlesHandler) Delete(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	if err := h.articles.Delete(ctx.Request.Context(), currentUser.ID, ctx.Param("slug")); err != nil {
		h.renderArticleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ArticlesHandler) Favorite(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	result, err := h.articles.Favorite(ctx.Request.Context(), currentUser.ID, ctx.Param("slug"))

	if err != nil {
		h.renderArticleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"article": articleResponse(&result.Article, result.Favorited)})
}

func (h *ArticlesHandler) Unfavorite(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	result, err := h.articles.Unfavorite(ctx.Request.Context(), currentUser.ID, ctx.Param("slug"))

	if err != nil {
		h.renderArticleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"article": articleResponse(&result.Article, result.Favorited)})
}

func (h *ArticlesHandler) Tags(ctx *gin.Context) {
	tags, err := h.articles.Tags(ctx.Request.Context())

	if err != nil {
		log.Printf("Failed to list tags: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *ArticlesHandler) renderArticleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not the author"})
	default:
		log.Printf("Article operation failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// listQuery parses the optional limit/offset/author/tag/favorited
// parameters. A malformed integer fails the request.
func listQuery(ctx *gin.Context) (services.ListQuery, bool) {
	query := services.ListQuery{
		Tag:       ctx.Query("tag"),
		Author:    ctx.Query("author"),
		Favorited: ctx.Query("favorited"),
	}

	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return query, false
		}
		query.Limit = limit
	}

	if raw := ctx.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
			return query, false
		}
		query.Offset = offset
	}

	return query, true
}

func articleResponse(article *models.Article, favorited bool) types.ArticleResponse {
	return types.ArticleResponse{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        article.Tags(),
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: article.FavoritesCount,
		Author: types.Profile{
			Username: article.Author.Username,
			Bio:      article.Author.Bio,
			Image:    article.Author.Image,
		},
	}
}
