package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/conduit-dev/conduit/internal/services"
	"github.com/conduit-dev/conduit/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProfilesHandler struct {
	profiles *services.ProfileService
}

func NewProfilesHandler() *ProfilesHandler {
	return &ProfilesHandler{profiles: services.NewProfileService()}
}

func (h *ProfilesHandler) Get(ctx *gin.Context) {
	viewerID := utils.GetCurrentUserID(ctx)

	profile, err := h.profiles.Get(ctx.Request.Context(), viewerID, ctx.Param("username"))

	if err != nil {
		h.renderProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfilesHandler) Follow(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	profile, err := h.profiles.Follow(ctx.Request.Context(), currentUser.ID, ctx.Param("username"))

	if err != nil {
		h.renderProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfilesHandler) Unfollow(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	profile, err := h.profiles.Unfollow(ctx.Request.Context(), currentUser.ID, ctx.Param("username"))

	if err != nil {
		h.renderProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfilesHandler) renderProfileError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
	case errors.Is(err, services.ErrSelfFollow):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cannot follow yourself"})
	default:
		log.Printf("Profile operation failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
