package services

import (
	"context"
	"errors"

	"github.com/conduit-dev/conduit/db"
	"github.com/conduit-dev/conduit/internal/models"
	"github.com/conduit-dev/conduit/internal/types"
	"gorm.io/gorm"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

type ProfileService struct{}

func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// Get returns a user's public profile with the following flag computed for
// the viewer. An anonymous viewer always sees following=false.
func (s *ProfileService) Get(ctx context.Context, viewerID uint, username string) (*types.Profile, error) {
	user, err := s.userByUsername(ctx, username)

	if err != nil {
		return nil, err
	}

	following := false

	if viewerID != 0 {
		following, err = s.isFollowing(ctx, viewerID, user.ID)

		if err != nil {
			return nil, err
		}
	}

	return &types.Profile{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}, nil
}

// Follow creates the follower -> following edge. Following a user twice is
// a no-op thanks to the unique pair index and FirstOrCreate.
func (s *ProfileService) Follow(ctx context.Context, followerID uint, username string) (*types.Profile, error) {
	user, err := s.userByUsername(ctx, username)

	if err != nil {
		return nil, err
	}

	if user.ID == followerID {
		return nil, ErrSelfFollow
	}

	edge := models.Follow{FollowerID: followerID, FollowingID: user.ID}

	err = db.DB.WithContext(ctx).
		Where(models.Follow{FollowerID: followerID, FollowingID: user.ID}).
		FirstOrCreate(&edge).Error

	if err != nil {
		return nil, err
	}

	return &types.Profile{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: true,
	}, nil
}

// Unfollow removes the edge. Unfollowing a user who was never followed is a
// no-op.
func (s *ProfileService) Unfollow(ctx context.Context, followerID uint, username string) (*types.Profile, error) {
	user, err := s.userByUsername(ctx, username)

	if err != nil {
		return nil, err
	}

	err = db.DB.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, user.ID).
		Delete(&models.Follow{}).Error

	if err != nil {
		return nil, err
	}

	return &types.Profile{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: false,
	}, nil
}

func (s *ProfileService) isFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64

	err := db.DB.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error

	return count > 0, err
}

func (s *ProfileService) userByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := db.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}
