package services

import (
	"context"
	"errors"
	"testing"

	"github.com/conduit-dev/conduit/db"
	"github.com/conduit-dev/conduit/internal/models"
)

func followEdgeCount(t *testing.T, followerID, followingID uint) int64 {
	t.Helper()

	var count int64
	err := db.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("count follow edges: %v", err)
	}

	return count
}

func TestFollowIsIdempotent(t *testing.T) {
	setupTestDB(t)
	svc := NewProfileService()
	target := createUser(t, "alice")
	follower := createUser(t, "bob")

	for i := 0; i < 2; i++ {
		profile, err := svc.Follow(context.Background(), follower.ID, "alice")
		if err != nil {
			t.Fatalf("follow attempt %d: %v", i+1, err)
		}
		if !profile.Following {
			t.Fatalf("expected following=true after follow")
		}
	}

	if n := followEdgeCount(t, follower.ID, target.ID); n != 1 {
		t.Fatalf("expected exactly one follow edge, got %d", n)
	}
}

func TestSelfFollowRejected(t *testing.T) {
	setupTestDB(t)
	svc := NewProfileService()
	user := createUser(t, "alice")

	_, err := svc.Follow(context.Background(), user.ID, "alice")
	if !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
	if n := followEdgeCount(t, user.ID, user.ID); n != 0 {
		t.Fatalf("expected no follow edge, got %d", n)
	}
}

func TestUnfollowWithoutEdgeIsNoop(t *testing.T) {
	setupTestDB(t)
	svc := NewProfileService()
	createUser(t, "alice")
	follower := createUser(t, "bob")

	profile, err := svc.Unfollow(context.Background(), follower.ID, "alice")
	if err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if profile.Following {
		t.Fatalf("expected following=false")
	}
}

func TestProfileFollowingFlag(t *testing.T) {
	setupTestDB(t)
	svc := NewProfileService()
	target := createUser(t, "alice")
	follower := createUser(t, "bob")
	stranger := createUser(t, "carol")

	if _, err := svc.Follow(context.Background(), follower.ID, "alice"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	profile, err := svc.Get(context.Background(), follower.ID, "alice")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !profile.Following {
		t.Errorf("expected following=true for the follower")
	}

	profile, err = svc.Get(context.Background(), stranger.ID, "alice")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Following {
		t.Errorf("expected following=false for a stranger")
	}

	profile, err = svc.Get(context.Background(), 0, "alice")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Following {
		t.Errorf("expected following=false for an anonymous viewer")
	}
	if profile.Username != target.Username {
		t.Errorf("expected username %q, got %q", target.Username, profile.Username)
	}
}

func TestProfileNotFound(t *testing.T) {
	setupTestDB(t)
	svc := NewProfileService()

	_, err := svc.Get(context.Background(), 0, "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
