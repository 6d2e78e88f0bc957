package auth

import (
	"testing"
	"time"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	communityId := int64(2)
	user := &model.User{
		Id:          7,
		Username:    "manager.pk",
		Role:        model.RolePakManager,
		CommunityId: &communityId,
	}

	token, err := GenerateToken(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserId != 7 || claims.Role != model.RolePakManager {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.CommunityId == nil || *claims.CommunityId != 2 {
		t.Fatalf("community_id = %v, want 2", claims.CommunityId)
	}

	actor := claims.Actor()
	if actor.Unrestricted() {
		t.Fatalf("community manager must not be unrestricted")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	user := &model.User{Id: 1, Username: "director", Role: model.RoleDirector}

	token, err := GenerateToken(user, "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken(token, "wrong-secret"); err == nil {
		t.Fatalf("expected signature verification failure")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	user := &model.User{Id: 1, Username: "director", Role: model.RoleDirector}

	token, err := GenerateToken(user, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken(token, "test-secret"); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestDirectorActorUnrestricted(t *testing.T) {
	user := &model.User{Id: 3, Username: "director", Role: model.RoleDirector}

	token, err := GenerateToken(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !claims.Actor().Unrestricted() {
		t.Fatalf("director must be unrestricted")
	}
}
