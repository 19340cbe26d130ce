package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizdesk-service/internal/domain"
)

func TestIssueAndResolve(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("u1", "Alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.ID != "u1" || user.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.CurrentUser(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for %q, got %v", token, err)
		}
	}

	// Token signed with a different secret must not verify.
	other := NewTokenService("other-secret", time.Hour)
	token, _ := other.Issue("u1", "Alice")
	if _, err := svc.CurrentUser(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for foreign token, got %v", err)
	}
}
