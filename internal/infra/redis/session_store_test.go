package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quizdesk-service/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	model := app.NewQuizModel(sampleGroup())
	store.Put(&app.Session{ID: "s1", UserID: "u1", Model: model})
	if !mr.Exists("quizdesk:session:s1") {
		t.Fatalf("expected redis liveness key to be set")
	}
	if _, ok := store.Get("s1"); !ok {
		t.Fatalf("expected session retrievable")
	}

	store.Delete("s1")
	if mr.Exists("quizdesk:session:s1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session gone")
	}
}
