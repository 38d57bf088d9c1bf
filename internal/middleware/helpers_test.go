package middleware

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mycontacts/mycontacts/internal/apperr"
	"github.com/mycontacts/mycontacts/internal/auth"
)

type stubVerifier map[string]auth.Identity

func (s stubVerifier) Verify(token string) (auth.Identity, error) {
	id, ok := s[token]
	if !ok {
		return auth.Identity{}, apperr.ErrInvalidToken
	}
	return id, nil
}

func newTestCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Close()
		mr.Close()
	})
	return cache, mr
}
