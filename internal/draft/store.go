// Package draft stashes in-progress invoice payloads under a caller key so
// a half-filled document survives outside any browser or session.
package draft

import (
	"context"
	"errors"
	"strings"
)

type Store interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

var (
	ErrInvalidKey = errors.New("invalid_key")
	ErrNotFound   = errors.New("not_found")
)

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	return key, nil
}
