package keystore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotFound is returned when no key is stored under the requested name.
	ErrNotFound = errors.New("key not found")
	// ErrRedisUnavailable wraps Redis transport errors.
	ErrRedisUnavailable = errors.New("redis unavailable")
	// ErrNilClient is returned by NewRedisStore for a nil client.
	ErrNilClient = errors.New("nil redis client")
)

// Store reads and writes named blobs grouped by directory.
type Store interface {
	Read(ctx context.Context, dir, name string) ([]byte, error)
	// Write stores data. private marks material that must not be world readable.
	Write(ctx context.Context, dir, name string, data []byte, private bool) error
}

// FileStore keeps each key in dir/name on the local filesystem.
type FileStore struct{}

var _ Store = FileStore{}

// Read returns the file contents or ErrNotFound.
func (FileStore) Read(_ context.Context, dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Join(dir, name))
		}
		return nil, err
	}
	return data, nil
}

// Write creates dir when needed and writes the file, 0600 for private material.
func (FileStore) Write(_ context.Context, dir, name string, data []byte, private bool) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	mode := fs.FileMode(0o644)
	if private {
		mode = 0o600
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, mode); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, mode)
}

// RedisStore keeps keys at {prefix}:{dir}:{name}.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore returns a store on client. An empty prefix becomes "gosecurity".
func NewRedisStore(client redis.UniversalClient, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if prefix == "" {
		prefix = "gosecurity"
	}
	return &RedisStore{redis: client, prefix: prefix}, nil
}

func (s *RedisStore) key(dir, name string) string {
	dir = strings.TrimRight(filepath.ToSlash(dir), "/")
	return s.prefix + ":" + dir + ":" + name
}

// Read returns the stored blob or ErrNotFound.
func (s *RedisStore) Read(ctx context.Context, dir, name string) ([]byte, error) {
	data, err := s.redis.Get(ctx, s.key(dir, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.key(dir, name))
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return data, nil
}

// Write stores the blob without expiry. private is ignored; access control is
// the Redis deployment's concern.
func (s *RedisStore) Write(ctx context.Context, dir, name string, data []byte, _ bool) error {
	if err := s.redis.Set(ctx, s.key(dir, name), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
