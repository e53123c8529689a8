package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/pgdesk/internal/client/repositories/kv"
	"github.com/dmitrijs2005/pgdesk/internal/logging"
)

type Store struct {
	repo kv.Repository
	log  logging.Logger
}

func NewStore(repo kv.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("module", "storage")}
}

func (s *Store) SetItem(ctx context.Context, key, value string) error {
	if err := s.repo.Set(ctx, key, value); err != nil {
		return &StorageWriteError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// GetItem returns the stored value. Backend failures are logged and
// reported as a missing key.
func (s *Store) GetItem(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.LookupItem(ctx, key)
	if err != nil {
		s.log.Error(ctx, "read failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// LookupItem is GetItem for callers that must tell a missing key apart from
// a failed read.
func (s *Store) LookupItem(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return v, ok, nil
}

func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return &StorageWriteError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// SetObject stores v as JSON.
func (s *Store) SetObject(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return &StorageWriteError{Op: "set", Key: key, Err: err}
	}
	return s.SetItem(ctx, key, string(b))
}

// GetObject decodes the JSON stored under key into out. It reports false when
// the key is absent or the stored text is not valid JSON for out.
func (s *Store) GetObject(ctx context.Context, key string, out any) bool {
	raw, ok := s.GetItem(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn(ctx, "malformed object", "key", key, "error", err)
		return false
	}
	return true
}

// SetItems writes every item. Batch-capable backends apply them atomically;
// others get concurrent single writes, so a failure may leave a partial
// result that callers must clean up.
func (s *Store) SetItems(ctx context.Context, items map[string]string) error {
	if b, ok := s.repo.(kv.BatchRepository); ok {
		if err := b.SetMany(ctx, items); err != nil {
			return &StorageWriteError{Op: "set", Key: joinKeys(items), Err: err}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for k, v := range items {
		g.Go(func() error { return s.SetItem(gctx, k, v) })
	}
	return g.Wait()
}

// RemoveItems removes every key, atomically when the backend allows it.
func (s *Store) RemoveItems(ctx context.Context, keys ...string) error {
	if b, ok := s.repo.(kv.BatchRepository); ok {
		if err := b.DeleteMany(ctx, keys...); err != nil {
			return &StorageWriteError{Op: "remove", Key: strings.Join(keys, ","), Err: err}
		}
		return nil
	}

	var g errgroup.Group
	for _, k := range keys {
		g.Go(func() error { return s.RemoveItem(ctx, k) })
	}
	return g.Wait()
}

func (s *Store) Close() error {
	if c, ok := s.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func joinKeys(items map[string]string) string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
