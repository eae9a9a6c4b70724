package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/filex"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
	"github.com/dmitrijs2005/profilekeeper/internal/server/repositories/profiles"
)

const filePerm = 0o640

// LocalStore writes pictures under an uploads directory and records the
// file name, relative to that directory, in the profiles table.
type LocalStore struct {
	dir      string
	profiles profiles.Repository
}

// NewLocalStore creates dir if absent and returns a store rooted there.
func NewLocalStore(dir string, repo profiles.Repository) (*LocalStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("uploads dir: %w", err)
	}
	return &LocalStore{dir: abs, profiles: repo}, nil
}

// Dir returns the absolute uploads directory.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Put(ctx context.Context, userID int64, filename string, content []byte) (string, error) {
	prev, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("lookup previous picture: %w", err)
	}

	name := FileName(userID, filename)
	if err := filex.WriteFileAtomic(s.path(name), content, filePerm); err != nil {
		return "", fmt.Errorf("write picture: %w", err)
	}

	if err := s.profiles.Upsert(ctx, &models.ProfileAsset{UserID: userID, Path: name}); err != nil {
		if prev == nil || prev.Path != name {
			_ = os.Remove(s.path(name))
		}
		return "", fmt.Errorf("record picture path: %w", err)
	}

	if prev != nil && prev.Path != name {
		_ = os.Remove(s.path(prev.Path))
	}

	return name, nil
}

func (s *LocalStore) Get(ctx context.Context, userID int64) ([]byte, error) {
	asset, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.path(asset.Path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("read picture: %w", err)
	}

	return content, nil
}

func (s *LocalStore) Delete(ctx context.Context, userID int64) error {
	asset, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return err
	}

	if err := os.Remove(s.path(asset.Path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove picture: %w", err)
	}

	return s.profiles.Delete(ctx, userID)
}

// path resolves a stored name inside the uploads directory.
func (s *LocalStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
