// Package services contains server-side business logic. ProfileService
// registers users across the relational store and the blob store and
// reassembles the profile view on retrieval.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/cryptox"
	"github.com/dmitrijs2005/profilekeeper/internal/dbx"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
	"github.com/dmitrijs2005/profilekeeper/internal/server/assets"
	"github.com/dmitrijs2005/profilekeeper/internal/server/config"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
	"github.com/dmitrijs2005/profilekeeper/internal/server/repositories/repomanager"
)

// RegisterRequest carries the registration form. Password is the raw
// secret; it is hashed before anything is written.
type RegisterRequest struct {
	FullName    string
	Email       string
	Password    string
	Phone       string
	PictureName string
	Picture     []byte
}

// Column widths of the users table, in characters.
const (
	maxFullNameLen = 100
	maxEmailLen    = 255
	maxPhoneLen    = 20
)

type ProfileService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	store          assets.Store
	logger         logging.Logger
	bcryptCost     int
	maxPictureSize int64
	compensate     bool

	// withTx runs fn in a transaction on db; replaced in tests.
	withTx func(ctx context.Context, fn dbx.TxFunc) error
}

func NewProfileService(db *sql.DB, rm repomanager.RepositoryManager, store assets.Store,
	cfg *config.Config, logger logging.Logger) *ProfileService {
	s := &ProfileService{
		db:             db,
		repomanager:    rm,
		store:          store,
		logger:         logger,
		bcryptCost:     cfg.BcryptCost,
		maxPictureSize: cfg.MaxPictureSize,
		compensate:     cfg.CompensateOrphans,
	}
	s.withTx = func(ctx context.Context, fn dbx.TxFunc) error {
		return dbx.WithTx(ctx, s.db, nil, fn)
	}
	return s
}

// Register creates the user record and stores the picture under the
// generated id. Email and phone already in use yield common.ErrorConflict,
// including when a concurrent registration wins the race at the unique
// constraint.
func (s *ProfileService) Register(ctx context.Context, req RegisterRequest) (*models.Profile, error) {
	req.Email = normalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := s.validate(req); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
	}

	err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.FindByEmailOrPhone(ctx, user.Email, user.Phone)
		if err == nil {
			return common.ErrorConflict
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorConflict), errors.Is(err, common.ErrorDuplicateKey):
			return nil, common.ErrorConflict
		default:
			return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
		}
	}

	if _, err := s.store.Put(ctx, user.ID, req.PictureName, req.Picture); err != nil {
		s.logger.Error(ctx, "picture write failed", "user_id", user.ID, "error", err)
		if s.compensate {
			s.removeOrphan(ctx, user.ID)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorIO, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	return models.NewProfile(user, req.Picture), nil
}

// GetProfile reads the user record and its picture. A user without a stored
// picture is returned with a nil Picture.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	picture, err := s.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %v", common.ErrorIO, err)
		}
		picture = nil
	}

	return models.NewProfile(user, picture), nil
}

// cleanupTimeout bounds the compensation step once the request context is
// detached.
const cleanupTimeout = 5 * time.Second

// removeOrphan undoes a registration whose picture could not be stored. It
// runs detached from the request so a cancelled or expired ctx, often the
// reason Put failed, does not also abort the cleanup.
func (s *ProfileService) removeOrphan(ctx context.Context, userID int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, userID); err != nil {
		s.logger.Warn(ctx, "orphan picture cleanup failed", "user_id", userID, "error", err)
	}
	if err := s.repomanager.Users(s.db).Delete(ctx, userID); err != nil {
		s.logger.Error(ctx, "orphan user cleanup failed", "user_id", userID, "error", err)
		return
	}
	s.logger.Warn(ctx, "registration rolled back", "user_id", userID)
}

func (s *ProfileService) validate(req RegisterRequest) error {
	switch {
	case req.FullName == "":
		return fmt.Errorf("%w: full_name is required", common.ErrorValidation)
	case req.Email == "":
		return fmt.Errorf("%w: email is required", common.ErrorValidation)
	case req.Password == "":
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	case req.Phone == "":
		return fmt.Errorf("%w: phone is required", common.ErrorValidation)
	case len(req.Picture) == 0:
		return fmt.Errorf("%w: profile_picture is required", common.ErrorValidation)
	}

	if !utf8.ValidString(req.FullName) || !utf8.ValidString(req.Email) || !utf8.ValidString(req.Phone) {
		return fmt.Errorf("%w: fields must be valid UTF-8", common.ErrorValidation)
	}
	if utf8.RuneCountInString(req.FullName) > maxFullNameLen ||
		utf8.RuneCountInString(req.Email) > maxEmailLen ||
		utf8.RuneCountInString(req.Phone) > maxPhoneLen {
		return fmt.Errorf("%w: field too long", common.ErrorValidation)
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return fmt.Errorf("%w: invalid email %q", common.ErrorValidation, req.Email)
	}
	if s.maxPictureSize > 0 && int64(len(req.Picture)) > s.maxPictureSize {
		return fmt.Errorf("%w: profile_picture exceeds %d bytes", common.ErrorValidation, s.maxPictureSize)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
