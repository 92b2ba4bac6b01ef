// Package services contains server-side business logic. AuthService owns
// credentials and the personal access token lifecycle; NoteStore owns the
// note collection and its ownership rules.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/notely/internal/common"
	"github.com/dmitrijs2005/notely/internal/cryptox"
	"github.com/dmitrijs2005/notely/internal/dbx"
	"github.com/dmitrijs2005/notely/internal/server/blobstore"
	"github.com/dmitrijs2005/notely/internal/server/models"
	"github.com/dmitrijs2005/notely/internal/server/repositories/repomanager"
)

// ProfilePicturePrefix is the blob key prefix for uploaded pictures.
const ProfilePicturePrefix = "profile_pictures/"

// pictureExtensions lists the accepted sniffed image types.
var pictureExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// RegisterInput is the payload of a registration.
type RegisterInput struct {
	Name           string  `json:"name" validate:"required,max=255"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	Password       string  `json:"password" validate:"required,min=8,max=72"`
	ProfilePicture *string `json:"profile_picture" validate:"omitnil,url"`
}

// LoginInput is the payload of a login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is the payload of a profile update. A nil ProfilePicture
// keeps the current one.
type ProfileInput struct {
	Name           string  `json:"name" validate:"required,max=255"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	ProfilePicture *string `json:"profile_picture" validate:"omitnil,url"`
}

// AuthService registers users, checks credentials and issues or revokes
// opaque bearer tokens.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobstore.Store
	validate    *validator.Validate
	bcryptCost  int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		validate:    newValidator(),
		bcryptCost:  bcrypt.DefaultCost,
	}
}

// Register creates the user and its first token in one transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, "", err
	}

	if _, err := s.repomanager.Users(s.db).GetByEmail(ctx, in.Email); err == nil {
		return nil, "", fmt.Errorf("email already taken: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, "", fmt.Errorf("error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, "", common.NewValidationError("password", "is too long")
		}
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   string(hash),
		ProfilePicture: in.ProfilePicture,
	}

	var token string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		var err error
		token, err = s.issueToken(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	return user, token, nil
}

// Login checks credentials and issues a fresh token. Unknown email and wrong
// password both yield common.ErrUnauthorized after a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, "", err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.getDummyHash(), []byte(in.Password))
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", common.ErrUnauthorized
	}

	token, err := s.issueToken(ctx, s.db, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error issuing token: %w", err)
	}

	return user, token, nil
}

// Verify resolves a bearer string to its user and records the token use.
func (s *AuthService) Verify(ctx context.Context, bearer string) (*models.User, error) {
	token, err := s.resolveToken(ctx, bearer)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := s.repomanager.AccessTokens(s.db).TouchLastUsed(ctx, token.ID); err != nil {
		return nil, fmt.Errorf("error touching token: %w", err)
	}

	return user, nil
}

// Logout revokes exactly the presented token.
func (s *AuthService) Logout(ctx context.Context, bearer string) error {
	token, err := s.resolveToken(ctx, bearer)
	if err != nil {
		return err
	}

	if err := s.repomanager.AccessTokens(s.db).Delete(ctx, token.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// UpdateProfile rewrites the caller's name, email and optionally the picture
// reference. The email may stay the caller's own.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	other, err := repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && other.ID != user.ID:
		return nil, fmt.Errorf("email already taken: %w", common.ErrConflict)
	case err != nil && !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	updated := *user
	updated.Name = in.Name
	updated.Email = in.Email
	if in.ProfilePicture != nil {
		updated.ProfilePicture = in.ProfilePicture
	}

	u, err := repo.Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return u, nil
}

// SetProfilePicture stores an image of at most common.MaxProfilePictureSize
// bytes and records its public URL on the user.
func (s *AuthService) SetProfilePicture(ctx context.Context, user *models.User, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", common.NewValidationError("profile_picture", "is required")
	}
	if len(data) > common.MaxProfilePictureSize {
		return "", common.NewValidationError("profile_picture",
			fmt.Sprintf("must not be greater than %d kilobytes", common.MaxProfilePictureSize/1024))
	}
	if contentType != "" && !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return "", common.NewValidationError("profile_picture", "must be an image")
	}

	sniffed := http.DetectContentType(data)
	ext, ok := pictureExtensions[sniffed]
	if !ok {
		return "", common.NewValidationError("profile_picture", "must be an image")
	}

	key := ProfilePicturePrefix + uuid.NewString() + ext
	url, err := s.blobs.Put(ctx, key, data, sniffed)
	if err != nil {
		return "", fmt.Errorf("error storing picture: %w", err)
	}

	if err := s.repomanager.Users(s.db).SetProfilePicture(ctx, user.ID, url); err != nil {
		return "", fmt.Errorf("error saving picture url: %w", err)
	}

	return url, nil
}

// --- helpers below ---

func (s *AuthService) resolveToken(ctx context.Context, bearer string) (*models.AccessToken, error) {
	if bearer == "" {
		return nil, common.ErrUnauthorized
	}

	id, secret, err := cryptox.ParseToken(bearer)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrUnauthorized
	}

	token, err := s.repomanager.AccessTokens(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("error loading token: %w", err)
	}

	if !cryptox.CompareTokenHash(token.TokenHash, secret) {
		return nil, common.ErrUnauthorized
	}

	return token, nil
}

func (s *AuthService) issueToken(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	secret, err := cryptox.NewTokenSecret()
	if err != nil {
		return "", err
	}

	token := &models.AccessToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      models.AccessTokenName,
		TokenHash: cryptox.HashToken(secret),
	}
	if err := s.repomanager.AccessTokens(db).Create(ctx, token); err != nil {
		return "", err
	}

	return cryptox.FormatToken(token.ID, secret), nil
}

func (s *AuthService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("notely-unknown-user"), s.bcryptCost)
	})
	return s.dummyHash
}

// normalizeEmail makes email addresses compare case-insensitively.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
