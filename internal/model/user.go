package model

import (
	"context"
	"io"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/profile-server/internal/apperror"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// FindByUsernameOrEmail returns any user whose username or email matches.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (User, error)
	// Create returns ErrDuplicate when the username or email is already taken.
	Create(ctx context.Context, user User) (User, error)
	SetImage(ctx context.Context, id uuid.UUID, kind ImageKind, ref string) (User, error)
	ClearImage(ctx context.Context, id uuid.UUID, kind ImageKind) (User, error)
}

// User represents a registered account and its profile images.
type User struct {
	ID              uuid.UUID
	Username        string
	Email           string
	PasswordHash    []byte
	ProfileImageRef string
	BannerImageRef  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ImageRef returns the stored reference for the given image kind, empty when unset.
func (u User) ImageRef(kind ImageKind) string {
	switch kind {
	case ImageProfile:
		return u.ProfileImageRef
	case ImageBanner:
		return u.BannerImageRef
	default:
		return ""
	}
}

// ImageKind enumerates the images a profile can carry.
type ImageKind string

const (
	// ImageProfile is the profile picture.
	ImageProfile ImageKind = "profile"
	// ImageBanner is the banner image shown above the profile.
	ImageBanner ImageKind = "banner"
)

// Field returns the multipart form field the image is uploaded under.
func (k ImageKind) Field() string {
	if k == ImageBanner {
		return "bannerImage"
	}
	return "profilePic"
}

// Dir returns the storage directory, which is also the public URL prefix.
func (k ImageKind) Dir() string {
	if k == ImageBanner {
		return "bannerUploads"
	}
	return "uploads"
}

const (
	maxUsernameLen = 64
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLen = 72
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// RegisterParams is the registration form after binding.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Normalize trims surrounding whitespace from the identity fields.
func (p RegisterParams) Normalize() RegisterParams {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	return p
}

// Validate checks the form before a User is built from it.
func (p RegisterParams) Validate() error {
	if p.Username == "" || p.Email == "" || p.Password == "" {
		return apperror.NewValidation("Username, email and password are required.")
	}
	if len(p.Username) > maxUsernameLen || !usernamePattern.MatchString(p.Username) {
		return apperror.NewValidation("Username may only contain letters, digits, '.', '_' and '-'.")
	}
	// "." and ".." are path segments, not profile URLs
	if strings.Trim(p.Username, ".") == "" {
		return apperror.NewValidation("Username must contain a letter, digit, '_' or '-'.")
	}
	addr, err := mail.ParseAddress(p.Email)
	if err != nil || addr.Address != p.Email {
		return apperror.NewValidation("Email address is not valid.")
	}
	if len(p.Password) > maxPasswordLen {
		return apperror.NewValidation("Password is too long.")
	}
	if p.Password != p.ConfirmPassword {
		return apperror.NewValidation("Passwords do not match.")
	}
	return nil
}

// UploadedFile is a single file received from a multipart form.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
