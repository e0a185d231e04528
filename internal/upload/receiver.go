// Package upload names and stores image files received from multipart forms.
package upload

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/profile-server/internal/apperror"
	"github.com/dtroode/profile-server/internal/model"
)

// DefaultMaxBytes caps a single upload.
const DefaultMaxBytes = 5 << 20

const maxNameAttempts = 5

var extPattern = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// Receiver stores uploads under "<dir>/<field>-<unix millis><ext>" and hands
// back the public reference "/<dir>/<name>".
type Receiver struct {
	storage  model.Storage
	maxBytes int64
	now      func() time.Time
}

func NewReceiver(storage model.Storage, maxBytes int64) *Receiver {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Receiver{
		storage:  storage,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Receive stores file and returns its reference.
func (r *Receiver) Receive(ctx context.Context, kind model.ImageKind, file model.UploadedFile) (string, error) {
	if file.Content == nil || file.Size == 0 {
		return "", apperror.NewValidation("No file uploaded.")
	}
	if file.Size > r.maxBytes {
		return "", apperror.NewValidation(fmt.Sprintf("File is too large. The limit is %d bytes.", r.maxBytes))
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", apperror.NewValidation("Only image files can be uploaded.")
	}

	name, err := r.freeName(ctx, kind, file.Filename)
	if err != nil {
		return "", err
	}

	key := kind.Dir() + "/" + name
	if err := r.storage.Upload(ctx, key, file.Content, file.Size, file.ContentType); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return "/" + key, nil
}

// freeName picks a name no stored object uses yet. Two uploads of the same
// field in one millisecond get a numeric suffix.
func (r *Receiver) freeName(ctx context.Context, kind model.ImageKind, filename string) (string, error) {
	ext := path.Ext(filename)
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	base := kind.Field() + "-" + strconv.FormatInt(r.now().UnixMilli(), 10)

	for i := 0; i < maxNameAttempts; i++ {
		name := base + ext
		if i > 0 {
			name = base + "-" + strconv.Itoa(i) + ext
		}
		exists, err := r.storage.Exists(ctx, kind.Dir()+"/"+name)
		if err != nil {
			return "", fmt.Errorf("failed to check upload name: %w", err)
		}
		if !exists {
			return name, nil
		}
	}

	return "", fmt.Errorf("no free upload name for %s", base)
}

// Open streams a stored image by its name within kind's directory.
func (r *Receiver) Open(ctx context.Context, kind model.ImageKind, name string) (model.Object, error) {
	if !validName(kind, name) {
		return model.Object{}, model.ErrNotFound
	}

	obj, err := r.storage.Download(ctx, kind.Dir()+"/"+name)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Object{}, model.ErrNotFound
		}
		return model.Object{}, fmt.Errorf("failed to open upload: %w", err)
	}
	return obj, nil
}

// Discard deletes the object behind ref. Unknown or empty refs are ignored.
func (r *Receiver) Discard(ctx context.Context, ref string) error {
	key := strings.TrimPrefix(ref, "/")
	dir, name, ok := strings.Cut(key, "/")
	if !ok {
		return nil
	}

	var kind model.ImageKind
	switch dir {
	case model.ImageProfile.Dir():
		kind = model.ImageProfile
	case model.ImageBanner.Dir():
		kind = model.ImageBanner
	default:
		return nil
	}
	if !validName(kind, name) {
		return nil
	}

	if err := r.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to discard upload: %w", err)
	}
	return nil
}

func validName(kind model.ImageKind, name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return strings.HasPrefix(name, kind.Field()+"-")
}
