package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/profile-server/internal/model"
)

var _ model.UserStore = (*MemoryUserStore)(nil)

// MemoryUserStore is an in-memory UserStore enforcing the same uniqueness
// rules as the database schema.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *MemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *MemoryUserStore) FindByUsernameOrEmail(_ context.Context, username, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *MemoryUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return model.User{}, model.ErrDuplicate
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryUserStore) SetImage(_ context.Context, id uuid.UUID, kind model.ImageKind, ref string) (model.User, error) {
	return s.update(id, kind, ref)
}

func (s *MemoryUserStore) ClearImage(_ context.Context, id uuid.UUID, kind model.ImageKind) (model.User, error) {
	return s.update(id, kind, "")
}

func (s *MemoryUserStore) update(id uuid.UUID, kind model.ImageKind, ref string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if kind == model.ImageBanner {
		u.BannerImageRef = ref
	} else {
		u.ProfileImageRef = ref
	}
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return u, nil
}

var _ model.Mailer = (*RecordingMailer)(nil)

// RecordingMailer keeps every message it is asked to send.
type RecordingMailer struct {
	mu       sync.Mutex
	Err      error
	messages []model.Message
}

func (m *RecordingMailer) Send(_ context.Context, msg model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *RecordingMailer) Messages() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.Message(nil), m.messages...)
}

var _ model.Storage = (*MemoryStorage)(nil)

// MemoryStorage is an in-memory object store.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]memoryObject)}
}

func (s *MemoryStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (s *MemoryStorage) Download(_ context.Context, key string) (model.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[key]
	if !ok {
		return model.Object{}, model.ErrNotFound
	}
	return model.Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}, nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	return nil
}

func (s *MemoryStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.objects[key]
	return ok, nil
}

// Keys lists stored object keys.
func (s *MemoryStorage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}
