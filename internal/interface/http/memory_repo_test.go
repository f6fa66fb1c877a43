package handlers_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/anon-inbox/internal/domain/entity"
	"github.com/oksasatya/anon-inbox/internal/domain/repository"
)

// memoryStore implements both repositories over maps.
type memoryStore struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: map[string]*entity.User{}}
}

func (s *memoryStore) find(match func(*entity.User) bool) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			cp := *u
			cp.Messages = append([]entity.Message(nil), u.Messages...)
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	return s.find(func(u *entity.User) bool { return u.ID == id })
}

func (s *memoryStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return s.find(func(u *entity.User) bool { return u.Email == email })
}

func (s *memoryStore) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return s.find(func(u *entity.User) bool { return u.Username == username })
}

func (s *memoryStore) GetVerifiedByUsername(_ context.Context, username string) (*entity.User, error) {
	return s.find(func(u *entity.User) bool { return u.Username == username && u.IsVerified })
}

func (s *memoryStore) UpsertUnverified(_ context.Context, in *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Username == in.Username && u.Email != in.Email {
			if u.IsVerified {
				return repository.ErrUsernameTaken
			}
			delete(s.users, id)
		}
	}
	for _, u := range s.users {
		if u.Email != in.Email {
			continue
		}
		if u.IsVerified {
			return repository.ErrEmailTaken
		}
		u.Name, u.Username, u.Password = in.Name, in.Username, in.Password
		u.VerifyCode, u.VerifyCodeExpires = in.VerifyCode, in.VerifyCodeExpires
		in.ID, in.IsAcceptingMessages = u.ID, u.IsAcceptingMessages
		return nil
	}
	cp := *in
	cp.ID = uuid.NewString()
	cp.IsAcceptingMessages = true
	cp.CreatedAt = time.Now()
	s.users[cp.ID] = &cp
	in.ID, in.IsAcceptingMessages = cp.ID, true
	return nil
}

func (s *memoryStore) MarkVerified(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.IsVerified = true
	}
	return nil
}

func (s *memoryStore) GetAcceptingMessages(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	return u.IsAcceptingMessages, nil
}

func (s *memoryStore) SetAcceptingMessages(_ context.Context, id string, accept bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	u.IsAcceptingMessages = accept
	return accept, nil
}

func (s *memoryStore) AppendMessage(_ context.Context, userID, content string, at time.Time) (*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || !u.IsVerified {
		return nil, repository.ErrNotFound
	}
	if !u.IsAcceptingMessages {
		return nil, repository.ErrNotAccepting
	}
	m := entity.Message{ID: uuid.NewString(), Content: content, CreatedAt: at}
	u.Messages = append(u.Messages, m)
	return &m, nil
}

func (s *memoryStore) GetWithMessages(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(u.Messages, func(i, j int) bool { return u.Messages[i].CreatedAt.After(u.Messages[j].CreatedAt) })
	return u, nil
}

func (s *memoryStore) DeleteMessage(_ context.Context, userID, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, m := range u.Messages {
		if m.ID == messageID {
			u.Messages = append(u.Messages[:i], u.Messages[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var (
	_ repository.UserRepository    = (*memoryStore)(nil)
	_ repository.MessageRepository = (*memoryStore)(nil)
)
