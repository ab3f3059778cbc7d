package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/google/uuid"
)

const tokenPrefix = "np_"

type userService struct {
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, observers ...UseCaseObserver) UserService {
	return &userService{users: users, observer: useCaseObserverOrNoop(observers)}
}

func (s *userService) EnsureLocalUser(ctx context.Context) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, domain.LocalUserID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	u = &domain.User{
		ID:          domain.LocalUserID,
		DisplayName: "Local",
		Language:    "vi",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) CreateUser(ctx context.Context, displayName string) (u *domain.User, token string, err error) {
	startedAt := time.Now()
	defer func() {
		id := ""
		if u != nil {
			id = u.ID
		}
		observe(ctx, s.observer, "create-user", id, startedAt, nil, err)
	}()

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, "", invalid("display name is required")
	}
	token = tokenPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")
	now := time.Now().UTC()
	u = &domain.User{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		Language:    "vi",
		TokenHash:   HashToken(token),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}
	u, err := s.users.GetByTokenHash(ctx, HashToken(token))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// HashToken returns the hex SHA-256 of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
