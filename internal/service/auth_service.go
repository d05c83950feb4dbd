package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"mailtrack/internal/model"
	"mailtrack/internal/mq"
	"mailtrack/internal/util"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type authUserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	TouchLogin(ctx context.Context, email, provider string) error
}

type AuthService struct {
	users     authUserStore
	producer  eventPublisher
	jwtSecret string
	log       *zap.Logger
}

func NewAuthService(users authUserStore, producer eventPublisher, jwtSecret string, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		producer:  producer,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// Register creates a new user.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	if s.producer != nil {
		ev := mq.UserRegisteredEvent{Email: u.Email, CreatedAt: u.CreatedAt}
		if perr := s.producer.Publish(mq.RoutingKeyUserRegistered, ev); perr != nil {
			s.log.Warn("failed to publish registration event", zap.Error(perr))
		}
	}

	return u, nil
}

// Login checks credentials, refreshes sign-in bookkeeping and returns
// a session token for the cookie.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil || !util.CheckPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	if err := s.users.TouchLogin(ctx, email, "credentials"); err != nil {
		return "", err
	}

	return util.GenerateSessionToken(u.Email, s.jwtSecret)
}
