package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockledger/internal/auth"
	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
)

const minPasswordLength = 6

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, u domain.User) error
}

type TokenIssuer interface {
	Issue(owner domain.Owner) (string, time.Time, error)
}

type Credentials struct {
	Email                string
	Password             string
	PasswordConfirmation string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Owner     domain.Owner
}

type UserService struct {
	repo   Repository
	tokens TokenIssuer
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
	hash   func(password string) (string, error)
	check  func(hash, password string) (bool, error)
}

func NewService(repo Repository, tokens TokenIssuer, logger *zap.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		hash:   auth.HashPassword,
		check:  auth.CheckPassword,
	}
}

func (s *UserService) Register(ctx context.Context, in Credentials) (*Session, error) {
	email := normalizeEmail(in.Email)
	if err := validateRegistration(email, in); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to register user", err)
	}

	u := domain.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("userId", u.ID))
	return s.session(u.Owner())
}

// Login answers unknown emails and wrong passwords with the same error.
func (s *UserService) Login(ctx context.Context, in Credentials) (*Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if _, notFound := apperrors.IsNotFoundError(err); notFound {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.check(u.PasswordHash, in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to verify credentials", err)
	}
	if !ok {
		s.logger.Info("login rejected", zap.String("userId", u.ID))
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	return s.session(u.Owner())
}

func (s *UserService) session(owner domain.Owner) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(owner)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Owner: owner}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(email string, in Credentials) error {
	var details []apperrors.ValidationDetail

	if email == "" {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email is required"})
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email is not a valid address"})
	}

	if len(in.Password) < minPasswordLength {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password must have at least 6 characters"})
	}

	if in.Password != in.PasswordConfirmation {
		details = append(details, apperrors.ValidationDetail{Field: "passwordConfirmation", Message: "passwords do not match"})
	}

	if len(details) == 0 {
		return nil
	}

	message := "validation failed"
	if len(details) == 1 {
		message = details[0].Message
	}
	return apperrors.NewValidationError(message, details...)
}
