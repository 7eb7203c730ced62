package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"doctama-backoffice/internal/gateway"
	"doctama-backoffice/internal/model"
	"doctama-backoffice/internal/session"
)

const minPasswordLength = 6

type AuthGateway interface {
	Login(ctx context.Context, req gateway.LoginRequest) (*model.User, string, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (*model.User, string, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Register(ctx context.Context, fullName, email, password, confirm string) (*model.User, error)
	Logout()
	CurrentUser() *model.User
}

type authServiceImpl struct {
	gateway AuthGateway
	session *session.Manager
	logger  *zap.Logger
}

func NewAuthService(gw AuthGateway, sess *session.Manager, logger *zap.Logger) AuthService {
	return &authServiceImpl{gateway: gw, session: sess, logger: logger}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*model.User, error) {
	verr := newValidationError()
	if strings.TrimSpace(email) == "" {
		verr.add("email", "email is required")
	}
	if password == "" {
		verr.add("password", "password is required")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	user, token, err := s.gateway.Login(ctx, gateway.LoginRequest{Email: email, Password: password})
	if err != nil {
		// a 401 here is a wrong password, not an expired session
		if errors.Is(err, gateway.ErrUnauthorized) {
			verr := newValidationError()
			verr.add("credentials", "invalid email or password")
			return nil, verr
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.session.Set(user, token); err != nil {
		return nil, err
	}
	s.logger.Info("logged in", zap.String("email", user.Email))
	return user, nil
}

func (s *authServiceImpl) Register(ctx context.Context, fullName, email, password, confirm string) (*model.User, error) {
	verr := newValidationError()
	if strings.TrimSpace(fullName) == "" {
		verr.add("fullName", "full name is required")
	}
	if strings.TrimSpace(email) == "" {
		verr.add("email", "email is required")
	}
	if len(password) < minPasswordLength {
		verr.add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if password != confirm {
		verr.add("confirmPassword", "passwords do not match")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	user, token, err := s.gateway.Register(ctx, gateway.RegisterRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			verr := newValidationError()
			verr.add("credentials", "registration was rejected, check your details")
			return nil, verr
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := s.session.Set(user, token); err != nil {
		return nil, err
	}
	s.logger.Info("registered", zap.String("email", user.Email))
	return user, nil
}

func (s *authServiceImpl) Logout() {
	s.session.Clear()
}

func (s *authServiceImpl) CurrentUser() *model.User {
	return s.session.User()
}
