package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/memory"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
)

const (
	SessionLifetime = 30 * 24 * time.Hour
	// Sessions with less than this left are pushed out by SessionLifetime.
	sessionRefreshThreshold = 15 * 24 * time.Hour
)

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type SessionValidationResult struct {
	User    *entity.User
	Session *entity.Session
}

type IAuthService interface {
	CreateSession(ctx context.Context, userId int64) (token string, session *entity.Session, err error)
	ValidateSessionToken(ctx context.Context, token string) (*SessionValidationResult, error)
	InvalidateSession(ctx context.Context, sessionId string) error
	InvalidateUserSessions(ctx context.Context, userId int64) error
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.SessionRepository
	logger     logger.ILogger
	now        func() time.Time
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cache *memory.SessionRepository, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateSessionToken returns 20 random bytes as lowercase base32.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToLower(tokenEncoding.EncodeToString(b)), nil
}

// SessionIDFromToken derives the stored session id. Only the hash is kept in
// the database.
func SessionIDFromToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *authService) CreateSession(ctx context.Context, userId int64) (string, *entity.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", nil, err
	}

	session := &entity.Session{
		Id:        SessionIDFromToken(token),
		UserId:    userId,
		ExpiresAt: s.now().Add(SessionLifetime),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return "", nil, err
	}
	return token, session, nil
}

func (s *authService) ValidateSessionToken(ctx context.Context, token string) (*SessionValidationResult, error) {
	if token == "" {
		return nil, apperror.Unauthenticated("missing session")
	}
	sessionId := SessionIDFromToken(token)
	now := s.now()

	if s.cache != nil {
		if cached, ok := s.cache.Get(sessionId); ok && now.Before(cached.Session.ExpiresAt) {
			return &SessionValidationResult{User: cached.User, Session: cached.Session}, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.BySessionID{ID: sessionId})
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Unauthenticated("invalid session")
	}
	if err != nil {
		return nil, err
	}

	if !now.Before(session.ExpiresAt) {
		if err := uow.SessionRepository().Delete(ctx, session.Id); err != nil {
			s.logger.Warn("AUTH", "Failed to delete expired session", map[string]interface{}{"error": err.Error()})
		}
		s.forget(session.Id)
		return nil, apperror.Unauthenticated("session expired")
	}

	if session.ExpiresAt.Sub(now) < sessionRefreshThreshold {
		session.ExpiresAt = now.Add(SessionLifetime)
		if err := uow.SessionRepository().Update(ctx, session); err != nil {
			return nil, err
		}
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: session.UserId})
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Unauthenticated("invalid session")
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Save(&memory.CachedSession{Session: session, User: user})
	}
	return &SessionValidationResult{User: user, Session: session}, nil
}

func (s *authService) InvalidateSession(ctx context.Context, sessionId string) error {
	s.forget(sessionId)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SessionRepository().Delete(ctx, sessionId)
}

func (s *authService) InvalidateUserSessions(ctx context.Context, userId int64) error {
	if s.cache != nil {
		s.cache.DeleteUser(userId)
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := uow.SessionRepository().DeleteAll(ctx, specification.UserOwnedBy{UserID: userId})
	return err
}

func (s *authService) forget(sessionId string) {
	if s.cache != nil {
		s.cache.Delete(sessionId)
	}
}
