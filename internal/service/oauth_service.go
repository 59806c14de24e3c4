package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"coursehub-be/internal/config"
	"coursehub-be/internal/dto"
	"coursehub-be/internal/entity"
	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/repository/specification"
	"coursehub-be/internal/repository/unitofwork"
	"coursehub-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	OAuthStateLifetime = 10 * time.Minute

	GoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

type IOAuthService interface {
	BeginGoogleLogin() (*dto.GoogleLoginStart, error)
	CompleteGoogleLogin(ctx context.Context, code, state, stateCookie string) (*dto.LoginResult, error)
}

// GoogleUserInfo is the subset of the OpenID userinfo document we use.
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// oauthStateClaims travel in a signed cookie between the redirect to Google
// and the callback.
type oauthStateClaims struct {
	State    string `json:"state"`
	Verifier string `json:"verifier"`
	jwt.RegisteredClaims
}

type oauthService struct {
	uowFactory  unitofwork.RepositoryFactory
	auth        IAuthService
	googleConf  *oauth2.Config
	stateSecret []byte
	userInfoURL string
	events      eventPublisher
	logger      logger.ILogger
}

func NewGoogleOAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	auth IAuthService,
	googleConf *oauth2.Config,
	stateSecret string,
	userInfoURL string,
	publisher events.Publisher,
	logger logger.ILogger,
) IOAuthService {
	return &oauthService{
		uowFactory:  uowFactory,
		auth:        auth,
		googleConf:  googleConf,
		stateSecret: []byte(stateSecret),
		userInfoURL: userInfoURL,
		events:      eventPublisher{publisher: publisher, logger: logger},
		logger:      logger,
	}
}

func (s *oauthService) BeginGoogleLogin() (*dto.GoogleLoginStart, error) {
	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()
	expiresAt := time.Now().Add(OAuthStateLifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, oauthStateClaims{
		State:    state,
		Verifier: verifier,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(s.stateSecret)
	if err != nil {
		return nil, fmt.Errorf("sign oauth state: %w", err)
	}

	return &dto.GoogleLoginStart{
		AuthURL:     s.googleConf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)),
		StateCookie: signed,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *oauthService) CompleteGoogleLogin(ctx context.Context, code, state, stateCookie string) (*dto.LoginResult, error) {
	if code == "" || state == "" || stateCookie == "" {
		return nil, apperror.ValidationFailed("state", "invalid oauth state")
	}

	var claims oauthStateClaims
	_, err := jwt.ParseWithClaims(stateCookie, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.stateSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.State != state {
		return nil, apperror.ValidationFailed("state", "invalid oauth state")
	}

	token, err := s.googleConf.Exchange(ctx, code, oauth2.VerifierOption(claims.Verifier))
	if err != nil {
		s.logger.Warn("OAUTH", "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Unauthenticated("failed to exchange authorization code")
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	userId, isNew, err := s.findOrCreateUser(ctx, info)
	if err != nil {
		return nil, err
	}

	if isNew {
		s.events.publish(ctx, events.UserRegistered, map[string]interface{}{
			"user_id": userId,
			"email":   info.Email,
		})
	}

	sessionToken, session, err := s.auth.CreateSession(ctx, userId)
	if err != nil {
		return nil, err
	}

	s.logger.Info("OAUTH", "User signed in with Google", map[string]interface{}{
		"user_id":  userId,
		"new_user": isNew,
	})

	return &dto.LoginResult{
		UserId:    userId,
		Token:     sessionToken,
		ExpiresAt: session.ExpiresAt,
		IsNewUser: isNew,
	}, nil
}

func (s *oauthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	client := s.googleConf.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("google userinfo status %d: %s", resp.StatusCode, body)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode google userinfo: %w", err)
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("google userinfo has no subject")
	}
	return &info, nil
}

// findOrCreateUser resolves the Google subject to a user. A user that
// already exists with the same email gets the Google account linked.
func (s *oauthService) findOrCreateUser(ctx context.Context, info *GoogleUserInfo) (int64, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, false, err
	}
	defer uow.Rollback()

	account, err := uow.UserRepository().FindAccount(ctx, specification.ByGoogleID{GoogleID: info.Sub})
	if err == nil {
		return account.UserId, false, uow.Commit()
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return 0, false, err
	}

	isNew := false
	var user *entity.User
	if info.Email != "" {
		user, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: info.Email})
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return 0, false, err
		}
	}

	if user == nil {
		user = &entity.User{}
		if info.Email != "" {
			email := info.Email
			user.Email = &email
		}
		if info.EmailVerified {
			now := time.Now()
			user.EmailVerified = &now
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return 0, false, err
		}
		isNew = true
	}

	googleId := info.Sub
	if err := uow.UserRepository().CreateAccount(ctx, &entity.Account{UserId: user.Id, GoogleId: &googleId}); err != nil {
		return 0, false, err
	}

	_, err = uow.UserRepository().FindProfile(ctx, specification.UserOwnedBy{UserID: user.Id})
	if errors.Is(err, apperror.ErrNotFound) {
		profile := &entity.Profile{UserId: user.Id}
		if info.Name != "" {
			name := info.Name
			profile.DisplayName = &name
		}
		if info.Picture != "" {
			picture := info.Picture
			profile.Image = &picture
		}
		err = uow.UserRepository().CreateProfile(ctx, profile)
	}
	if err != nil {
		return 0, false, err
	}

	if err := uow.Commit(); err != nil {
		return 0, false, err
	}
	return user.Id, isNew, nil
}
