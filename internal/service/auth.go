package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
	"github.com/langchou/autocheck/pkg/token"
)

// UserStore 认证服务需要的用户存取能力
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService 注册/登录/令牌刷新与注销
type AuthService struct {
	logger    *zap.Logger
	users     UserStore
	tokens    *token.Issuer
	blacklist token.Blacklist
}

// NewAuthService 创建认证服务
func NewAuthService(logger *zap.Logger, users UserStore, tokens *token.Issuer, blacklist token.Blacklist) *AuthService {
	return &AuthService{
		logger:    logger,
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
	}
}

// SignupInput 注册请求
type SignupInput struct {
	Username       string
	Email          string
	FirstName      string
	LastName       string
	Password       string
	RepeatPassword string
}

// Signup 注册用户并直接签发令牌对
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, *token.Pair, error) {
	if in.Password != in.RepeatPassword {
		return nil, nil, apperrors.WithFields(apperrors.CodeInvalid, "passwords must match",
			map[string]string{"password": "Passwords must match."})
	}
	if fields := ValidatePassword(in.Password, in.Username, in.Email); len(fields) > 0 {
		return nil, nil, apperrors.WithFields(apperrors.CodeInvalid, "password is too weak", fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, "hash password", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, "issue tokens", err)
	}

	s.logger.Info("user signed up", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, pair, nil
}

// Signin 校验用户名密码并签发令牌对
func (s *AuthService) Signin(ctx context.Context, username, password string) (*token.Pair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return nil, apperrors.New(apperrors.CodeUnauthenticated, "invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "invalid credentials")
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "issue tokens", err)
	}
	return pair, nil
}

// Refresh 用刷新令牌换取新的访问令牌，黑名单中的令牌被拒绝
func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.tokens.Verify(refresh, token.TypeRefresh)
	if err != nil {
		return "", err
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "check blacklist", err)
	}
	if revoked {
		return "", apperrors.New(apperrors.CodeUnauthenticated, "token has been revoked")
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", err
	}

	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, "issue access token", err)
	}
	return access, nil
}

// Logout 将刷新令牌拉黑。任何失败都吞掉，注销对调用方总是成功
func (s *AuthService) Logout(ctx context.Context, refresh string) {
	claims, err := s.tokens.Verify(refresh, token.TypeRefresh)
	if err != nil {
		s.logger.Debug("logout with invalid refresh token", zap.Error(err))
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("failed to blacklist refresh token", zap.Error(err))
	}
}
