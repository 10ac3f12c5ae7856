package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/langchou/autocheck/internal/apperrors"
)

// 令牌类型
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims JWT 载荷，typ 区分访问/刷新令牌
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// Pair 一对访问/刷新令牌
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issuer 令牌签发与验证器，HS256 签名
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer 创建令牌签发器
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock 注入时钟，测试用
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// IssueAccess 签发访问令牌
func (i *Issuer) IssueAccess(userID int64) (string, error) {
	return i.issue(userID, TypeAccess, i.accessTTL, "")
}

// IssuePair 签发访问/刷新令牌对，刷新令牌带随机 jti 供黑名单使用
func (i *Issuer) IssuePair(userID int64) (*Pair, error) {
	access, err := i.issue(userID, TypeAccess, i.accessTTL, "")
	if err != nil {
		return nil, err
	}

	jti, err := randomID()
	if err != nil {
		return nil, err
	}
	refresh, err := i.issue(userID, TypeRefresh, i.refreshTTL, jti)
	if err != nil {
		return nil, err
	}

	return &Pair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) issue(userID int64, typ string, ttl time.Duration, jti string) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
		TokenType: typ,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify 验证令牌签名、有效期和类型，返回载荷
func (i *Issuer) Verify(tokenStr, wantType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnauthenticated, "invalid or expired token", err)
	}
	if claims.TokenType != wantType {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "unexpected token type")
	}
	return claims, nil
}

// UserID 从载荷取用户 ID
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUnauthenticated, "invalid token subject", err)
	}
	return id, nil
}

func randomID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
