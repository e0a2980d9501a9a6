package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims JWT 负载：用户 ID 与角色
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator 负责密码校验与 Token 签发
type Authenticator struct {
	store  storage.Storage
	secret []byte
	ttl    time.Duration
}

func NewAuthenticator(store storage.Storage, secret string, ttl time.Duration) *Authenticator {
	if secret == "" {
		secret = "mediation-dev-secret-change-in-prod"
	}
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Authenticator{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (a *Authenticator) SignToken(userID, role string) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyToken 无效或过期的 Token 返回 nil
func (a *Authenticator) VerifyToken(tokenString string) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// Login 邮箱/手机号 + 密码登录，仅限 active 用户。
// 用户不存在与密码错误返回同一个错误，不泄露哪一步失败。
func (a *Authenticator) Login(emailOrPhone, password string) (string, *model.User, error) {
	user, err := a.store.GetUserByEmailOrPhone(emailOrPhone)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.Status != model.StatusActive {
		return "", nil, ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := a.SignToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
