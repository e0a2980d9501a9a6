package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobrayao-blip/mediation/internal/model"
	"github.com/cobrayao-blip/mediation/internal/storage"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, storage.Storage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	return NewAuthenticator(store, "test-secret", time.Hour), store
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, VerifyPassword("s3cret!", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("s3cret!", "not-a-hash"))
}

func TestTokenRoundTrip(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	token, err := a.SignToken("u1", model.RoleMentor)
	require.NoError(t, err)

	claims := a.VerifyToken(token)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, model.RoleMentor, claims.Role)
}

func TestVerifyTokenRejects(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	// 篡改的与空 Token
	assert.Nil(t, a.VerifyToken(""))
	assert.Nil(t, a.VerifyToken("not.a.token"))

	// 其他密钥签出的 Token
	other := NewAuthenticator(storage.NewMemoryStorage(), "another-secret", time.Hour)
	token, err := other.SignToken("u1", model.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, a.VerifyToken(token))

	// 已过期的 Token
	expired := NewAuthenticator(storage.NewMemoryStorage(), "test-secret", -time.Minute)
	token, err = expired.SignToken("u1", model.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, a.VerifyToken(token))
}

func TestLogin(t *testing.T) {
	a, store := newTestAuthenticator(t)

	hash, err := HashPassword("pass123")
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(&model.User{
		ID:           "u1",
		Name:         "张三",
		Email:        "zhangsan@example.com",
		Phone:        "13800000000",
		Role:         model.RoleEmployee,
		Status:       model.StatusActive,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}))

	// 邮箱登录
	token, user, err := a.Login("zhangsan@example.com", "pass123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u1", user.ID)

	// 手机号登录
	_, _, err = a.Login("13800000000", "pass123")
	require.NoError(t, err)

	// 密码错误与用户不存在返回同一个错误
	_, _, err = a.Login("zhangsan@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = a.Login("nobody@example.com", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	a, store := newTestAuthenticator(t)

	hash, err := HashPassword("pass123")
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(&model.User{
		ID:           "u1",
		Name:         "停用用户",
		Email:        "disabled@example.com",
		Role:         model.RoleEmployee,
		Status:       model.StatusDisabled,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}))

	_, _, err = a.Login("disabled@example.com", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
