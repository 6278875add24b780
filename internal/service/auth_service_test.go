package service

import (
	"testing"
	"time"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperr"
	"go-inventory-api/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (AuthService, *gorm.DB) {
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepo(db), []byte("test-secret"), time.Hour), db
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, db := newAuthService(t)

	user, err := svc.Register(&model.RegisterRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	var stored model.User
	require.NoError(t, db.First(&stored, "username = ?", "alice").Error)
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.True(t, stored.CheckPassword("s3cret-pass"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&model.RegisterRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(&model.RegisterRequest{Username: "alice", Password: "other-pass1"})
	assertCode(t, err, apperr.CodeConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&model.RegisterRequest{Username: "alice", Password: "short"})
	assertCode(t, err, apperr.CodeValidation)
}

func TestTokenIssuesBearerToken(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(&model.RegisterRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	token, err := svc.Token("alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	claims, err := jwt.ValidateToken([]byte("test-secret"), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&model.RegisterRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Token("alice", "wrong-pass")
	assertCode(t, err, apperr.CodeAuth)

	_, err = svc.Token("nobody", "s3cret-pass")
	assertCode(t, err, apperr.CodeAuth)
}
