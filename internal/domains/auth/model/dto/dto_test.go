package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/infras/jwt"
	"hotelier/internal/domains/auth/model/dto"
	"hotelier/permissions"
	"hotelier/shared/timezone"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	fullName := "New Employee"

	req := dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "plain-password",
		FullName: &fullName,
	}

	user := req.ToUserModel("guest", "hashed-password")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, permissions.RoleEmployee, user.Role)
	assert.Equal(t, &fullName, user.FullName)
	assert.True(t, user.Active)
	assert.Equal(t, "guest", user.CreatedBy)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestUpdateLastLoginRequest(t *testing.T) {
	now := timezone.Now()

	req := dto.UpdateLastLoginRequest{
		LastLogin: now,
	}

	assert.Equal(t, now, req.LastLogin)
}

func TestUpdatePasswordRequest(t *testing.T) {
	hashedPassword := "hashed-new-password"

	req := dto.UpdatePasswordRequest{
		Password: hashedPassword,
	}

	assert.Equal(t, hashedPassword, req.Password)
}
