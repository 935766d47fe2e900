// Package auth contains authentication-related use cases.
package auth

import (
	"context"

	"github.com/fianzas-manager/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	AccessToken  string
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute performs the user logout: the refresh token is invalidated in the
// database and the access token is blacklisted until its natural expiry, so
// neither survives the logout. Errors are ignored because the tokens may
// already be invalid.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	_ = uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken)
	_ = uc.tokenService.RevokeAccessToken(ctx, input.AccessToken)

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
