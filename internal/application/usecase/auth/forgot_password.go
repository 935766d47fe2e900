// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fianzas-manager/backend/internal/application/adapter"
)

// ForgotPasswordInput represents the input for a password reset request.
type ForgotPasswordInput struct {
	Email      string
	AppBaseURL string
}

// ForgotPasswordOutput represents the output of a password reset request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase handles password reset requests.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailService      adapter.EmailService
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailService adapter.EmailService,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
	}
}

// Execute issues a reset token and queues the reset email. The response is
// identical whether or not the email is registered, to prevent enumeration.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	const message = "If the email is registered, a reset link has been sent"

	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		// Unknown email: respond as if the mail went out.
		return &ForgotPasswordOutput{Message: message}, nil
	}

	resetToken, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", input.AppBaseURL, resetToken.Token)
	if err := uc.emailService.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.Name,
		ResetURL:  resetURL,
		ExpiresIn: "1 hour",
	}); err != nil {
		// Queueing failure must not leak whether the email exists.
		slog.Error("Failed to queue password reset email", "error", err)
	}

	return &ForgotPasswordOutput{Message: message}, nil
}
