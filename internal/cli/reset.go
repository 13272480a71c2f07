package cli

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"unicode/utf8"

	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/security"
	"github.com/terraincognita07/ciclo/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

type PasswordResetRepository interface {
	FindByNormalizedEmail(email string) (models.User, error)
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
}

type ResetOptions struct {
	Email string
	// Prompt reads the new password from Stdin without echo instead of
	// generating a temporary one.
	Prompt bool
	Stdin  *os.File
	Out    io.Writer
}

// ResetPassword replaces the password of the account with the given email.
// Generated passwords are temporary and flag the account to change it.
func ResetPassword(users PasswordResetRepository, options ResetOptions) error {
	email := services.NormalizeAuthEmail(options.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	out := options.Out
	if out == nil {
		out = os.Stdout
	}

	user, err := users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", email)
		}
		return fmt.Errorf("load user: %w", err)
	}

	password, temporary, err := resolvePassword(options, out)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, passwordHash, temporary); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "✅ Password reset successful")
	if temporary {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "User must change password on next login.")
	}
	return nil
}

func resolvePassword(options ResetOptions, out io.Writer) (string, bool, error) {
	if !options.Prompt {
		password, err := generateTemporaryPassword(12)
		if err != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", err)
		}
		return password, true, nil
	}

	stdin := options.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	fmt.Fprint(out, "New password: ")
	raw, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	password := string(raw)
	if err := validatePassword(password); err != nil {
		return "", false, err
	}
	return password, false, nil
}

func validatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < services.MinPasswordLength || length > services.MaxPasswordLength {
		return fmt.Errorf("password must be %d to %d characters", services.MinPasswordLength, services.MaxPasswordLength)
	}
	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomString(length, temporaryPasswordAlphabet)
}
