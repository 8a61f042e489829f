// Package auth validates account input and hashes credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hyperifyio/clauseease/internal/store"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// Cost is the bcrypt work factor used by HashPassword.
var Cost = bcrypt.DefaultCost

// ErrInvalidCredentials is returned by Authenticate for an unknown email or
// a wrong password. The two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid email or password")

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError carries a message that is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) ([]byte, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// ValidateEmail checks the address shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return invalid("Please enter a valid email address.")
	}
	return nil
}

func validatePassword(password, confirm string) error {
	if password != confirm {
		return invalid("Passwords do not match.")
	}
	if len([]rune(password)) < MinPasswordLength {
		return invalid(fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength))
	}
	return nil
}

// Registration is the input of the sign-up form.
type Registration struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ValidateRegistration checks that every field is present, the email is
// well formed and the passwords match.
func ValidateRegistration(r Registration) error {
	for _, f := range []string{r.FirstName, r.LastName, r.Email, r.Password, r.ConfirmPassword} {
		if strings.TrimSpace(f) == "" {
			return invalid("Please fill in all fields.")
		}
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password, r.ConfirmPassword)
}

// PasswordChange is the input of the password reset form.
type PasswordChange struct {
	Email           string `json:"email"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ValidatePasswordChange checks a password reset request.
func ValidatePasswordChange(p PasswordChange) error {
	if strings.TrimSpace(p.Email) == "" || p.NewPassword == "" || p.ConfirmPassword == "" {
		return invalid("Please fill in all fields.")
	}
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	return validatePassword(p.NewPassword, p.ConfirmPassword)
}

// Users is the part of the store auth needs.
type Users interface {
	UserByEmail(ctx context.Context, email string) (store.User, error)
	CreateUser(ctx context.Context, nu store.NewUser) (store.User, error)
	UpdatePasswordHash(ctx context.Context, email string, hash []byte) error
	SetAdmin(ctx context.Context, email string, admin bool) error
}

// Register validates r and creates a regular account.
func Register(ctx context.Context, users Users, r Registration) (store.User, error) {
	if err := ValidateRegistration(r); err != nil {
		return store.User{}, err
	}
	hash, err := HashPassword(r.Password)
	if err != nil {
		return store.User{}, err
	}
	return users.CreateUser(ctx, store.NewUser{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: hash,
	})
}

// Authenticate returns the user for a matching email and password.
func Authenticate(ctx context.Context, users Users, email, password string) (store.User, error) {
	u, err := users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return store.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// ChangePassword validates p and stores the new hash. An unknown email
// yields store.ErrNotFound.
func ChangePassword(ctx context.Context, users Users, p PasswordChange) error {
	if err := ValidatePasswordChange(p); err != nil {
		return err
	}
	hash, err := HashPassword(p.NewPassword)
	if err != nil {
		return err
	}
	return users.UpdatePasswordHash(ctx, p.Email, hash)
}

// EnsureAdmin makes sure an administrator account exists for email. An
// existing account is promoted and, when password is non-empty, its
// password is replaced. It reports whether a new account was created.
func EnsureAdmin(ctx context.Context, users Users, email, password string) (bool, error) {
	if err := ValidateEmail(email); err != nil {
		return false, err
	}
	_, err := users.UserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := users.SetAdmin(ctx, email, true); err != nil {
			return false, err
		}
		if password == "" {
			return false, nil
		}
		if err := validatePassword(password, password); err != nil {
			return false, err
		}
		hash, err := HashPassword(password)
		if err != nil {
			return false, err
		}
		return false, users.UpdatePasswordHash(ctx, email, hash)
	case errors.Is(err, store.ErrNotFound):
		if err := validatePassword(password, password); err != nil {
			return false, err
		}
		hash, err := HashPassword(password)
		if err != nil {
			return false, err
		}
		if _, err := users.CreateUser(ctx, store.NewUser{
			FirstName:    "Admin",
			LastName:     "User",
			Email:        email,
			PasswordHash: hash,
			IsAdmin:      true,
		}); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, fmt.Errorf("lookup admin: %w", err)
	}
}
