package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/lumina/internal/auth"
	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
	"github.com/rohits-web03/lumina/internal/utils"
)

const verificationCodeDigits = 6

// RegisterInput represents data required to create an account.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Token is the bearer credential returned by login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserService owns registration, login, identity resolution and profile changes.
type UserService struct {
	store    *repositories.Store
	tokens   *auth.TokenIssuer
	notifier Notifier
}

func NewUserService(store *repositories.Store, tokens *auth.TokenIssuer, notifier Notifier) *UserService {
	return &UserService{store: store, tokens: tokens, notifier: notifier}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}
	if strings.TrimSpace(input.Role) == "" {
		input.Role = models.RoleUser
	}
	if err := checkLen("username", input.Username, models.MaxNameLen); err != nil {
		return nil, err
	}
	if err := checkLen("email", input.Email, models.MaxNameLen); err != nil {
		return nil, err
	}
	if err := checkLen("role", input.Role, models.MaxNameLen); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
	}

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := ensureAvailable(ctx, tx.Users(), "username", user.Username, 0); err != nil {
			return err
		}
		if err := ensureAvailable(ctx, tx.Users(), "email", user.Email, 0); err != nil {
			return err
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair. Every failure looks the same to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !auth.VerifyPassword(password, user.Password) {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Login authenticates and issues a bearer token with the configured lifetime.
func (s *UserService) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.IssueToken(user)
}

func (s *UserService) IssueToken(user *models.User) (*Token, error) {
	signed, err := s.tokens.IssueToken(user.ID, s.tokens.TTL())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, TokenType: "bearer"}, nil
}

// Resolve maps a bearer token to a live user. Tokens of deleted users are rejected.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {
	id, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.store.Users().FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.store.Users().FindByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.Users().FindByEmail(ctx, strings.TrimSpace(email))
}

// RegisterExternal creates an account for an identity verified by an OAuth
// provider. The password is random, so the account can only sign in through
// the provider until the user sets one. A taken username gets a short suffix.
func (s *UserService) RegisterExternal(ctx context.Context, email, name string, emailVerified bool) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: provider returned no email", ErrValidation)
	}
	username := strings.TrimSpace(name)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}
	// leave room for the "-xxxxxx" suffix
	if r := []rune(username); len(r) > models.MaxNameLen-7 {
		username = string(r[:models.MaxNameLen-7])
	}
	if err := checkLen("email", email, models.MaxNameLen); err != nil {
		return nil, err
	}

	secret, err := utils.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hashed, err := auth.HashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:          email,
		Password:       hashed,
		EmailValidated: emailVerified,
		Role:           models.RoleUser,
	}
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := ensureAvailable(ctx, tx.Users(), "email", email, 0); err != nil {
			return err
		}
		taken, err := tx.Users().Exists(ctx, "username", username, 0)
		if err != nil {
			return err
		}
		if taken {
			username = username + "-" + uuid.NewString()[:6]
		}
		user.Username = username
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUsername(ctx context.Context, user *models.User, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if err := checkLen("username", username, models.MaxNameLen); err != nil {
		return nil, err
	}
	return s.update(ctx, user.ID, func(tx *repositories.Store, u *models.User) error {
		if err := ensureAvailable(ctx, tx.Users(), "username", username, u.ID); err != nil {
			return err
		}
		u.Username = username
		return nil
	})
}

// UpdatePassword rehashes the password and revokes email validation and notifications.
func (s *UserService) UpdatePassword(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.update(ctx, user.ID, func(_ *repositories.Store, u *models.User) error {
		u.Password = hashed
		revokeValidation(u)
		return nil
	})
}

// UpdateEmail changes the address and revokes email validation and notifications.
func (s *UserService) UpdateEmail(ctx context.Context, user *models.User, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if err := checkLen("email", email, models.MaxNameLen); err != nil {
		return nil, err
	}
	return s.update(ctx, user.ID, func(tx *repositories.Store, u *models.User) error {
		if err := ensureAvailable(ctx, tx.Users(), "email", email, u.ID); err != nil {
			return err
		}
		u.Email = email
		u.VerificationCode = nil
		revokeValidation(u)
		return nil
	})
}

func (s *UserService) SetRollover(ctx context.Context, user *models.User, enabled bool) (*models.User, error) {
	return s.update(ctx, user.ID, func(_ *repositories.Store, u *models.User) error {
		u.Rollover = enabled
		return nil
	})
}

// SetNotifications toggles reminder emails. Enabling requires a validated email.
func (s *UserService) SetNotifications(ctx context.Context, user *models.User, enabled bool) (*models.User, error) {
	return s.update(ctx, user.ID, func(_ *repositories.Store, u *models.User) error {
		if enabled && !u.EmailValidated {
			return fmt.Errorf("%w: verify your email before enabling notifications", ErrValidation)
		}
		u.NotificationsEnabled = enabled
		return nil
	})
}

// SendVerificationCode stores a fresh one-time code and mails it to the user.
func (s *UserService) SendVerificationCode(ctx context.Context, user *models.User) error {
	code, err := utils.GenerateNumericCode(verificationCodeDigits)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	updated, err := s.update(ctx, user.ID, func(_ *repositories.Store, u *models.User) error {
		u.VerificationCode = &code
		return nil
	})
	if err != nil {
		return err
	}

	subject, body := verificationMessage(code)
	if err := s.notifier.Send(ctx, updated.Email, subject, body); err != nil {
		log.Printf("send verification code to user %d: %v", updated.ID, err)
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// ValidateEmail compares code with the stored one-time code and consumes it on success.
func (s *UserService) ValidateEmail(ctx context.Context, user *models.User, code string) (*models.User, error) {
	return s.update(ctx, user.ID, func(_ *repositories.Store, u *models.User) error {
		if u.VerificationCode == nil || *u.VerificationCode != code {
			return fmt.Errorf("%w: invalid verification code", ErrValidation)
		}
		u.EmailValidated = true
		u.VerificationCode = nil
		return nil
	})
}

// Delete removes the account and everything it owns. Shared tags are kept.
func (s *UserService) Delete(ctx context.Context, user *models.User) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Todos().DeleteAllFor(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Diaries().DeleteAllFor(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Notes().DeleteAllFor(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.Goals().DeleteAllFor(ctx, user.ID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, user.ID)
	})
}

// update reloads the user inside a transaction, applies mutate and saves.
func (s *UserService) update(ctx context.Context, id uint, mutate func(tx *repositories.Store, u *models.User) error) (*models.User, error) {
	var updated *models.User
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(tx, u); err != nil {
			return err
		}
		if err := tx.Users().Save(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func ensureAvailable(ctx context.Context, users *repositories.UserRepository, column, value string, exceptID uint) error {
	taken, err := users.Exists(ctx, column, value, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s is already taken", ErrConflict, column)
	}
	return nil
}

func revokeValidation(u *models.User) {
	u.EmailValidated = false
	u.NotificationsEnabled = false
}
