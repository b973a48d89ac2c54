// Package auth signs users in against Supabase or a local mock and keeps
// the resulting tokens in the OS keyring.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/keyring"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
)

var (
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidCredentials = errors.New("email and password are required")
	ErrProfileNotFound    = errors.New("profile not found")
)

type Provider interface {
	SignIn(ctx context.Context, email, password string) (models.AuthSession, error)
	SignUp(ctx context.Context, email, password, fullName string) (models.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (models.User, error)
	Profile(ctx context.Context, accessToken, userID string) (models.Profile, error)
}

// TokenStore persists the access and refresh tokens between invocations.
type TokenStore interface {
	Save(session models.AuthSession) error
	AccessToken() (string, error)
	Clear() error
}

// KeyringTokens stores tokens in the OS keyring.
type KeyringTokens struct{}

func (KeyringTokens) Save(session models.AuthSession) error {
	if err := keyring.Set(constants.KeyringAccessToken, session.AccessToken); err != nil {
		return err
	}
	if session.RefreshToken == "" {
		return nil
	}
	return keyring.Set(constants.KeyringRefreshToken, session.RefreshToken)
}

func (KeyringTokens) AccessToken() (string, error) {
	token, err := keyring.Get(constants.KeyringAccessToken)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotSignedIn
	}
	return token, err
}

func (KeyringTokens) Clear() error {
	for _, name := range []string{constants.KeyringAccessToken, constants.KeyringRefreshToken} {
		if err := keyring.Delete(name); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}
	return nil
}

// Client ties a Provider to a TokenStore so commands can act on the
// signed-in user without handling tokens.
type Client struct {
	Provider Provider
	Tokens   TokenStore
}

func NewClient(p Provider, tokens TokenStore) *Client {
	return &Client{Provider: p, Tokens: tokens}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (models.AuthSession, error) {
	if email == "" || password == "" {
		return models.AuthSession{}, ErrInvalidCredentials
	}
	session, err := c.Provider.SignIn(ctx, email, password)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("sign in failed: %w", err)
	}
	if err := c.Tokens.Save(session); err != nil {
		return models.AuthSession{}, fmt.Errorf("failed to store session: %w", err)
	}
	logger.Info("Signed in", "user", session.User.ID)
	return session, nil
}

// SignUp registers a new account. Tokens are stored only when the provider
// returns a session (it may require email confirmation first).
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (models.AuthSession, error) {
	if email == "" || password == "" {
		return models.AuthSession{}, ErrInvalidCredentials
	}
	session, err := c.Provider.SignUp(ctx, email, password, fullName)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("sign up failed: %w", err)
	}
	if session.AccessToken != "" {
		if err := c.Tokens.Save(session); err != nil {
			return models.AuthSession{}, fmt.Errorf("failed to store session: %w", err)
		}
	}
	logger.Info("Signed up", "user", session.User.ID)
	return session, nil
}

// SignOut revokes the session remotely and always clears local tokens.
func (c *Client) SignOut(ctx context.Context) error {
	token, err := c.Tokens.AccessToken()
	if err != nil {
		return err
	}
	remoteErr := c.Provider.SignOut(ctx, token)
	if remoteErr != nil {
		logger.Warn("Remote sign out failed", "error", remoteErr)
	}
	if err := c.Tokens.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	token, err := c.Tokens.AccessToken()
	if err != nil {
		return models.User{}, err
	}
	return c.Provider.CurrentUser(ctx, token)
}

func (c *Client) Profile(ctx context.Context) (models.Profile, error) {
	token, err := c.Tokens.AccessToken()
	if err != nil {
		return models.Profile{}, err
	}
	user, err := c.Provider.CurrentUser(ctx, token)
	if err != nil {
		return models.Profile{}, err
	}
	return c.Provider.Profile(ctx, token, user.ID)
}
