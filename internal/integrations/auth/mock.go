package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/models"
)

// MockUser is returned by every Mock sign-in.
var MockUser = models.User{
	ID:       "mock-user-id",
	Email:    "mock@example.com",
	FullName: "Mock User",
}

const mockTokenLifetime = time.Hour

type mockClaims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// Mock is an offline provider that issues HS256 tokens for MockUser.
type Mock struct {
	secret []byte
	now    func() time.Time
}

func NewMock(secret string) *Mock {
	return &Mock{secret: []byte(secret), now: time.Now}
}

func (m *Mock) issue(user models.User) (models.AuthSession, error) {
	now := m.now()
	expires := now.Add(mockTokenLifetime)
	claims := mockClaims{
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    constants.AppName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return models.AuthSession{AccessToken: token, ExpiresAt: expires.UTC(), User: user}, nil
}

func (m *Mock) SignIn(_ context.Context, _, _ string) (models.AuthSession, error) {
	return m.issue(MockUser)
}

func (m *Mock) SignUp(_ context.Context, email, _, fullName string) (models.AuthSession, error) {
	user := MockUser
	user.Email = email
	if fullName != "" {
		user.FullName = fullName
	}
	return m.issue(user)
}

func (m *Mock) SignOut(context.Context, string) error { return nil }

func (m *Mock) CurrentUser(_ context.Context, accessToken string) (models.User, error) {
	var claims mockClaims
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(constants.AppName),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrNotSignedIn, err)
	}
	return models.User{ID: claims.Subject, Email: claims.Email, FullName: claims.FullName}, nil
}

func (m *Mock) Profile(ctx context.Context, accessToken, userID string) (models.Profile, error) {
	user, err := m.CurrentUser(ctx, accessToken)
	if err != nil {
		return models.Profile{}, err
	}
	if user.ID != userID {
		return models.Profile{}, ErrProfileNotFound
	}
	return models.Profile{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Preferences: &models.Preferences{Theme: "light", Language: "en", Notifications: true},
	}, nil
}
