package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/julianstephens/mindfulpath/internal/integrations/httpapi"
	"github.com/julianstephens/mindfulpath/internal/models"
)

// Supabase talks to GoTrue for auth and PostgREST for profiles.
type Supabase struct {
	client *httpapi.Client
	now    func() time.Time
}

func NewSupabase(baseURL, anonKey string, timeout time.Duration) *Supabase {
	c := httpapi.New("supabase", baseURL, timeout)
	c.Header.Set("apikey", anonKey)
	return &Supabase{client: c, now: time.Now}
}

type goTrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

func (u goTrueUser) model() models.User {
	return models.User{ID: u.ID, Email: u.Email, FullName: u.UserMetadata.FullName}
}

type goTrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	ExpiresAt    int64      `json:"expires_at"`
	User         goTrueUser `json:"user"`

	// signup without a session returns the bare user
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s *Supabase) session(resp goTrueSession) models.AuthSession {
	out := models.AuthSession{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User.model(),
	}
	switch {
	case resp.ExpiresAt > 0:
		out.ExpiresAt = time.Unix(resp.ExpiresAt, 0).UTC()
	case resp.ExpiresIn > 0:
		out.ExpiresAt = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).UTC()
	}
	if out.User.ID == "" {
		out.User.ID, out.User.Email = resp.ID, resp.Email
	}
	return out
}

func (s *Supabase) SignIn(ctx context.Context, email, password string) (models.AuthSession, error) {
	var resp goTrueSession
	body := map[string]string{"email": email, "password": password}
	if err := s.client.Do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", body, &resp); err != nil {
		return models.AuthSession{}, err
	}
	return s.session(resp), nil
}

func (s *Supabase) SignUp(ctx context.Context, email, password, fullName string) (models.AuthSession, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	}
	var resp goTrueSession
	if err := s.client.Do(ctx, http.MethodPost, "/auth/v1/signup", body, &resp); err != nil {
		return models.AuthSession{}, err
	}
	return s.session(resp), nil
}

func (s *Supabase) SignOut(ctx context.Context, accessToken string) error {
	return s.bearer(accessToken).Do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil)
}

func (s *Supabase) CurrentUser(ctx context.Context, accessToken string) (models.User, error) {
	var u goTrueUser
	if err := s.bearer(accessToken).Do(ctx, http.MethodGet, "/auth/v1/user", nil, &u); err != nil {
		var se *httpapi.StatusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return models.User{}, ErrNotSignedIn
		}
		return models.User{}, err
	}
	return u.model(), nil
}

func (s *Supabase) Profile(ctx context.Context, accessToken, userID string) (models.Profile, error) {
	q := url.Values{"id": {"eq." + userID}, "select": {"*"}}
	var rows []models.Profile
	if err := s.bearer(accessToken).Do(ctx, http.MethodGet, "/rest/v1/profiles?"+q.Encode(), nil, &rows); err != nil {
		return models.Profile{}, err
	}
	if len(rows) == 0 {
		return models.Profile{}, ErrProfileNotFound
	}
	return rows[0], nil
}

func (s *Supabase) bearer(token string) *httpapi.Client {
	return s.client.WithHeader("Authorization", "Bearer "+token)
}
