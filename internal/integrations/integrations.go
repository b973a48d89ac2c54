// Package integrations builds the external collaborators selected by the
// configuration.
package integrations

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/mindfulpath/internal/config"
	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/integrations/auth"
	"github.com/julianstephens/mindfulpath/internal/integrations/books"
	"github.com/julianstephens/mindfulpath/internal/integrations/geocode"
	"github.com/julianstephens/mindfulpath/internal/integrations/translate"
	"github.com/julianstephens/mindfulpath/internal/logger"
)

// Set holds one implementation of every collaborator.
type Set struct {
	Auth       *auth.Client
	Books      books.Provider
	Geocoder   geocode.Geocoder
	Translator translate.Translator

	cache    *redis.Client
	cacheURL string
}

// New wires each collaborator in live or static mode. Tokens is where auth
// keeps its session; nil selects the OS keyring.
func New(cfg config.IntegrationsConfig, tokens auth.TokenStore) (*Set, error) {
	if tokens == nil {
		tokens = auth.KeyringTokens{}
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	s := &Set{}

	var authProvider auth.Provider = auth.NewMock(cfg.Auth.MockSecret)
	if cfg.Auth.Mode == constants.ModeLive {
		authProvider = auth.NewSupabase(cfg.Auth.URL, cfg.Auth.AnonKey, timeout)
	}
	s.Auth = auth.NewClient(authProvider, tokens)

	var bookProvider books.Provider = books.Static{}
	if cfg.Books.Mode == constants.ModeLive {
		bookProvider = books.NewAmazon(books.AmazonConfig{
			Endpoint:   cfg.Books.Endpoint,
			AccessKey:  cfg.Books.AccessKey,
			SecretKey:  cfg.Books.SecretKey,
			PartnerTag: cfg.Books.PartnerTag,
			Region:     cfg.Books.Region,
			Timeout:    timeout,
		})
		if cfg.Books.CacheURL != "" {
			opts, err := redis.ParseURL(cfg.Books.CacheURL)
			if err != nil {
				return nil, fmt.Errorf("invalid book cache url: %w", err)
			}
			s.cache = redis.NewClient(opts)
			s.cacheURL = cfg.Books.CacheURL
			bookProvider = books.NewCached(bookProvider, s.cache, cfg.Books.CacheTTL)
		}
		if cfg.Books.Fallback {
			bookProvider = books.Fallback{Primary: bookProvider}
		}
	}
	s.Books = bookProvider

	s.Geocoder = geocode.Static{}
	if cfg.Geocode.Mode == constants.ModeLive {
		s.Geocoder = geocode.NewOpenCage(cfg.Geocode.Endpoint, cfg.Geocode.APIKey, timeout)
	}

	s.Translator = translate.Identity{}
	if cfg.Translate.Mode == constants.ModeLive {
		s.Translator = translate.NewN8N(cfg.Translate.BaseURL, cfg.Translate.APIKey, cfg.Translate.WorkflowID, timeout)
	}

	logger.Debug("Integrations configured",
		"auth", cfg.Auth.Mode,
		"books", cfg.Books.Mode,
		"geocode", cfg.Geocode.Mode,
		"translate", cfg.Translate.Mode)
	return s, nil
}

// SharedRedis returns the book cache connection when dsn points at the same
// Redis database, so session storage can reuse it. Otherwise nil.
func (s *Set) SharedRedis(dsn string) *redis.Client {
	if s.cache == nil || dsn != s.cacheURL {
		return nil
	}
	return s.cache
}

// Close releases the book cache connection, if any.
func (s *Set) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}
