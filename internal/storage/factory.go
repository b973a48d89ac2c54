package storage

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes backends that support it.
type Options struct {
	// SessionTTL expires stored sessions on backends with native expiry (Redis).
	SessionTTL  time.Duration
	// RedisClient is reused for a redis:// DSN instead of dialing a new connection.
	RedisClient *redis.Client
}

// Open returns the Provider selected by the DSN scheme. A bare path selects
// the JSON file store, or SQLite when it ends in .db or .sqlite.
func Open(dsn string, opts Options) (Provider, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("storage location cannot be empty")
	}

	scheme, rest, hasScheme := strings.Cut(dsn, "://")
	if !hasScheme {
		if isSQLitePath(dsn) {
			return NewSQLiteStore(dsn), nil
		}
		return NewJSONStore(dsn), nil
	}

	switch strings.ToLower(scheme) {
	case "file":
		if isSQLitePath(rest) {
			return NewSQLiteStore(rest), nil
		}
		return NewJSONStore(rest), nil
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteStore(rest), nil
	case "postgres", "postgresql":
		if err := ValidateConnString(dsn); err != nil {
			return nil, err
		}
		return NewPostgresStore(dsn), nil
	case "badger":
		if rest == "memory" {
			rest = ""
		}
		return NewBadgerStore(rest), nil
	case "redis", "rediss":
		if opts.RedisClient != nil {
			return NewRedisStoreFromClient(opts.RedisClient, opts.SessionTTL), nil
		}
		return NewRedisStore(dsn, opts.SessionTTL), nil
	case "mongodb", "mongodb+srv":
		return NewMongoStore(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported storage scheme %q", scheme)
	}
}

func isSQLitePath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".db") || strings.HasSuffix(lower, ".sqlite")
}

// RedactDSN masks the password of a URL-style DSN so it can be printed or
// logged. Paths and DSNs without credentials are returned unchanged.
func RedactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err == nil {
		if u.User == nil {
			return dsn
		}
		if _, hasPassword := u.User.Password(); !hasPassword {
			return dsn
		}
		return u.Redacted()
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		return scheme + "://xxxxx@" + rest[at+1:]
	}
	return dsn
}
