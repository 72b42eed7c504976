package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bryanwahyu/verifact/internal/domain/ai"
)

const keyPrefix = "verifact:ai:"

// Connect accepts either a redis:// URL or a bare host:port.
func Connect(addr, password string, db int) (*redis.Client, error) {
	if strings.HasPrefix(addr, "redis://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}), nil
}

// CachedClient is a read-through cache in front of the collaborator.
// Only successful answers are stored. A broken cache never fails a call.
type CachedClient struct {
	Next  ai.Client
	Redis redis.Cmdable
	TTL   time.Duration
}

func NewCachedClient(next ai.Client, rdb redis.Cmdable, ttl time.Duration) *CachedClient {
	return &CachedClient{Next: next, Redis: rdb, TTL: ttl}
}

func Key(op, language, input string) string {
	sum := sha256.Sum256([]byte(op + "\x00" + language + "\x00" + input))
	return keyPrefix + op + ":" + hex.EncodeToString(sum[:])
}

func (c *CachedClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	var out struct {
		Language string `json:"language"`
	}
	err := through(ctx, c, Key("language", "", text), &out, func() error {
		lang, err := c.Next.DetectLanguage(ctx, text)
		out.Language = lang
		return err
	})
	return out.Language, err
}

func (c *CachedClient) AnalyzeContent(ctx context.Context, text, language string) (ai.Analysis, error) {
	var out ai.Analysis
	err := through(ctx, c, Key("content", language, text), &out, func() (err error) {
		out, err = c.Next.AnalyzeContent(ctx, text, language)
		return err
	})
	return out, err
}

func (c *CachedClient) AnalyzeURL(ctx context.Context, url, language string) (ai.Analysis, error) {
	var out ai.Analysis
	err := through(ctx, c, Key("url", language, url), &out, func() (err error) {
		out, err = c.Next.AnalyzeURL(ctx, url, language)
		return err
	})
	return out, err
}

func (c *CachedClient) FactCheck(ctx context.Context, text, language string) (ai.FactCheck, error) {
	var out ai.FactCheck
	err := through(ctx, c, Key("factcheck", language, text), &out, func() (err error) {
		out, err = c.Next.FactCheck(ctx, text, language)
		return err
	})
	return out, err
}

// through serves out from the cache when possible, otherwise calls load
// and stores what it produced.
func through(ctx context.Context, c *CachedClient, key string, out any, load func() error) error {
	raw, err := c.Redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jerr := json.Unmarshal(raw, out); jerr == nil {
			return nil
		}
	case !errors.Is(err, redis.Nil):
		slog.Default().WarnContext(ctx, "ai cache read failed", "key", key, "error", err)
	}

	if err := load(); err != nil {
		return err
	}
	body, err := json.Marshal(out)
	if err != nil {
		return nil
	}
	if err := c.Redis.Set(ctx, key, body, c.TTL).Err(); err != nil {
		slog.Default().WarnContext(ctx, "ai cache write failed", "key", key, "error", err)
	}
	return nil
}

var _ ai.Client = (*CachedClient)(nil)
