package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"invoice-generator/internal/core"
)

const previewKeyPrefix = "preview:"

// NewClient connects to the Redis server at url and pings it.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return client, nil
}

// PreviewCache stores rendered HTML previews keyed by the form content that
// produced them. A nil cache or nil client disables caching.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPreviewCache(client *redis.Client, ttl time.Duration) *PreviewCache {
	return &PreviewCache{client: client, ttl: ttl}
}

// Get returns the cached HTML for key and whether it was present.
func (c *PreviewCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.client == nil || key == "" {
		return "", false, nil
	}
	html, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return html, true, nil
}

// Set stores html under key with the configured TTL.
func (c *PreviewCache) Set(ctx context.Context, key, html string) error {
	if c == nil || c.client == nil || key == "" {
		return nil
	}
	return c.client.Set(ctx, key, html, c.ttl).Err()
}

type previewKeyItem struct {
	Description string  `json:"d"`
	HSNCode     string  `json:"h"`
	Quantity    float64 `json:"q"`
	Units       string  `json:"u"`
	Rate        float64 `json:"r"`
}

// PreviewKey derives a cache key from everything that affects the rendered
// output. Line item ids and derived values are left out: two forms with the same
// inputs render identically.
func PreviewKey(st core.FormState, opts core.RenderOptions) (string, error) {
	items := make([]previewKeyItem, len(st.LineItems))
	for i, it := range st.LineItems {
		items[i] = previewKeyItem{Description: it.Description, HSNCode: it.HSNCode, Quantity: it.Quantity, Units: it.Units, Rate: it.Rate}
	}
	payload, err := json.Marshal(struct {
		Template string            `json:"t"`
		Fields   map[string]string `json:"f"`
		Items    []previewKeyItem  `json:"i"`
		Escape   bool              `json:"e"`
	}{st.TemplateID, st.Fields, items, opts.EscapeHTML})
	if err != nil {
		return "", fmt.Errorf("failed to encode preview key: %w", err)
	}
	sum := sha256.Sum256(payload)
	return previewKeyPrefix + st.TemplateID + ":" + hex.EncodeToString(sum[:]), nil
}
