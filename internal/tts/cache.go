package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes synthesized audio keyed by the exact input text, so an
// identical diagnosis line is not re-synthesized.
type Cache struct {
	next Synthesizer
	lru  *lru.Cache[string, string]
}

func NewCache(next Synthesizer, size int) (*Cache, error) {
	if size <= 0 {
		size = 256
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Cache{next: next, lru: c}, nil
}

func (c *Cache) Synthesize(ctx context.Context, text string) (string, error) {
	key := cacheKey(text)
	if audio, ok := c.lru.Get(key); ok {
		return audio, nil
	}
	audio, err := c.next.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	c.lru.Add(key, audio)
	return audio, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
