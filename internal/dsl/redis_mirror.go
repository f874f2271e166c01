// File: redis_mirror.go
// Purpose: process-wide AST cache mirror backed by Redis, so multiple
// API instances share parsed formulas instead of each paying its own
// cold-parse cost.
// Dependencies: github.com/redis/go-redis/v9

package dsl

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMirror implements Mirror on top of a Redis client. It stores the
// pretty-printed form of each parsed AST (see ast.go's String); on a
// remote hit the local Cache re-parses that text, which by the parser's
// round-trip property yields an AST structurally equal to the original.
type RedisMirror struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisMirror wraps client. prefix namespaces keys (e.g.
// "astroformula:ast:"); ttl of zero means entries never expire.
func NewRedisMirror(client *redis.Client, prefix string, ttl time.Duration) *RedisMirror {
	return &RedisMirror{client: client, prefix: prefix, ttl: ttl}
}

// Get looks up formula in Redis, returning its pretty-printed AST text.
func (m *RedisMirror) Get(formula string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := m.client.Get(ctx, m.key(formula)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set writes encoded (the pretty-printed AST) under formula's key.
func (m *RedisMirror) Set(formula, encoded string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	m.client.Set(ctx, m.key(formula), encoded, m.ttl)
}

func (m *RedisMirror) key(formula string) string {
	return m.prefix + formula
}

// ParseCachedMirrored is like Cache.ParseCached but also consults and
// populates a RedisMirror, so a cold local cache on one instance can
// still avoid a full re-parse if another instance already cached the
// same formula.
func (c *Cache) ParseCachedMirrored(formula string) (Node, error) {
	if ast, ok := c.Get(formula); ok {
		return ast, nil
	}
	if c.mirror != nil {
		if encoded, ok := c.mirror.Get(formula); ok {
			if ast, err := Parse(encoded); err == nil {
				c.Put(formula, ast)
				return ast, nil
			}
		}
	}
	ast, err := Parse(formula)
	if err != nil {
		return nil, err
	}
	c.Put(formula, ast)
	if c.mirror != nil {
		c.mirror.Set(formula, String(ast))
	}
	return ast, nil
}
