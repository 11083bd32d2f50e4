// Package cache provides redis-backed ephemeral state stores.
package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	oauthStatePrefix       = "oauth:state:"
	oauthStatePrincipalPfx = "oauth:state:principal:"
	oauthCodePrefix        = "oauth:code:"
	oauthStateTokenBytes   = 16 // 128 bits of entropy
)

// ErrStateNotFound is returned when no handshake state matches the token
var ErrStateNotFound = errors.New("oauth state not found")

// ErrStateExpired is returned when the handshake state outlived its TTL
var ErrStateExpired = errors.New("oauth state expired")

// ErrCodeNotFound is returned when no exchange code is stored for the
// principal, including a second consume after the code was already read
var ErrCodeNotFound = errors.New("oauth exchange code not found")

// OAuthStateStore issues and consumes short-lived, single-use handshake
// tokens for OAuth-style authentication flows.
//
// Tokens embed the principal ID ("<principalID>.<random>") so the callback
// can be validated against the principal the handshake was started for.
// The redis TTL is set to twice the logical TTL; the logical expiry is kept
// in the value so a lookup inside the grace window reports ErrStateExpired
// rather than a bare not-found. Exchange codes are read with GETDEL, which
// makes consumption atomic and single-shot.
type OAuthStateStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewOAuthStateStore creates a new OAuthStateStore with the given logical
// token TTL.
func NewOAuthStateStore(client *redis.Client, ttl time.Duration) *OAuthStateStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &OAuthStateStore{
		client: client,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreatePendingRequest generates an unguessable state token bound to the
// principal and stores it with the configured TTL. Any prior token for the
// same principal is deleted opportunistically.
func (s *OAuthStateStore) CreatePendingRequest(ctx context.Context, principalID uint) (string, error) {
	raw := make([]byte, oauthStateTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := fmt.Sprintf("%d.%s", principalID, hex.EncodeToString(raw))

	principalKey := oauthStatePrincipalPfx + strconv.FormatUint(uint64(principalID), 10)

	// Drop the principal's previous pending handshake, if any.
	if old, err := s.client.GetDel(ctx, principalKey).Result(); err == nil && old != "" {
		s.client.Del(ctx, oauthStatePrefix+old)
	}

	expiresAt := s.now().Add(s.ttl)
	value := fmt.Sprintf("%d|%d", principalID, expiresAt.Unix())

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, oauthStatePrefix+token, value, 2*s.ttl)
	pipe.Set(ctx, principalKey, token, 2*s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	return token, nil
}

// CompleteRequest validates the state token and stores the exchange code for
// later one-time consumption. Returns the principal the handshake belongs to.
func (s *OAuthStateStore) CompleteRequest(ctx context.Context, stateToken, exchangeCode string) (uint, error) {
	embeddedID, err := parseStateToken(stateToken)
	if err != nil {
		return 0, ErrStateNotFound
	}

	value, err := s.client.Get(ctx, oauthStatePrefix+stateToken).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrStateNotFound
		}
		return 0, fmt.Errorf("failed to load oauth state: %w", err)
	}

	principalID, expiresAt, err := parseStateValue(value)
	if err != nil || principalID != embeddedID {
		// Stored state does not match the principal-embedding scheme.
		s.client.Del(ctx, oauthStatePrefix+stateToken)
		return 0, ErrStateNotFound
	}

	if !s.now().Before(expiresAt) {
		s.client.Del(ctx, oauthStatePrefix+stateToken)
		return 0, ErrStateExpired
	}

	principalKey := oauthStatePrincipalPfx + strconv.FormatUint(uint64(principalID), 10)
	codeKey := oauthCodePrefix + strconv.FormatUint(uint64(principalID), 10)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, codeKey, exchangeCode, s.ttl)
	pipe.Del(ctx, oauthStatePrefix+stateToken)
	pipe.Del(ctx, principalKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to store exchange code: %w", err)
	}

	return principalID, nil
}

// ConsumeCode returns the stored exchange code and deletes it atomically.
// A second call before a new CompleteRequest returns ErrCodeNotFound.
func (s *OAuthStateStore) ConsumeCode(ctx context.Context, principalID uint) (string, error) {
	codeKey := oauthCodePrefix + strconv.FormatUint(uint64(principalID), 10)

	code, err := s.client.GetDel(ctx, codeKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCodeNotFound
		}
		return "", fmt.Errorf("failed to consume exchange code: %w", err)
	}
	return code, nil
}

func parseStateToken(token string) (uint, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, fmt.Errorf("malformed state token")
	}
	principalID, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed state token: %w", err)
	}
	return uint(principalID), nil
}

func parseStateValue(value string) (uint, time.Time, error) {
	parts := strings.SplitN(value, "|", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, fmt.Errorf("malformed state value")
	}
	principalID, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, time.Time{}, err
	}
	expiresUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, time.Time{}, err
	}
	return uint(principalID), time.Unix(expiresUnix, 0).UTC(), nil
}
