package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/evolvx/internal/apperr"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
)

// Tokens are issued by the account service; revoked token ids are written there
// under this prefix (with the token's remaining ttl) on logout.
const revokedKeyPrefix = "evolvx-revoked-token||"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrRevokedToken = errors.New("revoked bearer token")
)

type Verifier struct {
	secret      []byte
	issuer      string
	redisClient *redis.Client
}

// NewVerifier creates an HS256 token verifier. redisClient may be nil, in which
// case revocation is not checked.
func NewVerifier(secret, issuer string, redisClient *redis.Client) *Verifier {
	return &Verifier{
		secret:      []byte(secret),
		issuer:      issuer,
		redisClient: redisClient,
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	registered := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, registered, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.Atoi(registered.Subject)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: subject [%s] is not a user id", ErrInvalidToken, registered.Subject)
	}

	if v.redisClient != nil && registered.ID != "" {
		revoked, err := v.redisClient.Exists(ctx, revokedKeyPrefix+registered.ID).Result()
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w: %w", apperr.ErrDependency, err)
		}
		if revoked > 0 {
			return nil, ErrRevokedToken
		}
	}

	return &Claims{
		UserID:    userID,
		TokenID:   registered.ID,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
