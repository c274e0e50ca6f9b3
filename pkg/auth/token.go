package auth

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMisconfigured = errors.New("jwt config incomplete")
	ErrMissingClient = errors.New("token is missing client claim")
	ErrUnknownClient = errors.New("client is not allowed")
)

var jwtSigningMethod = jwt.SigningMethodHS256

// ServiceTokenPayload is what cmd/token knows when minting.
type ServiceTokenPayload struct {
	Client string
	JTI    string
}

// ServiceTokenClaims is the JWT body presented by workflow clients.
type ServiceTokenClaims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

// clockSkew tolerates drift between the workflow host and the API.
const clockSkew = 30 * time.Second

func checkConfig(cfg config.JWTConfig, minting bool) error {
	switch {
	case cfg.Secret == "":
		return fmt.Errorf("%w: secret is required", ErrMisconfigured)
	case minting && cfg.Issuer == "":
		return fmt.Errorf("%w: issuer is required", ErrMisconfigured)
	case minting && cfg.ExpirationMinutes <= 0:
		return fmt.Errorf("%w: expiration minutes must be positive", ErrMisconfigured)
	}
	return nil
}

// clientAllowed is true when no allowlist is configured.
func clientAllowed(cfg config.JWTConfig, client string) bool {
	return len(cfg.AllowedClients) == 0 || slices.Contains(cfg.AllowedClients, client)
}

// MintServiceToken signs a long-lived token for a workflow client such as the
// n8n orchestrator. The subject and the client claim carry the same name.
func MintServiceToken(cfg config.JWTConfig, now time.Time, payload ServiceTokenPayload) (string, error) {
	if err := checkConfig(cfg, true); err != nil {
		return "", err
	}
	client := strings.TrimSpace(payload.Client)
	if client == "" {
		return "", ErrMissingClient
	}
	if !clientAllowed(cfg, client) {
		return "", fmt.Errorf("%w: %s", ErrUnknownClient, client)
	}

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := ServiceTokenClaims{
		Client: client,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   client,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL())),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseServiceToken verifies signature, issuer and expiry, then checks the
// client against the allowlist.
func ParseServiceToken(cfg config.JWTConfig, tokenString string) (*ServiceTokenClaims, error) {
	if err := checkConfig(cfg, false); err != nil {
		return nil, err
	}

	claims := &ServiceTokenClaims{}
	keyFunc := func(token *jwt.Token) (any, error) {
		if token.Method != jwtSigningMethod {
			return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}
	if _, err := jwt.ParseWithClaims(tokenString, claims, keyFunc,
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	); err != nil {
		return nil, err
	}

	client := strings.TrimSpace(claims.Client)
	if client == "" {
		return nil, ErrMissingClient
	}
	if !clientAllowed(cfg, client) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClient, client)
	}
	claims.Client = client
	return claims, nil
}
