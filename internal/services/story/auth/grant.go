// Package auth verifies and mints contributor grants, the signed identity
// tokens callers attach to paid ledger operations.
package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
)

// grantEnv holds raw env values before post-parse validation.
type grantEnv struct {
	Issuer    string `env:"OWAAT_GRANT_ISSUER"`
	Audience  string `env:"OWAAT_GRANT_AUDIENCE"`
	PublicKey string `env:"OWAAT_GRANT_PUBLIC_KEY"`
}

// Config defines how contributor grants are verified.
type Config struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// Grant captures the validated identity claims of a contributor grant.
type Grant struct {
	ContributorID string
	Issuer        string
	ExpiresAt     time.Time
	IssuedAt      time.Time
	JWTID         string
}

// grantClaims is the internal claims type used for JWT parsing.
type grantClaims struct {
	jwt.RegisteredClaims
}

// LoadConfigFromEnv reads grant verification configuration.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw grantEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return Config{}, fmt.Errorf("OWAAT_GRANT_ISSUER is required")
	}
	if audience == "" {
		return Config{}, fmt.Errorf("OWAAT_GRANT_AUDIENCE is required")
	}
	if publicKey == "" {
		return Config{}, fmt.Errorf("OWAAT_GRANT_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return Config{}, fmt.Errorf("decode grant public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return Config{}, fmt.Errorf("grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return Config{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// VerifyGrant verifies a contributor grant token and returns its identity claims.
func VerifyGrant(token string, cfg Config) (Grant, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Grant{}, apperrors.New(apperrors.CodeGrantInvalid, "contributor grant is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return Grant{}, errors.New("grant verifier is not configured")
	}

	var parsed grantClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Grant{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return Grant{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"contributor grant issuer mismatch",
			map[string]string{"Field": "issuer"},
		)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return Grant{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"contributor grant audience mismatch",
			map[string]string{"Field": "audience"},
		)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Grant{}, apperrors.New(apperrors.CodeGrantInvalid, "contributor grant subject is required")
	}
	if parsed.ID == "" {
		return Grant{}, apperrors.New(apperrors.CodeGrantInvalid, "contributor grant jti is required")
	}
	if parsed.ExpiresAt == nil {
		return Grant{}, apperrors.New(apperrors.CodeGrantInvalid, "contributor grant exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return Grant{}, apperrors.New(apperrors.CodeGrantExpired, "contributor grant is expired")
	}
	if parsed.NotBefore != nil {
		nbf := parsed.NotBefore.Time.UTC()
		if now.Before(nbf) {
			return Grant{}, apperrors.New(apperrors.CodeGrantInvalid, "contributor grant not active yet")
		}
	}

	grant := Grant{
		ContributorID: parsed.Subject,
		Issuer:        parsed.Issuer,
		ExpiresAt:     exp,
		JWTID:         parsed.ID,
	}
	if parsed.IssuedAt != nil {
		grant.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return grant, nil
}

// MintConfig defines how contributor grants are signed.
type MintConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PrivateKey
	TTL      time.Duration
	Now      func() time.Time
}

// MintGrant signs a contributor grant for the given contributor identity.
func MintGrant(contributorID string, cfg MintConfig) (string, error) {
	contributorID = strings.TrimSpace(contributorID)
	if contributorID == "" {
		return "", errors.New("contributor id is required")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return "", errors.New("grant issuer and audience are required")
	}
	if len(cfg.Key) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("grant private key must be %d bytes", ed25519.PrivateKeySize)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	jti := make([]byte, 16)
	if _, err := rand.Read(jti); err != nil {
		return "", fmt.Errorf("generate grant jti: %w", err)
	}

	now := cfg.Now().UTC()
	claims := grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			Subject:   contributorID,
			ID:        hex.EncodeToString(jti),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(cfg.Key)
	if err != nil {
		return "", fmt.Errorf("sign grant: %w", err)
	}
	return signed, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.Wrap(apperrors.CodeGrantExpired, "contributor grant is expired", err)
	}
	return apperrors.Wrap(apperrors.CodeGrantInvalid, "contributor grant is invalid", err)
}

func audienceContains(audience jwt.ClaimStrings, expected string) bool {
	for _, value := range audience {
		if value == expected {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("value is empty")
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(value); err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
