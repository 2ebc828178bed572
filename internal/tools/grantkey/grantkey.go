// Package grantkey provides one-shot utilities for contributor grant keys.
package grantkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Jdubedition/dapp-owaat/internal/services/story/auth"
)

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// Run generates a contributor grant key pair and writes exports.
func Run(out io.Writer, reader io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}
	publicKey, privateKey, err := ed25519.GenerateKey(reader)
	if err != nil {
		return fmt.Errorf("generate contributor grant key: %w", err)
	}
	if _, err := fmt.Fprintf(out, "export OWAAT_GRANT_PRIVATE_KEY=%s\n", base64.RawStdEncoding.EncodeToString(privateKey)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "export OWAAT_GRANT_PUBLIC_KEY=%s\n", base64.RawStdEncoding.EncodeToString(publicKey)); err != nil {
		return err
	}
	return nil
}

// Mint signs a contributor grant using the private key from the environment
// and writes the token.
func Mint(out io.Writer, args []string, lookup EnvLookup) error {
	if out == nil {
		return errors.New("output is required")
	}
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}

	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	contributor := fs.String("contributor", "", "contributor identity to embed in the grant")
	issuer := fs.String("issuer", envOr(lookup, "OWAAT_GRANT_ISSUER"), "grant issuer")
	audience := fs.String("audience", envOr(lookup, "OWAAT_GRANT_AUDIENCE"), "grant audience")
	ttl := fs.Duration("ttl", 24*time.Hour, "grant lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	encodedKey, ok := lookup("OWAAT_GRANT_PRIVATE_KEY")
	if !ok || strings.TrimSpace(encodedKey) == "" {
		return errors.New("OWAAT_GRANT_PRIVATE_KEY is required")
	}
	keyBytes, err := decodeBase64(strings.TrimSpace(encodedKey))
	if err != nil {
		return fmt.Errorf("decode grant private key: %w", err)
	}
	if len(keyBytes) != ed25519.PrivateKeySize {
		return fmt.Errorf("grant private key must be %d bytes", ed25519.PrivateKeySize)
	}

	token, err := auth.MintGrant(*contributor, auth.MintConfig{
		Issuer:   *issuer,
		Audience: *audience,
		Key:      ed25519.PrivateKey(keyBytes),
		TTL:      *ttl,
	})
	if err != nil {
		return fmt.Errorf("mint contributor grant: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func envOr(lookup EnvLookup, key string) string {
	value, ok := lookup(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func decodeBase64(value string) ([]byte, error) {
	if decoded, err := base64.RawStdEncoding.DecodeString(value); err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
