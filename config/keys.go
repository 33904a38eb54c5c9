package config

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hashicorp/vault/api"
)

// DefaultVaultKeyField is the secret field holding the hex private key.
const DefaultVaultKeyField = "private_key"

var ErrNoSigningKey = errors.New("no signing key configured")

// ParsePrivateKey decodes a hex secp256k1 key with or without the 0x prefix.
// The key material never appears in the returned error.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimSpace(hexKey)
	hexKey = strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X")
	if hexKey == "" {
		return nil, ErrNoSigningKey
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, errors.New("invalid private key: expected 32 bytes of hex")
	}
	return key, nil
}

// VaultKeySource reads the signing key from a Vault secret.
type VaultKeySource struct {
	Address string
	Token   string

	// Path is the logical path of the secret, e.g. secret/data/mosaic/deployer for KV v2.
	Path  string
	Field string
}

// Configured reports whether enough is set to attempt a read.
func (s VaultKeySource) Configured() bool {
	return s.Address != "" && s.Path != ""
}

// Load reads and parses the key. Both KV v1 and KV v2 response layouts are accepted.
func (s VaultKeySource) Load(ctx context.Context) (*ecdsa.PrivateKey, error) {
	if !s.Configured() {
		return nil, ErrNoSigningKey
	}

	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = s.Address
	vaultConfig.Timeout = 30 * time.Second

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if s.Token != "" {
		client.SetToken(s.Token)
	}

	secret, err := client.Logical().ReadWithContext(ctx, strings.Trim(s.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key from Vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("%w: no secret at %s", ErrNoSigningKey, s.Path)
	}

	data := secret.Data
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}

	field := s.Field
	if field == "" {
		field = DefaultVaultKeyField
	}
	value, ok := data[field].(string)
	if !ok {
		return nil, fmt.Errorf("%w: field %q missing in %s", ErrNoSigningKey, field, s.Path)
	}
	return ParsePrivateKey(value)
}

// LoadSigningKey prefers an inline hex key and falls back to Vault.
func LoadSigningKey(ctx context.Context, hexKey string, vault VaultKeySource) (*ecdsa.PrivateKey, error) {
	if strings.TrimSpace(hexKey) != "" {
		return ParsePrivateKey(hexKey)
	}
	if vault.Configured() {
		return vault.Load(ctx)
	}
	return nil, ErrNoSigningKey
}
