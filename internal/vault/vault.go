// internal/vault/vault.go
//
// Vault client wrapper for Coursebook.
//
// Context
// -------
//   - Provides a concurrency-safe singleton around the HashiCorp Vault
//     Go SDK for the one secret this app needs: the database password.
//   - Adds simple KV-v2 helpers and per-key caching so config reloads
//     do not hammer the Vault server.
//
// Public workflow
// ---------------
//  1. pw, err := vault.Resolve(ctx, "vault:secret/coursebook#db_password")
//     anywhere a config value carries the `vault:` prefix.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Prefix marks config values that must be resolved through Vault.
const Prefix = "vault:"

// Client is safe for concurrent use.  Zero value is invalid; construct
// with New.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // canonical path#key → value + expiry.
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client from the standard environment.
func New() (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return &Client{
		api:   apiCli,
		cache: make(map[string]cached),
	}, nil
}

// GetKV fetches a single key from a KV-v2 secret.  If ttl > 0 the
// result is cached for that duration.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	if ttl > 0 {
		c.cacheMu.RLock()
		if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
			c.cacheMu.RUnlock()
			return cv.val, nil
		}
		c.cacheMu.RUnlock()
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s is not a string", canonical)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}
	return sval, nil
}

//
// package-level resolver used by internal/config
//

var (
	defaultMu  sync.Mutex
	defaultCli *Client
)

// Resolve turns "vault:<path>#<key>" into the secret value using a
// lazily created package-level client.  Values without the prefix are
// returned unchanged.
func Resolve(ctx context.Context, ref string) (string, error) {
	if !strings.HasPrefix(ref, Prefix) {
		return ref, nil
	}

	spec := strings.TrimPrefix(ref, Prefix)
	path, key, ok := strings.Cut(spec, "#")
	if !ok {
		return "", fmt.Errorf("malformed vault reference %q, want vault:<path>#<key>", ref)
	}

	defaultMu.Lock()
	if defaultCli == nil {
		cli, err := New()
		if err != nil {
			defaultMu.Unlock()
			return "", err
		}
		defaultCli = cli
	}
	cli := defaultCli
	defaultMu.Unlock()

	return cli.GetKV(ctx, path, key, 5*time.Minute)
}

// splitMount separates "secret/app/db" into mount "secret" and the
// relative path "app/db".
func splitMount(p string) (mount, rel string) {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i != -1 {
		return p[:i], p[i+1:]
	}
	return p, ""
}
