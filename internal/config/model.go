// internal/config/model.go
//
// Typed configuration model for Coursebook.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                        – dotenv values,
//   • `conf/global.yaml`                          – primary static file,
//   • `COURSEBOOK_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client before validation, so the model never stores
// Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import (
	"fmt"
	"strings"
)

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The template is kept in YAML so operators can tweak host, port, or
// flags without touching Vault.  The password is stored in Vault and
// injected at load time, keeping credentials out of flat files and git
// history.  A template without a %s verb is used verbatim.
type Database struct {
	DSN      string `koanf:"dsn" validate:"required"`
	Password string `koanf:"password"`
}

// ResolvedDSN splices the password into the DSN template.
func (d Database) ResolvedDSN() string {
	if strings.Contains(d.DSN, "%s") {
		return fmt.Sprintf(d.DSN, d.Password)
	}
	return d.DSN
}

//
// Admin section
//

// Admin controls the administrative interface.  EnforceAuth gates the
// RequireAdmin middleware; it defaults to off because the login flow
// accepts any credentials (see internal/session).
type Admin struct {
	EnforceAuth bool `koanf:"enforce_auth"`
}

//
// Geo section
//

// Geo points at an optional GeoLite2-City database.  When the path is
// empty, request-info geo enrichment is skipped.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers Root so later code can build absolute file paths, most
// importantly the templates directory.
type Paths struct {
	Root string // COURSEBOOK_ROOT or discovered parent
}

// Templates returns the template-tree root.
func (p Paths) Templates() string { return p.Root + "/templates" }

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Admin    Admin    `koanf:"admin"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
