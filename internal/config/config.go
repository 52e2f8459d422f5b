// Package config resolves runtime configuration for kcbs-events.
//
// Configuration is read from the environment exactly once at startup and
// carried in an explicit Config value so the client and extractor never
// touch process globals. ZIPCODE is the only required setting; KCBS member
// credentials are optional and only attached when both halves are present.
package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultRadiusMiles is the search radius used when none is given.
	DefaultRadiusMiles = "175"

	// DefaultOutputFile is the report file written in the working directory.
	DefaultOutputFile = "FinalCSV.txt"
)

// Config holds all settings for one search run.
type Config struct {
	Zipcode     string
	RadiusMiles string
	Username    string
	Password    string
	OutputFile  string

	// InsecureTLS disables certificate and hostname verification against
	// the member site, which has served misconfigured certificates. On by
	// default; --verify-tls turns verification back on.
	InsecureTLS bool

	Verbose bool
}

// Load builds a Config from the process environment with defaults applied.
// Validation is deferred to Validate so flag overrides can be applied first.
func Load() *Config {
	return &Config{
		Zipcode:     strings.TrimSpace(os.Getenv("ZIPCODE")),
		RadiusMiles: DefaultRadiusMiles,
		Username:    os.Getenv("KCBS_USERNAME"),
		Password:    os.Getenv("KCBS_PASSWORD"),
		OutputFile:  DefaultOutputFile,
		InsecureTLS: true,
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Zipcode == "" {
		return fmt.Errorf("no search address configured: set the ZIPCODE environment variable or pass --zipcode")
	}
	return nil
}

// HasCredentials reports whether both halves of the member login are set.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
