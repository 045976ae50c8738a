// Package config holds the constants validators are instantiated with. They
// used to be compiled-in literals; injecting them keeps key rotation and
// isolated tests cheap.
package config

import (
	"encoding/hex"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"okinoko_fund/sdk"
)

// EnvPrefix namespaces every variable Load reads.
const EnvPrefix = "OKINOKO_"

// DefaultConfigTokenName is hex("config"), the identification token of the config holder.
const DefaultConfigTokenName sdk.AssetName = "636f6e666967"

// Params are the per-deployment constants shared by both validators.
type Params struct {
	// RoyaltyPercent is the platform cut of every milestone release.
	RoyaltyPercent int64 `env:"ROYALTY_PERCENT" envDefault:"5"`
	// RoyaltyAddress receives the platform cut.
	RoyaltyAddress sdk.Address `env:"ROYALTY_ADDRESS"`
	// ConfigPolicy and ConfigTokenName identify the config record's singleton token.
	ConfigPolicy    sdk.PolicyID  `env:"CONFIG_POLICY_ID"`
	ConfigTokenName sdk.AssetName `env:"CONFIG_TOKEN_NAME" envDefault:"636f6e666967"`
}

// Load parses OKINOKO_* variables and validates the result.
// Example payload: config.Load()
func Load() (Params, error) {
	var p Params
	if err := env.ParseWithOptions(&p, env.Options{Prefix: EnvPrefix}); err != nil {
		return Params{}, xerrors.Errorf("parse env: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate reports every problem at once rather than the first one.
func (p Params) Validate() error {
	var result *multierror.Error
	if p.RoyaltyPercent < 0 || p.RoyaltyPercent > 100 {
		result = multierror.Append(result, xerrors.Errorf("royalty percent %d outside 0..100", p.RoyaltyPercent))
	}
	if p.RoyaltyAddress.Payment.IsZero() {
		result = multierror.Append(result, xerrors.New("royalty address required"))
	}
	if err := hexID(string(p.ConfigPolicy), "config policy id"); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := hex.DecodeString(string(p.ConfigTokenName)); err != nil {
		result = multierror.Append(result, xerrors.Errorf("config token name: %w", err))
	}
	return result.ErrorOrNil()
}

func hexID(s, what string) error {
	if s == "" {
		return xerrors.Errorf("%s required", what)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return xerrors.Errorf("%s: %w", what, err)
	}
	return nil
}

// CreatorPercent is what the campaign creator keeps of each release.
func (p Params) CreatorPercent() int64 {
	return 100 - p.RoyaltyPercent
}
