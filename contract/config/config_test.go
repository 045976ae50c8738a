package config_test

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"okinoko_fund/contract/config"
	"okinoko_fund/sdk"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OKINOKO_ROYALTY_ADDRESS", "key:ee01/key:ee02")
	t.Setenv("OKINOKO_CONFIG_POLICY_ID", "cf0001")

	p, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.RoyaltyPercent)
	assert.Equal(t, int64(95), p.CreatorPercent())
	assert.Equal(t, sdk.Address{Payment: sdk.KeyCredential("ee01"), Stake: sdk.KeyCredential("ee02")}, p.RoyaltyAddress)
	assert.Equal(t, sdk.PolicyID("cf0001"), p.ConfigPolicy)
	assert.Equal(t, config.DefaultConfigTokenName, p.ConfigTokenName)
}

func TestLoadOverridesRoyalty(t *testing.T) {
	t.Setenv("OKINOKO_ROYALTY_ADDRESS", "key:ee01")
	t.Setenv("OKINOKO_CONFIG_POLICY_ID", "cf0001")
	t.Setenv("OKINOKO_ROYALTY_PERCENT", "10")

	p, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(90), p.CreatorPercent())
}

func TestLoadRejectsBadAddress(t *testing.T) {
	t.Setenv("OKINOKO_ROYALTY_ADDRESS", "somewhere")
	t.Setenv("OKINOKO_CONFIG_POLICY_ID", "cf0001")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := config.Params{RoyaltyPercent: 120, ConfigTokenName: "zz"}.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, xerrors.As(err, &merr))
	assert.Len(t, merr.Errors, 4)
}

func TestValidateAcceptsDeployment(t *testing.T) {
	p := config.Params{
		RoyaltyPercent:  0,
		RoyaltyAddress:  sdk.Address{Payment: sdk.ScriptCredential("ab")},
		ConfigPolicy:    "cf",
		ConfigTokenName: config.DefaultConfigTokenName,
	}
	assert.NoError(t, p.Validate())
	assert.Equal(t, int64(100), p.CreatorPercent())
}
