package campaign_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"okinoko_fund/contract/campaign"
	"okinoko_fund/contract/config"
	"okinoko_fund/contract/records"
	"okinoko_fund/sdk"
)

const (
	script      = sdk.ScriptHash("c0ffee01")
	policy      = sdk.PolicyID("c0ffee01")
	cfgPolicy   = sdk.PolicyID("cf0001")
	rewardName  = sdk.AssetName("46554e44")
	creatorKey  = sdk.KeyHash("aa01")
	creatorSt   = sdk.KeyHash("aa02")
	backerKey   = sdk.KeyHash("bb01")
	backerSt    = sdk.KeyHash("bb02")
	admin1      = sdk.KeyHash("d101")
	admin2      = sdk.KeyHash("d102")
	admin3      = sdk.KeyHash("d103")
	royaltyKey  = sdk.KeyHash("ee01")
	deadline    = int64(1_000)
	goal        = int64(10_000)
	fraction    = int64(100)
	ownTx       = "11"
	cfgHolderTx = "cc"
)

var (
	creator = sdk.Wallet{PaymentKey: creatorKey, StakeKey: creatorSt}
	backer  = sdk.Wallet{PaymentKey: backerKey, StakeKey: backerSt}
	royalty = sdk.Address{Payment: sdk.KeyCredential(royaltyKey)}
	ownRef  = sdk.OutputReference{TxID: ownTx, Index: 0}
)

func testParams() config.Params {
	return config.Params{
		RoyaltyPercent:  5,
		RoyaltyAddress:  royalty,
		ConfigPolicy:    cfgPolicy,
		ConfigTokenName: config.DefaultConfigTokenName,
	}
}

func newValidator(t *testing.T) *campaign.Validator {
	t.Helper()
	v, err := campaign.New(testParams())
	require.NoError(t, err)
	return v
}

func newRecord() *records.CampaignRecord {
	return &records.CampaignRecord{
		Name:      rewardName,
		Goal:      goal,
		Deadline:  deadline,
		Creator:   creator,
		Milestone: []bool{false, false, false},
		State:     records.CampaignRunning,
		Fraction:  fraction,
	}
}

func campaignAddr(rec *records.CampaignRecord) sdk.Address {
	return rec.CampaignAddress(script)
}

func campaignOut(t *testing.T, rec *records.CampaignRecord, value sdk.Value) sdk.Output {
	t.Helper()
	data, err := records.EncodeCampaignDatum(records.CampaignDatumOf(rec))
	require.NoError(t, err)
	return sdk.Output{Address: campaignAddr(rec), Value: value, Datum: data}
}

func backerOut(t *testing.T, rec *records.CampaignRecord, who sdk.Wallet, lovelace int64) sdk.Output {
	t.Helper()
	data, err := records.EncodeCampaignDatum(records.BackerDatumOf(&records.BackerRecord{Backer: who}))
	require.NoError(t, err)
	return sdk.Output{Address: campaignAddr(rec), Value: sdk.Lovelace(lovelace), Datum: data}
}

func input(tx string, idx uint32, out sdk.Output) sdk.Input {
	return sdk.Input{OutRef: sdk.OutputReference{TxID: tx, Index: idx}, Output: out}
}

// configRef is the platform config held with its identification token; two of three admins make a quorum.
func configRef(t *testing.T) sdk.Input {
	t.Helper()
	cfg := &records.ConfigRecord{
		FeesAddress:            royalty,
		FeesAmount:             2_000_000,
		FeesAsset:              records.AssetClass{},
		SpendAddress:           royalty,
		Categories:             []string{"617274"},
		MultisigValidatorGroup: records.MultisigGroup{Required: 2, Signers: []sdk.KeyHash{admin1, admin2, admin3}},
		MultisigRefutxoupdate:  records.MultisigGroup{Required: 1, Signers: []sdk.KeyHash{admin1}},
		CetPolicy:              "ce01",
		CotPolicy:              "c001",
		DaoPolicy:              "da01",
	}
	data, err := records.EncodeConfigRecord(cfg)
	require.NoError(t, err)
	return input(cfgHolderTx, 0, sdk.Output{
		Address: sdk.Address{Payment: sdk.ScriptCredential("cf00")},
		Value:   sdk.Lovelace(2_000_000).With(cfgPolicy, config.DefaultConfigTokenName, 1),
		Datum:   data,
	})
}

func rewards(qty int64) sdk.Value {
	return sdk.Value{}.With(policy, rewardName, qty)
}
