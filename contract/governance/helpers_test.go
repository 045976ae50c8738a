package governance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"okinoko_fund/contract/config"
	"okinoko_fund/contract/governance"
	"okinoko_fund/contract/records"
	"okinoko_fund/sdk"
)

const (
	govScript  = sdk.ScriptHash("90e1")
	govPolicy  = sdk.PolicyID(govScript)
	cfgPolicy  = sdk.PolicyID("cf0001")
	proposalID = sdk.AssetName("0a01")
	submitter  = sdk.KeyHash("5b01")
	voter1     = sdk.KeyHash("a1")
	voter2     = sdk.KeyHash("a2")
	voter3     = sdk.KeyHash("a3")
	admin1     = sdk.KeyHash("d101")
	admin2     = sdk.KeyHash("d102")
	deadline   = int64(1_000)
	ownTx      = "44"
)

var (
	govAddr = sdk.Address{Payment: sdk.ScriptCredential(govScript)}
	cfgAddr = sdk.Address{Payment: sdk.ScriptCredential("cf00")}
	feeAddr = sdk.Address{Payment: sdk.KeyCredential("fe01")}
	ownRef  = sdk.OutputReference{TxID: ownTx, Index: 0}
)

func newValidator(t *testing.T) *governance.Validator {
	t.Helper()
	v, err := governance.New(config.Params{
		RoyaltyPercent:  5,
		RoyaltyAddress:  feeAddr,
		ConfigPolicy:    cfgPolicy,
		ConfigTokenName: config.DefaultConfigTokenName,
	})
	require.NoError(t, err)
	return v
}

func newProposal(action records.ProposalAction) *records.GovernanceRecord {
	return &records.GovernanceRecord{
		ProposalID:  proposalID,
		SubmittedBy: submitter,
		Action:      action,
		Votes: []records.VoteEntry{
			{Voter: voter1, Vote: records.VotePending},
			{Voter: voter2, Vote: records.VotePending},
			{Voter: voter3, Vote: records.VotePending},
		},
		Deadline: deadline,
		State:    records.ProposalInProgress,
	}
}

func feeProposal() *records.GovernanceRecord {
	return newProposal(records.ProposalAction{Kind: records.ProposalUpdateFeeAmount, FeeAmount: 7_000_000})
}

func proposalOut(t *testing.T, rec *records.GovernanceRecord) sdk.Output {
	t.Helper()
	data, err := records.EncodeGovernanceRecord(rec)
	require.NoError(t, err)
	return sdk.Output{Address: govAddr, Value: sdk.Lovelace(2_000_000).With(govPolicy, rec.ProposalID, 1), Datum: data}
}

func baseConfig() *records.ConfigRecord {
	return &records.ConfigRecord{
		FeesAddress:            feeAddr,
		FeesAmount:             2_000_000,
		FeesAsset:              records.AssetClass{Policy: "ab01", Name: "544f4b"},
		SpendAddress:           feeAddr,
		Categories:             []string{"617274", "6d75736963"},
		MultisigValidatorGroup: records.MultisigGroup{Required: 2, Signers: []sdk.KeyHash{admin1, admin2}},
		MultisigRefutxoupdate:  records.MultisigGroup{Required: 1, Signers: []sdk.KeyHash{admin1}},
		CetPolicy:              "ce01",
		CotPolicy:              "c001",
		DaoPolicy:              "da01",
	}
}

func configOut(t *testing.T, cfg *records.ConfigRecord) sdk.Output {
	t.Helper()
	data, err := records.EncodeConfigRecord(cfg)
	require.NoError(t, err)
	return sdk.Output{Address: cfgAddr, Value: sdk.Lovelace(2_000_000).With(cfgPolicy, config.DefaultConfigTokenName, 1), Datum: data}
}
