// Package campaign validates the crowdfunding lifecycle: creation and burns on
// the mint side, Support/Cancel/Finish/Refund/Release on the spend side.
//
// The mint policy and the spend script share one hash, so the reward-token
// policy id of a campaign is the hash of the script holding it.
package campaign

import (
	logging "github.com/ipfs/go-log/v2"

	"okinoko_fund/contract/config"
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

var log = logging.Logger("campaign")

// Validator is immutable after New and safe for concurrent use.
type Validator struct {
	params config.Params
}

// New checks the params once so every later decision can rely on them.
// Example payload: campaign.New(config.Params{RoyaltyPercent: 5, ...})
func New(params config.Params) (*Validator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Validator{params: params}, nil
}

// platformSigned reads the multisig group from the config record among the
// reference inputs and checks the signer threshold.
func (v *Validator) platformSigned(tx *sdk.Transaction) (bool, error) {
	cfg, _, err := ledger.ConfigIn(tx.ReferenceInputs, v.params.ConfigPolicy, v.params.ConfigTokenName)
	if err != nil {
		return false, err
	}
	return ledger.Authorize(tx.Signatories, cfg.MultisigValidatorGroup), nil
}

// requirePlatform fails with an Authorization rejection unless the platform multisig signed.
func (v *Validator) requirePlatform(tx *sdk.Transaction) error {
	ok, err := v.platformSigned(tx)
	if err != nil {
		return err
	}
	if !ok {
		return revert.New(revert.Authorization, "platform multisig threshold not met")
	}
	return nil
}

// requireCreatorOrExpiredPlatform is the Cancel/Finish gate: the creator may
// act any time, the platform only once the deadline passed.
func (v *Validator) requireCreatorOrExpiredPlatform(rec *records.CampaignRecord, tx *sdk.Transaction) error {
	if tx.SignedBy(rec.Creator.PaymentKey) {
		return nil
	}
	ok, err := v.platformSigned(tx)
	if err != nil {
		return err
	}
	if !ok {
		return revert.New(revert.Authorization, "neither creator nor platform multisig signed")
	}
	if !tx.ValidRange.EntirelyAfter(rec.Deadline) {
		return revert.Newf(revert.Deadline, "platform may only act after deadline %d", rec.Deadline)
	}
	return nil
}

// continuingCampaign finds the single campaign record output back at addr and decodes it.
func continuingCampaign(addr sdk.Address, tx *sdk.Transaction) (*records.CampaignRecord, *sdk.Output, error) {
	out, err := ledger.SingleOutput(tx.Outputs, ledger.And(ledger.AtAddress(addr), ledger.WithAnyCampaign), "continuing campaign")
	if err != nil {
		return nil, nil, err
	}
	d, err := ledger.DecodeCampaign(out)
	if err != nil {
		return nil, nil, err
	}
	return d.Campaign, out, nil
}

// requireNoMint rejects transactions minting reward tokens for this campaign.
func requireNoMint(policy sdk.PolicyID, name sdk.AssetName, tx *sdk.Transaction) error {
	if minted := tx.MintedQuantity(policy, name); minted > 0 {
		return revert.Newf(revert.Accounting, "reward tokens minted (%d) where only burns are allowed", minted)
	}
	return nil
}
