package campaign

import (
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// Mint controls the reward-token supply of one campaign. Terminated campaigns
// may only burn; anything else is a creation and must lock the full supply,
// together with the campaign record, at the per-creator campaign address.
// Example payload: v.Mint(&rec, "aa01", tx)
func (v *Validator) Mint(rec *records.CampaignRecord, policy sdk.PolicyID, tx *sdk.Transaction) error {
	err := v.mint(rec, policy, tx)
	if err != nil {
		var name sdk.AssetName
		if rec != nil {
			name = rec.Name
		}
		emitRejected("mint", name, err)
		return err
	}
	emitMinted(rec, tx.MintedQuantity(policy, rec.Name))
	return nil
}

func (v *Validator) mint(rec *records.CampaignRecord, policy sdk.PolicyID, tx *sdk.Transaction) error {
	if rec == nil {
		return revert.New(revert.Reference, "mint without campaign record")
	}
	minted := tx.MintedQuantity(policy, rec.Name)
	if rec.State == records.CampaignFinished || rec.State == records.CampaignCancelled {
		if minted > 0 {
			return revert.Newf(revert.Accounting, "%s campaign may only burn, minted %d", rec.State, minted)
		}
		return nil
	}

	if rec.Goal <= 0 {
		return revert.Newf(revert.Accounting, "goal must be positive, got %d", rec.Goal)
	}
	if rec.Fraction <= 0 {
		return revert.Newf(revert.Accounting, "fraction must be positive, got %d", rec.Fraction)
	}
	if len(rec.Milestone) == 0 {
		return revert.New(revert.State, "campaign needs at least one milestone")
	}
	if rec.AnyMilestoneReleased() {
		return revert.New(revert.State, "new campaign has a milestone already released")
	}
	if rec.State != records.CampaignRunning {
		return revert.Newf(revert.State, "new campaign must be running, got %s", rec.State)
	}
	if len(tx.Mint.Tokens(policy)) != 1 {
		return revert.New(revert.Accounting, "creation mints exactly one reward token name")
	}
	if minted != rec.Fraction {
		return revert.Newf(revert.Accounting, "minted %d reward tokens, want %d", minted, rec.Fraction)
	}

	addr := rec.CampaignAddress(sdk.ScriptHash(policy))
	out, err := ledger.SingleOutput(tx.Outputs, ledger.And(ledger.AtAddress(addr), ledger.Holding(policy, rec.Name)), "campaign")
	if err != nil {
		return err
	}
	if !ledger.ExactTokens(addr, policy, rec.Name, rec.Fraction, tx.Outputs) {
		return revert.New(revert.Accounting, "campaign address must hold exactly the minted supply")
	}
	d, err := ledger.DecodeCampaign(out)
	if err != nil {
		return err
	}
	if d.Kind != records.DatumCampaign || !d.Campaign.Equal(rec) {
		return revert.New(revert.State, "campaign output record differs from the minted record")
	}
	return nil
}
