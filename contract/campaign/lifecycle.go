package campaign

import (
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// -----------------------------------------------------------------------------
// Cancel and Finish on the campaign record. Both are open to the creator at
// any time and to the platform multisig after the deadline.
// -----------------------------------------------------------------------------

// cancel moves a running campaign to Cancelled and nothing else.
func (v *Validator) cancel(rec *records.CampaignRecord, script sdk.ScriptHash, tx *sdk.Transaction) error {
	if err := v.requireCreatorOrExpiredPlatform(rec, tx); err != nil {
		return err
	}
	if rec.State != records.CampaignRunning {
		return revert.Newf(revert.State, "cancel needs a running campaign, got %s", rec.State)
	}
	next, _, err := continuingCampaign(rec.CampaignAddress(script), tx)
	if err != nil {
		return err
	}
	if !next.Equal(rec.WithState(records.CampaignCancelled)) {
		return revert.New(revert.State, "cancel may only flip the state to cancelled")
	}
	return nil
}

// finish moves a running campaign to Finished and consolidates every backer
// contribution at the campaign address into the continuing record output.
func (v *Validator) finish(rec *records.CampaignRecord, script sdk.ScriptHash, tx *sdk.Transaction) error {
	if err := v.requireCreatorOrExpiredPlatform(rec, tx); err != nil {
		return err
	}
	if rec.State != records.CampaignRunning {
		return revert.Newf(revert.State, "finish needs a running campaign, got %s", rec.State)
	}
	addr := rec.CampaignAddress(script)
	next, out, err := continuingCampaign(addr, tx)
	if err != nil {
		return err
	}
	if !next.Equal(rec.WithState(records.CampaignFinished)) {
		return revert.New(revert.State, "finish may only flip the state to finished")
	}
	if err := requireNoMint(sdk.PolicyID(script), rec.Name, tx); err != nil {
		return err
	}
	backed := ledger.SumInputsLovelace(tx.Inputs, ledger.And(ledger.AtAddress(addr), ledger.WithAnyBacker))
	if got := out.Value.Lovelace(); got < backed {
		return revert.Newf(revert.Accounting, "consolidated %d lovelace, backers put in %d", got, backed)
	}
	return nil
}

// sweep lets a backer marker be consumed by a Finish transaction: the
// consumed campaign at the marker's address must be running and its
// continuing record must be that same campaign moved to Finished.
func (v *Validator) sweep(own *sdk.Input, tx *sdk.Transaction) error {
	addr := own.Output.Address
	in, err := ledger.FirstOutput(ledger.Resolved(tx.Inputs), ledger.And(ledger.AtAddress(addr), ledger.WithAnyCampaign), "consumed campaign")
	if err != nil {
		return err
	}
	d, err := ledger.DecodeCampaign(in)
	if err != nil {
		return err
	}
	consumed := d.Campaign
	if consumed.State != records.CampaignRunning {
		return revert.Newf(revert.State, "backers are swept from running campaigns only, got %s", consumed.State)
	}
	next, _, err := continuingCampaign(addr, tx)
	if err != nil {
		return err
	}
	if !next.Equal(consumed.WithState(records.CampaignFinished)) {
		return revert.Newf(revert.State, "backers are swept by a finish only, campaign moves to %s", next.State)
	}
	return nil
}
