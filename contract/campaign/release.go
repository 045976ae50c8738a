package campaign

import (
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// release pays out the next milestone of a finished campaign.
//
// supports is everything the transaction consumes from the campaign record
// itself. Creator and platform each get their percentage of it divided by
// the milestones still pending; the rest has to stay locked unless this was
// the last milestone.
// Example payload: 3000 locked, 1 pending, 95/5 split -> creator 2850, platform 150
func (v *Validator) release(rec *records.CampaignRecord, script sdk.ScriptHash, tx *sdk.Transaction) error {
	if err := v.requirePlatform(tx); err != nil {
		return err
	}
	if rec.State != records.CampaignFinished {
		return revert.Newf(revert.State, "release needs a finished campaign, got %s", rec.State)
	}
	idx := rec.NextMilestone()
	if idx < 0 {
		return revert.New(revert.State, "every milestone is already released")
	}
	pending := rec.PendingMilestones()

	want := rec.Clone()
	want.Milestone[idx] = true
	if pending == 1 {
		want.State = records.CampaignReleased
	}
	addr := rec.CampaignAddress(script)
	next, out, err := continuingCampaign(addr, tx)
	if err != nil {
		return err
	}
	if !next.Equal(want) {
		return revert.Newf(revert.State, "release must flip milestone %d and nothing else", idx)
	}

	supports := ledger.SumInputsLovelace(tx.Inputs, ledger.And(ledger.AtAddress(addr), ledger.WithCampaign(rec)))
	creatorShare := supports * v.params.CreatorPercent() / 100 / pending
	platformShare := supports * v.params.RoyaltyPercent / 100 / pending

	if !ledger.AtLeast(rec.Creator.Address(), creatorShare, tx.Outputs) {
		return revert.Newf(revert.Accounting, "creator must receive at least %d lovelace", creatorShare)
	}
	if !ledger.AtLeast(v.params.RoyaltyAddress, platformShare, tx.Outputs) {
		return revert.Newf(revert.Accounting, "platform must receive at least %d lovelace", platformShare)
	}
	if pending > 1 {
		if keep := supports - supports/pending; out.Value.Lovelace() < keep {
			return revert.Newf(revert.Accounting, "campaign must keep %d lovelace locked", keep)
		}
	}
	emitMilestone(rec, idx, creatorShare, platformShare)
	return nil
}
