package campaign

import (
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// support checks a backer contribution against a running campaign.
//
// The campaign address must end up with exactly two entries: the unchanged
// campaign record and the backer's marker carrying the contribution. Reward
// tokens live in exactly two outputs, the record (what is left) and the
// backer wallet (goal/fraction lovelace per token, floored).
// Example payload: Support with 40 ada against goal 100 / fraction 25 pays 10 tokens
func (v *Validator) support(rec *records.CampaignRecord, script sdk.ScriptHash, own *sdk.Input, tx *sdk.Transaction) error {
	if rec.State != records.CampaignRunning {
		return revert.Newf(revert.State, "support needs a running campaign, got %s", rec.State)
	}
	policy := sdk.PolicyID(script)
	addr := rec.CampaignAddress(script)

	atCampaign := ledger.Filter(tx.Outputs, ledger.AtAddress(addr))
	if len(atCampaign) != 2 {
		return revert.Newf(revert.Reference, "campaign address must receive 2 outputs, got %d", len(atCampaign))
	}
	contOut, err := ledger.SingleOutput(atCampaign, ledger.WithAnyCampaign, "continuing campaign")
	if err != nil {
		return err
	}
	backerOut, err := ledger.SingleOutput(atCampaign, ledger.WithAnyBacker, "backer contribution")
	if err != nil {
		return err
	}
	cont, err := ledger.DecodeCampaign(contOut)
	if err != nil {
		return err
	}
	if !cont.Campaign.Equal(rec) {
		return revert.New(revert.State, "support may not change the campaign record")
	}
	marker, err := ledger.DecodeCampaign(backerOut)
	if err != nil {
		return err
	}
	backer := marker.Backer

	rewards := ledger.Filter(tx.Outputs, ledger.Holding(policy, rec.Name))
	if len(rewards) != 2 {
		return revert.Newf(revert.Accounting, "reward tokens must sit in 2 outputs, got %d", len(rewards))
	}
	var toScript, toBacker *sdk.Output
	for i := range rewards {
		if rewards[i].Address == addr {
			toScript = &rewards[i]
		} else {
			toBacker = &rewards[i]
		}
	}
	if toScript == nil || toBacker == nil {
		return revert.New(revert.Accounting, "reward tokens must split between campaign and backer")
	}
	if toBacker.Address != backer.Backer.Address() {
		return revert.New(revert.Accounting, "reward output is not at the backer's wallet")
	}

	returned := toScript.Value.QuantityOf(policy, rec.Name)
	if contOut.Value.QuantityOf(policy, rec.Name) != returned {
		return revert.New(revert.Accounting, "remaining reward tokens must stay with the campaign record")
	}
	consumed := own.Output.Value.QuantityOf(policy, rec.Name)
	paid := toBacker.Value.QuantityOf(policy, rec.Name)
	if returned != consumed-paid {
		return revert.Newf(revert.Accounting, "reward tokens not conserved: consumed %d, returned %d, paid %d", consumed, returned, paid)
	}

	perToken := rec.Goal / rec.Fraction
	if perToken <= 0 {
		return revert.Newf(revert.Accounting, "goal %d too small for fraction %d", rec.Goal, rec.Fraction)
	}
	if want := backerOut.Value.Lovelace() / perToken; paid != want {
		return revert.Newf(revert.Accounting, "backer reward %d, contribution entitles %d", paid, want)
	}
	return nil
}
