package campaign

import (
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// Spend judges consuming the campaign-script entry at ref. The slot holds
// either the campaign record or a backer marker; dispatch goes by that kind
// and the action, every pair not listed below is an InvalidAction rejection.
// Example payload: v.Spend(datum, records.ActionSupport, ref, tx)
func (v *Validator) Spend(datum *records.CampaignDatum, action records.CampaignAction, ref sdk.OutputReference, tx *sdk.Transaction) error {
	err := v.spend(datum, action, ref, tx)
	if err != nil {
		emitRejected(action.String(), datumName(datum), err)
		return err
	}
	emitSpent(datum, action, ref)
	return nil
}

func (v *Validator) spend(datum *records.CampaignDatum, action records.CampaignAction, ref sdk.OutputReference, tx *sdk.Transaction) error {
	if datum == nil || (datum.Campaign == nil && datum.Backer == nil) {
		return revert.New(revert.Reference, "spend without record")
	}
	script, own, err := ledger.OwnScript(tx, ref)
	if err != nil {
		return err
	}

	if action == records.ActionAdminOverride {
		return v.requirePlatform(tx)
	}

	switch datum.Kind {
	case records.DatumCampaign:
		rec := datum.Campaign
		if rec == nil {
			break
		}
		switch action {
		case records.ActionSupport:
			return v.support(rec, script, own, tx)
		case records.ActionCancel:
			return v.cancel(rec, script, tx)
		case records.ActionFinish:
			return v.finish(rec, script, tx)
		case records.ActionRelease:
			return v.release(rec, script, tx)
		}
	case records.DatumBacker:
		b := datum.Backer
		if b == nil {
			break
		}
		switch action {
		case records.ActionCancel:
			return v.refund(b, script, own, tx, false)
		case records.ActionRefund:
			return v.refund(b, script, own, tx, true)
		case records.ActionFinish:
			return v.sweep(own, tx)
		}
	}
	return revert.Newf(revert.InvalidAction, "action %s not allowed on %s record", action, datum.Kind)
}

func datumName(d *records.CampaignDatum) sdk.AssetName {
	if d != nil && d.Kind == records.DatumCampaign && d.Campaign != nil {
		return d.Campaign.Name
	}
	return ""
}
