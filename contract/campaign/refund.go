package campaign

import (
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// refund returns a backer's contribution once the campaign is cancelled.
// With burn set (Refund) the reward tokens must go back down; the Cancel
// path tolerates no burn but still forbids minting.
// Example payload: Refund of a 40 ada contribution pays >= 40 ada to the backer wallet
func (v *Validator) refund(b *records.BackerRecord, script sdk.ScriptHash, own *sdk.Input, tx *sdk.Transaction, burn bool) error {
	addr := own.Output.Address
	rec, err := cancelledCampaign(addr, tx)
	if err != nil {
		return err
	}
	if rec.State != records.CampaignCancelled {
		return revert.Newf(revert.State, "refunds need a cancelled campaign, got %s", rec.State)
	}

	contributed := ledger.SumInputsLovelace(tx.Inputs, ledger.And(ledger.AtAddress(addr), ledger.WithBacker(b)))
	paid := ledger.SumLovelace(tx.Outputs, ledger.AtAddress(b.Backer.Address()))
	if paid < contributed {
		return revert.Newf(revert.Accounting, "backer paid %d lovelace, contributed %d", paid, contributed)
	}

	minted := tx.MintedQuantity(sdk.PolicyID(script), rec.Name)
	if burn && minted >= 0 {
		return revert.New(revert.Accounting, "refund must burn reward tokens")
	}
	if minted > 0 {
		return revert.Newf(revert.Accounting, "refund mints %d reward tokens", minted)
	}
	return nil
}

// cancelledCampaign looks for the campaign record at addr among the outputs
// first (cancel and refund in one transaction) and then the reference inputs.
func cancelledCampaign(addr sdk.Address, tx *sdk.Transaction) (*records.CampaignRecord, error) {
	p := ledger.And(ledger.AtAddress(addr), ledger.WithAnyCampaign)
	out, err := ledger.FirstOutput(tx.Outputs, p, "campaign")
	if err != nil {
		out, err = ledger.FirstOutput(ledger.Resolved(tx.ReferenceInputs), p, "campaign")
		if err != nil {
			return nil, err
		}
	}
	d, err := ledger.DecodeCampaign(out)
	if err != nil {
		return nil, err
	}
	return d.Campaign, nil
}
