package governance

import (
	"bytes"
	"slices"

	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// settle closes a proposal once voting ended. Execute needs a yes majority
// and applies the action to the config record; Reject needs a no majority
// and leaves the config alone.
func (v *Validator) settle(rec, next *records.GovernanceRecord, tx *sdk.Transaction, execute bool) error {
	if !tx.ValidRange.EntirelyAfter(rec.Deadline) {
		return revert.Newf(revert.Deadline, "voting still open until %d", rec.Deadline)
	}
	yes, no := rec.VotesCount.Yes, rec.VotesCount.No
	state := records.ProposalRejected
	if execute {
		if yes <= no {
			return revert.Newf(revert.State, "execute needs yes > no, got %d/%d", yes, no)
		}
		state = records.ProposalExecuted
	} else if no <= yes {
		return revert.Newf(revert.State, "reject needs no > yes, got %d/%d", no, yes)
	}

	want := rec.Clone()
	want.State = state
	if !next.Equal(want) {
		return revert.Newf(revert.State, "settlement may only move the proposal to %s", state)
	}
	if !execute {
		return nil
	}
	return v.updateConfig(rec.Action, tx)
}

// updateConfig compares the successor config byte for byte with the spent
// config after applying the action.
func (v *Validator) updateConfig(action records.ProposalAction, tx *sdk.Transaction) error {
	cfg, _, err := ledger.ConfigIn(tx.Inputs, v.params.ConfigPolicy, v.params.ConfigTokenName)
	if err != nil {
		return err
	}
	succ, err := ledger.SingleOutput(tx.Outputs, ledger.Holding(v.params.ConfigPolicy, v.params.ConfigTokenName), "config successor")
	if err != nil {
		return err
	}
	applied, err := Apply(cfg, action)
	if err != nil {
		return err
	}
	want, err := records.EncodeConfigRecord(applied)
	if err != nil {
		return revert.Wrap(revert.Schema, "encode config", err)
	}
	if !bytes.Equal(succ.Datum, want) {
		return revert.Newf(revert.State, "config successor does not match %s", action.Kind)
	}
	emitConfigUpdated(action)
	return nil
}

// Apply returns a copy of cfg with exactly the proposal's change made.
// Example payload: governance.Apply(cfg, records.ProposalAction{Kind: records.ProposalUpdateFeeAmount, FeeAmount: 7})
func Apply(cfg *records.ConfigRecord, action records.ProposalAction) (*records.ConfigRecord, error) {
	out := cfg.Clone()
	switch action.Kind {
	case records.ProposalAddValidator:
		out.MultisigValidatorGroup.Signers = append(out.MultisigValidatorGroup.Signers, action.Validator)
	case records.ProposalRemoveValidator:
		i := slices.Index(out.MultisigValidatorGroup.Signers, action.Validator)
		if i < 0 {
			return nil, revert.Newf(revert.State, "validator %s not in the group", action.Validator)
		}
		out.MultisigValidatorGroup.Signers = slices.Delete(out.MultisigValidatorGroup.Signers, i, i+1)
	case records.ProposalUpdateFeeAmount:
		out.FeesAmount = action.FeeAmount
	case records.ProposalUpdateFeeAddress:
		out.FeesAddress = action.FeeAddress
	default:
		return nil, revert.Newf(revert.InvalidAction, "unknown proposal kind %d", action.Kind)
	}
	return out, nil
}
