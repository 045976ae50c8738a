package governance

import (
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// Spend judges consuming the proposal held at ref. Every accepted action
// leaves exactly one continuing proposal output at the same address.
// Example payload: v.Spend(rec, records.GovernanceAction{Kind: records.GovVote, Voter: "k1", Vote: records.VoteYes}, ref, tx)
func (v *Validator) Spend(rec *records.GovernanceRecord, action records.GovernanceAction, ref sdk.OutputReference, tx *sdk.Transaction) error {
	next, err := v.spend(rec, action, ref, tx)
	if err != nil {
		var id sdk.AssetName
		if rec != nil {
			id = rec.ProposalID
		}
		emitRejected(action.Kind.String(), id, err)
		return err
	}
	emitSpent(next, action)
	return nil
}

func (v *Validator) spend(rec *records.GovernanceRecord, action records.GovernanceAction, ref sdk.OutputReference, tx *sdk.Transaction) (*records.GovernanceRecord, error) {
	if rec == nil {
		return nil, revert.New(revert.Reference, "spend without proposal record")
	}
	if action.Kind == records.GovSubmitProposal {
		return nil, revert.New(revert.InvalidAction, "proposals are submitted by minting")
	}
	script, own, err := ledger.OwnScript(tx, ref)
	if err != nil {
		return nil, err
	}
	// the proposal token is minted under the same script that guards it
	policy := sdk.PolicyID(script)
	if !holdsProposal(&own.Output, policy, rec.ProposalID) {
		return nil, revert.Newf(revert.Reference, "entry %s#%d does not hold proposal token %s", ref.TxID, ref.Index, rec.ProposalID)
	}
	out, err := ledger.SingleOutput(tx.Outputs, ledger.AtAddress(own.Output.Address), "continuing proposal")
	if err != nil {
		return nil, err
	}
	next, err := decodeProposal(out)
	if err != nil {
		return nil, err
	}
	if next.ProposalID != rec.ProposalID {
		return nil, revert.New(revert.State, "continuing proposal id differs")
	}
	if !holdsProposal(out, policy, rec.ProposalID) {
		return nil, revert.Newf(revert.Reference, "continuing proposal lost token %s", rec.ProposalID)
	}
	if rec.State != records.ProposalInProgress {
		return nil, revert.Newf(revert.State, "proposal already %s", rec.State)
	}

	switch action.Kind {
	case records.GovVote:
		return next, vote(rec, next, action, tx)
	case records.GovExecute:
		return next, v.settle(rec, next, tx, true)
	case records.GovReject:
		return next, v.settle(rec, next, tx, false)
	}
	return nil, revert.Newf(revert.InvalidAction, "unknown governance action %d", action.Kind)
}

func holdsProposal(o *sdk.Output, policy sdk.PolicyID, id sdk.AssetName) bool {
	return o.Value.QuantityOf(policy, id) == 1
}

// vote checks that exactly the voter's Pending entry flipped to the cast vote
// and exactly the matching counter moved by one.
func vote(rec, next *records.GovernanceRecord, action records.GovernanceAction, tx *sdk.Transaction) error {
	if !action.Vote.Cast() {
		return revert.Newf(revert.InvalidAction, "vote %d is not yes, no or abstain", action.Vote)
	}
	if !tx.ValidRange.EntirelyAtOrBefore(rec.Deadline) {
		return revert.Newf(revert.Deadline, "voting closed at %d", rec.Deadline)
	}
	if !tx.SignedBy(action.Voter) {
		return revert.New(revert.Authorization, "voter did not sign")
	}
	current, eligible := rec.VoteOf(action.Voter)
	if !eligible {
		return revert.Newf(revert.Authorization, "%s is not a voter on this proposal", action.Voter)
	}
	if current != records.VotePending {
		return revert.Newf(revert.State, "%s already voted %s", action.Voter, current)
	}

	want := rec.Clone()
	for i := range want.Votes {
		if want.Votes[i].Voter == action.Voter {
			want.Votes[i].Vote = action.Vote
			break
		}
	}
	want.VotesCount = rec.VotesCount.Bump(action.Vote)
	if !next.Equal(want) {
		return revert.New(revert.State, "vote may only record the cast vote and bump its counter")
	}
	return nil
}
