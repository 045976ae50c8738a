// Package governance validates proposals that change the platform config:
// submission on the mint side, voting and settlement on the spend side.
package governance

import (
	logging "github.com/ipfs/go-log/v2"

	"okinoko_fund/contract/config"
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

var log = logging.Logger("governance")

// Validator is immutable after New and safe for concurrent use.
type Validator struct {
	params config.Params
}

// New checks the params once, Execute needs the config identification token.
// Example payload: governance.New(params)
func New(params config.Params) (*Validator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Validator{params: params}, nil
}

// Mint only accepts SubmitProposal. The single proposal token must land with
// a fresh InProgress record at a script address.
// Example payload: v.Mint(records.GovernanceAction{Kind: records.GovSubmitProposal, ProposalID: "0a"}, "bb02", tx)
func (v *Validator) Mint(action records.GovernanceAction, policy sdk.PolicyID, tx *sdk.Transaction) error {
	rec, err := v.mint(action, policy, tx)
	if err != nil {
		emitRejected("mint", action.ProposalID, err)
		return err
	}
	emitSubmitted(rec)
	return nil
}

func (v *Validator) mint(action records.GovernanceAction, policy sdk.PolicyID, tx *sdk.Transaction) (*records.GovernanceRecord, error) {
	if action.Kind != records.GovSubmitProposal {
		return nil, revert.Newf(revert.InvalidAction, "%s is not a mint action", action.Kind)
	}
	tokens := tx.Mint.Tokens(policy)
	if len(tokens) != 1 || tokens[action.ProposalID] != 1 {
		return nil, revert.New(revert.Accounting, "submit must mint exactly one proposal token named after the proposal")
	}
	out, err := ledger.SingleOutput(tx.Outputs, ledger.Holding(policy, action.ProposalID), "proposal")
	if err != nil {
		return nil, err
	}
	if !out.Address.IsScript() {
		return nil, revert.New(revert.Reference, "proposal token must be locked at a script")
	}
	rec, err := decodeProposal(out)
	if err != nil {
		return nil, err
	}
	if rec.ProposalID != action.ProposalID {
		return nil, revert.New(revert.State, "record proposal id differs from the minted token")
	}
	if rec.State != records.ProposalInProgress {
		return nil, revert.Newf(revert.State, "new proposal must be in progress, got %s", rec.State)
	}
	if !tx.SignedBy(rec.SubmittedBy) {
		return nil, revert.New(revert.Authorization, "submitter did not sign")
	}
	if rec.Tally() != (records.VotesCount{}) {
		return nil, revert.New(revert.State, "ballots already cast on a new proposal")
	}
	if rec.VotesCount != (records.VotesCount{}) {
		return nil, revert.New(revert.State, "new proposal must start with a zero tally")
	}
	return rec, nil
}

func decodeProposal(o *sdk.Output) (*records.GovernanceRecord, error) {
	if !o.HasDatum() {
		return nil, revert.New(revert.Reference, "proposal output carries no record")
	}
	rec, err := records.DecodeGovernanceRecord(o.Datum)
	if err != nil {
		return nil, revert.Wrap(revert.Schema, "governance record", err)
	}
	return rec, nil
}
