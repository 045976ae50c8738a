package records

import (
	"slices"

	"okinoko_fund/sdk"
)

// Vote is a voter's entry in a proposal. Pending means not cast yet.
type Vote uint8

const (
	VotePending Vote = 0
	VoteYes     Vote = 1
	VoteNo      Vote = 2
	VoteAbstain Vote = 3
)

// String prints the vote as lower-case text.
func (v Vote) String() string {
	switch v {
	case VotePending:
		return "pending"
	case VoteYes:
		return "yes"
	case VoteNo:
		return "no"
	case VoteAbstain:
		return "abstain"
	default:
		return "invalid"
	}
}

// Cast reports whether v is a vote a voter may submit.
func (v Vote) Cast() bool {
	return v == VoteYes || v == VoteNo || v == VoteAbstain
}

// ProposalState captures a proposal's lifecycle.
type ProposalState uint8

const (
	ProposalInProgress ProposalState = 0
	ProposalExecuted   ProposalState = 1
	ProposalRejected   ProposalState = 2
)

// String prints the proposal state as lower-case text for events and logs.
// Example payload: records.ProposalExecuted.String()
func (s ProposalState) String() string {
	switch s {
	case ProposalInProgress:
		return "in_progress"
	case ProposalExecuted:
		return "executed"
	case ProposalRejected:
		return "rejected"
	default:
		return "unspecified"
	}
}

// ProposalKind tags ProposalAction.
type ProposalKind uint8

const (
	ProposalAddValidator     ProposalKind = 0
	ProposalRemoveValidator  ProposalKind = 1
	ProposalUpdateFeeAmount  ProposalKind = 2
	ProposalUpdateFeeAddress ProposalKind = 3
)

// String names the proposal kind for events.
func (k ProposalKind) String() string {
	switch k {
	case ProposalAddValidator:
		return "add_validator"
	case ProposalRemoveValidator:
		return "remove_validator"
	case ProposalUpdateFeeAmount:
		return "update_fee_amount"
	case ProposalUpdateFeeAddress:
		return "update_fee_address"
	default:
		return "unknown"
	}
}

// ProposalAction is the config change a proposal carries. Only the field that
// belongs to Kind is meaningful.
type ProposalAction struct {
	Kind       ProposalKind
	Validator  sdk.KeyHash
	FeeAmount  int64
	FeeAddress sdk.Address
}

// VoteEntry is one voter slot of the fixed voter set.
type VoteEntry struct {
	Voter sdk.KeyHash
	Vote  Vote
}

// VotesCount is the running tally.
type VotesCount struct {
	Yes     int64
	No      int64
	Abstain int64
}

// Bump returns the tally with one more vote of kind v.
func (c VotesCount) Bump(v Vote) VotesCount {
	switch v {
	case VoteYes:
		c.Yes++
	case VoteNo:
		c.No++
	case VoteAbstain:
		c.Abstain++
	}
	return c
}

// GovernanceRecord is the state of a proposal held with its singleton token.
type GovernanceRecord struct {
	ProposalID  sdk.AssetName
	SubmittedBy sdk.KeyHash
	Action      ProposalAction
	Votes       []VoteEntry
	VotesCount  VotesCount
	Deadline    int64
	State       ProposalState
}

// Equal compares every field, vote order included.
func (g *GovernanceRecord) Equal(o *GovernanceRecord) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.ProposalID == o.ProposalID &&
		g.SubmittedBy == o.SubmittedBy &&
		g.Action == o.Action &&
		slices.Equal(g.Votes, o.Votes) &&
		g.VotesCount == o.VotesCount &&
		g.Deadline == o.Deadline &&
		g.State == o.State
}

// Clone copies the record including the vote slice.
func (g *GovernanceRecord) Clone() *GovernanceRecord {
	out := *g
	out.Votes = slices.Clone(g.Votes)
	return &out
}

// VoteOf returns the voter's entry and whether the voter is eligible at all.
func (g *GovernanceRecord) VoteOf(voter sdk.KeyHash) (Vote, bool) {
	for _, e := range g.Votes {
		if e.Voter == voter {
			return e.Vote, true
		}
	}
	return VotePending, false
}

// Tally recounts the votes map, the reference the stored counters must match.
func (g *GovernanceRecord) Tally() VotesCount {
	var c VotesCount
	for _, e := range g.Votes {
		c = c.Bump(e.Vote)
	}
	return c
}

// MultisigGroup is a named signer set with its threshold.
type MultisigGroup struct {
	Required int64
	Signers  []sdk.KeyHash
}

// AssetClass names one asset by policy and name.
type AssetClass struct {
	Policy sdk.PolicyID
	Name   sdk.AssetName
}

// ConfigRecord is the platform configuration owned by the config holder.
type ConfigRecord struct {
	FeesAddress            sdk.Address
	FeesAmount             int64
	FeesAsset              AssetClass
	SpendAddress           sdk.Address
	Categories             []string
	MultisigValidatorGroup MultisigGroup
	MultisigRefutxoupdate  MultisigGroup
	CetPolicy              sdk.PolicyID
	CotPolicy              sdk.PolicyID
	DaoPolicy              sdk.PolicyID
}

// Clone deep copies slices so a successor can be derived safely.
func (c *ConfigRecord) Clone() *ConfigRecord {
	out := *c
	out.Categories = slices.Clone(c.Categories)
	out.MultisigValidatorGroup.Signers = slices.Clone(c.MultisigValidatorGroup.Signers)
	out.MultisigRefutxoupdate.Signers = slices.Clone(c.MultisigRefutxoupdate.Signers)
	return &out
}

// GovernanceActionKind tags the governance redeemer.
type GovernanceActionKind uint8

const (
	GovSubmitProposal GovernanceActionKind = 0
	GovVote           GovernanceActionKind = 1
	GovExecute        GovernanceActionKind = 2
	GovReject         GovernanceActionKind = 3
)

// String names the action for events.
func (k GovernanceActionKind) String() string {
	switch k {
	case GovSubmitProposal:
		return "submit_proposal"
	case GovVote:
		return "vote"
	case GovExecute:
		return "execute"
	case GovReject:
		return "reject"
	default:
		return "unknown"
	}
}

// GovernanceAction is the redeemer for both the mint and spend side.
type GovernanceAction struct {
	Kind       GovernanceActionKind
	ProposalID sdk.AssetName
	Voter      sdk.KeyHash
	Vote       Vote
}
