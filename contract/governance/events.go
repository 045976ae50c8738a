package governance

import (
	"fmt"

	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// emitSubmitted writes a "gv|submit" line for every new proposal.
func emitSubmitted(rec *records.GovernanceRecord) {
	log.Info(fmt.Sprintf(
		"gv|submit|id:%s|by:%s|a:%s|dl:%d",
		rec.ProposalID,
		rec.SubmittedBy,
		rec.Action.Kind,
		rec.Deadline,
	))
}

// emitSpent is the catch-all line for votes and settlements.
func emitSpent(next *records.GovernanceRecord, action records.GovernanceAction) {
	if action.Kind == records.GovVote {
		log.Info(fmt.Sprintf(
			"gv|vote|id:%s|by:%s|v:%s|y:%d|n:%d|a:%d",
			next.ProposalID,
			action.Voter,
			action.Vote,
			next.VotesCount.Yes,
			next.VotesCount.No,
			next.VotesCount.Abstain,
		))
		return
	}
	log.Info(fmt.Sprintf(
		"gv|%s|id:%s|s:%s",
		action.Kind,
		next.ProposalID,
		next.State,
	))
}

// emitConfigUpdated names the field a proposal touched.
func emitConfigUpdated(action records.ProposalAction) {
	log.Info(fmt.Sprintf("gv|config|f:%s", action.Kind))
}

func emitRejected(op string, id sdk.AssetName, err error) {
	log.Debugw("rejected", "op", op, "id", string(id), "kind", string(revert.KindOf(err)), "err", err)
}
