package governance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_fund/contract/governance"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// ---- submit ----

func submitTx(t *testing.T, rec *records.GovernanceRecord) *sdk.Transaction {
	t.Helper()
	return &sdk.Transaction{
		Inputs:      []sdk.Input{{OutRef: sdk.OutputReference{TxID: "01"}, Output: sdk.Output{Address: feeAddr, Value: sdk.Lovelace(9_000_000)}}},
		Outputs:     []sdk.Output{proposalOut(t, rec)},
		Mint:        sdk.Value{}.With(govPolicy, rec.ProposalID, 1),
		Signatories: []sdk.KeyHash{submitter},
	}
}

func submit() records.GovernanceAction {
	return records.GovernanceAction{Kind: records.GovSubmitProposal, ProposalID: proposalID}
}

func TestSubmitProposal(t *testing.T) {
	v := newValidator(t)
	require.NoError(t, v.Mint(submit(), govPolicy, submitTx(t, feeProposal())))
}

func TestSubmitRejects(t *testing.T) {
	cases := []struct {
		name   string
		edit   func(t *testing.T, tx *sdk.Transaction)
		action records.GovernanceAction
		kind   revert.Kind
	}{
		{"vote is not a mint action", func(t *testing.T, tx *sdk.Transaction) {}, records.GovernanceAction{Kind: records.GovVote}, revert.InvalidAction},
		{"two tokens", func(t *testing.T, tx *sdk.Transaction) {
			tx.Mint = tx.Mint.With(govPolicy, proposalID, 1)
		}, submit(), revert.Accounting},
		{"token named differently", func(t *testing.T, tx *sdk.Transaction) {
			tx.Mint = sdk.Value{}.With(govPolicy, "0b", 1)
		}, submit(), revert.Accounting},
		{"not signed by submitter", func(t *testing.T, tx *sdk.Transaction) {
			tx.Signatories = []sdk.KeyHash{voter1}
		}, submit(), revert.Authorization},
		{"vote already cast", func(t *testing.T, tx *sdk.Transaction) {
			rec := feeProposal()
			rec.Votes[1].Vote = records.VoteYes
			tx.Outputs[0] = proposalOut(t, rec)
		}, submit(), revert.State},
		{"tally not zero", func(t *testing.T, tx *sdk.Transaction) {
			rec := feeProposal()
			rec.VotesCount.No = 1
			tx.Outputs[0] = proposalOut(t, rec)
		}, submit(), revert.State},
		{"already executed", func(t *testing.T, tx *sdk.Transaction) {
			rec := feeProposal()
			rec.State = records.ProposalExecuted
			tx.Outputs[0] = proposalOut(t, rec)
		}, submit(), revert.State},
		{"locked at a wallet", func(t *testing.T, tx *sdk.Transaction) {
			tx.Outputs[0].Address = feeAddr
		}, submit(), revert.Reference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newValidator(t)
			tx := submitTx(t, feeProposal())
			tc.edit(t, tx)
			err := v.Mint(tc.action, govPolicy, tx)
			assert.True(t, revert.IsKind(err, tc.kind), "got %v", err)
		})
	}
}

// ---- vote ----

func castVote(voter sdk.KeyHash, vote records.Vote) records.GovernanceAction {
	return records.GovernanceAction{Kind: records.GovVote, Voter: voter, Vote: vote}
}

// voteTx carries rec to next with the voter signing inside the voting window.
func voteTx(t *testing.T, rec, next *records.GovernanceRecord, voter sdk.KeyHash) *sdk.Transaction {
	t.Helper()
	return &sdk.Transaction{
		Inputs:      []sdk.Input{{OutRef: ownRef, Output: proposalOut(t, rec)}},
		Outputs:     []sdk.Output{proposalOut(t, next)},
		Signatories: []sdk.KeyHash{voter},
		ValidRange:  sdk.Between(100, 900),
	}
}

func voted(rec *records.GovernanceRecord, idx int, vote records.Vote) *records.GovernanceRecord {
	next := rec.Clone()
	next.Votes[idx].Vote = vote
	next.VotesCount = next.VotesCount.Bump(vote)
	return next
}

func TestVoteRecordsBallot(t *testing.T) {
	v := newValidator(t)
	rec := feeProposal()
	for i, vote := range []records.Vote{records.VoteYes, records.VoteNo, records.VoteAbstain} {
		voter := rec.Votes[i].Voter
		next := voted(rec, i, vote)
		require.NoError(t, v.Spend(rec, castVote(voter, vote), ownRef, voteTx(t, rec, next, voter)), "voter %s", voter)
		rec = next
	}
	assert.Equal(t, records.VotesCount{Yes: 1, No: 1, Abstain: 1}, rec.VotesCount)
}

func TestVoteOnCastEntryRejected(t *testing.T) {
	v := newValidator(t)
	rec := voted(feeProposal(), 0, records.VoteYes)
	for _, vote := range []records.Vote{records.VoteYes, records.VoteNo, records.VoteAbstain} {
		next := rec.Clone()
		next.Votes[0].Vote = vote
		err := v.Spend(rec, castVote(voter1, vote), ownRef, voteTx(t, rec, next, voter1))
		assert.True(t, revert.IsKind(err, revert.State), "vote %s: %v", vote, err)
	}
}

func TestVoteRejects(t *testing.T) {
	cases := []struct {
		name   string
		edit   func(next *records.GovernanceRecord, tx *sdk.Transaction)
		action records.GovernanceAction
		kind   revert.Kind
	}{
		{"window reaches past deadline", func(next *records.GovernanceRecord, tx *sdk.Transaction) {
			tx.ValidRange = sdk.Between(900, 1_100)
		}, castVote(voter2, records.VoteYes), revert.Deadline},
		{"unbounded window", func(next *records.GovernanceRecord, tx *sdk.Transaction) {
			tx.ValidRange = sdk.After(100)
		}, castVote(voter2, records.VoteYes), revert.Deadline},
		{"not signed", func(next *records.GovernanceRecord, tx *sdk.Transaction) {
			tx.Signatories = []sdk.KeyHash{voter3}
		}, castVote(voter2, records.VoteYes), revert.Authorization},
		{"not a voter", func(next *records.GovernanceRecord, tx *sdk.Transaction) {
			tx.Signatories = []sdk.KeyHash{submitter}
		}, castVote(submitter, records.VoteYes), revert.Authorization},
		{"pending is no ballot", func(next *records.GovernanceRecord, tx *sdk.Transaction) {}, castVote(voter2, records.VotePending), revert.InvalidAction},
		{"wrong counter", func(next *records.GovernanceRecord, tx *sdk.Transaction) {
			next.VotesCount = records.VotesCount{No: 1}
		}, castVote(voter2, records.VoteYes), revert.State},
		{"other entry touched", func(next *records.GovernanceRecord, tx *sdk.Transaction) {
			next.Votes[2].Vote = records.VoteNo
		}, castVote(voter2, records.VoteYes), revert.State},
		{"deadline moved", func(next *records.GovernanceRecord, tx *sdk.Transaction) {
			next.Deadline = 5_000
		}, castVote(voter2, records.VoteYes), revert.State},
		{"proposal id changed", func(next *records.GovernanceRecord, tx *sdk.Transaction) {
			next.ProposalID = "0b"
		}, castVote(voter2, records.VoteYes), revert.State},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newValidator(t)
			rec := feeProposal()
			next := voted(rec, 1, records.VoteYes)
			tx := voteTx(t, rec, next, voter2)
			tc.edit(next, tx)
			tx.Outputs[0] = proposalOut(t, next)
			err := v.Spend(rec, tc.action, ownRef, tx)
			assert.True(t, revert.IsKind(err, tc.kind), "got %v", err)
		})
	}
}

// ---- settle ----

func tallied(action records.ProposalAction, yes, no int64) *records.GovernanceRecord {
	rec := newProposal(action)
	rec.VotesCount = records.VotesCount{Yes: yes, No: no}
	return rec
}

func settleTx(t *testing.T, rec *records.GovernanceRecord, state records.ProposalState, cfg, succ *records.ConfigRecord) *sdk.Transaction {
	t.Helper()
	next := rec.Clone()
	next.State = state
	tx := &sdk.Transaction{
		Inputs:     []sdk.Input{{OutRef: ownRef, Output: proposalOut(t, rec)}},
		Outputs:    []sdk.Output{proposalOut(t, next)},
		ValidRange: sdk.After(deadline + 1),
	}
	if cfg != nil {
		tx.Inputs = append(tx.Inputs, sdk.Input{OutRef: sdk.OutputReference{TxID: "cc"}, Output: configOut(t, cfg)})
		tx.Outputs = append(tx.Outputs, configOut(t, succ))
	}
	return tx
}

var execute = records.GovernanceAction{Kind: records.GovExecute}

func TestExecuteAppliesEachAction(t *testing.T) {
	cases := []struct {
		action records.ProposalAction
		want   func(c *records.ConfigRecord)
	}{
		{records.ProposalAction{Kind: records.ProposalAddValidator, Validator: "d103"}, func(c *records.ConfigRecord) {
			c.MultisigValidatorGroup.Signers = []sdk.KeyHash{admin1, admin2, "d103"}
		}},
		{records.ProposalAction{Kind: records.ProposalRemoveValidator, Validator: admin1}, func(c *records.ConfigRecord) {
			c.MultisigValidatorGroup.Signers = []sdk.KeyHash{admin2}
		}},
		{records.ProposalAction{Kind: records.ProposalUpdateFeeAmount, FeeAmount: 7_000_000}, func(c *records.ConfigRecord) {
			c.FeesAmount = 7_000_000
		}},
		{records.ProposalAction{Kind: records.ProposalUpdateFeeAddress, FeeAddress: cfgAddr}, func(c *records.ConfigRecord) {
			c.FeesAddress = cfgAddr
		}},
	}
	for _, tc := range cases {
		t.Run(tc.action.Kind.String(), func(t *testing.T) {
			v := newValidator(t)
			cfg := baseConfig()
			succ := baseConfig()
			tc.want(succ)
			applied, err := governance.Apply(cfg, tc.action)
			require.NoError(t, err)
			assert.Equal(t, succ, applied)
			assert.Equal(t, baseConfig(), cfg, "predecessor left untouched")

			rec := tallied(tc.action, 2, 1)
			require.NoError(t, v.Spend(rec, execute, ownRef, settleTx(t, rec, records.ProposalExecuted, cfg, succ)))

			// one more changed field must be caught
			succ.Categories = append(succ.Categories, "6e6577")
			err = v.Spend(rec, execute, ownRef, settleTx(t, rec, records.ProposalExecuted, cfg, succ))
			assert.True(t, revert.IsKind(err, revert.State), "got %v", err)
		})
	}
}

func TestExecuteBeforeDeadlineRejected(t *testing.T) {
	v := newValidator(t)
	rec := tallied(feeProposal().Action, 3, 0)
	succ := baseConfig()
	succ.FeesAmount = 7_000_000
	tx := settleTx(t, rec, records.ProposalExecuted, baseConfig(), succ)
	tx.ValidRange = sdk.Between(900, 2_000)
	err := v.Spend(rec, execute, ownRef, tx)
	assert.True(t, revert.IsKind(err, revert.Deadline), "got %v", err)
}

func TestExecuteRejects(t *testing.T) {
	v := newValidator(t)
	succ := baseConfig()
	succ.FeesAmount = 7_000_000

	tie := tallied(feeProposal().Action, 1, 1)
	err := v.Spend(tie, execute, ownRef, settleTx(t, tie, records.ProposalExecuted, baseConfig(), succ))
	assert.True(t, revert.IsKind(err, revert.State), "tie: %v", err)

	rec := tallied(feeProposal().Action, 2, 0)
	err = v.Spend(rec, execute, ownRef, settleTx(t, rec, records.ProposalRejected, baseConfig(), succ))
	assert.True(t, revert.IsKind(err, revert.State), "wrong target state: %v", err)

	err = v.Spend(rec, execute, ownRef, settleTx(t, rec, records.ProposalExecuted, nil, nil))
	assert.True(t, revert.IsKind(err, revert.Reference), "no config: %v", err)

	absent := tallied(records.ProposalAction{Kind: records.ProposalRemoveValidator, Validator: "d1ff"}, 2, 0)
	err = v.Spend(absent, execute, ownRef, settleTx(t, absent, records.ProposalExecuted, baseConfig(), baseConfig()))
	assert.True(t, revert.IsKind(err, revert.State), "remove absent: %v", err)

	done := tallied(feeProposal().Action, 2, 0)
	done.State = records.ProposalExecuted
	err = v.Spend(done, execute, ownRef, settleTx(t, done, records.ProposalExecuted, baseConfig(), succ))
	assert.True(t, revert.IsKind(err, revert.State), "settled twice: %v", err)
}

func TestRejectNeedsNoMajority(t *testing.T) {
	v := newValidator(t)
	reject := records.GovernanceAction{Kind: records.GovReject}

	rec := tallied(feeProposal().Action, 0, 2)
	require.NoError(t, v.Spend(rec, reject, ownRef, settleTx(t, rec, records.ProposalRejected, nil, nil)))

	yes := tallied(feeProposal().Action, 2, 1)
	err := v.Spend(yes, reject, ownRef, settleTx(t, yes, records.ProposalRejected, nil, nil))
	assert.True(t, revert.IsKind(err, revert.State), "got %v", err)

	early := settleTx(t, rec, records.ProposalRejected, nil, nil)
	early.ValidRange = sdk.Before(deadline)
	err = v.Spend(rec, reject, ownRef, early)
	assert.True(t, revert.IsKind(err, revert.Deadline), "got %v", err)
}

func TestSubmitThroughSpendRejected(t *testing.T) {
	v := newValidator(t)
	rec := feeProposal()
	err := v.Spend(rec, submit(), ownRef, voteTx(t, rec, rec, voter1))
	assert.True(t, revert.IsKind(err, revert.InvalidAction), "got %v", err)
}

// ---- proposal token ----

func withoutToken(o sdk.Output) sdk.Output {
	o.Value = sdk.Lovelace(o.Value.Lovelace())
	return o
}

func TestVoteKeepsProposalToken(t *testing.T) {
	v := newValidator(t)
	rec := feeProposal()
	next := voted(rec, 0, records.VoteYes)
	tx := voteTx(t, rec, next, voter1)
	tx.Outputs[0] = withoutToken(tx.Outputs[0])
	tx.Outputs = append(tx.Outputs, sdk.Output{
		Address: sdk.Address{Payment: sdk.KeyCredential(voter1)},
		Value:   sdk.Lovelace(1_500_000).With(govPolicy, proposalID, 1),
	})

	err := v.Spend(rec, castVote(voter1, records.VoteYes), ownRef, tx)
	assert.True(t, revert.IsKind(err, revert.Reference), "got %v", err)
}

func TestSettleNeedsMintedProposal(t *testing.T) {
	succ := baseConfig()
	succ.FeesAmount = 7_000_000
	rec := tallied(feeProposal().Action, 2, 0)

	t.Run("never minted", func(t *testing.T) {
		v := newValidator(t)
		tx := settleTx(t, rec, records.ProposalExecuted, baseConfig(), succ)
		tx.Inputs[0].Output = withoutToken(tx.Inputs[0].Output)
		tx.Outputs[0] = withoutToken(tx.Outputs[0])

		err := v.Spend(rec, execute, ownRef, tx)
		assert.True(t, revert.IsKind(err, revert.Reference), "got %v", err)
	})

	t.Run("foreign policy", func(t *testing.T) {
		v := newValidator(t)
		tx := settleTx(t, rec, records.ProposalExecuted, baseConfig(), succ)
		tx.Inputs[0].Output.Value = sdk.Lovelace(2_000_000).With("f0f0", proposalID, 1)

		err := v.Spend(rec, execute, ownRef, tx)
		assert.True(t, revert.IsKind(err, revert.Reference), "got %v", err)
	})

	t.Run("token leaves on reject", func(t *testing.T) {
		v := newValidator(t)
		lost := tallied(feeProposal().Action, 0, 2)
		tx := settleTx(t, lost, records.ProposalRejected, nil, nil)
		tx.Outputs[0] = withoutToken(tx.Outputs[0])

		err := v.Spend(lost, records.GovernanceAction{Kind: records.GovReject}, ownRef, tx)
		assert.True(t, revert.IsKind(err, revert.Reference), "got %v", err)
	})
}
