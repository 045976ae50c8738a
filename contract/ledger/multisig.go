// Package ledger holds the shared primitives the campaign and governance
// validators are built from: multisig authorization, value accounting over
// filtered inputs/outputs, payout checks and bounded lookups. Everything here
// is a pure function of the candidate transaction.
package ledger

import (
	"okinoko_fund/contract/records"
	"okinoko_fund/sdk"
)

// Authorize is true when at least group.Required distinct group members signed.
// A signer listed twice in the group still counts once.
// Example payload: ledger.Authorize(tx.Signatories, cfg.MultisigValidatorGroup)
func Authorize(signatories []sdk.KeyHash, group records.MultisigGroup) bool {
	signed := make(map[sdk.KeyHash]bool, len(signatories))
	for _, s := range signatories {
		signed[s] = true
	}
	counted := make(map[sdk.KeyHash]bool, len(group.Signers))
	var n int64
	for _, s := range group.Signers {
		if counted[s] || !signed[s] {
			continue
		}
		counted[s] = true
		n++
	}
	return n >= group.Required
}
