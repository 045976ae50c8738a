package ledger

import "okinoko_fund/sdk"

// AtLeast is true when the outputs paid to addr carry at least lovelace.
// Example payload: ledger.AtLeast(creator.Address(), 2850, tx.Outputs)
func AtLeast(addr sdk.Address, lovelace int64, outputs []sdk.Output) bool {
	return SumLovelace(outputs, AtAddress(addr)) >= lovelace
}

// Exact is true when the outputs paid to addr carry exactly lovelace.
func Exact(addr sdk.Address, lovelace int64, outputs []sdk.Output) bool {
	return SumLovelace(outputs, AtAddress(addr)) == lovelace
}

// ExactTokens is true when the outputs paid to addr carry exactly qty of policy+name.
func ExactTokens(addr sdk.Address, policy sdk.PolicyID, name sdk.AssetName, qty int64, outputs []sdk.Output) bool {
	return SumQuantity(outputs, policy, name, AtAddress(addr)) == qty
}
