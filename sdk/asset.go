package sdk

import "sort"

// PolicyID is the hex encoded minting policy (script hash) of an asset.
type PolicyID string

// AssetName is the hex encoded token name under a policy.
type AssetName string

const (
	// AdaPolicy and AdaName address the native coin inside a Value.
	AdaPolicy PolicyID  = ""
	AdaName   AssetName = ""
)

// String returns the raw hex text for logging.
func (p PolicyID) String() string { return string(p) }

// String returns the raw hex text for logging.
func (n AssetName) String() string { return string(n) }

// Value is a multi-asset bag: policy -> name -> quantity. Mint maps reuse it
// with negative quantities for burns.
type Value map[PolicyID]map[AssetName]int64

// Lovelace builds a Value holding only native coin.
// Example payload: sdk.Lovelace(2_000_000)
func Lovelace(n int64) Value {
	return Value{AdaPolicy: {AdaName: n}}
}

// Lovelace reads the native coin quantity.
func (v Value) Lovelace() int64 {
	return v.QuantityOf(AdaPolicy, AdaName)
}

// QuantityOf returns the quantity for policy+name, zero when missing.
func (v Value) QuantityOf(policy PolicyID, name AssetName) int64 {
	if v == nil {
		return 0
	}
	return v[policy][name]
}

// Tokens returns the names minted under policy; nil when the policy is absent.
func (v Value) Tokens(policy PolicyID) map[AssetName]int64 {
	if v == nil {
		return nil
	}
	return v[policy]
}

// With returns a copy of v with qty added for policy+name.
// Example payload: sdk.Lovelace(2_000_000).With("aa", "cafe", 10)
func (v Value) With(policy PolicyID, name AssetName, qty int64) Value {
	out := v.Clone()
	if out[policy] == nil {
		out[policy] = map[AssetName]int64{}
	}
	out[policy][name] += qty
	return out
}

// Clone deep copies the nested maps so callers never alias fixture values.
func (v Value) Clone() Value {
	out := make(Value, len(v))
	for p, names := range v {
		inner := make(map[AssetName]int64, len(names))
		for n, q := range names {
			inner[n] = q
		}
		out[p] = inner
	}
	return out
}

// Policies lists the policy ids in sorted order for deterministic encoding.
func (v Value) Policies() []PolicyID {
	out := make([]PolicyID, 0, len(v))
	for p := range v {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Names lists the asset names under policy in sorted order.
func (v Value) Names(policy PolicyID) []AssetName {
	names := v[policy]
	out := make([]AssetName, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
