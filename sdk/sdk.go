package sdk

import "slices"

// OutputReference points at the ledger entry an input consumes.
type OutputReference struct {
	TxID  string
	Index uint32
}

// Output is a ledger entry: where the value sits, what it holds and the
// optional inline record (raw CBOR, decoded by contract/records).
type Output struct {
	Address Address
	Value   Value
	Datum   []byte
}

// HasDatum reports whether an inline record is attached.
func (o Output) HasDatum() bool { return len(o.Datum) > 0 }

// Input is an output being consumed (or only read, for reference inputs).
type Input struct {
	OutRef OutputReference
	Output Output
}

// ValidityRange is the self-declared time window of the transaction. A nil
// bound is unbounded on that side.
type ValidityRange struct {
	Lower *int64
	Upper *int64
}

// Between builds a closed range, handy in tests.
// Example payload: sdk.Between(100, 200)
func Between(lower, upper int64) ValidityRange {
	return ValidityRange{Lower: &lower, Upper: &upper}
}

// After builds a range open to the future.
func After(lower int64) ValidityRange {
	return ValidityRange{Lower: &lower}
}

// Before builds a range open to the past.
func Before(upper int64) ValidityRange {
	return ValidityRange{Upper: &upper}
}

// EntirelyAfter is true when every instant of the range is strictly later than t.
func (r ValidityRange) EntirelyAfter(t int64) bool {
	return r.Lower != nil && *r.Lower > t
}

// EntirelyAtOrBefore is true when no instant of the range is later than t.
func (r ValidityRange) EntirelyAtOrBefore(t int64) bool {
	return r.Upper != nil && *r.Upper <= t
}

// Transaction is the candidate a validator judges. It is the whole input
// contract: no other host state is visible.
type Transaction struct {
	ID              string
	Inputs          []Input
	ReferenceInputs []Input
	Outputs         []Output
	Mint            Value
	Signatories     []KeyHash
	ValidRange      ValidityRange
}

// SignedBy checks the signer set for one key hash.
// Example payload: tx.SignedBy("ab01")
func (tx *Transaction) SignedBy(k KeyHash) bool {
	if k == "" {
		return false
	}
	return slices.Contains(tx.Signatories, k)
}

// MintedQuantity is the net minted (negative: burned) quantity of policy+name.
func (tx *Transaction) MintedQuantity(policy PolicyID, name AssetName) int64 {
	return tx.Mint.QuantityOf(policy, name)
}
