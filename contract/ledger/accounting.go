package ledger

import (
	"okinoko_fund/contract/records"
	"okinoko_fund/sdk"
)

// Predicate selects outputs (or resolved inputs) for accounting.
type Predicate func(o sdk.Output) bool

// Any matches everything.
func Any(sdk.Output) bool { return true }

// AtAddress matches outputs paid to exactly addr, stake part included.
func AtAddress(addr sdk.Address) Predicate {
	return func(o sdk.Output) bool { return o.Address == addr }
}

// Holding matches outputs carrying a positive quantity of policy+name.
func Holding(policy sdk.PolicyID, name sdk.AssetName) Predicate {
	return func(o sdk.Output) bool { return o.Value.QuantityOf(policy, name) > 0 }
}

// WithCampaign matches outputs whose inline record is a campaign record equal to rec.
func WithCampaign(rec *records.CampaignRecord) Predicate {
	return func(o sdk.Output) bool {
		d, ok := campaignDatum(o)
		return ok && d.Kind == records.DatumCampaign && d.Campaign.Equal(rec)
	}
}

// WithAnyCampaign matches outputs carrying any campaign record.
func WithAnyCampaign(o sdk.Output) bool {
	d, ok := campaignDatum(o)
	return ok && d.Kind == records.DatumCampaign
}

// WithBacker matches outputs whose inline record is a backer record equal to rec.
func WithBacker(rec *records.BackerRecord) Predicate {
	return func(o sdk.Output) bool {
		d, ok := campaignDatum(o)
		return ok && d.Kind == records.DatumBacker && *d.Backer == *rec
	}
}

// WithAnyBacker matches outputs carrying any backer record.
func WithAnyBacker(o sdk.Output) bool {
	d, ok := campaignDatum(o)
	return ok && d.Kind == records.DatumBacker
}

// And combines predicates, all must hold.
func And(ps ...Predicate) Predicate {
	return func(o sdk.Output) bool {
		for _, p := range ps {
			if !p(o) {
				return false
			}
		}
		return true
	}
}

func campaignDatum(o sdk.Output) (*records.CampaignDatum, bool) {
	if !o.HasDatum() {
		return nil, false
	}
	d, err := records.DecodeCampaignDatum(o.Datum)
	if err != nil {
		return nil, false
	}
	return d, true
}

// Resolved returns the outputs the inputs consume, in input order.
func Resolved(inputs []sdk.Input) []sdk.Output {
	out := make([]sdk.Output, len(inputs))
	for i, in := range inputs {
		out[i] = in.Output
	}
	return out
}

// Filter keeps the entries matching p.
func Filter(entries []sdk.Output, p Predicate) []sdk.Output {
	var out []sdk.Output
	for _, o := range entries {
		if p(o) {
			out = append(out, o)
		}
	}
	return out
}

// SumLovelace folds native coin over the entries matching p.
// Example payload: ledger.SumLovelace(tx.Outputs, ledger.AtAddress(backer))
func SumLovelace(entries []sdk.Output, p Predicate) int64 {
	var total int64
	for _, o := range entries {
		if p(o) {
			total += o.Value.Lovelace()
		}
	}
	return total
}

// SumQuantity folds one asset over the entries matching p.
func SumQuantity(entries []sdk.Output, policy sdk.PolicyID, name sdk.AssetName, p Predicate) int64 {
	var total int64
	for _, o := range entries {
		if p(o) {
			total += o.Value.QuantityOf(policy, name)
		}
	}
	return total
}

// SumInputsLovelace is SumLovelace over what the inputs consume.
func SumInputsLovelace(inputs []sdk.Input, p Predicate) int64 {
	return SumLovelace(Resolved(inputs), p)
}
