package ledger

import (
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// -----------------------------------------------------------------------------
// Bounded scans. Each walks a finite slice once and reports a Reference
// rejection instead of a zero value when nothing matches.
// -----------------------------------------------------------------------------

// OwnInput finds the input consuming ref, the entry the validator guards.
// Example payload: ledger.OwnInput(tx, sdk.OutputReference{TxID: "aa", Index: 0})
func OwnInput(tx *sdk.Transaction, ref sdk.OutputReference) (*sdk.Input, error) {
	for i := range tx.Inputs {
		if tx.Inputs[i].OutRef == ref {
			return &tx.Inputs[i], nil
		}
	}
	return nil, revert.Newf(revert.Reference, "own input %s#%d not found", ref.TxID, ref.Index)
}

// OwnScript resolves the script hash guarding ref.
func OwnScript(tx *sdk.Transaction, ref sdk.OutputReference) (sdk.ScriptHash, *sdk.Input, error) {
	in, err := OwnInput(tx, ref)
	if err != nil {
		return "", nil, err
	}
	script := in.Output.Address.ScriptHash()
	if script == "" {
		return "", nil, revert.New(revert.Reference, "own input is not at a script address")
	}
	return script, in, nil
}

// SingleOutput returns the one output matching p; zero or several is a Reference rejection.
func SingleOutput(outputs []sdk.Output, p Predicate, what string) (*sdk.Output, error) {
	var found *sdk.Output
	for i := range outputs {
		if !p(outputs[i]) {
			continue
		}
		if found != nil {
			return nil, revert.Newf(revert.Reference, "more than one %s output", what)
		}
		found = &outputs[i]
	}
	if found == nil {
		return nil, revert.Newf(revert.Reference, "%s output not found", what)
	}
	return found, nil
}

// FirstOutput returns the first output matching p.
func FirstOutput(outputs []sdk.Output, p Predicate, what string) (*sdk.Output, error) {
	for i := range outputs {
		if p(outputs[i]) {
			return &outputs[i], nil
		}
	}
	return nil, revert.Newf(revert.Reference, "%s output not found", what)
}

// ConfigIn locates the config record by its identification token among inputs
// (reference inputs for readers, spent inputs for the governance update).
// Example payload: ledger.ConfigIn(tx.ReferenceInputs, params.ConfigPolicy, params.ConfigTokenName)
func ConfigIn(inputs []sdk.Input, policy sdk.PolicyID, name sdk.AssetName) (*records.ConfigRecord, *sdk.Output, error) {
	out, err := SingleOutput(Resolved(inputs), Holding(policy, name), "config")
	if err != nil {
		return nil, nil, err
	}
	return decodeConfig(out)
}

// ConfigOut locates the successor config record among outputs.
func ConfigOut(outputs []sdk.Output, policy sdk.PolicyID, name sdk.AssetName) (*records.ConfigRecord, *sdk.Output, error) {
	out, err := SingleOutput(outputs, Holding(policy, name), "config successor")
	if err != nil {
		return nil, nil, err
	}
	return decodeConfig(out)
}

func decodeConfig(out *sdk.Output) (*records.ConfigRecord, *sdk.Output, error) {
	if !out.HasDatum() {
		return nil, nil, revert.New(revert.Reference, "config output carries no record")
	}
	cfg, err := records.DecodeConfigRecord(out.Datum)
	if err != nil {
		return nil, nil, revert.Wrap(revert.Schema, "config record", err)
	}
	return cfg, out, nil
}

// DecodeCampaign decodes the campaign slot of an output as a rejection-aware call.
func DecodeCampaign(o *sdk.Output) (*records.CampaignDatum, error) {
	if !o.HasDatum() {
		return nil, revert.New(revert.Reference, "output carries no record")
	}
	d, err := records.DecodeCampaignDatum(o.Datum)
	if err != nil {
		return nil, revert.Wrap(revert.Schema, "campaign datum", err)
	}
	return d, nil
}
