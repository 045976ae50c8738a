package sdk

import (
	"encoding/hex"
	"strings"

	"github.com/CosmWasm/tinyjson"
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"
)

// Hand-maintained tinyjson codecs for the candidate transaction, kept in the
// same shape tinyjson generates so no reflection runs at decode time.
//
// Wire shape:
//
//	{"id":"..","inputs":[{"out_ref":{"tx_id":"..","index":0},
//	  "output":{"address":"script:aa/key:bb","value":{"":{"":2000000}},"datum":"d87980"}}],
//	 "reference_inputs":[..],"outputs":[..],"mint":{"aa":{"cafe":-1}},
//	 "signatories":["ab01"],"valid_range":{"lower":100,"upper":null}}

// DecodeTransaction parses the JSON form of a candidate transaction.
// Example payload: sdk.DecodeTransaction([]byte(`{"id":"t1"}`))
func DecodeTransaction(data []byte) (*Transaction, error) {
	tx := &Transaction{}
	if err := tinyjson.Unmarshal(data, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// EncodeTransaction renders the JSON form, used by fixtures and the harness.
func EncodeTransaction(tx *Transaction) ([]byte, error) {
	return tinyjson.Marshal(tx)
}

// MarshalTinyJSON supports tinyjson.Marshaler interface
func (tx Transaction) MarshalTinyJSON(out *jwriter.Writer) {
	out.RawByte('{')
	out.RawString(`"id":`)
	out.String(tx.ID)
	out.RawString(`,"inputs":`)
	writeInputs(out, tx.Inputs)
	out.RawString(`,"reference_inputs":`)
	writeInputs(out, tx.ReferenceInputs)
	out.RawString(`,"outputs":`)
	out.RawByte('[')
	for i, o := range tx.Outputs {
		if i > 0 {
			out.RawByte(',')
		}
		o.MarshalTinyJSON(out)
	}
	out.RawByte(']')
	out.RawString(`,"mint":`)
	tx.Mint.MarshalTinyJSON(out)
	out.RawString(`,"signatories":`)
	out.RawByte('[')
	for i, k := range tx.Signatories {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(string(k))
	}
	out.RawByte(']')
	out.RawString(`,"valid_range":{"lower":`)
	writeOptionalInt(out, tx.ValidRange.Lower)
	out.RawString(`,"upper":`)
	writeOptionalInt(out, tx.ValidRange.Upper)
	out.RawByte('}')
	out.RawByte('}')
}

// UnmarshalTinyJSON supports tinyjson.Unmarshaler interface
func (tx *Transaction) UnmarshalTinyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			tx.ID = in.String()
		case "inputs":
			tx.Inputs = readInputs(in)
		case "reference_inputs":
			tx.ReferenceInputs = readInputs(in)
		case "outputs":
			in.Delim('[')
			tx.Outputs = make([]Output, 0, 4)
			for !in.IsDelim(']') {
				var o Output
				(&o).UnmarshalTinyJSON(in)
				tx.Outputs = append(tx.Outputs, o)
				in.WantComma()
			}
			in.Delim(']')
		case "mint":
			(&tx.Mint).UnmarshalTinyJSON(in)
		case "signatories":
			in.Delim('[')
			tx.Signatories = make([]KeyHash, 0, 2)
			for !in.IsDelim(']') {
				tx.Signatories = append(tx.Signatories, KeyHash(strings.ToLower(in.String())))
				in.WantComma()
			}
			in.Delim(']')
		case "valid_range":
			in.Delim('{')
			for !in.IsDelim('}') {
				bound := in.UnsafeFieldName(false)
				in.WantColon()
				switch bound {
				case "lower":
					tx.ValidRange.Lower = readOptionalInt(in)
				case "upper":
					tx.ValidRange.Upper = readOptionalInt(in)
				default:
					in.SkipRecursive()
				}
				in.WantComma()
			}
			in.Delim('}')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

// MarshalTinyJSON supports tinyjson.Marshaler interface
func (o Output) MarshalTinyJSON(out *jwriter.Writer) {
	out.RawString(`{"address":`)
	out.String(o.Address.String())
	out.RawString(`,"value":`)
	o.Value.MarshalTinyJSON(out)
	if o.HasDatum() {
		out.RawString(`,"datum":`)
		out.String(hex.EncodeToString(o.Datum))
	}
	out.RawByte('}')
}

// UnmarshalTinyJSON supports tinyjson.Unmarshaler interface
func (o *Output) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "address":
			addr, err := ParseAddress(in.String())
			if err != nil {
				in.AddError(err)
			}
			o.Address = addr
		case "value":
			(&o.Value).UnmarshalTinyJSON(in)
		case "datum":
			raw, err := hex.DecodeString(in.String())
			if err != nil {
				in.AddError(err)
			}
			o.Datum = raw
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

// MarshalTinyJSON writes policies and names in sorted order.
func (v Value) MarshalTinyJSON(out *jwriter.Writer) {
	out.RawByte('{')
	for i, policy := range v.Policies() {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(string(policy))
		out.RawString(`:{`)
		for j, name := range v.Names(policy) {
			if j > 0 {
				out.RawByte(',')
			}
			out.String(string(name))
			out.RawByte(':')
			out.Int64(v[policy][name])
		}
		out.RawByte('}')
	}
	out.RawByte('}')
}

// UnmarshalTinyJSON supports tinyjson.Unmarshaler interface
func (v *Value) UnmarshalTinyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		return
	}
	out := Value{}
	in.Delim('{')
	for !in.IsDelim('}') {
		// hashes compare as lower-case hex, the form records decode to
		policy := PolicyID(strings.ToLower(in.String()))
		in.WantColon()
		names := out[policy]
		if names == nil {
			names = map[AssetName]int64{}
		}
		in.Delim('{')
		for !in.IsDelim('}') {
			name := AssetName(strings.ToLower(in.String()))
			in.WantColon()
			names[name] += in.Int64()
			in.WantComma()
		}
		in.Delim('}')
		out[policy] = names
		in.WantComma()
	}
	in.Delim('}')
	*v = out
}

func writeInputs(out *jwriter.Writer, inputs []Input) {
	out.RawByte('[')
	for i, input := range inputs {
		if i > 0 {
			out.RawByte(',')
		}
		out.RawString(`{"out_ref":{"tx_id":`)
		out.String(input.OutRef.TxID)
		out.RawString(`,"index":`)
		out.Uint32(input.OutRef.Index)
		out.RawString(`},"output":`)
		input.Output.MarshalTinyJSON(out)
		out.RawByte('}')
	}
	out.RawByte(']')
}

func readInputs(in *jlexer.Lexer) []Input {
	inputs := make([]Input, 0, 4)
	in.Delim('[')
	for !in.IsDelim(']') {
		var input Input
		in.Delim('{')
		for !in.IsDelim('}') {
			key := in.UnsafeFieldName(false)
			in.WantColon()
			switch key {
			case "out_ref":
				in.Delim('{')
				for !in.IsDelim('}') {
					field := in.UnsafeFieldName(false)
					in.WantColon()
					switch field {
					case "tx_id":
						input.OutRef.TxID = in.String()
					case "index":
						input.OutRef.Index = in.Uint32()
					default:
						in.SkipRecursive()
					}
					in.WantComma()
				}
				in.Delim('}')
			case "output":
				(&input.Output).UnmarshalTinyJSON(in)
			default:
				in.SkipRecursive()
			}
			in.WantComma()
		}
		in.Delim('}')
		inputs = append(inputs, input)
		in.WantComma()
	}
	in.Delim(']')
	return inputs
}

func writeOptionalInt(out *jwriter.Writer, v *int64) {
	if v == nil {
		out.RawString("null")
		return
	}
	out.Int64(*v)
}

func readOptionalInt(in *jlexer.Lexer) *int64 {
	if in.IsNull() {
		in.Skip()
		return nil
	}
	v := in.Int64()
	return &v
}
