package sdk

import (
	"encoding/hex"
	"strings"

	"golang.org/x/xerrors"
)

// KeyHash is a hex encoded verification key hash (signer identity).
type KeyHash string

// ScriptHash is a hex encoded validator script hash.
type ScriptHash string

// String returns the hex text as is.
func (k KeyHash) String() string { return string(k) }

// String returns the hex text as is.
func (s ScriptHash) String() string { return string(s) }

// CredentialKind tells a key-locked credential from a script-locked one.
type CredentialKind uint8

const (
	CredentialNone   CredentialKind = 0
	CredentialKey    CredentialKind = 1
	CredentialScript CredentialKind = 2
)

// String gives the short prefix used in the textual address form.
// Example payload: sdk.CredentialScript.String()
func (k CredentialKind) String() string {
	switch k {
	case CredentialKey:
		return "key"
	case CredentialScript:
		return "script"
	default:
		return "none"
	}
}

// Credential is either a key hash or a script hash, tagged by Kind.
type Credential struct {
	Kind CredentialKind
	Hash string
}

// KeyCredential wraps a key hash, empty hashes give the zero credential.
func KeyCredential(k KeyHash) Credential {
	if k == "" {
		return Credential{}
	}
	return Credential{Kind: CredentialKey, Hash: string(k)}
}

// ScriptCredential wraps a script hash.
func ScriptCredential(s ScriptHash) Credential {
	if s == "" {
		return Credential{}
	}
	return Credential{Kind: CredentialScript, Hash: string(s)}
}

// IsZero reports an absent credential.
func (c Credential) IsZero() bool { return c.Kind == CredentialNone }

// String renders kind:hash so logs stay readable.
// Example payload: sdk.KeyCredential("ab01").String()
func (c Credential) String() string {
	if c.IsZero() {
		return ""
	}
	return c.Kind.String() + ":" + c.Hash
}

// Address pairs the payment credential with an optional stake credential.
// The struct is comparable so plain == works for address matching.
type Address struct {
	Payment Credential
	Stake   Credential
}

// IsScript reports whether the payment side is locked by a validator.
// Example payload: sdk.Address{Payment: sdk.ScriptCredential("aa")}.IsScript()
func (a Address) IsScript() bool { return a.Payment.Kind == CredentialScript }

// ScriptHash returns the payment script hash, empty for key addresses.
func (a Address) ScriptHash() ScriptHash {
	if !a.IsScript() {
		return ""
	}
	return ScriptHash(a.Payment.Hash)
}

// String renders payment[/stake], e.g. script:aa01/key:bb02.
func (a Address) String() string {
	if a.Stake.IsZero() {
		return a.Payment.String()
	}
	return a.Payment.String() + "/" + a.Stake.String()
}

// MarshalText lets env and json encoders treat addresses as plain strings.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts the String form back.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress reads payment[/stake] where each side is key:<hex> or script:<hex>.
// Example payload: sdk.ParseAddress("script:aa01/key:bb02")
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{}, xerrors.New("empty address")
	}
	paymentPart, stakePart, hasStake := strings.Cut(s, "/")
	payment, err := parseCredential(paymentPart)
	if err != nil {
		return Address{}, xerrors.Errorf("payment credential: %w", err)
	}
	addr := Address{Payment: payment}
	if hasStake {
		stake, err := parseCredential(stakePart)
		if err != nil {
			return Address{}, xerrors.Errorf("stake credential: %w", err)
		}
		addr.Stake = stake
	}
	return addr, nil
}

func parseCredential(s string) (Credential, error) {
	kind, hash, ok := strings.Cut(s, ":")
	if !ok {
		return Credential{}, xerrors.Errorf("credential %q has no kind prefix", s)
	}
	if err := validHex(hash); err != nil {
		return Credential{}, err
	}
	switch kind {
	case "key":
		return Credential{Kind: CredentialKey, Hash: strings.ToLower(hash)}, nil
	case "script":
		return Credential{Kind: CredentialScript, Hash: strings.ToLower(hash)}, nil
	default:
		return Credential{}, xerrors.Errorf("unknown credential kind %q", kind)
	}
}

func validHex(s string) error {
	if s == "" {
		return xerrors.New("empty hash")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return xerrors.Errorf("hash %q is not hex: %w", s, err)
	}
	return nil
}

// Wallet is a backer/creator identity: payment key plus stake key.
type Wallet struct {
	PaymentKey KeyHash
	StakeKey   KeyHash
}

// Address derives the key-locked address a wallet receives payouts on.
// Example payload: sdk.Wallet{PaymentKey: "aa", StakeKey: "bb"}.Address()
func (w Wallet) Address() Address {
	return Address{Payment: KeyCredential(w.PaymentKey), Stake: KeyCredential(w.StakeKey)}
}
