package records

import (
	"bytes"
	"encoding/hex"
	"io"

	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"okinoko_fund/sdk"
)

// Records travel as ledger data: constructor i is CBOR tag 121+i (1280+i-7
// past 6) around a definite array of fields, ints are major 0/1, bytes major
// 2, lists major 4, maps major 5, bools are constructors False=0/True=1.

const (
	// maxHashLen bounds hashes, policy ids, asset names and proposal ids.
	maxHashLen = 64
	// maxCategoryLen bounds a single category label.
	maxCategoryLen = 256
	// maxItems bounds every list and map so a hostile record cant blow up decoding.
	maxItems = 1024
)

var (
	// ErrTagMismatch is returned when a constructor tag is not the one expected.
	ErrTagMismatch = xerrors.New("record tag mismatch")
	// ErrTrailingBytes is returned when bytes remain after a full record.
	ErrTrailingBytes = xerrors.New("trailing bytes after record")
)

// ------------------------------------------------------------------
// Encoder helpers
// ------------------------------------------------------------------

type dataWriter struct {
	buf bytes.Buffer
	cw  *cbg.CborWriter
	err error
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *dataWriter {
	w := &dataWriter{}
	w.cw = cbg.NewCborWriter(&w.buf)
	return w
}

// result returns the accumulated bytes or the first error hit on the way.
func (w *dataWriter) result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

func (w *dataWriter) header(maj byte, n uint64) {
	if w.err != nil {
		return
	}
	w.err = w.cw.WriteMajorTypeHeader(maj, n)
}

// writeConstr opens constructor idx with n fields to follow.
func (w *dataWriter) writeConstr(idx uint64, n uint64) {
	w.header(cbg.MajTag, constrTag(idx))
	w.header(cbg.MajArray, n)
}

// writeInt picks the unsigned or negative major type like cbor-gen does for int64.
func (w *dataWriter) writeInt(v int64) {
	if v >= 0 {
		w.header(cbg.MajUnsignedInt, uint64(v))
		return
	}
	w.header(cbg.MajNegativeInt, uint64(-v-1))
}

func (w *dataWriter) writeBytes(b []byte) {
	w.header(cbg.MajByteString, uint64(len(b)))
	if w.err != nil {
		return
	}
	_, w.err = w.cw.Write(b)
}

// writeHex decodes hex text (hashes, names) into the raw byte string.
func (w *dataWriter) writeHex(s string) {
	if w.err != nil {
		return
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		w.err = xerrors.Errorf("encode %q: %w", s, err)
		return
	}
	w.writeBytes(raw)
}

// writeBool uses the False/True constructors.
func (w *dataWriter) writeBool(v bool) {
	if v {
		w.writeConstr(1, 0)
		return
	}
	w.writeConstr(0, 0)
}

func (w *dataWriter) writeList(n int) {
	w.header(cbg.MajArray, uint64(n))
}

func (w *dataWriter) writeMap(n int) {
	w.header(cbg.MajMap, uint64(n))
}

// writeEnum writes a field-less constructor, used for every plain enum.
func (w *dataWriter) writeEnum(idx uint8) {
	w.writeConstr(uint64(idx), 0)
}

func (w *dataWriter) writeCredential(c sdk.Credential) {
	switch c.Kind {
	case sdk.CredentialKey:
		w.writeConstr(0, 1)
	case sdk.CredentialScript:
		w.writeConstr(1, 1)
	default:
		if w.err == nil {
			w.err = xerrors.New("encode credential: missing kind")
		}
		return
	}
	w.writeHex(c.Hash)
}

// writeAddress writes payment credential plus the optional inline stake credential.
func (w *dataWriter) writeAddress(a sdk.Address) {
	w.writeConstr(0, 2)
	w.writeCredential(a.Payment)
	if a.Stake.IsZero() {
		w.writeConstr(1, 0)
		return
	}
	w.writeConstr(0, 1)
	w.writeConstr(0, 1)
	w.writeCredential(a.Stake)
}

func (w *dataWriter) writeWallet(wl sdk.Wallet) {
	w.writeConstr(0, 2)
	w.writeHex(string(wl.PaymentKey))
	w.writeHex(string(wl.StakeKey))
}

// constrTag maps a constructor index to its CBOR tag.
func constrTag(idx uint64) uint64 {
	if idx < 7 {
		return 121 + idx
	}
	return 1280 + idx - 7
}

// tagConstr undoes constrTag, false for tags that are not constructors.
func tagConstr(tag uint64) (uint64, bool) {
	switch {
	case tag >= 121 && tag <= 127:
		return tag - 121, true
	case tag >= 1280 && tag <= 1400:
		return tag - 1280 + 7, true
	default:
		return 0, false
	}
}

// ------------------------------------------------------------------
// Decoder helpers
// ------------------------------------------------------------------

type dataReader struct {
	src *bytes.Reader
	cr  *cbg.CborReader
}

// newReader wraps raw bytes; bytes.Reader peeks so cbor-gen reads in place.
func newReader(data []byte) *dataReader {
	src := bytes.NewReader(data)
	return &dataReader{src: src, cr: cbg.NewCborReader(src)}
}

// done rejects trailing garbage so one record maps to exactly one encoding.
func (r *dataReader) done() error {
	if r.src.Len() != 0 {
		return ErrTrailingBytes
	}
	return nil
}

// readConstr returns the constructor index and its field count.
func (r *dataReader) readConstr() (uint64, uint64, error) {
	maj, tag, err := r.cr.ReadHeader()
	if err != nil {
		return 0, 0, err
	}
	if maj != cbg.MajTag {
		return 0, 0, xerrors.Errorf("expected constructor tag, got major type %d", maj)
	}
	idx, ok := tagConstr(tag)
	if !ok {
		return 0, 0, xerrors.Errorf("tag %d is not a constructor: %w", tag, ErrTagMismatch)
	}
	maj, n, err := r.cr.ReadHeader()
	if err != nil {
		return 0, 0, err
	}
	if maj != cbg.MajArray {
		return 0, 0, xerrors.Errorf("constructor fields must be an array, got major type %d", maj)
	}
	if n > maxItems {
		return 0, 0, xerrors.Errorf("constructor has %d fields", n)
	}
	return idx, n, nil
}

// expectConstr reads a constructor and insists on index and arity.
func (r *dataReader) expectConstr(idx, fields uint64) error {
	got, n, err := r.readConstr()
	if err != nil {
		return err
	}
	if got != idx {
		return xerrors.Errorf("constructor %d, want %d: %w", got, idx, ErrTagMismatch)
	}
	if n != fields {
		return xerrors.Errorf("constructor %d has %d fields, want %d", idx, n, fields)
	}
	return nil
}

// readEnum reads a field-less constructor and checks it is below limit.
func (r *dataReader) readEnum(limit uint8) (uint8, error) {
	idx, n, err := r.readConstr()
	if err != nil {
		return 0, err
	}
	if n != 0 {
		return 0, xerrors.Errorf("enum constructor %d carries %d fields", idx, n)
	}
	if idx >= uint64(limit) {
		return 0, xerrors.Errorf("enum constructor %d out of range: %w", idx, ErrTagMismatch)
	}
	return uint8(idx), nil
}

func (r *dataReader) readInt() (int64, error) {
	maj, extra, err := r.cr.ReadHeader()
	if err != nil {
		return 0, err
	}
	v := int64(extra)
	if v < 0 {
		return 0, xerrors.New("int64 overflow")
	}
	switch maj {
	case cbg.MajUnsignedInt:
		return v, nil
	case cbg.MajNegativeInt:
		return -1 - v, nil
	default:
		return 0, xerrors.Errorf("expected integer, got major type %d", maj)
	}
}

func (r *dataReader) readBytes(max uint64) ([]byte, error) {
	maj, n, err := r.cr.ReadHeader()
	if err != nil {
		return nil, err
	}
	if maj != cbg.MajByteString {
		return nil, xerrors.Errorf("expected byte string, got major type %d", maj)
	}
	if n > max {
		return nil, xerrors.Errorf("byte string of %d bytes exceeds %d", n, max)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.cr, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *dataReader) readHex(max uint64) (string, error) {
	raw, err := r.readBytes(max)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func (r *dataReader) readBool() (bool, error) {
	v, err := r.readEnum(2)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

func (r *dataReader) readList() (int, error) {
	maj, n, err := r.cr.ReadHeader()
	if err != nil {
		return 0, err
	}
	if maj != cbg.MajArray {
		return 0, xerrors.Errorf("expected list, got major type %d", maj)
	}
	if n > maxItems {
		return 0, xerrors.Errorf("list of %d items exceeds %d", n, maxItems)
	}
	return int(n), nil
}

func (r *dataReader) readMap() (int, error) {
	maj, n, err := r.cr.ReadHeader()
	if err != nil {
		return 0, err
	}
	if maj != cbg.MajMap {
		return 0, xerrors.Errorf("expected map, got major type %d", maj)
	}
	if n > maxItems {
		return 0, xerrors.Errorf("map of %d entries exceeds %d", n, maxItems)
	}
	return int(n), nil
}

func (r *dataReader) readCredential() (sdk.Credential, error) {
	idx, n, err := r.readConstr()
	if err != nil {
		return sdk.Credential{}, err
	}
	if n != 1 || idx > 1 {
		return sdk.Credential{}, xerrors.Errorf("credential constructor %d/%d: %w", idx, n, ErrTagMismatch)
	}
	hash, err := r.readHex(maxHashLen)
	if err != nil {
		return sdk.Credential{}, err
	}
	if idx == 0 {
		return sdk.Credential{Kind: sdk.CredentialKey, Hash: hash}, nil
	}
	return sdk.Credential{Kind: sdk.CredentialScript, Hash: hash}, nil
}

func (r *dataReader) readAddress() (sdk.Address, error) {
	if err := r.expectConstr(0, 2); err != nil {
		return sdk.Address{}, xerrors.Errorf("address: %w", err)
	}
	payment, err := r.readCredential()
	if err != nil {
		return sdk.Address{}, xerrors.Errorf("payment credential: %w", err)
	}
	addr := sdk.Address{Payment: payment}
	idx, n, err := r.readConstr()
	if err != nil {
		return sdk.Address{}, err
	}
	switch {
	case idx == 1 && n == 0:
		return addr, nil
	case idx == 0 && n == 1:
		if err := r.expectConstr(0, 1); err != nil {
			return sdk.Address{}, xerrors.Errorf("inline stake credential: %w", err)
		}
		stake, err := r.readCredential()
		if err != nil {
			return sdk.Address{}, xerrors.Errorf("stake credential: %w", err)
		}
		addr.Stake = stake
		return addr, nil
	default:
		return sdk.Address{}, xerrors.Errorf("stake option constructor %d/%d: %w", idx, n, ErrTagMismatch)
	}
}

func (r *dataReader) readWallet() (sdk.Wallet, error) {
	if err := r.expectConstr(0, 2); err != nil {
		return sdk.Wallet{}, xerrors.Errorf("wallet: %w", err)
	}
	pk, err := r.readHex(maxHashLen)
	if err != nil {
		return sdk.Wallet{}, err
	}
	sk, err := r.readHex(maxHashLen)
	if err != nil {
		return sdk.Wallet{}, err
	}
	return sdk.Wallet{PaymentKey: sdk.KeyHash(pk), StakeKey: sdk.KeyHash(sk)}, nil
}
