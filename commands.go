package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"okinoko_fund/contract/campaign"
	"okinoko_fund/contract/config"
	"okinoko_fund/contract/governance"
	"okinoko_fund/contract/ledger"
	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

var (
	policyFlag = &cli.StringFlag{Name: "policy", Usage: "hex policy id of the minting script", Required: true}
	recordFlag = &cli.StringFlag{Name: "record", Usage: "hex record; spends default to the record at --ref"}
	actionFlag = &cli.StringFlag{Name: "action", Usage: "hex encoded action", Required: true}
	refFlag    = &cli.StringFlag{Name: "ref", Usage: "own entry as <tx_id>#<index>", Required: true}
)

var campaignMintCmd = &cli.Command{
	Name:  "campaign-mint",
	Usage: "judge a reward-token mint or burn",
	Flags: []cli.Flag{policyFlag, &cli.StringFlag{Name: "record", Usage: "hex campaign record", Required: true}},
	Action: func(cctx *cli.Context) error {
		tx, params, err := setup(cctx)
		if err != nil {
			return err
		}
		rec, err := decodeHex(cctx.String("record"), "campaign record", records.DecodeCampaignRecord)
		if err != nil {
			return verdict(err)
		}
		v, err := campaign.New(params)
		if err != nil {
			return err
		}
		return verdict(v.Mint(rec, sdk.PolicyID(cctx.String("policy")), tx))
	},
}

var campaignSpendCmd = &cli.Command{
	Name:  "campaign-spend",
	Usage: "judge consuming a campaign or backer entry",
	Flags: []cli.Flag{recordFlag, actionFlag, refFlag},
	Action: func(cctx *cli.Context) error {
		tx, params, err := setup(cctx)
		if err != nil {
			return err
		}
		ref, err := parseRef(cctx.String("ref"))
		if err != nil {
			return err
		}
		raw, err := recordBytes(cctx, tx, ref)
		if err != nil {
			return err
		}
		datum, err := decodeRecord(raw, "campaign datum", records.DecodeCampaignDatum)
		if err != nil {
			return verdict(err)
		}
		action, err := hexArg(cctx, "action", records.DecodeCampaignAction)
		if err != nil {
			return verdict(err)
		}
		v, err := campaign.New(params)
		if err != nil {
			return err
		}
		return verdict(v.Spend(datum, action, ref, tx))
	},
}

var governanceMintCmd = &cli.Command{
	Name:  "governance-mint",
	Usage: "judge a proposal submission",
	Flags: []cli.Flag{policyFlag, actionFlag},
	Action: func(cctx *cli.Context) error {
		tx, params, err := setup(cctx)
		if err != nil {
			return err
		}
		action, err := hexArg(cctx, "action", records.DecodeGovernanceAction)
		if err != nil {
			return verdict(err)
		}
		v, err := governance.New(params)
		if err != nil {
			return err
		}
		return verdict(v.Mint(action, sdk.PolicyID(cctx.String("policy")), tx))
	},
}

var governanceSpendCmd = &cli.Command{
	Name:  "governance-spend",
	Usage: "judge a vote, execution or rejection",
	Flags: []cli.Flag{recordFlag, actionFlag, refFlag},
	Action: func(cctx *cli.Context) error {
		tx, params, err := setup(cctx)
		if err != nil {
			return err
		}
		ref, err := parseRef(cctx.String("ref"))
		if err != nil {
			return err
		}
		raw, err := recordBytes(cctx, tx, ref)
		if err != nil {
			return err
		}
		rec, err := decodeRecord(raw, "governance record", records.DecodeGovernanceRecord)
		if err != nil {
			return verdict(err)
		}
		action, err := hexArg(cctx, "action", records.DecodeGovernanceAction)
		if err != nil {
			return verdict(err)
		}
		v, err := governance.New(params)
		if err != nil {
			return err
		}
		return verdict(v.Spend(rec, action, ref, tx))
	},
}

// setup reads the transaction file and the OKINOKO_* params every command needs.
func setup(cctx *cli.Context) (*sdk.Transaction, config.Params, error) {
	data, err := os.ReadFile(cctx.String("tx"))
	if err != nil {
		return nil, config.Params{}, xerrors.Errorf("read tx: %w", err)
	}
	tx, err := sdk.DecodeTransaction(data)
	if err != nil {
		return nil, config.Params{}, xerrors.Errorf("decode tx: %w", err)
	}
	params, err := config.Load()
	if err != nil {
		return nil, config.Params{}, err
	}
	return tx, params, nil
}

// recordBytes prefers --record and falls back to the record stored at ref.
func recordBytes(cctx *cli.Context, tx *sdk.Transaction, ref sdk.OutputReference) ([]byte, error) {
	if s := cctx.String("record"); s != "" {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, xerrors.Errorf("record: %w", err)
		}
		return raw, nil
	}
	in, err := ledger.OwnInput(tx, ref)
	if err != nil {
		return nil, err
	}
	if !in.Output.HasDatum() {
		return nil, xerrors.Errorf("entry %s#%d holds no record", ref.TxID, ref.Index)
	}
	return in.Output.Datum, nil
}

func hexArg[T any](cctx *cli.Context, name string, decode func([]byte) (T, error)) (T, error) {
	return decodeHex(cctx.String(name), name, decode)
}

// decodeHex splits bad input in two: malformed hex is a usage error, bytes
// that do not decode are a schema rejection.
func decodeHex[T any](s, name string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	raw, err := hex.DecodeString(s)
	if err != nil {
		return zero, xerrors.Errorf("%s: %w", name, err)
	}
	return decodeRecord(raw, name, decode)
}

func decodeRecord[T any](raw []byte, name string, decode func([]byte) (T, error)) (T, error) {
	v, err := decode(raw)
	if err != nil {
		var zero T
		return zero, revert.Wrap(revert.Schema, name, err)
	}
	return v, nil
}

// parseRef reads <tx_id>#<index>.
// Example payload: parseRef("ab01#0")
func parseRef(s string) (sdk.OutputReference, error) {
	id, idx, ok := strings.Cut(s, "#")
	if !ok || id == "" {
		return sdk.OutputReference{}, xerrors.Errorf("ref %q: want <tx_id>#<index>", s)
	}
	n, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return sdk.OutputReference{}, xerrors.Errorf("ref %q: %w", s, err)
	}
	return sdk.OutputReference{TxID: id, Index: uint32(n)}, nil
}

// verdict prints the outcome; a rejection exits with status 2 so scripts can
// tell it apart from usage errors.
func verdict(err error) error {
	if err == nil {
		fmt.Println("accepted")
		return nil
	}
	if revert.KindOf(err) != "" {
		return cli.Exit(fmt.Sprintf("rejected: %s", err), 2)
	}
	return err
}
