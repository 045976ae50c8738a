////////////////////////////////////////////////////////////////////////////////
// Okinoko Fund: crowdfunding and governance validators
// judges candidate transactions offline, one validator call per command
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var log = logging.Logger("okinoko")

func main() {
	app := &cli.App{
		Name:  "okinoko-fund",
		Usage: "run the campaign and governance validators against a candidate transaction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "tx",
				Usage:    "path to the candidate transaction JSON",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log rejections at debug level",
			},
		},
		Before: func(cctx *cli.Context) error {
			level := "info"
			if cctx.Bool("verbose") {
				level = "debug"
			}
			for _, sys := range []string{"okinoko", "campaign", "governance"} {
				if err := logging.SetLogLevel(sys, level); err != nil {
					return err
				}
			}
			return nil
		},
		Commands: []*cli.Command{
			campaignMintCmd,
			campaignSpendCmd,
			governanceMintCmd,
			governanceSpendCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}
