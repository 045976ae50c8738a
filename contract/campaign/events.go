package campaign

import (
	"fmt"

	"okinoko_fund/contract/records"
	"okinoko_fund/contract/revert"
	"okinoko_fund/sdk"
)

// emitMinted writes a "cs|mint" line, qty is negative for burns.
func emitMinted(rec *records.CampaignRecord, qty int64) {
	log.Info(fmt.Sprintf(
		"cs|mint|name:%s|qty:%d|s:%s",
		rec.Name,
		qty,
		rec.State,
	))
}

// emitSpent tells watchers which slot moved and why.
func emitSpent(d *records.CampaignDatum, action records.CampaignAction, ref sdk.OutputReference) {
	log.Info(fmt.Sprintf(
		"cs|%s|kind:%s|name:%s|ref:%s#%d",
		action,
		d.Kind,
		datumName(d),
		ref.TxID,
		ref.Index,
	))
}

// emitMilestone logs the payout split of one release so auditors can match it to outputs.
func emitMilestone(rec *records.CampaignRecord, index int, creator, platform int64) {
	log.Info(fmt.Sprintf(
		"cs|milestone|name:%s|idx:%d|creator:%d|platform:%d",
		rec.Name,
		index,
		creator,
		platform,
	))
}

// emitRejected stays at debug, rejections are routine for a validator.
func emitRejected(op string, name sdk.AssetName, err error) {
	log.Debugw("rejected", "op", op, "name", string(name), "kind", string(revert.KindOf(err)), "err", err)
}
