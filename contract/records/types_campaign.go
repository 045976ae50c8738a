package records

import (
	"slices"

	"okinoko_fund/sdk"
)

// CampaignState captures a campaign's lifecycle.
type CampaignState uint8

const (
	CampaignInitiated CampaignState = 0
	CampaignRunning   CampaignState = 1
	CampaignCancelled CampaignState = 2
	CampaignFinished  CampaignState = 3
	CampaignReleased  CampaignState = 4
)

// String prints the campaign state as lower-case text for events and logs.
// Example payload: records.CampaignRunning.String()
func (s CampaignState) String() string {
	switch s {
	case CampaignInitiated:
		return "initiated"
	case CampaignRunning:
		return "running"
	case CampaignCancelled:
		return "cancelled"
	case CampaignFinished:
		return "finished"
	case CampaignReleased:
		return "released"
	default:
		return "unspecified"
	}
}

// CampaignRecord is the state a campaign keeps at its script address.
type CampaignRecord struct {
	Name      sdk.AssetName
	Goal      int64
	Deadline  int64
	Creator   sdk.Wallet
	Milestone []bool
	State     CampaignState
	Fraction  int64
}

// Equal compares every field, milestone order included.
func (c *CampaignRecord) Equal(o *CampaignRecord) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Name == o.Name &&
		c.Goal == o.Goal &&
		c.Deadline == o.Deadline &&
		c.Creator == o.Creator &&
		slices.Equal(c.Milestone, o.Milestone) &&
		c.State == o.State &&
		c.Fraction == o.Fraction
}

// Clone copies the record so callers can derive an expected successor.
func (c *CampaignRecord) Clone() *CampaignRecord {
	out := *c
	out.Milestone = slices.Clone(c.Milestone)
	return &out
}

// WithState returns a copy moved to state s.
// Example payload: rec.WithState(records.CampaignCancelled)
func (c *CampaignRecord) WithState(s CampaignState) *CampaignRecord {
	out := c.Clone()
	out.State = s
	return out
}

// PendingMilestones counts entries not released yet.
func (c *CampaignRecord) PendingMilestones() int64 {
	var n int64
	for _, done := range c.Milestone {
		if !done {
			n++
		}
	}
	return n
}

// NextMilestone returns the lowest false index, or -1 when all are released.
func (c *CampaignRecord) NextMilestone() int {
	return slices.Index(c.Milestone, false)
}

// AnyMilestoneReleased reports whether any entry is already true.
func (c *CampaignRecord) AnyMilestoneReleased() bool {
	return slices.Contains(c.Milestone, true)
}

// CampaignAddress is the per-creator address of the campaign script: the
// script pays, the creator's stake key delegates.
// Example payload: rec.CampaignAddress("aa01")
func (c *CampaignRecord) CampaignAddress(script sdk.ScriptHash) sdk.Address {
	return sdk.Address{
		Payment: sdk.ScriptCredential(script),
		Stake:   sdk.KeyCredential(c.Creator.StakeKey),
	}
}

// BackerRecord marks one contribution output; it only ever gets matched.
type BackerRecord struct {
	Backer sdk.Wallet
}

// DatumKind is the discriminant of the campaign script's storage slot.
type DatumKind uint8

const (
	DatumCampaign DatumKind = 0
	DatumBacker   DatumKind = 1
)

// String names the kind for logs.
func (k DatumKind) String() string {
	switch k {
	case DatumCampaign:
		return "campaign"
	case DatumBacker:
		return "backer"
	default:
		return "unknown"
	}
}

// CampaignDatum is the tagged union stored at the campaign script address.
// Exactly one of Campaign/Backer is set, matching Kind.
type CampaignDatum struct {
	Kind     DatumKind
	Campaign *CampaignRecord
	Backer   *BackerRecord
}

// CampaignDatumOf wraps a campaign record.
func CampaignDatumOf(c *CampaignRecord) *CampaignDatum {
	return &CampaignDatum{Kind: DatumCampaign, Campaign: c}
}

// BackerDatumOf wraps a backer record.
func BackerDatumOf(b *BackerRecord) *CampaignDatum {
	return &CampaignDatum{Kind: DatumBacker, Backer: b}
}

// CampaignAction is the spend redeemer of the campaign script.
type CampaignAction uint8

const (
	ActionSupport       CampaignAction = 0
	ActionCancel        CampaignAction = 1
	ActionFinish        CampaignAction = 2
	ActionRefund        CampaignAction = 3
	ActionRelease       CampaignAction = 4
	ActionAdminOverride CampaignAction = 5
)

// String prints the action name for events.
func (a CampaignAction) String() string {
	switch a {
	case ActionSupport:
		return "support"
	case ActionCancel:
		return "cancel"
	case ActionFinish:
		return "finish"
	case ActionRefund:
		return "refund"
	case ActionRelease:
		return "release"
	case ActionAdminOverride:
		return "admin_override"
	default:
		return "unknown"
	}
}
