package records

import (
	"golang.org/x/xerrors"

	"okinoko_fund/sdk"
)

// ------------------------------------------------------------------
// Campaign slot (CampaignRecord | BackerRecord)
// ------------------------------------------------------------------

func encodeCampaignRecord(w *dataWriter, c *CampaignRecord) {
	w.writeConstr(uint64(DatumCampaign), 7)
	w.writeHex(string(c.Name))
	w.writeInt(c.Goal)
	w.writeInt(c.Deadline)
	w.writeWallet(c.Creator)
	w.writeList(len(c.Milestone))
	for _, m := range c.Milestone {
		w.writeBool(m)
	}
	w.writeEnum(uint8(c.State))
	w.writeInt(c.Fraction)
}

func encodeBackerRecord(w *dataWriter, b *BackerRecord) {
	w.writeConstr(uint64(DatumBacker), 1)
	w.writeWallet(b.Backer)
}

// EncodeCampaignRecord serializes a campaign record as it sits on the ledger.
// Example payload: EncodeCampaignRecord(&CampaignRecord{Name: "cafe", Goal: 10000, Fraction: 100})
func EncodeCampaignRecord(c *CampaignRecord) ([]byte, error) {
	w := newWriter()
	encodeCampaignRecord(w, c)
	return w.result()
}

// EncodeBackerRecord serializes the backer marker.
func EncodeBackerRecord(b *BackerRecord) ([]byte, error) {
	w := newWriter()
	encodeBackerRecord(w, b)
	return w.result()
}

// EncodeCampaignDatum serializes whichever side of the union Kind selects.
func EncodeCampaignDatum(d *CampaignDatum) ([]byte, error) {
	switch d.Kind {
	case DatumCampaign:
		if d.Campaign == nil {
			return nil, xerrors.New("campaign datum without campaign record")
		}
		return EncodeCampaignRecord(d.Campaign)
	case DatumBacker:
		if d.Backer == nil {
			return nil, xerrors.New("backer datum without backer record")
		}
		return EncodeBackerRecord(d.Backer)
	default:
		return nil, xerrors.Errorf("unknown datum kind %d", d.Kind)
	}
}

// campaignFields reads the 7 fields after the constructor header.
func campaignFields(r *dataReader) (*CampaignRecord, error) {
	var c CampaignRecord
	name, err := r.readHex(maxHashLen)
	if err != nil {
		return nil, xerrors.Errorf("name: %w", err)
	}
	c.Name = sdk.AssetName(name)
	if c.Goal, err = r.readInt(); err != nil {
		return nil, xerrors.Errorf("goal: %w", err)
	}
	if c.Deadline, err = r.readInt(); err != nil {
		return nil, xerrors.Errorf("deadline: %w", err)
	}
	if c.Creator, err = r.readWallet(); err != nil {
		return nil, xerrors.Errorf("creator: %w", err)
	}
	n, err := r.readList()
	if err != nil {
		return nil, xerrors.Errorf("milestone: %w", err)
	}
	c.Milestone = make([]bool, n)
	for i := range c.Milestone {
		if c.Milestone[i], err = r.readBool(); err != nil {
			return nil, xerrors.Errorf("milestone %d: %w", i, err)
		}
	}
	state, err := r.readEnum(uint8(CampaignReleased) + 1)
	if err != nil {
		return nil, xerrors.Errorf("state: %w", err)
	}
	c.State = CampaignState(state)
	if c.Fraction, err = r.readInt(); err != nil {
		return nil, xerrors.Errorf("fraction: %w", err)
	}
	return &c, nil
}

func backerFields(r *dataReader) (*BackerRecord, error) {
	wl, err := r.readWallet()
	if err != nil {
		return nil, xerrors.Errorf("backer: %w", err)
	}
	return &BackerRecord{Backer: wl}, nil
}

// DecodeCampaignDatum reads the slot and dispatches on the constructor tag, never on shape.
// Example payload: DecodeCampaignDatum(output.Datum)
func DecodeCampaignDatum(data []byte) (*CampaignDatum, error) {
	r := newReader(data)
	idx, n, err := r.readConstr()
	if err != nil {
		return nil, xerrors.Errorf("campaign datum: %w", err)
	}
	var d *CampaignDatum
	switch {
	case idx == uint64(DatumCampaign) && n == 7:
		c, err := campaignFields(r)
		if err != nil {
			return nil, xerrors.Errorf("campaign record: %w", err)
		}
		d = CampaignDatumOf(c)
	case idx == uint64(DatumBacker) && n == 1:
		b, err := backerFields(r)
		if err != nil {
			return nil, xerrors.Errorf("backer record: %w", err)
		}
		d = BackerDatumOf(b)
	default:
		return nil, xerrors.Errorf("campaign datum constructor %d/%d: %w", idx, n, ErrTagMismatch)
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return d, nil
}

// DecodeCampaignRecord accepts only the campaign side of the slot.
func DecodeCampaignRecord(data []byte) (*CampaignRecord, error) {
	r := newReader(data)
	if err := r.expectConstr(uint64(DatumCampaign), 7); err != nil {
		return nil, xerrors.Errorf("campaign record: %w", err)
	}
	c, err := campaignFields(r)
	if err != nil {
		return nil, xerrors.Errorf("campaign record: %w", err)
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeBackerRecord accepts only the backer side of the slot.
func DecodeBackerRecord(data []byte) (*BackerRecord, error) {
	r := newReader(data)
	if err := r.expectConstr(uint64(DatumBacker), 1); err != nil {
		return nil, xerrors.Errorf("backer record: %w", err)
	}
	b, err := backerFields(r)
	if err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return b, nil
}

// ------------------------------------------------------------------
// Governance
// ------------------------------------------------------------------

func encodeProposalAction(w *dataWriter, a ProposalAction) {
	w.writeConstr(uint64(a.Kind), 1)
	switch a.Kind {
	case ProposalAddValidator, ProposalRemoveValidator:
		w.writeHex(string(a.Validator))
	case ProposalUpdateFeeAmount:
		w.writeInt(a.FeeAmount)
	case ProposalUpdateFeeAddress:
		w.writeAddress(a.FeeAddress)
	default:
		if w.err == nil {
			w.err = xerrors.Errorf("unknown proposal action %d", a.Kind)
		}
	}
}

func decodeProposalAction(r *dataReader) (ProposalAction, error) {
	idx, n, err := r.readConstr()
	if err != nil {
		return ProposalAction{}, err
	}
	if n != 1 || idx > uint64(ProposalUpdateFeeAddress) {
		return ProposalAction{}, xerrors.Errorf("proposal action constructor %d/%d: %w", idx, n, ErrTagMismatch)
	}
	a := ProposalAction{Kind: ProposalKind(idx)}
	switch a.Kind {
	case ProposalAddValidator, ProposalRemoveValidator:
		key, err := r.readHex(maxHashLen)
		if err != nil {
			return ProposalAction{}, err
		}
		a.Validator = sdk.KeyHash(key)
	case ProposalUpdateFeeAmount:
		if a.FeeAmount, err = r.readInt(); err != nil {
			return ProposalAction{}, err
		}
	case ProposalUpdateFeeAddress:
		if a.FeeAddress, err = r.readAddress(); err != nil {
			return ProposalAction{}, err
		}
	}
	return a, nil
}

// EncodeGovernanceRecord serializes a proposal record.
// Example payload: EncodeGovernanceRecord(&GovernanceRecord{ProposalID: "01", Deadline: 1000})
func EncodeGovernanceRecord(g *GovernanceRecord) ([]byte, error) {
	w := newWriter()
	w.writeConstr(0, 7)
	w.writeHex(string(g.ProposalID))
	w.writeHex(string(g.SubmittedBy))
	encodeProposalAction(w, g.Action)
	w.writeMap(len(g.Votes))
	for _, e := range g.Votes {
		w.writeHex(string(e.Voter))
		w.writeEnum(uint8(e.Vote))
	}
	w.writeConstr(0, 3)
	w.writeInt(g.VotesCount.Yes)
	w.writeInt(g.VotesCount.No)
	w.writeInt(g.VotesCount.Abstain)
	w.writeInt(g.Deadline)
	w.writeEnum(uint8(g.State))
	return w.result()
}

// DecodeGovernanceRecord restores a proposal record, rejecting duplicate voters.
func DecodeGovernanceRecord(data []byte) (*GovernanceRecord, error) {
	r := newReader(data)
	if err := r.expectConstr(0, 7); err != nil {
		return nil, xerrors.Errorf("governance record: %w", err)
	}
	var g GovernanceRecord
	id, err := r.readHex(maxHashLen)
	if err != nil {
		return nil, xerrors.Errorf("proposal id: %w", err)
	}
	g.ProposalID = sdk.AssetName(id)
	by, err := r.readHex(maxHashLen)
	if err != nil {
		return nil, xerrors.Errorf("submitted by: %w", err)
	}
	g.SubmittedBy = sdk.KeyHash(by)
	if g.Action, err = decodeProposalAction(r); err != nil {
		return nil, xerrors.Errorf("proposal action: %w", err)
	}
	n, err := r.readMap()
	if err != nil {
		return nil, xerrors.Errorf("votes: %w", err)
	}
	g.Votes = make([]VoteEntry, 0, n)
	seen := make(map[sdk.KeyHash]bool, n)
	for i := 0; i < n; i++ {
		voter, err := r.readHex(maxHashLen)
		if err != nil {
			return nil, xerrors.Errorf("voter %d: %w", i, err)
		}
		if seen[sdk.KeyHash(voter)] {
			return nil, xerrors.Errorf("voter %s listed twice", voter)
		}
		seen[sdk.KeyHash(voter)] = true
		v, err := r.readEnum(uint8(VoteAbstain) + 1)
		if err != nil {
			return nil, xerrors.Errorf("vote of %s: %w", voter, err)
		}
		g.Votes = append(g.Votes, VoteEntry{Voter: sdk.KeyHash(voter), Vote: Vote(v)})
	}
	if err := r.expectConstr(0, 3); err != nil {
		return nil, xerrors.Errorf("votes count: %w", err)
	}
	if g.VotesCount.Yes, err = r.readInt(); err != nil {
		return nil, err
	}
	if g.VotesCount.No, err = r.readInt(); err != nil {
		return nil, err
	}
	if g.VotesCount.Abstain, err = r.readInt(); err != nil {
		return nil, err
	}
	if g.Deadline, err = r.readInt(); err != nil {
		return nil, xerrors.Errorf("deadline: %w", err)
	}
	state, err := r.readEnum(uint8(ProposalRejected) + 1)
	if err != nil {
		return nil, xerrors.Errorf("proposal state: %w", err)
	}
	g.State = ProposalState(state)
	if err := r.done(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ------------------------------------------------------------------
// Config
// ------------------------------------------------------------------

func encodeMultisig(w *dataWriter, m MultisigGroup) {
	w.writeConstr(0, 2)
	w.writeInt(m.Required)
	w.writeList(len(m.Signers))
	for _, s := range m.Signers {
		w.writeHex(string(s))
	}
}

func decodeMultisig(r *dataReader) (MultisigGroup, error) {
	if err := r.expectConstr(0, 2); err != nil {
		return MultisigGroup{}, err
	}
	var m MultisigGroup
	var err error
	if m.Required, err = r.readInt(); err != nil {
		return MultisigGroup{}, err
	}
	n, err := r.readList()
	if err != nil {
		return MultisigGroup{}, err
	}
	m.Signers = make([]sdk.KeyHash, 0, n)
	for i := 0; i < n; i++ {
		s, err := r.readHex(maxHashLen)
		if err != nil {
			return MultisigGroup{}, err
		}
		m.Signers = append(m.Signers, sdk.KeyHash(s))
	}
	return m, nil
}

// EncodeConfigRecord serializes the platform config. Execute compares these
// bytes, so field order here is the canonical order.
func EncodeConfigRecord(c *ConfigRecord) ([]byte, error) {
	w := newWriter()
	w.writeConstr(0, 10)
	w.writeAddress(c.FeesAddress)
	w.writeInt(c.FeesAmount)
	w.writeConstr(0, 2)
	w.writeHex(string(c.FeesAsset.Policy))
	w.writeHex(string(c.FeesAsset.Name))
	w.writeAddress(c.SpendAddress)
	w.writeList(len(c.Categories))
	for _, cat := range c.Categories {
		w.writeHex(cat)
	}
	encodeMultisig(w, c.MultisigValidatorGroup)
	encodeMultisig(w, c.MultisigRefutxoupdate)
	w.writeHex(string(c.CetPolicy))
	w.writeHex(string(c.CotPolicy))
	w.writeHex(string(c.DaoPolicy))
	return w.result()
}

// DecodeConfigRecord restores the platform config.
func DecodeConfigRecord(data []byte) (*ConfigRecord, error) {
	r := newReader(data)
	if err := r.expectConstr(0, 10); err != nil {
		return nil, xerrors.Errorf("config record: %w", err)
	}
	var c ConfigRecord
	var err error
	if c.FeesAddress, err = r.readAddress(); err != nil {
		return nil, xerrors.Errorf("fees address: %w", err)
	}
	if c.FeesAmount, err = r.readInt(); err != nil {
		return nil, xerrors.Errorf("fees amount: %w", err)
	}
	if err := r.expectConstr(0, 2); err != nil {
		return nil, xerrors.Errorf("fees asset: %w", err)
	}
	policy, err := r.readHex(maxHashLen)
	if err != nil {
		return nil, xerrors.Errorf("fees asset policy: %w", err)
	}
	name, err := r.readHex(maxHashLen)
	if err != nil {
		return nil, xerrors.Errorf("fees asset name: %w", err)
	}
	c.FeesAsset = AssetClass{Policy: sdk.PolicyID(policy), Name: sdk.AssetName(name)}
	if c.SpendAddress, err = r.readAddress(); err != nil {
		return nil, xerrors.Errorf("spend address: %w", err)
	}
	n, err := r.readList()
	if err != nil {
		return nil, xerrors.Errorf("categories: %w", err)
	}
	c.Categories = make([]string, 0, n)
	for i := 0; i < n; i++ {
		cat, err := r.readHex(maxCategoryLen)
		if err != nil {
			return nil, xerrors.Errorf("category %d: %w", i, err)
		}
		c.Categories = append(c.Categories, cat)
	}
	if c.MultisigValidatorGroup, err = decodeMultisig(r); err != nil {
		return nil, xerrors.Errorf("multisig validator group: %w", err)
	}
	if c.MultisigRefutxoupdate, err = decodeMultisig(r); err != nil {
		return nil, xerrors.Errorf("multisig refutxoupdate: %w", err)
	}
	for _, dst := range []*sdk.PolicyID{&c.CetPolicy, &c.CotPolicy, &c.DaoPolicy} {
		p, err := r.readHex(maxHashLen)
		if err != nil {
			return nil, xerrors.Errorf("policy: %w", err)
		}
		*dst = sdk.PolicyID(p)
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ------------------------------------------------------------------
// Actions (redeemers)
// ------------------------------------------------------------------

// EncodeCampaignAction writes the spend redeemer.
func EncodeCampaignAction(a CampaignAction) ([]byte, error) {
	w := newWriter()
	w.writeEnum(uint8(a))
	return w.result()
}

// DecodeCampaignAction rejects anything outside the known actions.
func DecodeCampaignAction(data []byte) (CampaignAction, error) {
	r := newReader(data)
	v, err := r.readEnum(uint8(ActionAdminOverride) + 1)
	if err != nil {
		return 0, xerrors.Errorf("campaign action: %w", err)
	}
	if err := r.done(); err != nil {
		return 0, err
	}
	return CampaignAction(v), nil
}

// EncodeGovernanceAction writes the governance redeemer.
// Example payload: EncodeGovernanceAction(GovernanceAction{Kind: GovVote, Voter: "ab", Vote: VoteYes})
func EncodeGovernanceAction(a GovernanceAction) ([]byte, error) {
	w := newWriter()
	switch a.Kind {
	case GovSubmitProposal:
		w.writeConstr(0, 1)
		w.writeHex(string(a.ProposalID))
	case GovVote:
		w.writeConstr(1, 2)
		w.writeHex(string(a.Voter))
		w.writeEnum(uint8(a.Vote))
	case GovExecute, GovReject:
		w.writeConstr(uint64(a.Kind), 0)
	default:
		return nil, xerrors.Errorf("unknown governance action %d", a.Kind)
	}
	return w.result()
}

// DecodeGovernanceAction reads the governance redeemer. Vote values are kept
// as decoded (Pending included) so the validator decides what a valid cast is.
func DecodeGovernanceAction(data []byte) (GovernanceAction, error) {
	r := newReader(data)
	idx, n, err := r.readConstr()
	if err != nil {
		return GovernanceAction{}, xerrors.Errorf("governance action: %w", err)
	}
	a := GovernanceAction{Kind: GovernanceActionKind(idx)}
	switch {
	case a.Kind == GovSubmitProposal && n == 1:
		id, err := r.readHex(maxHashLen)
		if err != nil {
			return GovernanceAction{}, err
		}
		a.ProposalID = sdk.AssetName(id)
	case a.Kind == GovVote && n == 2:
		voter, err := r.readHex(maxHashLen)
		if err != nil {
			return GovernanceAction{}, err
		}
		a.Voter = sdk.KeyHash(voter)
		v, err := r.readEnum(uint8(VoteAbstain) + 1)
		if err != nil {
			return GovernanceAction{}, xerrors.Errorf("vote: %w", err)
		}
		a.Vote = Vote(v)
	case (a.Kind == GovExecute || a.Kind == GovReject) && n == 0:
	default:
		return GovernanceAction{}, xerrors.Errorf("governance action constructor %d/%d: %w", idx, n, ErrTagMismatch)
	}
	if err := r.done(); err != nil {
		return GovernanceAction{}, err
	}
	return a, nil
}
