// Package manual holds the structured reference data distilled from the
// Tasmanian Plant Quarantine Manual (PQM): the pest and disease key from
// Table 1, the commodity host register, import requirements (IRs) with their
// section and page provenance, the Interstate Certification Assurance (ICA)
// register, phylloxera zoning, and treatment and documentation schedules.
//
// All tables are immutable after Load and safe for concurrent readers.
// Lookups return sentinel errors (ErrCommodityNotFound, ErrPestNotFound,
// ErrUnknownState) rather than panicking; callers decide whether a miss is
// fatal or a reason to fall back to semantic search.
//
// Area freedom is deliberately not modelled: pest presence is tracked per
// state only, so a consignment from a recognised pest-free area inside an
// infested state is still treated as coming from the infested state.
package manual

import (
	"errors"
	"fmt"
	"strings"
)

// ManualSource labels the manual edition the reference data derives from.
// It appears in citation metadata and cleaned table output.
const ManualSource = "Tasmanian PQM 2024"

// Sentinel errors for reference-table lookups.
var (
	ErrCommodityNotFound = errors.New("commodity not found")
	ErrPestNotFound      = errors.New("pest not found")
	ErrUnknownState      = errors.New("unknown state")
)

// State is an Australian state or territory code as used throughout the PQM.
type State string

// The eight Australian jurisdictions. Tasmania is the import destination;
// the others are possible consignment origins.
const (
	QLD State = "QLD"
	NSW State = "NSW"
	VIC State = "VIC"
	SA  State = "SA"
	WA  State = "WA"
	NT  State = "NT"
	ACT State = "ACT"
	TAS State = "TAS"
)

// States returns all jurisdiction codes in PQM order.
func States() []State {
	return []State{QLD, NSW, VIC, SA, WA, NT, ACT, TAS}
}

// stateNames maps spelled-out jurisdiction names to their codes.
var stateNames = map[string]State{
	"queensland":                   QLD,
	"new south wales":              NSW,
	"victoria":                     VIC,
	"south australia":              SA,
	"western australia":            WA,
	"northern territory":           NT,
	"australian capital territory": ACT,
	"tasmania":                     TAS,
}

// displayNames spell the jurisdiction codes out for responses.
var displayNames = map[State]string{
	QLD: "Queensland",
	NSW: "New South Wales",
	VIC: "Victoria",
	SA:  "South Australia",
	WA:  "Western Australia",
	NT:  "Northern Territory",
	ACT: "Australian Capital Territory",
	TAS: "Tasmania",
}

// DisplayName returns the spelled-out jurisdiction name, or the raw code
// for a value outside the Table 1 key.
func (s State) DisplayName() string {
	if n, ok := displayNames[s]; ok {
		return n
	}
	return string(s)
}

// ParseState resolves a state code or spelled-out name, case-insensitively.
// Returns ErrUnknownState for anything else.
func ParseState(s string) (State, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return "", fmt.Errorf("%w: empty state", ErrUnknownState)
	}
	if st, ok := stateNames[norm]; ok {
		return st, nil
	}
	upper := State(strings.ToUpper(norm))
	for _, st := range States() {
		if st == upper {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownState, s)
}

// PestCode is a Table 1 pest or disease acronym (QFF, MFF, GP, ...).
type PestCode string

// Table 1 key. NS, DW and GMP are condition categories rather than organisms
// but are keyed exactly like pests in the source tables.
const (
	PestBW    PestCode = "BW"
	PestCB    PestCode = "CB"
	PestDW    PestCode = "DW"
	PestEHB   PestCode = "EHB"
	PestFB    PestCode = "FB"
	PestGMP   PestCode = "GMP"
	PestGP    PestCode = "GP"
	PestIYSV  PestCode = "IYSV"
	PestLA    PestCode = "LA"
	PestMFF   PestCode = "MFF"
	PestMR    PestCode = "MR"
	PestNS    PestCode = "NS"
	PestOS    PestCode = "OS"
	PestPCN   PestCode = "PCN"
	PestPW    PestCode = "PW"
	PestQFF   PestCode = "QFF"
	PestRIFA  PestCode = "RIFA"
	PestRN    PestCode = "RN"
	PestSLW   PestCode = "SLW"
	PestTPP   PestCode = "TPP"
	PestTYLCV PestCode = "TYLCV"
)

// Pest is one row of the Table 1 pest and disease key.
// An empty PresentIn means the pest is not known to occur in any Australian
// state, so origin-based requirements for it never trigger.
type Pest struct {
	Code       PestCode
	Name       string
	Scientific string
	PresentIn  []State
	Notes      string
}

// Present reports whether the pest is recorded as present in state.
func (p *Pest) Present(state State) bool {
	for _, s := range p.PresentIn {
		if s == state {
			return true
		}
	}
	return false
}

// CommodityType categorises commodities for the response template.
type CommodityType string

const (
	TypeFruit CommodityType = "fruit"
	TypePlant CommodityType = "plant"
	TypeSeed  CommodityType = "seed"
	TypeOther CommodityType = "other"
)

// Commodity is one entry of the host register. Hosts lists the Table 1 pests
// the commodity can carry; an import requirement applies when a hosted pest
// is present in the consignment's origin state.
type Commodity struct {
	Name    string
	Type    CommodityType
	Aliases []string
	Hosts   []PestCode
}

// HostOf reports whether the commodity is a recorded host of the pest.
func (c *Commodity) HostOf(code PestCode) bool {
	for _, h := range c.Hosts {
		if h == code {
			return true
		}
	}
	return false
}

// ImportRequirement is one IR entry from section 3 of the PQM.
// Section and Page locate the authoritative text in the manual.
type ImportRequirement struct {
	Code           string
	Title          string
	Section        string
	Page           int
	Pest           PestCode
	CommodityTypes []CommodityType
	ICACodes       []string
	Conditions     []string
	// NeedsTreatment marks IRs whose entry conditions include an approved
	// disinfestation treatment, pulling the treatment schedule into responses.
	NeedsTreatment bool
}

// ICAStatus tracks whether an ICA arrangement is current.
type ICAStatus string

const (
	ICAActive     ICAStatus = "active"
	ICASuperseded ICAStatus = "superseded"
)

// ICA is one Interstate Certification Assurance arrangement.
type ICA struct {
	Code   string
	Title  string
	Status ICAStatus
	IRCode string
}

// ZoneCode is a grape phylloxera zone classification.
type ZoneCode string

const (
	// ZonePIZ marks a Phylloxera Infested Zone.
	ZonePIZ ZoneCode = "PIZ"
	// ZonePRZ marks a Phylloxera Risk Zone.
	ZonePRZ ZoneCode = "PRZ"
	// ZonePEZ marks a Phylloxera Exclusion Zone.
	ZonePEZ ZoneCode = "PEZ"
)

// zoneDescriptions spell the zone codes out for responses.
var zoneDescriptions = map[ZoneCode]string{
	ZonePIZ: "Phylloxera Infested Zone",
	ZonePRZ: "Phylloxera Risk Zone",
	ZonePEZ: "Phylloxera Exclusion Zone",
}

// Describe returns the spelled-out zone name, or the raw code if unknown.
func (z ZoneCode) Describe() string {
	if d, ok := zoneDescriptions[z]; ok {
		return d
	}
	return string(z)
}

// Treatment is one approved disinfestation treatment schedule entry.
type Treatment struct {
	Name   string
	Detail string
}

// PestStatus is a per-pest presence verdict for a specific origin state.
type PestStatus struct {
	Pest    *Pest
	Present bool
}
