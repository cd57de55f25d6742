package manual

import (
	"fmt"
	"sort"
	"strings"
)

// Store provides read-only access to the PQM reference tables. It is built
// once by Load and is safe for concurrent use.
type Store struct {
	commodities map[string]*Commodity
	order       []string
	aliasIndex  map[string]string
	pests       map[PestCode]*Pest
	pestOrder   []PestCode
	reqs        []*ImportRequirement
	reqByCode   map[string]*ImportRequirement
	icas        map[string]*ICA
	zones       map[State]ZoneCode
}

// Load builds the store from the built-in reference tables.
func Load() (*Store, error) {
	return LoadWithCommodities(nil)
}

// LoadWithCommodities builds the store from the built-in tables plus extra
// commodity entries, typically parsed from a scraped manual table. Extra
// entries override built-ins with the same canonical name.
func LoadWithCommodities(extra []Commodity) (*Store, error) {
	s := &Store{
		commodities: make(map[string]*Commodity),
		aliasIndex:  make(map[string]string),
		pests:       make(map[PestCode]*Pest),
		reqByCode:   make(map[string]*ImportRequirement),
		icas:        make(map[string]*ICA),
		zones:       phylloxeraZones,
	}

	for i := range pestTable {
		p := &pestTable[i]
		if _, dup := s.pests[p.Code]; dup {
			return nil, fmt.Errorf("manual data: duplicate pest code %s", p.Code)
		}
		s.pests[p.Code] = p
		s.pestOrder = append(s.pestOrder, p.Code)
	}

	for i := range commodityTable {
		if err := s.addCommodity(&commodityTable[i]); err != nil {
			return nil, err
		}
	}
	for i := range extra {
		c := extra[i]
		s.removeCommodity(Normalize(c.Name))
		if err := s.addCommodity(&c); err != nil {
			return nil, err
		}
	}

	for i := range requirementTable {
		r := &requirementTable[i]
		if _, ok := s.pests[r.Pest]; !ok {
			return nil, fmt.Errorf("manual data: %s references unknown pest %s", r.Code, r.Pest)
		}
		if _, dup := s.reqByCode[r.Code]; dup {
			return nil, fmt.Errorf("manual data: duplicate requirement code %s", r.Code)
		}
		s.reqs = append(s.reqs, r)
		s.reqByCode[r.Code] = r
	}

	for i := range icaTable {
		ica := &icaTable[i]
		if _, ok := s.reqByCode[ica.IRCode]; !ok {
			return nil, fmt.Errorf("manual data: %s references unknown requirement %s", ica.Code, ica.IRCode)
		}
		s.icas[ica.Code] = ica
	}

	return s, nil
}

func (s *Store) addCommodity(c *Commodity) error {
	key := Normalize(c.Name)
	if _, dup := s.commodities[key]; dup {
		return fmt.Errorf("manual data: duplicate commodity %q", c.Name)
	}
	if owner, taken := s.aliasIndex[key]; taken {
		return fmt.Errorf("manual data: commodity %q collides with alias of %q", c.Name, owner)
	}
	for _, code := range c.Hosts {
		if _, ok := s.pests[code]; !ok {
			return fmt.Errorf("manual data: commodity %q hosts unknown pest %s", c.Name, code)
		}
	}
	s.commodities[key] = c
	s.order = append(s.order, key)
	for _, alias := range c.Aliases {
		ak := Normalize(alias)
		if _, dup := s.commodities[ak]; dup {
			return fmt.Errorf("manual data: alias %q of %q collides with a commodity name", alias, c.Name)
		}
		if owner, taken := s.aliasIndex[ak]; taken && owner != key {
			return fmt.Errorf("manual data: alias %q claimed by both %q and %q", alias, owner, c.Name)
		}
		s.aliasIndex[ak] = key
	}
	return nil
}

func (s *Store) removeCommodity(key string) {
	c, ok := s.commodities[key]
	if !ok {
		return
	}
	delete(s.commodities, key)
	for _, alias := range c.Aliases {
		delete(s.aliasIndex, Normalize(alias))
	}
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Find resolves a commodity by exact name or registered alias after
// normalization. Returns ErrCommodityNotFound on a miss; it never falls back
// to partial matching.
func (s *Store) Find(name string) (*Commodity, error) {
	key := Normalize(name)
	if key == "" {
		return nil, fmt.Errorf("%w: empty name", ErrCommodityNotFound)
	}
	if c, ok := s.commodities[key]; ok {
		return c, nil
	}
	if canonical, ok := s.aliasIndex[key]; ok {
		return s.commodities[canonical], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrCommodityNotFound, name)
}

// Search returns commodities whose canonical name contains the fragment,
// sorted by name. Used to suggest near-misses when Find fails; it never
// substitutes for an exact match.
func (s *Store) Search(fragment string) []*Commodity {
	frag := Normalize(fragment)
	if frag == "" {
		return nil
	}
	var out []*Commodity
	for key, c := range s.commodities {
		if strings.Contains(key, frag) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Commodities returns all register entries in registration order.
func (s *Store) Commodities() []*Commodity {
	out := make([]*Commodity, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.commodities[key])
	}
	return out
}

// Pest returns the Table 1 entry for code.
func (s *Store) Pest(code PestCode) (*Pest, error) {
	if p, ok := s.pests[code]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrPestNotFound, code)
}

// PestByName resolves a pest by acronym or common name, case-insensitively.
func (s *Store) PestByName(name string) (*Pest, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, fmt.Errorf("%w: empty name", ErrPestNotFound)
	}
	for _, code := range s.pestOrder {
		p := s.pests[code]
		if strings.ToLower(string(p.Code)) == needle || strings.ToLower(p.Name) == needle {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPestNotFound, name)
}

// Pests returns the Table 1 key in table order.
func (s *Store) Pests() []*Pest {
	out := make([]*Pest, 0, len(s.pestOrder))
	for _, code := range s.pestOrder {
		out = append(out, s.pests[code])
	}
	return out
}

// PestPresent reports whether the pest is recorded as present in state.
func (s *Store) PestPresent(code PestCode, state State) (bool, error) {
	p, err := s.Pest(code)
	if err != nil {
		return false, err
	}
	return p.Present(state), nil
}

// RequirementsFor returns the import requirements that apply to a commodity
// consigned from origin, in section order. An IR applies when the commodity
// hosts the IR's pest, the pest is present in origin, and the IR covers the
// commodity's type.
func (s *Store) RequirementsFor(c *Commodity, origin State) []*ImportRequirement {
	var out []*ImportRequirement
	for _, r := range s.reqs {
		if !c.HostOf(r.Pest) {
			continue
		}
		if !s.pests[r.Pest].Present(origin) {
			continue
		}
		if !r.covers(c.Type) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (r *ImportRequirement) covers(t CommodityType) bool {
	if len(r.CommodityTypes) == 0 {
		return true
	}
	for _, ct := range r.CommodityTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// PestsFor returns a presence verdict for each pest the commodity hosts,
// in Table 1 order.
func (s *Store) PestsFor(c *Commodity, origin State) []PestStatus {
	var out []PestStatus
	for _, code := range s.pestOrder {
		if !c.HostOf(code) {
			continue
		}
		p := s.pests[code]
		out = append(out, PestStatus{Pest: p, Present: p.Present(origin)})
	}
	return out
}

// Requirement looks up an IR by code, accepting "IR 4", "IR4" and "ir 4".
func (s *Store) Requirement(code string) (*ImportRequirement, bool) {
	norm := strings.ToUpper(strings.Join(strings.Fields(code), " "))
	norm = strings.Replace(norm, "IR", "IR ", 1)
	norm = strings.Join(strings.Fields(norm), " ")
	r, ok := s.reqByCode[norm]
	return r, ok
}

// ICAsFor returns the ICA arrangements attached to an IR, in register order.
func (s *Store) ICAsFor(r *ImportRequirement) []*ICA {
	var out []*ICA
	for _, code := range r.ICACodes {
		if ica, ok := s.icas[code]; ok {
			out = append(out, ica)
		}
	}
	return out
}

// Zone returns the phylloxera zone classification for a state.
func (s *Store) Zone(state State) ZoneCode {
	if z, ok := s.zones[state]; ok {
		return z
	}
	return ZonePEZ
}

// Treatments returns the approved disinfestation treatment schedule.
func (s *Store) Treatments() []Treatment {
	return treatmentSchedule
}

// Documentation returns the paperwork checklist for treated consignments.
func (s *Store) Documentation() []string {
	return documentationChecklist
}
