package manual

// classify.go sorts goods into the three biosecurity matter categories the
// PQM uses at the border: permitted (processed goods with no quarantine
// risk), prohibited (entry refused outright), and restricted (entry only
// under the import requirements for the commodity class). Fresh plant
// material defaults to restricted.

import "strings"

// Category is a biosecurity matter category.
type Category string

const (
	CategoryPermitted  Category = "permitted"
	CategoryProhibited Category = "prohibited"
	CategoryRestricted Category = "restricted"
)

// Classification is the category verdict for a declared good.
type Classification struct {
	Category     Category
	Reason       string
	Requirements []string
}

// prohibitedGoods lists goods refused entry outright. Checked in order, most
// specific fragment first.
var prohibitedGoods = []struct {
	fragment string
	reason   string
}{
	{"cannabis seed", "Cannabis seeds are prohibited imports under Tasmanian law"},
	{"cannabis", "Cannabis material is a prohibited import under Tasmanian law"},
	{"opium poppy seed", "Opium poppy seeds are prohibited imports without a licence"},
	{"opium poppy", "Opium poppy material is a prohibited import without a licence"},
	{"salvinia", "Salvinia is a declared weed and prohibited entry"},
	{"water hyacinth", "Water hyacinth is a declared weed and prohibited entry"},
}

// permittedMarkers are processing descriptors that remove quarantine risk.
var permittedMarkers = []string{
	"dried", "roasted", "processed", "canned", "tinned", "frozen",
	"pickled", "cooked", "pet food", "honey",
}

// Classify returns the biosecurity matter category for a declared good.
// Classification is keyword based and intentionally conservative: anything
// not clearly processed or prohibited is restricted.
func (s *Store) Classify(name string) Classification {
	n := Normalize(name)

	for _, entry := range prohibitedGoods {
		if strings.Contains(n, entry.fragment) {
			return Classification{
				Category: CategoryProhibited,
				Reason:   entry.reason,
			}
		}
	}

	for _, marker := range permittedMarkers {
		if strings.Contains(n, marker) {
			return Classification{
				Category: CategoryPermitted,
				Reason:   "Processed goods with no live plant material are permitted entry",
				Requirements: []string{
					"Goods must be free of live insects, soil and plant debris",
					"Packaging must be new or sanitised",
				},
			}
		}
	}

	return Classification{
		Category: CategoryRestricted,
		Reason:   "Fresh plant material is restricted entry and must meet the import requirements for its commodity class",
		Requirements: []string{
			"Entry subject to the import requirements for the commodity class",
		},
	}
}
