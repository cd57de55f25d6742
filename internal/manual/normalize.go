package manual

// normalize.go handles commodity name normalization.
//
// Trade and household names rarely match the PQM host register verbatim:
// consignments are declared as "table grapes" or "aubergines" while the
// register lists "grape" and "eggplant". Normalization lowercases, trims and
// collapses whitespace, then folds known plural and variant forms to their
// canonical singular entry. Matching stays exact after folding; there is no
// fuzzy or phonetic matching.

import "strings"

// Normalize returns the canonical lookup form of a commodity name.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.Join(strings.Fields(n), " ")
	if canonical, ok := canonicalForms[n]; ok {
		return canonical
	}
	return n
}

// canonicalForms folds plural and variant commodity names to the canonical
// register entry. Variety names ("navel oranges") fold to their species entry
// because the PQM regulates at species level.
var canonicalForms = map[string]string{
	"apples":              "apple",
	"grapes":              "grape",
	"strawberries":        "strawberry",
	"bananas":             "banana",
	"oranges":             "sweet orange",
	"lemons":              "lemon",
	"limes":               "lime",
	"peaches":             "peach",
	"nectarines":          "nectarine",
	"plums":               "plum",
	"cherries":            "sweet cherry",
	"apricots":            "apricot",
	"pears":               "pear",
	"mangoes":             "mango",
	"mangos":              "mango",
	"avocados":            "avocado",
	"tomatoes":            "tomato",
	"capsicums":           "capsicum",
	"chillies":            "chilli",
	"chilis":              "chilli",
	"papayas":             "papaya",
	"guavas":              "guava",
	"lychees":             "lychee",
	"longans":             "longan",
	"rambutans":           "rambutan",
	"passionfruits":       "passionfruit",
	"dragonfruits":        "dragon fruit",
	"dragon fruits":       "dragon fruit",
	"custard apples":      "custard apple",
	"breadfruits":         "breadfruit",
	"jackfruits":          "jackfruit",
	"starfruits":          "star fruit",
	"star fruits":         "star fruit",
	"feijoas":             "feijoa",
	"kiwifruits":          "kiwifruit",
	"kiwi fruits":         "kiwifruit",
	"persimmons":          "persimmon",
	"figs":                "fig",
	"quinces":             "quince",
	"tamarillos":          "tamarillo",
	"loquats":             "loquat",
	"kumquats":            "kumquat",
	"pomegranates":        "pomegranate",
	"nashis":              "nashi",
	"rollinias":           "rollinia",
	"blackberries":        "blackberry",
	"raspberries":         "raspberry",
	"loganberries":        "loganberry",
	"boysenberries":       "boysenberry",
	"youngberries":        "youngberry",
	"blueberries":         "blueberry",
	"dates":               "date",
	"olives":              "olive",
	"coffee cherries":     "coffee cherry",
	"coffee beans":        "coffee cherry",
	"eggplants":           "eggplant",
	"aubergines":          "eggplant",
	"pepinos":             "pepino",
	"table grapes":        "grape",
	"wine grapes":         "grape",
	"seedless grapes":     "grape",
	"red grapes":          "grape",
	"white grapes":        "grape",
	"green grapes":        "grape",
	"black grapes":        "grape",
	"sweet oranges":       "sweet orange",
	"navel oranges":       "sweet orange",
	"valencia oranges":    "sweet orange",
	"blood oranges":       "sweet orange",
	"mandarins":           "mandarin",
	"tangerines":          "mandarin",
	"clementines":         "mandarin",
	"satsumas":            "mandarin",
	"grapefruits":         "grapefruit",
	"pink grapefruits":    "grapefruit",
	"white grapefruits":   "grapefruit",
	"red grapefruits":     "grapefruit",
	"pomelos":             "pummelo",
	"pummelos":            "pummelo",
	"tangelos":            "tangelo",
	"citrons":             "citron",
	"meyer lemons":        "meyer lemon",
	"rangpur limes":       "rangpur lime",
	"tahitian limes":      "tahitian lime",
	"seville oranges":     "seville orange",
	"desert limes":        "desert lime",
	"japanese plums":      "japanese plum",
	"sour cherries":       "sour cherry",
	"plumcots":            "plumcot",
	"peacharines":         "peacharine",
	"black sapotes":       "black sapote",
	"white sapotes":       "white sapote",
	"star apples":         "star apple",
	"rose apples":         "rose apple",
	"mountain apples":     "mountain apple",
	"wax apples":          "wax apple",
	"spanish cherries":    "spanish cherry",
	"madagascar olives":   "madagascar olive",
	"bourbon oranges":     "bourbon orange",
	"mamey sapotes":       "mamey sapote",
	"surinam cherries":    "surinam cherry",
	"grumichamas":         "grumichama",
	"jaboticabas":         "jaboticaba",
	"monsteras":           "monstera",
	"mulberries":          "mulberry",
	"mock oranges":        "mock orange",
	"granadillas":         "granadilla",
	"cape gooseberries":   "cape gooseberry",
	"abius":               "abiu",
	"durians":             "durian",
	"mangosteens":         "mangosteen",
	"walnuts":             "walnut",
	"acerolas":            "acerola",
	"crab apples":         "crab apple",
	"sapodillas":          "sapodilla",
	"japanese persimmons": "japanese persimmon",
	"tropical almonds":    "tropical almond",
	"chebulic myrobalans": "chebulic myrobalan",
	"cacaos":              "cacao",
	"cashew apples":       "cashew apple",
	"cherimoyas":          "cherimoya",
	"pond apples":         "pond apple",
	"soursops":            "soursop",
	"akee apples":         "akee apple",
	"babacos":             "babaco",
	"natal plums":         "natal plum",
	"hawthorns":           "hawthorn",
	"excelsa coffees":     "excelsa coffee",
	"liberian coffees":    "liberian coffee",
	"robusta coffees":     "robusta coffee",
	"lilly pillies":       "lilly pilly",
	"jerusalem cherries":  "jerusalem cherry",
	"jew plums":           "jew plum",
	"jambus":              "jambu",
	"prickly pears":       "prickly pear",
	"almonds":             "almond",
	"sweet cherries":      "sweet cherry",
	"mombins":             "mombin",
}
