package manual

// data.go seeds the reference tables from the 2024 edition of the PQM.
//
// pestTable mirrors Table 1 (pest and disease name key). commodityTable is
// the host register assembled from the QFF and MFF host lists plus the host
// ranges of the remaining Table 1 pests. requirementTable carries the
// section 3 import requirements with their section and page references so
// responses can cite the manual precisely.

// pestTable is the Table 1 pest and disease key. An empty PresentIn means
// the organism is exotic to Australia and origin-based conditions for it
// never trigger.
var pestTable = []Pest{
	{
		Code:       PestBW,
		Name:       "Bacterial Wilt",
		Scientific: "Ralstonia solanacearum",
		Notes:      "Not known to occur in Australia.",
	},
	{
		Code:       PestCB,
		Name:       "Chickpea Blight",
		Scientific: "Ascochyta rabiei",
		Notes:      "Not known to occur in Australia.",
	},
	{
		Code:      PestDW,
		Name:      "Declared Weeds",
		PresentIn: []State{QLD, NSW, VIC, WA, NT, SA},
		Notes:     "Condition category covering plants declared under Tasmanian weed legislation.",
	},
	{
		Code:       PestEHB,
		Name:       "European House Borer",
		Scientific: "Hylotrupes bajulus",
		PresentIn:  []State{WA},
	},
	{
		Code:       PestFB,
		Name:       "Fire Blight",
		Scientific: "Erwinia amylovora",
		Notes:      "Not known to occur in Australia.",
	},
	{
		Code:      PestGMP,
		Name:      "Genetically Modified Plants",
		PresentIn: []State{QLD, NSW, VIC, WA, NT, SA},
		Notes:     "Condition category covering genetically modified plant material.",
	},
	{
		Code:       PestGP,
		Name:       "Grape Phylloxera",
		Scientific: "Daktulosphaira vitifoliae",
		PresentIn:  []State{NSW, VIC},
	},
	{
		Code:       PestIYSV,
		Name:       "Iris Yellow Spot Virus",
		Scientific: "Iris yellow spot orthotospovirus",
		Notes:      "Not known to occur in Australia.",
	},
	{
		Code:       PestLA,
		Name:       "Lupin Anthracnose",
		Scientific: "Colletotrichum lupini",
		PresentIn:  []State{WA, SA},
	},
	{
		Code:       PestMFF,
		Name:       "Mediterranean Fruit Fly",
		Scientific: "Ceratitis capitata",
		PresentIn:  []State{WA},
	},
	{
		Code:       PestMR,
		Name:       "Myrtle Rust",
		Scientific: "Austropuccinia psidii",
		PresentIn:  []State{QLD, NSW, VIC},
	},
	{
		Code:  PestNS,
		Name:  "Nursery Stock",
		Notes: "Condition category for general nursery stock requirements.",
	},
	{
		Code:       PestOS,
		Name:       "Onion Smut",
		Scientific: "Urocystis cepulae",
		PresentIn:  []State{SA},
	},
	{
		Code:       PestPCN,
		Name:       "Potato Cyst Nematode",
		Scientific: "Globodera rostochiensis",
		PresentIn:  []State{VIC},
	},
	{
		Code:       PestPW,
		Name:       "Pea Weevil",
		Scientific: "Bruchus pisorum",
		Notes:      "Not known to occur in Australia.",
	},
	{
		Code:       PestQFF,
		Name:       "Queensland Fruit Fly",
		Scientific: "Bactrocera tryoni",
		PresentIn:  []State{QLD, NSW, VIC, NT},
	},
	{
		Code:       PestRIFA,
		Name:       "Red Imported Fire Ant",
		Scientific: "Solenopsis invicta",
		PresentIn:  []State{QLD, NSW},
	},
	{
		Code:       PestRN,
		Name:       "Ryegrass Nematode",
		Scientific: "Anguina funesta",
		Notes:      "Not known to occur in Australia.",
	},
	{
		Code:       PestSLW,
		Name:       "Silverleaf Whitefly",
		Scientific: "Bemisia tabaci",
		PresentIn:  []State{QLD},
	},
	{
		Code:       PestTPP,
		Name:       "Tomato Potato Psyllid",
		Scientific: "Bactericera cockerelli",
		PresentIn:  []State{WA},
	},
	{
		Code:       PestTYLCV,
		Name:       "Tomato Yellow Leaf Curl Virus",
		Scientific: "Tomato yellow leaf curl begomovirus",
		PresentIn:  []State{QLD, NT},
	},
}

// commodityTable is the host register. Fruit entries come from the QFF and
// MFF host lists; vegetable, seed, plant and other entries come from the
// host ranges of the remaining Table 1 pests. Aliases cover singular variant
// names that the plural folding in normalize.go cannot reach.
var commodityTable = []Commodity{
	// Pome fruit.
	{Name: "apple", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF, PestFB}},
	{Name: "crab apple", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF, PestFB}},
	{Name: "pear", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF, PestFB}},
	{Name: "nashi", Type: TypeFruit, Aliases: []string{"nashi pear", "asian pear"}, Hosts: []PestCode{PestQFF, PestMFF, PestFB}},
	{Name: "quince", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF, PestFB}},
	{Name: "loquat", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "hawthorn", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestFB}},

	// Grapes.
	{Name: "grape", Type: TypeFruit, Aliases: []string{"table grape", "wine grape"}, Hosts: []PestCode{PestQFF, PestMFF, PestGP}},

	// Citrus.
	{Name: "sweet orange", Type: TypeFruit, Aliases: []string{"orange", "navel orange", "valencia orange", "blood orange"}, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "seville orange", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "bourbon orange", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "mandarin", Type: TypeFruit, Aliases: []string{"tangerine", "clementine", "satsuma"}, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "lemon", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "meyer lemon", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "lime", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "tahitian lime", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "rangpur lime", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "desert lime", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "grapefruit", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "pummelo", Type: TypeFruit, Aliases: []string{"pomelo"}, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "tangelo", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "citron", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "kumquat", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},

	// Stone fruit.
	{Name: "peach", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "nectarine", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "peacharine", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "plum", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "japanese plum", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "plumcot", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "apricot", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "sweet cherry", Type: TypeFruit, Aliases: []string{"cherry"}, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "sour cherry", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},

	// Berries.
	{Name: "strawberry", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "blackberry", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "raspberry", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "loganberry", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "boysenberry", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "youngberry", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "blueberry", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "mulberry", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "cape gooseberry", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestTYLCV}},

	// Solanaceous produce.
	{Name: "tomato", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF, PestTPP, PestTYLCV, PestSLW, PestBW}},
	{Name: "capsicum", Type: TypeFruit, Aliases: []string{"bell pepper"}, Hosts: []PestCode{PestQFF, PestMFF, PestTPP, PestTYLCV, PestSLW}},
	{Name: "chilli", Type: TypeFruit, Aliases: []string{"chili", "chilli pepper"}, Hosts: []PestCode{PestQFF, PestMFF, PestTPP, PestTYLCV}},
	{Name: "eggplant", Type: TypeFruit, Aliases: []string{"aubergine"}, Hosts: []PestCode{PestQFF, PestMFF, PestTPP, PestSLW, PestBW}},
	{Name: "pepino", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestTPP}},
	{Name: "tamarillo", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF, PestTPP}},
	{Name: "jerusalem cherry", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestTYLCV}},

	// Tropical and subtropical fruit.
	{Name: "banana", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestBW}},
	{Name: "mango", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "avocado", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "papaya", Type: TypeFruit, Aliases: []string{"paw paw", "pawpaw"}, Hosts: []PestCode{PestQFF}},
	{Name: "guava", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF, PestMR}},
	{Name: "feijoa", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF, PestMR}},
	{Name: "lychee", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "longan", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "rambutan", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "passionfruit", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "granadilla", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "dragon fruit", Type: TypeFruit, Aliases: []string{"pitaya"}, Hosts: []PestCode{PestQFF}},
	{Name: "custard apple", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "cherimoya", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "soursop", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "pond apple", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "rollinia", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "breadfruit", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "jackfruit", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "star fruit", Type: TypeFruit, Aliases: []string{"carambola"}, Hosts: []PestCode{PestQFF}},
	{Name: "kiwifruit", Type: TypeFruit, Aliases: []string{"kiwi fruit"}, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "persimmon", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "japanese persimmon", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "fig", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "pomegranate", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "date", Type: TypeFruit, Hosts: []PestCode{PestMFF}},
	{Name: "olive", Type: TypeFruit, Hosts: []PestCode{PestMFF}},
	{Name: "madagascar olive", Type: TypeFruit, Hosts: []PestCode{PestMFF}},
	{Name: "prickly pear", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "durian", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "mangosteen", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "abiu", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "acerola", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "babaco", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "black sapote", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "white sapote", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "mamey sapote", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "sapodilla", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "star apple", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "akee apple", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "cashew apple", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "tropical almond", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "chebulic myrobalan", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "cacao", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "coffee cherry", Type: TypeFruit, Aliases: []string{"coffee bean"}, Hosts: []PestCode{PestQFF, PestMFF}},
	{Name: "excelsa coffee", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "liberian coffee", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "robusta coffee", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "monstera", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "mock orange", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "natal plum", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "jew plum", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "mombin", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "tamarind", Type: TypeFruit, Hosts: []PestCode{PestQFF}},

	// Myrtaceous fruit (myrtle rust hosts).
	{Name: "lilly pilly", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMR}},
	{Name: "rose apple", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMR}},
	{Name: "mountain apple", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMR}},
	{Name: "wax apple", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMR}},
	{Name: "jambu", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMR}},
	{Name: "spanish cherry", Type: TypeFruit, Hosts: []PestCode{PestQFF}},
	{Name: "surinam cherry", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMR}},
	{Name: "grumichama", Type: TypeFruit, Hosts: []PestCode{PestQFF, PestMR}},
	{Name: "jaboticaba", Type: TypeFruit, Hosts: []PestCode{PestQFF}},

	// Nuts.
	{Name: "walnut", Type: TypeFruit, Hosts: []PestCode{PestMFF}},
	{Name: "almond", Type: TypeFruit, Hosts: []PestCode{PestMFF}},

	// Vegetables and other produce.
	{Name: "potato", Type: TypeOther, Aliases: []string{"potatoes", "potato tuber", "potato tubers", "seed potato"}, Hosts: []PestCode{PestPCN, PestTPP, PestBW}},
	{Name: "sweet potato", Type: TypeOther, Aliases: []string{"sweet potatoes", "kumara"}, Hosts: []PestCode{PestSLW, PestBW}},
	{Name: "onion", Type: TypeOther, Aliases: []string{"onions", "brown onion"}, Hosts: []PestCode{PestOS, PestIYSV}},
	{Name: "garlic", Type: TypeOther, Aliases: []string{"garlic bulbs"}, Hosts: []PestCode{PestOS}},
	{Name: "leek", Type: TypeOther, Aliases: []string{"leeks"}, Hosts: []PestCode{PestOS, PestIYSV}},
	{Name: "ginger", Type: TypeOther, Aliases: []string{"ginger rhizomes"}, Hosts: []PestCode{PestBW}},

	// Seed.
	{Name: "pea seed", Type: TypeSeed, Aliases: []string{"pea seeds", "field pea", "field peas"}, Hosts: []PestCode{PestPW}},
	{Name: "chickpea seed", Type: TypeSeed, Aliases: []string{"chickpea", "chickpeas", "chickpea seeds"}, Hosts: []PestCode{PestCB}},
	{Name: "lupin seed", Type: TypeSeed, Aliases: []string{"lupin", "lupins", "lupin seeds"}, Hosts: []PestCode{PestLA}},
	{Name: "ryegrass seed", Type: TypeSeed, Aliases: []string{"ryegrass", "ryegrass seeds", "annual ryegrass seed"}, Hosts: []PestCode{PestRN}},
	{Name: "canola seed", Type: TypeSeed, Aliases: []string{"canola", "canola seeds", "gm canola"}, Hosts: []PestCode{PestGMP}},
	{Name: "cotton seed", Type: TypeSeed, Aliases: []string{"cotton seeds", "gm cotton"}, Hosts: []PestCode{PestGMP}},

	// Live plants and propagation material.
	{Name: "grapevine cutting", Type: TypePlant, Aliases: []string{"grapevine", "grapevines", "grapevine cuttings", "grape vine", "vine cutting"}, Hosts: []PestCode{PestGP}},
	{Name: "nursery stock", Type: TypePlant, Aliases: []string{"nursery plants", "potted plants", "live plants"}, Hosts: []PestCode{PestNS, PestQFF, PestMR, PestRIFA}},
	{Name: "willow cutting", Type: TypePlant, Aliases: []string{"willow", "willow cuttings"}, Hosts: []PestCode{PestDW}},
	{Name: "gorse", Type: TypePlant, Aliases: []string{"gorse plants"}, Hosts: []PestCode{PestDW}},
	{Name: "turf", Type: TypePlant, Aliases: []string{"turf rolls", "lawn turf"}, Hosts: []PestCode{PestRIFA}},

	// Non-plant risk material.
	{Name: "hay", Type: TypeOther, Aliases: []string{"hay bales"}, Hosts: []PestCode{PestRIFA}},
	{Name: "straw", Type: TypeOther, Aliases: []string{"straw bales"}, Hosts: []PestCode{PestRIFA}},
	{Name: "potting mix", Type: TypeOther, Aliases: []string{"potting media", "growing media"}, Hosts: []PestCode{PestRIFA}},
	{Name: "timber", Type: TypeOther, Aliases: []string{"untreated timber", "pine timber", "structural timber"}, Hosts: []PestCode{PestEHB}},
	{Name: "honey", Type: TypeOther, Aliases: []string{"raw honey", "honeycomb"}},
}

// requirementTable lists the section 3 import requirements. An IR applies to
// a consignment when the commodity hosts the IR's pest, the pest is present
// in the origin state, and the commodity type is covered.
var requirementTable = []ImportRequirement{
	{
		Code:           "IR 1",
		Title:          "Queensland fruit fly host produce",
		Section:        "3.1",
		Page:           38,
		Pest:           PestQFF,
		CommodityTypes: []CommodityType{TypeFruit, TypePlant},
		ICACodes:       []string{"ICA-1", "ICA-3"},
		NeedsTreatment: true,
		Conditions: []string{
			"Host produce must be treated with an approved disinfestation treatment and certified free from fruit fly",
			"Each package must be secured against infestation during transport",
		},
	},
	{
		Code:           "IR 2",
		Title:          "Mediterranean fruit fly host produce",
		Section:        "3.2",
		Page:           40,
		Pest:           PestMFF,
		CommodityTypes: []CommodityType{TypeFruit, TypePlant},
		ICACodes:       []string{"ICA-2"},
		NeedsTreatment: true,
		Conditions: []string{
			"Host produce must be treated with an approved disinfestation treatment and certified free from fruit fly",
			"Each package must be secured against infestation during transport",
		},
	},
	{
		Code:           "IR 3",
		Title:          "Grape phylloxera host material",
		Section:        "3.3",
		Page:           42,
		Pest:           PestGP,
		CommodityTypes: []CommodityType{TypeFruit, TypePlant},
		Conditions: []string{
			"Grapevine material must be sourced from a Phylloxera Exclusion Zone or hot water treated at 50°C for 30 minutes",
			"Used grape harvesting equipment requires certified steam cleaning before entry",
		},
	},
	{
		Code:           "IR 4",
		Title:          "Potato cyst nematode host material",
		Section:        "3.4",
		Page:           44,
		Pest:           PestPCN,
		CommodityTypes: []CommodityType{TypeOther, TypePlant},
		Conditions: []string{
			"Tubers must be grown on land certified free of potato cyst nematode",
			"Consignments must be effectively free of soil",
		},
	},
	{
		Code:           "IR 5",
		Title:          "Onion smut host material",
		Section:        "3.5",
		Page:           45,
		Pest:           PestOS,
		CommodityTypes: []CommodityType{TypeOther, TypePlant},
		Conditions: []string{
			"Bulbs must be free of soil and certified free of onion smut",
		},
	},
	{
		Code:           "IR 6",
		Title:          "Myrtle rust host plants",
		Section:        "3.6",
		Page:           46,
		Pest:           PestMR,
		CommodityTypes: []CommodityType{TypeFruit, TypePlant},
		Conditions: []string{
			"Host plants must be inspected and found free of myrtle rust symptoms within 7 days of dispatch",
			"Host plants must be treated with a registered fungicide before shipment",
		},
	},
	{
		Code:           "IR 7",
		Title:          "Tomato potato psyllid host material",
		Section:        "3.7",
		Page:           48,
		Pest:           PestTPP,
		CommodityTypes: []CommodityType{TypeFruit, TypeOther, TypePlant},
		Conditions: []string{
			"Host material must be certified free of tomato potato psyllid following crop monitoring",
		},
	},
	{
		Code:           "IR 8",
		Title:          "Tomato yellow leaf curl virus host material",
		Section:        "3.8",
		Page:           50,
		Pest:           PestTYLCV,
		CommodityTypes: []CommodityType{TypeFruit, TypePlant},
		Conditions: []string{
			"Host material is only accepted from certified virus-free production facilities",
		},
	},
	{
		Code:           "IR 9",
		Title:          "Silverleaf whitefly host material",
		Section:        "3.9",
		Page:           51,
		Pest:           PestSLW,
		CommodityTypes: []CommodityType{TypeFruit, TypeOther, TypePlant},
		Conditions: []string{
			"Host material must be inspected and found free of silverleaf whitefly",
		},
	},
	{
		Code:           "IR 10",
		Title:          "Lupin anthracnose host seed",
		Section:        "3.10",
		Page:           52,
		Pest:           PestLA,
		CommodityTypes: []CommodityType{TypeSeed},
		Conditions: []string{
			"Seed lots must be laboratory tested and certified free of lupin anthracnose",
		},
	},
	{
		Code:           "IR 11",
		Title:          "Red imported fire ant risk material",
		Section:        "3.11",
		Page:           54,
		Pest:           PestRIFA,
		CommodityTypes: []CommodityType{TypePlant, TypeOther},
		Conditions: []string{
			"Risk material must originate outside declared fire ant biosecurity zones or be certified as treated",
		},
	},
	{
		Code:           "IR 12",
		Title:          "European house borer risk timber",
		Section:        "3.12",
		Page:           55,
		Pest:           PestEHB,
		CommodityTypes: []CommodityType{TypeOther},
		Conditions: []string{
			"Timber must be kiln dried, fumigated, or certified as originating outside the European house borer restricted area",
		},
	},
	{
		Code:           "IR 13",
		Title:          "Declared weeds",
		Section:        "3.13",
		Page:           56,
		Pest:           PestDW,
		CommodityTypes: []CommodityType{TypePlant, TypeSeed},
		Conditions: []string{
			"Plants declared as weeds in Tasmania and their seeds are prohibited imports",
		},
	},
	{
		Code:           "IR 14",
		Title:          "Genetically modified plant material",
		Section:        "3.14",
		Page:           57,
		Pest:           PestGMP,
		CommodityTypes: []CommodityType{TypePlant, TypeSeed},
		Conditions: []string{
			"Genetically modified plant material requires prior written approval from the Secretary",
		},
	},
}

// icaTable is the Interstate Certification Assurance register. Superseded
// arrangements stay listed because certificates issued under them may still
// accompany consignments in transit.
var icaTable = []ICA{
	{Code: "ICA-1", Title: "Queensland Fruit Fly Hosts", Status: ICAActive, IRCode: "IR 1"},
	{Code: "ICA-2", Title: "Mediterranean Fruit Fly Hosts", Status: ICAActive, IRCode: "IR 2"},
	{Code: "ICA-3", Title: "Fumigation with Methyl Bromide", Status: ICASuperseded, IRCode: "IR 1"},
}

// phylloxeraZones classifies each jurisdiction for grape phylloxera.
// Zoning inside a state is finer grained in practice; state level is the
// resolution the structured tables carry.
var phylloxeraZones = map[State]ZoneCode{
	QLD: ZonePRZ,
	NSW: ZonePIZ,
	VIC: ZonePIZ,
	SA:  ZonePEZ,
	WA:  ZonePEZ,
	NT:  ZonePEZ,
	ACT: ZonePRZ,
	TAS: ZonePEZ,
}

// treatmentSchedule lists the approved disinfestation treatments for fruit
// fly host produce.
var treatmentSchedule = []Treatment{
	{Name: "Cold treatment", Detail: "1°C for 14 days"},
	{Name: "Heat treatment", Detail: "47°C for 20 minutes"},
	{Name: "Fumigation", Detail: "methyl bromide or phosphine"},
}

// documentationChecklist lists the paperwork required for treated
// consignments.
var documentationChecklist = []string{
	"Phytosanitary certificate with treatment details",
	"Treatment certificate",
	"Notice of Intention (NoI) to Import lodged at least 24 hours before arrival",
}

// PreEntryReminder is the baseline pre-entry paperwork advice from PQM-Tas
// section 2.2. It closes every response regardless of commodity.
const PreEntryReminder = "⚠️ **Pre-entry paperwork (PQM-Tas §2.2)**\n" +
	"• Lodge a *Notice of Intention (NoI) to Import* with Biosecurity Tasmania at least **24 h before the consignment arrives**; and\n" +
	"• If required, attach an acceptable Plant Health Certificate, PHAC or equivalent phytosanitary certificate.\n\n" +
	"Commodity-specific conditions (see above) apply on top of these baseline rules."
