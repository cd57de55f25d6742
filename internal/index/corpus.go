package index

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
)

// Page is one page of the quarantine manual with its 1-based page number.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Pages returns the built-in manual corpus. It covers every section 3
// import requirement plus the appendix tables, so a rebuild works without
// a fetched manual on disk.
func Pages() []Page {
	return slices.Clone(builtinPages)
}

// LoadPages reads a corpus file written by the fetch command. The file is
// a JSON array of pages. Blank pages are dropped; a page number that is
// not positive is an error.
func LoadPages(path string) ([]Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}
	var pages []Page
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	out := make([]Page, 0, len(pages))
	for i, p := range pages {
		if p.Number <= 0 {
			return nil, fmt.Errorf("corpus entry %d: page number %d is not positive", i, p.Number)
		}
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("corpus file %s holds no usable pages", path)
	}
	return out, nil
}

// builtinPages holds excerpts of the 2024 manual edition. Page numbers
// and section headings match the references in the structured tables, so
// retrieved chunks and structured answers cite the same locations.
var builtinPages = []Page{
	{
		Number: 5,
		Text: `Section 1.1 Purpose of this manual

The Plant Quarantine Manual Tasmania sets out the entry requirements for plants, plant products and other prescribed matter imported into Tasmania. It is published under the Plant Quarantine Act 1997 and gives effect to import requirements declared by the Chief Plant Protection Officer.

The manual is arranged in three parts. Part 1 explains how to use the manual. Part 2 sets out the general requirements that apply to all imports, including notification and certification. Part 3 lists the import requirements (IR 1 to IR 14) that apply to specific pests, diseases and commodity groups. The appendices contain the pest and disease name key, the register of Interstate Certification Assurance arrangements, the schedule of approved treatments and the documentation checklist.

Importers are responsible for checking the conditions that apply to their consignment before it leaves the place of origin. Produce that arrives without the required certification may be re-exported, treated or destroyed at the importer's expense.`,
	},
	{
		Number: 12,
		Text: `Section 2.2 Notification and documentation

All consignments of prescribed matter imported into Tasmania must be notified to Biosecurity Tasmania before arrival.

1. A Notice of Intention (NoI) to Import must be lodged with Biosecurity Tasmania at least 24 hours before the consignment arrives in Tasmania.

2. Where an import requirement in Part 3 calls for certification, the consignment must travel with an acceptable Plant Health Certificate, a Plant Health Assurance Certificate (PHAC) issued under an accredited Interstate Certification Assurance arrangement, or an equivalent phytosanitary certificate issued by the state of origin.

3. Certificates must identify the consignment, the place of origin and, where treatment is required, the treatment applied, the date of treatment and the facility that applied it.

4. Copies of all certificates must be retained by the importer for at least 12 months and produced to an inspector on request.`,
	},
	{
		Number: 38,
		Text: `Section 3.1 IR 1 Queensland fruit fly host produce

Queensland fruit fly (Bactrocera tryoni) is established in Queensland, New South Wales, Victoria and the Northern Territory. Tasmania is free of Queensland fruit fly, and this requirement protects that status.

IR 1 applies to all fruit and plant material of species listed as Queensland fruit fly host produce in the host register, where the produce was grown in, or moved through, a state or territory in which Queensland fruit fly is established.

Entry conditions

1. Host produce must be treated with an approved disinfestation treatment and certified free from fruit fly. Approved treatments are listed in the schedule of approved treatments and include cold treatment at 1°C for 14 days, heat treatment at 47°C for 20 minutes, and fumigation with methyl bromide or phosphine at the rates given in the schedule.

2. Certification may be provided as a Plant Health Certificate issued by the state of origin, or as a Plant Health Assurance Certificate issued under Interstate Certification Assurance arrangement ICA-1 (Queensland Fruit Fly Hosts). Certificates issued under the superseded arrangement ICA-3 (Fumigation with Methyl Bromide) remain acceptable for consignments treated before that arrangement was withdrawn.

3. Each package in the consignment must be secured against infestation during transport. Acceptable security includes unbroken cartons, sealed bins, vented packages with secure mesh, and fully enclosed transport units.

4. The certificate accompanying the consignment must state the treatment applied, the rate or schedule used, the date of treatment and the identity of the treating facility.

Produce that arrives without treatment certification will be held at the importer's expense and may be re-exported, treated where an approved facility is available, or destroyed.`,
	},
	{
		Number: 40,
		Text: `Section 3.2 IR 2 Mediterranean fruit fly host produce

Mediterranean fruit fly (Ceratitis capitata) is established in Western Australia. Tasmania is free of Mediterranean fruit fly.

IR 2 applies to all fruit and plant material of species listed as Mediterranean fruit fly host produce in the host register, where the produce was grown in Western Australia or moved through Western Australia other than in secure transit.

Entry conditions

1. Host produce must be treated with an approved disinfestation treatment and certified free from fruit fly.

2. Certification may be provided as a Plant Health Certificate or as a Plant Health Assurance Certificate issued under Interstate Certification Assurance arrangement ICA-2 (Mediterranean Fruit Fly Hosts).

3. Each package must be secured against infestation during transport.`,
	},
	{
		Number: 42,
		Text: `Section 3.3 IR 3 Grape phylloxera host material

Grape phylloxera (Daktulosphaira vitifoliae) occurs in parts of New South Wales and Victoria. For the purposes of this requirement Australia is divided into Phylloxera Infested Zones (PIZ), Phylloxera Risk Zones (PRZ) and Phylloxera Exclusion Zones (PEZ). New South Wales and Victoria contain infested zones. Queensland and the Australian Capital Territory are risk zones. South Australia, Western Australia, the Northern Territory and Tasmania are exclusion zones.

IR 3 applies to grapevines and grapevine material, table and wine grapes, used grape harvesting equipment and used packages.

Entry conditions

1. Grapevine material must be sourced from a Phylloxera Exclusion Zone or hot water treated at 50°C for 30 minutes.

2. Used grape harvesting equipment requires certified steam cleaning before entry.

3. Grapes grown in an infested or risk zone must travel in new or sterilised packages.`,
	},
	{
		Number: 44,
		Text: `Section 3.4 IR 4 Potato cyst nematode host material

Potato cyst nematode (Globodera rostochiensis) occurs in Victoria. IR 4 applies to potato tubers, other host tubers and host nursery stock.

Entry conditions

1. Tubers must be grown on land certified free of potato cyst nematode.

2. Consignments must be effectively free of soil.`,
	},
	{
		Number: 45,
		Text: `Section 3.5 IR 5 Onion smut host material

Onion smut (Urocystis cepulae) occurs in South Australia. IR 5 applies to onion, garlic, leek, shallot and chive bulbs and seedlings.

Entry conditions

1. Bulbs must be free of soil and certified free of onion smut.`,
	},
	{
		Number: 46,
		Text: `Section 3.6 IR 6 Myrtle rust host plants

Myrtle rust (Austropuccinia psidii) is established in Queensland, New South Wales and Victoria. IR 6 applies to live plants and cut material of species in the family Myrtaceae, including eucalyptus, lilly pilly, bottlebrush and feijoa.

Entry conditions

1. Host plants must be inspected and found free of myrtle rust symptoms within 7 days of dispatch.

2. Host plants must be treated with a registered fungicide before shipment.`,
	},
	{
		Number: 48,
		Text: `Section 3.7 IR 7 Tomato potato psyllid host material

Tomato potato psyllid (Bactericera cockerelli) is established in Western Australia. IR 7 applies to fruit, vegetables and nursery stock of solanaceous hosts, including tomato, potato, capsicum, chilli and eggplant, and to sweet potato.

Entry conditions

1. Host material must be certified free of tomato potato psyllid following crop monitoring.`,
	},
	{
		Number: 50,
		Text: `Section 3.8 IR 8 Tomato yellow leaf curl virus host material

Tomato yellow leaf curl virus occurs in Queensland and the Northern Territory. IR 8 applies to tomato fruit and to host nursery stock.

Entry conditions

1. Host material is only accepted from certified virus-free production facilities.`,
	},
	{
		Number: 51,
		Text: `Section 3.9 IR 9 Silverleaf whitefly host material

Silverleaf whitefly (Bemisia tabaci) is established in Queensland. IR 9 applies to fruit, vegetables and nursery stock of host species, including tomato, capsicum, cucurbits and sweet potato.

Entry conditions

1. Host material must be inspected and found free of silverleaf whitefly.`,
	},
	{
		Number: 52,
		Text: `Section 3.10 IR 10 Lupin anthracnose host seed

Lupin anthracnose (Colletotrichum lupini) occurs in Western Australia and South Australia. IR 10 applies to lupin seed and to other host seed listed in the host register.

Entry conditions

1. Seed lots must be laboratory tested and certified free of lupin anthracnose.`,
	},
	{
		Number: 54,
		Text: `Section 3.11 IR 11 Red imported fire ant risk material

Red imported fire ant (Solenopsis invicta) is under eradication in Queensland and has been detected in New South Wales. IR 11 applies to material capable of harbouring fire ants, including potted plants, soil, mulch, baled hay and used agricultural equipment.

Entry conditions

1. Risk material must originate outside declared fire ant biosecurity zones or be certified as treated.`,
	},
	{
		Number: 55,
		Text: `Section 3.12 IR 12 European house borer risk timber

European house borer (Hylotrupes bajulus) occurs in Western Australia. IR 12 applies to untreated coniferous timber and timber products from Western Australia.

Entry conditions

1. Timber must be kiln dried, fumigated, or certified as originating outside the European house borer restricted area.`,
	},
	{
		Number: 56,
		Text: `Section 3.13 IR 13 Declared weeds

IR 13 applies to plants declared as weeds under Tasmanian weed legislation and to their seeds, in any form including cuttings, whole plants, seed lots and contaminated produce. Declared weeds include gorse, willows, serrated tussock and opium poppy other than under licence.

Entry conditions

1. Plants declared as weeds in Tasmania and their seeds are prohibited imports.`,
	},
	{
		Number: 57,
		Text: `Section 3.14 IR 14 Genetically modified plant material

IR 14 applies to genetically modified plant material of any species, including seed for sowing, whole plants and propagating material such as canola and cotton seed.

Entry conditions

1. Genetically modified plant material requires prior written approval from the Secretary.`,
	},
	{
		Number: 83,
		Text: `Appendix 1 Table 1 Pest and disease name key

Bacterial Wilt (Ralstonia solanacearum): not known to occur in Australia.
Chickpea Blight (Ascochyta rabiei): not known to occur in Australia.
Declared Weeds: declared species occur in all mainland states and territories.
European House Borer (Hylotrupes bajulus): Western Australia.
Fire Blight (Erwinia amylovora): not known to occur in Australia.
Genetically Modified Plants: approved releases occur in all mainland states and territories.
Grape Phylloxera (Daktulosphaira vitifoliae): New South Wales, Victoria.
Iris Yellow Spot Virus: not known to occur in Australia.
Lupin Anthracnose (Colletotrichum lupini): Western Australia, South Australia.
Mediterranean Fruit Fly (Ceratitis capitata): Western Australia.
Myrtle Rust (Austropuccinia psidii): Queensland, New South Wales, Victoria.
Nursery Stock: condition category, not a pest record.
Onion Smut (Urocystis cepulae): South Australia.
Potato Cyst Nematode (Globodera rostochiensis): Victoria.
Pea Weevil (Bruchus pisorum): not known to occur in Australia.
Queensland Fruit Fly (Bactrocera tryoni): Queensland, New South Wales, Victoria, Northern Territory.
Red Imported Fire Ant (Solenopsis invicta): Queensland, New South Wales.
Ryegrass Nematode (Anguina funesta): not known to occur in Australia.
Silverleaf Whitefly (Bemisia tabaci): Queensland.
Tomato Potato Psyllid (Bactericera cockerelli): Western Australia.
Tomato Yellow Leaf Curl Virus: Queensland, Northern Territory.`,
	},
	{
		Number: 84,
		Text: `Appendix 2 Register of Interstate Certification Assurance arrangements

ICA-1 Queensland Fruit Fly Hosts: current. Supports certification under IR 1.
ICA-2 Mediterranean Fruit Fly Hosts: current. Supports certification under IR 2.
ICA-3 Fumigation with Methyl Bromide: superseded. Certificates issued while the arrangement was current remain acceptable under IR 1.

A Plant Health Assurance Certificate is acceptable only while the issuing business holds current accreditation for the arrangement quoted on the certificate.`,
	},
	{
		Number: 85,
		Text: `Appendix 3 Schedule of approved treatments

Cold treatment: 1°C for 14 days. Fruit pulp temperature must be held at or below the schedule temperature for the full period.
Heat treatment: 47°C for 20 minutes. Fruit core temperature must reach the schedule temperature.
Fumigation: methyl bromide or phosphine at the label rate for the commodity and temperature band.

Treatment certificates must state the schedule applied, the date and the treating facility.`,
	},
	{
		Number: 86,
		Text: `Appendix 4 Documentation checklist

Before the consignment arrives in Tasmania, confirm that:

1. A Notice of Intention (NoI) to Import has been lodged at least 24 hours before arrival.
2. A phytosanitary certificate with treatment details accompanies the consignment where treatment is required.
3. A treatment certificate is attached where a treatment was applied by a third party facility.
4. Package labelling identifies the grower, the packer and the place of origin.`,
	},
}
