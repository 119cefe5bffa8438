// Package fieldmap maps raw spreadsheet headers to canonical field keys and
// target categories. Source templates are revised over time (columns move,
// get renamed, or get retired), so resolution degrades gracefully through a
// prioritized chain instead of hard-failing on an unknown header.
package fieldmap

import (
	"regexp"
	"strings"
)

// Category is the entity family a column's values are distributed into
type Category string

const (
	CategoryContract Category = "contract"
	CategoryShipment Category = "shipment"
	CategoryQuality  Category = "quality"
	CategoryTrucking Category = "trucking"
	CategoryPayment  Category = "payment"
	CategoryVessel   Category = "vessel"
)

// ColumnMapping describes one resolved column of a source sheet
type ColumnMapping struct {
	Index       int      `json:"index"`
	Header      string   `json:"header"` // cleaned form of the raw header
	Key         string   `json:"key"`
	Category    Category `json:"category"`
	FromSource  bool     `json:"is_from_source"`
	ManualEntry bool     `json:"is_manual_entry"`
	Calculated  bool     `json:"is_calculated"`
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	snakePattern      = regexp.MustCompile(`[^a-z0-9]+`)
)

// CleanHeader collapses line breaks and runs of whitespace, lowercases, and
// trims a raw header into its canonical lookup form.
func CleanHeader(raw string) string {
	cleaned := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(raw)
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(strings.ToLower(cleaned))
	return strings.TrimSuffix(cleaned, ":")
}

// prioritySubstrings are checked before generic containment because their
// concepts collide with many longer headers ("contract no" appears inside
// "contract no. & date", "sto quantity" inside "sto quantity (mt)", etc.).
// Order matters: more specific substrings come first.
var prioritySubstrings = []aliasEntry{
	{"sto quantity", KeySTOQuantity, CategoryShipment},
	{"contract quantity", KeyQuantityOrdered, CategoryContract},
	{"sto no", KeySTONumber, CategoryShipment},
	{"contract no", KeyContractNumber, CategoryContract},
	{"po no", KeyPONumber, CategoryContract},
	{"vessel name", KeyVesselName, CategoryVessel},
}

// Resolve maps one raw header to its canonical key and category. The chain:
// exact alias match, then priority substrings, then generic containment
// against the alias table, then a mechanical snake_case key categorized by
// keyword predicates. Resolve never fails; every header gets some mapping.
func Resolve(index int, raw string) ColumnMapping {
	cleaned := CleanHeader(raw)
	mapping := ColumnMapping{
		Index:      index,
		Header:     cleaned,
		FromSource: true,
	}

	if entry, ok := aliasIndex[cleaned]; ok {
		mapping.Key = entry.key
		mapping.Category = entry.category
		return mapping
	}

	for _, entry := range prioritySubstrings {
		if strings.Contains(cleaned, entry.alias) {
			mapping.Key = entry.key
			mapping.Category = entry.category
			return mapping
		}
	}

	// Generic containment walks the table in declaration order so ties
	// resolve the same way on every run. Short aliases ("ffa", "sto", "pod")
	// only match as whole words or they would fire inside unrelated text.
	padded := " " + cleaned + " "
	for _, entry := range aliasTable {
		if len(entry.alias) >= 4 && strings.Contains(cleaned, entry.alias) {
			mapping.Key = entry.key
			mapping.Category = entry.category
			return mapping
		}
		if len(entry.alias) < 4 && strings.Contains(padded, " "+entry.alias+" ") {
			mapping.Key = entry.key
			mapping.Category = entry.category
			return mapping
		}
	}

	mapping.Key = snakeKey(cleaned)
	mapping.Category = Categorize(cleaned)
	return mapping
}

// snakeKey derives a mechanical snake_case key from a cleaned header
func snakeKey(cleaned string) string {
	return strings.Trim(snakePattern.ReplaceAllString(cleaned, "_"), "_")
}

// categoryPredicate is one keyword-membership test in the fixed priority order
type categoryPredicate struct {
	category Category
	keywords []string
}

// categoryPredicates are evaluated in order because keywords overlap between
// families ("vessel" appears in both shipment and vessel headers, "quantity"
// in nearly all of them). STO headers are forced to shipment first.
var categoryPredicates = []categoryPredicate{
	{CategoryShipment, []string{"sto"}},
	{CategoryContract, []string{"contract", "po", "purchase order", "supplier", "buyer", "price", "incoterm", "currency", "grade", "product", "commodity", "destination", "sea", "land", "payment term"}},
	{CategoryShipment, []string{"shipment", "vessel", "ship", "bl", "b/l", "bill of lading", "port", "eta", "ata", "etd", "sail", "laycan", "readiness", "discharge", "load"}},
	{CategoryQuality, []string{"ffa", "moisture", "dobi", "color", "colour", "dirt", "sand", "stone", "quality", "analysis", "surveyor"}},
	{CategoryTrucking, []string{"truck", "vehicle", "fleet", "driver", "darat", "haul"}},
	{CategoryPayment, []string{"payment", "due date", "dp", "down payment", "payoff", "pay off", "deviation", "invoice", "settle"}},
	{CategoryVessel, []string{"imo", "flag", "capacity", "dwt", "built"}},
}

// Categorize assigns a cleaned header to a category by the ordered keyword
// predicates. Short keywords only match as whole words, the same rule the
// alias containment path uses, or "po" would fire inside "tempo" and "eta"
// inside "metadata". Headers matching nothing land in contract, the broadest
// family.
func Categorize(cleaned string) Category {
	padded := " " + cleaned + " "
	for _, predicate := range categoryPredicates {
		for _, keyword := range predicate.keywords {
			if len(keyword) >= 4 {
				if strings.Contains(cleaned, keyword) {
					return predicate.category
				}
				continue
			}
			if strings.Contains(padded, " "+keyword+" ") {
				return predicate.category
			}
		}
	}
	return CategoryContract
}

// MapHeaders resolves a free-form header row into a positional column map.
// Blank headers are skipped; their cells are never distributed.
func MapHeaders(headers []string) []ColumnMapping {
	mappings := make([]ColumnMapping, 0, len(headers))
	for i, raw := range headers {
		if CleanHeader(raw) == "" {
			continue
		}
		mappings = append(mappings, Resolve(i, raw))
	}
	return mappings
}

// Legend markers read from provenance rows of the fixed layout
const (
	legendSource     = "sap"
	legendManual     = "manual"
	legendCalculated = "calc"
	legendFormula    = "formula"
)

// MapFixedLayout resolves the fixed "MASTER v2" layout: the header row sits at
// headerIndex, and up to two legend rows above it carry per-column provenance
// markers. The current default template collapses the legend rows into the
// header itself, in which case every column keeps FromSource=true.
func MapFixedLayout(rows [][]string, headerIndex int) []ColumnMapping {
	if headerIndex < 0 || headerIndex >= len(rows) {
		return nil
	}

	mappings := MapHeaders(rows[headerIndex])

	for legendOffset := 1; legendOffset <= 2; legendOffset++ {
		legendIndex := headerIndex - legendOffset
		if legendIndex < 0 {
			break
		}
		legend := rows[legendIndex]
		for i := range mappings {
			if mappings[i].Index >= len(legend) {
				continue
			}
			applyLegend(&mappings[i], CleanHeader(legend[mappings[i].Index]))
		}
	}

	return mappings
}

func applyLegend(mapping *ColumnMapping, marker string) {
	switch {
	case marker == "":
	case strings.Contains(marker, legendCalculated), strings.Contains(marker, legendFormula):
		mapping.Calculated = true
		mapping.FromSource = false
	case strings.Contains(marker, legendManual):
		mapping.ManualEntry = true
		mapping.FromSource = false
	case strings.Contains(marker, legendSource):
		mapping.FromSource = true
	}
}
