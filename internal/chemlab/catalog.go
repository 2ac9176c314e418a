package chemlab

import "strings"

// ChemicalRecord describes one known chemical in the catalog.
// Records are immutable once loaded; the matcher only reads them.
type ChemicalRecord struct {
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	Formula         string   `json:"formula,omitempty"`
	Color           string   `json:"color,omitempty"`
	MolecularWeight float64  `json:"molecular_weight,omitempty"`
	IUPACName       string   `json:"iupac_name,omitempty"`
	SMILES          string   `json:"smiles,omitempty"`
	CID             int      `json:"cid,omitempty"`
}

// Catalog resolves chemical names to their records.
// This is the only read the core performs against the outside world.
type Catalog interface {
	Lookup(name string) (ChemicalRecord, bool)
}

// NormalizeName canonicalizes a chemical name for catalog lookup and
// rule matching: lowercased, surrounding whitespace removed.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MemoryCatalog is an immutable in-memory Catalog keyed by normalized name.
type MemoryCatalog struct {
	records map[string]ChemicalRecord
}

// NewMemoryCatalog builds a catalog from the given records.
// Records missing a category are categorized heuristically so that role
// matching still works for them. Later duplicates overwrite earlier ones.
func NewMemoryCatalog(records []ChemicalRecord) *MemoryCatalog {
	byName := make(map[string]ChemicalRecord, len(records))
	for _, rec := range records {
		if rec.Category == "" || rec.Category == CategoryUnknown {
			rec.Category = CategorizeHeuristic(rec.Name, rec.Formula)
		}
		byName[NormalizeName(rec.Name)] = rec
	}
	return &MemoryCatalog{records: byName}
}

// Lookup resolves a chemical by name. The boolean reports whether the
// catalog knows the chemical.
func (c *MemoryCatalog) Lookup(name string) (ChemicalRecord, bool) {
	rec, ok := c.records[NormalizeName(name)]
	return rec, ok
}

// All returns every record in the catalog. Order is unspecified.
func (c *MemoryCatalog) All() []ChemicalRecord {
	out := make([]ChemicalRecord, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, rec)
	}
	return out
}

// Len returns the number of records in the catalog.
func (c *MemoryCatalog) Len() int {
	return len(c.records)
}
