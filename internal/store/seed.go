package store

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/daniacca/chemlab/internal/chemlab"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Chemicals []seedChemical `yaml:"chemicals"`
}

type seedChemical struct {
	Name            string  `yaml:"name"`
	Category        string  `yaml:"category"`
	Formula         string  `yaml:"formula"`
	Color           string  `yaml:"color"`
	MolecularWeight float64 `yaml:"molecular_weight"`
}

// SeedChemicals returns the builtin chemical library shipped with the
// server.
func SeedChemicals() ([]chemlab.ChemicalRecord, error) {
	var file seedFile
	if err := yaml.Unmarshal(seedYAML, &file); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	recs := make([]chemlab.ChemicalRecord, 0, len(file.Chemicals))
	for _, c := range file.Chemicals {
		cat, err := chemlab.ParseCategory(c.Category)
		if err != nil {
			return nil, fmt.Errorf("seed chemical %q: %w", c.Name, err)
		}
		recs = append(recs, chemlab.ChemicalRecord{
			Name:            c.Name,
			Category:        cat,
			Formula:         c.Formula,
			Color:           c.Color,
			MolecularWeight: c.MolecularWeight,
		})
	}
	return recs, nil
}

// Seed loads the builtin chemical library into the store, skipping
// chemicals that already exist. Returns the number of chemicals added.
func Seed(ctx context.Context, st Store) (int, error) {
	recs, err := SeedChemicals()
	if err != nil {
		return 0, err
	}
	added := 0
	for _, rec := range recs {
		if _, err := st.GetChemical(ctx, rec.Name); err == nil {
			continue
		}
		if err := st.AddChemical(ctx, rec); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
