package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/daniacca/chemlab/internal/chemlab"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps the catalog in a single SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const sqliteSchema = `CREATE TABLE IF NOT EXISTS chemicals (
	name TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	category TEXT NOT NULL,
	formula TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	molecular_weight REAL NOT NULL DEFAULT 0,
	iupac_name TEXT NOT NULL DEFAULT '',
	smiles TEXT NOT NULL DEFAULT '',
	cid INTEGER NOT NULL DEFAULT 0
)`

// NewSQLiteStore opens (creating if needed) the catalog database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "chemlab.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create chemicals table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// AddChemical inserts or updates a chemical keyed by normalized name.
func (s *SQLiteStore) AddChemical(ctx context.Context, rec chemlab.ChemicalRecord) error {
	if rec.Name == "" {
		return errEmptyName
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chemicals(name, display_name, category, formula, color, molecular_weight, iupac_name, smiles, cid)
		 VALUES(?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(name) DO UPDATE SET
		   display_name=excluded.display_name,
		   category=excluded.category,
		   formula=excluded.formula,
		   color=excluded.color,
		   molecular_weight=excluded.molecular_weight,
		   iupac_name=excluded.iupac_name,
		   smiles=excluded.smiles,
		   cid=excluded.cid`,
		chemlab.NormalizeName(rec.Name), rec.Name, string(rec.Category), rec.Formula,
		rec.Color, rec.MolecularWeight, rec.IUPACName, rec.SMILES, rec.CID)
	if err != nil {
		return fmt.Errorf("upsert chemical %q: %w", rec.Name, err)
	}
	return nil
}

// GetChemical looks up a chemical by name.
func (s *SQLiteStore) GetChemical(ctx context.Context, name string) (chemlab.ChemicalRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT display_name, category, formula, color, molecular_weight, iupac_name, smiles, cid
		 FROM chemicals WHERE name = ?`, chemlab.NormalizeName(name))
	return scanChemical(row)
}

// ListChemicals returns every chemical, ordered by name.
func (s *SQLiteStore) ListChemicals(ctx context.Context) ([]chemlab.ChemicalRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT display_name, category, formula, color, molecular_weight, iupac_name, smiles, cid
		 FROM chemicals ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select chemicals: %w", err)
	}
	defer rows.Close()
	return collectChemicals(rows)
}

// Count returns the number of stored chemicals.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chemicals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chemicals: %w", err)
	}
	return n, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChemical(row rowScanner) (chemlab.ChemicalRecord, error) {
	var rec chemlab.ChemicalRecord
	var category string
	err := row.Scan(&rec.Name, &category, &rec.Formula, &rec.Color,
		&rec.MolecularWeight, &rec.IUPACName, &rec.SMILES, &rec.CID)
	if errors.Is(err, sql.ErrNoRows) {
		return chemlab.ChemicalRecord{}, ErrNotFound
	}
	if err != nil {
		return chemlab.ChemicalRecord{}, fmt.Errorf("scan chemical: %w", err)
	}
	rec.Category = chemlab.Category(category)
	return rec, nil
}

func collectChemicals(rows *sql.Rows) ([]chemlab.ChemicalRecord, error) {
	var out []chemlab.ChemicalRecord
	for rows.Next() {
		rec, err := scanChemical(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chemicals: %w", err)
	}
	return out, nil
}
