package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/daniacca/chemlab/internal/chemlab"
)

var _ Store = (*PostgresStore)(nil)

const (
	pgDriver     = "pgx"
	defaultPgDSN = "postgres://localhost/chemlab?sslmode=disable"
)

// PostgresStore keeps the catalog in Postgres for shared deployments
// where several lab servers serve the same chemical library.
type PostgresStore struct {
	db *sql.DB
}

const pgSchema = `CREATE TABLE IF NOT EXISTS chemicals (
	name TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	category TEXT NOT NULL,
	formula TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	molecular_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
	iupac_name TEXT NOT NULL DEFAULT '',
	smiles TEXT NOT NULL DEFAULT '',
	cid INTEGER NOT NULL DEFAULT 0
)`

// NewPostgresStore opens a Postgres-backed store using the provided DSN
// (falls back to a local default) and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		dsn = defaultPgDSN
	}
	db, err := sql.Open(pgDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create chemicals table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// AddChemical inserts or updates a chemical keyed by normalized name.
func (s *PostgresStore) AddChemical(ctx context.Context, rec chemlab.ChemicalRecord) error {
	if rec.Name == "" {
		return errEmptyName
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chemicals(name, display_name, category, formula, color, molecular_weight, iupac_name, smiles, cid)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
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
func (s *PostgresStore) GetChemical(ctx context.Context, name string) (chemlab.ChemicalRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT display_name, category, formula, color, molecular_weight, iupac_name, smiles, cid
		 FROM chemicals WHERE name = $1`, chemlab.NormalizeName(name))
	return scanChemical(row)
}

// ListChemicals returns every chemical, ordered by name.
func (s *PostgresStore) ListChemicals(ctx context.Context) ([]chemlab.ChemicalRecord, error) {
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
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chemicals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chemicals: %w", err)
	}
	return n, nil
}

// Close closes the database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *PostgresStore) DB() *sql.DB { return s.db }
