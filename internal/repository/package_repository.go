package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/farwill/travel-booking/internal/model"
)

// PackageRepo provides CRUD operations for the travel-package catalog.
// Durations are stored as a JSON column because they are always read and
// written as one unit; no query ever filters on an individual room option.
type PackageRepo struct{ DB *sql.DB }

func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{DB: db} }

// Create inserts a package and returns its ID.
func (r *PackageRepo) Create(ctx context.Context, category string, durations []model.PackageDuration) (uint64, error) {
	raw, err := json.Marshal(durations)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO packages (category, durations) VALUES (?,?)", category, raw)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single package.
func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (model.TravelPackage, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, category, durations, created_at, updated_at FROM packages WHERE id=? LIMIT 1", id)
	p, err := scanPackage(row)
	if err == sql.ErrNoRows {
		return model.TravelPackage{}, ErrNotFound
	}
	return p, err
}

// ListAll returns the whole catalog, newest first.
func (r *PackageRepo) ListAll(ctx context.Context) ([]model.TravelPackage, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, category, durations, created_at, updated_at FROM packages ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := []model.TravelPackage{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

// Update replaces category and durations of an existing package.
func (r *PackageRepo) Update(ctx context.Context, id uint64, category string, durations []model.PackageDuration) error {
	raw, err := json.Marshal(durations)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE packages SET category=?, durations=? WHERE id=?", category, raw, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish "missing" from "unchanged"
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM packages WHERE id=? LIMIT 1", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a package by id.
func (r *PackageRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM packages WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPackage(row rowScanner) (model.TravelPackage, error) {
	var (
		p   model.TravelPackage
		raw []byte
	)
	if err := row.Scan(&p.ID, &p.Category, &raw, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.TravelPackage{}, err
	}
	if err := json.Unmarshal(raw, &p.Durations); err != nil {
		return model.TravelPackage{}, err
	}
	return p, nil
}
