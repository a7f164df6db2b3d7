// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for CRUD and filtered lookup of
// scholarships. A Scholarship represents one offering that students can be
// matched against; the matching filter mirrors the attributes students
// select on the search form (country, major, degrees, funding type).
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"
	"fmt"
	"strings"

	"github.com/farhanrds/scholarship-finder/internal/model"
)

// ScholarshipRepo encapsulates all database queries related to scholarships.
// It depends on a sql.DB connection which should be configured elsewhere.
type ScholarshipRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewScholarshipRepo constructs a ScholarshipRepo with the provided DB handle.
// This function allows dependency injection of the database in tests and at
// startup.  There is no initialization logic beyond assigning the field.
func NewScholarshipRepo(db *sql.DB) *ScholarshipRepo {
	return &ScholarshipRepo{db: db}
}

const scholarshipColumns = "id, name, university, description, country, city, major, email, degrees, funding_type, open_date, close_date, created_at, updated_at"

func scanScholarship(row interface{ Scan(...any) error }, s *model.Scholarship) error {
	return row.Scan(&s.ID, &s.Name, &s.University, &s.Description, &s.Country, &s.City,
		&s.Major, &s.Email, &s.Degrees, &s.FundingType, &s.OpenDate, &s.CloseDate,
		&s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new scholarship into the database.  On success the
// scholarship's ID field is populated with the auto‑generated value and a
// follow‑up SELECT fills in the timestamp columns so callers receive a
// fully populated record.
func (r *ScholarshipRepo) Create(ctx context.Context, s *model.Scholarship) error {
	const qInsert = `INSERT INTO scholarships
		(name, university, description, country, city, major, email, degrees, funding_type, open_date, close_date)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		s.Name, s.University, s.Description, s.Country, s.City, s.Major,
		s.Email, s.Degrees, s.FundingType, s.OpenDate, s.CloseDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const qSelect = "SELECT " + scholarshipColumns + " FROM scholarships WHERE id = ?"
	return scanScholarship(r.db.QueryRowContext(ctx, qSelect, s.ID), s)
}

// GetByID fetches a single scholarship.  ErrScholarshipNotFound is returned
// when no row matches.
func (r *ScholarshipRepo) GetByID(ctx context.Context, id uint64) (model.Scholarship, error) {
	const q = "SELECT " + scholarshipColumns + " FROM scholarships WHERE id = ? LIMIT 1"
	var s model.Scholarship
	err := scanScholarship(r.db.QueryRowContext(ctx, q, id), &s)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Scholarship{}, ErrScholarshipNotFound
	}
	return s, err
}

// GetAll returns every scholarship ordered by id.
func (r *ScholarshipRepo) GetAll(ctx context.Context) ([]model.Scholarship, error) {
	const q = "SELECT " + scholarshipColumns + " FROM scholarships ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Scholarship{}
	for rows.Next() {
		var s model.Scholarship
		if err := scanScholarship(rows, &s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// Filter returns scholarships matching the non-empty criteria.  Degrees is
// matched with LIKE because the column stores a comma separated list.
func (r *ScholarshipRepo) Filter(ctx context.Context, f model.ScholarshipFilter) ([]model.Scholarship, error) {
	q := "SELECT " + scholarshipColumns + " FROM scholarships WHERE 1=1"
	args := []any{}
	if f.Country != "" {
		q += " AND country = ?"
		args = append(args, f.Country)
	}
	if f.Major != "" {
		q += " AND major = ?"
		args = append(args, f.Major)
	}
	if f.Degrees != "" {
		q += " AND degrees LIKE ?"
		args = append(args, "%"+f.Degrees+"%")
	}
	if f.FundingType != "" {
		q += " AND funding_type = ?"
		args = append(args, f.FundingType)
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Scholarship{}
	for rows.Next() {
		var s model.Scholarship
		if err := scanScholarship(rows, &s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// Update applies a partial merge: only the fields present in the patch map
// are written, everything else keeps its stored value.  The column list is
// whitelisted so request bodies cannot touch arbitrary columns.  Returns
// ErrScholarshipNotFound when the id does not exist.
func (r *ScholarshipRepo) Update(ctx context.Context, id uint64, patch map[string]any) (model.Scholarship, error) {
	allowed := map[string]bool{
		"name": true, "university": true, "description": true, "country": true,
		"city": true, "major": true, "email": true, "degrees": true,
		"funding_type": true, "open_date": true, "close_date": true,
	}
	sets := []string{}
	args := []any{}
	for col, val := range patch {
		if allowed[col] {
			sets = append(sets, fmt.Sprintf("%s = ?", col))
			args = append(args, val)
		}
	}
	if len(sets) > 0 {
		args = append(args, id)
		q := "UPDATE scholarships SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return model.Scholarship{}, err
		}
	}
	// MySQL reports zero affected rows both for a missing id and for a
	// no-op write, so existence is checked by the read-back instead.
	return r.GetByID(ctx, id)
}

// Delete removes a scholarship by id.  ErrScholarshipNotFound is returned
// when no row was deleted.
func (r *ScholarshipRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM scholarships WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrScholarshipNotFound
	}
	return nil
}
