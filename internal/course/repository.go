// internal/course/repository.go
//
// CRUD queries for the `courses` table.
//
// Context
// -------
// One repository, one table, five query shapes.  Archived rows are
// invisible to every read path; the only write paths are the Save upsert
// and the terminal Archive update.  Both write paths read the row back
// from storage instead of trusting the in-memory entity, so the caller
// always sees what the database holds.
//
// Storage errors (connection loss, the unique-title index firing) are
// returned untouched.  Handlers log them and answer 500; there is no
// retry layer here.
//
// Notes
// -----
// • All methods take a context so lookups respect request deadlines.
// • Oxford commas, two spaces after periods.

package course

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository executes parameterised queries against `courses` and maps
// rows to Course entities.  Safe for concurrent use; sqlx pools under
// the hood.
type Repository struct {
	db *sqlx.DB
}

// NewRepository binds the repository to a connection pool.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const selectCols = `id, title, description, is_promoted, is_archived, created_at, updated_at`

// FindByID fetches one non-archived course.  A missing or archived row
// returns (nil, nil); the caller decides how "absent" is presented.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Course, error) {
	const q = `
        SELECT ` + selectCols + `
        FROM   courses
        WHERE  id = ? AND is_archived = 0`

	var rec row
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	c, err := fromRow(rec)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAll returns every non-archived course ordered by title.
func (r *Repository) FindAll(ctx context.Context) ([]Course, error) {
	const q = `
        SELECT ` + selectCols + `
        FROM   courses
        WHERE  is_archived = 0
        ORDER  BY title ASC`

	return r.selectCourses(ctx, q)
}

// FindPromoted returns the non-archived courses flagged for the
// homepage, ordered by title.
func (r *Repository) FindPromoted(ctx context.Context) ([]Course, error) {
	const q = `
        SELECT ` + selectCols + `
        FROM   courses
        WHERE  is_promoted = 1 AND is_archived = 0
        ORDER  BY title ASC`

	return r.selectCourses(ctx, q)
}

// FindBySearchTerm matches term as a case-insensitive substring of
// title or description.  An empty term matches every row; handlers
// skip the call when the query string is empty.
func (r *Repository) FindBySearchTerm(ctx context.Context, term string) ([]Course, error) {
	const q = `
        SELECT ` + selectCols + `
        FROM   courses
        WHERE  (title LIKE ? OR description LIKE ?) AND is_archived = 0
        ORDER  BY title ASC`

	pattern := "%" + term + "%"
	return r.selectCourses(ctx, q, pattern, pattern)
}

// Save inserts when the entity's ID is the zero sentinel, otherwise
// updates every mutable column by identity.  Both branches reload the
// row through FindByID, so the returned entity carries the identity the
// database assigned and reflects any concurrent external change.
func (r *Repository) Save(ctx context.Context, c Course) (*Course, error) {
	rec := toRow(c)

	if rec.ID == 0 {
		const q = `
            INSERT INTO courses
                   (title, description, is_promoted, is_archived, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?)`

		res, err := r.db.ExecContext(ctx, q,
			rec.Title, rec.Description, rec.IsPromoted, rec.IsArchived,
			rec.CreatedAt, rec.UpdatedAt)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		return r.FindByID(ctx, id)
	}

	const q = `
        UPDATE courses
        SET    title = ?, description = ?, is_promoted = ?, is_archived = ?,
               created_at = ?, updated_at = ?
        WHERE  id = ?`

	if _, err := r.db.ExecContext(ctx, q,
		rec.Title, rec.Description, rec.IsPromoted, rec.IsArchived,
		rec.CreatedAt, rec.UpdatedAt, rec.ID); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, rec.ID)
}

// Archive soft-deletes unconditionally and reports whether a row
// matched.  updated_at moves on every call, so re-archiving an already
// archived course still counts as an affected row.
func (r *Repository) Archive(ctx context.Context, id int64) (bool, error) {
	const q = `
        UPDATE courses
        SET    is_archived = 1, updated_at = NOW()
        WHERE  id = ?`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// selectCourses runs a multi-row query and maps every row.
func (r *Repository) selectCourses(ctx context.Context, q string, args ...any) ([]Course, error) {
	var recs []row
	if err := r.db.SelectContext(ctx, &recs, q, args...); err != nil {
		return nil, err
	}

	courses := make([]Course, 0, len(recs))
	for _, rec := range recs {
		c, err := fromRow(rec)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}
