// internal/course/course.go
//
// Immutable Course entity.
//
// Context
// -------
// A Course is a value object mirroring one row of the `courses` table.
// Mutations never happen in place; each With* transform returns a fresh
// copy with the target field changed and UpdatedAt stamped.  The
// repository persists the copy and reloads the row, so the entity never
// drifts from storage.
//
// The entity performs no validation.  Emptiness checks on title and
// description belong to the handlers that accept user input.
//
// Notes
// -----
// • Timestamps are stored as DATETIME strings (second precision), so the
//   factory truncates to the second up front.
// • Oxford commas, two spaces after periods.

package course

import (
	"database/sql"
	"time"
)

// TimeLayout is the DATETIME format used by the `courses` table.
const TimeLayout = "2006-01-02 15:04:05"

// Course is an immutable snapshot of one training course.  The zero ID
// marks an entity that has not been persisted yet.
type Course struct {
	id          int64
	title       string
	description string
	promoted    bool
	archived    bool
	createdAt   time.Time
	updatedAt   *time.Time
}

// New returns an unpersisted course: ID 0, CreatedAt now (UTC, second
// precision), UpdatedAt absent.  The database assigns the identity on
// first Save.
func New(title, description string, promoted bool) Course {
	return Course{
		title:       title,
		description: description,
		promoted:    promoted,
		createdAt:   time.Now().UTC().Truncate(time.Second),
	}
}

//
// read accessors
//

func (c Course) ID() int64            { return c.id }
func (c Course) Title() string        { return c.title }
func (c Course) Description() string  { return c.description }
func (c Course) Promoted() bool       { return c.promoted }
func (c Course) Archived() bool       { return c.archived }
func (c Course) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt is nil until the first mutation.
func (c Course) UpdatedAt() *time.Time { return c.updatedAt }

//
// copy-on-write transforms
//

// WithTitle returns a copy with a new title and a fresh UpdatedAt.
func (c Course) WithTitle(title string) Course {
	c.title = title
	c.touch()
	return c
}

// WithDescription returns a copy with a new description.
func (c Course) WithDescription(description string) Course {
	c.description = description
	c.touch()
	return c
}

// WithPromoted returns a copy with the homepage flag changed.
func (c Course) WithPromoted(promoted bool) Course {
	c.promoted = promoted
	c.touch()
	return c
}

// WithArchived returns a copy with the soft-delete flag changed.  There
// is no route that flips it back; archive is terminal.
func (c Course) WithArchived(archived bool) Course {
	c.archived = archived
	c.touch()
	return c
}

// touch stamps UpdatedAt on the receiver copy held by a With* method.
func (c *Course) touch() {
	now := time.Now().UTC().Truncate(time.Second)
	c.updatedAt = &now
}

//
// row mapping
//

// row mirrors the `courses` table for sqlx scanning.  DATETIME columns
// travel as strings so the round trip is lossless to the second.
type row struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	IsPromoted  bool           `db:"is_promoted"`
	IsArchived  bool           `db:"is_archived"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   sql.NullString `db:"updated_at"`
}

// fromRow reconstructs the entity from a scanned row.
func fromRow(r row) (Course, error) {
	created, err := time.Parse(TimeLayout, r.CreatedAt)
	if err != nil {
		return Course{}, err
	}

	c := Course{
		id:          r.ID,
		title:       r.Title,
		description: r.Description,
		promoted:    r.IsPromoted,
		archived:    r.IsArchived,
		createdAt:   created,
	}
	if r.UpdatedAt.Valid {
		updated, err := time.Parse(TimeLayout, r.UpdatedAt.String)
		if err != nil {
			return Course{}, err
		}
		c.updatedAt = &updated
	}
	return c, nil
}

// toRow flattens the entity for storage.  An absent UpdatedAt becomes an
// explicit SQL NULL.
func toRow(c Course) row {
	r := row{
		ID:          c.id,
		Title:       c.title,
		Description: c.description,
		IsPromoted:  c.promoted,
		IsArchived:  c.archived,
		CreatedAt:   c.createdAt.Format(TimeLayout),
	}
	if c.updatedAt != nil {
		r.UpdatedAt = sql.NullString{String: c.updatedAt.Format(TimeLayout), Valid: true}
	}
	return r
}
