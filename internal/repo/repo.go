// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the generic repository: a single set of
// type-parameterized CRUD functions reused by every entity instead of one
// hand-written DAO per model.
//
// All functions are context-aware and accept an explicit *gorm.DB handle,
// making them safe for use within transactions or connection-scoped
// operations. The repository never owns a connection: the caller supplies the
// unit of work, which lets an authorization check and a mutation share one
// transaction. They follow the "thin repository" approach: no business logic,
// only CRUD persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - FindOne returns ErrAmbiguous when a uniqueness-assuming lookup matches
//     more than one row; it never silently picks one.
//   - Unique-constraint violations at write time map to ErrDuplicate; other
//     DB errors are propagated raw after GORM rolls the statement back.
//   - Filter columns, order columns, and fetch-plan names are validated
//     against the entity's descriptor (Columns / Relationships) and yield
//     ErrUnknownColumn / ErrUnknownRelationship when invalid.
//
// Usage:
//
//	tweet, err := repo.FindByID[domain.Tweet](ctx, db, id, "Author", "Likes")
//	if errors.Is(err, repo.ErrNotFound) {
//	    // handle missing
//	}
//
// This repository is designed to be wrapped by a higher-level service (see
// services.TweetService and friends) which enforces ownership rules and
// domain-level duplicate semantics.
package repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrAmbiguous is returned by FindOne when more than one row matches a
// lookup that the caller assumed to be unique.
var ErrAmbiguous = errors.New("ambiguous result: more than one row matched")

// ErrDuplicate indicates a unique-constraint violation at write time.
var ErrDuplicate = errors.New("duplicate")

// ErrUnknownRelationship is returned when a fetch plan or join names a
// relationship the entity descriptor does not declare.
var ErrUnknownRelationship = errors.New("unknown relationship in fetch plan")

// ErrUnknownColumn is returned when a filter, ordering, or update references
// a column the entity descriptor does not declare.
var ErrUnknownColumn = errors.New("unknown column")

// Entity is the descriptor contract every persisted model satisfies. The
// repository uses it to validate query inputs before they reach SQL.
type Entity interface {
	TableName() string
	Columns() []string
	Relationships() []string
}

// Filter is a conjunction of exact-match predicates keyed by column name.
// A slice value is translated into an IN predicate, a scalar into equality.
type Filter map[string]any

// queryOpts collects the optional clauses for FindAll.
type queryOpts struct {
	order   []string
	preload []string
	joins   []string
	limit   int
	offset  int
}

// QueryOption customizes a FindAll query.
type QueryOption func(*queryOpts)

// WithOrder appends ascending order-by columns, applied in argument order.
func WithOrder(columns ...string) QueryOption {
	return func(o *queryOpts) { o.order = append(o.order, columns...) }
}

// WithPreload appends fetch-plan entries: named relationships loaded in the
// same call (separate SELECT ... IN round trips), so results are complete
// before the session goes away.
func WithPreload(relationships ...string) QueryOption {
	return func(o *queryOpts) { o.preload = append(o.preload, relationships...) }
}

// WithJoin appends association joins. Joins are always LEFT OUTER so a
// missing related row never eliminates the primary row. Only single-row
// associations are joinable; collection relationships fan the primary row out
// per related row and must be loaded through WithPreload instead, so naming
// one here fails with ErrUnknownRelationship.
func WithJoin(relationships ...string) QueryOption {
	return func(o *queryOpts) { o.joins = append(o.joins, relationships...) }
}

// WithLimit caps the number of returned rows. Zero or negative means no cap.
func WithLimit(n int) QueryOption {
	return func(o *queryOpts) { o.limit = n }
}

// WithOffset skips the first n rows.
func WithOffset(n int) QueryOption {
	return func(o *queryOpts) { o.offset = n }
}

// FindByID fetches a single entity by primary key. Optional plan entries name
// relationships to eager-load alongside the row. Returns ErrNotFound when no
// row matches.
func FindByID[T Entity](ctx context.Context, db *gorm.DB, id uint, plan ...string) (*T, error) {
	if err := validatePlan[T](plan); err != nil {
		return nil, err
	}
	q := db.WithContext(ctx)
	for _, rel := range plan {
		q = q.Preload(rel)
	}
	var out T
	if err := q.First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// FindOne fetches the single entity matching filter, eager-loading the given
// plan. It returns ErrNotFound for zero matches and ErrAmbiguous when the
// filter matches more than one row; uniqueness is a caller contract that
// must not be silently resolved by picking an arbitrary row.
func FindOne[T Entity](ctx context.Context, db *gorm.DB, filter Filter, plan ...string) (*T, error) {
	if err := validateFilter[T](filter); err != nil {
		return nil, err
	}
	if err := validatePlan[T](plan); err != nil {
		return nil, err
	}
	q := db.WithContext(ctx)
	for _, rel := range plan {
		q = q.Preload(rel)
	}
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}

	var rows []T
	if err := q.Limit(2).Find(&rows).Error; err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &rows[0], nil
	default:
		return nil, ErrAmbiguous
	}
}

// FindAll returns every entity matching filter, fully materialized. Slice
// filter values become IN predicates. Options add ascending ordering, fetch
// plans, LEFT joins, and limit/offset windows. An empty filter selects all
// rows; the result is an empty slice (never nil error) when nothing matches.
func FindAll[T Entity](ctx context.Context, db *gorm.DB, filter Filter, opts ...QueryOption) ([]T, error) {
	if err := validateFilter[T](filter); err != nil {
		return nil, err
	}
	var o queryOpts
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateColumns[T](o.order); err != nil {
		return nil, err
	}
	if err := validatePlan[T](o.preload); err != nil {
		return nil, err
	}
	if err := validateJoins[T](o.joins); err != nil {
		return nil, err
	}

	q := db.WithContext(ctx)
	for _, rel := range o.preload {
		q = q.Preload(rel)
	}
	for _, rel := range o.joins {
		// gorm's association join on a name is a LEFT JOIN for single
		// associations, which is what we want: missing related rows must
		// not drop the primary row.
		q = q.Joins(rel)
	}
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	for _, col := range o.order {
		q = q.Order(col + " asc")
	}
	if o.limit > 0 {
		q = q.Limit(o.limit)
	}
	if o.offset > 0 {
		q = q.Offset(o.offset)
	}

	out := []T{}
	err := q.Find(&out).Error
	return out, err
}

// Count returns the number of rows matching filter.
func Count[T Entity](ctx context.Context, db *gorm.DB, filter Filter) (int64, error) {
	if err := validateFilter[T](filter); err != nil {
		return 0, err
	}
	var zero T
	q := db.WithContext(ctx).Model(&zero)
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// Insert persists a new entity and returns it with the generated primary key
// populated. GORM wraps the statement in a transaction, so a constraint
// violation leaves no partial state; unique violations map to ErrDuplicate.
func Insert[T Entity](ctx context.Context, db *gorm.DB, entity *T) (*T, error) {
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return entity, nil
}

// Update applies a partial update to entity by primary key. Column names in
// values are validated against the descriptor. Returns ErrNotFound when no
// row was affected and ErrDuplicate on a unique violation. Callers must not
// assume in-memory fields beyond the updated ones reflect the row; re-fetch
// when in doubt.
func Update[T Entity](ctx context.Context, db *gorm.DB, entity *T, values map[string]any) error {
	cols := make([]string, 0, len(values))
	for k := range values {
		cols = append(cols, k)
	}
	if err := validateColumns[T](cols); err != nil {
		return err
	}
	res := db.WithContext(ctx).Model(entity).Updates(values)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes entity by primary key. Deleting a row that is already gone
// returns ErrNotFound rather than silent success, so a masked prior failure
// cannot look like a fresh deletion.
func Delete[T Entity](ctx context.Context, db *gorm.DB, entity *T) error {
	res := db.WithContext(ctx).Delete(entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// validatePlan checks each fetch-plan entry against the entity descriptor.
func validatePlan[T Entity](plan []string) error {
	if len(plan) == 0 {
		return nil
	}
	var zero T
	allowed := zero.Relationships()
	for _, p := range plan {
		found := false
		for _, a := range allowed {
			if p == a {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q on %s", ErrUnknownRelationship, p, zero.TableName())
		}
	}
	return nil
}

// validateJoins checks join entries against the descriptor and additionally
// rejects collection associations: GORM scans an association join into a
// single struct field, which cannot hold a slice, and nested plan entries
// have no field at all.
func validateJoins[T Entity](joins []string) error {
	if err := validatePlan[T](joins); err != nil {
		return err
	}
	var zero T
	rt := reflect.TypeOf(zero)
	for _, rel := range joins {
		f, ok := rt.FieldByName(rel)
		if !ok || f.Type.Kind() == reflect.Slice {
			return fmt.Errorf("%w: %q is not joinable on %s", ErrUnknownRelationship, rel, zero.TableName())
		}
	}
	return nil
}

// validateFilter checks every filter key against the descriptor's columns.
func validateFilter[T Entity](filter Filter) error {
	if len(filter) == 0 {
		return nil
	}
	cols := make([]string, 0, len(filter))
	for k := range filter {
		cols = append(cols, k)
	}
	return validateColumns[T](cols)
}

// validateColumns checks column names against the descriptor.
func validateColumns[T Entity](cols []string) error {
	if len(cols) == 0 {
		return nil
	}
	var zero T
	allowed := zero.Columns()
	for _, c := range cols {
		found := false
		for _, a := range allowed {
			if c == a {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q on %s", ErrUnknownColumn, c, zero.TableName())
		}
	}
	return nil
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed: unique") ||
		strings.Contains(msg, "duplicate key")
}
