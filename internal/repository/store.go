package repository

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go-tms-api/internal/model"
)

// Table describes how an entity maps onto a table without reflection.
type Table[E model.Keyed[K], K model.ID] struct {
	Name string
	// Columns lists the non-key columns in the order Args and Dest use.
	Columns []string
	// Args returns the values for Columns.
	Args func(e E) []any
	// Dest returns scan targets for the key column followed by Columns.
	Dest func(e *E) []any
	// CreateOnly lists server-stamped columns that Update leaves untouched.
	CreateOnly []string
	// Relations maps a relation name onto a foreign-key column usable by ListBy.
	Relations map[string]string
}

// Store is a generic repository over one Table.
type Store[E model.Keyed[K], K model.ID] struct {
	db    Querier
	table Table[E, K]
}

func NewStore[E model.Keyed[K], K model.ID](db Querier, table Table[E, K]) *Store[E, K] {
	return &Store[E, K]{db: db, table: table}
}

func (s *Store[E, K]) selectList() string {
	return "id, " + strings.Join(s.table.Columns, ", ")
}

func (s *Store[E, K]) FindByID(ctx context.Context, id K) (E, error) {
	var e E
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, s.selectList(), s.table.Name)
	if err := s.db.QueryRow(ctx, query, id).Scan(s.table.Dest(&e)...); err != nil {
		var zero E
		return zero, translateError("find "+s.table.Name, err)
	}

	return e, nil
}

// Insert stores e and returns the stored row. A zero key lets the database
// assign one; a key collision surfaces as a *model.ConflictError.
func (s *Store[E, K]) Insert(ctx context.Context, e E) (E, error) {
	columns := s.table.Columns
	args := s.table.Args(e)
	explicit := e.GetID() != 0
	if explicit {
		columns = append([]string{"id"}, columns...)
		args = append([]any{e.GetID()}, args...)
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		s.table.Name, strings.Join(columns, ", "), strings.Join(placeholders, ", "), s.selectList())

	if explicit {
		// The identity sequence does not see explicit keys; move it past
		// this one in the same statement so later assigned keys cannot collide.
		args = append(args, int64(e.GetID()))
		query = fmt.Sprintf(`WITH inserted AS (%s), bumped AS (
	SELECT setval(pg_get_serial_sequence('%[2]s', 'id')::regclass, GREATEST(
		pg_sequence_last_value(pg_get_serial_sequence('%[2]s', 'id')::regclass),
		(SELECT max(id) FROM %[2]s),
		$%[3]d::bigint))
)
SELECT %[4]s FROM inserted, bumped`, query, s.table.Name, len(args), s.selectList())
	}

	var stored E
	if err := s.db.QueryRow(ctx, query, args...).Scan(s.table.Dest(&stored)...); err != nil {
		var zero E
		return zero, translateError("insert "+s.table.Name, err)
	}

	return stored, nil
}

// Update overwrites every column of the row keyed by e except the
// table's CreateOnly columns.
func (s *Store[E, K]) Update(ctx context.Context, e E) error {
	values := s.table.Args(e)
	assignments := make([]string, 0, len(s.table.Columns))
	args := []any{e.GetID()}
	for i, column := range s.table.Columns {
		if slices.Contains(s.table.CreateOnly, column) {
			continue
		}
		args = append(args, values[i])
		assignments = append(assignments, column+" = $"+strconv.Itoa(len(args)))
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1`, s.table.Name, strings.Join(assignments, ", "))

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return translateError("update "+s.table.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (s *Store[E, K]) Delete(ctx context.Context, id K) error {
	tag, err := s.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table.Name), id)
	if err != nil {
		return translateError("delete "+s.table.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// ListBy returns the rows whose relation column equals value, ordered by key.
func (s *Store[E, K]) ListBy(ctx context.Context, relation string, value int64) ([]E, error) {
	column, ok := s.table.Relations[relation]
	if !ok {
		return nil, fmt.Errorf("list %s by %q: %w", s.table.Name, relation, model.ErrInvalidInput)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY id`, s.selectList(), s.table.Name, column)
	rows, err := s.db.Query(ctx, query, value)
	if err != nil {
		return nil, translateError("list "+s.table.Name, err)
	}
	defer rows.Close()

	items := make([]E, 0)
	for rows.Next() {
		var e E
		if err := rows.Scan(s.table.Dest(&e)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table.Name, err)
		}
		items = append(items, e)
	}

	return items, rows.Err()
}
