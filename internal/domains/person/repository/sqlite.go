package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"people-service/internal/domains/person"
)

// sqliteRepository stores people as JSON text documents using SQLite's json1
// functions:
//
//	people(seq INTEGER PK AUTOINCREMENT, id TEXT UNIQUE, doc TEXT)
type sqliteRepository struct {
	db *sql.DB
}

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS people (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id  TEXT NOT NULL UNIQUE,
    doc TEXT NOT NULL CHECK (json_valid(doc))
);
CREATE INDEX IF NOT EXISTS people_name_idx ON people (json_extract(doc, '$.name'));
`

// NewSQLiteRepository creates the schema if needed and returns the store
func NewSQLiteRepository(ctx context.Context, db *sql.DB) (person.Repository, error) {
	if _, err := db.ExecContext(ctx, sqliteSchemaSQL); err != nil {
		return nil, fmt.Errorf("failed to ensure people schema: %w", err)
	}
	return &sqliteRepository{db: db}, nil
}

func (r *sqliteRepository) InsertOne(ctx context.Context, p *person.Person) (*person.Person, error) {
	prepared, err := prepareInsert(p)
	if err != nil {
		return nil, err
	}

	if err := insertSQLite(ctx, r.db, prepared); err != nil {
		return nil, err
	}
	return prepared, nil
}

func (r *sqliteRepository) InsertMany(ctx context.Context, people []*person.Person) ([]*person.Person, error) {
	prepared, err := prepareBatch(people)
	if err != nil {
		return nil, err
	}
	if len(prepared) == 0 {
		return []*person.Person{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	for _, p := range prepared {
		if err := insertSQLite(ctx, tx, p); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return prepared, nil
}

func (r *sqliteRepository) FindByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, doc FROM people WHERE id = ?`, id.String())
	return scanSQLitePerson(row, "find person by id")
}

func (r *sqliteRepository) FindOneByFood(ctx context.Context, food string) (*person.Person, error) {
	query := `
        SELECT p.id, p.doc
        FROM people p
        WHERE EXISTS (
            SELECT 1 FROM json_each(p.doc, '$.favoriteFoods') f
            WHERE f.type = 'text' AND f.value = ?
        )
        ORDER BY p.seq
        LIMIT 1
    `
	return scanSQLitePerson(r.db.QueryRowContext(ctx, query, food), "find person by food")
}

func (r *sqliteRepository) AppendFood(ctx context.Context, id uuid.UUID, food string) (*person.Person, error) {
	query := `
        UPDATE people
        SET doc = json_insert(doc, '$.favoriteFoods[#]', ?)
        WHERE id = ?
        RETURNING id, doc
    `
	return scanSQLitePerson(r.db.QueryRowContext(ctx, query, food, id.String()), "append favorite food")
}

func (r *sqliteRepository) UpdateAgeByName(ctx context.Context, name string, age int) (*person.Person, error) {
	query := `
        UPDATE people
        SET doc = json_set(doc, '$.age', ?)
        WHERE seq = (
            SELECT seq FROM people
            WHERE json_extract(doc, '$.name') = ?
            ORDER BY seq
            LIMIT 1
        )
        RETURNING id, doc
    `
	return scanSQLitePerson(r.db.QueryRowContext(ctx, query, age, name), "update age by name")
}

func (r *sqliteRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	row := r.db.QueryRowContext(ctx, `DELETE FROM people WHERE id = ? RETURNING id, doc`, id.String())
	return scanSQLitePerson(row, "delete person")
}

func (r *sqliteRepository) DeleteAllByName(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE json_extract(doc, '$.name') = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete people by name: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted people: %w", err)
	}
	return n, nil
}

func (r *sqliteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

// ========================================
// HELPERS
// ========================================

type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSQLite(ctx context.Context, db sqlExecer, p *person.Person) error {
	doc, err := encodeDocument(p)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `INSERT INTO people (id, doc) VALUES (?, ?)`, p.ID.String(), string(doc))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return person.NewValidationError(errDuplicateID(p.ID))
		}
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

func scanSQLitePerson(row *sql.Row, op string) (*person.Person, error) {
	var rawID, doc string
	if err := row.Scan(&rawID, &doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, person.ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored person id %q is malformed: %w", rawID, err)
	}
	return decodeDocument(id, []byte(doc))
}
