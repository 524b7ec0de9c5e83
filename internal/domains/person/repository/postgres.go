package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"people-service/internal/domains/person"
	"people-service/internal/infrastructure/database"
	pgtx "people-service/pkg/database"
)

// postgresRepository stores people as jsonb documents:
//
//	people(seq bigserial, id uuid PK, doc jsonb)
//
// seq gives the natural (insertion) order used by the "first match" lookups.
type postgresRepository struct {
	db   *database.PostgresDB
	pool *pgxpool.Pool
}

// schemaSQL is idempotent and runs once at startup
const schemaSQL = `
CREATE TABLE IF NOT EXISTS people (
    seq BIGSERIAL,
    id  UUID PRIMARY KEY,
    doc JSONB NOT NULL CHECK (doc ? 'name' AND jsonb_typeof(doc->'favoriteFoods') = 'array')
);
CREATE INDEX IF NOT EXISTS people_seq_idx ON people (seq);
CREATE INDEX IF NOT EXISTS people_name_idx ON people ((doc->>'name'));
CREATE INDEX IF NOT EXISTS people_foods_idx ON people USING GIN ((doc->'favoriteFoods'));
`

// NewPostgresRepository creates a new person repository on a connected PostgresDB
func NewPostgresRepository(db *database.PostgresDB) person.Repository {
	return &postgresRepository{
		db:   db,
		pool: db.Pool,
	}
}

// EnsureSchema creates the people table and its indexes when missing
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure people schema: %w", err)
	}
	return nil
}

func (r *postgresRepository) InsertOne(ctx context.Context, p *person.Person) (*person.Person, error) {
	prepared, err := prepareInsert(p)
	if err != nil {
		return nil, err
	}

	if err := insertPostgres(ctx, r.pool, prepared); err != nil {
		return nil, err
	}
	return prepared, nil
}

// InsertMany writes the batch inside one transaction, so a failure on any
// row leaves the collection untouched.
func (r *postgresRepository) InsertMany(ctx context.Context, people []*person.Person) ([]*person.Person, error) {
	prepared, err := prepareBatch(people)
	if err != nil {
		return nil, err
	}
	if len(prepared) == 0 {
		return []*person.Person{}, nil
	}

	return pgtx.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]*person.Person, error) {
		for _, p := range prepared {
			if err := insertPostgres(ctx, tx, p); err != nil {
				return nil, err
			}
		}
		return prepared, nil
	})
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	query := `SELECT id, doc FROM people WHERE id = $1`
	return scanPerson(r.pool.QueryRow(ctx, query, id), "find person by id")
}

func (r *postgresRepository) FindOneByFood(ctx context.Context, food string) (*person.Person, error) {
	query := `
        SELECT id, doc
        FROM people
        WHERE doc->'favoriteFoods' @> jsonb_build_array($1::text)
        ORDER BY seq
        LIMIT 1
    `
	return scanPerson(r.pool.QueryRow(ctx, query, food), "find person by food")
}

// AppendFood is a single UPDATE so concurrent appends on one id serialise
// on the row lock instead of overwriting each other.
func (r *postgresRepository) AppendFood(ctx context.Context, id uuid.UUID, food string) (*person.Person, error) {
	query := `
        UPDATE people
        SET doc = jsonb_set(doc, '{favoriteFoods}',
                  COALESCE(doc->'favoriteFoods', '[]'::jsonb) || jsonb_build_array($2::text))
        WHERE id = $1
        RETURNING id, doc
    `
	return scanPerson(r.pool.QueryRow(ctx, query, id, food), "append favorite food")
}

func (r *postgresRepository) UpdateAgeByName(ctx context.Context, name string, age int) (*person.Person, error) {
	query := `
        UPDATE people
        SET doc = jsonb_set(doc, '{age}', to_jsonb($2::int))
        WHERE id = (
            SELECT id FROM people
            WHERE doc->>'name' = $1
            ORDER BY seq
            LIMIT 1
            FOR UPDATE
        )
        RETURNING id, doc
    `
	return scanPerson(r.pool.QueryRow(ctx, query, name, age), "update age by name")
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	query := `DELETE FROM people WHERE id = $1 RETURNING id, doc`
	return scanPerson(r.pool.QueryRow(ctx, query, id), "delete person")
}

func (r *postgresRepository) DeleteAllByName(ctx context.Context, name string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM people WHERE doc->>'name' = $1`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete people by name: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

func (r *postgresRepository) Close() error {
	return r.db.Close()
}

// ========================================
// HELPERS
// ========================================

// execer is satisfied by *pgxpool.Pool and pgx.Tx
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertPostgres(ctx context.Context, db execer, p *person.Person) error {
	doc, err := encodeDocument(p)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `INSERT INTO people (id, doc) VALUES ($1, $2::jsonb)`, p.ID, string(doc))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return person.NewValidationError(errDuplicateID(p.ID))
			case "23514": // check_violation
				return person.NewValidationError(fmt.Errorf("document rejected by store: %s", pgErr.Message))
			}
		}
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

func scanPerson(row pgx.Row, op string) (*person.Person, error) {
	var (
		id  uuid.UUID
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, person.ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return decodeDocument(id, raw)
}
