package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cuidarmais/registry/internal/common"
	"github.com/cuidarmais/registry/internal/dbx"
	"github.com/cuidarmais/registry/internal/server/models"
)

const userColumns = `id, role, email, password_hash, national_id, phone, state, city, created_at`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return getBy(ctx, r.db, "id", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return getBy(ctx, r.db, "email", email)
}

func (r *PostgresRepository) GetByNationalID(ctx context.Context, nationalID string) (*models.User, error) {
	return getBy(ctx, r.db, "national_id", nationalID)
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (role, email, password_hash, national_id, phone, state, city)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Role, user.Email, user.PasswordHash,
		user.NationalID, user.Phone, user.State, user.City).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		// Unique indexes on email and national_id backstop the service's
		// pre-insert checks against concurrent creates.
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// Update overwrites exactly the columns present in the patch and re-reads
// the row, all inside one transaction. An empty patch is a legal no-op that
// still returns the current record.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch *models.UserPatch) (*models.User, error) {

	var updated *models.User

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		if !patch.Empty() {
			set := make([]string, 0, 7)
			args := make([]any, 0, 8)

			add := func(column string, value *string) {
				if value == nil {
					return
				}
				args = append(args, *value)
				set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
			}

			add("role", patch.Role)
			add("email", patch.Email)
			add("password_hash", patch.PasswordHash)
			add("national_id", patch.NationalID)
			add("phone", patch.Phone)
			add("state", patch.State)
			add("city", patch.City)

			args = append(args, id)
			query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))

			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				if isUniqueViolation(err) {
					return common.ErrorConflict
				}
				return fmt.Errorf("db error: %w", err)
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			if affected == 0 {
				return common.ErrorNotFound
			}
		}

		user, err := getBy(ctx, tx, "id", id)
		if err != nil {
			return err
		}
		updated = user
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {

	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func getBy(ctx context.Context, db dbx.DBTX, column string, value any) (*models.User, error) {

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := scanUser(db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// row is satisfied by both *sql.Row and *sql.Rows.
type row interface {
	Scan(dest ...any) error
}

func scanUser(r row) (*models.User, error) {
	user := &models.User{}
	var nationalID, phone, state, city sql.NullString

	err := r.Scan(&user.ID, &user.Role, &user.Email, &user.PasswordHash,
		&nationalID, &phone, &state, &city, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	user.NationalID = fromNull(nationalID)
	user.Phone = fromNull(phone)
	user.State = fromNull(state)
	user.City = fromNull(city)

	return user, nil
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
