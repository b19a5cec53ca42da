package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"nachapa-api/internal/domain"
)

// Errores de unicidad detectados por los constraints de la tabla users.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateCpf   = errors.New("cpf already registered")
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetActiveByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByCpf(ctx context.Context, cpf string) (domain.User, error)
	ExistsByEmailExcludingID(ctx context.Context, email, id string) (bool, error)
	Update(ctx context.Context, user domain.User) error
	Deactivate(ctx context.Context, user domain.User) error
	List(ctx context.Context, page, size int, orderColumn string, descending bool) ([]domain.User, int64, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = "id, role, name, email, password, cpf, cell_phone, birth_date, is_active, created_at, updated_at"

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Role,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Cpf,
		user.CellPhone,
		user.BirthDate,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return mapConstraintError(err)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PgUserRepository) GetActiveByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND is_active`, id)
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PgUserRepository) GetByCpf(ctx context.Context, cpf string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE cpf = $1`, cpf)
}

func (r *PgUserRepository) ExistsByEmailExcludingID(ctx context.Context, email, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email, id).Scan(&exists)
	return exists, err
}

func (r *PgUserRepository) Update(ctx context.Context, user domain.User) error {
	const query = `
		UPDATE users
		SET name = $2, email = $3, password = $4, cell_phone = $5,
		    birth_date = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CellPhone,
		user.BirthDate,
		user.UpdatedAt,
	)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgUserRepository) Deactivate(ctx context.Context, user domain.User) error {
	const query = `UPDATE users SET is_active = FALSE, updated_at = $2 WHERE id = $1 AND is_active`
	tag, err := r.pool.Exec(ctx, query, user.ID, user.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List devuelve la página pedida junto al total de registros. La columna
// de orden llega ya validada contra la lista blanca del servicio.
func (r *PgUserRepository) List(ctx context.Context, page, size int, orderColumn string, descending bool) ([]domain.User, int64, error) {
	direction := " ASC"
	if descending {
		direction = " DESC"
	}

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "role", "name", "email", "password", "cpf", "cell_phone", "birth_date", "is_active", "created_at", "updated_at").
		From("users").
		OrderBy(orderColumn + direction).
		Limit(uint64(size)).
		Offset(uint64(page) * uint64(size))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *PgUserRepository) getOne(ctx context.Context, query string, arg any) (domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	return scanUser(row)
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Role,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Cpf,
		&u.CellPhone,
		&u.BirthDate,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// mapConstraintError traduce violaciones de unicidad del driver a los
// errores de dominio; el constraint de la base es la guarda definitiva
// frente al chequeo previo del servicio.
func mapConstraintError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return ErrDuplicateEmail
		case "users_cpf_key":
			return ErrDuplicateCpf
		}
	}
	return err
}
