package auth

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// users is the bun backed UserStore
type users struct {
	db *bun.DB
}

var _ UserStore = (*users)(nil)

// NewUsersRepository will create a UserStore backed by the given bun DB
func NewUsersRepository(db *bun.DB) UserStore {
	return &users{db: db}
}

// EnsureUsersSchema creates the users table if it does not exist,
// including the unique index on email the registration flow depends on.
func EnsureUsersSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create users table")
	}
	return nil
}

func (a *users) FindByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("lower(?TableAlias.email) = lower(?)", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, newUserNotFound("email", email)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by email")
	}

	return record, nil
}

func (a *users) FindByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, newUserNotFound("id", id)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by id")
	}

	return record, nil
}

func (a *users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := a.db.NewSelect().
		Model((*User)(nil)).
		Where("lower(?TableAlias.email) = lower(?)", email).
		Exists(ctx)

	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email existence")
	}

	return exists, nil
}

// Create inserts a new user. A unique index violation on email maps to
// EMAIL_TAKEN so a lost check-then-insert race still reports the same
// rejection as the pre-check.
func (a *users) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	now := time.Now()
	record := &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := a.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if IsUniqueViolationError(err) {
			return nil, goerrors.Wrap(err, ErrEmailTaken.Category, ErrEmailTaken.Message).
				WithTextCode(ErrEmailTaken.TextCode)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
	}

	return record, nil
}

func newUserNotFound(column string, value any) error {
	return goerrors.New("user not found", goerrors.CategoryNotFound).
		WithTextCode("USER_NOT_FOUND").
		WithMetadata(map[string]any{column: value})
}
