package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/iterhub/eduhub/core"
	"github.com/iterhub/eduhub/core/user"
)

// newest accounts first
var defaultUserOrdering = core.DBOrdering{Field: "created_at"}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

type userRow struct {
	ID           string         `db:"id"`
	Name         null.String    `db:"name"`
	Username     null.String    `db:"username"`
	Email        null.String    `db:"email"`
	RegNo        null.String    `db:"reg_no"`
	Program      null.String    `db:"program"`
	IsActive     null.Bool      `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	PasswordHash null.Bytes     `db:"password_hash"`
	CreatedAt    null.Time      `db:"created_at"`
	UpdatedAt    null.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func (repo userRepository) toRow(usr user.User) userRow {
	return userRow{
		ID:           usr.ID,
		Name:         null.NewString(usr.Name, usr.Name != ""),
		Username:     null.NewString(usr.Username, usr.Username != ""),
		Email:        null.NewString(usr.Email, usr.Email != ""),
		RegNo:        null.NewString(usr.RegNo, usr.RegNo != ""),
		Program:      null.NewString(usr.Program, usr.Program != ""),
		IsActive:     null.BoolFromPtr(usr.IsActive),
		Roles:        usr.Roles,
		PasswordHash: null.BytesFrom(usr.PasswordHash),
		CreatedAt:    null.NewTime(usr.CreatedAt.UTC(), !usr.CreatedAt.IsZero()),
		UpdatedAt:    null.NewTime(usr.UpdatedAt.UTC(), !usr.UpdatedAt.IsZero()),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (repo userRepository) fromRow(row userRow) user.User {
	return user.User{
		ID:           row.ID,
		Name:         row.Name.String,
		Username:     row.Username.String,
		Email:        row.Email.String,
		RegNo:        row.RegNo.String,
		Program:      row.Program.String,
		IsActive:     row.IsActive.Ptr(),
		Roles:        row.Roles,
		PasswordHash: row.PasswordHash.Bytes,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
		LastLogin:    row.LastLogin.Time,
	}
}

func (repo userRepository) fromRows(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, repo.fromRow(row))
	}
	return users
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

const userColumns = `id, name, username, email, reg_no, program, is_active, roles, password_hash, created_at, updated_at, last_login`

func (repo userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	query := `SELECT EXISTS (SELECT 1 FROM "user" WHERE (username = $1 OR email = $2)`
	args := []interface{}{username, email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		query += ` AND NOT (id = ANY($3))`
		args = append(args, pq.Array(ids))
	}
	query += `)`

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, query, args...); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	if exists {
		return user.ErrUserExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	row := repo.toRow(usr)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO "user" (`+userColumns+`)
		VALUES (:id, :name, :username, :email, :reg_no, :program, :is_active, :roles, :password_hash, :created_at, :updated_at, :last_login)`,
		row,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return repo.fromRow(row), nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	conds := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if filter.ID != "" {
		args = append(args, filter.ID)
		conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
	}
	if len(filter.UsernameOrEmail) > 0 {
		args = append(args, pq.Array(filter.UsernameOrEmail))
		conds = append(conds, fmt.Sprintf("(username = ANY($%d) OR email = ANY($%d))", len(args), len(args)))
	}
	if len(conds) == 0 {
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	query := `SELECT ` + userColumns + ` FROM "user" WHERE ` + strings.Join(conds, " OR ") + ` LIMIT 1`
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user")
	}
	return repo.fromRow(row), nil
}

func (repo userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	query := `SELECT ` + userColumns + ` FROM "user" ORDER BY ` + defaultUserOrdering.String()
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return repo.fromRows(rows), nil
}

func (repo userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	conds := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR username ILIKE $%d OR email ILIKE $%d OR reg_no ILIKE $%d)", n, n, n, n))
	}
	if len(filter.Roles) > 0 {
		args = append(args, pq.Array(filter.Roles))
		conds = append(conds, fmt.Sprintf("roles && $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if !filter.CreatedFrom.IsZero() {
		args = append(args, filter.CreatedFrom.UTC())
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.CreatedTo.IsZero() {
		args = append(args, filter.CreatedTo.UTC())
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := `SELECT ` + userColumns + ` FROM "user"`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY ` + defaultUserOrdering.String()

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return repo.fromRows(rows), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, isActive *bool) (user.User, error) {
	sets := make([]string, 0, 8)
	args := make([]interface{}, 0, 8)
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if usr.Name != "" {
		set("name", usr.Name)
	}
	if usr.Username != "" {
		set("username", usr.Username)
	}
	if usr.Email != "" {
		set("email", usr.Email)
	}
	if usr.Program != "" {
		set("program", usr.Program)
	}
	if usr.Roles != nil {
		set("roles", pq.StringArray(usr.Roles))
	}
	if usr.PasswordHash != nil {
		set("password_hash", usr.PasswordHash)
	}
	if !usr.UpdatedAt.IsZero() {
		set("updated_at", usr.UpdatedAt.UTC())
	}
	if !usr.LastLogin.IsZero() {
		set("last_login", usr.LastLogin.UTC())
	}
	if isActive != nil {
		set("is_active", *isActive)
	}
	if len(sets) == 0 {
		return repo.GetUser(ctx, user.GetFilter{ID: usr.ID})
	}

	args = append(args, usr.ID)
	query := fmt.Sprintf(`UPDATE "user" SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), len(args))

	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "updating user")
	}
	return repo.fromRow(row), nil
}

func (repo userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		now := time.Now().UTC()
		if usr.CreatedAt.IsZero() {
			usr.CreatedAt = now
		}
		if usr.UpdatedAt.IsZero() {
			usr.UpdatedAt = now
		}
		return repo.CreateUser(ctx, usr)
	}
	usr.UpdatedAt = time.Now().UTC()
	return repo.UpdateUser(ctx, usr, usr.IsActive)
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
