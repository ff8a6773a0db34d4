package dummydb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iterhub/eduhub/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users
}

func (repo *userRepository) CheckUsernameUniqueness(_ context.Context, username, email string, excludedUsers ...user.User) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[string]bool, len(excludedUsers))
	for _, u := range excludedUsers {
		excluded[u.ID] = true
	}

	for _, usr := range repo.query() {
		if excluded[usr.ID] {
			continue
		}
		if (username != "" && usr.Username == username) || (email != "" && usr.Email == email) {
			return user.ErrUserExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = uuid.New().String()
	repo.db.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.table[filter.ID]; ok {
			return *usr, nil
		}
	}
	for _, uname := range filter.UsernameOrEmail {
		for _, usr := range repo.query() {
			if (usr.Username == uname) || (usr.Email == uname) {
				return usr, nil
			}
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryAllUsers(_ context.Context) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *userRepository) FilterUsers(_ context.Context, filter user.QueryFilter) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := repo.query()

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		var filtered []user.User
		for _, usr := range users {
			if strings.Contains(strings.ToLower(usr.Name), search) ||
				strings.Contains(strings.ToLower(usr.Username), search) ||
				strings.Contains(strings.ToLower(usr.Email), search) ||
				strings.Contains(strings.ToLower(usr.RegNo), search) {
				filtered = append(filtered, usr)
			}
		}
		users = filtered
	}

	if len(filter.Roles) > 0 {
		var filtered []user.User
		for _, usr := range users {
			for _, role := range filter.Roles {
				if usr.RoleStartsWith(role) {
					filtered = append(filtered, usr)
					break
				}
			}
		}
		users = filtered
	}

	if filter.IsActive != nil {
		var filtered []user.User
		for _, usr := range users {
			if usr.IsActive != nil && *usr.IsActive == *filter.IsActive {
				filtered = append(filtered, usr)
			}
		}
		users = filtered
	}

	if !filter.CreatedFrom.IsZero() {
		var filtered []user.User
		for _, usr := range users {
			if !usr.CreatedAt.Before(filter.CreatedFrom) {
				filtered = append(filtered, usr)
			}
		}
		users = filtered
	}
	if !filter.CreatedTo.IsZero() {
		var filtered []user.User
		for _, usr := range users {
			if !usr.CreatedAt.After(filter.CreatedTo) {
				filtered = append(filtered, usr)
			}
		}
		users = filtered
	}

	return users, nil
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User, isActive *bool) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if usr.Name != "" {
		orig.Name = usr.Name
	}
	if usr.Username != "" {
		orig.Username = usr.Username
	}
	if usr.Email != "" {
		orig.Email = usr.Email
	}
	if usr.Program != "" {
		orig.Program = usr.Program
	}
	if usr.Roles != nil {
		orig.Roles = usr.Roles
	}
	if usr.PasswordHash != nil {
		orig.PasswordHash = usr.PasswordHash
	}
	if !usr.UpdatedAt.IsZero() {
		orig.UpdatedAt = usr.UpdatedAt
	}
	if !usr.LastLogin.IsZero() {
		orig.LastLogin = usr.LastLogin
	}
	if isActive != nil {
		orig.IsActive = isActive
	}
	return *orig, nil
}

func (repo *userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		now := time.Now().UTC()
		usr.CreatedAt = now
		usr.UpdatedAt = now
		return repo.CreateUser(ctx, usr)
	}
	usr.UpdatedAt = time.Now().UTC()
	return repo.UpdateUser(ctx, usr, usr.IsActive)
}

func (repo *userRepository) DeleteUsersByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
