package api

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"talentdash/internal/database"
)

// errUserNotFound is the backend-neutral lookup miss for user repositories.
var errUserNotFound = errors.New("user not found")

// UserRepo abstracts recruiter account storage so the auth handler works
// the same against PostgreSQL and the in-memory demo backend.
type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (database.User, error)
	FindByID(ctx context.Context, id uint) (database.User, error)
	Create(ctx context.Context, user *database.User) error
}

type gormUserRepo struct {
	db *gorm.DB
}

// NewGormUserRepo returns the database-backed user repository.
func NewGormUserRepo(db *gorm.DB) UserRepo {
	return &gormUserRepo{db: db}
}

func (r *gormUserRepo) FindByUsername(ctx context.Context, username string) (database.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.User{}, errUserNotFound
		}
		return database.User{}, err
	}
	return user, nil
}

func (r *gormUserRepo) FindByID(ctx context.Context, id uint) (database.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.User{}, errUserNotFound
		}
		return database.User{}, err
	}
	return user, nil
}

func (r *gormUserRepo) Create(ctx context.Context, user *database.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

type memoryUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  []database.User
}

// NewMemoryUserRepo returns the demo-mode user repository.
func NewMemoryUserRepo() UserRepo {
	return &memoryUserRepo{nextID: 1}
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (database.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return database.User{}, errUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uint) (database.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return database.User{}, errUserNotFound
}

func (r *memoryUserRepo) Create(_ context.Context, user *database.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return errors.New("username already taken")
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *user)
	return nil
}
