package db

import (
	"fmt"
	"strings"

	"cmscore/models"

	log "github.com/sirupsen/logrus"
)

type UserRepository struct {
	users *table[models.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: newTable[models.User]()}
}

// Add stores user and returns it with its assigned id. Usernames are unique.
func (r *UserRepository) Add(user models.User) (models.User, error) {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" || user.Password == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}
	if user.Role == 0 {
		user.Role = models.RoleUser
	}

	stored, ok := r.users.insertUnless(
		func(existing models.User) bool { return existing.Username == user.Username },
		func(id int64) models.User {
			user.Id = id
			return user
		},
	)
	if !ok {
		return models.User{}, fmt.Errorf("%w: username %q is taken", models.ErrValidation, user.Username)
	}

	log.WithFields(log.Fields{
		"id":       stored.Id,
		"username": stored.Username,
		"role":     stored.Role,
	}).Debug("Added user")
	return stored, nil
}

func (r *UserRepository) GetById(id int64) (models.User, error) {
	user, ok := r.users.get(id)
	if !ok {
		return models.User{}, fmt.Errorf("%w: user %d", models.ErrNotFound, id)
	}
	return user, nil
}

func (r *UserRepository) List() []models.User {
	return r.users.all()
}

// Validate returns the user matching the credentials
func (r *UserRepository) Validate(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}

	user, ok := r.users.find(func(u models.User) bool { return u.Username == username })
	if !ok || user.Password != password {
		return models.User{}, fmt.Errorf("%w: invalid username or password", models.ErrAuthentication)
	}
	return user, nil
}

func (r *UserRepository) Delete(id int64) error {
	if !r.users.remove(id) {
		return fmt.Errorf("%w: user %d", models.ErrNotFound, id)
	}
	return nil
}

func (r *UserRepository) Count() int {
	return r.users.len()
}
