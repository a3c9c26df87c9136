package managers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogcore/internal/common"
	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/logging"
	"github.com/dmitrijs2005/blogcore/internal/result"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogcore/internal/server/validation"
)

// UserReader resolves live users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (result.DataResult[*models.User], error)
}

// UserManager owns the user rules: email and username are unique among live
// users, compared case-insensitively, and only password hashes are stored.
type UserManager struct {
	manager
	hasher PasswordHasher
}

func NewUserManager(db *sql.DB, rm repomanager.RepositoryManager, v *validation.Validator, l logging.Logger, h PasswordHasher) *UserManager {
	return &UserManager{
		manager: newManager(db, rm, v, l, "user"),
		hasher:  h,
	}
}

func userNotFound(id int64) string {
	return fmt.Sprintf("User with id %d not found", id)
}

const (
	msgUserNotFound    = "User not found"
	msgEmailTaken      = "A user with this email already exists"
	msgUsernameTaken   = "A user with this username already exists"
	msgIdentityTaken   = "A user with this email or username already exists"
	msgInvalidPassword = "Invalid password"
)

// GetByID returns the live user with id.
func (s *UserManager) GetByID(ctx context.Context, id int64) (result.DataResult[*models.User], error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	return s.one(ctx, "get user", u, err, userNotFound(id))
}

// GetByEmail looks up a live user by email, ignoring case.
func (s *UserManager) GetByEmail(ctx context.Context, email string) (result.DataResult[*models.User], error) {
	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	return s.one(ctx, "get user by email", u, err, msgUserNotFound)
}

// GetByUsername looks up a live user by username, ignoring case.
func (s *UserManager) GetByUsername(ctx context.Context, username string) (result.DataResult[*models.User], error) {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	return s.one(ctx, "get user by username", u, err, msgUserNotFound)
}

func (s *UserManager) one(ctx context.Context, op string, u *models.User, err error, notFound string) (result.DataResult[*models.User], error) {
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return failData[*models.User](ctx, &s.manager, op, notFound), nil
		}
		return result.DataResult[*models.User]{}, s.fatal(ctx, op, err)
	}
	return result.OkData(u, "User retrieved successfully"), nil
}

// GetAll returns every live user ordered by id.
func (s *UserManager) GetAll(ctx context.Context) (result.DataResult[[]*models.User], error) {
	list, err := s.repomanager.Users(s.db).GetAll(ctx)
	if err != nil {
		return result.DataResult[[]*models.User]{}, s.fatal(ctx, "list users", err)
	}
	return result.OkData(list, "Users retrieved successfully"), nil
}

// Add validates u with its raw credential in PasswordHash, rejects a taken
// email or username, and stores u with the credential replaced by its hash.
func (s *UserManager) Add(ctx context.Context, u *models.User) (result.Result, error) {
	const op = "add user"

	if msg, err := s.check(u); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	} else if msg != "" {
		return s.fail(ctx, op, msg), nil
	}

	if msg, err := s.identityTaken(ctx, u); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	} else if msg != "" {
		return s.fail(ctx, op, msg), nil
	}

	hash, err := s.hasher.Hash(u.PasswordHash)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return s.fail(ctx, op, "Password must be at most 72 bytes long"), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}
	u.PasswordHash = hash

	if err := s.repomanager.Users(s.db).Add(ctx, u); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return s.fail(ctx, op, msgIdentityTaken), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "user added", u.ID, "User added successfully"), nil
}

// Update replaces the live user with the same id. The credential is re-hashed
// only when PasswordHash differs from the stored hash; an empty value keeps
// the stored hash.
func (s *UserManager) Update(ctx context.Context, u *models.User) (result.Result, error) {
	const op = "update user"

	// an empty credential means "keep the stored hash"
	var except []string
	if u.PasswordHash == "" {
		except = append(except, "PasswordHash")
	}
	if msg, err := s.check(u, except...); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	} else if msg != "" {
		return s.fail(ctx, op, msg), nil
	}

	repo := s.repomanager.Users(s.db)

	existing, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(ctx, op, userNotFound(u.ID)), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	rehash := u.PasswordHash != "" && u.PasswordHash != existing.PasswordHash
	if !rehash {
		u.PasswordHash = existing.PasswordHash
	}

	if msg, err := s.identityTaken(ctx, u); err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	} else if msg != "" {
		return s.fail(ctx, op, msg), nil
	}

	if rehash {
		hash, err := s.hasher.Hash(u.PasswordHash)
		if err != nil {
			if errors.Is(err, ErrPasswordTooLong) {
				return s.fail(ctx, op, "Password must be at most 72 bytes long"), nil
			}
			return result.Result{}, s.fatal(ctx, op, err)
		}
		u.PasswordHash = hash
	}

	if err := repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return s.fail(ctx, op, userNotFound(u.ID)), nil
		case errors.Is(err, common.ErrConflict):
			return s.fail(ctx, op, msgIdentityTaken), nil
		}
		return result.Result{}, s.fatal(ctx, op, err)
	}

	return s.done(ctx, "user updated", u.ID, "User updated successfully"), nil
}

// identityTaken reports which unique field of u collides with another live
// user, if any.
func (s *UserManager) identityTaken(ctx context.Context, u *models.User) (string, error) {
	repo := s.repomanager.Users(s.db)

	taken, err := repo.EmailTaken(ctx, u.Email, u.ID)
	if err != nil {
		return "", err
	}
	if taken {
		return msgEmailTaken, nil
	}

	taken, err = repo.UsernameTaken(ctx, u.Username, u.ID)
	if err != nil {
		return "", err
	}
	if taken {
		return msgUsernameTaken, nil
	}
	return "", nil
}

// Delete soft-deletes the live user with id and, in the same transaction,
// clears the author of every comment the user wrote. Posts are kept.
func (s *UserManager) Delete(ctx context.Context, id int64) (result.Result, error) {
	const op = "delete user"

	var res result.Result
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)

		u, err := users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				res = s.fail(ctx, op, userNotFound(id))
				return nil
			}
			return err
		}

		if _, err := s.repomanager.Comments(tx).DetachUser(ctx, id); err != nil {
			return err
		}
		if err := users.Delete(ctx, u); err != nil {
			return err
		}

		res = s.done(ctx, "user deleted", id, "User deleted successfully")
		return nil
	})
	if err != nil {
		return result.Result{}, s.fatal(ctx, op, err)
	}
	return res, nil
}

// AuthenticateUser verifies password against the stored hash of the live
// user with username. A wrong password yields a failed result carrying false;
// an unknown username yields a distinct failure.
func (s *UserManager) AuthenticateUser(ctx context.Context, username, password string) (result.DataResult[bool], error) {
	const op = "authenticate user"

	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return failData[bool](ctx, &s.manager, op, msgUserNotFound), nil
		}
		return result.DataResult[bool]{}, s.fatal(ctx, op, err)
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		s.logger.Warn(ctx, op+" rejected", "id", u.ID, "reason", msgInvalidPassword)
		return result.FailDataWith(false, msgInvalidPassword), nil
	}

	s.logger.Info(ctx, "user authenticated", "id", u.ID)
	return result.OkData(true, "User authenticated successfully"), nil
}
