package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/icproject/catalog-auth/internal/logger"
	"github.com/icproject/catalog-auth/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and OAuth profile refresh against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrLoginAlreadyExists] or
//     [ErrEmailAlreadyExists] depending on the violated constraint.
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.PasswordHash, user.Picture,
		string(user.Provider), user.ProviderUserID, user.ProviderToken)

	var created models.User
	if err := scanUser(row, &created); err != nil {
		if mapped := r.mapUserError(ctx, err, "*userRepository.CreateUser"); mapped != nil {
			return models.User{}, mapped
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindUserByUsername retrieves the user record whose username matches.
// A missing record is reported as [ErrNoUserWasFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, findUserByUsername, username, "*userRepository.FindUserByUsername")
}

// FindUserByEmail retrieves the user record whose email matches. This is the
// lookup used by identity reconciliation.
// A missing record is reported as [ErrNoUserWasFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, findUserByEmail, email, "*userRepository.FindUserByEmail")
}

// FindUserByID retrieves the user record with the given internal identifier.
// A missing record is reported as [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, findUserByID, userID, "*userRepository.FindUserByID")
}

// UpdateOAuthProfile overwrites the provider-sourced profile fields of the
// account with user.Email and returns the refreshed record. Last login wins.
//
// A missing account is reported as [ErrNoUserWasFound] so the reconciler can
// fall back to creation.
func (r *userRepository) UpdateOAuthProfile(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildOAuthProfileUpdate(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateOAuthProfile").Msg("error building update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	var updated models.User
	if err := scanUser(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		if mapped := r.mapUserError(ctx, err, "*userRepository.UpdateOAuthProfile"); mapped != nil {
			return models.User{}, mapped
		}
		log.Err(err).Str("func", "*userRepository.UpdateOAuthProfile").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

// findOne runs a single-row lookup and scans the result.
func (r *userRepository) findOne(ctx context.Context, query string, arg any, funcName string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)

	var found models.User
	if err := scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		if mapped := r.mapUserError(ctx, err, funcName); mapped != nil {
			return models.User{}, mapped
		}
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// mapUserError translates driver-level postgres errors into sentinel errors.
// It returns nil when err is not a recognised postgres condition, in which
// case the caller handles it as a scan failure.
func (r *userRepository) mapUserError(ctx context.Context, err error, funcName string) error {
	log := logger.FromContext(ctx)

	switch postgresError(err) {
	case "":
		return nil
	case pgerrcode.UniqueViolation:
		log.Err(err).Str("func", funcName).Msg("unique constraint violation")
		return uniqueViolationError(err)
	default:
		if r.db.errorClassificator != nil && r.db.errorClassificator.Classify(err) == Retryable {
			log.Warn().Err(err).Str("func", funcName).Msg("transient DB error")
		} else {
			log.Err(err).Str("func", funcName).Msg("unexpected DB error")
		}
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}

// scanUser scans a full users row into dst.
func scanUser(row *sql.Row, dst *models.User) error {
	var provider string
	if err := row.Scan(
		&dst.UserID, &dst.Username, &dst.Email, &dst.PasswordHash,
		&dst.Picture, &provider, &dst.ProviderUserID, &dst.ProviderToken,
		&dst.CreatedAt,
	); err != nil {
		return err
	}

	dst.Provider = models.Provider(provider)
	return nil
}
