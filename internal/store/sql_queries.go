package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/icproject/catalog-auth/models"
)

// Unique-constraint names created by the users migration. Used to tell a
// username collision from an email collision on a 23505 error.
const (
	constraintUsersUsername = "users_username_key"
	constraintUsersEmail    = "users_email_key"
)

const userColumns = `user_id, username, email, password_hash, picture, provider, provider_user_id, provider_token, created_at`

const (
	createUser = `INSERT INTO users (username, email, password_hash, picture, provider, provider_user_id, provider_token)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + userColumns + `;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`
)

// buildOAuthProfileUpdate builds the UPDATE statement that refreshes the
// provider-sourced profile fields of the account with the given email.
// Only non-empty values overwrite the stored profile, except the provider
// columns which always follow the latest login.
func buildOAuthProfileUpdate(user models.User) (string, []any, error) {
	builder := sq.Update(user.TableName()).
		PlaceholderFormat(sq.Dollar).
		Set("provider", string(user.Provider)).
		Set("provider_user_id", user.ProviderUserID).
		Set("provider_token", user.ProviderToken)

	if user.Username != "" {
		builder = builder.Set("username", user.Username)
	}
	if user.Picture != "" {
		builder = builder.Set("picture", user.Picture)
	}

	return builder.
		Where(sq.Eq{"email": user.Email}).
		Suffix("RETURNING " + userColumns).
		ToSql()
}
