package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"reading-log-server/internal/model"
	"reading-log-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var userColumns = []string{"uuid", "username", "email", "password_hash", "profile_picture", "google_id", "created_at"}

func TestCreateUser_Success(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	now := time.Now()
	user := &model.User{
		UUID:         "u1",
		Username:     "user",
		Email:        "test@example.com",
		PasswordHash: sql.NullString{String: "hash", Valid: true},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (uuid, username, email, password_hash, profile_picture, google_id)`)).
		WithArgs(user.UUID, user.Username, user.Email, user.PasswordHash, user.ProfilePicture, user.GoogleID).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "user", "test@example.com", "hash", nil, nil, now))

	created, err := repo.CreateUser(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, "u1", created.UUID)
	assert.Equal(t, "test@example.com", created.Email)
	assert.False(t, created.GoogleID.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "users_email_key"`))

	created, err := repo.CreateUser(context.Background(), &model.User{UUID: "u1"})

	assert.Nil(t, created)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "[UserRepo]")
}

func TestFindByEmail_Success(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT uuid, username, email, password_hash, profile_picture, google_id, created_at FROM users WHERE email = $1`)).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "user", "test@example.com", "hash", nil, nil, time.Now()))

	user, err := repo.FindByEmail(context.Background(), "test@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)
}

// отсутствие строки должно подниматься как sql.ErrNoRows,
// на него завязан google-логин
func TestFindByEmail_NotFound(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "missing@example.com")

	assert.Nil(t, user)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.Contains(t, err.Error(), "пользователь не найден")
}

func TestFindByUUID_NotFound(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE uuid = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.FindByUUID(context.Background(), "missing")

	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "пользователь не найден")
}

func TestExistsByEmail(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`)).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "test@example.com")

	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestUpdateUser_NotFound(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs("missing", "user", "test@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateUser(context.Background(), &model.User{UUID: "missing", Username: "user", Email: "test@example.com"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "пользователь не найден")
}

func TestLinkGoogleAccount_Success(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET google_id = $2 WHERE uuid = $1`)).
		WithArgs("u1", "g1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.LinkGoogleAccount(context.Background(), "u1", "g1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_Success(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE uuid = $1`)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteUser(context.Background(), "u1")

	assert.NoError(t, err)
}

func TestListUsers_Success(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "first", "first@example.com", nil, nil, nil, time.Now()).
			AddRow("u2", "second", "second@example.com", "hash", nil, "g2", time.Now()))

	users, err := repo.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "first", users[0].Username)
	assert.True(t, users[1].GoogleID.Valid)
}
