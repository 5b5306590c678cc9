package store

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/haapio/accounts/internal"
	"github.com/haapio/accounts/internal/security"

	_ "modernc.org/sqlite"
)

var userStore *UserSQLStore
var permissionStore *PermissionSQLStore

func TestMain(m *testing.M) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if _, err = db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Fatal(err)
	}

	RunMigrations(db, internal.MigrationsDir)

	userStore = NewUserSQLStore(db, db)
	permissionStore = NewPermissionSQLStore(db, db)
	code := m.Run()
	os.Exit(code)
}

func TestCreateUser(t *testing.T) {
	t.Run("success - user is stored", func(t *testing.T) {
		// arrange
		hash, _ := security.HashPassword("testpassword")
		sessionKey := uuid.NewString()
		email := "stored@example.com"

		// act
		u, err := userStore.CreateUser(context.Background(), RoleUser, sessionKey, email, hash)

		// assert
		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.NotEqual(t, int64(0), u.UserID)
		assert.Equal(t, RoleUser, u.UserRole)
		assert.Equal(t, email, u.Email)
		assert.Equal(t, sessionKey, u.SessionKey)
		assert.Equal(t, hash, u.PasswordHash)
		assert.False(t, u.CreatedAt.IsZero())
		assert.False(t, u.UpdatedAt.IsZero())
	})
	t.Run("failure - email already exists", func(t *testing.T) {
		// arrange
		hash, _ := security.HashPassword("testpassword")
		email := "duplicate@example.com"
		_, err := userStore.CreateUser(context.Background(), RoleUser, uuid.NewString(), email, hash)
		assert.NoError(t, err)

		// act
		u, err := userStore.CreateUser(context.Background(), RoleUser, uuid.NewString(), email, hash)

		// assert
		assert.Error(t, err)
		assert.Nil(t, u)
	})
}

func TestReadUser(t *testing.T) {
	t.Run("success - user is read by id and email", func(t *testing.T) {
		// arrange
		hash, _ := security.HashPassword("testpassword")
		email := "reader@example.com"
		created, err := userStore.CreateUser(context.Background(), RoleStaff, uuid.NewString(), email, hash)
		assert.NoError(t, err)

		// act
		byID, idErr := userStore.ReadUserByID(context.Background(), created.UserID)
		byEmail, emailErr := userStore.ReadUserByEmail(context.Background(), email)

		// assert
		assert.NoError(t, idErr)
		assert.NoError(t, emailErr)
		assert.Equal(t, created.UserID, byID.UserID)
		assert.Equal(t, RoleStaff, byID.UserRole)
		assert.Equal(t, created.UserID, byEmail.UserID)
		assert.Equal(t, hash, byEmail.PasswordHash)
	})
	t.Run("failure - unknown email is sql.ErrNoRows", func(t *testing.T) {
		// act
		u, err := userStore.ReadUserByEmail(context.Background(), "nobody@example.com")

		// assert
		assert.Nil(t, u)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestEmailExists(t *testing.T) {
	t.Run("success - registered email exists, free email does not", func(t *testing.T) {
		// arrange
		hash, _ := security.HashPassword("testpassword")
		email := "taken@example.com"
		_, err := userStore.CreateUser(context.Background(), RoleUser, uuid.NewString(), email, hash)
		assert.NoError(t, err)

		// act
		taken, takenErr := userStore.EmailExists(context.Background(), email)
		free, freeErr := userStore.EmailExists(context.Background(), "free@example.com")

		// assert
		assert.NoError(t, takenErr)
		assert.NoError(t, freeErr)
		assert.True(t, taken)
		assert.False(t, free)
	})
}

func TestUpdateUserPassword(t *testing.T) {
	t.Run("success - hash is replaced, session key untouched", func(t *testing.T) {
		// arrange
		oldHash, _ := security.HashPassword("oldpassword")
		newHash, _ := security.HashPassword("newpassword")
		sessionKey := uuid.NewString()
		u, err := userStore.CreateUser(
			context.Background(), RoleUser, sessionKey, "rehash@example.com", oldHash,
		)
		assert.NoError(t, err)

		// act
		err = userStore.UpdateUserPassword(context.Background(), u.UserID, newHash)

		// assert
		assert.NoError(t, err)
		updated, err := userStore.ReadUserByID(context.Background(), u.UserID)
		assert.NoError(t, err)
		assert.Equal(t, newHash, updated.PasswordHash)
		assert.Equal(t, sessionKey, updated.SessionKey)
	})
}

func TestUpdateUserSessionKey(t *testing.T) {
	t.Run("success - session key is rotated", func(t *testing.T) {
		// arrange
		hash, _ := security.HashPassword("testpassword")
		u, err := userStore.CreateUser(
			context.Background(), RoleUser, uuid.NewString(), "rotate@example.com", hash,
		)
		assert.NoError(t, err)
		rotated := uuid.NewString()

		// act
		err = userStore.UpdateUserSessionKey(context.Background(), u.UserID, rotated)

		// assert
		assert.NoError(t, err)
		updated, err := userStore.ReadUserByID(context.Background(), u.UserID)
		assert.NoError(t, err)
		assert.Equal(t, rotated, updated.SessionKey)
	})
}

func TestUpdateUserRole(t *testing.T) {
	t.Run("success - role is changed", func(t *testing.T) {
		// arrange
		hash, _ := security.HashPassword("testpassword")
		u, err := userStore.CreateUser(
			context.Background(), RoleUser, uuid.NewString(), "promoted@example.com", hash,
		)
		assert.NoError(t, err)

		// act
		err = userStore.UpdateUserRole(context.Background(), u.UserID, RoleNaughty)

		// assert
		assert.NoError(t, err)
		updated, err := userStore.ReadUserByID(context.Background(), u.UserID)
		assert.NoError(t, err)
		assert.Equal(t, RoleNaughty, updated.UserRole)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("success - deleted user is gone", func(t *testing.T) {
		// arrange
		hash, _ := security.HashPassword("testpassword")
		u, err := userStore.CreateUser(
			context.Background(), RoleUser, uuid.NewString(), "deleted@example.com", hash,
		)
		assert.NoError(t, err)

		// act
		err = userStore.DeleteUser(context.Background(), u.UserID)

		// assert
		assert.NoError(t, err)
		_, err = userStore.ReadUserByID(context.Background(), u.UserID)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestListUsersByRole(t *testing.T) {
	t.Run("success - only users with the role are listed", func(t *testing.T) {
		// arrange
		hash, _ := security.HashPassword("testpassword")
		_, err := userStore.CreateUser(
			context.Background(), RoleAdmin, uuid.NewString(), "firstadmin@example.com", hash,
		)
		assert.NoError(t, err)

		// act
		admins, err := userStore.ListUsersByRole(context.Background(), RoleAdmin)

		// assert
		assert.NoError(t, err)
		assert.NotEmpty(t, admins)
		for _, a := range admins {
			assert.Equal(t, RoleAdmin, a.UserRole)
		}
	})
}
