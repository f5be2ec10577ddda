package userrepo_test

import (
	"context"
	"fmt"
	"testing"

	"urbanwheels/model"
	userrepo "urbanwheels/repository/user"
	"urbanwheels/util/database"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) userrepo.Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return userrepo.New(db)
}

func TestCreateAndByUsername(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := &model.User{Username: "raj", Password: "pw", Role: model.RoleOwner}
	require.NoError(t, r.Create(ctx, u))
	require.NotZero(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	got, err := r.ByUsername(ctx, "raj")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "pw", got.Password)
	require.Equal(t, model.RoleOwner, got.Role)

	_, err = r.ByUsername(ctx, "missing")
	require.Error(t, err)
}

// The auth service relies on the driver reporting a unique-constraint
// violation for duplicate usernames.
func TestCreate_DuplicateUsername(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &model.User{Username: "raj", Password: "pw", Role: model.RoleOwner}))

	err := r.Create(ctx, &model.User{Username: "raj", Password: "other", Role: model.RoleCustomer})
	require.Error(t, err)
	var sqErr sqlite3.Error
	require.ErrorAs(t, err, &sqErr)
	require.Equal(t, sqlite3.ErrConstraintUnique, sqErr.ExtendedCode)
}
