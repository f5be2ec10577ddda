// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"errors"
	"testing"

	"urbanwheels/model"
	userrepo "urbanwheels/repository/user"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	byUsernameFn func(ctx context.Context, username string) (*model.User, error)
	createFn     func(ctx context.Context, u *model.User) error
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.byUsernameFn == nil {
		return nil, errors.New("no rows")
	}
	return m.byUsernameFn(ctx, username)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Username: "halim",
		Password: "supersecret",
		Role:     "owner",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "halim", u.Username)
	require.Equal(t, model.RoleOwner, u.Role)
	// stored as given, no hashing
	require.Equal(t, "supersecret", u.Password)
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	for _, req := range []model.RegisterReq{
		{Username: " ", Password: "pw", Role: "owner"},
		{Username: "u", Password: "", Role: "customer"},
		{Username: "u", Password: "pw", Role: "admin"},
	} {
		_, _, err := svc.Register(ctx, req)
		require.Error(t, err)
		require.Equal(t, ErrBadInput, Code(err))
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return sqlite3.Error{
				Code:         sqlite3.ErrConstraint,
				ExtendedCode: sqlite3.ErrConstraintUnique,
			}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "taken",
		Password: "pw",
		Role:     "customer",
	})
	require.Error(t, err)
	require.Equal(t, ErrDuplicateUsername, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "ok",
		Password: "pw",
		Role:     "owner",
	})
	require.Error(t, err)
	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{
				ID:       7,
				Username: "halim",
				Password: "supersecret",
				Role:     model.RoleCustomer,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{Username: "halim", Password: "supersecret"})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_UnknownUser(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, errors.New("no rows")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Username: "missing", Password: "whatever"})
	require.Error(t, err)
	require.Equal(t, ErrAuthFailed, Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 101, Username: "halim", Password: "correct-password"}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Username: "halim", Password: "wrong-password"})
	require.Error(t, err)
	require.Equal(t, ErrAuthFailed, Code(err))
}

func TestLogin_CaseSensitive(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 5, Username: "halim", Password: "Secret"}, nil
		},
	}
	svc := New(m, "test-secret")

	// comparison is exact, not case-folded
	_, _, err := svc.Login(ctx, model.LoginReq{Username: "halim", Password: "secret"})
	require.Error(t, err)
	require.Equal(t, ErrAuthFailed, Code(err))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrDuplicateUsername, Code(makeErr(ErrDuplicateUsername)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
