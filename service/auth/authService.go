package authsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"urbanwheels/model"
	userrepo "urbanwheels/repository/user"
	jwtutil "urbanwheels/util/jwt"
)

// errors used by controllers

type ErrCode string

const (
	ErrDuplicateUsername ErrCode = "DUPLICATE_USERNAME"
	ErrAuthFailed        ErrCode = "AUTH_FAILED"
	ErrBadInput          ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	username := strings.TrimSpace(req.Username)
	role := model.Role(req.Role)
	if username == "" || req.Password == "" {
		return nil, "", makeErr(ErrBadInput)
	}
	if role != model.RoleOwner && role != model.RoleCustomer {
		return nil, "", makeErr(ErrBadInput)
	}

	// Password is stored and compared as-is. Minimal-leak login is kept,
	// credential hardening is not a goal of this system.
	u := &model.User{
		Username: username,
		Password: req.Password,
		Role:     role,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.Username, string(u.Role), 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func mapDuplicateErr(err error) error {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) && sqErr.Code == sqlite3.ErrConstraint {
		// username is the only unique column in the schema
		if sqErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return makeErr(ErrDuplicateUsername)
		}
		return makeErr(ErrBadInput)
	}
	return nil
}

// Login resolves credentials with an exact, case-sensitive comparison.
// Unknown user and wrong password both map to AUTH_FAILED on purpose.
func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.ur.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", makeErr(ErrAuthFailed)
	}
	if u.Password != req.Password {
		return nil, "", makeErr(ErrAuthFailed)
	}
	token, err := jwtutil.Issue(s.secret, u.Username, string(u.Role), 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
