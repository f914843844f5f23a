package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	authsvc "github.com/BruksfildServices01/clients-api/internal/auth"
	"github.com/BruksfildServices01/clients-api/internal/domain/user"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
)

type SignInInput struct {
	Email    string
	Password string
}

type SignInOutput struct {
	AccessToken string
	ExpiresIn   time.Time
}

type SignIn struct {
	users  user.Repository
	hasher authsvc.Hasher
	tokens *authsvc.TokenService

	decoyOnce sync.Once
	decoy     string
}

func NewSignIn(
	users user.Repository,
	hasher authsvc.Hasher,
	tokens *authsvc.TokenService,
) *SignIn {
	return &SignIn{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Execute answers an unknown email and a wrong password with the same error,
// and checks the password either way so both take about as long.
func (uc *SignIn) Execute(ctx context.Context, in SignInInput) (*SignInOutput, error) {
	u, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if httperr.StatusOf(err) == http.StatusUnauthorized {
			_, _ = uc.hasher.Verify(in.Password, uc.decoyDigest())
		}
		return nil, err
	}

	ok, err := uc.hasher.Verify(in.Password, u.Password)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", u.ID).Msg("stored password hash is unusable")
		return nil, httperr.ErrInvalidCredentials()
	}
	if !ok {
		return nil, httperr.ErrInvalidCredentials()
	}

	token, expiresAt, err := uc.tokens.Issue(u.ID, u.Name)
	if errors.Is(err, authsvc.ErrSecretNotConfigured) {
		zerolog.Ctx(ctx).Error().Msg("JWT_SECRET is not set")
		return nil, httperr.New(http.StatusInternalServerError, httperr.MsgInternal)
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("sign token")
		return nil, httperr.Internal("signing the token")
	}

	return &SignInOutput{
		AccessToken: token,
		ExpiresIn:   expiresAt,
	}, nil
}

// decoyDigest is a digest of a random password, made with the same hasher as
// real ones.
func (uc *SignIn) decoyDigest() string {
	uc.decoyOnce.Do(func() {
		digest, err := uc.hasher.Make(uuid.NewString())
		if err == nil {
			uc.decoy = digest
		}
	})
	return uc.decoy
}
