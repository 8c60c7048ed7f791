package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/doctor"
	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
)

type TokenIssuer interface {
	Issue(userID uint, role string, now time.Time) (string, time.Time, error)
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type Login struct {
	repo      doctor.Repository
	tokens    TokenIssuer
	clock     timezone.Clock
	audit     audit.Recorder
	graceDays int
}

func NewLogin(
	repo doctor.Repository,
	tokens TokenIssuer,
	clock timezone.Clock,
	audit audit.Recorder,
	graceDays int,
) *Login {
	if graceDays <= 0 {
		graceDays = doctor.DefaultGraceDays
	}
	return &Login{
		repo:      repo,
		tokens:    tokens,
		clock:     clock,
		audit:     audit,
		graceDays: graceDays,
	}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.ErrUnauthorized("invalid_credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, httperr.ErrUnauthorized("invalid_credentials")
	}

	now := uc.clock.Now()

	if user.Role == string(identity.RoleDoctor) {
		if err := uc.gateDoctor(ctx, user.ID, now); err != nil {
			return nil, err
		}
	} else if !user.Active {
		return nil, httperr.ErrForbidden("account_inactive")
	}

	token, exp, err := uc.tokens.Issue(user.ID, user.Role, now)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{User: user, Token: token, ExpiresAt: exp}, nil
}

// gateDoctor runs the inactivation gate. A finalization is committed even
// though the login is refused.
func (uc *Login) gateDoctor(ctx context.Context, doctorID uint, now time.Time) error {
	var denied error
	finalized := false

	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx doctor.Repository) error {
		u, p, err := tx.GetDoctorForUpdate(ctx, doctorID)
		if err != nil {
			return err
		}

		finalized, denied = doctor.GateLogin(u, p, now, uc.graceDays)
		if !finalized {
			return nil
		}
		return tx.SaveDoctor(ctx, u, p)
	})
	if err != nil {
		return err
	}

	if finalized {
		id := doctorID
		uc.audit.Dispatch(audit.Event{
			ActorID:  &id,
			Action:   "doctor.inactivation_finalized",
			Entity:   "doctor",
			EntityID: &id,
		})
	}
	return denied
}
