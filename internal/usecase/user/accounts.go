package user

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/auth"
	"github.com/goofitre/carcare-api/internal/cache"
	storeDomain "github.com/goofitre/carcare-api/internal/domain/store"
	domain "github.com/goofitre/carcare-api/internal/domain/user"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
)

const minPasswordLen = 6

type Options struct {
	// CheckEmailDomain rejects emails whose domain has no MX/A record.
	CheckEmailDomain bool
}

// Accounts covers registration, login and the admin user screens.
type Accounts struct {
	users  domain.Repository
	stores storeDomain.Repository
	tokens *auth.Tokens
	cache  cache.Invalidator
	audit  *audit.Dispatcher

	opts        Options
	emailDomain func(email string) bool
}

func NewAccounts(
	users domain.Repository,
	stores storeDomain.Repository,
	tokens *auth.Tokens,
	inv cache.Invalidator,
	audit *audit.Dispatcher,
	opts Options,
	emailDomain func(string) bool,
) *Accounts {
	return &Accounts{
		users:       users,
		stores:      stores,
		tokens:      tokens,
		cache:       inv,
		audit:       audit,
		opts:        opts,
		emailDomain: emailDomain,
	}
}

// --------------------------------------------------
// Register / create
// --------------------------------------------------

type NewUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register is the public sign-up. ADMIN cannot be picked here and an
// empty role means USER.
func (a *Accounts) Register(ctx context.Context, in NewUserInput) (*Session, error) {
	role := domain.RoleUser
	if strings.TrimSpace(in.Role) != "" {
		r, ok := domain.ParseRole(in.Role)
		if !ok || !r.SelfAssignable() {
			return nil, httperr.ErrBusiness("invalid_role")
		}
		role = r
	}

	u, err := a.create(ctx, in, role)
	if err != nil {
		return nil, err
	}

	token, err := a.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	a.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]string{"role": u.Role},
	})
	return &Session{Token: token, User: u}, nil
}

// CreateUser is the admin path; only ADMIN and ORGANIZA accounts are
// provisioned this way.
func (a *Accounts) CreateUser(ctx context.Context, actorID string, in NewUserInput) (*models.User, error) {
	role, ok := domain.ParseRole(in.Role)
	if !ok || role == domain.RoleUser {
		return nil, httperr.ErrBusiness("invalid_role")
	}

	u, err := a.create(ctx, in, role)
	if err != nil {
		return nil, err
	}

	a.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]string{"role": u.Role},
	})
	return u, nil
}

func (a *Accounts) create(ctx context.Context, in NewUserInput, role domain.Role) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, httperr.ErrBusiness("invalid_email")
	}
	if len(in.Password) < minPasswordLen {
		return nil, httperr.ErrBusiness("password_too_short")
	}
	if a.opts.CheckEmailDomain && a.emailDomain != nil && !a.emailDomain(email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	if _, err := a.users.GetByEmail(ctx, email); err == nil {
		return nil, httperr.ErrBusiness("email_already_registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         string(role),
	}

	if err := a.users.Create(ctx, u); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("email_already_registered")
		}
		return nil, err
	}
	return u, nil
}

// --------------------------------------------------
// Login / me
// --------------------------------------------------

func (a *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	token, err := a.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}

type Profile struct {
	*models.User
	StoreID *string `json:"store_id"`
}

func (a *Accounts) Me(ctx context.Context, userID string) (*Profile, error) {
	u, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	if err != nil {
		return nil, err
	}

	p := &Profile{User: u}
	s, err := a.stores.GetByOwner(ctx, userID)
	switch {
	case err == nil:
		p.StoreID = &s.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return p, nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (a *Accounts) List(ctx context.Context) ([]models.User, error) {
	return a.users.List(ctx)
}

// ChangeRole returns the canonical role that was stored.
func (a *Accounts) ChangeRole(ctx context.Context, actorID, id, role string) (domain.Role, error) {
	r, ok := domain.ParseRole(role)
	if !ok {
		return "", httperr.ErrBusiness("invalid_role")
	}

	if err := a.users.SetRole(ctx, id, r); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", httperr.ErrBusiness("user_not_found")
		}
		return "", err
	}

	a.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_role_changed",
		Entity:   "user",
		EntityID: &id,
		Metadata: map[string]string{"role": string(r)},
	})
	return r, nil
}

// DeleteUser removes the account; its store goes with it through the
// foreign key cascade.
func (a *Accounts) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return httperr.ErrBusiness("cannot_delete_self")
	}

	var storeID string
	s, err := a.stores.GetByOwner(ctx, id)
	switch {
	case err == nil:
		storeID = s.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if err := a.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("user_not_found")
		}
		return err
	}

	if storeID != "" {
		if err := a.cache.InvalidateStore(ctx, storeID); err != nil {
			log.Warn().Err(err).Str("store_id", storeID).Msg("cache invalidation failed")
		}
	}

	a.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
	})
	return nil
}
