package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/utils"
)

// actorClaims is the JWT payload. The selected scope travels inside the
// token, so narrowing to a scope means issuing a replacement token.
type actorClaims struct {
	Name     string      `json:"name"`
	Tier     domain.Tier `json:"tier"`
	TenantID string      `json:"tenant_id,omitempty"`
	StoreID  string      `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	adminRepo    portsrepo.AdminRepositoryWithTx
	employeeRepo portsrepo.EmployeeRepositoryFacade
	tenantRepo   portsrepo.TenantRepositoryFacade
	signingKey   []byte
	tokenTTL     time.Duration
}

// NewAuthService creates a new auth service with the provided dependencies
func NewAuthService(
	adminRepo portsrepo.AdminRepositoryWithTx,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	tenantRepo portsrepo.TenantRepositoryFacade,
	signingKey string,
	tokenTTL time.Duration,
) portssvc.AuthSvcFacade {
	return &authService{
		adminRepo:    adminRepo,
		employeeRepo: employeeRepo,
		tenantRepo:   tenantRepo,
		signingKey:   []byte(signingKey),
		tokenTTL:     tokenTTL,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) issueToken(actor domain.Actor) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := actorClaims{
		Name:     actor.Name,
		Tier:     actor.Tier,
		TenantID: actor.TenantID,
		StoreID:  actor.StoreID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Login verifies credentials for the given tier and issues a token
func (s *authService) Login(ctx context.Context, tier domain.Tier, tenantSlug, loginID, password string) (string, time.Time, *domain.Actor, error) {
	var actor domain.Actor

	switch tier {
	case domain.TierEmployee:
		tenant, err := s.tenantRepo.FindTenantBySlug(ctx, tenantSlug)
		if err != nil || !tenant.IsActive {
			return "", time.Time{}, nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		employee, err := s.employeeRepo.FindEmployeeByLoginID(ctx, tenant.TenantID, loginID)
		if err != nil || !utils.CheckPasswordHash(password, employee.PasswordHash) {
			return "", time.Time{}, nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		actor = domain.Actor{
			ID:       employee.EmployeeID,
			Name:     employee.Name,
			Tier:     domain.TierEmployee,
			TenantID: tenant.TenantID,
		}

	case domain.TierSystem, domain.TierTenant, domain.TierStore:
		admin, err := s.adminRepo.FindAdminByLoginID(ctx, tier, loginID)
		if err != nil || !admin.IsActive || !utils.CheckPasswordHash(password, admin.PasswordHash) {
			// One message for every failure mode; no account enumeration.
			return "", time.Time{}, nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		actor = domain.Actor{
			ID:   admin.AdminID,
			Name: admin.Name,
			Tier: admin.Tier,
		}
		if tier == domain.TierSystem {
			actor.TenantID = ""
		}

	default:
		return "", time.Time{}, nil, apperrors.NewValidationFailedError("unknown tier")
	}

	// Admins with exactly one grant skip scope selection.
	if actor.Tier == domain.TierTenant || actor.Tier == domain.TierStore {
		grants, err := s.adminRepo.ListGrantsByAdmin(ctx, actor.ID)
		if err != nil {
			return "", time.Time{}, nil, err
		}
		if len(grants) == 1 {
			actor.TenantID = grants[0].Scope.TenantID
			actor.StoreID = grants[0].Scope.StoreID
		}
	}

	token, expiresAt, err := s.issueToken(actor)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("actor_id", actor.ID))
		return "", time.Time{}, nil, err
	}

	s.LogInfo(ctx, "Login succeeded",
		slog.String("actor_id", actor.ID),
		slog.String("tier", string(actor.Tier)))
	return token, expiresAt, &actor, nil
}

// SelectScope narrows a logged-in admin to one of its granted scopes
func (s *authService) SelectScope(ctx context.Context, actor domain.Actor, scope domain.Scope) (string, time.Time, *domain.Actor, error) {
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore); err != nil {
		return "", time.Time{}, nil, err
	}
	if err := scope.Validate(); err != nil {
		return "", time.Time{}, nil, apperrors.NewValidationFailedError(err.Error())
	}
	if scope.Tier != actor.Tier {
		return "", time.Time{}, nil, fmt.Errorf("%w: scope tier does not match your tier", apperrors.ErrForbidden)
	}
	if _, err := s.adminRepo.FindGrant(ctx, actor.ID, scope); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, nil, fmt.Errorf("%w: no grant in this scope", apperrors.ErrForbidden)
		}
		return "", time.Time{}, nil, err
	}

	narrowed := actor
	narrowed.TenantID = scope.TenantID
	narrowed.StoreID = scope.StoreID

	token, expiresAt, err := s.issueToken(narrowed)
	if err != nil {
		return "", time.Time{}, nil, err
	}

	s.LogInfo(ctx, "Scope selected",
		slog.String("actor_id", actor.ID),
		slog.String("scope", scope.Key()))
	return token, expiresAt, &narrowed, nil
}

// ListSelectableScopes returns the grants the admin can select between
func (s *authService) ListSelectableScopes(ctx context.Context, actor domain.Actor) ([]domain.AdminGrant, error) {
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore); err != nil {
		return nil, err
	}
	grants, err := s.adminRepo.ListGrantsByAdmin(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if grants == nil {
		grants = []domain.AdminGrant{}
	}
	return grants, nil
}

// ChangePassword replaces the authenticated account's password after
// confirming the current one
func (s *authService) ChangePassword(ctx context.Context, actor domain.Actor, currentPassword, newPassword string) error {
	hash := func(current string) (string, error) {
		if !utils.CheckPasswordHash(currentPassword, current) {
			return "", fmt.Errorf("%w: password confirmation failed", apperrors.ErrForbidden)
		}
		return utils.HashPassword(newPassword)
	}

	if actor.Tier == domain.TierEmployee {
		employee, err := s.employeeRepo.FindEmployeeByID(ctx, actor.ID)
		if err != nil {
			return err
		}
		newHash, err := hash(employee.PasswordHash)
		if err != nil {
			return err
		}
		employee.PasswordHash = newHash
		employee.LastUpdatedAt = time.Now()
		employee.LastUpdatedBy = actor.ID
		if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
			return err
		}
	} else {
		admin, err := s.adminRepo.FindAdminByID(ctx, actor.ID)
		if err != nil {
			return err
		}
		newHash, err := hash(admin.PasswordHash)
		if err != nil {
			return err
		}
		admin.PasswordHash = newHash
		admin.LastUpdatedAt = time.Now()
		admin.LastUpdatedBy = actor.ID
		if err := s.adminRepo.UpdateAdmin(ctx, *admin); err != nil {
			return err
		}
	}

	s.LogInfo(ctx, "Password changed", slog.String("actor_id", actor.ID))
	return nil
}

// ParseToken validates a token string and reconstructs the actor
func (s *authService) ParseToken(ctx context.Context, tokenString string) (*domain.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &actorClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrForbidden)
	}
	claims, ok := token.Claims.(*actorClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", apperrors.ErrForbidden)
	}
	return &domain.Actor{
		ID:       claims.Subject,
		Name:     claims.Name,
		Tier:     claims.Tier,
		TenantID: claims.TenantID,
		StoreID:  claims.StoreID,
	}, nil
}

// Bootstrap creates the very first system administrator when none exists
func (s *authService) Bootstrap(ctx context.Context, loginID, name, email, password string) (*domain.Administrator, error) {
	scope := domain.SystemScope()
	var created *domain.Administrator

	err := s.adminRepo.InScopeTx(ctx, scope, func(ctx context.Context) error {
		if owner, err := s.adminRepo.FindOwner(ctx, scope); err == nil && owner != nil {
			return apperrors.NewConflictError("system is already bootstrapped")
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		hash, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		now := time.Now()
		admin := domain.Administrator{
			AdminID:      uuid.NewString(),
			LoginID:      loginID,
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Tier:         domain.TierSystem,
			IsActive:     true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     "bootstrap",
				LastUpdatedAt: now,
				LastUpdatedBy: "bootstrap",
			},
		}
		if err := s.adminRepo.SaveAdmin(ctx, admin); err != nil {
			return err
		}
		if err := s.adminRepo.SaveGrant(ctx, domain.AdminGrant{
			AdminID:         admin.AdminID,
			Scope:           scope,
			IsOwner:         true,
			CanManageAdmins: true,
			GrantedAt:       now,
		}); err != nil {
			return err
		}
		created = &admin
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Bootstrap failed", slog.String("login_id", loginID))
		return nil, err
	}

	s.LogInfo(ctx, "System bootstrapped", slog.String("admin_id", created.AdminID))
	return created, nil
}
