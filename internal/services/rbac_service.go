package services

import (
	"context"
	"time"

	"gstbill/internal/caching"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
)

const permissionCacheTTL = 15 * time.Minute

// RBACService resolves the capability set for a user once per request
// window. Capability names follow the "module:action" convention, for
// example "invoices:create".
type RBACService interface {
	HasPermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error)
	PermissionsForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

type rbacService struct {
	permissionRepo repositories.PermissionRepository
	cacheSvc       caching.CacheService
}

func NewRBACService(permissionRepo repositories.PermissionRepository, cacheSvc caching.CacheService) RBACService {
	return &rbacService{
		permissionRepo: permissionRepo,
		cacheSvc:       cacheSvc,
	}
}

func (s *rbacService) PermissionsForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetPermissions(ctx, userID); err == nil && cached != nil {
			return cached, nil
		}
	}

	names, err := s.permissionRepo.NamesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		_ = s.cacheSvc.SetPermissions(ctx, userID, names, permissionCacheTTL)
	}
	return names, nil
}

func (s *rbacService) HasPermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error) {
	names, err := s.PermissionsForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == permission {
			return true, nil
		}
	}
	return false, nil
}

func (s *rbacService) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	if s.cacheSvc == nil {
		return nil
	}
	return s.cacheSvc.DeletePermissions(ctx, userID)
}
