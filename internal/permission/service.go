package permission

import (
	"context"
	"log/slog"

	"github.com/alphios72/NewsinsightUI/internal"
)

// Service resolves the role x table access matrix. Lookups always hit the
// store: caching resolved access across requests would go stale the moment
// the admin flips a flag.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ResolveAccess decides view/edit rights. ADMIN implicitly has both on every
// table regardless of stored rows; a missing row means no access of either kind.
func (s *Service) ResolveAccess(ctx context.Context, role internal.Role, tableName string) (Access, error) {
	if role == internal.RoleAdmin {
		return Access{CanView: true, CanEdit: true}, nil
	}

	perm, err := s.repo.Get(ctx, role, tableName)
	if err != nil {
		s.logger.Error("failed to resolve access", "role", role, "table", tableName, "error", err)
		return Access{}, err
	}
	if perm == nil {
		return Access{}, nil
	}

	return Access{CanView: perm.CanView, CanEdit: perm.CanEdit}, nil
}

// SetPermission upserts the (role, table) row, touching only the named flag.
func (s *Service) SetPermission(ctx context.Context, role internal.Role, tableName string, kind Kind, value bool) error {
	if !kind.Valid() {
		return internal.NewValidationError("kind must be view or edit", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.Upsert(ctx, role, tableName, kind, value); err != nil {
		s.logger.Error("failed to set permission", "role", role, "table", tableName, "kind", kind, "error", err)
		return err
	}

	s.logger.Info("permission updated", "role", role, "table", tableName, "kind", kind, "value", value)
	return nil
}

// ListPermissions returns every stored row for the role.
func (s *Service) ListPermissions(ctx context.Context, role internal.Role) ([]*Permission, error) {
	return s.repo.List(ctx, role)
}
