package service

import (
	"context"
	"errors"
	"strings"

	"github.com/greenledger/ecotrack/internal/errs"
	"github.com/greenledger/ecotrack/internal/model"
	"github.com/greenledger/ecotrack/internal/repository"
	"github.com/greenledger/ecotrack/internal/session"
)

// AddActionInput carries the fields for a new catalog entry and its
// coefficient.
type AddActionInput struct {
	Name             string
	Description      string
	Category         string
	UnitOfMeasure    string
	CoefficientValue float64
	EmissionUnit     string
}

// AdminService implements catalog management and user administration.
// Every operation here sits behind the admin guard in the middleware;
// the self-modification rule is enforced again at this layer so the
// invariant does not depend on transport wiring.
type AdminService struct {
	users    UserStore
	catalog  CatalogStore
	sessions session.Store
}

// NewAdminService constructs an AdminService with its dependencies.
func NewAdminService(users UserStore, catalog CatalogStore, sessions session.Store) *AdminService {
	return &AdminService{users: users, catalog: catalog, sessions: sessions}
}

// AddAction creates a coefficient and the action referencing it in one
// transactional step and returns the new action id.
func (s *AdminService) AddAction(ctx context.Context, in AddActionInput) (uint64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.UnitOfMeasure = strings.TrimSpace(in.UnitOfMeasure)
	if in.Name == "" || in.Category == "" || in.UnitOfMeasure == "" || in.CoefficientValue <= 0 {
		return 0, errs.Validation("name, category, unit of measure and a positive coefficient value are required")
	}
	unit := strings.TrimSpace(in.EmissionUnit)
	if unit == "" {
		unit = defaultEmissionUnit
	}
	a := model.Action{
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		UnitOfMeasure: in.UnitOfMeasure,
	}
	return s.catalog.CreateWithCoefficient(ctx, a, in.CoefficientValue, unit)
}

// UpdateCoefficient sets a new emissions factor on an existing
// coefficient.  Re-submitting the current value is an idempotent success;
// an unknown id is not found.
func (s *AdminService) UpdateCoefficient(ctx context.Context, coefficientID uint64, value float64) error {
	if coefficientID == 0 || value <= 0 {
		return errs.Validation("coefficient id and a positive value are required")
	}
	if err := s.catalog.UpdateCoefficient(ctx, coefficientID, value); err != nil {
		if errors.Is(err, repository.ErrCoefficientNotFound) {
			return errs.NotFound("coefficient not found")
		}
		return err
	}
	return nil
}

// SearchUsers returns public projections of users whose username or email
// contains the query.  Queries shorter than two characters are rejected to
// keep the match selective.
func (s *AdminService) SearchUsers(ctx context.Context, query string) ([]Profile, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, errs.Validation("search query must be at least 2 characters")
	}
	users, err := s.users.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(users))
	for _, u := range users {
		out = append(out, profileOf(u))
	}
	return out, nil
}

// SetUserBlocked blocks or unblocks a user.  Admins can never modify their
// own account through this path.  On success every active session of the
// target is invalidated, so a block takes effect immediately rather than
// on the target's next request.
func (s *AdminService) SetUserBlocked(ctx context.Context, adminID, targetID uint64, blocked bool) error {
	if adminID == targetID {
		return errs.Forbidden("administrators cannot block their own account")
	}
	if err := s.users.SetBlocked(ctx, targetID, blocked); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errs.NotFound("user not found")
		}
		return err
	}
	return s.invalidateSessions(ctx, targetID)
}

// SetUserRole grants or revokes admin rights.  The same self-modification
// and session-invalidation rules apply as for blocking.
func (s *AdminService) SetUserRole(ctx context.Context, adminID, targetID uint64, admin bool) error {
	if adminID == targetID {
		return errs.Forbidden("administrators cannot change their own role")
	}
	if err := s.users.SetAdmin(ctx, targetID, admin); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errs.NotFound("user not found")
		}
		return err
	}
	return s.invalidateSessions(ctx, targetID)
}

// invalidateSessions is the single point through which every
// authorization-relevant mutation destroys a user's sessions.
func (s *AdminService) invalidateSessions(ctx context.Context, userID uint64) error {
	if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return errs.Internal("user updated but sessions could not be invalidated")
	}
	return nil
}
