package service

import (
	"context"
	"strings"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/storage"
	apperrors "github.com/spec-kit/inventory-service/pkg/util/errorutil"
)

// TeamService exposes team workflows. Teams are the root scope: no team
// filter applies and nothing here deletes them.
type TeamService struct {
	teams storage.TeamStore
}

// NewTeamService constructs the service.
func NewTeamService(teams storage.TeamStore) *TeamService {
	return &TeamService{teams: teams}
}

// ListTeams returns every team.
func (s *TeamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return s.teams.ListTeams(ctx)
}

// GetTeam fetches one team.
func (s *TeamService) GetTeam(ctx context.Context, id int64) (*domain.Team, error) {
	return s.teams.GetTeam(ctx, id)
}

// CreateTeam validates and inserts a team.
func (s *TeamService) CreateTeam(ctx context.Context, name, description string) (*domain.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("nome da equipe é obrigatório", nil)
	}

	team := &domain.Team{Name: strings.TrimSpace(name), Description: description}
	if err := s.teams.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}
