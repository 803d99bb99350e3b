package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/shestoi/prospect-agent/platform/observability"
)

// ProspectService содержит бизнес-логику поиска потенциальных клиентов.
// Зависит от интерфейса ProspectSource, а не от конкретного HTTP клиента.
type ProspectService struct {
	source ProspectSource
	logger *zap.Logger
}

// NewProspectService создаёт новый экземпляр ProspectService
func NewProspectService(source ProspectSource, logger *zap.Logger) *ProspectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProspectService{
		source: source,
		logger: logger.Named("prospect"),
	}
}

// SearchPeople ищет людей через ProspectSource
func (s *ProspectService) SearchPeople(ctx context.Context, query PeopleQuery) (json.RawMessage, error) {
	log := observability.L(ctx, s.logger)
	log.Info("Searching people",
		zap.String("keywords", query.Keywords),
		zap.Strings("titles", query.Titles),
		zap.Strings("locations", query.Locations),
		zap.Int("page", query.Page),
		zap.Int("per_page", query.PerPage),
	)

	result, err := s.source.SearchPeople(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("people search: %w", err)
	}

	log.Info("People search completed", zap.Int("bytes", len(result)))
	return result, nil
}

// SearchOrganizations ищет компании через ProspectSource
func (s *ProspectService) SearchOrganizations(ctx context.Context, query OrganizationsQuery) (json.RawMessage, error) {
	log := observability.L(ctx, s.logger)
	log.Info("Searching organizations",
		zap.String("name", query.Name),
		zap.Strings("locations", query.Locations),
		zap.Int("page", query.Page),
		zap.Int("per_page", query.PerPage),
	)

	result, err := s.source.SearchOrganizations(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("organizations search: %w", err)
	}

	log.Info("Organizations search completed", zap.Int("bytes", len(result)))
	return result, nil
}
