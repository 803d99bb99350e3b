package apollo

import (
	"context"
	"encoding/json"

	"github.com/shestoi/prospect-agent/internal/service"
)

// ProspectSourceAdapter адаптирует Client к интерфейсу service.ProspectSource.
// service слой не зависит от формата запросов Apollo API.
type ProspectSourceAdapter struct {
	client *Client
}

// NewProspectSourceAdapter создаёт новый адаптер для Apollo клиента
func NewProspectSourceAdapter(client *Client) service.ProspectSource {
	return &ProspectSourceAdapter{client: client}
}

// SearchPeople реализует service.ProspectSource
func (a *ProspectSourceAdapter) SearchPeople(ctx context.Context, query service.PeopleQuery) (json.RawMessage, error) {
	return a.client.PeopleSearch(ctx, PeopleSearchRequest{
		QKeywords:       query.Keywords,
		PersonTitles:    query.Titles,
		PersonLocations: query.Locations,
		Page:            query.Page,
		PerPage:         query.PerPage,
	})
}

// SearchOrganizations реализует service.ProspectSource
func (a *ProspectSourceAdapter) SearchOrganizations(ctx context.Context, query service.OrganizationsQuery) (json.RawMessage, error) {
	return a.client.OrganizationsSearch(ctx, OrganizationsSearchRequest{
		QOrganizationName:     query.Name,
		OrganizationLocations: query.Locations,
		Page:                  query.Page,
		PerPage:               query.PerPage,
	})
}
