package httpapi

import (
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/shestoi/prospect-agent/internal/api/http/apierror"
	"github.com/shestoi/prospect-agent/internal/service"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

// Handler содержит HTTP-обработчики поиска потенциальных клиентов
type Handler struct {
	prospects *service.ProspectService
	logger    *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(prospects *service.ProspectService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		prospects: prospects,
		logger:    logger.Named("http"),
	}
}

// SearchPeople обрабатывает GET /prospects/people/search.
// Ответ поставщика отдаётся клиенту без преобразования.
func (h *Handler) SearchPeople(w http.ResponseWriter, r *http.Request) error {
	b := newQueryBinder(r)
	query := service.PeopleQuery{
		Keywords:  b.String("q_keywords"),
		Titles:    b.Strings("person_titles"),
		Locations: b.Strings("person_locations"),
		Page:      b.IntInRange("page", defaultPage, 1, math.MaxInt32),
		PerPage:   b.IntInRange("per_page", defaultPerPage, 1, maxPerPage),
	}
	if err := b.Err(); err != nil {
		return err
	}

	result, err := h.prospects.SearchPeople(r.Context(), query)
	if err != nil {
		return err
	}
	apierror.WriteJSON(w, http.StatusOK, result)
	return nil
}

// SearchOrganizations обрабатывает GET /prospects/organizations/search
func (h *Handler) SearchOrganizations(w http.ResponseWriter, r *http.Request) error {
	b := newQueryBinder(r)
	query := service.OrganizationsQuery{
		Name:      b.String("q_organization_name"),
		Locations: b.Strings("organization_locations"),
		Page:      b.IntInRange("page", defaultPage, 1, math.MaxInt32),
		PerPage:   b.IntInRange("per_page", defaultPerPage, 1, maxPerPage),
	}
	if err := b.Err(); err != nil {
		return err
	}

	result, err := h.prospects.SearchOrganizations(r.Context(), query)
	if err != nil {
		return err
	}
	apierror.WriteJSON(w, http.StatusOK, result)
	return nil
}
