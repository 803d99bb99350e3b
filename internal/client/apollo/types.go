package apollo

// PeopleSearchRequest тело запроса mixed_people/search.
// Поля совпадают с query параметрами GET /prospects/people/search.
type PeopleSearchRequest struct {
	QKeywords       string   `json:"q_keywords,omitempty"`
	PersonTitles    []string `json:"person_titles,omitempty"`
	PersonLocations []string `json:"person_locations,omitempty"`
	Page            int      `json:"page,omitempty"`
	PerPage         int      `json:"per_page,omitempty"`
}

// OrganizationsSearchRequest тело запроса mixed_companies/search
type OrganizationsSearchRequest struct {
	QOrganizationName     string   `json:"q_organization_name,omitempty"`
	OrganizationLocations []string `json:"organization_locations,omitempty"`
	Page                  int      `json:"page,omitempty"`
	PerPage               int      `json:"per_page,omitempty"`
}

// AuthHealthResponse ответ auth/health
type AuthHealthResponse struct {
	Healthy    bool `json:"healthy"`
	IsLoggedIn bool `json:"is_logged_in"`
}
