package service

// PeopleQuery параметры поиска людей
type PeopleQuery struct {
	Keywords  string
	Titles    []string
	Locations []string
	Page      int
	PerPage   int
}

// OrganizationsQuery параметры поиска компаний
type OrganizationsQuery struct {
	Name      string
	Locations []string
	Page      int
	PerPage   int
}
