package service

import (
	"context"
	"encoding/json"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ProspectSource --dir=. --output=./mocks --outpkg=mocks

// ProspectSource определяет интерфейс поставщика данных о потенциальных клиентах (Apollo и т.п.).
// Параметры поиска доменные, ответ поставщика возвращается без преобразования.
type ProspectSource interface {
	// SearchPeople ищет людей по ключевым словам, должностям и локациям
	SearchPeople(ctx context.Context, query PeopleQuery) (json.RawMessage, error)
	// SearchOrganizations ищет компании по названию и локациям
	SearchOrganizations(ctx context.Context, query OrganizationsQuery) (json.RawMessage, error)
}
