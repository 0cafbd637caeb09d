package requesthandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"
)

func TestRouteInitialStatus(t *testing.T) {
	cases := []struct {
		name     string
		author   dbmodels.Person
		expected models.RequestStatus
	}{
		{"сотрудник", dbmodels.Person{Rank: models.RankEmployee}, models.RStatusPendingApproval},
		{"руководитель отдела", dbmodels.Person{Rank: models.RankHead}, models.RStatusNew},
		{"заместитель руководителя", dbmodels.Person{Rank: models.RankDeputyHead}, models.RStatusNew},
		{"заместитель директора", dbmodels.Person{Rank: models.RankDeputyDirector}, models.RStatusNew},
		{"директор", dbmodels.Person{Rank: models.RankDirector}, models.RStatusNew},
		{"админ-сотрудник", dbmodels.Person{IsSystemAdmin: true, Rank: models.RankEmployee}, models.RStatusNew},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, RouteInitialStatus(tc.author))
		})
	}
}

func TestFanOutDepartments(t *testing.T) {
	t.Run("новая заявка", func(t *testing.T) {
		result := FanOutDepartments(dbmodels.Request{}, []string{"dep-a", "dep-b"})
		require.Equal(t, []string{"dep-a", "dep-b"}, result)
	})

	t.Run("дубли в списке", func(t *testing.T) {
		result := FanOutDepartments(dbmodels.Request{}, []string{"dep-a", "dep-a", "dep-b"})
		require.Equal(t, []string{"dep-a", "dep-b"}, result)
	})

	t.Run("отдел уже в заявке", func(t *testing.T) {
		rec := dbmodels.Request{Tasks: []dbmodels.DepartmentTask{
			{DepartmentID: "dep-a"},
		}}
		result := FanOutDepartments(rec, []string{"dep-a", "dep-b"})
		require.Equal(t, []string{"dep-b"}, result)
	})

	t.Run("пустые идентификаторы отбрасываются", func(t *testing.T) {
		result := FanOutDepartments(dbmodels.Request{}, []string{"", "dep-a"})
		require.Equal(t, []string{"dep-a"}, result)
	})

	t.Run("все уже привязаны", func(t *testing.T) {
		rec := dbmodels.Request{Tasks: []dbmodels.DepartmentTask{
			{DepartmentID: "dep-a"},
			{DepartmentID: "dep-b"},
		}}
		result := FanOutDepartments(rec, []string{"dep-a", "dep-b"})
		require.Empty(t, result)
	})
}
