package dbmodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"request-tools-backend/models"
)

func TestPersonIsAutoApproved(t *testing.T) {
	cases := []struct {
		name     string
		person   Person
		expected bool
	}{
		{"сотрудник", Person{Rank: models.RankEmployee}, false},
		{"руководитель отдела", Person{Rank: models.RankHead}, true},
		{"заместитель руководителя", Person{Rank: models.RankDeputyHead}, true},
		{"директор", Person{Rank: models.RankDirector}, true},
		{"админ без должности", Person{IsSystemAdmin: true, Rank: models.RankEmployee}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.person.IsAutoApproved())
		})
	}
}

func TestPersonCanManageTask(t *testing.T) {
	depA := "dep-a"
	depB := "dep-b"
	cases := []struct {
		name     string
		person   Person
		expected bool
	}{
		{"руководитель своего отдела", Person{Rank: models.RankHead, DepartmentID: depA}, true},
		{"руководитель чужого отдела", Person{Rank: models.RankHead, DepartmentID: depB}, false},
		{"директор из другого отдела", Person{Rank: models.RankDirector, DepartmentID: depB}, true},
		{"админ", Person{IsSystemAdmin: true, Rank: models.RankEmployee, DepartmentID: depB}, true},
		{"сотрудник своего отдела", Person{Rank: models.RankEmployee, DepartmentID: depA}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.person.CanManageTask(depA))
		})
	}
}

func TestPersonValidate(t *testing.T) {
	person := Person{
		UserName:     "ivanov",
		FullName:     "Иванов Иван",
		DepartmentID: "dep-a",
		Rank:         models.RankEmployee,
	}
	require.NoError(t, person.Validate())

	t.Run("без логина", func(t *testing.T) {
		bad := person
		bad.UserName = ""
		require.Error(t, bad.Validate())
	})
	t.Run("недопустимая должность", func(t *testing.T) {
		bad := person
		bad.Rank = "Стажер"
		require.Error(t, bad.Validate())
	})
}
