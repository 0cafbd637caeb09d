package dbmodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"request-tools-backend/models"
)

func TestRequestHasDepartment(t *testing.T) {
	rec := Request{
		Tasks: []DepartmentTask{
			{DepartmentID: "dep-a"},
			{DepartmentID: "dep-b"},
		},
	}
	require.True(t, rec.HasDepartment("dep-a"))
	require.False(t, rec.HasDepartment("dep-c"))
}

func TestRequestAllTasksDone(t *testing.T) {
	t.Run("без задач не закрывается", func(t *testing.T) {
		require.False(t, Request{}.AllTasksDone())
	})
	t.Run("есть невыполненная", func(t *testing.T) {
		rec := Request{
			Tasks: []DepartmentTask{
				{Status: models.TStatusDone},
				{Status: models.TStatusInProgress},
			},
		}
		require.False(t, rec.AllTasksDone())
	})
	t.Run("все выполнены", func(t *testing.T) {
		rec := Request{
			Tasks: []DepartmentTask{
				{Status: models.TStatusDone},
				{Status: models.TStatusDone},
			},
		}
		require.True(t, rec.AllTasksDone())
	})
}
