package personhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	personstore "request-tools-backend/lib/person/store"
	serviceerrors "request-tools-backend/lib/service-errors"
	"request-tools-backend/models"
	dbmodels "request-tools-backend/models/db"
)

type fakePersonStore struct {
	personstore.Provider
	directorate int64
	managers    int64
}

func (f *fakePersonStore) CountActiveDirectorate(excludeID string) (int64, error) {
	return f.directorate, nil
}

func (f *fakePersonStore) CountActiveDepartmentManagers(departmentID, excludeID string) (int64, error) {
	return f.managers, nil
}

func TestValidateCreation(t *testing.T) {
	t.Run("сотрудник без руководителя в отделе", func(t *testing.T) {
		store := &fakePersonStore{managers: 0}
		err := impl{}.validateCreation(store, dbmodels.Person{Rank: models.RankEmployee, DepartmentID: "dep-1"})
		require.Error(t, err)
		require.Equal(t, serviceerrors.HierarchyViolation, serviceerrors.KindOf(err))
	})

	t.Run("сотрудник при действующем руководителе", func(t *testing.T) {
		store := &fakePersonStore{managers: 1}
		err := impl{}.validateCreation(store, dbmodels.Person{Rank: models.RankEmployee, DepartmentID: "dep-1"})
		require.NoError(t, err)
	})

	t.Run("руководитель создается без ограничений", func(t *testing.T) {
		store := &fakePersonStore{managers: 0}
		err := impl{}.validateCreation(store, dbmodels.Person{Rank: models.RankHead, DepartmentID: "dep-1"})
		require.NoError(t, err)
	})

	t.Run("системный администратор создается без ограничений", func(t *testing.T) {
		store := &fakePersonStore{managers: 0}
		err := impl{}.validateCreation(store, dbmodels.Person{Rank: models.RankEmployee, IsSystemAdmin: true})
		require.NoError(t, err)
	})
}

func TestValidateDeactivation(t *testing.T) {
	t.Run("рядового сотрудника можно всегда", func(t *testing.T) {
		store := &fakePersonStore{}
		err := impl{}.validateDeactivation(store, dbmodels.Person{Rank: models.RankEmployee})
		require.NoError(t, err)
	})

	t.Run("последний директор", func(t *testing.T) {
		store := &fakePersonStore{directorate: 0}
		err := impl{}.validateDeactivation(store, dbmodels.Person{Rank: models.RankDirector})
		require.Error(t, err)
		require.Equal(t, serviceerrors.HierarchyViolation, serviceerrors.KindOf(err))
	})

	t.Run("директор при действующем заместителе", func(t *testing.T) {
		store := &fakePersonStore{directorate: 1}
		err := impl{}.validateDeactivation(store, dbmodels.Person{Rank: models.RankDirector})
		require.NoError(t, err)
	})

	t.Run("последний руководитель отдела", func(t *testing.T) {
		store := &fakePersonStore{managers: 0}
		err := impl{}.validateDeactivation(store, dbmodels.Person{Rank: models.RankHead, DepartmentID: "dep-1"})
		require.Error(t, err)
		require.Equal(t, serviceerrors.HierarchyViolation, serviceerrors.KindOf(err))
	})

	t.Run("руководитель при действующем заместителе", func(t *testing.T) {
		store := &fakePersonStore{managers: 1}
		err := impl{}.validateDeactivation(store, dbmodels.Person{Rank: models.RankDeputyHead, DepartmentID: "dep-1"})
		require.NoError(t, err)
	})
}
