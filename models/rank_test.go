package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	cases := []struct {
		rank          Rank
		isDirectorate bool
		isDeptManager bool
	}{
		{RankDirector, true, false},
		{RankDeputyDirector, true, false},
		{RankHead, false, true},
		{RankDeputyHead, false, true},
		{RankEmployee, false, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.rank), func(t *testing.T) {
			require.True(t, tc.rank.IsValid())
			require.Equal(t, tc.isDirectorate, tc.rank.IsDirectorate())
			require.Equal(t, tc.isDeptManager, tc.rank.IsDepartmentManager())
			require.Equal(t, tc.isDirectorate || tc.isDeptManager, tc.rank.IsManager())
		})
	}
	require.False(t, Rank("Стажер").IsValid())
}
