package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskStatusTransitions(t *testing.T) {
	cases := []struct {
		status        TaskStatus
		allowAssign   bool
		allowPause    bool
		allowResume   bool
		allowComplete bool
	}{
		{TStatusNew, true, false, false, false},
		{TStatusInProgress, true, true, false, true},
		{TStatusPaused, true, false, true, true},
		{TStatusDone, false, false, false, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			require.Equal(t, tc.allowAssign, tc.status.AllowAssign())
			require.Equal(t, tc.allowPause, tc.status.AllowPause())
			require.Equal(t, tc.allowResume, tc.status.AllowResume())
			require.Equal(t, tc.allowComplete, tc.status.AllowComplete())
		})
	}
}
