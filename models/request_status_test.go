package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allRequestStatuses() []RequestStatus {
	return []RequestStatus{
		RStatusNew,
		RStatusPendingApproval,
		RStatusClarification,
		RStatusInProgress,
		RStatusRejected,
		RStatusCanceled,
		RStatusCompleted,
	}
}

func TestRequestStatusIsTerminal(t *testing.T) {
	terminal := map[RequestStatus]bool{
		RStatusRejected:  true,
		RStatusCanceled:  true,
		RStatusCompleted: true,
	}
	for _, status := range allRequestStatuses() {
		t.Run(string(status), func(t *testing.T) {
			require.Equal(t, terminal[status], status.IsTerminal())
		})
	}
}

func TestRequestStatusApprove(t *testing.T) {
	allowed := map[RequestStatus]bool{
		RStatusPendingApproval: true,
		RStatusClarification:   true,
	}
	for _, status := range allRequestStatuses() {
		t.Run(string(status), func(t *testing.T) {
			require.Equal(t, allowed[status], status.AllowApprove())
			require.Equal(t, allowed[status], status.AllowReject())
		})
	}
}

func TestRequestStatusDiscussion(t *testing.T) {
	allowed := map[RequestStatus]bool{
		RStatusNew:             true,
		RStatusPendingApproval: true,
		RStatusInProgress:      true,
	}
	for _, status := range allRequestStatuses() {
		t.Run(string(status), func(t *testing.T) {
			require.Equal(t, allowed[status], status.AllowDiscussion())
		})
	}
}

func TestRequestStatusCancel(t *testing.T) {
	for _, status := range allRequestStatuses() {
		t.Run(string(status), func(t *testing.T) {
			require.Equal(t, !status.IsTerminal(), status.AllowCancel())
		})
	}
	require.False(t, RStatusCompleted.AllowCancel())
}

func TestRequestStatusDelete(t *testing.T) {
	for _, status := range allRequestStatuses() {
		t.Run(string(status), func(t *testing.T) {
			require.Equal(t, status == RStatusPendingApproval, status.AllowDelete())
			require.Equal(t, status == RStatusPendingApproval, status.AllowFullEdit())
		})
	}
}

func TestRequestStatusApproveTargets(t *testing.T) {
	targets := RStatusPendingApproval.ApproveTargets()
	require.Equal(t, []RequestStatus{RStatusNew, RStatusInProgress}, targets)
}
