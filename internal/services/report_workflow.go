package services

import "github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"

// reportTransitions lists the triage edges an admin may take. Re-applying the
// current status is always allowed so status updates stay idempotent.
var reportTransitions = map[models.ReportStatus][]models.ReportStatus{
	models.StatusPending:  {models.StatusApproved, models.StatusRejected},
	models.StatusApproved: {models.StatusSolved, models.StatusRejected},
	models.StatusRejected: {models.StatusPending},
	models.StatusSolved:   {},
}

// ReportWorkflow decides whether a status change is permitted.
type ReportWorkflow struct {
	// Override restores unrestricted any-to-any transitions.
	Override bool
}

func (w ReportWorkflow) CanTransition(from, to models.ReportStatus) bool {
	if !to.Valid() {
		return false
	}
	if w.Override || from == to {
		return true
	}
	for _, next := range reportTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Next returns the statuses reachable from from, excluding from itself.
func (w ReportWorkflow) Next(from models.ReportStatus) []models.ReportStatus {
	if w.Override {
		next := make([]models.ReportStatus, 0, len(models.ReportStatuses)-1)
		for _, s := range models.ReportStatuses {
			if s != from {
				next = append(next, s)
			}
		}
		return next
	}
	return append([]models.ReportStatus(nil), reportTransitions[from]...)
}
