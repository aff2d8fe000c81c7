package dto

type DashboardStats struct {
	CountUser           int64 `json:"countUser"`
	CountReportPending  int64 `json:"countReportPending"`
	CountReportApproved int64 `json:"countReportApproved"`
	CountReportRejected int64 `json:"countReportRejected"`
	CountReportSolved   int64 `json:"countReportSolved"`
}
