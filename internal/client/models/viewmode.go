package models

// ViewMode is the derived screen to render. It is computed from session,
// file and report-flag state and never stored.
type ViewMode int

const (
	// ViewAnonymousGate covers both the login and register screens.
	ViewAnonymousGate ViewMode = iota
	ViewUpload
	ViewDashboard
	ViewReport
)

func (m ViewMode) String() string {
	switch m {
	case ViewAnonymousGate:
		return "anonymous"
	case ViewUpload:
		return "upload"
	case ViewDashboard:
		return "dashboard"
	case ViewReport:
		return "report"
	default:
		return "unknown"
	}
}
