package cli

import "fmt"

// Report raises the report flag and prints the forensic report.
func (a *App) Report() {
	a.ctrl.ShowReport()
	a.renderReport()
}

// Back returns from the report to the dashboard.
func (a *App) Back() {
	a.ctrl.HideReport()
	a.renderDashboard(a.ctrl.Result())
}

// Reset discards the current file and result, keeping the session.
func (a *App) Reset() {
	a.ctrl.ResetToUpload()
	fmt.Fprintln(a.out, "Ready for a new upload.")
}
