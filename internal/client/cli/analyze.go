package cli

import (
	"context"
	"fmt"
	"path/filepath"
)

// Analyze reads the file at path and submits it for verification, then
// renders the dashboard for the outcome. Validation and error mapping
// happen inside the controller; whatever comes back is presentation-ready.
func (a *App) Analyze(ctx context.Context, path string) error {
	content, err := readFile(path)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	result := a.ctrl.SubmitImage(ctx, filepath.Base(path), content)
	a.renderDashboard(result)
	return nil
}
