package cli

import (
	"fmt"
	"sort"

	"github.com/pixvera/imageproof/internal/client/models"
)

func (a *App) renderDashboard(result *models.AnalysisResult) {
	switch {
	case result == nil || result.Status == models.StatusLoading:
		fmt.Fprintln(a.out, "Analyzing image for tampering and metadata verification...")

	case result.Status == models.StatusError:
		fmt.Fprintln(a.out, "Verification Error:", result.Message)

	case result.Status == models.StatusComplete:
		v := result.Verdict
		score := int(v.Confidence*100 + 0.5)
		if v.IsFake {
			fmt.Fprintf(a.out, "Tampering Confidence: %d%% - Tampering Detected\n", score)
		} else {
			fmt.Fprintf(a.out, "Authenticity Confidence: %d%% - Authentic\n", score)
		}
		fmt.Fprintln(a.out, "Type 'report' for the full forensic report.")
	}
}

// renderReport prints the printable forensic report. When the result is
// not complete it falls back to the loading/error rendition instead.
func (a *App) renderReport() {
	result := a.ctrl.Result()

	if !result.Complete() {
		if result == nil || result.Status == models.StatusLoading {
			fmt.Fprintln(a.out, "Generating forensic report...")
		} else {
			msg := result.Message
			if msg == "" {
				msg = "Unable to generate report"
			}
			fmt.Fprintln(a.out, "Report Error:", msg)
		}
		return
	}

	v := result.Verdict
	score := int(v.Confidence*100 + 0.5)
	level := "Low"
	switch {
	case score >= 90:
		level = "High"
	case score >= 70:
		level = "Moderate"
	}

	fmt.Fprintln(a.out, "=== Forensic Analysis Report ===")
	fmt.Fprintln(a.out, "File:", a.ctrl.FileName())

	hash := v.ImageHash
	if hash == "" {
		hash = "No hash record"
	}
	fmt.Fprintln(a.out, "Hash value:", hash)

	if v.IsFake {
		fmt.Fprintf(a.out, "Tampering Detection: Fake Detected (%d%%, %s confidence)\n", score, level)
	} else {
		fmt.Fprintf(a.out, "Tampering Detection: Authentic Image (%d%%, %s confidence)\n", score, level)
	}

	status := v.MetadataStatus
	if status == "" {
		status = "Not verified"
	}
	fmt.Fprintln(a.out, "Metadata Status:", status)

	if len(v.MetadataDetails) > 0 {
		fmt.Fprintln(a.out, "Extracted Metadata:")
		keys := make([]string, 0, len(v.MetadataDetails))
		for k := range v.MetadataDetails {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(a.out, "  %s: %s\n", k, v.MetadataDetails[k])
		}
	}

	if len(v.Inconsistencies) > 0 {
		fmt.Fprintln(a.out, "Inconsistencies Found:")
		for _, item := range v.Inconsistencies {
			fmt.Fprintln(a.out, "  -", item)
		}
	}
}
