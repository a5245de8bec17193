package models

// Status tags the lifecycle phase of an AnalysisResult.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Verdict is the decoded outcome of a completed analysis.
type Verdict struct {
	IsFake          bool
	Confidence      float64
	MetadataStatus  string
	MetadataDetails map[string]string
	Inconsistencies []string
	ImageHash       string
}

// AnalysisResult is the outcome of submitting one image. Verdict is set
// only when Status is StatusComplete; Message only when StatusError.
type AnalysisResult struct {
	Status  Status
	Verdict *Verdict
	Message string
}

// Loading reports whether a submission is still pending.
func (r *AnalysisResult) Loading() bool {
	return r != nil && r.Status == StatusLoading
}

// Complete reports whether the result carries a verdict.
func (r *AnalysisResult) Complete() bool {
	return r != nil && r.Status == StatusComplete
}

// Failed reports whether the submission ended in an error.
func (r *AnalysisResult) Failed() bool {
	return r != nil && r.Status == StatusError
}
