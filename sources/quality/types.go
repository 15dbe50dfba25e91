package quality

const (
	SeverityCritical = "critical"
	SeverityMajor    = "major"
	SeverityMinor    = "minor"
)

const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelFair      = "fair"
	LevelPoor      = "poor"
)

type Issue struct {
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

type Report struct {
	Score       float64  `json:"score"`
	Level       string   `json:"level"`
	Issues      []Issue  `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

func (r *Report) HasBlockingIssues() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityCritical || issue.Severity == SeverityMajor {
			return true
		}
	}
	return false
}
