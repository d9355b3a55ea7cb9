package output

// CheckSummary counts the results of a check run.
type CheckSummary struct {
	FilesChecked    int `json:"files_checked"`
	FilesWithIssues int `json:"files_with_issues"`
	FilesFailed     int `json:"files_failed"`
	TotalIssues     int `json:"total_issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
	Hints           int `json:"hints"`
}

// CheckWarning is one reported warning.
type CheckWarning struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Text     string `json:"text"`
}

// CheckFileResult holds the warnings of one file, or the error that stopped
// it from being checked.
type CheckFileResult struct {
	Path     string         `json:"path"`
	Error    string         `json:"error,omitempty"`
	Warnings []CheckWarning `json:"warnings"`
}

// CheckOutput is the JSON document written by the check command.
type CheckOutput struct {
	Summary CheckSummary      `json:"summary"`
	Files   []CheckFileResult `json:"files"`
}
