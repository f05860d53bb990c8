package models

// Badge represents a single badge found in a README.
type Badge struct {
	AltText    string `json:"alt_text"`
	ImageURL   string `json:"image_url"`
	TargetURL  string `json:"target_url"`
	HostImage  string `json:"host_image"`
	HostTarget string `json:"host_target"`
}

// CodeBlock is a fenced code block lifted out of a README.
type CodeBlock struct {
	Language string   `json:"language"`
	Body     string   `json:"body"`
	Section  []string `json:"section,omitempty"` // enclosing headings, outermost first
}

// ReadmeContent is everything fetched for one repository.
// Only Text is required; the remaining fields are best-effort.
type ReadmeContent struct {
	Text   string      `json:"text"`
	Path   string      `json:"path"`
	Branch string      `json:"branch"`
	Blocks []CodeBlock `json:"blocks,omitempty"`
	Badges []Badge     `json:"badges,omitempty"`

	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	License     string   `json:"license,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Paths       []string `json:"paths,omitempty"`
}

// Findings is the outcome of analyzing a README.
type Findings struct {
	Purpose         string   `json:"purpose"`
	Stack           []string `json:"stack"`
	RunInstructions []string `json:"run_instructions"`
	Risks           []string `json:"risks"`
}

// Report is what gets rendered for one explained repository.
type Report struct {
	Repository string   `json:"repository"`
	Branch     string   `json:"branch,omitempty"`
	Findings   Findings `json:"findings"`
}
