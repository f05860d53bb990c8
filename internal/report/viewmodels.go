package report

import (
	"strings"

	"github.com/UnitVectorY-Labs/repoexplain/internal/analyzer"
	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
)

// ReportViewModel is what the text template sees.
type ReportViewModel struct {
	Repository      string
	Branch          string
	Purpose         string
	Stack           []string
	RunInstructions []string
	Risks           []string
}

func newReportViewModel(r *models.Report) ReportViewModel {
	vm := ReportViewModel{
		Repository:      r.Repository,
		Branch:          r.Branch,
		Purpose:         strings.TrimSpace(r.Findings.Purpose),
		Stack:           r.Findings.Stack,
		RunInstructions: r.Findings.RunInstructions,
		Risks:           r.Findings.Risks,
	}
	if vm.Purpose == "" {
		vm.Purpose = analyzer.UnknownPurpose
	}
	return vm
}
