package globalreads

import (
	"fmt"
	"go/token"
	"sync"

	"golang.org/x/tools/go/analysis"
)

// Reporter collects findings of a single pass.
type Reporter struct {
	mu      sync.Mutex
	reports []Report
}

// Report represents a single finding.
type Report struct {
	Phase   ReportPhase
	Rule    Rule
	Pos     token.Pos
	Message string
}

// ReportPhase marks the analysis stage where a report was generated.
type ReportPhase int

const (
	reportPhaseInvalid ReportPhase = iota
	ReportCollect                  // tracked functions collection
	ReportScan                     // variable uses scanning
)

func (p ReportPhase) String() string {
	switch p {
	case ReportCollect:
		return "collect"
	case ReportScan:
		return "scan"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// ReporterPhase binds a Reporter to a fixed phase.
type ReporterPhase struct {
	parent *Reporter
	phase  ReportPhase
}

// Phase returns a reporter that sets the given phase for all reports produced through it.
func (r *Reporter) Phase(p ReportPhase) *ReporterPhase {
	return &ReporterPhase{parent: r, phase: p}
}

// Report adds a new record to the reporter.
func (r *Reporter) Report(rep Report) {
	r.mu.Lock()
	r.reports = append(r.reports, rep)
	r.mu.Unlock()
}

// Report records a rule violation under the bound phase.
// An empty message is replaced with the rule description.
func (rp *ReporterPhase) Report(rule Rule, message string, pos token.Pos) {
	if message == "" {
		message = rule.Description()
	}
	rp.parent.Report(Report{
		Phase:   rp.phase,
		Rule:    rule,
		Message: message,
		Pos:     pos,
	})
}

// Reports returns a snapshot of all collected records.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Flush turns collected records into pass diagnostics.
func (r *Reporter) Flush(pass *analysis.Pass) {
	for _, rep := range r.Reports() {
		pass.Report(analysis.Diagnostic{
			Pos:      rep.Pos,
			Category: rep.Phase.String(),
			Message:  rep.Rule.String() + ": " + rep.Message,
		})
	}
}
