package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/reaandrew/findingsexport/core"
	"github.com/reaandrew/findingsexport/projector"
	"github.com/reaandrew/findingsexport/reporters"
	log "github.com/sirupsen/logrus"
)

// FindingSource lists raw findings matching criteria. Network and
// authorization failures are reported as *core.TransportError.
type FindingSource interface {
	FetchAll(ctx context.Context, criteria core.FilterCriteria) ([]core.Record, error)
}

type Result struct {
	RunId       string
	Findings    int
	Rows        int
	Destination string
	Duration    time.Duration
}

// Pipeline runs one fetch, project and report pass.
type Pipeline struct {
	RunId     string
	Source    FindingSource
	Projector projector.Projector
	Reporter  reporters.Reporter
	Criteria  core.FilterCriteria
}

func New(runId string, source FindingSource, reporter reporters.Reporter, criteria core.FilterCriteria) Pipeline {
	if len(criteria) == 0 {
		criteria = core.DefaultCriteria()
	}
	return Pipeline{
		RunId:     runId,
		Source:    source,
		Projector: projector.NewFindingProjector(),
		Reporter:  reporter,
		Criteria:  criteria,
	}
}

func (p Pipeline) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	result := Result{RunId: p.RunId, Destination: p.Reporter.Destination()}
	entry := log.WithFields(log.Fields{"run_id": p.RunId, "destination": result.Destination})

	entry.Info("Starting Security Hub findings search")
	records, err := p.Source.FetchAll(ctx, p.Criteria)
	if err != nil {
		return result, err
	}
	result.Findings = len(records)

	rows, err := p.Projector.Project(records)
	if err != nil {
		return result, fmt.Errorf("failed to project findings: %w", err)
	}
	result.Rows = len(rows)

	entry.WithField("rows", len(rows)).Info("Saving Security Hub findings")
	if err := p.Reporter.Report(ctx, core.Header, rows); err != nil {
		return result, err
	}

	result.Duration = time.Since(started)
	entry.WithField("duration", result.Duration).Info("Security Hub findings search complete")
	return result, nil
}
