package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
	"github.com/lcalzada-xor/riskmap/internal/core/ports"
	"github.com/lcalzada-xor/riskmap/internal/core/services/mitigation"
	"github.com/lcalzada-xor/riskmap/internal/core/services/risk"
	"github.com/lcalzada-xor/riskmap/internal/core/services/scoring"
	"github.com/lcalzada-xor/riskmap/internal/telemetry"
)

// Options are the tunables consumed at construction. The core never parses
// configuration itself; the caller passes this typed object in.
type Options struct {
	RiskAppetite  float64 // CVSS acceptance threshold, default 5.0
	Contamination float64 // baseline anomaly model knob, default 0.1
	HourlyRate    float64 // labor rate for cost estimates, default 150
	Workers       int     // scoring fan-out, default 4
}

func (o Options) withDefaults() Options {
	if o.RiskAppetite <= 0 {
		o.RiskAppetite = 5.0
	}
	if o.Contamination <= 0 {
		o.Contamination = 0.1
	}
	if o.HourlyRate <= 0 {
		o.HourlyRate = 150
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// Pipeline is the batch transformation from scan + vulnerability input to a
// complete assessment document. All intermediate state is owned per run;
// a Pipeline is safe for concurrent Run calls.
type Pipeline struct {
	opts Options

	threats   *scoring.ThreatDetector
	anomalies *scoring.AnomalyDetector
	baseline  *scoring.BaselineModel
	predictor *scoring.RiskPredictor
	evaluator *risk.Evaluator
	engine    *mitigation.Engine
	planner   *mitigation.Planner

	store ports.AssessmentStore // optional
	sink  ports.ProgressSink    // optional

	baselineMu sync.Mutex
	tracer     trace.Tracer
}

// New builds the pipeline. store and sink may be nil; catalog nil selects
// the built-in strategy catalog.
func New(opts Options, catalog ports.StrategyCatalog, store ports.AssessmentStore, sink ports.ProgressSink) *Pipeline {
	opts = opts.withDefaults()
	baseline := scoring.NewBaselineModel(opts.Contamination)

	return &Pipeline{
		opts:      opts,
		threats:   scoring.NewThreatDetector(nil),
		anomalies: scoring.NewAnomalyDetector(baseline),
		baseline:  baseline,
		predictor: scoring.NewRiskPredictor(),
		evaluator: risk.NewEvaluator(opts.RiskAppetite),
		engine:    mitigation.NewEngine(catalog, opts.HourlyRate),
		planner:   mitigation.NewPlanner(),
		store:     store,
		sink:      sink,
		tracer:    otel.Tracer("riskmap/pipeline"),
	}
}

// EstablishBaseline fits the anomaly baseline from normal-network scans.
// Until called, anomaly scoring uses the threshold heuristic.
func (p *Pipeline) EstablishBaseline(scans []domain.ScanResult) {
	var vectors [][]float64
	for _, scan := range scans {
		for _, host := range scan.Hosts {
			vectors = append(vectors, scoring.ExtractAnomalyFeatures(host))
		}
	}

	p.baselineMu.Lock()
	defer p.baselineMu.Unlock()
	p.baseline.Fit(vectors)
	slog.Info("anomaly baseline established", "hosts", len(vectors))
}

// Run executes the full pipeline over one scan document. Degraded input is
// absorbed via defaults; an empty vulnerability list yields an empty but
// valid document. The only error sources are context cancellation and
// persistence.
func (p *Pipeline) Run(ctx context.Context, scan domain.ScanResult, vulns []domain.Vulnerability) (*domain.AssessmentDocument, error) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "pipeline.run")
	defer span.End()

	doc := &domain.AssessmentDocument{
		ID:          uuid.New().String(),
		Target:      scan.Target,
		GeneratedAt: start.UTC(),
		GeneratedBy: "riskmap assessment pipeline",
	}
	span.SetAttributes(
		attribute.String("assessment.id", doc.ID),
		attribute.Int("assessment.hosts", len(scan.Hosts)),
		attribute.Int("assessment.vulnerabilities", len(vulns)),
	)

	// Findings: per-host scoring is embarrassingly parallel.
	p.publish(doc.ID, "scoring", "", len(scan.Hosts))
	doc.Threats, doc.Anomalies = p.scoreHosts(ctx, scan)
	telemetry.FindingsTotal.WithLabelValues("threat").Add(float64(len(doc.Threats)))
	telemetry.FindingsTotal.WithLabelValues("anomaly").Add(float64(len(doc.Anomalies)))

	// Risk lifecycle: context -> criteria -> identify -> analyze -> evaluate.
	lifecycle := risk.NewLifecycle()
	doc.Context = lifecycle.EstablishContext()
	doc.Criteria = lifecycle.DefineRiskCriteria(p.opts.RiskAppetite)

	p.publish(doc.ID, "identify", "", len(vulns))
	risks := lifecycle.Identify(scan, vulns)
	telemetry.RisksIdentified.Add(float64(len(risks)))

	risks, err := lifecycle.Analyze(risks)
	if err != nil {
		return nil, fmt.Errorf("analyze risks: %w", err)
	}
	risks, err = lifecycle.Evaluate(risks)
	if err != nil {
		return nil, fmt.Errorf("evaluate risks: %w", err)
	}
	p.publish(doc.ID, "evaluated", "", len(risks))

	// Prediction consumes the identified risk set plus stored history.
	historicalMean, hasHistory := p.history(ctx)
	doc.Prediction = p.predictor.Predict(risks, historicalMean, hasHistory)

	// Evaluation and treatment ordering. The evaluator's acceptance
	// decision is authoritative for treatment selection.
	doc.Evaluation = p.evaluator.EvaluateAgainstCriteria(risks)
	doc.Quant = p.evaluator.Quantitative(risks)
	doc.Risks = p.evaluator.Prioritize(risks)
	telemetry.RisksTreatable.Add(float64(doc.Evaluation.Treatable))

	// Mitigation: only unacceptable risks get plans, in priority order.
	treatable := p.evaluator.Prioritize(doc.Evaluation.Unacceptable)
	p.publish(doc.ID, "mitigation", "", len(treatable))
	doc.Plans = p.engine.GeneratePlans(treatable)

	p.publish(doc.ID, "planning", "", doc.Plans.Total())
	doc.Program = p.planner.BuildProgram(doc.Plans, start)

	if p.store != nil {
		if err := p.store.SaveAssessment(ctx, doc); err != nil {
			telemetry.AssessmentsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("persist assessment: %w", err)
		}
	}

	telemetry.AssessmentsTotal.WithLabelValues("ok").Inc()
	telemetry.PipelineDuration.Observe(time.Since(start).Seconds())
	p.publish(doc.ID, "complete", "", len(risks))

	slog.Info("assessment complete",
		"assessment", doc.ID,
		"hosts", len(scan.Hosts),
		"risks", len(risks),
		"treatable", doc.Evaluation.Treatable,
		"duration", time.Since(start))
	return doc, nil
}

// scoreHosts fans host scoring out over a fixed worker pool. Workers write
// to index-addressed slots, so no locking is needed; the merged output is
// ordered by host address for determinism.
func (p *Pipeline) scoreHosts(ctx context.Context, scan domain.ScanResult) ([]domain.Threat, []domain.Anomaly) {
	_, span := p.tracer.Start(ctx, "pipeline.score_hosts")
	defer span.End()

	addrs := make([]string, 0, len(scan.Hosts))
	for addr := range scan.Hosts {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	type hostResult struct {
		threat    *domain.Threat
		anomalies []domain.Anomaly
	}
	results := make([]hostResult, len(addrs))

	var wg sync.WaitGroup
	jobs := make(chan int)

	for w := 0; w < p.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				addr := addrs[i]
				host := scan.Hosts[addr]
				if t, ok := p.threats.DetectHost(addr, host); ok {
					results[i].threat = &t
				}
				single := domain.ScanResult{Hosts: map[string]domain.ScanHost{addr: host}}
				results[i].anomalies = p.anomalies.Detect(single)
			}
		}()
	}

	for i := range addrs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var threats []domain.Threat
	var anomalies []domain.Anomaly
	for _, r := range results {
		if r.threat != nil {
			threats = append(threats, *r.threat)
		}
		anomalies = append(anomalies, r.anomalies...)
	}
	return threats, anomalies
}

func (p *Pipeline) history(ctx context.Context) (float64, bool) {
	if p.store == nil {
		return 0, false
	}
	mean, ok, err := p.store.HistoricalMeanCVSS(ctx)
	if err != nil {
		slog.Warn("historical scores unavailable", "err", err)
		return 0, false
	}
	return mean, ok
}

func (p *Pipeline) publish(id, stage, detail string, count int) {
	if p.sink == nil {
		return
	}
	p.sink.Publish(ports.ProgressEvent{
		AssessmentID: id,
		Stage:        stage,
		Detail:       detail,
		Count:        count,
	})
}
