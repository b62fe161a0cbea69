package gatherer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/programme-lv/neetrunner/api"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/shape"
	"github.com/programme-lv/neetrunner/internal/tester"
)

// Sink delivers one encoded event.
type Sink interface {
	Publish(ctx context.Context, body []byte) error
}

// Publisher turns run events into api messages and hands them to a sink.
// Delivery is best-effort: failures are logged and the run continues.
type Publisher struct {
	sink    Sink
	runUuid string
	timeout time.Duration
	log     *slog.Logger

	problem string
}

func NewPublisher(sink Sink, runUuid string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{sink: sink, runUuid: runUuid, timeout: 5 * time.Second, log: log}
}

func (p *Publisher) send(msg any) {
	b, err := json.Marshal(msg)
	if err != nil {
		p.log.Error("failed to marshal event", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.sink.Publish(ctx, b); err != nil {
		p.log.Warn("failed to publish event", "error", err)
	}
}

func (p *Publisher) StartMethod(problem, method string, info registry.Solution) {
	p.problem = problem
	p.send(api.NewStartMethod(p.runUuid, problem, method, info.Class, info.Method, info.Complexity, info.Approach))
}

func (p *Publisher) FinishCase(method string, res *executor.CaseResult) {
	p.send(api.NewCaseEvent(p.runUuid, api.FinishCaseMsg, p.problem, method, CaseData(res)))
}

func (p *Publisher) FailCase(method string, res *executor.CaseResult) {
	p.send(api.NewCaseEvent(p.runUuid, api.FailCaseMsg, p.problem, method, CaseData(res)))
}

func (p *Publisher) SkipCase(method string, res *executor.CaseResult) {
	p.send(api.NewCaseEvent(p.runUuid, api.SkipCaseMsg, p.problem, method, CaseData(res)))
}

func (p *Publisher) FinishMethod(res *tester.MethodResult) {
	p.send(FinishMethod(p.runUuid, res))
}

// CaseData converts a case result to its wire form with trimmed texts.
func CaseData(res *executor.CaseResult) api.CaseData {
	var expected *string
	if res.Expected != nil {
		e := TrimToRect(*res.Expected, api.MaxCaseTextHeight, api.MaxCaseTextWidth)
		expected = &e
	}
	return api.CaseData{
		Name:           res.Name,
		Generated:      res.Generated,
		Outcome:        string(res.Outcome),
		ValidationMode: string(res.ValidationMode),
		ElapsedMs:      res.ElapsedMs(),
		PeakRssBytes:   res.PeakRSSBytes,
		InputBytes:     res.InputBytes,
		InputShape:     wireShape(res.InputShape),
		Input:          TrimToRect(res.Input, api.MaxCaseTextHeight, api.MaxCaseTextWidth),
		Actual:         TrimToRect(res.Actual, api.MaxCaseTextHeight, api.MaxCaseTextWidth),
		Expected:       expected,
		Stderr:         TrimToRect(res.Stderr, api.MaxCaseTextHeight, api.MaxCaseTextWidth),
		ExitCode:       res.ExitCode,
		Reason:         res.Reason,
	}
}

func wireShape(s *shape.Shape) *api.Shape {
	if s == nil {
		return nil
	}
	dims := map[string]int{}
	for name, v := range map[string]*int{
		"n": s.N, "m": s.M, "k": s.K, "rows": s.Rows, "cols": s.Cols,
		"V": s.V, "E": s.E, "nodes": s.Nodes, "height": s.Height, "d": s.D, "u": s.U,
	} {
		if v != nil {
			dims[name] = *v
		}
	}
	return &api.Shape{Label: s.Label(), Dims: dims, DType: s.DType}
}

func FinishMethod(runUuid string, res *tester.MethodResult) api.FinishMethod {
	msg := api.FinishMethod{
		Header:      api.NewHeader(runUuid, api.FinishMethodMsg, res.Problem, res.Method),
		Static:      apiTally(res.StaticTally()),
		Generated:   apiTally(res.GeneratedTally()),
		AvgTimeMs:   float64(res.AvgTime().Microseconds()) / 1000,
		SavedFailed: res.SavedFailed,
	}
	if res.Memory != nil {
		msg.PeakRssBytes = res.Memory.PeakBytes
		msg.P95RssBytes = res.Memory.P95Bytes
		msg.Stability = string(res.Memory.Stability)
		msg.AuxSpace = res.Memory.AuxSpace
	}
	if res.Complexity != nil {
		c, conf := res.Complexity.Complexity, res.Complexity.Confidence
		msg.Complexity, msg.Confidence = &c, &conf
	}
	return msg
}

func apiTally(t tester.Tally) api.Tally {
	return api.Tally{Passed: t.Passed, Failed: t.Failed, Skipped: t.Skipped}
}
