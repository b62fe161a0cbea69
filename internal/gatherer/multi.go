// Package gatherer holds sinks for run events and helpers shared by them.
package gatherer

import (
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/tester"
)

// Multi forwards every event to each gatherer in order.
type Multi []tester.Gatherer

func (m Multi) StartMethod(problem, method string, info registry.Solution) {
	for _, g := range m {
		g.StartMethod(problem, method, info)
	}
}

func (m Multi) FinishCase(method string, res *executor.CaseResult) {
	for _, g := range m {
		g.FinishCase(method, res)
	}
}

func (m Multi) FailCase(method string, res *executor.CaseResult) {
	for _, g := range m {
		g.FailCase(method, res)
	}
}

func (m Multi) SkipCase(method string, res *executor.CaseResult) {
	for _, g := range m {
		g.SkipCase(method, res)
	}
}

func (m Multi) FinishMethod(res *tester.MethodResult) {
	for _, g := range m {
		g.FinishMethod(res)
	}
}
