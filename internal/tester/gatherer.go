package tester

import (
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/registry"
)

// Gatherer receives progress events while methods run. Calls for one
// method arrive in case order from a single goroutine.
type Gatherer interface {
	StartMethod(problem, method string, info registry.Solution)

	FinishCase(method string, res *executor.CaseResult)
	FailCase(method string, res *executor.CaseResult)
	SkipCase(method string, res *executor.CaseResult)

	FinishMethod(res *MethodResult)
}

type nopGatherer struct{}

func (nopGatherer) StartMethod(string, string, registry.Solution) {}
func (nopGatherer) FinishCase(string, *executor.CaseResult)       {}
func (nopGatherer) FailCase(string, *executor.CaseResult)         {}
func (nopGatherer) SkipCase(string, *executor.CaseResult)         {}
func (nopGatherer) FinishMethod(*MethodResult)                    {}
