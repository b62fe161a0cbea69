package natsgath_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/programme-lv/neetrunner/api"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/gatherer/natsgath"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	msgs []published
	err  error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.msgs = append(f.msgs, published{subject, data})
	return f.err
}

func TestPublishesToSubject(t *testing.T) {
	conn := &fakeConn{}
	g := natsgath.NewWithConn(conn, "run-7", "neetrunner.events", nil)

	g.StartMethod("two_sum", "brute_force", registry.Solution{Class: "Solution", Method: "twoSumBrute", Approach: "nested loops"})
	g.FailCase("brute_force", &executor.CaseResult{Name: "two_sum_2", Outcome: executor.Failed, Actual: "[1, 1]"})
	g.FinishMethod(&tester.MethodResult{Problem: "two_sum", Method: "brute_force"})

	require.Len(t, conn.msgs, 3)
	for _, m := range conn.msgs {
		assert.Equal(t, "neetrunner.events", m.subject)
	}

	var start api.StartMethod
	require.NoError(t, json.Unmarshal(conn.msgs[0].data, &start))
	assert.Equal(t, api.StartMethodMsg, start.MsgType)
	assert.Equal(t, "run-7", start.RunUuid)
	assert.Equal(t, "twoSumBrute", start.FuncName)
	assert.Equal(t, "nested loops", start.Approach)

	var fail api.CaseEvent
	require.NoError(t, json.Unmarshal(conn.msgs[1].data, &fail))
	assert.Equal(t, api.FailCaseMsg, fail.MsgType)
	assert.Equal(t, "two_sum", fail.Problem)
	assert.Equal(t, "brute_force", fail.Method)
	assert.Equal(t, "[1, 1]", fail.Case.Actual)

	var finish api.FinishMethod
	require.NoError(t, json.Unmarshal(conn.msgs[2].data, &finish))
	assert.Equal(t, api.FinishMethodMsg, finish.MsgType)
}

func TestPublishErrorsAreNotFatal(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	g := natsgath.NewWithConn(conn, "run-7", "s", nil)

	assert.NotPanics(t, func() {
		g.StartMethod("p", "default", registry.Solution{})
		g.SkipCase("default", &executor.CaseResult{Name: "p_1", Outcome: executor.Skipped})
	})
	assert.Len(t, conn.msgs, 2)
}
