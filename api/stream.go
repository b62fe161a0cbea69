package api

import "time"

// MsgType is a message type for streamed run events
type MsgType string

// Streaming message type constants
const (
	StartMethodMsg  MsgType = "method_start"
	FinishCaseMsg   MsgType = "case_finish"
	FailCaseMsg     MsgType = "case_fail"
	SkipCaseMsg     MsgType = "case_skip"
	FinishMethodMsg MsgType = "method_finish"
)

// Case text size constraints for streaming
const (
	MaxCaseTextHeight = 40
	MaxCaseTextWidth  = 80
)

// Header is the common header for all streamed messages
type Header struct {
	RunUuid string  `json:"run_uuid"`
	MsgType MsgType `json:"msg_type"`
	Problem string  `json:"problem"`
	Method  string  `json:"method"`
}

// Shape mirrors the named input dimensions of a case
type Shape struct {
	Label string         `json:"label"`
	Dims  map[string]int `json:"dims,omitempty"`
	DType string         `json:"dtype,omitempty"`
}

// CaseData describes one executed or skipped case
type CaseData struct {
	Name           string  `json:"name"`
	Generated      bool    `json:"generated"`
	Outcome        string  `json:"outcome"`
	ValidationMode string  `json:"validation_mode"`
	ElapsedMs      float64 `json:"elapsed_ms"`
	PeakRssBytes   *int64  `json:"peak_rss_bytes"`
	InputBytes     int     `json:"input_bytes"`
	InputShape     *Shape  `json:"input_shape"`
	Input          string  `json:"in"`
	Actual         string  `json:"out"`
	Expected       *string `json:"expected"`
	Stderr         string  `json:"err"`
	ExitCode       int     `json:"exit"`
	Reason         string  `json:"reason,omitempty"`
}

// StartMethod message sent before the first case of a method
type StartMethod struct {
	Header
	Class       string `json:"class"`
	FuncName    string `json:"func_name"`
	Complexity  string `json:"complexity"`
	Approach    string `json:"approach"`
	StartedTime string `json:"started_time"`
}

// CaseEvent message sent when a case passes, fails or is skipped
type CaseEvent struct {
	Header
	Case CaseData `json:"case"`
}

// Tally counts case outcomes
type Tally struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// FinishMethod message sent after the last case of a method
type FinishMethod struct {
	Header
	Static       Tally    `json:"static"`
	Generated    Tally    `json:"generated"`
	AvgTimeMs    float64  `json:"avg_time_ms"`
	PeakRssBytes *int64   `json:"peak_rss_bytes"`
	P95RssBytes  *int64   `json:"p95_rss_bytes"`
	Stability    string   `json:"stability"`
	AuxSpace     string   `json:"aux_space"`
	Complexity   *string  `json:"complexity"`
	Confidence   *float64 `json:"confidence"`
	SavedFailed  []string `json:"saved_failed"`
}

// Helper function to create a header
func NewHeader(runUuid string, msgType MsgType, problem, method string) Header {
	return Header{
		RunUuid: runUuid,
		MsgType: msgType,
		Problem: problem,
		Method:  method,
	}
}

func NewStartMethod(runUuid, problem, method, class, funcName, complexity, approach string) StartMethod {
	return StartMethod{
		Header:      NewHeader(runUuid, StartMethodMsg, problem, method),
		Class:       class,
		FuncName:    funcName,
		Complexity:  complexity,
		Approach:    approach,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewCaseEvent(runUuid string, msgType MsgType, problem, method string, data CaseData) CaseEvent {
	return CaseEvent{
		Header: NewHeader(runUuid, msgType, problem, method),
		Case:   data,
	}
}
