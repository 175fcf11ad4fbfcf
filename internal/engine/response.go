package engine

import "fmt"

// Code is the tri-state outcome attached to every response.
type Code string

const (
	// OK is success; Results carries the action payload.
	OK Code = "OK"
	// FAIL is an environment failure (I/O, injection). The caller may retry.
	FAIL Code = "FAIL"
	// BUG is a contract violation by the caller.
	BUG Code = "BUG"
)

// Command is the wire form of a request.
type Command struct {
	Action string   `json:"action"`
	Args   []string `json:"args"`
}

// Response is the wire form of a result. Results is never nil.
type Response struct {
	Code    Code     `json:"code"`
	Results []string `json:"results"`
}

func ok(results ...string) Response {
	if results == nil {
		results = []string{}
	}
	return Response{Code: OK, Results: results}
}

func fail(results ...string) Response {
	if results == nil {
		results = []string{}
	}
	return Response{Code: FAIL, Results: results}
}

func bug(results ...string) Response {
	if results == nil {
		results = []string{}
	}
	return Response{Code: BUG, Results: results}
}

func bugf(format string, args ...any) Response {
	return bug(fmt.Sprintf(format, args...))
}
