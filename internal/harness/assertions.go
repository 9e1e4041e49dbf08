package harness

import (
	"fmt"
	"strings"
)

// checkAssertions evaluates every scenario assertion against the recorded
// trace, appending a failure per assertion that does not hold.
func checkAssertions(result *Result, scenario *Scenario) {
	for i, a := range scenario.Assertions {
		switch a.Type {
		case AssertTraceContains:
			checkTraceContains(result, i, &a)
		case AssertTraceCount:
			checkTraceCount(result, i, &a)
		case AssertTraceOrder:
			checkTraceOrder(result, i, &a)
		case AssertFinalVerdict:
			checkFinalVerdict(result, i, &a)
		}
	}
}

// matches reports whether an event satisfies the assertion's set fields.
func matches(event TraceEvent, a *Assertion) bool {
	if a.Observable != "" && event.Observable != a.Observable {
		return false
	}
	if a.Context != "" && event.Context != a.Context {
		return false
	}
	if a.Verdict != "" && event.Verdict != a.Verdict {
		return false
	}
	return true
}

func describe(a *Assertion) string {
	var parts []string
	if a.Observable != "" {
		parts = append(parts, "observable="+a.Observable)
	}
	if a.Context != "" {
		parts = append(parts, "context="+a.Context)
	}
	if a.Verdict != "" {
		parts = append(parts, "verdict="+a.Verdict)
	}
	if len(parts) == 0 {
		return "any event"
	}
	return strings.Join(parts, " ")
}

func checkTraceContains(result *Result, index int, a *Assertion) {
	for _, event := range result.Trace {
		if matches(event, a) {
			return
		}
	}
	result.AddError(fmt.Sprintf("assertions[%d]: trace contains no event with %s", index, describe(a)))
}

func checkTraceCount(result *Result, index int, a *Assertion) {
	count := 0
	for _, event := range result.Trace {
		if matches(event, a) {
			count++
		}
	}
	if count != a.Count {
		result.AddError(fmt.Sprintf("assertions[%d]: %d events with %s, expected %d", index, count, describe(a), a.Count))
	}
}

// checkTraceOrder verifies the named observables appear as a subsequence
// of the trace, in order.
func checkTraceOrder(result *Result, index int, a *Assertion) {
	next := 0
	for _, event := range result.Trace {
		if next < len(a.Observables) && event.Observable == a.Observables[next] {
			next++
		}
	}
	if next != len(a.Observables) {
		result.AddError(fmt.Sprintf(
			"assertions[%d]: trace order %v not satisfied, matched %d of %d",
			index, a.Observables, next, len(a.Observables)))
	}
}

func checkFinalVerdict(result *Result, index int, a *Assertion) {
	if len(result.Trace) == 0 {
		result.AddError(fmt.Sprintf("assertions[%d]: final_verdict on an empty trace", index))
		return
	}
	last := result.Trace[len(result.Trace)-1]
	if last.Verdict != a.Verdict {
		result.AddError(fmt.Sprintf("assertions[%d]: final verdict is %s, expected %s", index, last.Verdict, a.Verdict))
	}
}
