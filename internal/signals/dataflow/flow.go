// Package dataflow records the syntactic entry and exit points of every
// callable. No value or type is computed; the summary is purely what the
// parser saw.
package dataflow

import (
	"paperbot-go/internal/model/code"
	"paperbot-go/internal/model/report"
)

// Summarize builds the data-flow block from the inventory. Every callable
// contributes an entry point; only callables with at least one return
// expression contribute an exit point.
func Summarize(inv *code.Inventory) report.DataFlow {
	flow := report.DataFlow{
		EntryPoints: []report.EntryPoint{},
		ExitPoints:  []report.ExitPoint{},
	}

	for _, fn := range inv.Callables() {
		params := fn.Parameters
		if params == nil {
			params = []string{}
		}
		flow.EntryPoints = append(flow.EntryPoints, report.EntryPoint{
			Function:   fn.QualifiedName(),
			Parameters: params,
		})

		if len(fn.Body.Returns) > 0 {
			flow.ExitPoints = append(flow.ExitPoints, report.ExitPoint{
				Function: fn.QualifiedName(),
				Returns:  fn.Body.Returns,
			})
		}
	}

	return flow
}
