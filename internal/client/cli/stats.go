package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const requestsMetric = "pgdesk_api_requests_total"

// Stats prints how many backend requests were made this session, grouped
// by endpoint and outcome.
func (a *App) Stats(context.Context) error {
	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		if mf.GetName() != requestsMetric {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			lines = append(lines, fmt.Sprintf("%-6s %-32s %-10s %d",
				labels["method"], labels["endpoint"], labels["outcome"], int(m.GetCounter().GetValue())))
		}
	}

	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No requests yet.")
		return nil
	}
	sort.Strings(lines)
	fmt.Fprintln(a.out, strings.Join(lines, "\n"))
	return nil
}
