// Package validate checks generated dashboard queries: every expression
// must parse as PromQL and reference only known metric names.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors fail generation, warnings
// do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation passed.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

// Dashboard validates every Prometheus query target in the dashboard
// against the known metric set.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	for _, p := range dash.Panels {
		switch {
		case p.Panel != nil:
			checkPanel(p.Panel, known, &res)
		case p.RowPanel != nil:
			for i := range p.RowPanel.Panels {
				checkPanel(&p.RowPanel.Panels[i], known, &res)
			}
		}
	}
	return res
}

func checkPanel(p *dashboard.Panel, known map[string]bool, res *Result) {
	title := ""
	if p.Title != nil {
		title = *p.Title
	}

	for _, target := range p.Targets {
		switch q := target.(type) {
		case prometheus.Dataquery:
			checkExpr(title, q.Expr, known, res)
		case *prometheus.Dataquery:
			checkExpr(title, q.Expr, known, res)
		default:
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("panel %q: target is not a Prometheus query", title))
		}
	}
}

func checkExpr(panel, expr string, known map[string]bool, res *Result) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors,
			fmt.Sprintf("panel %q: invalid PromQL %q: %v", panel, expr, err))
		return
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[metricName(vs.Name)] {
			res.Errors = append(res.Errors,
				fmt.Sprintf("panel %q: unknown metric %q", panel, vs.Name))
		}
		return nil
	})
}

// metricName strips histogram series suffixes so bucket queries resolve to
// the histogram's base metric.
func metricName(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}
