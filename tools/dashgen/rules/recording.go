package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "datafeeds-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "datafeeds-recording",
					Rules: []Rule{
						{
							Record: "datafeeds:feed_rows:rate5m",
							Expr:   `sum(rate(datafeeds_feed_rows_total[5m])) by (supplier)`,
						},
						{
							Record: "datafeeds:export_warnings:rate1h",
							Expr:   `rate(datafeeds_export_warnings_total[1h])`,
						},
						{
							Record: "datafeeds:quote_lookups:rate5m",
							Expr:   `rate(datafeeds_quote_lookups_total[5m])`,
						},
					},
				},
			},
		},
	}
}
