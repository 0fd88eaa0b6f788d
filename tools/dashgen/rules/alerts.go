package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// datafeeds operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "datafeeds-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "datafeeds-alerts",
					Rules: []Rule{
						{
							Alert: "DatafeedsSkippedFiles",
							Expr:  `increase(datafeeds_feed_files_skipped_total[1h]) > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Feed files arriving without a supplier mapping",
								"description": "One or more feed files were skipped in the last hour because no supplier mapping matched their file name.",
							},
						},
						{
							Alert: "DatafeedsHighWarningRate",
							Expr:  `datafeeds:export_warnings:rate1h * 3600 > 100`,
							For:   "1h",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High normalization warning rate",
								"description": "Exports are producing more than 100 normalization warnings per hour, which usually means a supplier changed their feed format.",
							},
						},
						{
							Alert: "DatafeedsSlowExport",
							Expr:  `histogram_quantile(0.95, sum(rate(datafeeds_export_duration_seconds_bucket[6h])) by (le)) > 300`,
							For:   "6h",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Export runs are slow",
								"description": "The 95th percentile export run duration has exceeded 5 minutes over the last 6 hours.",
							},
						},
					},
				},
			},
		},
	}
}
