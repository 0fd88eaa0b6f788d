package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ExportDurationP95 returns a timeseries panel showing the p95 export run
// duration.
func ExportDurationP95() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Export Duration (p95)").
		Description("95th percentile full export run duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(datafeeds_export_duration_seconds_bucket[1h])) by (le))`,
			"p95",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// DuplicatesRemoved returns a stat panel showing duplicate SKU rows removed
// over the last 24 hours.
func DuplicatesRemoved() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Duplicates Removed (24h)").
		Description("Duplicate SKU rows removed from exports in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`increase(datafeeds_export_duplicates_removed_total[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// TitlesRetitled returns a stat panel showing rows renamed to resolve title
// collisions over the last 24 hours.
func TitlesRetitled() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Titles Renamed (24h)").
		Description("Rows renamed to resolve duplicate titles in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`increase(datafeeds_export_titles_retitled_total[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// WarningsRate returns a timeseries panel showing normalization warnings per
// hour.
func WarningsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Warnings / h").
		Description("Rate of normalization warnings per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`datafeeds:export_warnings:rate1h * 3600`, "warnings/h", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(10, 100)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
