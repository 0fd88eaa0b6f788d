package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// FeedFilesRate returns a timeseries panel showing feed files processed
// per hour, by supplier.
func FeedFilesRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Feed Files / h").
		Description("Rate of feed files processed per hour, by supplier").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(datafeeds_feed_files_total[1h])) by (supplier) * 3600`,
			"{{supplier}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		Tooltip(MultiTooltip()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FeedRowsRate returns a timeseries panel showing feed rows read per
// minute, by supplier.
func FeedRowsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Feed Rows / min").
		Description("Rate of feed rows read per minute, by supplier").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(datafeeds_feed_rows_total[5m])) by (supplier) * 60`,
			"{{supplier}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		Tooltip(MultiTooltip()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SkippedFiles returns a stat panel showing feed files skipped over the
// last 24 hours for lacking a supplier mapping.
func SkippedFiles() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Skipped Files (24h)").
		Description("Feed files skipped in the last 24 hours because no supplier mapping matched").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`increase(datafeeds_feed_files_skipped_total[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
