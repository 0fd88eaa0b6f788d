package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// QuoteEntries returns a stat panel showing rows indexed into quoting
// datasets over the last 24 hours.
func QuoteEntries() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Quote Entries (24h)").
		Description("Rows indexed into quoting datasets in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`increase(datafeeds_quote_entries_total[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// QuoteLookups returns a timeseries panel showing SKU lookups per minute.
func QuoteLookups() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("SKU Lookups / min").
		Description("Rate of SKU quote lookups per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`datafeeds:quote_lookups:rate5m * 60`, "lookups/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
