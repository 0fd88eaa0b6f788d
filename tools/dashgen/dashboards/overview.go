// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/etecplus/datafeeds/tools/dashgen/panels"
)

// BuildOverview constructs the Datafeeds Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Datafeeds Overview").
		Uid("datafeeds-overview").
		Tags([]string{"datafeeds", "shopify"}).
		Refresh("30s").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Feed intake.
	b.WithRow(dashboard.NewRowBuilder("Feeds").
		WithPanel(panels.FeedFilesRate()).
		WithPanel(panels.FeedRowsRate()).
		WithPanel(panels.SkippedFiles()))

	// Row 2: Export.
	b.WithRow(dashboard.NewRowBuilder("Export").
		WithPanel(panels.ExportDurationP95()).
		WithPanel(panels.WarningsRate()).
		WithPanel(panels.DuplicatesRemoved()).
		WithPanel(panels.TitlesRetitled()))

	// Row 3: Quoting.
	b.WithRow(dashboard.NewRowBuilder("Quoting").
		WithPanel(panels.QuoteEntries()).
		WithPanel(panels.QuoteLookups()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
