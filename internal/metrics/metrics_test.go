package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, FeedFilesTotal)
	assert.NotNil(t, FeedFilesSkippedTotal)
	assert.NotNil(t, FeedRowsTotal)
	assert.NotNil(t, ExportDuration)
	assert.NotNil(t, ExportDuplicatesRemovedTotal)
	assert.NotNil(t, ExportTitlesRetitledTotal)
	assert.NotNil(t, ExportWarningsTotal)
	assert.NotNil(t, QuoteEntriesTotal)
	assert.NotNil(t, QuoteLookupsTotal)
}
