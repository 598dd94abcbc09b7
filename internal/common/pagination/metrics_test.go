package pagination

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPage_CountsClamps(t *testing.T) {
	before := testutil.ToFloat64(PageClampsTotal.WithLabelValues("metrics_test"))

	RecordPage("metrics_test", 1, NewMetadata(10, 1, 4))
	RecordPage("metrics_test", 9, NewMetadata(10, 9, 4))

	after := testutil.ToFloat64(PageClampsTotal.WithLabelValues("metrics_test"))
	assert.Equal(t, before+1, after)
	assert.Equal(t, float64(2), testutil.ToFloat64(PagesServedTotal.WithLabelValues("metrics_test", "1-10")))
}

func TestGetPageRangeBucket(t *testing.T) {
	tests := map[int]string{1: "1-10", 10: "1-10", 11: "11-50", 51: "51-100", 101: "100+"}
	for page, want := range tests {
		assert.Equal(t, want, getPageRangeBucket(page), "page %d", page)
	}
}
