package threads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMetrics_TwoShapes(t *testing.T) {
	entries := []Metric{
		{Name: "views", Values: []MetricValue{{Value: 10}, {Value: 3}}},
		{Name: "likes", TotalValue: &MetricValue{Value: 5}},
	}

	metrics := NormalizeMetrics(entries)

	assert.Equal(t, map[string]int64{"views": 10, "likes": 5}, metrics)
	assert.NotContains(t, metrics, "replies")
	assert.NotContains(t, metrics, "quotes")
	assert.NotContains(t, metrics, "reposts")
	assert.NotContains(t, metrics, "followers_count")
}

func TestNormalizeMetrics_AllAggregates(t *testing.T) {
	entries := []Metric{
		{Name: "likes", TotalValue: &MetricValue{Value: 1}},
		{Name: "replies", TotalValue: &MetricValue{Value: 2}},
		{Name: "quotes", TotalValue: &MetricValue{Value: 3}},
		{Name: "reposts", TotalValue: &MetricValue{Value: 4}},
		{Name: "followers_count", TotalValue: &MetricValue{Value: 500}},
	}

	metrics := NormalizeMetrics(entries)

	assert.Len(t, metrics, 5)
	assert.Equal(t, int64(500), metrics["followers_count"])
}

func TestNormalizeMetrics_UnknownMetricDropped(t *testing.T) {
	entries := []Metric{
		{Name: "likes", TotalValue: &MetricValue{Value: 5}},
		{Name: "brand_new_metric", TotalValue: &MetricValue{Value: 42}},
	}

	metrics := NormalizeMetrics(entries)

	assert.Equal(t, map[string]int64{"likes": 5}, metrics)
}

func TestNormalizeMetrics_MissingValueSkipped(t *testing.T) {
	// views 无数据点、likes 缺 total_value 时不补零
	entries := []Metric{
		{Name: "views"},
		{Name: "likes"},
	}

	metrics := NormalizeMetrics(entries)

	assert.Empty(t, metrics)
}

func TestNormalizeMetrics_Empty(t *testing.T) {
	assert.Empty(t, NormalizeMetrics(nil))
}
