package threads

import "Threadway/internal/pkg/consts"

// 上游洞察接口对不同指标返回两种形状：
// views 为时间序列 {name, values:[{value}]}，其余指标为聚合值 {name, total_value:{value}}。

// Metric 单个指标的原始响应
type Metric struct {
	Name       string        `json:"name"`
	TotalValue *MetricValue  `json:"total_value,omitempty"`
	Values     []MetricValue `json:"values,omitempty"`
}

// MetricValue 指标数值载体
type MetricValue struct {
	Value int64 `json:"value"`
}

type insightsEnvelope struct {
	Data []Metric `json:"data"`
}

var aggregateMetrics = map[string]struct{}{
	consts.MetricLikes:          {},
	consts.MetricReplies:        {},
	consts.MetricQuotes:         {},
	consts.MetricReposts:        {},
	consts.MetricFollowersCount: {},
}

// NormalizeMetrics 将异构的指标序列展平为固定键集的映射。
// 上游缺失的指标不补零；无法识别的指标名直接丢弃。
func NormalizeMetrics(entries []Metric) map[string]int64 {
	metrics := make(map[string]int64, len(entries))

	for _, entry := range entries {
		switch {
		case entry.Name == consts.MetricViews:
			if len(entry.Values) > 0 {
				metrics[entry.Name] = entry.Values[0].Value
			}
		default:
			if _, known := aggregateMetrics[entry.Name]; !known {
				continue
			}
			if entry.TotalValue != nil {
				metrics[entry.Name] = entry.TotalValue.Value
			}
		}
	}

	return metrics
}
