package listctl

import (
	"context"
	"strings"

	"github.com/user/healthai/pkg/api"
)

// MetricBackend is the slice of the API the metrics resource needs.
type MetricBackend interface {
	Metrics(ctx context.Context, metricType api.MetricType) ([]*api.Metric, error)
	CreateMetric(ctx context.Context, input api.MetricInput) (*api.Metric, error)
	DeleteMetric(ctx context.Context, id string) error
}

// MetricResource adapts the metrics API to the generic controller. The
// filter value is a metric type ("" for all).
type MetricResource struct {
	backend MetricBackend
}

// Metrics returns a controller over the metrics list.
func Metrics(backend MetricBackend) *Controller[*api.Metric, api.MetricInput] {
	return New[*api.Metric, api.MetricInput](&MetricResource{backend: backend})
}

func (r *MetricResource) List(ctx context.Context, filter string) ([]*api.Metric, error) {
	return r.backend.Metrics(ctx, api.MetricType(filter))
}

func (r *MetricResource) Create(ctx context.Context, input api.MetricInput) error {
	_, err := r.backend.CreateMetric(ctx, input)
	return err
}

func (r *MetricResource) Remove(ctx context.Context, id string) error {
	return r.backend.DeleteMetric(ctx, id)
}

func (r *MetricResource) Validate(input api.MetricInput) error {
	if input.MetricType == "" {
		return &api.Error{Kind: api.Validation, Detail: "metric type is required"}
	}
	if strings.TrimSpace(input.Value) == "" {
		return &api.Error{Kind: api.Validation, Detail: "value is required"}
	}
	if strings.TrimSpace(input.Unit) == "" {
		return &api.Error{Kind: api.Validation, Detail: "unit is required"}
	}
	return nil
}

func (r *MetricResource) ID(record *api.Metric) string { return record.ID }

var _ Resource[*api.Metric, api.MetricInput] = (*MetricResource)(nil)
