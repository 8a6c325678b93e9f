package analytics

import "github.com/yeremiapane/restaurant-console/models"

type Step struct {
	Status models.OrderStatus `json:"status"`
	Label  string             `json:"label"`
}

// PipelineSteps are the stages a customer sees while an order is open.
var PipelineSteps = []Step{
	{models.StatusPending, "Placed"},
	{models.StatusConfirmed, "Accepted"},
	{models.StatusPreparing, "Preparing"},
	{models.StatusReady, "Ready"},
	{models.StatusServed, "Served"},
}

// PipelineStep is the index of status in PipelineSteps, or 0 when the
// status is not shown in the pipeline.
func PipelineStep(status models.OrderStatus) int {
	for i, s := range PipelineSteps {
		if s.Status == status {
			return i
		}
	}
	return 0
}
