package health

import (
	"context"
	"testing"
)

func TestCheckAll_Empty(t *testing.T) {
	r := NewRegistry()

	healthy, statuses := r.CheckAll(context.Background())
	if !healthy {
		t.Error("empty registry should report healthy")
	}
	if len(statuses) != 0 {
		t.Errorf("statuses = %v, want none", statuses)
	}
}

func TestCheckAll_AggregatesFailures(t *testing.T) {
	r := NewRegistry()
	r.Register("store", func(ctx context.Context) Status {
		return Status{Name: "store", Healthy: true}
	})
	r.Register("archive", func(ctx context.Context) Status {
		return Status{Name: "archive", Healthy: false, Detail: "connection refused"}
	})

	healthy, statuses := r.CheckAll(context.Background())
	if healthy {
		t.Error("one failing checker should make the aggregate unhealthy")
	}
	if len(statuses) != 2 {
		t.Fatalf("statuses = %d, want 2", len(statuses))
	}
	if statuses[0].Name != "store" || !statuses[0].Healthy {
		t.Errorf("unexpected store status: %+v", statuses[0])
	}
	if statuses[1].Detail != "connection refused" {
		t.Errorf("unexpected archive status: %+v", statuses[1])
	}
}
