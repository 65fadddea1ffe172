package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatchRunsJob(t *testing.T) {
	CreateWorkerPools(2)
	defer StopWorkerPools()

	var ran atomic.Int32
	done := make(chan struct{})
	err := Dispatch("testjob", func(ctx context.Context) error {
		ran.Add(1)
		close(done)
		return nil
	}, QueueMaintenance)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
	if ran.Load() != 1 {
		t.Errorf("job ran %d times, want 1", ran.Load())
	}
}

func TestDispatchInvalidQueue(t *testing.T) {
	CreateWorkerPools(1)
	defer StopWorkerPools()

	err := Dispatch("testjob", func(ctx context.Context) error { return nil }, "nope")
	if err != ErrInvalidQueue {
		t.Errorf("Dispatch() error = %v, want ErrInvalidQueue", err)
	}
}

func TestDispatchCronRegistersSchedule(t *testing.T) {
	CreateWorkerPools(1)
	defer StopWorkerPools()
	CreateCronWorker()

	err := DispatchCron("0 */15 * * * *", "sweep", QueueMaintenance, func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("DispatchCron() error = %v", err)
	}

	found := false
	for _, schedule := range GetSchedules() {
		if schedule.JobName == "sweep" && schedule.ScheduleString == "0 */15 * * * *" {
			found = true
		}
	}
	if !found {
		t.Error("GetSchedules() missing the registered sweep schedule")
	}
}

func TestDispatchCronRejectsBadSpec(t *testing.T) {
	CreateWorkerPools(1)
	defer StopWorkerPools()
	CreateCronWorker()

	if err := DispatchCron("not a cron", "bad", QueueMaintenance, func(ctx context.Context) error {
		return nil
	}); err == nil {
		t.Error("DispatchCron() error = nil for invalid spec")
	}
}
