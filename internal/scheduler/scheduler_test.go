package scheduler

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/jmlee/dcalab/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     chan struct{}
	fail     bool
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(ctx context.Context) error {
	if j.runs != nil {
		j.runs <- struct{}{}
	}
	if j.fail {
		return fmt.Errorf("boom")
	}
	return nil
}

func testScheduler() *Scheduler {
	return New(logger.NewWriter(io.Discard))
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := testScheduler()
	job := &fakeJob{name: "refresh", schedule: "0 0 2 * * *"}

	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}
	if err := s.AddJob(job); err == nil {
		t.Errorf("expected error for duplicate job name")
	}
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := testScheduler()

	if err := s.AddJob(&fakeJob{name: "bad", schedule: "not a cron expr"}); err == nil {
		t.Errorf("expected error for malformed schedule")
	}
}

func TestRunJobUnknown(t *testing.T) {
	s := testScheduler()

	if err := s.RunJob("absent"); err == nil {
		t.Errorf("expected error for unknown job")
	}
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := testScheduler()
	job := &fakeJob{name: "refresh", schedule: "0 0 2 * * *", runs: make(chan struct{}, 1)}

	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}
	if err := s.RunJob("refresh"); err != nil {
		t.Fatalf("RunJob failed: %v", err)
	}

	select {
	case <-job.runs:
	case <-time.After(5 * time.Second):
		t.Fatalf("job never ran")
	}

	// History is recorded after Run returns
	deadline := time.Now().Add(5 * time.Second)
	for {
		history, err := s.History("refresh")
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history.Results) > 0 {
			result := history.Results[0]
			if !result.Success {
				t.Errorf("result.Success = false, want true")
			}
			if result.JobName != "refresh" {
				t.Errorf("result.JobName = %q, want refresh", result.JobName)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("no history recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestJobsLists(t *testing.T) {
	s := testScheduler()
	if err := s.AddJob(&fakeJob{name: "a", schedule: "0 0 2 * * *"}); err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}
	if err := s.AddJob(&fakeJob{name: "b", schedule: "0 0 3 * * *"}); err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}

	if names := s.Jobs(); len(names) != 2 {
		t.Errorf("Jobs() = %v, want 2 entries", names)
	}
}

func TestJobHistoryLimit(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{JobName: "x", Success: i%2 == 0})
	}

	if len(h.Results) != historyLimit {
		t.Errorf("history length = %d, want %d", len(h.Results), historyLimit)
	}
	if got := h.Latest(5); len(got) != 5 {
		t.Errorf("Latest(5) returned %d results", len(got))
	}
	if got := h.Latest(historyLimit * 2); len(got) != historyLimit {
		t.Errorf("Latest over length returned %d results", len(got))
	}
}

func TestJobHistorySuccessRate(t *testing.T) {
	h := &JobHistory{}
	if h.SuccessRate() != 0 {
		t.Errorf("empty history SuccessRate = %v, want 0", h.SuccessRate())
	}

	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})
	h.AddResult(JobResult{Success: true})

	if rate := h.SuccessRate(); rate != 0.75 {
		t.Errorf("SuccessRate = %v, want 0.75", rate)
	}
}
