package scheduler_test

import (
	"context"
	"testing"

	"resortshare/internal/inventory"
	"resortshare/internal/scheduler"
)

func TestStartRejectsBadCronSpec(t *testing.T) {
	svc := inventory.NewService(inventory.NewRegistry())
	s := scheduler.New(svc, nil, []string{"RedWeek"}, "not a cron spec")
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("want error for invalid cron spec")
	}
}

func TestStartStopWithValidSpec(t *testing.T) {
	svc := inventory.NewService(inventory.NewRegistry())
	s := scheduler.New(svc, nil, []string{"RedWeek"}, "@every 6h")
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Stop()
}
