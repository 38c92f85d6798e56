// Package scheduler wires up the cron job that periodically runs commit
// syncs for the configured providers.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"resortshare/internal/inventory"
)

type Scheduler struct {
	cron      *cron.Cron
	svc       *inventory.Service
	persist   inventory.PersistFunc
	providers []string
	spec      string // cron spec, e.g. "@every 6h"
}

func New(svc *inventory.Service, persist inventory.PersistFunc, providers []string, spec string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		svc:       svc,
		persist:   persist,
		providers: providers,
		spec:      spec,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	log.Printf("[scheduler] cron started: spec=%s providers=%s", s.spec, strings.Join(s.providers, ","))
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] cron stopped")
}

func (s *Scheduler) runSync(ctx context.Context) {
	for _, name := range s.providers {
		result, err := s.svc.Sync(ctx, name, nil, s.persist)
		if err != nil {
			log.Printf("[scheduler] sync %s: %v", name, err)
			continue
		}
		log.Printf("[scheduler] sync %s: total=%d imported=%d errors=%d",
			name, result.Total, result.Imported, len(result.Errors))
	}
}
