package services

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const defaultReminderWorkers = 4

// SweepResult summarises one reminder run.
type SweepResult struct {
	Checked  int  `json:"checked"`
	Notified int  `json:"notified"`
	Failed   int  `json:"failed"`
	Skipped  bool `json:"skipped"`
}

// ReminderService emails users who have open todos. It keeps no state
// between runs apart from a guard that drops a run while another is active.
type ReminderService struct {
	store    *repositories.Store
	notifier Notifier
	appURL   string
	workers  int
	running  atomic.Bool
}

func NewReminderService(store *repositories.Store, notifier Notifier, appURL string) *ReminderService {
	return &ReminderService{store: store, notifier: notifier, appURL: appURL, workers: defaultReminderWorkers}
}

// Sweep checks every notifiable user once. A failure for one user is logged
// and counted; it never stops the others.
func (s *ReminderService) Sweep(ctx context.Context) (SweepResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("reminder: previous sweep still running, skipping")
		return SweepResult{Skipped: true}, nil
	}
	defer s.running.Store(false)

	users, err := s.store.Users().ListNotifiable(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	var notified, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, user := range users {
		g.Go(func() error {
			sent, err := s.remind(gctx, user)
			switch {
			case err != nil:
				failed.Add(1)
				log.Printf("reminder: user %d: %v", user.ID, err)
			case sent:
				notified.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	result := SweepResult{Checked: len(users), Notified: int(notified.Load()), Failed: int(failed.Load())}
	log.Printf("reminder: checked=%d notified=%d failed=%d", result.Checked, result.Notified, result.Failed)
	return result, nil
}

func (s *ReminderService) remind(ctx context.Context, user models.User) (bool, error) {
	pending, err := s.store.Todos().CountOpen(ctx, user.ID)
	if err != nil {
		return false, err
	}
	if pending == 0 {
		return false, nil
	}
	subject, body := reminderMessage(user.Username, pending, s.appURL)
	if err := s.notifier.Send(ctx, user.Email, subject, body); err != nil {
		return false, err
	}
	return true, nil
}
