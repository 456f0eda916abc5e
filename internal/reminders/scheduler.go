package reminders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/uptask-dev/uptask-backend/internal/mailer"
	"github.com/uptask-dev/uptask-backend/internal/projects/domain"
)

// DueLister is the slice of the project store the sweep needs.
type DueLister interface {
	ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.DueProject, error)
}

// Scheduler mails project creators ahead of their delivery dates.
type Scheduler struct {
	store     DueLister
	mail      mailer.Mailer
	spec      string
	lookahead time.Duration
	cron      *cron.Cron
}

func NewScheduler(store DueLister, mail mailer.Mailer, spec string, lookaheadDays int) *Scheduler {
	if lookaheadDays <= 0 {
		lookaheadDays = 1
	}
	return &Scheduler{
		store:     store,
		mail:      mail,
		spec:      spec,
		lookahead: time.Duration(lookaheadDays) * 24 * time.Hour,
	}
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(s.spec, s.Sweep); err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}

	log.Printf("[reminders] scheduler started (spec %q, lookahead %s)", s.spec, s.lookahead)
	c.Start()
	s.cron = c
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep mails every creator whose project is due inside the lookahead
// window. One failed mail does not abort the rest of the sweep.
func (s *Scheduler) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	due, err := s.store.ListDueBetween(ctx, now, now.Add(s.lookahead))
	if err != nil {
		log.Printf("[reminders] sweep failed: %v", err)
		return
	}

	sent := 0
	for _, d := range due {
		if d.CreatorEmail == "" {
			continue
		}

		msg := mailer.Message{
			To:      []string{d.CreatorEmail},
			Subject: fmt.Sprintf("%q is due %s", d.Name, d.DeliveryDate.Format("Jan 2")),
			Body: fmt.Sprintf("Hi %s,\n\nYour project %q is due on %s.\n",
				d.CreatorName, d.Name, d.DeliveryDate.Format(time.RFC1123)),
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			log.Printf("[reminders] mail for project %s failed: %v", d.ID, err)
			continue
		}
		sent++
	}

	log.Printf("[reminders] sweep done: %d due, %d mailed", len(due), sent)
}
