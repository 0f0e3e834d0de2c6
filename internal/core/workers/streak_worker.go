package workers

import (
	"context"
	"log"

	"github.com/realmquest/engine/internal/core/domain"
)

type HabitRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error)
	Update(ctx context.Context, habit *domain.Habit) error
}

type StreakJob struct {
	UserID string
}

// StreakWorker runs the passive streak recomputation off the request path:
// a job per user, enqueued on login and on habit reads, zeroing any streak
// whose last completion is older than yesterday.
type StreakWorker struct {
	habitRepo HabitRepository
	clock     domain.Clock
	jobs      chan StreakJob
}

func NewStreakWorker(habitRepo HabitRepository, clock domain.Clock) *StreakWorker {
	if clock == nil {
		clock = domain.RealClock()
	}
	return &StreakWorker{
		habitRepo: habitRepo,
		clock:     clock,
		jobs:      make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Streak worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(userID string) {
	select {
	case w.jobs <- StreakJob{UserID: userID}:
	default:
		log.Printf("Streak worker queue full! Dropping job for user %s", userID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	habits, err := w.habitRepo.ListByUserID(ctx, job.UserID)
	if err != nil {
		log.Printf("Worker error fetching habits for %s: %v", job.UserID, err)
		return
	}

	today := w.clock.Now()

	for _, habit := range habits {
		if !habit.RecomputeStreak(today) {
			continue
		}
		if err := w.habitRepo.Update(ctx, habit); err != nil {
			log.Printf("Worker failed to reset streak for habit %s: %v", habit.ID, err)
			continue
		}
		log.Printf("Streak lapsed for %q (user %s)", habit.Title, job.UserID)
	}
}
