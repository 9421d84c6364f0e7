package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/nutrition"
)

// Scheduler logs a periodic progress summary while the server runs.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	engine *nutrition.Engine
	logger *zap.Logger
}

// New creates a scheduler for the five-field cron expression spec. An
// empty spec yields a scheduler that never fires.
func New(spec string, engine *nutrition.Engine, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(),
		spec:   spec,
		engine: engine,
		logger: logger,
	}
}

// Start registers the summary job and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("summary schedule disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.logSummary); err != nil {
		s.logger.Error("failed to schedule summary", zap.String("spec", s.spec), zap.Error(err))
		return fmt.Errorf("schedule summary %q: %w", s.spec, err)
	}
	s.logger.Info("starting scheduler", zap.String("spec", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) logSummary() {
	if err := s.Summarize(); err != nil {
		s.logger.Error("failed to build progress summary", zap.Error(err))
	}
}

// Summarize logs the current week's averages and the tracking streak.
func (s *Scheduler) Summarize() error {
	week, err := s.engine.WeeklyAverages(s.engine.Today())
	if err != nil {
		return err
	}
	streak, err := s.engine.Streak()
	if err != nil {
		return err
	}
	s.logger.Info("weekly progress summary",
		zap.String("week", week.Label),
		zap.Int("tracked_days", week.TrackedDays),
		zap.Int("off_days", week.OffDayCount),
		zap.Float64("avg_calories", week.Averages.Calories),
		zap.Float64("avg_protein", week.Averages.Protein),
		zap.String("macro_ratio", nutrition.MacroRatio(week.Totals.Protein, week.Totals.Carbs, week.Totals.Fats)),
		zap.Int("streak", streak))
	return nil
}
