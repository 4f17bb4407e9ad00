package processor

import (
	"fmt"
	"time"

	"bedadmin/pkg/logger"

	"github.com/robfig/cron/v3"
)

// IdleSweeper - то, что умеет закрывать забытые экраны (ViewService)
type IdleSweeper interface {
	SweepIdle(ttl time.Duration) int
}

// ViewSweeper периодически размонтирует экраны, к которым давно не обращались
// Закрытая вкладка браузера не присылает unmount, поэтому без него контроллеры копятся
type ViewSweeper struct {
	cron    *cron.Cron
	views   IdleSweeper
	idleTTL time.Duration
}

func NewViewSweeper(views IdleSweeper, idleTTL time.Duration) *ViewSweeper {
	c := cron.New(cron.WithLogger(cronLogger{}))

	return &ViewSweeper{
		cron:    c,
		views:   views,
		idleTTL: idleTTL,
	}
}

func (s *ViewSweeper) Start(schedule string) error {
	logger.Info().Str("schedule", schedule).Dur("idle_ttl", s.idleTTL).Msg("Starting view sweeper")

	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	return nil
}

func (s *ViewSweeper) Stop() {
	logger.Info().Msg("Stopping view sweeper...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("View sweeper stopped")
}

func (s *ViewSweeper) GetEntries() []cron.Entry {
	return s.cron.Entries()
}

func (s *ViewSweeper) sweep() {
	if swept := s.views.SweepIdle(s.idleTTL); swept > 0 {
		logger.Info().Int("swept", swept).Msg("Idle views unmounted")
	}
}

// cronLogger пишет события cron в общий zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
