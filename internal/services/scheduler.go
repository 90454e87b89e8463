package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/quitofx/newswindow/internal/config"
)

// Scheduler drives the two externally triggered schedules: a daily
// job that broadcasts tomorrow's day report and a weekly job that
// broadcasts the week report starting today. Cron expressions are
// evaluated in the trading timezone.
type Scheduler struct {
	cron     *cron.Cron
	reports  *ReportService
	notifier *Notifier
	loc      *time.Location
}

// NewScheduler wires the configured cron expressions. Invalid
// expressions are configuration errors and fail construction.
func NewScheduler(cfg config.ScheduleConfig, reports *ReportService, notifier *Notifier) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(reports.Location())),
		reports:  reports,
		notifier: notifier,
		loc:      reports.Location(),
	}

	if _, err := s.cron.AddFunc(cfg.DailyCron, s.runDaily); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.WeeklyCron, s.runWeekly); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins the schedules in the background.
func (s *Scheduler) Start() {
	logrus.Info("Starting report scheduler")
	s.cron.Start()
}

// Stop halts the schedules and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	logrus.Info("Stopping report scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tomorrow := time.Now().In(s.loc).AddDate(0, 0, 1)
	logrus.WithField("date", tomorrow.Format("2006-01-02")).Info("Broadcasting daily report")

	if err := s.notifier.Broadcast(ctx, s.reports.DayReport(ctx, tomorrow)); err != nil {
		logrus.WithError(err).Error("Daily report broadcast failed")
	}
}

func (s *Scheduler) runWeekly() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	today := time.Now().In(s.loc)
	logrus.WithField("start", today.Format("2006-01-02")).Info("Broadcasting weekly report")

	if err := s.notifier.Broadcast(ctx, s.reports.WeekReport(ctx, today)); err != nil {
		logrus.WithError(err).Error("Weekly report broadcast failed")
	}
}
