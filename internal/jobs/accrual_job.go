package jobs

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"meta-invest/internal/services"
)

// AccrualJob sweeps daily income for all unfinished investments on a
// schedule. Accrual is idempotent, so the sweep can overlap with lazy
// accrual on user reads without double paying.
type AccrualJob struct {
	investmentService *services.InvestmentService
	cron              *cron.Cron
}

// NewAccrualJob creates a new accrual job
func NewAccrualJob(investmentService *services.InvestmentService) *AccrualJob {
	return &AccrualJob{
		investmentService: investmentService,
		cron:              cron.New(),
	}
}

// Start registers the schedules and starts the cron runner. The daily
// run at midnight does the real work; the hourly run catches anything
// the midnight run missed, e.g. after downtime.
func (j *AccrualJob) Start() error {
	if _, err := j.cron.AddFunc("0 0 * * *", j.run); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc("0 * * * *", j.run); err != nil {
		return err
	}

	j.cron.Start()
	logrus.Info("Accrual job scheduled")
	return nil
}

// Stop stops the cron runner and waits for a running sweep to finish
func (j *AccrualJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *AccrualJob) run() {
	accrued, err := j.investmentService.AccrueAll()
	if err != nil {
		logrus.WithError(err).Error("accrual sweep failed")
		return
	}
	if accrued > 0 {
		logrus.WithField("investments", accrued).Info("Accrual sweep paid out daily income")
	}
}
