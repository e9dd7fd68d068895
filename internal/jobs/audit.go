package jobs

import (
	"context"

	"github.com/minhvt/finbook/internal/repository"
	"github.com/minhvt/finbook/internal/utils/email"
	"github.com/sirupsen/logrus"
)

// Auditor periodically checks that every account balance still equals the
// sum of its transactions' effective deltas. Reconciled mutations cannot
// break the invariant, but direct balance edits on the account record can.
type Auditor struct {
	repo   *repository.Repository
	sender *email.Sender // nil disables notifications
	log    *logrus.Logger
}

// NewAuditor creates a new balance auditor
func NewAuditor(repo *repository.Repository, sender *email.Sender, log *logrus.Logger) *Auditor {
	return &Auditor{repo: repo, sender: sender, log: log}
}

// Run executes one audit pass. It is registered as a cron job.
func (a *Auditor) Run() {
	ctx := context.Background()

	drifts, err := a.repo.FindBalanceDrift(ctx)
	if err != nil {
		a.log.Errorf("Balance audit failed: %v", err)
		return
	}
	if len(drifts) == 0 {
		a.log.Info("Balance audit: all accounts consistent")
		return
	}

	for _, d := range drifts {
		a.log.Warnf("Balance drift on account %s (%s): stored %s, computed %s",
			d.AccountID, d.AccountName, d.Stored, d.Computed)

		if a.sender == nil {
			continue
		}
		user, err := a.repo.FindUserByID(ctx, d.UserID)
		if err != nil {
			a.log.Errorf("Balance audit: failed to load user %d: %v", d.UserID, err)
			continue
		}
		if err := a.sender.SendDriftAlert(user.Email, user.FullName, d.AccountName, d.Currency, d.Stored, d.Computed); err != nil {
			a.log.Errorf("Balance audit: failed to notify %s: %v", user.Email, err)
		}
	}
}
