package jobs

import (
	"context"
	"time"

	"segurauto-backend/internal/logger"
)

// SweepExpiredPolicies logs every policy that crossed its expiry timestamp in
// the last day. Expiry itself needs no write: a policy is expired the moment
// expires_on passes, so the sweep exists for audit and reporting.
func (jr *JobRunner) SweepExpiredPolicies() {
	jr.runWithRecovery("SweepExpiredPolicies", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		expired, err := jr.store.PolicyRepository.ListExpiringBetween(ctx, now.AddDate(0, 0, -1), now)
		if err != nil {
			logger.Error("Failed to list newly expired policies", "error", err)
			return
		}

		logger.Info("Policies expired in the last day", "count", len(expired))
		for _, policy := range expired {
			logger.Debug("Policy expired",
				"policy_number", policy.PolicyNumber,
				"user_id", policy.UserID,
				"expires_on", policy.ExpiresOn)
		}
	})
}

// SendExpiryReminders emails holders whose policy expires within the
// configured window.
func (jr *JobRunner) SendExpiryReminders() {
	jr.runWithRecovery("SendExpiryReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()
		windowEnd := now.AddDate(0, 0, jr.config.Scheduler.ExpiryReminderDays)

		expiring, err := jr.store.PolicyRepository.ListExpiringBetween(ctx, now, windowEnd)
		if err != nil {
			logger.Error("Failed to list expiring policies", "error", err)
			return
		}

		sent := 0
		for _, policy := range expiring {
			user, err := jr.store.UserRepository.GetByID(ctx, policy.UserID)
			if err != nil {
				logger.Error("Skipping expiry reminder, user lookup failed",
					"policy_number", policy.PolicyNumber, "user_id", policy.UserID, "error", err)
				continue
			}
			if err := jr.services.Email.SendPolicyExpiryReminder(ctx, user.Email, user.Name, &policy); err != nil {
				logger.Error("Failed to send expiry reminder",
					"policy_number", policy.PolicyNumber, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Expiry reminders sent", "count", sent, "window_days", jr.config.Scheduler.ExpiryReminderDays)
	})
}
