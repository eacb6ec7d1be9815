package jobs

import (
	"context"
	"time"

	"segurauto-backend/internal/logger"
)

// NudgeStaleClaimReviews counts claims stuck in Pending beyond the configured
// age and emails the review desk.
func (jr *JobRunner) NudgeStaleClaimReviews() {
	jr.runWithRecovery("NudgeStaleClaimReviews", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.ClaimReviewAgeDays)

		stale, err := jr.store.ClaimRepository.ListPendingSince(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending claims", "error", err)
			return
		}
		if len(stale) == 0 {
			logger.Info("No stale pending claims")
			return
		}

		for _, claim := range stale {
			logger.Debug("Claim pending past review window",
				"claim_number", claim.ClaimNumber,
				"created_on", claim.CreatedOn)
		}

		reviewDesk := jr.config.Email.ReviewDeskEmail
		if reviewDesk == "" {
			logger.Warn("Review desk email not configured, skipping nudge", "stale_claims", len(stale))
			return
		}
		if err := jr.services.Email.SendClaimReviewNudge(ctx, reviewDesk, len(stale)); err != nil {
			logger.Error("Failed to send claim review nudge", "error", err)
			return
		}
		logger.Info("Claim review nudge sent", "stale_claims", len(stale))
	})
}
