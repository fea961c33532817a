package jobs

import (
	"context"
	"time"

	"gearmarket-backend/internal/logger"
)

// ExpirePendingOffers flips pending offers past their deadline to expired.
// Offer reads already treat a stale pending offer as expired, so this sweep
// only keeps the stored status in sync for listings and analytics.
func (jr *JobRunner) ExpirePendingOffers() {
	jr.runWithRecovery("ExpirePendingOffers", func() {
		ctx := context.Background()

		query := `
			UPDATE offers
			SET status = 'expired',
			    updated_on = NOW()
			WHERE status = 'pending'
			  AND expires_at < $1
			RETURNING id, conversation_id, sender_id
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to expire pending offers", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var offerID, conversationID, senderID int32
			if err := rows.Scan(&offerID, &conversationID, &senderID); err != nil {
				logger.Error("Failed to scan expired offer", "error", err)
				continue
			}
			logger.Debug("Expired offer",
				"offer_id", offerID,
				"conversation_id", conversationID,
				"sender_id", senderID)
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired offers", "error", err)
			return
		}

		logger.Info("Expired pending offers", "count", count)
	})
}
