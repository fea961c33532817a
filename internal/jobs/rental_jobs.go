package jobs

import (
	"context"
	"time"

	"gearmarket-backend/internal/logger"
)

// ActivateDueRentals moves approved rentals whose start date has arrived
// into active status.
func (jr *JobRunner) ActivateDueRentals() {
	jr.runWithRecovery("ActivateDueRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rentals
			SET status = 'active',
			    updated_on = NOW()
			WHERE status = 'approved'
			  AND start_date <= $1
			RETURNING id, renter_id, product_id
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to activate due rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var rentalID, renterID, productID int32
			if err := rows.Scan(&rentalID, &renterID, &productID); err != nil {
				logger.Error("Failed to scan activated rental", "error", err)
				continue
			}
			logger.Debug("Activated rental",
				"rental_id", rentalID,
				"renter_id", renterID,
				"product_id", productID)
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating activated rentals", "error", err)
			return
		}

		logger.Info("Activated due rentals", "count", count)
	})
}

// CompleteEndedRentals moves active rentals past their end date into
// completed status. The booked dates stay on the ledger as history.
func (jr *JobRunner) CompleteEndedRentals() {
	jr.runWithRecovery("CompleteEndedRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rentals
			SET status = 'completed',
			    updated_on = NOW()
			WHERE status = 'active'
			  AND end_date < $1
			RETURNING id, renter_id, product_id, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to complete ended rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var rentalID, renterID, productID int32
			var endDate string
			if err := rows.Scan(&rentalID, &renterID, &productID, &endDate); err != nil {
				logger.Error("Failed to scan completed rental", "error", err)
				continue
			}
			logger.Debug("Completed rental",
				"rental_id", rentalID,
				"renter_id", renterID,
				"product_id", productID,
				"end_date", endDate)
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating completed rentals", "error", err)
			return
		}

		logger.Info("Completed ended rentals", "count", count)
	})
}
