package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/lifecycle"
	"locagest-backend/internal/logger"
)

// recentNotificationWindow bounds the lookback used to avoid re-alerting a
// rental every night.
const recentNotificationWindow = 200

// DueDateSweep walks the active rentals, classifies each one against its
// expected end date and raises NEAR_DUE/OVERDUE notifications. One reminder
// email per sweep goes to the operator inbox when anything needs attention.
//
// The sweep also audits for contracts that are paid and collected yet still
// ACTIVE. Those are never finalized here, only reported: finalization is a
// side effect of the payment and collection transitions alone.
func (jr *JobRunner) DueDateSweep() {
	jr.runWithRecovery("DueDateSweep", func() {
		ctx := context.Background()
		now := jr.clock.Now()
		threshold := jr.config.Alerts.NearDueThresholdDays

		active, err := jr.rentals.ListByStatus(ctx, domain.ContractStatusActive)
		if err != nil {
			logger.Error("Failed to list active rentals", "error", err)
			return
		}

		alerted, err := jr.recentlyAlerted(ctx)
		if err != nil {
			logger.Warn("Failed to load recent notifications, duplicates possible", "error", err)
			alerted = map[string]bool{}
		}

		nearDue := 0
		overdue := 0
		var firstAlert *domain.Rental
		var firstUrgency lifecycle.Urgency

		for i := range active {
			rt := active[i]

			if rt.PaymentStatus == domain.PaymentStatusPaid && rt.CollectionStatus == domain.CollectionStatusCollected {
				logger.Warn("Rental satisfies both settlement axes but is still active",
					"rental_id", rt.ID, "payment_date", rt.PaymentDate, "collected_at", rt.CollectedAt)
			}

			urgency := lifecycle.ClassifyWithThreshold(rt, now, threshold)
			if urgency == lifecycle.UrgencyNormal {
				continue
			}

			kind := domain.NotificationKindNearDue
			if urgency == lifecycle.UrgencyOverdue {
				kind = domain.NotificationKindOverdue
				overdue++
			} else {
				nearDue++
			}

			if firstAlert == nil {
				firstAlert = &active[i]
				firstUrgency = urgency
			}

			if alerted[rt.ID+":"+string(kind)] {
				continue
			}
			title := "Rental due soon"
			if kind == domain.NotificationKindOverdue {
				title = "Rental overdue"
			}
			note := &domain.Notification{
				ID:        uuid.New().String(),
				Kind:      kind,
				Title:     title,
				RentalID:  rt.ID,
				Message:   fmt.Sprintf("Rental due %s", rt.ExpectedEndDate.Format("2006-01-02")),
				CreatedOn: now,
			}
			if err := jr.notes.Create(ctx, note); err != nil {
				logger.Error("Failed to create due-date notification", "rental_id", rt.ID, "error", err)
			}
		}

		logger.Info("Due-date sweep finished", "active", len(active), "near_due", nearDue, "overdue", overdue)

		if firstAlert != nil {
			jr.sendReminder(ctx, firstAlert, firstUrgency, nearDue+overdue)
		}
	})
}

// recentlyAlerted returns a set of "rentalID:kind" keys for notifications
// that are still unread, so the sweep does not stack duplicates.
func (jr *JobRunner) recentlyAlerted(ctx context.Context) (map[string]bool, error) {
	notes, err := jr.notes.List(ctx, recentNotificationWindow)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(notes))
	for _, n := range notes {
		if n.Read {
			continue
		}
		seen[n.RentalID+":"+string(n.Kind)] = true
	}
	return seen, nil
}

func (jr *JobRunner) sendReminder(ctx context.Context, rt *domain.Rental, urgency lifecycle.Urgency, total int) {
	to := jr.config.Email.ReminderTo
	if to == "" || jr.email == nil {
		return
	}

	clientName := rt.ClientID
	if client, err := jr.clients.GetByID(ctx, rt.ClientID); err == nil {
		clientName = client.Name
	}
	if total > 1 {
		clientName = fmt.Sprintf("%s (and %d more)", clientName, total-1)
	}

	if err := jr.email.SendDueDateReminder(ctx, to, clientName, rt.ExpectedEndDate, urgency); err != nil {
		logger.Error("Failed to send due-date reminder", "error", err)
	}
}
