package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/models"
)

// AddExpense records money a member spent for the group. The amount must be
// strictly positive.
func (r *Repository) AddExpense(ctx context.Context, gatheringID, memberID string, amount models.Amount) (models.Expense, error) {
	var expense models.Expense

	err := r.update(ctx, "add_expense", func(data *models.AppData) error {
		g := data.Gathering(gatheringID)
		if g == nil {
			return fmt.Errorf("gathering %q: %w", gatheringID, ErrNotFound)
		}
		if g.IsClosed() {
			return fmt.Errorf("cannot add expense to %q: %w", gatheringID, ErrClosed)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("expense must be greater than zero, got %s: %w", amount, ErrInvalidAmount)
		}
		m := g.Member(memberID)
		if m == nil {
			return fmt.Errorf("member %q in %q: %w", memberID, gatheringID, ErrNotFound)
		}
		expense = models.Expense{
			ID:        r.allocateID(expensePrefix),
			Amount:    amount,
			CreatedAt: r.now(),
		}
		m.Expenses = append(m.Expenses, expense)
		return nil
	})
	if err != nil {
		return models.Expense{}, err
	}

	slog.Info("Expense added",
		"gathering_id", gatheringID,
		"member_id", memberID,
		"amount", amount.String(),
	)
	return expense, nil
}

// RecordPayment records money a member paid back (positive) or received
// (negative). The sign is not restricted here.
func (r *Repository) RecordPayment(ctx context.Context, gatheringID, memberID string, amount models.Amount) (models.Payment, error) {
	var payment models.Payment

	err := r.update(ctx, "record_payment", func(data *models.AppData) error {
		m, err := openMember(data, gatheringID, memberID)
		if err != nil {
			return err
		}
		payment = models.Payment{
			ID:        r.allocateID(paymentPrefix),
			Amount:    amount,
			CreatedAt: r.now(),
			Source:    models.PaymentSourceUser,
		}
		m.Payments = append(m.Payments, payment)
		return nil
	})
	if err != nil {
		return models.Payment{}, err
	}

	slog.Info("Payment recorded",
		"gathering_id", gatheringID,
		"member_id", memberID,
		"amount", amount.String(),
	)
	return payment, nil
}

// SettleMember records the payment that brings one member's balance to zero
// in an open gathering. It returns nil if the member is already settled.
func (r *Repository) SettleMember(ctx context.Context, gatheringID, memberID string) (*models.Payment, error) {
	var payment *models.Payment

	err := r.update(ctx, "settle_member", func(data *models.AppData) error {
		payment = nil
		m, err := openMember(data, gatheringID, memberID)
		if err != nil {
			return err
		}
		for _, b := range calculator.MemberBalances(*data.Gathering(gatheringID), data.GlobalMembers) {
			if b.MemberID != memberID || b.Status == calculator.StatusSettled {
				continue
			}
			payment = &models.Payment{
				ID:        r.allocateID(paymentPrefix),
				Amount:    b.Balance.Neg(),
				CreatedAt: r.now(),
				Source:    models.PaymentSourceUser,
			}
			m.Payments = append(m.Payments, *payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if payment != nil {
		slog.Info("Member settled",
			"gathering_id", gatheringID,
			"member_id", memberID,
			"amount", payment.Amount.String(),
		)
	}
	return payment, nil
}

// CloseGathering settles every member and marks the gathering closed.
//
// For each member whose balance is at least one cent away from zero, a
// settlement payment of -balance is appended, so every balance of the closed
// gathering recomputes to zero. Closing a closed gathering changes nothing.
func (r *Repository) CloseGathering(ctx context.Context, gatheringID string) (models.Gathering, error) {
	var (
		closed   models.Gathering
		payments int
		already  bool
	)

	err := r.update(ctx, "close_gathering", func(data *models.AppData) error {
		payments, already = 0, false
		g := data.Gathering(gatheringID)
		if g == nil {
			return fmt.Errorf("gathering %q: %w", gatheringID, ErrNotFound)
		}
		if g.IsClosed() {
			already = true
			closed = *g
			return nil
		}

		now := r.now()
		for _, entry := range calculator.Settlement(calculator.MemberBalances(*g, data.GlobalMembers)) {
			m := g.Member(entry.MemberID)
			m.Payments = append(m.Payments, models.Payment{
				ID:        r.allocateID(settlementPrefix),
				Amount:    entry.Amount,
				CreatedAt: now,
				Source:    models.PaymentSourceSettlement,
			})
			payments++
		}
		g.Status = models.StatusClosed
		closed = *g
		return nil
	})
	if err != nil {
		return models.Gathering{}, err
	}

	if !already {
		r.metrics.AddSettlementPayments(payments)
		slog.Info("Gathering closed", "gathering_id", gatheringID, "settlement_payments", payments)
	}
	return closed, nil
}

// openMember resolves a participation of an open gathering.
func openMember(data *models.AppData, gatheringID, memberID string) (*models.GatheringMember, error) {
	g := data.Gathering(gatheringID)
	if g == nil {
		return nil, fmt.Errorf("gathering %q: %w", gatheringID, ErrNotFound)
	}
	if g.IsClosed() {
		return nil, fmt.Errorf("gathering %q: %w", gatheringID, ErrClosed)
	}
	m := g.Member(memberID)
	if m == nil {
		return nil, fmt.Errorf("member %q in %q: %w", memberID, gatheringID, ErrNotFound)
	}
	return m, nil
}
