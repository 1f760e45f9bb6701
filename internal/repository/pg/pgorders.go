package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/romchhh/13vplus-site-sub001/internal/loyalty"
	"github.com/romchhh/13vplus-site-sub001/internal/model"
)

// GetOrderByInvoiceID возвращает заказ с позициями по внешнему номеру инвойса.
func (r *Repository) GetOrderByInvoiceID(ctx context.Context, invoiceID string) (*model.Order, error) {
	var order model.Order
	var userID sql.NullInt64

	row := r.db.QueryRowContext(ctx,
		`SELECT id, invoice_id, user_id, payment_type, payment_status, status,
			bonus_points_spent, loyalty_discount, created_at
		FROM orders WHERE invoice_id = $1`, invoiceID)

	err := row.Scan(&order.ID, &order.InvoiceID, &userID, &order.PaymentType,
		&order.PaymentStatus, &order.Status, &order.BonusPointsSpent,
		&order.LoyaltyDiscount, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	if userID.Valid {
		order.UserID = &userID.Int64
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, title, price, quantity, size, color
		FROM order_items WHERE order_id = $1 ORDER BY id`, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		var color sql.NullString
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Price, &item.Quantity, &item.Size, &color); err != nil {
			return nil, err
		}
		item.Color = color.String
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &order, nil
}

// SettleOrderPaid применяет подтвержденный платеж к заказу.
//
// Переход и начисление бонусов выполняются в одной транзакции, а сам переход -
// одним условным UPDATE. Конкурирующие доставки того же вебхука соревнуются
// на этом UPDATE: RowsAffected == 0 означает, что заказ уже оплачен другой
// доставкой, и начисление пропускается. Read-then-write здесь недопустим.
func (r *Repository) SettleOrderPaid(ctx context.Context, order *model.Order) (model.Settlement, error) {
	var settlement model.Settlement

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return settlement, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET payment_status = 'paid', status = 'pending'
		WHERE id = $1 AND payment_status <> 'paid'`, order.ID)
	if err != nil {
		return settlement, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return settlement, err
	}
	if affected == 0 {
		// Повторная доставка: заказ уже оплачен, побочных эффектов не будет.
		return settlement, tx.Commit()
	}

	settlement.Applied = true

	// Гостевой заказ: платеж фиксируем, начислять некому.
	if order.UserID == nil {
		return settlement, tx.Commit()
	}

	var priorSpend float64
	var priorOrders int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(i.price * i.quantity), 0), COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = $1 AND o.payment_status = 'paid' AND o.id <> $2
			AND (o.created_at < $3 OR (o.created_at = $3 AND o.id < $2))`,
		*order.UserID, order.ID, order.CreatedAt).Scan(&priorSpend, &priorOrders)
	if err != nil {
		return settlement, err
	}

	var birthDate sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT birth_date FROM users WHERE id = $1`, *order.UserID).Scan(&birthDate)
	if err != nil {
		return settlement, err
	}

	bonus := loyalty.Calculate(
		order.Total(),
		order.LoyaltyDiscount,
		order.BonusPointsSpent,
		priorOrders,
		priorSpend,
		order.CreatedAt,
		nullTimePtr(birthDate),
	)

	if bonus > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET bonus_points = bonus_points + $1 WHERE id = $2`,
			bonus, *order.UserID)
		if err != nil {
			return settlement, err
		}
	}

	settlement.Bonus = bonus
	return settlement, tx.Commit()
}

// CancelPendingOrder помечает неоплаченный заказ отмененным. Оплаченный заказ
// не трогается: отказ шлюза после свершившейся оплаты - информационное событие.
func (r *Repository) CancelPendingOrder(ctx context.Context, orderID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = 'canceled'
		WHERE id = $1 AND payment_status = 'pending'`, orderID)
	return err
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
