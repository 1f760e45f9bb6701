package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/romchhh/13vplus-site-sub001/internal/gateway/wayforpay"
	"github.com/romchhh/13vplus-site-sub001/internal/model"
)

// StatusChecker опрашивает шлюз об исходе транзакции по номеру инвойса.
type StatusChecker interface {
	CheckStatus(ctx context.Context, orderReference string) (*wayforpay.StatusResponse, error)
}

// RunPendingOrdersUpdater запускает фоновый опрос зависших заказов.
//
// Вебхук может потеряться, и тогда оплаченный заказ навсегда останется
// pending. Опрос проверяет статус у шлюза и проводит оплату через ту же
// идемпотентную транзакцию, что и вебхук: гонка с опоздавшим вебхуком
// безопасна. onPaid вызывается только для доставки, реально сменившей статус.
func (r *Repository) RunPendingOrdersUpdater(interval, staleAfter time.Duration, checker StatusChecker, onPaid func(context.Context, *model.Order, int)) {
	ticker := time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				orders, err := r.getStalePendingOrders(staleAfter)
				if err != nil {
					r.lg.Errorf("getStalePendingOrders error: %v", err)
					continue
				}

				if len(orders) > 0 {
					r.workerPool.run(orders, func(ctx context.Context, order model.Order) {
						r.checkAndSettle(ctx, order, checker, onPaid)
					})
				}
			case <-r.stopPollChan:
				ticker.Stop()
				return
			}
		}
	}()
}

func (r *Repository) StopPendingOrdersUpdater() {
	timeout := 4 * time.Second

	if r.stopPollChan != nil {
		close(r.stopPollChan)
		r.stopPollChan = nil
	}

	ctx, cancel := context.WithTimeout(r.shutdownCtx, timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.workerPool.shutdown()
	}()

	select {
	case <-done:
		r.lg.Info("poller graceful shutdown completed")
	case <-ctx.Done():
		r.lg.Warn("poller force shutdown after timeout")
		r.shutdownCancel()
	}
}

// getStalePendingOrders - неоплаченные заказы старше порога. Крипто-заказы
// пропускаются: у Plisio нет подходящего API статуса, их закрывает вебхук.
func (r *Repository) getStalePendingOrders(staleAfter time.Duration) ([]model.Order, error) {
	result := make([]model.Order, 0)

	err := r.executeWithRetryConnection(func(db *sql.DB) error {
		query := `SELECT id, invoice_id FROM orders
		WHERE payment_status = 'pending' AND payment_type <> 'crypto'
			AND created_at < $1`

		rows, err := db.Query(query, time.Now().Add(-staleAfter))
		if err != nil {
			return err
		}
		defer rows.Close()

		result = result[:0]
		for rows.Next() {
			var order model.Order
			if err := rows.Scan(&order.ID, &order.InvoiceID); err != nil {
				return err
			}

			result = append(result, order)
		}

		return rows.Err()
	})

	if err != nil {
		return result, err
	}

	return result, nil
}

func (r *Repository) checkAndSettle(ctx context.Context, order model.Order, checker StatusChecker, onPaid func(context.Context, *model.Order, int)) {
	status, err := checker.CheckStatus(ctx, order.InvoiceID)
	if err != nil {
		var rateLimited *wayforpay.RateLimitError
		if errors.As(err, &rateLimited) {
			r.workerPool.pausePoolWithTimer(rateLimited.RetryAfter)
		}
		r.lg.Errorf("check status %s error: %v", order.InvoiceID, err)
		return
	}

	switch status.TransactionStatus {
	case wayforpay.TransactionApproved:
		full, err := r.GetOrderByInvoiceID(ctx, order.InvoiceID)
		if err != nil {
			r.lg.Errorf("get order %s error: %v", order.InvoiceID, err)
			return
		}

		settlement, err := r.SettleOrderPaid(ctx, full)
		if err != nil {
			r.lg.Errorf("settle order %s error: %v", order.InvoiceID, err)
			return
		}

		if settlement.Applied {
			r.lg.Infof("order %s settled by poller, bonus %d", order.InvoiceID, settlement.Bonus)
			if onPaid != nil {
				onPaid(ctx, full, settlement.Bonus)
			}
		}
	case wayforpay.TransactionDeclined, wayforpay.TransactionExpired:
		if err := r.CancelPendingOrder(ctx, order.ID); err != nil {
			r.lg.Errorf("cancel order %s error: %v", order.InvoiceID, err)
		}
	}
}
