package loyalty

import (
	"math"
	"time"
)

const (
	// FirstPurchasePercent начисляется за самый первый оплаченный заказ
	// независимо от суммы. Повторно не применяется.
	FirstPurchasePercent = 3

	// BirthdayBonus - фиксированное начисление, если заказ оформлен
	// в пределах +-2 дней от дня рождения пользователя.
	BirthdayBonus = 500

	birthdayWindow = 2 * 24 * time.Hour
)

type tier struct {
	Threshold float64
	Percent   int
}

// Пороги накопленных трат. Выбирается старший порог, не превышающий сумму.
var tiers = []tier{
	{110000, 15},
	{90000, 12},
	{65000, 10},
	{45000, 7},
	{25000, 5},
}

// Percent возвращает процент начисления по истории покупок.
// priorOrders и priorSpend считаются только по ранее оплаченным заказам.
func Percent(priorOrders int, priorSpend float64) int {
	if priorOrders == 0 {
		return FirstPurchasePercent
	}

	for _, t := range tiers {
		if priorSpend >= t.Threshold {
			return t.Percent
		}
	}

	// Первая покупка уже была, но до нижнего порога еще не накоплено.
	return 0
}

// CashAmount - сумма, фактически оплаченная деньгами: итог заказа за вычетом
// промо-скидки и списанных бонусов. Бонусы начисляются только на нее.
func CashAmount(total, discount float64, bonusSpent int) float64 {
	cash := total - discount - float64(bonusSpent)
	if cash < 0 {
		return 0
	}
	return math.Round(cash*100) / 100
}

// TierBonus - начисление по проценту, округление всегда вниз.
func TierBonus(cash float64, percent int) int {
	return int(math.Floor(cash * float64(percent) / 100))
}

// InBirthdayWindow сравнивает только месяц и день: год из даты рождения
// игнорируется. День рождения проецируется на соседние годы заказа,
// иначе пара 31 декабря / 1 января не попадет в окно.
func InBirthdayWindow(orderDate, birthDate time.Time) bool {
	od := time.Date(orderDate.Year(), orderDate.Month(), orderDate.Day(), 0, 0, 0, 0, time.UTC)

	for _, year := range []int{od.Year() - 1, od.Year(), od.Year() + 1} {
		bd := time.Date(year, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)

		diff := od.Sub(bd)
		if diff < 0 {
			diff = -diff
		}
		if diff <= birthdayWindow {
			return true
		}
	}

	return false
}

// Calculate считает полное начисление за оплаченный заказ:
// процент по истории + фиксированный бонус ко дню рождения.
func Calculate(total, discount float64, bonusSpent, priorOrders int, priorSpend float64, createdAt time.Time, birthDate *time.Time) int {
	cash := CashAmount(total, discount, bonusSpent)
	bonus := TierBonus(cash, Percent(priorOrders, priorSpend))

	if birthDate != nil && InBirthdayWindow(createdAt, *birthDate) {
		bonus += BirthdayBonus
	}

	return bonus
}
