package model

// Settlement - результат применения успешного платежа к заказу.
// Applied == false означает повторную доставку вебхука: заказ уже был оплачен,
// побочные эффекты пропускаются.
type Settlement struct {
	Applied bool
	Bonus   int
}
