package model

import "time"

type User struct {
	ID          int64      `json:"id"`
	BonusPoints int        `json:"bonus_points"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
}

// ServiceToken - полезная нагрузка межсервисного bearer-токена.
type ServiceToken struct {
	Service string `json:"service"`
}
