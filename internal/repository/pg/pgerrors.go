package pg

import (
	"errors"

	"github.com/lib/pq"
)

type ErrorClassification int

const (
	NonRetriable ErrorClassification = iota
	Retriable
)

type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetriable
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPgError(pqErr)
	}

	// По умолчанию считаем ошибку неповторяемой
	return NonRetriable
}

func classifyPgError(pqErr *pq.Error) ErrorClassification {
	// Коды ошибок PostgreSQL: https://www.postgresql.org/docs/current/errcodes-appendix.html
	switch pqErr.Code {
	// Класс 08 - Ошибки соединения
	case "08000", "08001", "08003", "08004", "08006", "08007":
		return Retriable

	// Класс 40 - Откат транзакции (serialization failure, deadlock)
	case "40000", "40001", "40P01":
		return Retriable

	// 57P03 - сервер поднимается, можно подождать
	case "57P03":
		return Retriable
	}

	// Ошибки данных, нарушения ограничений и синтаксис повтором не лечатся
	return NonRetriable
}
