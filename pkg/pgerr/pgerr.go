package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые различают репозитории
const (
	CodeForeignKeyViolation pq.ErrorCode = "23503"
	CodeUniqueViolation     pq.ErrorCode = "23505"
	CodeCheckViolation      pq.ErrorCode = "23514"
	CodeExclusionViolation  pq.ErrorCode = "23P01"
)

// Code возвращает код ошибки PostgreSQL или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsForeignKeyViolation ссылка на несуществующую запись
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsExclusionViolation нарушено EXCLUDE ограничение (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

// IsCheckViolation нарушено CHECK ограничение
func IsCheckViolation(err error) bool {
	return Code(err) == CodeCheckViolation
}
