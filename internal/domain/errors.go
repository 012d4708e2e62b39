package domain

import "errors"

// Ошибки справочников, общие для всех источников данных (БД, внешний сервис)
var (
	ErrServiceNotFound = errors.New("service not found")
	ErrStaffNotFound   = errors.New("staff not found")
)
