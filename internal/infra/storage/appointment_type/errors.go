package appointment_type

import "errors"

var (
	// ErrAppointmentTypeNotFound возвращается, когда тип консультации не найден
	ErrAppointmentTypeNotFound = errors.New("appointment_type.repository: appointment type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment_type.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment_type.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment_type.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации локализованных полей
	ErrEncode = errors.New("appointment_type.repository: failed to encode localized fields")
)
