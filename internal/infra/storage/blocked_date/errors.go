package blocked_date

import "errors"

var (
	// ErrBlockedDateNotFound возвращается, когда запись не найдена
	ErrBlockedDateNotFound = errors.New("blocked_date.repository: blocked date not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blocked_date.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blocked_date.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blocked_date.repository: failed to scan row")
)
