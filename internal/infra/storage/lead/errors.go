package lead

import "errors"

var (
	// ErrLeadNotFound возвращается, когда заявка не найдена
	ErrLeadNotFound = errors.New("lead.repository: lead not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lead.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lead.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lead.repository: failed to scan row")
)
