package appointment_type

import "github.com/m04kA/SMC-ConsultingService/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

type rowScanner interface {
	Scan(dest ...interface{}) error
}
