package list_reservations

import (
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
)

// ToServiceRequest формирует фильтр из query параметров:
// dateFrom, dateTo (YYYY-MM-DD), status (через запятую или несколько раз)
func ToServiceRequest(q url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{}

	if s := q.Get("dateFrom"); s != "" {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &d
	}
	if s := q.Get("dateTo"); s != "" {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.DateTo = &d
	}

	for _, v := range q["status"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Statuses = append(req.Statuses, s)
			}
		}
	}
	return req, nil
}
