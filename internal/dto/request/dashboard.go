package request

import "time"

type DashboardRequest struct {
	From time.Time
	To   time.Time
}
