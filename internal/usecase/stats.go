package usecase

import "github.com/example/shop-admin-service/internal/domain"

// Stats — агрегаты дашборда. Пересчитываются из зеркала на каждый запрос,
// отдельно нигде не хранятся.
type Stats struct {
	TotalEarnings  float64 `json:"total_earnings"`
	TotalOrders    int     `json:"total_orders"`
	PendingOrders  int     `json:"pending_orders"`
	DispatchOrders int     `json:"dispatch_orders"`
	SuccessOrders  int     `json:"success_orders"`
}

// DashboardStats — подсчёт агрегатов. Заказы с невыставленным статусом
// входят в сумму и общий счётчик, но не в счётчики по статусам.
type DashboardStats struct {
	Mirror domain.SessionMirror
}

func (uc DashboardStats) Execute() Stats {
	var s Stats
	for _, o := range uc.Mirror.Orders() {
		s.TotalEarnings += o.Total
		s.TotalOrders++
		switch o.Status {
		case domain.StatusPending:
			s.PendingOrders++
		case domain.StatusDispatch:
			s.DispatchOrders++
		case domain.StatusSuccess:
			s.SuccessOrders++
		}
	}
	return s
}
