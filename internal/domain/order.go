package domain

// Статусы заказа. Любой статус достижим из любого другого,
// порядок переходов не контролируется.
const (
	StatusPending  = "pending"
	StatusDispatch = "dispatch"
	StatusSuccess  = "success"
)

// FilterAll — сентинел фильтра: вернуть все заказы без отбора по статусу.
const FilterAll = "All"

// CartItem — позиция корзины, read-only проекция товара на момент заказа.
type CartItem struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Order — доменная сущность заказа. Создаётся витриной; админка
// меняет только статус либо удаляет запись целиком.
type Order struct {
	ID        string     `json:"_id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	City      string     `json:"city"`
	ZipCode   string     `json:"zipCode"`
	Total     float64    `json:"total"`
	Discount  float64    `json:"discount"`
	OrderDate string     `json:"orderDate"`
	Status    string     `json:"status"` // пустая строка = статус ещё не выставлен
	CartItems []CartItem `json:"cartItems"`
}
