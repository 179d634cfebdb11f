package domain

// Decision — исход проверки доступа администратора.
type Decision int

const (
	// DecisionPending — личность ещё загружается: ни редиректа, ни данных.
	DecisionPending Decision = iota
	// DecisionAllowed — доступ разрешён; единственное условие начала загрузки сессии.
	DecisionAllowed
	// DecisionRedirect — не вошёл либо email не совпал; оба случая неразличимы.
	DecisionRedirect
)

// Authorize — чистая проверка: единственный разрешённый администратор
// задаётся одним email. Без повторов и без различения причин отказа.
func Authorize(st IdentityState, adminEmail string) Decision {
	if !st.Loaded {
		return DecisionPending
	}
	if !st.SignedIn || st.Email != adminEmail {
		return DecisionRedirect
	}
	return DecisionAllowed
}
