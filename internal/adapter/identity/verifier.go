package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/shop-admin-service/internal/domain"
)

// HTTPVerifier — проверка сессионного токена у внешнего провайдера
// личности. Провайдер отвечает {signed_in, email}; сам провайдер —
// внешний коллаборатор, здесь только одна булева проверка и один email.
type HTTPVerifier struct {
	Endpoint string
	httpc    *http.Client
}

func NewHTTPVerifier(endpoint string) *HTTPVerifier {
	return &HTTPVerifier{
		Endpoint: endpoint,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (domain.IdentityState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.Endpoint, nil)
	if err != nil {
		return domain.IdentityState{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.httpc.Do(req)
	if err != nil {
		// провайдер недоступен: состояние "ещё загружается", не отказ
		return domain.IdentityState{}, fmt.Errorf("identity verify: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			SignedIn bool   `json:"signed_in"`
			Email    string `json:"email"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return domain.IdentityState{}, fmt.Errorf("identity verify: decode: %w", err)
		}
		return domain.IdentityState{Loaded: true, SignedIn: body.SignedIn, Email: body.Email}, nil
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		// токен неизвестен провайдеру: загружено, но не вошёл
		return domain.IdentityState{Loaded: true}, nil
	default:
		return domain.IdentityState{}, fmt.Errorf("identity verify: status %d", resp.StatusCode)
	}
}

var _ domain.IdentityVerifier = (*HTTPVerifier)(nil)
