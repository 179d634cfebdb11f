package natsstan

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	stan "github.com/nats-io/stan.go"
	"github.com/rs/zerolog"

	"github.com/example/shop-admin-service/internal/domain"
)

// Publisher — публикация событий админки в NATS Streaming для
// downstream-потребителей (витрина, нотификации). Подключение ленивое
// и под мьютексом: HTTP-поверхность реентерабельна, Publish зовут
// конкурирующие обработчики мутаций. Недоступность брокера не роняет
// мутацию: ошибка публикации только логируется.
type Publisher struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string
	Log       zerolog.Logger

	// dial переопределяется в тестах; nil — штатный stan.Connect.
	dial func() (stan.Conn, error)

	mu   sync.Mutex
	conn stan.Conn
}

func (p *Publisher) connect() (stan.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		return p.conn, nil
	}
	dial := p.dial
	if dial == nil {
		dial = func() (stan.Conn, error) {
			clientID := p.ClientID
			if clientID == "" {
				clientID = fmt.Sprintf("shop-admin-%d", time.Now().UnixNano())
			}
			return stan.Connect(p.ClusterID, clientID, stan.NatsURL(p.URL))
		}
	}
	sc, err := dial()
	if err != nil {
		return nil, err
	}
	p.conn = sc
	return sc, nil
}

func (p *Publisher) Publish(ctx context.Context, e domain.AdminEvent) error {
	sc, err := p.connect()
	if err != nil {
		p.Log.Warn().Err(err).Msg("stan connect")
		return err
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := sc.Publish(p.Subject, b); err != nil {
		p.Log.Warn().Err(err).Str("action", e.Action).Msg("stan publish")
		return err
	}
	return nil
}

// Close закрывает соединение с брокером, если оно было установлено.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

var _ domain.EventPublisher = (*Publisher)(nil)
