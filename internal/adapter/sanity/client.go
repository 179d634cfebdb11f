package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client — минимальный клиент content API хранилища Sanity:
// GROQ-запросы и мутации. Повторов и собственных таймаутов нет,
// временем жизни запроса управляет http.Client и контекст вызывающего.
type Client struct {
	projectID  string
	dataset    string
	apiVersion string
	token      string
	baseURL    string
	httpc      *http.Client
}

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	// BaseURL переопределяет адрес API (нужно тестам); пустое значение —
	// штатный https://<project>.api.sanity.io.
	BaseURL string
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	return &Client{
		projectID:  cfg.ProjectID,
		dataset:    cfg.Dataset,
		apiVersion: cfg.APIVersion,
		token:      cfg.Token,
		baseURL:    base,
		httpc:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch выполняет GROQ-запрос и декодирует поле result ответа в out.
func (c *Client) Fetch(ctx context.Context, query string, out any) error {
	u := fmt.Sprintf("%s/v%s/data/query/%s?query=%s",
		c.baseURL, c.apiVersion, c.dataset, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	c.setAuth(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sanity query: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sanity query: %s", readAPIError(resp))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("sanity query: decode: %w", err)
	}
	return json.Unmarshal(envelope.Result, out)
}

// MutateResult — ответ endpoint'а мутаций; Results несёт идентификаторы,
// назначенные хранилищем.
type MutateResult struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

// Mutate отправляет пакет мутаций одним запросом с returnIds=true.
func (c *Client) Mutate(ctx context.Context, mutations []any) (*MutateResult, error) {
	body, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/v%s/data/mutate/%s?returnIds=true",
		c.baseURL, c.apiVersion, c.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity mutate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sanity mutate: %s", readAPIError(resp))
	}

	var result MutateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("sanity mutate: decode: %w", err)
	}
	return &result, nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func readAPIError(resp *http.Response) string {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Sprintf("status %d: %s", resp.StatusCode, snippet)
}
