// Пакет api — клиент удалённого REST-бэкенда инвентаризации. Всё состояние
// и бизнес-валидация живут на сервере; клиент только ходит по HTTP,
// подставляет bearer-токен и прозрачно обновляет его по 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"inventory-system/pkg/apperrors"
)

// TokenSource — место хранения пары токенов (слайс настроек стора).
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string)
	ClearTokens()
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger

	// Все конкурентные 401 делят один запрос на обновление токена.
	refreshGroup singleflight.Group
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// apiErrorBody — формат тела ошибки бэкенда.
type apiErrorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// request выполняет один вызов API: кодирует payload (JSON или multipart —
// см. encode.go), подставляет заголовки, по 401 на авторизованном запросе
// делает ровно одну попытку обновить токен и повторить запрос.
func (c *Client) request(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	usedToken := c.tokens.AccessToken()
	resp, body, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}

	// 401 без отправленного токена — это отказ в доступе (например, неверный
	// пароль на /user/login/), а не протухшая сессия: обновлять нечего.
	if resp.StatusCode == http.StatusUnauthorized && usedToken != "" {
		if err := c.refreshAfter(ctx, usedToken); err != nil {
			return err
		}
		resp, body, err = c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("не удалось разобрать ответ %s %s: %w", method, path, err)
	}
	return nil
}

// send — одна HTTP-попытка без логики повтора.
func (c *Client) send(ctx context.Context, method, path string, payload interface{}) (*http.Response, []byte, error) {
	bodyReader, contentType, err := encodePayload(payload)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось создать запрос: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if access := c.tokens.AccessToken(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("http запрос не выполнен: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось прочитать тело ответа: %w", err)
	}
	return resp, body, nil
}

func (c *Client) decodeError(status int, body []byte) error {
	var parsed apiErrorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Message
	if message == "" {
		message = fmt.Sprintf("бэкенд вернул статус %d", status)
	}
	c.logger.Warn("Ошибка API", zap.Int("status", status), zap.String("message", message))
	return apperrors.NewApiError(status, message, nil, parsed.Errors)
}

// refreshAfter вызывается после 401: если токен уже сменился с момента
// неудавшегося запроса, обновление сделал кто-то другой и хватает повтора.
func (c *Client) refreshAfter(ctx context.Context, usedToken string) error {
	if current := c.tokens.AccessToken(); current != "" && current != usedToken {
		return nil
	}
	return c.refreshTokens(ctx)
}

// refreshTokens обменивает refresh-токен на новую пару. Конкурентные вызовы
// объединяются через singleflight: сколько бы запросов ни поймали 401
// одновременно, на бэкенд уйдёт один POST /user/login/refresh/.
// Неудача обновления — единственная фатальная для сессии ситуация:
// токены стираются, вызывающий обязан увести пользователя на вход.
func (c *Client) refreshTokens(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		refresh := c.tokens.RefreshToken()
		if refresh == "" {
			c.tokens.ClearTokens()
			return nil, apperrors.ErrSessionExpired
		}

		payload := map[string]string{"refresh": refresh}
		raw, _ := json.Marshal(payload)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/login/refresh/", bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("запрос на обновление токена не выполнен: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.logger.Warn("Обновление токена отклонено, сессия завершается", zap.Int("status", resp.StatusCode))
			c.tokens.ClearTokens()
			return nil, apperrors.ErrSessionExpired
		}

		var pair struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
			c.tokens.ClearTokens()
			return nil, apperrors.ErrSessionExpired
		}
		if pair.Refresh == "" {
			pair.Refresh = refresh
		}
		c.tokens.SetTokens(pair.Access, pair.Refresh)
		c.logger.Debug("Токен доступа обновлён")
		return nil, nil
	})
	return err
}
