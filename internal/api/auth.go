package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
)

type LoginResponse struct {
	AccessToken  string      `json:"access"`
	RefreshToken string      `json:"refresh"`
	User         dto.UserDTO `json:"user"`
}

// Login получает пару токенов и профиль пользователя.
func (c *Client) Login(ctx context.Context, payload dto.LoginDTO) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.request(ctx, http.MethodPost, "/user/login/", payload, &resp); err != nil {
		return nil, err
	}
	c.tokens.SetTokens(resp.AccessToken, resp.RefreshToken)
	c.logger.Info("Вход выполнен", zap.String("login", payload.Login))
	return &resp, nil
}

// Logout стирает локальные токены. Серверной сессии нет — токены просто
// перестают использоваться.
func (c *Client) Logout() {
	c.tokens.ClearTokens()
	c.logger.Info("Выход выполнен, токены очищены")
}

// Refresh — принудительное обновление токена (используется фоновым циклом).
func (c *Client) Refresh(ctx context.Context) error {
	return c.refreshTokens(ctx)
}
