package store

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SettingsSlice — сохраняемое локальное состояние клиента: тема, размер
// шрифта, язык, флаг уведомлений и пара токенов. Читается при старте,
// пишется на диск при каждом изменении (аналог localStorage).
type SettingsSlice struct {
	mu     sync.RWMutex
	path   string
	logger *zap.Logger
	data   settingsFile
}

type settingsFile struct {
	Theme                string `yaml:"theme"`
	FontSize             int    `yaml:"font_size"`
	Language             string `yaml:"language"`
	NotificationsEnabled bool   `yaml:"notifications_enabled"`
	AccessToken          string `yaml:"access_token"`
	RefreshToken         string `yaml:"refresh_token"`
}

func NewSettings(path string, logger *zap.Logger) *SettingsSlice {
	s := &SettingsSlice{
		path:   path,
		logger: logger,
		data: settingsFile{
			Theme:                "light",
			FontSize:             14,
			Language:             "ru",
			NotificationsEnabled: true,
		},
	}
	s.load()
	return s
}

func (s *SettingsSlice) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Не удалось прочитать файл состояния", zap.Error(err))
		}
		return
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		s.logger.Warn("Файл состояния повреждён, используются значения по умолчанию", zap.Error(err))
	}
}

// persist пишет состояние на диск; вызывается под мьютексом.
func (s *SettingsSlice) persist() {
	raw, err := yaml.Marshal(&s.data)
	if err != nil {
		s.logger.Error("Не удалось сериализовать состояние", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		s.logger.Error("Не удалось записать файл состояния", zap.Error(err))
	}
}

// --- api.TokenSource ---

func (s *SettingsSlice) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.AccessToken
}

func (s *SettingsSlice) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.RefreshToken
}

func (s *SettingsSlice) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = access
	s.data.RefreshToken = refresh
	s.persist()
}

func (s *SettingsSlice) ClearTokens() {
	s.SetTokens("", "")
}

// --- пользовательские настройки ---

func (s *SettingsSlice) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Theme
}

func (s *SettingsSlice) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Theme = theme
	s.persist()
}

func (s *SettingsSlice) FontSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.FontSize
}

func (s *SettingsSlice) SetFontSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.FontSize = size
	s.persist()
}

func (s *SettingsSlice) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Language
}

func (s *SettingsSlice) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Language = lang
	s.persist()
}

func (s *SettingsSlice) NotificationsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.NotificationsEnabled
}

func (s *SettingsSlice) SetNotificationsEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.NotificationsEnabled = enabled
	s.persist()
}
