// Файл: main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/dto"
	"inventory-system/internal/export"
	"inventory-system/internal/store"
	"inventory-system/pkg/apperrors"
	"inventory-system/pkg/config"
	applogger "inventory-system/pkg/logger"
	"inventory-system/pkg/service"
)

func main() {
	exportQR := flag.Bool("export-qr", false, "сформировать лист QR-наклеек по всему оборудованию")
	exportXLSX := flag.String("export-xlsx", "", "путь для выгрузки реестра оборудования в xlsx")
	login := flag.String("login", "", "логин для входа (если токены ещё не сохранены)")
	password := flag.String("password", "", "пароль для входа")
	flag.Parse()

	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	// 1. Локальное состояние (тема, язык, токены) читается при старте.
	settings := store.NewSettings(cfg.State.Path, logger)

	// 2. Клиент API и контейнер состояния.
	client := api.NewClient(cfg.Api.BaseURL, cfg.Api.Timeout, settings, logger)
	st := store.New(client, settings, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Вход, если токенов нет.
	if settings.AccessToken() == "" {
		if *login == "" || *password == "" {
			logger.Fatal("Нет сохранённой сессии: укажите -login и -password")
		}
		if err := st.Auth.Login(ctx, dto.LoginDTO{Login: *login, Password: *password}); err != nil {
			logger.Fatal("Вход не выполнен", zap.Error(err))
		}
	}

	// 4. Стартовая загрузка: все срезы параллельно, частичные отказы не фатальны.
	st.Bootstrap(ctx)
	if !st.Loaded() {
		logger.Fatal("Стартовая загрузка не завершилась")
	}

	// 5. Фоновое упреждающее обновление токена.
	go refreshLoop(ctx, client, settings, cfg.Api.RefreshEvery, logger)

	switch {
	case *exportQR:
		runQRExport(ctx, cfg, st, logger)
	case *exportXLSX != "":
		runXLSXExport(*exportXLSX, st, logger)
	default:
		logger.Info("Данные загружены",
			zap.Int("equipment", len(st.Equipment.Items())),
			zap.Int("buildings", len(st.University.Buildings())),
			zap.Int("contracts", len(st.Contracts.Items())))
	}

	for _, n := range st.Notifications.Drain() {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Level, n.Message)
	}
}

// refreshLoop обновляет токен заранее, не дожидаясь 401. Интервал берётся
// из exp-клейма токена, но не чаще настроенного минимума.
func refreshLoop(ctx context.Context, client *api.Client, settings *store.SettingsSlice, floor time.Duration, logger *zap.Logger) {
	for {
		wait := service.RefreshIn(settings.AccessToken(), floor)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := client.Refresh(ctx); err != nil {
			if errors.Is(err, apperrors.ErrSessionExpired) {
				logger.Warn("Сессия истекла, требуется повторный вход")
				return
			}
			logger.Warn("Фоновое обновление токена не удалось", zap.Error(err))
		}
	}
}

func runQRExport(ctx context.Context, cfg *config.Config, st *store.Store, logger *zap.Logger) {
	if err := os.MkdirAll(cfg.Api.ExportDir, 0o755); err != nil {
		logger.Fatal("Не удалось создать каталог выгрузки", zap.Error(err))
	}

	exporter := export.NewExporter(export.Options{
		QRImageURL:  cfg.Api.QRImageURL,
		FontDir:     cfg.Api.FontDir,
		LogoPath:    cfg.Api.LogoPath,
		OutputDir:   cfg.Api.ExportDir,
		FileBase:    cfg.Api.ExportFileBase,
		FetchPerSec: cfg.Api.QRFetchPerSec,
	}, logger)

	summary, err := exporter.ExportQRSheet(ctx, st.Equipment.Items())
	if err != nil {
		logger.Fatal("Выгрузка QR-листа не удалась", zap.Error(err))
	}
	logger.Info("Готово", zap.String("file", summary.FilePath),
		zap.Int("pages", summary.Pages), zap.Int("tiles", summary.Tiles))
}

func runXLSXExport(path string, st *store.Store, logger *zap.Logger) {
	types := map[uint64]string{}
	for _, t := range st.Equipment.Types() {
		types[t.ID] = t.Name
	}
	contracts := map[uint64]string{}
	for _, c := range st.Contracts.Items() {
		contracts[c.ID] = c.Number
	}

	items := st.Equipment.Items()
	rows := make([]export.InventoryRow, 0, len(items))
	for _, item := range items {
		row := export.InventoryRow{
			Name:     item.Name,
			TypeName: types[item.TypeID],
			Status:   item.Status,
			Inn:      item.Inn.String,
		}
		if item.ContractID.Valid {
			row.Contract = contracts[item.ContractID.Uint64]
		}
		rows = append(rows, row)
	}

	if err := export.SaveInventoryReport(path, rows); err != nil {
		logger.Fatal("Выгрузка реестра не удалась", zap.Error(err))
	}
	logger.Info("Реестр сохранён", zap.String("file", path), zap.Int("rows", len(rows)))
}
