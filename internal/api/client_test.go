package api_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/apitest"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/typemap"
	"inventory-system/pkg/apperrors"
)

// memoryTokens — хранилище токенов в памяти для тестов клиента.
type memoryTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func (m *memoryTokens) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *memoryTokens) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

func (m *memoryTokens) SetTokens(access, refresh string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.refresh = refresh
}

func (m *memoryTokens) ClearTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
}

func newTestClient(t *testing.T, backend *apitest.Backend) (*api.Client, *memoryTokens) {
	t.Helper()
	tokens := &memoryTokens{}
	client := api.NewClient(backend.URL(), 5*time.Second, tokens, zap.NewNop())
	return client, tokens
}

func TestLoginStoresTokens(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)

	resp, err := client.Login(context.Background(), dto.LoginDTO{Login: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Login)
	assert.NotEmpty(t, tokens.AccessToken())
	assert.NotEmpty(t, tokens.RefreshToken())
}

func TestLoginBadCredentials(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)

	_, err := client.Login(context.Background(), dto.LoginDTO{Login: "admin", Password: "wrong"})
	require.Error(t, err)

	var apiErr *apperrors.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.Status)
	assert.Empty(t, tokens.AccessToken())
	assert.Zero(t, backend.RefreshCount(), "401 без токена не должен дёргать refresh")
}

// Просроченный access-токен прозрачно обновляется, запрос повторяется один раз.
func TestExpiredTokenRefreshedTransparently(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(-time.Minute)
	tokens.SetTokens(access, refresh)

	_, err := client.Equipments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, backend.RefreshCount())
	assert.NotEqual(t, access, tokens.AccessToken(), "токен должен смениться")
}

// Сколько бы запросов ни поймали 401 одновременно, обновление уходит один раз.
func TestConcurrentRefreshCollapsesToSingleCall(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(-time.Minute)
	tokens.SetTokens(access, refresh)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Equipments(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "запрос %d", i)
	}

	assert.Equal(t, 1, backend.RefreshCount())
}

// Отказ обновления — конец сессии: токены стираются, наружу уходит
// ErrSessionExpired.
func TestRefreshFailureEndsSession(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(-time.Minute)
	tokens.SetTokens(access, refresh)
	backend.SetFail("/user/login/refresh/", true)

	_, err := client.Equipments(context.Background())
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.Empty(t, tokens.AccessToken())
	assert.Empty(t, tokens.RefreshToken())
}

func TestApiErrorCarriesStatusAndMessage(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(time.Hour)
	tokens.SetTokens(access, refresh)

	_, err := client.Equipment(context.Background(), 999999)
	require.Error(t, err)

	var apiErr *apperrors.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "запись не найдена", apiErr.Message)
}

func TestBulkCreateReturnsCreatedRecords(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(time.Hour)
	tokens.SetTokens(access, refresh)

	payload := dto.BulkCreateEquipmentDTO{
		NamePrefix: "ПК-401",
		Status:     entities.StatusWorking,
		TypeID:     1,
		RoomID:     10,
		Count:      3,
	}
	created, err := client.BulkCreateEquipment(context.Background(), payload)
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, "ПК-401-1", created[0].Name)
	assert.Equal(t, "ПК-401-3", created[2].Name)

	assert.Equal(t, 1, backend.BulkCreateCount())
}

// Договор с файлом уходит multipart'ом: бэкенд видит и поля формы, и файл.
func TestCreateContractWithFileUsesMultipart(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(time.Hour)
	tokens.SetTokens(access, refresh)

	payload := dto.CreateContractDTO{
		Number:     "Д-2026/14",
		SignedDate: "2026-02-14",
		File: &dto.FileUpload{
			Name:    "contract.pdf",
			Content: []byte("%PDF-1.4 fake"),
		},
	}
	contract, err := client.CreateContract(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "Д-2026/14", contract.Number)
	assert.Equal(t, "2026-02-14", contract.SignedDate)
	require.True(t, contract.File.Valid)
	assert.Equal(t, "contract.pdf", contract.File.String)
}

func TestCreateContractWithoutFileUsesJSON(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(time.Hour)
	tokens.SetTokens(access, refresh)

	contract, err := client.CreateContract(context.Background(), dto.CreateContractDTO{
		Number:     "Д-2026/15",
		SignedDate: "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Д-2026/15", contract.Number)
	assert.False(t, contract.File.Valid)
}

// Полный цикл записи характеристик: создание, правка и удаление идут через
// общий подресурс семейства, ответ-одиночка разворачивается в сумму-тип.
func TestSpecificationWriteRoundTrip(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(time.Hour)
	tokens.SetTokens(access, refresh)

	ctx := context.Background()

	created, err := client.CreateSpecification(ctx, entities.Specification{
		Kind:    typemap.KindPrinter,
		Printer: &entities.PrinterSpecification{Model: "Canon LBP-6030", Color: false},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, created.Printer)
	assert.NotZero(t, created.RecordID())
	assert.Equal(t, "Canon LBP-6030", created.Printer.Model)

	created.Printer.Color = true
	updated, err := client.UpdateSpecification(ctx, *created)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.RecordID(), updated.RecordID())
	assert.True(t, updated.Printer.Color)

	listed, err := client.Specifications(ctx, typemap.KindPrinter)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Printer.Color)

	require.NoError(t, client.DeleteSpecification(ctx, typemap.KindPrinter, created.RecordID()))
	listed, err = client.Specifications(ctx, typemap.KindPrinter)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDeleteSpecificationMissingRecord(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	client, tokens := newTestClient(t, backend)
	access, refresh := backend.IssueTokens(time.Hour)
	tokens.SetTokens(access, refresh)

	err := client.DeleteSpecification(context.Background(), typemap.KindPrinter, 999999)
	var apiErr *apperrors.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
}
