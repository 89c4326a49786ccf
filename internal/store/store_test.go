package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/apitest"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/store"
	"inventory-system/internal/typemap"
	"inventory-system/pkg/apperrors"
	"inventory-system/pkg/utils"
)

func newTestStore(t *testing.T, backend *apitest.Backend) *store.Store {
	t.Helper()

	settings := store.NewSettings(filepath.Join(t.TempDir(), "state.yaml"), zap.NewNop())
	access, refresh := backend.IssueTokens(time.Hour)
	settings.SetTokens(access, refresh)

	client := api.NewClient(backend.URL(), 5*time.Second, settings, zap.NewNop())
	return store.New(client, settings, zap.NewNop())
}

func seedBackend(b *apitest.Backend) {
	b.Types = []entities.EquipmentType{
		{ID: 1, Name: "Компьютер", RequiresComputerDetails: true},
		{ID: 2, Name: "Принтер"},
		{ID: 3, Name: "Мебель"},
	}
	b.Buildings = []entities.Building{
		{ID: 1, Name: "Главный корпус", Address: "пр. Рудаки, 17"},
	}
	b.Floors[1] = []entities.Floor{{ID: 11, Number: 1, BuildingID: 1}}
	b.Rooms[11] = []entities.Room{{ID: 101, Number: "101", FloorID: 11}}
	b.Contracts = []entities.Contract{
		{ID: 5, Number: "Д-2025/1", SignedDate: "2025-11-03", AuthorID: 1},
	}
	b.InnTemplates = []entities.InnTemplate{{ID: 1, Name: "ИНН-2025-"}}
	b.Specs[typemap.KindComputer] = []interface{}{
		entities.ComputerSpecification{
			ID:  7,
			CPU: "Core i5-12400",
			RAM: "16GB",
			DiskSpecifications: []entities.DiskSpecification{
				{DiskType: "SSD", CapacityGB: 512},
			},
		},
	}
	b.Specs[typemap.KindPrinter] = []interface{}{
		entities.PrinterSpecification{ID: 3, Model: "HP LaserJet M111", Duplex: true},
	}

	b.AddEquipment(entities.Equipment{
		ID: 21, Name: "ПК-101-1", Status: entities.StatusWorking, TypeID: 1, RoomID: 101,
	})
	b.AddEquipment(entities.Equipment{
		ID: 22, Name: "ПК-101-2", Status: entities.StatusBroken, TypeID: 1, RoomID: 101,
	})
	b.AddEquipment(entities.Equipment{
		ID: 23, Name: "Принтер-102", Status: entities.StatusWorking, TypeID: 2, RoomID: 102,
	})
}

func TestBootstrapLoadsEverySlice(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)

	st := newTestStore(t, backend)
	require.False(t, st.Loaded())

	st.Bootstrap(context.Background())

	assert.True(t, st.Loaded())
	assert.Len(t, st.Equipment.Items(), 3)
	assert.Len(t, st.Equipment.Types(), 3)
	assert.Len(t, st.Equipment.InnTemplates(), 1)
	assert.Len(t, st.University.Buildings(), 1)
	assert.Len(t, st.Contracts.Items(), 1)

	computers := st.Specifications.ForKind(typemap.KindComputer)
	require.Len(t, computers, 1)
	assert.Equal(t, uint64(7), computers[0].RecordID())
	assert.Equal(t, "512GB SSD", entities.DiskDisplay(computers[0].Computer.DiskSpecifications))
}

// Один упавший фетч не мешает остальным: слайс с ошибкой остаётся пустым,
// остальные заполняются, флаг готовности ставится в любом случае.
func TestBootstrapPartialFailure(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)
	backend.SetFail("/equipment/", true)

	st := newTestStore(t, backend)
	st.Bootstrap(context.Background())

	assert.True(t, st.Loaded())
	assert.Empty(t, st.Equipment.Items())
	assert.Error(t, st.Equipment.Err())

	assert.Len(t, st.University.Buildings(), 1)
	assert.Len(t, st.Contracts.Items(), 1)
	assert.Len(t, st.Specifications.ForKind(typemap.KindPrinter), 1)
}

func TestSpecificationsLoadAllPartialFailure(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)
	backend.SetFail("/computer-specifications/", true)

	st := newTestStore(t, backend)
	err := st.Specifications.LoadAll(context.Background())
	require.Error(t, err)

	assert.Empty(t, st.Specifications.ForKind(typemap.KindComputer))
	assert.Error(t, st.Specifications.Err(typemap.KindComputer))

	assert.Len(t, st.Specifications.ForKind(typemap.KindPrinter), 1)
	assert.NoError(t, st.Specifications.Err(typemap.KindPrinter))
}

// Создание и удаление шаблона характеристик перечитывают корзину семейства,
// поэтому вид стора всегда отражает состояние бэкенда.
func TestSpecificationsCreateAndDelete(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)

	st := newTestStore(t, backend)
	ctx := context.Background()
	require.NoError(t, st.Specifications.LoadAll(ctx))
	require.Len(t, st.Specifications.ForKind(typemap.KindPrinter), 1)

	err := st.Specifications.Create(ctx, entities.Specification{
		Kind:    typemap.KindPrinter,
		Printer: &entities.PrinterSpecification{Model: "HP LaserJet M111", Color: false},
	})
	require.NoError(t, err)

	printers := st.Specifications.ForKind(typemap.KindPrinter)
	require.Len(t, printers, 2)

	var createdID uint64
	for _, spec := range printers {
		if spec.Printer.Model == "HP LaserJet M111" {
			createdID = spec.RecordID()
		}
	}
	require.NotZero(t, createdID)

	_, ok := st.Specifications.ByID(typemap.KindPrinter, createdID)
	assert.True(t, ok)

	require.NoError(t, st.Specifications.Delete(ctx, typemap.KindPrinter, createdID))
	assert.Len(t, st.Specifications.ForKind(typemap.KindPrinter), 1)
	_, ok = st.Specifications.ByID(typemap.KindPrinter, createdID)
	assert.False(t, ok)
}

// Повторное раскрытие уровня иерархии не ходит в сеть: дети лежат в кэше
// по id родителя до явной инвалидации.
func TestUniversityExpandUsesCache(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)

	st := newTestStore(t, backend)
	ctx := context.Background()

	floors, err := st.University.ExpandBuilding(ctx, 1)
	require.NoError(t, err)
	require.Len(t, floors, 1)

	_, err = st.University.ExpandBuilding(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.HitCount("/buildings/:id/floors/"))

	rooms, err := st.University.ExpandFloor(ctx, 11)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	_, err = st.University.ExpandFloor(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.HitCount("/floors/:id/rooms/"))

	groups, err := st.University.ExpandRoom(ctx, 101)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count)
	_, err = st.University.ExpandRoom(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.HitCount("/equipment/"))

	// После инвалидации комнаты следующий запрос снова идёт в сеть.
	st.University.InvalidateRoom(101)
	_, err = st.University.ExpandRoom(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.HitCount("/equipment/"))
}

// Мутация = запрос + полный перефетч; состояние обновляется только из ответа
// сервера.
func TestEquipmentUpdateRefetchesCollection(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)

	st := newTestStore(t, backend)
	ctx := context.Background()
	require.NoError(t, st.Equipment.Load(ctx))

	err := st.Equipment.Update(ctx, 21, dto.UpdateEquipmentDTO{
		Name: utils.ToPtr("ПК-101-1 (замена)"),
	})
	require.NoError(t, err)

	var updated *entities.Equipment
	for _, item := range st.Equipment.Items() {
		if item.ID == 21 {
			found := item
			updated = &found
		}
	}
	require.NotNil(t, updated)
	assert.Equal(t, "ПК-101-1 (замена)", updated.Name)
}

func TestEquipmentMutationFailurePushesNotification(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)

	st := newTestStore(t, backend)
	ctx := context.Background()

	err := st.Equipment.SendToRepair(ctx, 999999)
	require.Error(t, err)

	notes := st.Notifications.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, store.LevelError, notes[0].Level)
	assert.Contains(t, notes[0].Message, "Не удалось отправить в ремонт")
}

func TestEquipmentDerivedViews(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)

	st := newTestStore(t, backend)
	require.NoError(t, st.Equipment.Load(context.Background()))

	byStatus := st.Equipment.GroupedByStatus()
	assert.Len(t, byStatus[entities.StatusWorking], 2)
	assert.Len(t, byStatus[entities.StatusBroken], 1)

	inRoom := st.Equipment.FilterByRoom(101)
	assert.Len(t, inRoom, 2)

	groups := st.Equipment.GroupedByType()
	require.Len(t, groups, 2)
	assert.Equal(t, uint64(1), groups[0].TypeID)
	assert.Equal(t, 2, groups[0].Count)
}

// Перемещение сбрасывает кэш детей обеих комнат: повторное раскрытие
// после переноса снова идёт в сеть и видит новое расположение.
func TestMoveEquipmentInvalidatesBothRooms(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()
	seedBackend(backend)

	st := newTestStore(t, backend)
	ctx := context.Background()
	require.NoError(t, st.Equipment.Load(ctx))

	// Обе комнаты попадают в кэш.
	before101, err := st.University.ExpandRoom(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 2, before101[0].Count)
	_, err = st.University.ExpandRoom(ctx, 102)
	require.NoError(t, err)
	hitsBefore := backend.HitCount("/equipment/")

	require.NoError(t, st.MoveEquipment(ctx, dto.MoveEquipmentDTO{EquipmentID: 21, RoomID: 102}))

	after101, err := st.University.ExpandRoom(ctx, 101)
	require.NoError(t, err)
	after102, err := st.University.ExpandRoom(ctx, 102)
	require.NoError(t, err)

	assert.Greater(t, backend.HitCount("/equipment/"), hitsBefore)
	assert.Equal(t, 1, after101[0].Count)
	total102 := 0
	for _, group := range after102 {
		total102 += group.Count
	}
	assert.Equal(t, 2, total102)
}

func TestAuthLoginLogout(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	settings := store.NewSettings(filepath.Join(t.TempDir(), "state.yaml"), zap.NewNop())
	client := api.NewClient(backend.URL(), 5*time.Second, settings, zap.NewNop())
	st := store.New(client, settings, zap.NewNop())

	err := st.Auth.Login(context.Background(), dto.LoginDTO{Login: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, st.Auth.LoggedIn())
	assert.NotEmpty(t, settings.AccessToken())

	st.Auth.Logout()
	assert.False(t, st.Auth.LoggedIn())
	assert.Empty(t, settings.AccessToken())
	assert.Empty(t, settings.RefreshToken())
}

func TestAuthLoginValidation(t *testing.T) {
	backend := apitest.NewBackend()
	defer backend.Close()

	st := newTestStore(t, backend)

	err := st.Auth.Login(context.Background(), dto.LoginDTO{Login: "admin"})
	require.Error(t, err)
	assert.False(t, st.Auth.LoggedIn())

	// Невалидный payload не доходит до сети.
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "password")
}

func TestSettingsPersistAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	first := store.NewSettings(path, zap.NewNop())
	assert.Equal(t, "light", first.Theme())
	assert.Equal(t, 14, first.FontSize())
	assert.Equal(t, "ru", first.Language())
	assert.True(t, first.NotificationsEnabled())

	first.SetTheme("dark")
	first.SetFontSize(16)
	first.SetLanguage("tg")
	first.SetNotificationsEnabled(false)
	first.SetTokens("access-1", "refresh-1")

	second := store.NewSettings(path, zap.NewNop())
	assert.Equal(t, "dark", second.Theme())
	assert.Equal(t, 16, second.FontSize())
	assert.Equal(t, "tg", second.Language())
	assert.False(t, second.NotificationsEnabled())
	assert.Equal(t, "access-1", second.AccessToken())
	assert.Equal(t, "refresh-1", second.RefreshToken())
}
