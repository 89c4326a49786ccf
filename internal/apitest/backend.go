// Пакет apitest — встраиваемый фальшивый бэкенд инвентаризации для тестов
// клиента. Реализует ровно тот срез REST-контракта, который нужен тестам,
// и считает обращения, чтобы тесты могли проверять количество вызовов.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/typemap"
)

const secretKey = "test-secret-key"

type claims struct {
	UserID         uint64 `json:"userId"`
	IsRefreshToken bool   `json:"isRefreshToken"`
	jwt.RegisteredClaims
}

type Backend struct {
	Server *httptest.Server

	mu sync.Mutex

	// Счётчики для проверок в тестах.
	RefreshCalls    int
	BulkCreateCalls int
	BulkInnCalls    int
	Hits            map[string]int

	// Роуты, которые должны отвечать 500 (для теста частичной загрузки).
	Fail map[string]bool

	nextID       uint64
	Equipment    map[uint64]*entities.Equipment
	Types        []entities.EquipmentType
	Buildings    []entities.Building
	Floors       map[uint64][]entities.Floor
	Rooms        map[uint64][]entities.Room
	Contracts    []entities.Contract
	InnTemplates []entities.InnTemplate
	Repairs      map[uint64]*entities.Repair
	Disposals    []entities.Disposal

	// Шаблоны характеристик: значения — структуры вариантов.
	Specs map[typemap.Kind][]interface{}
}

func NewBackend() *Backend {
	b := &Backend{
		Hits:      map[string]int{},
		Fail:      map[string]bool{},
		nextID:    1000,
		Equipment: map[uint64]*entities.Equipment{},
		Floors:    map[uint64][]entities.Floor{},
		Rooms:     map[uint64][]entities.Room{},
		Repairs:   map[uint64]*entities.Repair{},
		Specs:     map[typemap.Kind][]interface{}{},
	}

	e := echo.New()
	e.HideBanner = true

	e.POST("/user/login/", b.handleLogin)
	e.POST("/user/login/refresh/", b.handleRefresh)

	auth := e.Group("", b.authMiddleware)
	auth.GET("/equipment/", b.handleEquipmentList)
	auth.GET("/equipment/:id/", b.handleEquipmentGet)
	auth.PATCH("/equipment/:id/", b.handleEquipmentPatch)
	auth.DELETE("/equipment/:id/", b.handleEquipmentDelete)
	auth.POST("/equipment/bulk-create/", b.handleBulkCreate)
	auth.POST("/equipment/bulk-update-inn/", b.handleBulkInn)
	auth.POST("/equipment/bulk-update-status/", b.handleBulkStatus)
	auth.POST("/equipment/send-to-repair/", b.handleSendToRepair)
	auth.POST("/equipment/dispose/", b.handleDispose)
	auth.POST("/equipment/move/", b.handleMove)
	auth.GET("/equipment/scan-qr/", b.handleScanQR)
	auth.GET("/equipment-types/", b.handleTypes)
	auth.GET("/buildings/", b.handleBuildings)
	auth.GET("/buildings/:id/floors/", b.handleFloors)
	auth.GET("/floors/:id/rooms/", b.handleRooms)
	auth.GET("/contracts/", b.handleContractList)
	auth.POST("/contracts/", b.handleContractCreate)
	auth.GET("/inn-templates/", b.handleInnTemplates)
	auth.GET("/repairs/", b.handleRepairs)
	auth.POST("/repairs/:id/complete/", b.handleRepairComplete)
	auth.POST("/repairs/:id/fail/", b.handleRepairFail)
	auth.GET("/disposals/", b.handleDisposals)

	for _, kind := range typemap.Kinds {
		info, _ := typemap.ByKind(kind)
		k := kind
		auth.GET("/"+info.Resource+"/", func(c echo.Context) error {
			return b.handleSpecList(c, k)
		})
		auth.POST("/"+info.Resource+"/", func(c echo.Context) error {
			return b.handleSpecCreate(c, k)
		})
		auth.PUT("/"+info.Resource+"/:id/", func(c echo.Context) error {
			return b.handleSpecUpdate(c, k)
		})
		auth.DELETE("/"+info.Resource+"/:id/", func(c echo.Context) error {
			return b.handleSpecDelete(c, k)
		})
	}

	b.Server = httptest.NewServer(e)
	return b
}

func (b *Backend) Close() { b.Server.Close() }

func (b *Backend) URL() string { return b.Server.URL }

// SetFail включает (или выключает) ответ 500 для указанного роута.
func (b *Backend) SetFail(path string, fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Fail[path] = fail
}

func (b *Backend) RefreshCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.RefreshCalls
}

func (b *Backend) BulkCreateCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.BulkCreateCalls
}

func (b *Backend) BulkInnCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.BulkInnCalls
}

// HitCount — число обращений к роуту (ключ — шаблон пути echo).
func (b *Backend) HitCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Hits[path]
}

// EquipmentSnapshot — копия записи с сервера (для проверок состояния).
func (b *Backend) EquipmentSnapshot(id uint64) (entities.Equipment, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	item, ok := b.Equipment[id]
	if !ok {
		return entities.Equipment{}, false
	}
	return *item, true
}

// EquipmentCount — текущее число записей оборудования на сервере.
func (b *Backend) EquipmentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Equipment)
}

// AddEquipment кладёт запись в хранилище бэкенда (наполнение фикстур).
func (b *Backend) AddEquipment(item entities.Equipment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	copied := item
	b.Equipment[item.ID] = &copied
}

// IssueTokens выпускает пару HS512-токенов с указанным временем жизни access.
func (b *Backend) IssueTokens(accessTTL time.Duration) (string, string) {
	access := mintToken(false, accessTTL)
	refresh := mintToken(true, 24*time.Hour)
	return access, refresh
}

func mintToken(isRefresh bool, ttl time.Duration) string {
	c := &claims{
		UserID:         1,
		IsRefreshToken: isRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, c)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		panic(err)
	}
	return signed
}

func parseToken(tokenString string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("невалидный токен")
	}
	return c, nil
}

func (b *Backend) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		b.Hits[c.Path()]++
		failed := b.Fail[c.Path()]
		b.mu.Unlock()

		if failed {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "внутренняя ошибка"})
		}

		header := c.Request().Header.Get("Authorization")
		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "неавторизован"})
		}
		claims, err := parseToken(parts[1])
		if err != nil || claims.IsRefreshToken {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "неавторизован"})
		}
		return next(c)
	}
}

func (b *Backend) handleLogin(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}
	if payload.Password != "password123" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "неверные учётные данные"})
	}
	access, refresh := b.IssueTokens(time.Hour)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"access":  access,
		"refresh": refresh,
		"user":    dto.UserDTO{ID: 1, Fio: "Тестовый Пользователь", Login: payload.Login},
	})
}

func (b *Backend) handleRefresh(c echo.Context) error {
	b.mu.Lock()
	b.RefreshCalls++
	failed := b.Fail["/user/login/refresh/"]
	b.mu.Unlock()

	if failed {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "refresh-токен отклонён"})
	}

	var payload struct {
		Refresh string `json:"refresh"`
	}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}
	claims, err := parseToken(payload.Refresh)
	if err != nil || !claims.IsRefreshToken {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "refresh-токен отклонён"})
	}

	access, refresh := b.IssueTokens(time.Hour)
	return c.JSON(http.StatusOK, map[string]string{"access": access, "refresh": refresh})
}

func (b *Backend) handleEquipmentList(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]entities.Equipment, 0, len(b.Equipment))
	roomFilter := c.QueryParam("room")
	for _, item := range b.Equipment {
		if roomFilter != "" {
			roomID, _ := strconv.ParseUint(roomFilter, 10, 64)
			if item.RoomID != roomID {
				continue
			}
		}
		items = append(items, *item)
	}
	sortEquipment(items)
	return c.JSON(http.StatusOK, items)
}

func (b *Backend) handleEquipmentGet(c echo.Context) error {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	item, ok := b.Equipment[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
	}
	return c.JSON(http.StatusOK, item)
}

func (b *Backend) handleEquipmentPatch(c echo.Context) error {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var payload dto.UpdateEquipmentDTO
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	item, ok := b.Equipment[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
	}
	if payload.Name != nil {
		item.Name = *payload.Name
	}
	if payload.Description != nil {
		item.Description = *payload.Description
	}
	if payload.Status != nil {
		item.Status = *payload.Status
	}
	if payload.RoomID != nil {
		item.RoomID = *payload.RoomID
	}
	return c.JSON(http.StatusOK, item)
}

func (b *Backend) handleEquipmentDelete(c echo.Context) error {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.Equipment, id)
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) handleBulkCreate(c echo.Context) error {
	var payload dto.BulkCreateEquipmentDTO
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.BulkCreateCalls++

	created := make([]entities.Equipment, 0, payload.Count)
	for i := 0; i < payload.Count; i++ {
		b.nextID++
		item := entities.Equipment{
			ID:          b.nextID,
			Name:        fmt.Sprintf("%s-%d", payload.NamePrefix, i+1),
			Description: payload.Description,
			Status:      payload.Status,
			TypeID:      payload.TypeID,
			RoomID:      payload.RoomID,
			ContractID:  payload.ContractID,
		}
		item.ComputerSpecificationID = payload.ComputerSpecificationID
		item.NotebookSpecificationID = payload.NotebookSpecificationID
		item.MonoblokSpecificationID = payload.MonoblokSpecificationID
		item.ProjectorSpecificationID = payload.ProjectorSpecificationID
		item.PrinterSpecificationID = payload.PrinterSpecificationID
		item.TVSpecificationID = payload.TVSpecificationID
		item.RouterSpecificationID = payload.RouterSpecificationID
		item.WhiteboardSpecificationID = payload.WhiteboardSpecificationID
		item.ExtenderSpecificationID = payload.ExtenderSpecificationID
		item.MonitorSpecificationID = payload.MonitorSpecificationID

		b.Equipment[item.ID] = &item
		created = append(created, item)
	}
	return c.JSON(http.StatusCreated, created)
}

func (b *Backend) handleBulkInn(c echo.Context) error {
	var payload dto.BulkUpdateInnDTO
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.BulkInnCalls++

	for _, item := range payload.Items {
		record, ok := b.Equipment[item.EquipmentID]
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
		}
		record.Inn.SetValid(item.Inn)
	}
	return c.NoContent(http.StatusOK)
}

func (b *Backend) handleBulkStatus(c echo.Context) error {
	var payload dto.BulkUpdateStatusDTO
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range payload.EquipmentIDs {
		if record, ok := b.Equipment[id]; ok {
			record.Status = payload.Status
		}
	}
	return c.NoContent(http.StatusOK)
}

func (b *Backend) handleSendToRepair(c echo.Context) error {
	var payload struct {
		EquipmentID uint64 `json:"equipment_id"`
	}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	record, ok := b.Equipment[payload.EquipmentID]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
	}
	record.Status = entities.StatusNeedsRepair

	b.nextID++
	repair := &entities.Repair{
		ID:          b.nextID,
		EquipmentID: payload.EquipmentID,
		Status:      entities.RepairInProgress,
		StartedAt:   time.Now().Format(time.RFC3339),
	}
	b.Repairs[repair.ID] = repair
	return c.JSON(http.StatusCreated, repair)
}

func (b *Backend) handleDispose(c echo.Context) error {
	var payload dto.DisposeEquipmentDTO
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	record, ok := b.Equipment[payload.EquipmentID]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
	}
	record.Status = entities.StatusDisposed

	b.nextID++
	disposal := entities.Disposal{
		ID:          b.nextID,
		EquipmentID: payload.EquipmentID,
		Reason:      payload.Reason,
		Notes:       payload.Notes,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	b.Disposals = append(b.Disposals, disposal)
	return c.JSON(http.StatusCreated, disposal)
}

func (b *Backend) handleMove(c echo.Context) error {
	var payload dto.MoveEquipmentDTO
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	record, ok := b.Equipment[payload.EquipmentID]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
	}
	record.RoomID = payload.RoomID
	return c.JSON(http.StatusOK, record)
}

func (b *Backend) handleScanQR(c echo.Context) error {
	inn := c.QueryParam("inn")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, record := range b.Equipment {
		if record.Inn.Valid && record.Inn.String == inn {
			return c.JSON(http.StatusOK, record)
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
}

func (b *Backend) handleTypes(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.Types)
}

func (b *Backend) handleBuildings(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.Buildings)
}

func (b *Backend) handleFloors(c echo.Context) error {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.Floors[id])
}

func (b *Backend) handleRooms(c echo.Context) error {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.Rooms[id])
}

func (b *Backend) handleContractList(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.Contracts)
}

// handleContractCreate принимает и JSON, и multipart (когда приложен файл).
func (b *Backend) handleContractCreate(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	contract := entities.Contract{AuthorID: 1}
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		contract.Number = c.FormValue("number")
		contract.SignedDate = c.FormValue("signed_date")
		if file, err := c.FormFile("file"); err == nil {
			contract.File.SetValid(file.Filename)
		}
	} else {
		var payload dto.CreateContractDTO
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "неверный запрос"})
		}
		contract.Number = payload.Number
		contract.SignedDate = payload.SignedDate
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	contract.ID = b.nextID
	b.Contracts = append(b.Contracts, contract)
	return c.JSON(http.StatusCreated, contract)
}

func (b *Backend) handleInnTemplates(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.InnTemplates)
}

func (b *Backend) handleRepairs(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]entities.Repair, 0, len(b.Repairs))
	for _, r := range b.Repairs {
		items = append(items, *r)
	}
	return c.JSON(http.StatusOK, items)
}

func (b *Backend) handleRepairComplete(c echo.Context) error {
	return b.finishRepair(c, entities.RepairCompleted, entities.StatusWorking)
}

func (b *Backend) handleRepairFail(c echo.Context) error {
	return b.finishRepair(c, entities.RepairFailed, entities.StatusBroken)
}

func (b *Backend) finishRepair(c echo.Context, status entities.RepairStatus, equipmentStatus entities.EquipmentStatus) error {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	repair, ok := b.Repairs[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
	}
	repair.Status = status
	repair.CompletedAt.SetValid(time.Now())
	if record, ok := b.Equipment[repair.EquipmentID]; ok {
		record.Status = equipmentStatus
	}
	return c.JSON(http.StatusOK, repair)
}

func (b *Backend) handleDisposals(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.Disposals)
}

func (b *Backend) handleSpecList(c echo.Context, kind typemap.Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.Specs[kind]
	if items == nil {
		items = []interface{}{}
	}
	return c.JSON(http.StatusOK, items)
}

func (b *Backend) handleSpecCreate(c echo.Context, kind typemap.Kind) error {
	payload := map[string]interface{}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "некорректное тело запроса"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	payload["id"] = b.nextID
	b.Specs[kind] = append(b.Specs[kind], payload)
	return c.JSON(http.StatusCreated, payload)
}

func (b *Backend) handleSpecUpdate(c echo.Context, kind typemap.Kind) error {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	payload := map[string]interface{}{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "некорректное тело запроса"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, item := range b.Specs[kind] {
		if specID(item) != id {
			continue
		}
		payload["id"] = id
		b.Specs[kind][i] = payload
		return c.JSON(http.StatusOK, payload)
	}
	return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
}

func (b *Backend) handleSpecDelete(c echo.Context, kind typemap.Kind) error {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, item := range b.Specs[kind] {
		if specID(item) != id {
			continue
		}
		b.Specs[kind] = append(b.Specs[kind][:i], b.Specs[kind][i+1:]...)
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusNotFound, map[string]string{"message": "запись не найдена"})
}

// specID достаёт id из записи характеристик независимо от того, засеяна она
// типизированной структурой или создана обработчиком как map.
func specID(item interface{}) uint64 {
	raw, err := json.Marshal(item)
	if err != nil {
		return 0
	}
	var rec struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return 0
	}
	return rec.ID
}

func sortEquipment(items []entities.Equipment) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
