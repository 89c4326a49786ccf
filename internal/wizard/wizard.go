// Пакет wizard — трёхшаговый мастер создания оборудования:
// общие атрибуты -> выбор шаблона характеристик -> присвоение ИНН.
// Переходы гейтятся пошаговой валидацией; сетевые вызовы внутри шага идут
// строго последовательно. Отмена на любом шаге сбрасывает локальное
// состояние и НЕ откатывает уже созданные записи — частично созданное
// оборудование без ИНН остаётся на сервере (осознанный компромисс).
package wizard

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/store"
	"inventory-system/internal/typemap"
	"inventory-system/pkg/apperrors"
	"inventory-system/pkg/validation"
)

type Step int

const (
	StepGeneralInfo Step = iota
	StepSpecificationSelect
	StepIdentifierAssignment
	StepCompleted
)

// GeneralForm — данные первого шага.
type GeneralForm struct {
	NamePrefix  string                   `json:"name_prefix" validate:"required"`
	Description string                   `json:"description"`
	Status      entities.EquipmentStatus `json:"status" validate:"required"`
	TypeID      uint64                   `json:"type_id" validate:"required,gt=0"`
	RoomID      uint64                   `json:"room_id" validate:"required,gt=0"`
	ContractID  null.Uint64              `json:"contract_id"`
	Count       int                      `json:"count" validate:"min=1"`
}

// Row — созданная запись, ожидающая ИНН на третьем шаге. Suggestion —
// только подсказка-плейсхолдер: пустое значение при отправке остаётся
// ошибкой валидации, автоподстановки нет.
type Row struct {
	EquipmentID uint64
	Name        string
	Inn         string
	Suggestion  string
}

type Wizard struct {
	store     *store.Store
	validator *validation.Validator
	logger    *zap.Logger

	step     Step
	general  GeneralForm
	typeInfo *typemap.TypeInfo
	selected *entities.Specification
	created  []entities.Equipment
	rows     []Row
}

func New(st *store.Store, logger *zap.Logger) *Wizard {
	return &Wizard{
		store:     st,
		validator: validation.New(),
		logger:    logger,
		step:      StepGeneralInfo,
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Rows() []Row {
	out := make([]Row, len(w.rows))
	copy(out, w.rows)
	return out
}

func (w *Wizard) CreatedEquipment() []entities.Equipment {
	out := make([]entities.Equipment, len(w.created))
	copy(out, w.created)
	return out
}

// SubmitGeneralInfo — переход GeneralInfo -> SpecificationSelect.
// При ошибках валидации мастер остаётся на нулевом шаге, ошибки полей
// возвращаются для показа рядом с полями.
func (w *Wizard) SubmitGeneralInfo(form GeneralForm) error {
	if w.step != StepGeneralInfo {
		return fmt.Errorf("недопустимый шаг мастера: %d", w.step)
	}
	if form.Count == 0 {
		form.Count = 1
	}
	if err := w.validator.Validate(form); err != nil {
		return err
	}
	if !form.Status.Valid() {
		return apperrors.NewFieldError("status", "недопустимый статус")
	}

	w.general = form

	// Семейство характеристик определяется по названию типа через единый
	// справочник. Тип без семейства валиден: шаг выбора шаблона тогда
	// пропускает выбор и создаёт записи без характеристик.
	w.typeInfo = nil
	if equipmentType, ok := w.store.Equipment.TypeByID(form.TypeID); ok {
		if info, matched := typemap.Resolve(equipmentType.Name); matched {
			w.typeInfo = info
		}
	}

	w.step = StepSpecificationSelect
	return nil
}

// Templates — доступные шаблоны для выбранного типа (пусто, если у типа
// нет семейства характеристик).
func (w *Wizard) Templates() []entities.Specification {
	if w.typeInfo == nil {
		return nil
	}
	return w.store.Specifications.ForKind(w.typeInfo.Kind)
}

// SelectSpecification фиксирует шаблон по id. Нулевой id очищает выбор.
func (w *Wizard) SelectSpecification(id uint64) error {
	if w.typeInfo == nil {
		return apperrors.NewFieldError("specification", "у этого типа нет характеристик")
	}
	if id == 0 {
		w.selected = nil
		return nil
	}
	spec, ok := w.store.Specifications.ByID(w.typeInfo.Kind, id)
	if !ok {
		return apperrors.ErrNotFound
	}
	w.selected = spec
	return nil
}

// Preview — производные read-only поля формы из выбранного шаблона
// (оператор выбирает шаблон целиком, отдельные атрибуты не редактирует).
func (w *Wizard) Preview() *TemplatePreview {
	if w.selected == nil {
		return &TemplatePreview{}
	}
	return BuildPreview(*w.selected)
}

// SubmitSpecification — переход SpecificationSelect -> IdentifierAssignment.
// Требует выбранный шаблон, кроме случая, когда шаблонов у семейства нет
// вовсе (или у типа нет семейства) — тогда создание идёт без характеристик.
// Единственный bulk-create создаёт Count записей; при отказе мастер остаётся
// на шаге выбора для повторной попытки.
func (w *Wizard) SubmitSpecification(ctx context.Context) error {
	if w.step != StepSpecificationSelect {
		return fmt.Errorf("недопустимый шаг мастера: %d", w.step)
	}

	if w.selected == nil && w.typeInfo != nil && len(w.Templates()) > 0 {
		return apperrors.NewFieldError("specification", "выберите шаблон характеристик")
	}

	payload := dto.BulkCreateEquipmentDTO{
		NamePrefix:  w.general.NamePrefix,
		Description: w.general.Description,
		Status:      w.general.Status,
		TypeID:      w.general.TypeID,
		RoomID:      w.general.RoomID,
		ContractID:  w.general.ContractID,
		Count:       w.general.Count,
	}
	if w.selected != nil {
		payload.Set(w.selected.Kind, w.selected.RecordID())
	}

	created, err := w.store.Client().BulkCreateEquipment(ctx, payload)
	if err != nil {
		w.logger.Warn("Массовое создание оборудования не удалось", zap.Error(err))
		w.store.Notifications.Push(store.LevelError, "Не удалось создать оборудование: "+err.Error())
		return err
	}

	w.created = created
	w.rows = make([]Row, len(created))
	for i, item := range created {
		w.rows[i] = Row{
			EquipmentID: item.ID,
			Name:        item.Name,
			Suggestion:  fmt.Sprintf("%s%03d", w.general.NamePrefix, i+1),
		}
	}
	w.step = StepIdentifierAssignment
	return nil
}

func (w *Wizard) SetIdentifier(index int, value string) error {
	if index < 0 || index >= len(w.rows) {
		return apperrors.ErrBadRequest
	}
	w.rows[index].Inn = value
	return nil
}

// SubmitIdentifiers — переход IdentifierAssignment -> Completed.
// Каждая строка обязана иметь непустой ИНН; иначе отправка отклоняется
// и bulk-запрос не выполняется вовсе.
func (w *Wizard) SubmitIdentifiers(ctx context.Context) error {
	if w.step != StepIdentifierAssignment {
		return fmt.Errorf("недопустимый шаг мастера: %d", w.step)
	}

	fields := map[string]string{}
	items := make([]dto.InnAssignmentDTO, 0, len(w.rows))
	for i, row := range w.rows {
		if row.Inn == "" {
			fields[fmt.Sprintf("inn_%d", i)] = "обязательное поле"
			continue
		}
		items = append(items, dto.InnAssignmentDTO{EquipmentID: row.EquipmentID, Inn: row.Inn})
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	if err := w.store.Client().BulkUpdateInn(ctx, dto.BulkUpdateInnDTO{Items: items}); err != nil {
		w.logger.Warn("Массовое присвоение ИНН не удалось", zap.Error(err))
		w.store.Notifications.Push(store.LevelError, "Не удалось присвоить ИНН: "+err.Error())
		return err
	}

	for i := range w.created {
		w.created[i].Inn = null.StringFrom(w.rows[i].Inn)
	}

	// Сверка с сервером после мутации.
	if err := w.store.Equipment.Load(ctx); err != nil {
		w.logger.Warn("Перезагрузка оборудования после мастера не удалась", zap.Error(err))
	}

	w.step = StepCompleted
	return nil
}

func (w *Wizard) Completed() bool { return w.step == StepCompleted }

// Cancel сбрасывает мастер в исходное состояние. Записи, созданные на шаге
// выбора шаблона, НЕ удаляются: отката частичного создания нет.
func (w *Wizard) Cancel() {
	w.step = StepGeneralInfo
	w.general = GeneralForm{}
	w.typeInfo = nil
	w.selected = nil
	w.created = nil
	w.rows = nil
}
