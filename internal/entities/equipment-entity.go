package entities

import (
	"github.com/aarondl/null/v8"

	"inventory-system/internal/typemap"
)

// EquipmentType — запись фиксированного каталога типов (~10 штук).
type EquipmentType struct {
	ID                      uint64 `json:"id"`
	Name                    string `json:"name"`
	RequiresComputerDetails bool   `json:"requires_computer_details"`
}

type Equipment struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      EquipmentStatus `json:"status"`
	TypeID      uint64          `json:"type_id"`
	RoomID      uint64          `json:"room_id"`
	ContractID  null.Uint64     `json:"contract_id"`
	Inn         null.String     `json:"inn"`
	Image       null.String     `json:"image"`

	// FK на характеристики: заполнено не более одного поля,
	// какое именно — определяет typemap по названию типа.
	ComputerSpecificationID   null.Uint64 `json:"computer_specification_id"`
	NotebookSpecificationID   null.Uint64 `json:"notebook_specification_id"`
	MonoblokSpecificationID   null.Uint64 `json:"monoblok_specification_id"`
	ProjectorSpecificationID  null.Uint64 `json:"projector_specification_id"`
	PrinterSpecificationID    null.Uint64 `json:"printer_specification_id"`
	TVSpecificationID         null.Uint64 `json:"tv_specification_id"`
	RouterSpecificationID     null.Uint64 `json:"router_specification_id"`
	WhiteboardSpecificationID null.Uint64 `json:"whiteboard_specification_id"`
	ExtenderSpecificationID   null.Uint64 `json:"extender_specification_id"`
	MonitorSpecificationID    null.Uint64 `json:"monitor_specification_id"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	// Связанные данные (приходят развёрнутыми в некоторых ответах)
	Type *EquipmentType `json:"type,omitempty"`
	Room *Room          `json:"room,omitempty"`
}

// SpecificationID возвращает FK характеристик для данного семейства.
func (e *Equipment) SpecificationID(kind typemap.Kind) null.Uint64 {
	switch kind {
	case typemap.KindComputer:
		return e.ComputerSpecificationID
	case typemap.KindNotebook:
		return e.NotebookSpecificationID
	case typemap.KindMonoblok:
		return e.MonoblokSpecificationID
	case typemap.KindProjector:
		return e.ProjectorSpecificationID
	case typemap.KindPrinter:
		return e.PrinterSpecificationID
	case typemap.KindTV:
		return e.TVSpecificationID
	case typemap.KindRouter:
		return e.RouterSpecificationID
	case typemap.KindWhiteboard:
		return e.WhiteboardSpecificationID
	case typemap.KindExtender:
		return e.ExtenderSpecificationID
	case typemap.KindMonitor:
		return e.MonitorSpecificationID
	}
	return null.Uint64{}
}

type InnTemplate struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
