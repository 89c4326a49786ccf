package dto

import (
	"github.com/aarondl/null/v8"

	"inventory-system/internal/entities"
	"inventory-system/internal/typemap"
)

// SpecificationRefs — FK-поля характеристик, которые бэкенд ожидает в
// payload'е оборудования. Заполняется не более одного поля (через Set).
type SpecificationRefs struct {
	ComputerSpecificationID   null.Uint64 `json:"computer_specification_id,omitempty"`
	NotebookSpecificationID   null.Uint64 `json:"notebook_specification_id,omitempty"`
	MonoblokSpecificationID   null.Uint64 `json:"monoblok_specification_id,omitempty"`
	ProjectorSpecificationID  null.Uint64 `json:"projector_specification_id,omitempty"`
	PrinterSpecificationID    null.Uint64 `json:"printer_specification_id,omitempty"`
	TVSpecificationID         null.Uint64 `json:"tv_specification_id,omitempty"`
	RouterSpecificationID     null.Uint64 `json:"router_specification_id,omitempty"`
	WhiteboardSpecificationID null.Uint64 `json:"whiteboard_specification_id,omitempty"`
	ExtenderSpecificationID   null.Uint64 `json:"extender_specification_id,omitempty"`
	MonitorSpecificationID    null.Uint64 `json:"monitor_specification_id,omitempty"`
}

func (r *SpecificationRefs) Set(kind typemap.Kind, id uint64) {
	value := null.Uint64From(id)
	switch kind {
	case typemap.KindComputer:
		r.ComputerSpecificationID = value
	case typemap.KindNotebook:
		r.NotebookSpecificationID = value
	case typemap.KindMonoblok:
		r.MonoblokSpecificationID = value
	case typemap.KindProjector:
		r.ProjectorSpecificationID = value
	case typemap.KindPrinter:
		r.PrinterSpecificationID = value
	case typemap.KindTV:
		r.TVSpecificationID = value
	case typemap.KindRouter:
		r.RouterSpecificationID = value
	case typemap.KindWhiteboard:
		r.WhiteboardSpecificationID = value
	case typemap.KindExtender:
		r.ExtenderSpecificationID = value
	case typemap.KindMonitor:
		r.MonitorSpecificationID = value
	}
}

// BulkCreateEquipmentDTO — одно обращение к API, создающее Count записей
// с общим префиксом имени и общим шаблоном характеристик.
type BulkCreateEquipmentDTO struct {
	NamePrefix  string                   `json:"name_prefix" validate:"required"`
	Description string                   `json:"description"`
	Status      entities.EquipmentStatus `json:"status" validate:"required"`
	TypeID      uint64                   `json:"type_id" validate:"required,gt=0"`
	RoomID      uint64                   `json:"room_id" validate:"required,gt=0"`
	ContractID  null.Uint64              `json:"contract_id,omitempty"`
	Count       int                      `json:"count" validate:"required,min=1"`

	SpecificationRefs
}

type UpdateEquipmentDTO struct {
	Name        *string                   `json:"name,omitempty"        validate:"omitempty"`
	Description *string                   `json:"description,omitempty" validate:"omitempty"`
	Status      *entities.EquipmentStatus `json:"status,omitempty"      validate:"omitempty"`
	RoomID      *uint64                   `json:"room_id,omitempty"     validate:"omitempty,gt=0"`
	ContractID  *uint64                   `json:"contract_id,omitempty" validate:"omitempty,gt=0"`

	SpecificationRefs
}

type InnAssignmentDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required,gt=0"`
	Inn         string `json:"inn" validate:"required"`
}

type BulkUpdateInnDTO struct {
	Items []InnAssignmentDTO `json:"items" validate:"required,min=1,dive"`
}

type BulkUpdateStatusDTO struct {
	EquipmentIDs []uint64                 `json:"equipment_ids" validate:"required,min=1"`
	Status       entities.EquipmentStatus `json:"status" validate:"required"`
}

type MoveEquipmentDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required,gt=0"`
	RoomID      uint64 `json:"room_id" validate:"required,gt=0"`
}

type DisposeEquipmentDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required"`
	Notes       string `json:"notes"`
}

type CreateInnTemplateDTO struct {
	Name string `json:"name" validate:"required"`
}
