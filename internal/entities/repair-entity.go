package entities

import "github.com/aarondl/null/v8"

// Repair и Disposal — append-only истории, создаются только действиями
// "отправить в ремонт", "завершить", "провалить", "списать".

type Repair struct {
	ID          uint64       `json:"id"`
	EquipmentID uint64       `json:"equipment_id"`
	Status      RepairStatus `json:"status"`
	StartedAt   string       `json:"started_at"`
	CompletedAt null.Time    `json:"completed_at"`
}

type Disposal struct {
	ID          uint64 `json:"id"`
	EquipmentID uint64 `json:"equipment_id"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
}
