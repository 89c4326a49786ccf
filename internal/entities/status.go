package entities

// EquipmentStatus — жизненный цикл единицы оборудования.
type EquipmentStatus string

const (
	StatusNew         EquipmentStatus = "NEW"
	StatusWorking     EquipmentStatus = "WORKING"
	StatusNeedsRepair EquipmentStatus = "NEEDS_REPAIR"
	StatusBroken      EquipmentStatus = "BROKEN"
	StatusDisposed    EquipmentStatus = "DISPOSED"
)

var EquipmentStatuses = []EquipmentStatus{
	StatusNew,
	StatusWorking,
	StatusNeedsRepair,
	StatusBroken,
	StatusDisposed,
}

func (s EquipmentStatus) Valid() bool {
	for _, known := range EquipmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// RepairStatus — состояние записи о ремонте.
type RepairStatus string

const (
	RepairInProgress RepairStatus = "IN_PROGRESS"
	RepairCompleted  RepairStatus = "COMPLETED"
	RepairFailed     RepairStatus = "FAILED"
)
