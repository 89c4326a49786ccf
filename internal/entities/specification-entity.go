package entities

import (
	"fmt"
	"strings"

	"inventory-system/internal/typemap"
)

// Specification — сумма десяти вариантов характеристик. Тег Kind определяет,
// какой из указателей заполнен; остальные равны nil.
type Specification struct {
	Kind typemap.Kind `json:"kind"`

	Computer   *ComputerSpecification   `json:"computer,omitempty"`
	Notebook   *NotebookSpecification   `json:"notebook,omitempty"`
	Monoblok   *MonoblokSpecification   `json:"monoblok,omitempty"`
	Projector  *ProjectorSpecification  `json:"projector,omitempty"`
	Printer    *PrinterSpecification    `json:"printer,omitempty"`
	TV         *TVSpecification         `json:"tv,omitempty"`
	Router     *RouterSpecification     `json:"router,omitempty"`
	Whiteboard *WhiteboardSpecification `json:"whiteboard,omitempty"`
	Extender   *ExtenderSpecification   `json:"extender,omitempty"`
	Monitor    *MonitorSpecification    `json:"monitor,omitempty"`
}

type DiskSpecification struct {
	DiskType   string `json:"disk_type"`
	CapacityGB int    `json:"capacity_gb"`
}

type GPUSpecification struct {
	Model string `json:"model"`
}

type ComputerSpecification struct {
	ID                 uint64              `json:"id"`
	CPU                string              `json:"cpu"`
	RAM                string              `json:"ram"`
	DiskSpecifications []DiskSpecification `json:"disk_specifications"`
	GPUSpecifications  []GPUSpecification  `json:"gpu_specifications"`
	HasMouse           bool                `json:"has_mouse"`
	HasKeyboard        bool                `json:"has_keyboard"`
}

type NotebookSpecification struct {
	ID                 uint64              `json:"id"`
	CPU                string              `json:"cpu"`
	RAM                string              `json:"ram"`
	DiskSpecifications []DiskSpecification `json:"disk_specifications"`
	GPUSpecifications  []GPUSpecification  `json:"gpu_specifications"`
	ScreenSize         string              `json:"screen_size"`
}

type MonoblokSpecification struct {
	ID                 uint64              `json:"id"`
	CPU                string              `json:"cpu"`
	RAM                string              `json:"ram"`
	DiskSpecifications []DiskSpecification `json:"disk_specifications"`
	GPUSpecifications  []GPUSpecification  `json:"gpu_specifications"`
	ScreenSize         string              `json:"screen_size"`
	HasMouse           bool                `json:"has_mouse"`
	HasKeyboard        bool                `json:"has_keyboard"`
}

type ProjectorSpecification struct {
	ID         uint64 `json:"id"`
	Model      string `json:"model"`
	Lumens     int    `json:"lumens"`
	Resolution string `json:"resolution"`
	ThrowType  string `json:"throw_type"`
}

type PrinterSpecification struct {
	ID       uint64 `json:"id"`
	Model    string `json:"model"`
	Color    bool   `json:"color"`
	Duplex   bool   `json:"duplex"`
	PrintTec string `json:"print_technology"`
}

type TVSpecification struct {
	ID         uint64 `json:"id"`
	Model      string `json:"model"`
	ScreenSize string `json:"screen_size"`
	Resolution string `json:"resolution"`
}

type RouterSpecification struct {
	ID        uint64 `json:"id"`
	Model     string `json:"model"`
	Ports     int    `json:"ports"`
	WifiBands string `json:"wifi_bands"`
}

type WhiteboardSpecification struct {
	ID         uint64 `json:"id"`
	Model      string `json:"model"`
	ScreenSize string `json:"screen_size"`
	TouchType  string `json:"touch_type"`
}

type ExtenderSpecification struct {
	ID     uint64 `json:"id"`
	Ports  int    `json:"ports"`
	Length string `json:"length"`
}

type MonitorSpecification struct {
	ID         uint64 `json:"id"`
	Model      string `json:"model"`
	ScreenSize string `json:"screen_size"`
	Resolution string `json:"resolution"`
}

// ID возвращает идентификатор заполненного варианта.
func (s *Specification) RecordID() uint64 {
	switch s.Kind {
	case typemap.KindComputer:
		if s.Computer != nil {
			return s.Computer.ID
		}
	case typemap.KindNotebook:
		if s.Notebook != nil {
			return s.Notebook.ID
		}
	case typemap.KindMonoblok:
		if s.Monoblok != nil {
			return s.Monoblok.ID
		}
	case typemap.KindProjector:
		if s.Projector != nil {
			return s.Projector.ID
		}
	case typemap.KindPrinter:
		if s.Printer != nil {
			return s.Printer.ID
		}
	case typemap.KindTV:
		if s.TV != nil {
			return s.TV.ID
		}
	case typemap.KindRouter:
		if s.Router != nil {
			return s.Router.ID
		}
	case typemap.KindWhiteboard:
		if s.Whiteboard != nil {
			return s.Whiteboard.ID
		}
	case typemap.KindExtender:
		if s.Extender != nil {
			return s.Extender.ID
		}
	case typemap.KindMonitor:
		if s.Monitor != nil {
			return s.Monitor.ID
		}
	}
	return 0
}

// DiskDisplay форматирует массив дисков для отображения в read-only поле формы:
// "<объём>GB <тип>" через запятую, в порядке массива. Формат менять нельзя —
// на него завязаны сравнения при выборе шаблона.
func DiskDisplay(disks []DiskSpecification) string {
	if len(disks) == 0 {
		return ""
	}
	parts := make([]string, len(disks))
	for i, d := range disks {
		parts[i] = fmt.Sprintf("%dGB %s", d.CapacityGB, d.DiskType)
	}
	return strings.Join(parts, ", ")
}

// GPUDisplay перечисляет модели видеокарт через запятую.
func GPUDisplay(gpus []GPUSpecification) string {
	if len(gpus) == 0 {
		return ""
	}
	parts := make([]string, len(gpus))
	for i, g := range gpus {
		parts[i] = g.Model
	}
	return strings.Join(parts, ", ")
}
