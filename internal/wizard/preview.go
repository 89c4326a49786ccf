package wizard

import (
	"strconv"

	"inventory-system/internal/entities"
	"inventory-system/internal/typemap"
)

// TemplatePreview — значения заблокированных полей формы, производные от
// выбранного шаблона. Пустой выбор (id == 0) означает пустой превью —
// все поля очищаются.
type TemplatePreview struct {
	CPU         string
	RAM         string
	DiskDisplay string
	GPUDisplay  string
	HasMouse    bool
	HasKeyboard bool
	Model       string
	Lumens      string
	Resolution  string
	ThrowType   string
	ScreenSize  string
	Ports       string
	WifiBands   string
	TouchType   string
	Length      string
	Color       bool
	Duplex      bool
}

func BuildPreview(spec entities.Specification) *TemplatePreview {
	p := &TemplatePreview{}
	switch spec.Kind {
	case typemap.KindComputer:
		if c := spec.Computer; c != nil {
			p.CPU = c.CPU
			p.RAM = c.RAM
			p.DiskDisplay = entities.DiskDisplay(c.DiskSpecifications)
			p.GPUDisplay = entities.GPUDisplay(c.GPUSpecifications)
			p.HasMouse = c.HasMouse
			p.HasKeyboard = c.HasKeyboard
		}
	case typemap.KindNotebook:
		if n := spec.Notebook; n != nil {
			p.CPU = n.CPU
			p.RAM = n.RAM
			p.DiskDisplay = entities.DiskDisplay(n.DiskSpecifications)
			p.GPUDisplay = entities.GPUDisplay(n.GPUSpecifications)
			p.ScreenSize = n.ScreenSize
		}
	case typemap.KindMonoblok:
		if m := spec.Monoblok; m != nil {
			p.CPU = m.CPU
			p.RAM = m.RAM
			p.DiskDisplay = entities.DiskDisplay(m.DiskSpecifications)
			p.GPUDisplay = entities.GPUDisplay(m.GPUSpecifications)
			p.ScreenSize = m.ScreenSize
			p.HasMouse = m.HasMouse
			p.HasKeyboard = m.HasKeyboard
		}
	case typemap.KindProjector:
		if pr := spec.Projector; pr != nil {
			p.Model = pr.Model
			p.Lumens = strconv.Itoa(pr.Lumens)
			p.Resolution = pr.Resolution
			p.ThrowType = pr.ThrowType
		}
	case typemap.KindPrinter:
		if pr := spec.Printer; pr != nil {
			p.Model = pr.Model
			p.Color = pr.Color
			p.Duplex = pr.Duplex
		}
	case typemap.KindTV:
		if tv := spec.TV; tv != nil {
			p.Model = tv.Model
			p.ScreenSize = tv.ScreenSize
			p.Resolution = tv.Resolution
		}
	case typemap.KindRouter:
		if r := spec.Router; r != nil {
			p.Model = r.Model
			p.Ports = strconv.Itoa(r.Ports)
			p.WifiBands = r.WifiBands
		}
	case typemap.KindWhiteboard:
		if wb := spec.Whiteboard; wb != nil {
			p.Model = wb.Model
			p.ScreenSize = wb.ScreenSize
			p.TouchType = wb.TouchType
		}
	case typemap.KindExtender:
		if ex := spec.Extender; ex != nil {
			p.Ports = strconv.Itoa(ex.Ports)
			p.Length = ex.Length
		}
	case typemap.KindMonitor:
		if m := spec.Monitor; m != nil {
			p.Model = m.Model
			p.ScreenSize = m.ScreenSize
			p.Resolution = m.Resolution
		}
	}
	return p
}
