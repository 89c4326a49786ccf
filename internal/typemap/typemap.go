// Пакет typemap — единый справочник соответствия "тип оборудования -> семейство
// характеристик". Все потребители (мастер создания, стор, группировка по комнатам)
// обязаны использовать именно его: расхождение копий таблицы считается дефектом.
package typemap

import "strings"

type Kind string

const (
	KindComputer   Kind = "computer"
	KindNotebook   Kind = "notebook"
	KindMonoblok   Kind = "monoblok"
	KindProjector  Kind = "projector"
	KindPrinter    Kind = "printer"
	KindTV         Kind = "tv"
	KindRouter     Kind = "router"
	KindWhiteboard Kind = "whiteboard"
	KindExtender   Kind = "extender"
	KindMonitor    Kind = "monitor"
)

// Kinds перечисляет все семейства в фиксированном порядке (порядок фетча стора).
var Kinds = []Kind{
	KindComputer,
	KindNotebook,
	KindMonoblok,
	KindProjector,
	KindPrinter,
	KindTV,
	KindRouter,
	KindWhiteboard,
	KindExtender,
	KindMonitor,
}

// TypeInfo описывает, где живут характеристики данного семейства:
// имя FK-поля в записи оборудования и REST-подресурс.
type TypeInfo struct {
	Kind      Kind
	FieldName string
	Resource  string
}

type entry struct {
	keywords []string
	info     TypeInfo
}

// Порядок записей значим: первое совпадение выигрывает. "моноблок" стоит
// раньше "компьютер" — моноблок является компьютером, но хранит характеристики
// в своём подресурсе.
var table = []entry{
	{[]string{"моноблок"}, TypeInfo{KindMonoblok, "monoblok_specification_id", "monoblok-specifications"}},
	{[]string{"ноутбук"}, TypeInfo{KindNotebook, "notebook_specification_id", "notebook-specifications"}},
	{[]string{"компьютер"}, TypeInfo{KindComputer, "computer_specification_id", "computer-specifications"}},
	{[]string{"проектор"}, TypeInfo{KindProjector, "projector_specification_id", "projector-specifications"}},
	{[]string{"принтер", "мфу"}, TypeInfo{KindPrinter, "printer_specification_id", "printer-specifications"}},
	{[]string{"телевизор"}, TypeInfo{KindTV, "tv_specification_id", "tv-specifications"}},
	{[]string{"роутер", "маршрутизатор"}, TypeInfo{KindRouter, "router_specification_id", "router-specifications"}},
	{[]string{"доска"}, TypeInfo{KindWhiteboard, "whiteboard_specification_id", "whiteboard-specifications"}},
	{[]string{"удлинитель"}, TypeInfo{KindExtender, "extender_specification_id", "extender-specifications"}},
	{[]string{"монитор"}, TypeInfo{KindMonitor, "monitor_specification_id", "monitor-specifications"}},
}

// Resolve сопоставляет название типа оборудования семейству характеристик.
// Сравнение — по подстроке в нижнем регистре. Если ни одно ключевое слово не
// совпало, возвращается (nil, false): у такого типа характеристик нет
// (например, мебель с одним текстовым описанием).
func Resolve(name string) (*TypeInfo, bool) {
	lowered := strings.ToLower(name)
	for _, e := range table {
		for _, kw := range e.keywords {
			if strings.Contains(lowered, kw) {
				info := e.info
				return &info, true
			}
		}
	}
	return nil, false
}

// ByKind возвращает TypeInfo по тегу семейства.
func ByKind(kind Kind) (*TypeInfo, bool) {
	for _, e := range table {
		if e.info.Kind == kind {
			info := e.info
			return &info, true
		}
	}
	return nil, false
}
