package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"inventory-system/internal/entities"
)

// InventoryRow — строка реестра оборудования.
type InventoryRow struct {
	Name     string
	TypeName string
	Status   entities.EquipmentStatus
	Building string
	Room     string
	Inn      string
	Contract string
}

var inventoryHeaders = []string{
	"№", "Наименование", "Тип", "Статус", "Корпус", "Комната", "ИНН", "Договор",
}

// BuildInventoryReport собирает реестр в книгу xlsx: жирная шапка,
// по строке на единицу оборудования.
func BuildInventoryReport(rows []InventoryRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Реестр оборудования"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &inventoryHeaders)

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "H1", style)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			i + 1, row.Name, row.TypeName, string(row.Status),
			row.Building, row.Room, row.Inn, row.Contract,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// SaveInventoryReport пишет реестр в файл.
func SaveInventoryReport(path string, rows []InventoryRow) error {
	f, err := BuildInventoryReport(rows)
	if err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("не удалось сохранить реестр: %w", err)
	}
	return nil
}
