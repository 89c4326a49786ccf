// Пакет export — печатные выгрузки: лист QR-наклеек (PDF) и реестр
// оборудования (xlsx).
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"inventory-system/internal/entities"
)

const (
	tilesPerRow  = 4
	rowsPerPage  = 6
	tilesPerPage = tilesPerRow * rowsPerPage

	pageWidth  = 210.0
	pageHeight = 297.0
	marginX    = 10.0
	marginTop  = 18.0
	marginBot  = 14.0

	qrSize = 25.0
)

type Options struct {
	QRImageURL  string // шаблон URL сервиса генерации кодов, %s = ИНН
	FontDir     string // каталог с картами кодировок gofpdf (cp1251.map)
	LogoPath    string
	OutputDir   string
	FileBase    string
	FetchPerSec float64
}

// Summary — итог выгрузки для проверки и показа пользователю.
type Summary struct {
	Pages        int
	Tiles        int
	Placeholders int // плитки "NO ID" (без ИНН, картинка не запрашивалась)
	FetchErrors  int // плитки "ERROR" (сервис кодов не ответил)
	FilePath     string
}

type Exporter struct {
	opts    Options
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewExporter(opts Options, logger *zap.Logger) *Exporter {
	perSec := opts.FetchPerSec
	if perSec <= 0 {
		perSec = 5
	}
	return &Exporter{
		opts:    opts,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(perSec), 1),
		logger:  logger,
	}
}

// ExportQRSheet строит многостраничный документ: 4 плитки в ряд, 6 рядов на
// страницу. Плитка — имя (не больше двух строк), ИНН и сканируемый код.
// Отказ одной картинки не валит выгрузку: вместо неё рисуется плашка ERROR.
func (e *Exporter) ExportQRSheet(ctx context.Context, items []entities.Equipment) (*Summary, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("нет записей для выгрузки")
	}

	// Кириллица в именах: стандартные шрифты gofpdf ждут однобайтовую
	// кодировку, текст прогоняется через транслятор cp1251. Без карты из
	// FontDir ошибка у gofpdf липкая, поэтому проверяем её сразу.
	pdf := gofpdf.New("P", "mm", "A4", e.opts.FontDir)
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	if pdf.Err() {
		return nil, fmt.Errorf("не удалось загрузить кодовую страницу cp1251: %w", pdf.Error())
	}
	pdf.AliasNbPages("")

	total := len(items)
	generated := time.Now()

	// Логотип — best effort: нет файла, нет логотипа. Проверка заранее,
	// потому что ошибка регистрации картинки у gofpdf фатальна для документа.
	logoPath := e.opts.LogoPath
	if logoPath != "" {
		if _, err := os.Stat(logoPath); err != nil {
			logoPath = ""
		}
	}

	pdf.SetHeaderFunc(func() {
		if logoPath != "" {
			pdf.ImageOptions(logoPath, marginX, 4, 0, 10, false, gofpdf.ImageOptions{}, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(pageWidth-marginX-20, 6)
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetY(pageHeight - 10)
		pdf.CellFormat(60, 5, generated.Format("02.01.2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(70, 5, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.CellFormat(60, 5, tr(fmt.Sprintf("Всего: %d", total)), "", 0, "R", false, 0, "")
	})

	summary := &Summary{Tiles: total}

	tileW := (pageWidth - 2*marginX) / tilesPerRow
	tileH := (pageHeight - marginTop - marginBot) / rowsPerPage

	for i, item := range items {
		posInPage := i % tilesPerPage
		if posInPage == 0 {
			pdf.AddPage()
			summary.Pages++
		}

		col := posInPage % tilesPerRow
		row := posInPage / tilesPerRow
		x := marginX + float64(col)*tileW
		y := marginTop + float64(row)*tileH

		e.drawTile(ctx, pdf, tr, item, i, x, y, tileW, tileH, summary)
	}

	fileName := fmt.Sprintf("%s-%s.pdf", e.opts.FileBase, generated.Format("2006-01-02"))
	path := filepath.Join(e.opts.OutputDir, fileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, fmt.Errorf("не удалось записать PDF: %w", err)
	}
	summary.FilePath = path

	e.logger.Info("Лист QR-наклеек сформирован",
		zap.Int("tiles", summary.Tiles),
		zap.Int("pages", summary.Pages),
		zap.String("file", path))
	return summary, nil
}

func (e *Exporter) drawTile(ctx context.Context, pdf *gofpdf.Fpdf, tr func(string) string, item entities.Equipment, index int, x, y, w, h float64, summary *Summary) {
	pdf.Rect(x+1, y+1, w-2, h-2, "D")

	// Имя — максимум две строки.
	pdf.SetFont("Helvetica", "B", 8)
	lines := pdf.SplitLines([]byte(tr(item.Name)), w-6)
	if len(lines) > 2 {
		lines = lines[:2]
	}
	textY := y + 3
	for _, line := range lines {
		pdf.SetXY(x+3, textY)
		pdf.CellFormat(w-6, 3.5, string(line), "", 0, "C", false, 0, "")
		textY += 3.5
	}

	imgX := x + (w-qrSize)/2
	imgY := y + 11

	if !item.Inn.Valid || item.Inn.String == "" {
		summary.Placeholders++
		e.drawPlaceholder(pdf, imgX, imgY, "NO ID")
		return
	}

	// ИНН под именем.
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(x+3, y+h-6)
	pdf.CellFormat(w-6, 4, item.Inn.String, "", 0, "C", false, 0, "")

	image, err := e.fetchCodeImage(ctx, item.Inn.String)
	if err != nil {
		summary.FetchErrors++
		e.logger.Warn("Не удалось получить картинку кода",
			zap.String("inn", item.Inn.String), zap.Error(err))
		e.drawPlaceholder(pdf, imgX, imgY, "ERROR")
		return
	}

	name := fmt.Sprintf("qr-%d-%s", index, item.Inn.String)
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(image))
	pdf.ImageOptions(name, imgX, imgY, qrSize, qrSize, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func (e *Exporter) drawPlaceholder(pdf *gofpdf.Fpdf, x, y float64, label string) {
	pdf.Rect(x, y, qrSize, qrSize, "D")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(x, y+qrSize/2-2)
	pdf.CellFormat(qrSize, 4, label, "", 0, "C", false, 0, "")
}

// fetchCodeImage забирает картинку у стороннего сервиса, не чаще лимита.
func (e *Exporter) fetchCodeImage(ctx context.Context, inn string) ([]byte, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	imageURL := fmt.Sprintf(e.opts.QRImageURL, url.QueryEscape(inn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("сервис кодов вернул статус %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
