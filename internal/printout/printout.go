package printout

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"

	"family-calendar/internal/calendar/service"

	"github.com/signintech/gopdf"
)

const DefaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"

var ErrFontUnavailable = errors.New("printout font not available")

const (
	marginLeft = 40.0
	pageBottom = 800.0
	lineHeight = 18.0
	fontName   = "body"
)

// Column x positions on an A4 portrait page.
var columns = struct{ date, time, title, owner float64 }{40, 140, 240, 470}

// Generator lays out the upcoming rows as a one-column A4 list for printing,
// with the subscription QR code in the header when one is given.
type Generator struct {
	FontPath string
	Title    string
}

func NewGenerator(fontPath string) *Generator {
	if fontPath == "" {
		fontPath = DefaultFontPath
	}
	return &Generator{FontPath: fontPath, Title: "Familienkalender"}
}

// Available reports whether the TTF font can be read.
func (g *Generator) Available() bool {
	_, err := os.Stat(g.FontPath)
	return err == nil
}

func (g *Generator) Generate(rows []service.UpcomingRow, from time.Time, days int, qrCode []byte) ([]byte, error) {
	if !g.Available() {
		return nil, fmt.Errorf("%w: %s", ErrFontUnavailable, g.FontPath)
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := pdf.AddTTFFont(fontName, g.FontPath); err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	if err := g.addHeader(pdf, from, days, qrCode); err != nil {
		return nil, err
	}
	if err := addRows(pdf, rows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) addHeader(pdf *gopdf.GoPdf, from time.Time, days int, qrCode []byte) error {
	if err := pdf.SetFont(fontName, "", 20); err != nil {
		return fmt.Errorf("failed to set font: %w", err)
	}
	pdf.SetXY(marginLeft, 40)
	pdf.Cell(nil, g.Title)

	if err := pdf.SetFont(fontName, "", 11); err != nil {
		return fmt.Errorf("failed to set font: %w", err)
	}
	until := from.AddDate(0, 0, days)
	pdf.SetXY(marginLeft, 68)
	pdf.Cell(nil, fmt.Sprintf("Nächste %d Tage: %s bis %s", days, from.Format("02.01.2006"), until.Format("02.01.2006")))

	if len(qrCode) > 0 {
		addQRCode(pdf, qrCode)
	}

	pdf.SetXY(marginLeft, 120)
	return nil
}

func addQRCode(pdf *gopdf.GoPdf, qrCode []byte) {
	img, err := png.Decode(bytes.NewReader(qrCode))
	if err != nil {
		return
	}
	pdf.ImageFrom(img, 475, 25, &gopdf.Rect{W: 80, H: 80})
}

func addRows(pdf *gopdf.GoPdf, rows []service.UpcomingRow) error {
	if len(rows) == 0 {
		pdf.SetX(marginLeft)
		pdf.Cell(nil, "Keine Termine.")
		return nil
	}

	for _, row := range rows {
		if pdf.GetY()+lineHeight > pageBottom {
			pdf.AddPage()
			pdf.SetY(40)
		}
		y := pdf.GetY()
		cells := []struct {
			x    float64
			text string
		}{
			{columns.date, row.Date},
			{columns.time, row.Time},
			{columns.title, clip(row.Title, 38)},
			{columns.owner, row.Owner},
		}
		for _, c := range cells {
			pdf.SetXY(c.x, y)
			if err := pdf.Cell(nil, c.text); err != nil {
				return fmt.Errorf("failed to write row %q: %w", row.Title, err)
			}
		}
		pdf.SetXY(marginLeft, y+lineHeight)
	}
	return nil
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
