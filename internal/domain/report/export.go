package report

import (
	"bytes"
	"fmt"
	"time"

	"sic/internal/domain/record"

	"github.com/xuri/excelize/v2"
)

// ExportColumns is the fixed spreadsheet column set; every record produces
// exactly one row with every column present.
var ExportColumns = []string{
	"Data do Serviço",
	"Tipo de Serviço",
	"Operador",
	"Técnico",
	"Empresa",
	"Contrato",
	"Bairro",
	"Endereço",
	"Localização CTO",
	"Área/CX",
	"Vagas Disponíveis",
	"Unidade",
	"CXs Visitadas",
	"Comentários",
}

// Column widths are presentation hints only.
var exportColumnWidths = []float64{12, 15, 20, 20, 20, 15, 20, 30, 30, 15, 10, 15, 15, 50}

const exportSheetName = "Serviços"

// ExportRows flattens records into rows matching ExportColumns. Absent
// comments become an empty string, never a missing cell.
func ExportRows(records []record.ServiceRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{
			r.CreatedAt.Format("02/01/2006"),
			string(r.ServiceType),
			r.OperatorName,
			r.TechnicianName,
			r.CompanyName,
			r.ContractNumber,
			r.Neighborhood,
			r.Street,
			r.CTOLocation,
			r.AreaCX,
			r.AvailableSlots,
			r.Unit,
			r.VisitedCXs,
			r.GeneralComments,
		})
	}
	return rows
}

// ExportFilename carries the export date: servicos_dd-MM-yyyy.xlsx.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("servicos_%s.xlsx", now.Format("02-01-2006"))
}

// WriteXLSX renders records as a styled spreadsheet and returns the file
// bytes.
func WriteXLSX(records []record.ServiceRecord) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ExportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i := range ExportColumns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(exportSheetName, col, col, exportColumnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for rowIdx, row := range ExportRows(records) {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	// Freeze the header row
	if err := f.SetPanes(exportSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}
