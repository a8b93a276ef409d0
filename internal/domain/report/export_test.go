package report

import (
	"bytes"
	"testing"
	"time"

	"sic/internal/domain/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportRows(t *testing.T) {
	records := []record.ServiceRecord{
		{
			OperatorName:    "Ana",
			TechnicianName:  "Carlos",
			CompanyName:     "Telecom SA",
			ContractNumber:  "C-100",
			ServiceType:     record.TypeActivation,
			Street:          "Rua das Flores, 10",
			Neighborhood:    "Centro",
			CTOLocation:     "Poste 12",
			AreaCX:          "CX-05",
			AvailableSlots:  "4",
			Unit:            "Apto 301",
			VisitedCXs:      "2",
			GeneralComments: "Instalação concluída",
			CreatedAt:       time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			OperatorName:   "Bob",
			ContractNumber: "C-101",
			ServiceType:    record.TypeRepair,
			CreatedAt:      time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC),
		},
	}

	rows := ExportRows(records)

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Len(t, row, len(ExportColumns))
	}
	assert.Equal(t, "15/03/2024", rows[0][0])
	assert.Equal(t, "Ativação", rows[0][1])
	assert.Equal(t, "Instalação concluída", rows[0][13])
	assert.Equal(t, "", rows[1][13], "absent comments must export as empty string")
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "servicos_15-03-2024.xlsx", ExportFilename(now))
}

func TestWriteXLSX(t *testing.T) {
	records := []record.ServiceRecord{
		{
			OperatorName:    "Ana",
			ContractNumber:  "C-100",
			ServiceType:     record.TypeActivation,
			GeneralComments: "ok",
			CreatedAt:       time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		},
	}

	data, err := WriteXLSX(records)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Serviços")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ExportColumns, rows[0])
	assert.Equal(t, "15/03/2024", rows[1][0])
	assert.Equal(t, "Ana", rows[1][2])
}

func TestWriteXLSXEmpty(t *testing.T) {
	data, err := WriteXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Serviços")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}
