package service

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/utils"
)

const exportSheet = "Parcelas"

var exportHeader = []interface{}{
	"Venda", "Cliente", "Parcela", "Vencimento", "Valor", "Status", "Pagamento",
}

var statusLabels = map[string]string{
	"pending": "Pendente",
	"overdue": "Atrasada",
	"paid":    "Paga",
}

// ExportXLSX writes the installments matching filter as a spreadsheet
func (s *InstallmentService) ExportXLSX(ctx context.Context, filter repository.InstallmentFilter, w io.Writer) error {
	today := s.calendar.Today()
	filter.Today = today

	installments, err := s.installmentRepo.ListAll(ctx, filter)
	if err != nil {
		return apperror.NewPersistenceError("list installments", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "G1", bold); err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	for i := range installments {
		inst := &installments[i]
		inst.Resolve(today)

		paid := ""
		if inst.PaymentDate != nil {
			paid = inst.PaymentDate.Format("02/01/2006")
		}
		row := []interface{}{
			utils.ShortCode(inst.SaleID),
			inst.ClientName,
			inst.InstallmentNumber,
			inst.DueDate.Format("02/01/2006"),
			inst.Value.InexactFloat64(),
			statusLabels[inst.Status.String()],
			paid,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	if n := len(installments); n > 0 {
		last, _ := excelize.CoordinatesToCellName(5, n+1)
		if err := f.SetCellStyle(exportSheet, "E2", last, money); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "G", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "B", "B", 32); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
