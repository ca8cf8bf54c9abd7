package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/policy"
)

// ExportService produces the accounting-facing requisition ledger report.
type ExportService interface {
	RequisitionReport(ctx context.Context, p *entity.Principal, filter port.RequisitionFilter) ([]byte, error)
}

type exportServiceImpl struct {
	requisitionRepo port.RequisitionRepository
	logger          Logger
}

// NewExportService creates a new ExportService.
func NewExportService(requisitionRepo port.RequisitionRepository, logger Logger) ExportService {
	return &exportServiceImpl{
		requisitionRepo: requisitionRepo,
		logger:          logger,
	}
}

var reportColumns = []string{
	"ID", "Payee", "Amount", "Currency", "Details", "Department",
	"Status", "Prepared By", "Authorised By", "Paid By", "Created At", "Paid At",
}

// RequisitionReport renders the matching requisitions as an .xlsx workbook.
// Restricted to accounting and admin.
func (s *exportServiceImpl) RequisitionReport(ctx context.Context, p *entity.Principal, filter port.RequisitionFilter) ([]byte, error) {
	if err := policy.RequireRole(p, entity.RoleAccounting, entity.RoleAdmin); err != nil {
		return nil, err
	}

	reqs, err := s.requisitionRepo.List(ctx, filter)
	if err != nil {
		return nil, storeErr("list requisitions", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, req := range reqs {
		values := []interface{}{
			req.ID,
			req.Payee,
			req.Amount.String(),
			req.Currency,
			req.Details,
			req.Department,
			req.Status,
			req.PreparedByID,
			req.AuthorisedByID,
			req.PaidByID,
			req.CreatedAt.Format("2006-01-02 15:04"),
			"",
		}
		if req.PaidAt != nil {
			values[len(values)-1] = req.PaidAt.Format("2006-01-02 15:04")
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	s.logger.Info("Requisition report generated", "rows", len(reqs), "by", p.ID)
	return buf.Bytes(), nil
}
