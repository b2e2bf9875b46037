// internal/service/report/report.go
package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"decora-admin/internal/domain/customer"
	customersvc "decora-admin/internal/service/customer"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Pipeline"

// Service renders the customer pipeline as an xlsx workbook for the
// owner's offline bookkeeping.
type Service struct {
	customers *customersvc.Service
	logger    *zap.Logger
}

func NewService(customers *customersvc.Service, logger *zap.Logger) *Service {
	return &Service{customers: customers, logger: logger}
}

// PipelineWorkbook builds the workbook from the current directory and
// returns it serialized, ready to stream as an attachment.
func (s *Service) PipelineWorkbook(ctx context.Context) (*bytes.Buffer, string, error) {
	dir, err := s.customers.Aggregates(ctx)
	if err != nil {
		return nil, "", err
	}

	buf, err := render(dir.Customers, dir.Unresolved)
	if err != nil {
		s.logger.Error("failed to render pipeline workbook", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("pipeline-%s.xlsx", time.Now().Format("2006-01-02"))
	s.logger.Info("pipeline workbook rendered",
		zap.Int("customers", len(dir.Customers)),
		zap.Int("unresolved", len(dir.Unresolved)),
	)
	return buf, filename, nil
}

func render(customers []customer.Aggregate, unresolved []customer.Record) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	headers := []string{"Customer key", "Name", "Phone", "Email", "City",
		"Last seen", "Last service", "Status", "Bookings"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for row, c := range customers {
		values := []interface{}{
			string(c.Key), c.FullName, c.Phone, c.Email, c.City,
			c.LastSeen.Format("2006-01-02 15:04"), c.LastService,
			string(c.LastStatus), c.BookingsCount,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Keyless records go on their own sheet so the owner can chase
	// down the missing contact details.
	if len(unresolved) > 0 {
		const unresolvedSheet = "Unresolved"
		if _, err := f.NewSheet(unresolvedSheet); err != nil {
			return nil, err
		}
		for i, h := range []string{"Record", "Name", "Status", "Seen"} {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(unresolvedSheet, cell, h); err != nil {
				return nil, err
			}
		}
		for row, r := range unresolved {
			values := []interface{}{
				r.RecordID, r.FullName, string(r.Status),
				r.Recency.Format("2006-01-02 15:04"),
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(unresolvedSheet, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}

	return f.WriteToBuffer()
}
