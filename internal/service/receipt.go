package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"locagest-backend/internal/domain"
	"locagest-backend/internal/lifecycle"
	"locagest-backend/internal/repository"
)

type receiptService struct {
	rentals     repository.RentalRepository
	clients     repository.ClientRepository
	equipment   repository.EquipmentRepository
	receivables repository.ReceivableRepository
	clock       lifecycle.Clock
}

func NewReceiptService(
	rentals repository.RentalRepository,
	clients repository.ClientRepository,
	equipment repository.EquipmentRepository,
	receivables repository.ReceivableRepository,
	clock lifecycle.Clock,
) ReceiptService {
	if clock == nil {
		clock = lifecycle.SystemClock()
	}
	return &receiptService{
		rentals:     rentals,
		clients:     clients,
		equipment:   equipment,
		receivables: receivables,
		clock:       clock,
	}
}

func (s *receiptService) RentalReceiptPDF(ctx context.Context, rentalID string) ([]byte, error) {
	rt, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetByID(ctx, rt.ClientID)
	if err != nil {
		return nil, err
	}
	cycles, err := s.receivables.ListByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	equipmentNames := make([]string, 0, len(rt.EquipmentIDs))
	for _, eqID := range rt.EquipmentIDs {
		name := eqID
		if eq, err := s.equipment.GetByID(ctx, eqID); err == nil {
			name = eq.Name
		}
		equipmentNames = append(equipmentNames, name)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Equipment Rental Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", s.clock.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Client Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Client Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", client.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", client.Phone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Tax ID: %s", client.TaxID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice required: %s", yesNo(rt.InvoiceRequired)), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Contract summary
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Contract", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Start: %s", rt.StartDate.Format("02-Jan-2006")), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Expected end: %s", rt.ExpectedEndDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Period: %s", rt.Period), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", rt.ContractStatus), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Equipment table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Equipment", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, name := range equipmentNames {
		if len(name) > 80 {
			name = name[:77] + "..."
		}
		pdf.CellFormat(190, 6, name, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Billing cycles
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Billing Cycles", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(30, 7, "Cycle", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Due Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Paid On", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var totalPaid int64
	for _, rcv := range cycles {
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", rcv.RenewalNumber+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, rcv.DueDate.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, formatCents(rcv.AmountCents), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, string(rcv.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, formatMaybeDate(rcv.PaidAt), "1", 1, "C", false, 0, "")
		if rcv.Status == domain.PaymentStatusPaid {
			totalPaid += rcv.AmountCents
		}
	}
	pdf.Ln(5)

	// Total bar, green when the current cycle is settled
	if rt.PaymentStatus == domain.PaymentStatusPaid {
		pdf.SetFillColor(200, 255, 200)
	} else {
		pdf.SetFillColor(255, 200, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, fmt.Sprintf("Total Paid: %s", formatCents(totalPaid)), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func formatMaybeDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02-Jan-2006")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
