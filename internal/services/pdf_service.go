package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"gstbill/internal/models"
	"gstbill/internal/repositories"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

// PDFService renders invoice PDFs and keeps a copy in object storage so
// repeat downloads skip the render.
type PDFService interface {
	InvoicePDF(ctx context.Context, invoiceID uuid.UUID) ([]byte, error)
}

type pdfService struct {
	invoiceRepo  repositories.TaxInvoiceRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.FinishedProductRepository
	settingsRepo repositories.GSTSettingsRepository
	minioSvc     MinioService
	bucket       string
}

func NewPDFService(
	invoiceRepo repositories.TaxInvoiceRepository,
	customerRepo repositories.CustomerRepository,
	productRepo repositories.FinishedProductRepository,
	settingsRepo repositories.GSTSettingsRepository,
	minioSvc MinioService,
	bucket string,
) PDFService {
	return &pdfService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		minioSvc:     minioSvc,
		bucket:       bucket,
	}
}

func (s *pdfService) InvoicePDF(ctx context.Context, invoiceID uuid.UUID) ([]byte, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.PDFObject != nil && s.minioSvc != nil {
		if data, err := s.minioSvc.DownloadObject(ctx, s.bucket, *invoice.PDFObject); err == nil {
			return data, nil
		}
		// Fall through and re-render when the stored copy is gone.
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gst settings: %w", err)
	}
	customer, err := s.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	productNames := make(map[string]string, len(invoice.Items))
	for _, item := range invoice.Items {
		if product, err := s.productRepo.GetByID(ctx, item.ProductID); err == nil {
			productNames[product.ID.String()] = product.Name
		}
	}

	data, err := RenderInvoicePDF(invoice, settings, customer, productNames)
	if err != nil {
		return nil, err
	}

	if s.minioSvc != nil {
		objectName := fmt.Sprintf("invoices/%s.pdf", strings.ReplaceAll(invoice.InvoiceNo, "/", "-"))
		if err := s.minioSvc.UploadPDF(ctx, s.bucket, objectName, data); err != nil {
			log.Printf("WARN: failed to store invoice PDF %s: %v", objectName, err)
		} else if err := s.invoiceRepo.SetPDFObject(ctx, invoice.ID, objectName); err != nil {
			log.Printf("WARN: failed to record PDF object for invoice %s: %v", invoice.InvoiceNo, err)
		}
	}
	return data, nil
}

// RenderInvoicePDF lays out a fixed A4 tax invoice: seller block, buyer
// block, line item table, tax totals and the IRN/ack footer with the
// signed QR when present.
func RenderInvoicePDF(invoice *models.TaxInvoice, settings *models.GSTSettings, customer *models.Customer, productNames map[string]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, settings.LegalName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if settings.TradeName != nil && *settings.TradeName != "" {
		pdf.CellFormat(0, 5, *settings.TradeName, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, settings.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("%s - %s", settings.Location, settings.Pincode), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("GSTIN: %s  State: %s", settings.GSTIN, settings.StateCode), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 6, fmt.Sprintf("Invoice No: %s", invoice.InvoiceNo), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", invoice.InvoiceDate.Format("02/01/2006")), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, customer.Name, "", 1, "L", false, 0, "")
	if customer.Address != nil && *customer.Address != "" {
		pdf.CellFormat(0, 5, *customer.Address, "", 1, "L", false, 0, "")
	}
	if customer.GSTIN != nil && *customer.GSTIN != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("GSTIN: %s", *customer.GSTIN), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Place of Supply: %s", invoice.PlaceOfSupply), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	headers := []string{"#", "Item", "HSN", "Qty", "Rate", "Taxable", "CGST", "SGST", "IGST", "Total"}
	widths := []float64{8, 45, 18, 14, 18, 20, 17, 17, 17, 21}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, item := range invoice.Items {
		name := productNames[item.ProductID.String()]
		if name == "" {
			name = item.ProductID.String()[:8]
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			name,
			item.HSNCode,
			item.Quantity.String(),
			money(item.Rate),
			money(item.TaxableAmount),
			money(item.CGSTAmount),
			money(item.SGSTAmount),
			money(item.IGSTAmount),
			money(item.LineTotal),
		}
		for j, cell := range cells {
			align := "R"
			if j == 1 || j == 2 {
				align = "L"
			}
			pdf.CellFormat(widths[j], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	totalRows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Taxable Total", invoice.TaxableTotal},
		{"CGST", invoice.CGSTTotal},
		{"SGST", invoice.SGSTTotal},
		{"IGST", invoice.IGSTTotal},
		{"Grand Total", invoice.GrandTotal},
	}
	for _, row := range totalRows {
		pdf.CellFormat(145, 6, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, money(row.value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if invoice.IRN != nil && *invoice.IRN != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("IRN: %s", *invoice.IRN), "", 1, "L", false, 0, "")
		if invoice.AckNo != nil {
			ack := fmt.Sprintf("Ack No: %s", *invoice.AckNo)
			if invoice.AckDate != nil {
				ack = fmt.Sprintf("%s  Ack Date: %s", ack, invoice.AckDate.Format("02/01/2006 15:04"))
			}
			pdf.CellFormat(0, 5, ack, "", 1, "L", false, 0, "")
		}
	}

	if invoice.SignedQR != nil && *invoice.SignedQR != "" {
		png, err := qrcode.Encode(*invoice.SignedQR, qrcode.Medium, 256)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("signed-qr", opts, bytes.NewReader(png))
			pdf.ImageOptions("signed-qr", 160, pdf.GetY()+2, 35, 35, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return d.RoundBank(2).StringFixed(2)
}
