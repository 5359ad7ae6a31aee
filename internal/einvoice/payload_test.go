package einvoice

import (
	"testing"
	"time"

	"gstbill/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testSettings() *models.GSTSettings {
	return &models.GSTSettings{
		ID:        uuid.New(),
		LegalName: "Acme Agro Pvt Ltd",
		TradeName: strPtr("Acme Agro"),
		GSTIN:     "27AAPFU0939F1ZV",
		Address:   "12 Industrial Estate",
		Location:  "Pune",
		Pincode:   "411001",
		StateCode: "27",
	}
}

func testInvoice(productID uuid.UUID) *models.TaxInvoice {
	return &models.TaxInvoice{
		ID:            uuid.New(),
		InvoiceNo:     "INV/2025-26/00042",
		InvoiceDate:   time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
		PlaceOfSupply: "29",
		SupplyType:    models.SupplyTypeB2B,
		TaxableTotal:  decimal.NewFromInt(1000),
		IGSTTotal:     decimal.NewFromInt(180),
		GrandTotal:    decimal.NewFromInt(1180),
		Status:        models.InvoiceStatusDraft,
		Items: []*models.TaxInvoiceDetail{
			{
				ID:            uuid.New(),
				ProductID:     productID,
				HSNCode:       "31021000",
				Quantity:      decimal.NewFromInt(10),
				Rate:          decimal.NewFromInt(100),
				GSTRate:       decimal.NewFromInt(18),
				TaxableAmount: decimal.NewFromInt(1000),
				IGSTAmount:    decimal.NewFromInt(180),
				LineTotal:     decimal.NewFromInt(1180),
			},
		},
	}
}

func TestBuildPayload(t *testing.T) {
	productID := uuid.New()
	customer := &models.Customer{
		ID:        uuid.New(),
		Name:      "Karnataka Traders",
		Address:   strPtr("4 Market Road, Bengaluru"),
		StateCode: "29",
		GSTIN:     strPtr("29AABCU9603R1ZM"),
	}

	payload, err := BuildPayload(testInvoice(productID), testSettings(), customer,
		map[string]string{productID.String(): "Urea 50kg"},
		map[string]string{productID.String(): "BAG"})
	require.NoError(t, err)

	assert.Equal(t, "1.1", payload.Version)
	assert.Equal(t, "GST", payload.TranDtls.TaxSch)
	assert.Equal(t, "B2B", payload.TranDtls.SupTyp)
	assert.Equal(t, "N", payload.TranDtls.RegRev)

	assert.Equal(t, "INV", payload.DocDtls.Typ)
	assert.Equal(t, "INV/2025-26/00042", payload.DocDtls.No)
	assert.Equal(t, "15/06/2025", payload.DocDtls.Dt)

	assert.Equal(t, "27AAPFU0939F1ZV", payload.SellerDtls.Gstin)
	assert.Equal(t, "Acme Agro Pvt Ltd", payload.SellerDtls.LglNm)
	assert.Equal(t, 411001, payload.SellerDtls.Pin)
	assert.Equal(t, "27", payload.SellerDtls.Stcd)

	assert.Equal(t, "29AABCU9603R1ZM", payload.BuyerDtls.Gstin)
	assert.Equal(t, "Karnataka Traders", payload.BuyerDtls.LglNm)
	assert.Equal(t, "29", payload.BuyerDtls.Stcd)
	assert.Equal(t, "29", payload.BuyerDtls.Pos)

	require.Len(t, payload.ItemList, 1)
	item := payload.ItemList[0]
	assert.Equal(t, "1", item.SlNo)
	assert.Equal(t, "Urea 50kg", item.PrdDesc)
	assert.Equal(t, "N", item.IsServc)
	assert.Equal(t, "31021000", item.HsnCd)
	assert.Equal(t, "BAG", item.Unit)
	assert.InDelta(t, 10, item.Qty, 0.0001)
	assert.InDelta(t, 100, item.UnitPrice, 0.0001)
	assert.InDelta(t, 1000, item.AssAmt, 0.0001)
	assert.InDelta(t, 18, item.GstRt, 0.0001)
	assert.InDelta(t, 180, item.IgstAmt, 0.0001)
	assert.InDelta(t, 1180, item.TotItemVal, 0.0001)

	assert.InDelta(t, 1000, payload.ValDtls.AssVal, 0.0001)
	assert.InDelta(t, 180, payload.ValDtls.IgstVal, 0.0001)
	assert.InDelta(t, 1180, payload.ValDtls.TotInvVal, 0.0001)
}

func TestBuildPayload_CustomerWithoutGSTIN(t *testing.T) {
	productID := uuid.New()
	customer := &models.Customer{ID: uuid.New(), Name: "Walk-in", StateCode: "27"}

	_, err := BuildPayload(testInvoice(productID), testSettings(), customer, nil, nil)
	assert.ErrorContains(t, err, "has no GSTIN")

	customer.GSTIN = strPtr("")
	_, err = BuildPayload(testInvoice(productID), testSettings(), customer, nil, nil)
	assert.Error(t, err)
}

func TestBuildPayload_StateCodeFallsBackToGSTIN(t *testing.T) {
	productID := uuid.New()
	settings := testSettings()
	settings.StateCode = ""
	customer := &models.Customer{
		ID:    uuid.New(),
		Name:  "Delhi Agencies",
		GSTIN: strPtr("07AABCU9603R1ZM"),
	}

	payload, err := BuildPayload(testInvoice(productID), settings, customer, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "27", payload.SellerDtls.Stcd)
	assert.Equal(t, "07", payload.BuyerDtls.Stcd)
}
