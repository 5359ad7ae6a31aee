package einvoice

import (
	"fmt"
	"strconv"

	"gstbill/internal/common"
	"gstbill/internal/models"

	"github.com/shopspring/decimal"
)

// Government e-invoice (IRP) JSON schema, version 1.1.

type TranDtls struct {
	TaxSch      string `json:"TaxSch"`
	SupTyp      string `json:"SupTyp"`
	RegRev      string `json:"RegRev"`
	IgstOnIntra string `json:"IgstOnIntra"`
}

type DocDtls struct {
	Typ string `json:"Typ"`
	No  string `json:"No"`
	Dt  string `json:"Dt"`
}

type PartyDtls struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	TrdNm string `json:"TrdNm,omitempty"`
	Addr1 string `json:"Addr1"`
	Loc   string `json:"Loc"`
	Pin   int    `json:"Pin,omitempty"`
	Stcd  string `json:"Stcd"`
	Pos   string `json:"Pos,omitempty"`
}

type Item struct {
	SlNo       string  `json:"SlNo"`
	PrdDesc    string  `json:"PrdDesc"`
	IsServc    string  `json:"IsServc"`
	HsnCd      string  `json:"HsnCd"`
	Qty        float64 `json:"Qty"`
	Unit       string  `json:"Unit"`
	UnitPrice  float64 `json:"UnitPrice"`
	TotAmt     float64 `json:"TotAmt"`
	AssAmt     float64 `json:"AssAmt"`
	GstRt      float64 `json:"GstRt"`
	CgstAmt    float64 `json:"CgstAmt"`
	SgstAmt    float64 `json:"SgstAmt"`
	IgstAmt    float64 `json:"IgstAmt"`
	TotItemVal float64 `json:"TotItemVal"`
}

type ValDtls struct {
	AssVal    float64 `json:"AssVal"`
	CgstVal   float64 `json:"CgstVal"`
	SgstVal   float64 `json:"SgstVal"`
	IgstVal   float64 `json:"IgstVal"`
	TotInvVal float64 `json:"TotInvVal"`
}

type InvoicePayload struct {
	Version    string    `json:"Version"`
	TranDtls   TranDtls  `json:"TranDtls"`
	DocDtls    DocDtls   `json:"DocDtls"`
	SellerDtls PartyDtls `json:"SellerDtls"`
	BuyerDtls  PartyDtls `json:"BuyerDtls"`
	ItemList   []Item    `json:"ItemList"`
	ValDtls    ValDtls   `json:"ValDtls"`
}

// BuildPayload maps an invoice, the seller profile and the buyer into the
// IRP schema. Decimal values are rounded to two places at this boundary
// only; everything upstream stays exact.
func BuildPayload(invoice *models.TaxInvoice, settings *models.GSTSettings, customer *models.Customer, productNames map[string]string, unitSymbols map[string]string) (*InvoicePayload, error) {
	if customer.GSTIN == nil || *customer.GSTIN == "" {
		return nil, fmt.Errorf("customer %s has no GSTIN", customer.ID)
	}

	sellerState := settings.StateCode
	if sellerState == "" {
		sellerState = common.StateCodeFromGSTIN(settings.GSTIN)
	}
	buyerState := customer.StateCode
	if buyerState == "" {
		buyerState = common.StateCodeFromGSTIN(*customer.GSTIN)
	}

	pin, _ := strconv.Atoi(settings.Pincode)

	payload := &InvoicePayload{
		Version: "1.1",
		TranDtls: TranDtls{
			TaxSch:      "GST",
			SupTyp:      invoice.SupplyType,
			RegRev:      "N",
			IgstOnIntra: "N",
		},
		DocDtls: DocDtls{
			Typ: "INV",
			No:  invoice.InvoiceNo,
			Dt:  invoice.InvoiceDate.Format("02/01/2006"),
		},
		SellerDtls: PartyDtls{
			Gstin: settings.GSTIN,
			LglNm: settings.LegalName,
			TrdNm: common.SafeString(settings.TradeName),
			Addr1: settings.Address,
			Loc:   settings.Location,
			Pin:   pin,
			Stcd:  sellerState,
		},
		BuyerDtls: PartyDtls{
			Gstin: *customer.GSTIN,
			LglNm: customer.Name,
			Addr1: common.SafeString(customer.Address),
			Loc:   common.SafeString(customer.Address),
			Stcd:  buyerState,
			Pos:   invoice.PlaceOfSupply,
		},
		ValDtls: ValDtls{
			AssVal:    round2(invoice.TaxableTotal),
			CgstVal:   round2(invoice.CGSTTotal),
			SgstVal:   round2(invoice.SGSTTotal),
			IgstVal:   round2(invoice.IGSTTotal),
			TotInvVal: round2(invoice.GrandTotal),
		},
	}

	for i, item := range invoice.Items {
		productID := item.ProductID.String()
		payload.ItemList = append(payload.ItemList, Item{
			SlNo:       strconv.Itoa(i + 1),
			PrdDesc:    productNames[productID],
			IsServc:    "N",
			HsnCd:      item.HSNCode,
			Qty:        qtyFloat(item.Quantity),
			Unit:       unitSymbols[productID],
			UnitPrice:  round2(item.Rate),
			TotAmt:     round2(item.TaxableAmount),
			AssAmt:     round2(item.TaxableAmount),
			GstRt:      qtyFloat(item.GSTRate),
			CgstAmt:    round2(item.CGSTAmount),
			SgstAmt:    round2(item.SGSTAmount),
			IgstAmt:    round2(item.IGSTAmount),
			TotItemVal: round2(item.LineTotal),
		})
	}

	return payload, nil
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.RoundBank(2).Float64()
	return f
}

func qtyFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
