package pricing

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func bookletItem() LineItem {
	return LineItem{
		ProductType:  ProductDocument,
		PageCount:    10,
		Copies:       5,
		ColorMode:    ColorBW,
		PaperQuality: PaperStandard,
		Binding:      BindingSpiral,
		Cover:        CoverNone,
	}
}

func TestPriceLineItem_BWBooklet(t *testing.T) {
	// 10 pages x 5 copies of B&W standard = 50 printed pages, which earns the
	// first bulk tier (5%). Spiral binding is a flat 50 per copy.
	rt := DefaultRateTable()
	p, err := PriceLineItem(rt, bookletItem())
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "effective rate", p.EffectiveRatePerPage, 2.00)
	nearlyEqual(t, "raw print total", p.RawPrintTotal, 100.00)
	nearlyEqual(t, "discount percent", p.DiscountPercent, 5)
	nearlyEqual(t, "print subtotal", p.PrintSubtotal, 95.00)
	nearlyEqual(t, "binding cost", p.BindingCost, 250.00)
	nearlyEqual(t, "cover cost", p.CoverCost, 0)
	nearlyEqual(t, "line total", p.LineTotal, 345.00)
}

func TestPriceLineItem_ColorPremiumNoDiscount(t *testing.T) {
	// 4 pages x 2 copies = 8 pages, below the first tier. Colour at 10.00
	// with the 1.5 premium multiplier, laminated cover at 60 per copy.
	rt := DefaultRateTable()
	p, err := PriceLineItem(rt, LineItem{
		ProductType:  ProductDocument,
		PageCount:    4,
		Copies:       2,
		ColorMode:    ColorColor,
		PaperQuality: PaperPremium,
		Cover:        CoverLaminated,
	})
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "effective rate", p.EffectiveRatePerPage, 15.00)
	nearlyEqual(t, "discount percent", p.DiscountPercent, 0)
	nearlyEqual(t, "print subtotal", p.PrintSubtotal, 120.00)
	nearlyEqual(t, "cover cost", p.CoverCost, 120.00)
	nearlyEqual(t, "line total", p.LineTotal, 240.00)
}

func TestPriceLineItem_Deterministic(t *testing.T) {
	rt := DefaultRateTable()
	first, err := PriceLineItem(rt, bookletItem())
	if err != nil {
		t.Fatal(err)
	}
	second, err := PriceLineItem(rt, bookletItem())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated pricing diverged: %+v vs %+v", first, second)
	}
}

func TestPriceLineItem_MonotonicInPages(t *testing.T) {
	rt := DefaultRateTable()
	prev := -1.0
	for pages := 1; pages <= 600; pages += 7 {
		item := bookletItem()
		item.PageCount = pages
		p, err := PriceLineItem(rt, item)
		if err != nil {
			t.Fatal(err)
		}
		if p.LineTotal < prev {
			t.Fatalf("line total decreased at %d pages: %v < %v", pages, p.LineTotal, prev)
		}
		prev = p.LineTotal
	}
}

func TestPriceLineItem_UnknownOptionsFallBack(t *testing.T) {
	rt := DefaultRateTable()
	known := bookletItem()
	unknown := bookletItem()
	unknown.PaperQuality = "unknown-grade"
	unknown.Binding = "zigzag"
	known.Binding = BindingNone

	wantKnown, err := PriceLineItem(rt, known)
	if err != nil {
		t.Fatal(err)
	}
	gotUnknown, err := PriceLineItem(rt, unknown)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "fallback line total", gotUnknown.LineTotal, wantKnown.LineTotal)
}

func TestPriceLineItem_RejectsBadInput(t *testing.T) {
	rt := DefaultRateTable()
	cases := []struct {
		name string
		item LineItem
	}{
		{"zero copies", LineItem{ProductType: ProductDocument, PageCount: 1, Copies: 0}},
		{"negative copies", LineItem{ProductType: ProductDocument, PageCount: 1, Copies: -2}},
		{"negative pages", LineItem{ProductType: ProductDocument, PageCount: -1, Copies: 1}},
		{"card without units", LineItem{ProductType: ProductBusinessCard, Copies: 1}},
	}
	for _, tc := range cases {
		_, err := PriceLineItem(rt, tc.item)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: want ValidationError, got %v", tc.name, err)
		}
	}
}

func TestPriceLineItem_BusinessCardBatches(t *testing.T) {
	rt := DefaultRateTable()
	p, err := PriceLineItem(rt, LineItem{
		ProductType: ProductBusinessCard,
		Copies:      1,
		CardTier:    CardPremium,
		CardUnits:   250, // partial batch rounds up to 3 batches of 100
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.PrintedPages != 0 {
		t.Fatalf("card batch contributed %d pages, want 0", p.PrintedPages)
	}
	nearlyEqual(t, "card line total", p.LineTotal, 1200.00)
}

func TestBulkDiscountPercent_Boundaries(t *testing.T) {
	rt := DefaultRateTable()
	cases := []struct {
		pages int
		want  float64
	}{
		{0, 0}, {49, 0}, {50, 5}, {99, 5}, {100, 10}, {499, 10}, {500, 15}, {5000, 15},
	}
	for _, tc := range cases {
		if got := BulkDiscountPercent(rt, tc.pages); got != tc.want {
			t.Fatalf("BulkDiscountPercent(%d) = %v, want %v", tc.pages, got, tc.want)
		}
	}
}

func TestPriceOrder_EmptyCart(t *testing.T) {
	rt := DefaultRateTable()
	q, err := PriceOrder(rt, nil, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "subtotal", q.Subtotal, 0)
	nearlyEqual(t, "delivery", q.DeliveryCharge, 0)
	nearlyEqual(t, "grand total", q.GrandTotal, 0)
}

func TestPriceOrder_DiscountAtOrderGranularity(t *testing.T) {
	// A 120-page job split into two 60-page cart lines must earn the same
	// tier as the combined job: the tier is evaluated on aggregate pages.
	rt := DefaultRateTable()
	whole := LineItem{ProductType: ProductDocument, PageCount: 120, Copies: 1, ColorMode: ColorBW, PaperQuality: PaperStandard}
	half := LineItem{ProductType: ProductDocument, PageCount: 60, Copies: 1, ColorMode: ColorBW, PaperQuality: PaperStandard}

	combined, err := PriceOrder(rt, []LineItem{whole}, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	split, err := PriceOrder(rt, []LineItem{half, half}, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "combined discount percent", combined.DiscountPercent, 10)
	nearlyEqual(t, "split discount percent", split.DiscountPercent, 10)
	nearlyEqual(t, "split grand total", split.GrandTotal, combined.GrandTotal)
}

func TestPriceOrder_DiscountSkipsAddOns(t *testing.T) {
	// 100 pages earns 10%, but only on the print portion; the spiral binding
	// fee is flat and never discounted.
	rt := DefaultRateTable()
	item := LineItem{
		ProductType:  ProductDocument,
		PageCount:    100,
		Copies:       1,
		ColorMode:    ColorBW,
		PaperQuality: PaperStandard,
		Binding:      BindingSpiral,
	}
	q, err := PriceOrder(rt, []LineItem{item}, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	// Subtotal is 200 print + 50 binding; the 10% discount hits the 200 only.
	nearlyEqual(t, "subtotal", q.Subtotal, 250.00)
	nearlyEqual(t, "discount amount", q.DiscountAmount, 20.00)
	nearlyEqual(t, "taxable amount", q.TaxableAmount, 230.00)
}

func TestPriceOrder_TaxOnDiscountedSubtotal(t *testing.T) {
	rt := DefaultRateTable()
	rt.TaxPercent = 10
	item := LineItem{ProductType: ProductDocument, PageCount: 100, Copies: 1, ColorMode: ColorBW, PaperQuality: PaperStandard}
	q, err := PriceOrder(rt, []LineItem{item}, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "taxable amount", q.TaxableAmount, 180.00)
	nearlyEqual(t, "tax amount", q.TaxAmount, 18.00)
}

func TestPriceOrder_FreeDeliveryBoundary(t *testing.T) {
	rt := DefaultRateTable()
	rt.DiscountTiers = nil
	rt.FreeDeliveryThreshold = 500.00

	// 250 B&W pages at 2.00 = exactly 500.00 after (no) discount.
	at := LineItem{ProductType: ProductDocument, PageCount: 250, Copies: 1, ColorMode: ColorBW, PaperQuality: PaperStandard}
	q, err := PriceOrder(rt, []LineItem{at}, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "delivery at threshold", q.DeliveryCharge, 0)

	// One page fewer lands below the threshold and pays the charge.
	below := at
	below.PageCount = 249
	q, err = PriceOrder(rt, []LineItem{below}, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "delivery below threshold", q.DeliveryCharge, rt.StandardDeliveryCharge)

	q, err = PriceOrder(rt, []LineItem{below}, DeliveryExpress)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "express delivery below threshold", q.DeliveryCharge, rt.ExpressDeliveryCharge)
}

func TestPriceOrder_FreeDeliveryUsesPostDiscountSubtotal(t *testing.T) {
	rt := DefaultRateTable()
	rt.FreeDeliveryThreshold = 500.00

	// 260 pages gross 520.00, but the 100-page tier discounts 10% down to
	// 468.00, which is below the threshold: the order still pays delivery.
	item := LineItem{ProductType: ProductDocument, PageCount: 260, Copies: 1, ColorMode: ColorBW, PaperQuality: PaperStandard}
	q, err := PriceOrder(rt, []LineItem{item}, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "taxable amount", q.TaxableAmount, 468.00)
	nearlyEqual(t, "delivery charge", q.DeliveryCharge, rt.StandardDeliveryCharge)
}

func TestPriceOrder_GrandTotalIdentity(t *testing.T) {
	rt := DefaultRateTable()
	items := []LineItem{
		{ProductType: ProductDocument, PageCount: 37, Copies: 3, ColorMode: ColorColor, PaperQuality: PaperGlossy, Binding: BindingPerfect, Cover: CoverGlossy},
		{ProductType: ProductBrochure, PageCount: 6, Copies: 20, BrochureSize: BrochureA3},
		{ProductType: ProductBusinessCard, Copies: 1, CardTier: CardStandard, CardUnits: 300},
	}
	q, err := PriceOrder(rt, items, DeliveryExpress)
	if err != nil {
		t.Fatal(err)
	}
	nearlyEqual(t, "grand total identity", q.GrandTotal,
		Round2(q.TaxableAmount+q.TaxAmount+q.DeliveryCharge))
	nearlyEqual(t, "taxable identity", q.TaxableAmount, Round2(q.Subtotal-q.DiscountAmount))
}

func TestPriceOrder_DiscountMonotonicAcrossTiers(t *testing.T) {
	rt := DefaultRateTable()
	prev := -1.0
	for pages := 10; pages <= 700; pages += 10 {
		item := LineItem{ProductType: ProductDocument, PageCount: pages, Copies: 1, ColorMode: ColorBW, PaperQuality: PaperStandard}
		q, err := PriceOrder(rt, []LineItem{item}, DeliveryStandard)
		if err != nil {
			t.Fatal(err)
		}
		if q.DiscountPercent < prev {
			t.Fatalf("discount percent decreased at %d pages", pages)
		}
		prev = q.DiscountPercent
	}
}

func TestPriceOrder_BrochurePagesCountTowardTier(t *testing.T) {
	rt := DefaultRateTable()
	brochure := LineItem{ProductType: ProductBrochure, PageCount: 4, Copies: 30, BrochureSize: BrochureA4}
	q, err := PriceOrder(rt, []LineItem{brochure}, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	if q.TotalPages != 120 {
		t.Fatalf("total pages = %d, want 120", q.TotalPages)
	}
	nearlyEqual(t, "brochure discount percent", q.DiscountPercent, 10)
}

func TestPriceOrder_CardBatchesNeverDiscounted(t *testing.T) {
	rt := DefaultRateTable()
	items := []LineItem{
		{ProductType: ProductDocument, PageCount: 500, Copies: 1, ColorMode: ColorBW, PaperQuality: PaperStandard},
		{ProductType: ProductBusinessCard, Copies: 1, CardTier: CardBasic, CardUnits: 100},
	}
	q, err := PriceOrder(rt, items, DeliveryStandard)
	if err != nil {
		t.Fatal(err)
	}
	// 15% of the 1000.00 print portion only; the 150.00 card batch is flat.
	nearlyEqual(t, "discount amount", q.DiscountAmount, 150.00)
}

func TestPriceOrder_RejectsInvalidTable(t *testing.T) {
	rt := DefaultRateTable()
	rt.BWPerPage = 0
	_, err := PriceOrder(rt, []LineItem{bookletItem()}, DeliveryStandard)
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
}
