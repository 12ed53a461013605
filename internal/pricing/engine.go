package pricing

import "math"

// LineItem is one print job configuration before pricing: one uploaded
// document, one card batch, or one brochure batch.
type LineItem struct {
	ProductType  ProductType  `json:"product_type"`
	PageCount    int          `json:"page_count"`
	Copies       int          `json:"copies"`
	ColorMode    ColorMode    `json:"color_mode"`
	PaperQuality PaperQuality `json:"paper_quality"`
	Binding      BindingType  `json:"binding"`
	Cover        CoverType    `json:"cover"`
	CardTier     CardTier     `json:"card_tier,omitempty"`
	CardUnits    int          `json:"card_units,omitempty"`
	BrochureSize BrochureSize `json:"brochure_size,omitempty"`
}

// LineItemPricing is the full breakdown for one priced line item. Every
// intermediate value is exposed so the cart can show each stage and tests can
// pin each stage independently.
type LineItemPricing struct {
	ProductType          ProductType `json:"product_type"`
	PrintedPages         int         `json:"printed_pages"`
	EffectiveRatePerPage float64     `json:"effective_rate_per_page"`
	RawPrintTotal        float64     `json:"raw_print_total"`
	DiscountPercent      float64     `json:"discount_percent"`
	PrintSubtotal        float64     `json:"print_subtotal"`
	BindingCost          float64     `json:"binding_cost"`
	CoverCost            float64     `json:"cover_cost"`
	LineTotal            float64     `json:"line_total"`
}

// OrderQuote aggregates all line items in a cart at a point in time. It is
// ephemeral: recomputed in full on every edit, never persisted.
type OrderQuote struct {
	Items           []LineItemPricing `json:"items"`
	TotalPages      int               `json:"total_pages"`
	Subtotal        float64           `json:"subtotal"`
	DiscountPercent float64           `json:"discount_percent"`
	DiscountAmount  float64           `json:"discount_amount"`
	TaxableAmount   float64           `json:"taxable_amount"`
	TaxAmount       float64           `json:"tax_amount"`
	DeliveryCharge  float64           `json:"delivery_charge"`
	GrandTotal      float64           `json:"grand_total"`
	Currency        string            `json:"currency"`
}

// Round2 rounds a currency amount to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BulkDiscountPercent returns the discount percent earned by totalPages.
// Boundaries are inclusive on the lower bound: exactly 100 pages earns the
// 100-page tier. Only the highest threshold met applies; tiers never stack.
func BulkDiscountPercent(rt RateTable, totalPages int) float64 {
	var pct float64
	for _, tier := range rt.DiscountTiers {
		if totalPages >= tier.MinPages {
			pct = tier.Percent
		}
	}
	return pct
}

// PriceLineItem prices a single line item in isolation. The discount tier is
// evaluated on this item's own printed pages; inside PriceOrder the
// order-level tier supersedes it.
//
// Unrecognised option values are not errors: paper quality, binding, cover,
// card tier and brochure size each fall back to the standard/none entry so a
// malformed or future option degrades to the neutral default instead of
// blocking the customer. Negative pages or non-positive copies are rejected.
func PriceLineItem(rt RateTable, item LineItem) (LineItemPricing, error) {
	if err := rt.Validate(); err != nil {
		return LineItemPricing{}, err
	}
	if err := validateItem(item); err != nil {
		return LineItemPricing{}, err
	}
	pct := BulkDiscountPercent(rt, printedPages(item))
	return priceItem(rt, item, pct), nil
}

// PriceOrder prices a whole cart. The discount tier is evaluated once on the
// aggregate page count, so splitting one large job across cart lines never
// changes the discount. The discount applies to the print-cost portion only;
// binding, cover and card-batch costs are flat fees and are never discounted.
// Tax is computed on the post-discount subtotal, and the free-delivery
// threshold is compared against the post-discount subtotal as well.
func PriceOrder(rt RateTable, items []LineItem, delivery DeliveryType) (OrderQuote, error) {
	if err := rt.Validate(); err != nil {
		return OrderQuote{}, err
	}
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return OrderQuote{}, err
		}
	}

	quote := OrderQuote{Currency: rt.Currency}
	var printPortion float64
	for _, item := range items {
		p := priceItem(rt, item, 0) // undiscounted; the order-level tier is applied below
		quote.Items = append(quote.Items, p)
		quote.TotalPages += p.PrintedPages
		quote.Subtotal += p.LineTotal
		printPortion += p.RawPrintTotal
	}
	quote.Subtotal = Round2(quote.Subtotal)

	quote.DiscountPercent = BulkDiscountPercent(rt, quote.TotalPages)
	quote.DiscountAmount = Round2(printPortion * quote.DiscountPercent / 100)
	quote.TaxableAmount = Round2(quote.Subtotal - quote.DiscountAmount)
	quote.TaxAmount = Round2(quote.TaxableAmount * rt.TaxPercent / 100)

	if len(items) > 0 && quote.TaxableAmount < rt.FreeDeliveryThreshold {
		if delivery == DeliveryExpress {
			quote.DeliveryCharge = rt.ExpressDeliveryCharge
		} else {
			quote.DeliveryCharge = rt.StandardDeliveryCharge
		}
	}

	quote.GrandTotal = Round2(quote.TaxableAmount + quote.TaxAmount + quote.DeliveryCharge)
	return quote, nil
}

// priceItem computes the breakdown for one item at a given discount percent.
// Callers have already validated the table and the item.
func priceItem(rt RateTable, item LineItem, discountPct float64) LineItemPricing {
	p := LineItemPricing{
		ProductType:     item.ProductType,
		DiscountPercent: discountPct,
	}

	switch item.ProductType {
	case ProductBusinessCard:
		// Cards are priced per batch of 100 units; partial batches round up.
		// They are not page-based: no pages toward the bulk tier, and the
		// batch cost sits outside the discountable print portion.
		batches := (item.CardUnits + 99) / 100
		rate := cardTierPrice(rt, item.CardTier)
		p.EffectiveRatePerPage = rate
		p.PrintSubtotal = Round2(float64(batches) * rate * float64(item.Copies))
		p.LineTotal = p.PrintSubtotal
		return p
	case ProductBrochure:
		p.EffectiveRatePerPage = brochureSizePrice(rt, item.BrochureSize)
	default:
		base := rt.BWPerPage
		if item.ColorMode == ColorColor {
			base = rt.ColorPerPage
		}
		p.EffectiveRatePerPage = base * paperMultiplier(rt, item.PaperQuality)
	}

	p.PrintedPages = printedPages(item)
	p.RawPrintTotal = float64(p.PrintedPages) * p.EffectiveRatePerPage
	p.PrintSubtotal = Round2(p.RawPrintTotal * (1 - discountPct/100))
	p.BindingCost = Round2(bindingPrice(rt, item.Binding) * float64(item.Copies))
	p.CoverCost = Round2(coverPrice(rt, item.Cover) * float64(item.Copies))
	p.LineTotal = Round2(p.PrintSubtotal + p.BindingCost + p.CoverCost)
	return p
}

func validateItem(item LineItem) error {
	if item.Copies < 1 {
		return &ValidationError{Field: "copies", Reason: "must be >= 1"}
	}
	if item.PageCount < 0 {
		return &ValidationError{Field: "page_count", Reason: "must be >= 0"}
	}
	if item.ProductType == ProductBusinessCard && item.CardUnits < 1 {
		return &ValidationError{Field: "card_units", Reason: "must be >= 1"}
	}
	return nil
}

func printedPages(item LineItem) int {
	if item.ProductType == ProductBusinessCard {
		return 0
	}
	return item.PageCount * item.Copies
}

// ── lenient option lookups ────────────────────────────────────────────────────
// Unknown keys fall back to the standard/none entry, then to the neutral
// value, so pricing never fails on an unrecognised option.

func paperMultiplier(rt RateTable, q PaperQuality) float64 {
	if m, ok := rt.PaperMultipliers[q]; ok {
		return m
	}
	if m, ok := rt.PaperMultipliers[PaperStandard]; ok {
		return m
	}
	return 1.0
}

func bindingPrice(rt RateTable, b BindingType) float64 {
	if p, ok := rt.BindingPrices[b]; ok {
		return p
	}
	return rt.BindingPrices[BindingNone]
}

func coverPrice(rt RateTable, c CoverType) float64 {
	if p, ok := rt.CoverPrices[c]; ok {
		return p
	}
	return rt.CoverPrices[CoverNone]
}

func cardTierPrice(rt RateTable, t CardTier) float64 {
	if p, ok := rt.CardTierPrices[t]; ok {
		return p
	}
	return rt.CardTierPrices[CardBasic]
}

func brochureSizePrice(rt RateTable, s BrochureSize) float64 {
	if p, ok := rt.BrochureSizePrices[s]; ok {
		return p
	}
	return rt.BrochureSizePrices[BrochureA4]
}
