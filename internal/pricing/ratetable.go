package pricing

// ColorMode selects the per-page base rate.
type ColorMode string

const (
	ColorBW    ColorMode = "BW"
	ColorColor ColorMode = "COLOR"
)

// PaperQuality selects the multiplier applied to the per-page rate.
type PaperQuality string

const (
	PaperStandard PaperQuality = "STANDARD"
	PaperPremium  PaperQuality = "PREMIUM"
	PaperGlossy   PaperQuality = "GLOSSY"
)

// BindingType selects a flat per-copy add-on.
type BindingType string

const (
	BindingNone      BindingType = "NONE"
	BindingStaple    BindingType = "STAPLE"
	BindingSpiral    BindingType = "SPIRAL"
	BindingPerfect   BindingType = "PERFECT"
	BindingHardcover BindingType = "HARDCOVER"
)

// CoverType selects a flat per-copy add-on.
type CoverType string

const (
	CoverNone      CoverType = "NONE"
	CoverStandard  CoverType = "STANDARD"
	CoverGlossy    CoverType = "GLOSSY"
	CoverLaminated CoverType = "LAMINATED"
)

// CardTier selects the per-100-units price for business cards.
type CardTier string

const (
	CardBasic    CardTier = "BASIC"
	CardStandard CardTier = "STANDARD"
	CardPremium  CardTier = "PREMIUM"
)

// BrochureSize selects the per-page price for brochures.
type BrochureSize string

const (
	BrochureA5 BrochureSize = "A5"
	BrochureA4 BrochureSize = "A4"
	BrochureA3 BrochureSize = "A3"
)

// ProductType identifies what a line item prices.
type ProductType string

const (
	ProductDocument     ProductType = "DOCUMENT"
	ProductBusinessCard ProductType = "BUSINESS_CARD"
	ProductBrochure     ProductType = "BROCHURE"
)

// DeliveryType selects the delivery charge applied to an order.
type DeliveryType string

const (
	DeliveryStandard DeliveryType = "STANDARD"
	DeliveryExpress  DeliveryType = "EXPRESS"
)

// DiscountTier maps a minimum printed-page count to a percentage discount on
// print cost. Tiers are mutually exclusive: only the highest threshold met
// applies.
type DiscountTier struct {
	MinPages int     `json:"min_pages"`
	Percent  float64 `json:"percent"`
}

// RateTable is an immutable snapshot of the shop's pricing policy. The engine
// never mutates it and never caches it; callers fetch one snapshot per
// pricing session and pass it into every call.
type RateTable struct {
	Currency string `json:"currency"`

	BWPerPage    float64 `json:"bw_per_page"`
	ColorPerPage float64 `json:"color_per_page"`

	PaperMultipliers map[PaperQuality]float64 `json:"paper_multipliers"`
	BindingPrices    map[BindingType]float64  `json:"binding_prices"`
	CoverPrices      map[CoverType]float64    `json:"cover_prices"`

	// CardTierPrices is per 100 cards; BrochureSizePrices is per page.
	CardTierPrices     map[CardTier]float64     `json:"card_tier_prices"`
	BrochureSizePrices map[BrochureSize]float64 `json:"brochure_size_prices"`

	// DiscountTiers must be ordered by ascending MinPages.
	DiscountTiers []DiscountTier `json:"discount_tiers"`

	StandardDeliveryCharge float64 `json:"standard_delivery_charge"`
	ExpressDeliveryCharge  float64 `json:"express_delivery_charge"`
	FreeDeliveryThreshold  float64 `json:"free_delivery_threshold"`

	TaxPercent float64 `json:"tax_percent"`
}

// Validate checks the table for structural completeness. A table that fails
// validation must not be priced against: a zero page rate or a percentage
// outside [0,100] produces nonsensical totals rather than obviously wrong
// ones, so the engine refuses early instead of defaulting silently.
func (rt RateTable) Validate() error {
	if rt.BWPerPage <= 0 {
		return &ConfigurationError{Field: "bw_per_page", Reason: "must be > 0"}
	}
	if rt.ColorPerPage <= 0 {
		return &ConfigurationError{Field: "color_per_page", Reason: "must be > 0"}
	}
	if len(rt.PaperMultipliers) == 0 {
		return &ConfigurationError{Field: "paper_multipliers", Reason: "must not be empty"}
	}
	if _, ok := rt.PaperMultipliers[PaperStandard]; !ok {
		return &ConfigurationError{Field: "paper_multipliers", Reason: "missing STANDARD entry"}
	}
	for q, m := range rt.PaperMultipliers {
		if m <= 0 {
			return &ConfigurationError{Field: "paper_multipliers." + string(q), Reason: "must be > 0"}
		}
	}
	for b, p := range rt.BindingPrices {
		if p < 0 {
			return &ConfigurationError{Field: "binding_prices." + string(b), Reason: "must be >= 0"}
		}
	}
	for c, p := range rt.CoverPrices {
		if p < 0 {
			return &ConfigurationError{Field: "cover_prices." + string(c), Reason: "must be >= 0"}
		}
	}
	for t, p := range rt.CardTierPrices {
		if p < 0 {
			return &ConfigurationError{Field: "card_tier_prices." + string(t), Reason: "must be >= 0"}
		}
	}
	for s, p := range rt.BrochureSizePrices {
		if p < 0 {
			return &ConfigurationError{Field: "brochure_size_prices." + string(s), Reason: "must be >= 0"}
		}
	}
	prev := 0
	for i, tier := range rt.DiscountTiers {
		if tier.MinPages <= prev {
			return &ConfigurationError{Field: "discount_tiers", Reason: "thresholds must be strictly ascending and > 0"}
		}
		if tier.Percent < 0 || tier.Percent > 100 {
			return &ConfigurationError{Field: "discount_tiers", Reason: "percent must be within [0,100]"}
		}
		if i > 0 && tier.Percent < rt.DiscountTiers[i-1].Percent {
			return &ConfigurationError{Field: "discount_tiers", Reason: "percent must not decrease with higher thresholds"}
		}
		prev = tier.MinPages
	}
	if rt.StandardDeliveryCharge < 0 || rt.ExpressDeliveryCharge < 0 {
		return &ConfigurationError{Field: "delivery_charge", Reason: "must be >= 0"}
	}
	if rt.FreeDeliveryThreshold < 0 {
		return &ConfigurationError{Field: "free_delivery_threshold", Reason: "must be >= 0"}
	}
	if rt.TaxPercent < 0 || rt.TaxPercent > 100 {
		return &ConfigurationError{Field: "tax_percent", Reason: "must be within [0,100]"}
	}
	return nil
}

// DefaultRateTable is the hard-coded fallback policy used when no rate card
// is active or the config store is unreachable. Pricing degrades to these
// values instead of failing.
func DefaultRateTable() RateTable {
	return RateTable{
		Currency:     "INR",
		BWPerPage:    2.00,
		ColorPerPage: 10.00,
		PaperMultipliers: map[PaperQuality]float64{
			PaperStandard: 1.0,
			PaperPremium:  1.5,
			PaperGlossy:   2.0,
		},
		BindingPrices: map[BindingType]float64{
			BindingNone:      0,
			BindingStaple:    10,
			BindingSpiral:    50,
			BindingPerfect:   80,
			BindingHardcover: 150,
		},
		CoverPrices: map[CoverType]float64{
			CoverNone:      0,
			CoverStandard:  20,
			CoverGlossy:    40,
			CoverLaminated: 60,
		},
		CardTierPrices: map[CardTier]float64{
			CardBasic:    150,
			CardStandard: 250,
			CardPremium:  400,
		},
		BrochureSizePrices: map[BrochureSize]float64{
			BrochureA5: 8,
			BrochureA4: 12,
			BrochureA3: 20,
		},
		DiscountTiers: []DiscountTier{
			{MinPages: 50, Percent: 5},
			{MinPages: 100, Percent: 10},
			{MinPages: 500, Percent: 15},
		},
		StandardDeliveryCharge: 40,
		ExpressDeliveryCharge:  90,
		FreeDeliveryThreshold:  500,
		TaxPercent:             18,
	}
}
