package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotelpms/constants"
	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/store"
)

// PriceInput tham số tính giá
type PriceInput struct {
	RoomIDs    []uint
	CheckIn    time.Time
	CheckOut   time.Time
	PackageIDs []uint
	ExtraBed   int
}

// RoomCharge chi tiết tiền một phòng
type RoomCharge struct {
	RoomID          uint    `json:"room_id"`
	RoomNumber      string  `json:"room_number"`
	RoomTypeID      uint    `json:"room_type_id"`
	RoomTypeName    string  `json:"room_type_name"`
	NightlyRate     float64 `json:"nightly_rate"`
	Nights          int     `json:"nights"`
	BaseAmount      float64 `json:"base_amount"`
	OfferID         *uint   `json:"offer_id,omitempty"`
	OfferKind       string  `json:"offer_kind,omitempty"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	FinalAmount     float64 `json:"final_amount"`
}

// ServiceCharge chi tiết một gói dịch vụ
type ServiceCharge struct {
	PackageID uint    `json:"package_id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
}

// PriceBreakdown kết quả tính giá đầy đủ
type PriceBreakdown struct {
	CheckIn             time.Time       `json:"check_in_date_time"`
	CheckOut            time.Time       `json:"check_out_date_time"`
	Nights              int             `json:"nights"`
	Rooms               []RoomCharge    `json:"rooms"`
	Services            []ServiceCharge `json:"services"`
	TotalRoomCharges    float64         `json:"total_room_charges"`
	TotalDiscount       float64         `json:"total_discount"`
	TotalServiceCharges float64         `json:"total_service_charges"`
	TaxRate             float64         `json:"tax_rate"`
	TotalTax            float64         `json:"total_tax"`
	ExtraBedCount       int             `json:"extra_bed_count"`
	ExtraBedRate        float64         `json:"extra_bed_rate"`
	ExtraBedCharges     float64         `json:"extra_bed_charges"`
	// GrandTotal = phòng + dịch vụ + thuế. Giường phụ tính riêng, chỉ ghi vào folio.
	GrandTotal float64 `json:"grand_total"`
}

type PricingOptions struct {
	TaxRate      float64
	ExtraBedRate float64
}

// PricingEngine tính tiền phòng, ưu đãi, dịch vụ và thuế. Không ghi dữ liệu.
type PricingEngine struct {
	store        store.Store
	taxRate      float64
	extraBedRate float64
}

func NewPricingEngine(st store.Store, opts PricingOptions) *PricingEngine {
	if opts.TaxRate <= 0 {
		opts.TaxRate = constants.StandardTaxRate
	}
	if opts.ExtraBedRate <= 0 {
		opts.ExtraBedRate = constants.DefaultExtraBedRate
	}
	return &PricingEngine{
		store:        st,
		taxRate:      opts.TaxRate,
		extraBedRate: opts.ExtraBedRate,
	}
}

func (p *PricingEngine) TaxRate() float64 {
	return p.taxRate
}

// CalculateNights số đêm = ceil(số giờ / 24), tối thiểu 1
func CalculateNights(checkIn, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return 1
	}
	return nights
}

func (p *PricingEngine) CalculatePrices(ctx context.Context, in PriceInput) (*PriceBreakdown, error) {
	return p.calculate(ctx, p.store, in)
}

func (p *PricingEngine) calculate(ctx context.Context, tx store.Store, in PriceInput) (*PriceBreakdown, error) {
	rooms, err := tx.GetRoomsByIDs(ctx, in.RoomIDs)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load rooms", err)
	}
	if len(rooms) == 0 {
		return nil, apperrors.NewNotFoundError("no rooms found for the given room ids")
	}

	offers, err := tx.FindOffersInWindow(ctx, dateOnly(in.CheckIn), dateOnly(in.CheckOut))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load pricing offers", err)
	}

	nights := CalculateNights(in.CheckIn, in.CheckOut)
	breakdown := &PriceBreakdown{
		CheckIn:       in.CheckIn,
		CheckOut:      in.CheckOut,
		Nights:        nights,
		Rooms:         make([]RoomCharge, 0, len(rooms)),
		Services:      []ServiceCharge{},
		TaxRate:       p.taxRate,
		ExtraBedCount: in.ExtraBed,
		ExtraBedRate:  p.extraBedRate,
	}

	// thuế làm tròn theo từng dòng giống charge trên folio
	var roomTotals, discounts, taxes []float64
	for _, room := range rooms {
		if room.RoomType == nil {
			return nil, apperrors.NewInternalError(fmt.Sprintf("room %d has no room type", room.ID), nil)
		}

		base := Round2(room.RoomType.Price * float64(nights))
		charge := RoomCharge{
			RoomID:       room.ID,
			RoomNumber:   room.RoomNumber,
			RoomTypeID:   room.RoomTypeID,
			RoomTypeName: room.RoomType.Name,
			NightlyRate:  room.RoomType.Price,
			Nights:       nights,
			BaseAmount:   base,
			FinalAmount:  base,
		}

		if offer, amount := selectBestOffer(offers, room.RoomTypeID, in.CheckIn, in.CheckOut, base); offer != nil {
			id := offer.ID
			charge.OfferID = &id
			charge.OfferKind = offer.Kind
			charge.DiscountPercent = offer.DiscountValue
			charge.DiscountAmount = amount
			charge.FinalAmount = Sub(base, amount)
		}

		breakdown.Rooms = append(breakdown.Rooms, charge)
		roomTotals = append(roomTotals, charge.FinalAmount)
		discounts = append(discounts, charge.DiscountAmount)
		taxes = append(taxes, Percent(charge.FinalAmount, p.taxRate))
	}

	if len(in.PackageIDs) > 0 {
		pkgs, err := tx.GetServicePackagesByIDs(ctx, in.PackageIDs)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to load service packages", err)
		}
		var serviceTotals []float64
		for _, pkg := range pkgs {
			breakdown.Services = append(breakdown.Services, ServiceCharge{
				PackageID: pkg.ID,
				Name:      pkg.Name,
				Amount:    pkg.Price,
			})
			serviceTotals = append(serviceTotals, pkg.Price)
			taxes = append(taxes, Percent(pkg.Price, p.taxRate))
		}
		breakdown.TotalServiceCharges = Sum(serviceTotals...)
	}

	breakdown.TotalRoomCharges = Sum(roomTotals...)
	breakdown.TotalDiscount = Sum(discounts...)
	breakdown.TotalTax = Sum(taxes...)
	if in.ExtraBed > 0 {
		breakdown.ExtraBedCharges = Round2(p.extraBedRate * float64(nights) * float64(in.ExtraBed))
	}
	breakdown.GrandTotal = Sum(breakdown.TotalRoomCharges, breakdown.TotalServiceCharges, breakdown.TotalTax)

	return breakdown, nil
}

// selectBestOffer chọn ưu đãi cho giảm nhiều tiền nhất; bằng nhau thì giữ ưu đãi gặp trước
func selectBestOffer(offers []models.PricingOffer, roomTypeID uint, checkIn, checkOut time.Time, base float64) (*models.PricingOffer, float64) {
	var best *models.PricingOffer
	var bestAmount float64
	for i := range offers {
		offer := &offers[i]
		if offer.RoomTypeID != roomTypeID || !offerApplies(offer, checkIn, checkOut) {
			continue
		}
		amount := Percent(base, offer.DiscountValue)
		if best == nil || amount > bestAmount {
			best = offer
			bestAmount = amount
		}
	}
	return best, bestAmount
}

func offerApplies(offer *models.PricingOffer, checkIn, checkOut time.Time) bool {
	if !offerOverlaps(offer, checkIn, checkOut) {
		return false
	}
	switch offer.Kind {
	case constants.OfferKindSeasonal:
		return true
	case constants.OfferKindWeekend:
		return isWeekend(checkIn) || isWeekend(checkOut)
	default:
		return false
	}
}

// offerOverlaps ưu đãi phủ ngày check-in, phủ ngày check-out, hoặc nằm trọn trong kỳ lưu trú
func offerOverlaps(offer *models.PricingOffer, checkIn, checkOut time.Time) bool {
	from, to := dateOnly(offer.ValidFrom), dateOnly(offer.ValidTo)
	in, out := dateOnly(checkIn), dateOnly(checkOut)

	coversIn := !in.Before(from) && !in.After(to)
	coversOut := !out.Before(from) && !out.After(to)
	within := !from.Before(in) && !to.After(out)
	return coversIn || coversOut || within
}
