package services

import (
	"context"
	"errors"
	"fmt"

	"hotelpms/constants"
	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/services/logger"
	"hotelpms/store"

	"github.com/google/uuid"
)

// PaymentInput dữ liệu một lần thanh toán
type PaymentInput struct {
	Method          string
	Amount          float64
	TransactionID   string
	ReferenceNumber string
	Notes           string
	ReceivedBy      string
}

// BillingService quản lý folio, charge, invoice và payment
type BillingService struct {
	store   store.Store
	pricing *PricingEngine
	clock   Clock
	logger  logger.Logger
}

func NewBillingService(st store.Store, pricing *PricingEngine, clock Clock, log logger.Logger) *BillingService {
	return &BillingService{store: st, pricing: pricing, clock: clock, logger: log}
}

// NewCharge tính thuế trên phần sau giảm giá
func NewCharge(kind, description string, referenceID *uint, amount, discount, taxRate float64) models.FolioCharge {
	net := Sub(amount, discount)
	tax := Percent(net, taxRate)
	return models.FolioCharge{
		Kind:        kind,
		Description: description,
		ReferenceID: referenceID,
		Amount:      Round2(amount),
		Discount:    Round2(discount),
		TaxRate:     taxRate,
		TaxAmount:   tax,
		Total:       Sum(net, tax),
	}
}

// OpenFolio tạo folio active mới cho reservation
func (b *BillingService) OpenFolio(ctx context.Context, tx store.Store, reservationID uint) (*models.Folio, error) {
	folio := &models.Folio{
		ReservationID: reservationID,
		Status:        constants.FolioStatusActive,
	}
	if err := tx.CreateFolio(ctx, folio); err != nil {
		return nil, apperrors.NewInternalError("failed to open folio", err)
	}
	return folio, nil
}

// PostCharges ghi charge phòng, dịch vụ, giường phụ theo bảng giá rồi cập nhật tổng folio
func (b *BillingService) PostCharges(ctx context.Context, tx store.Store, folio *models.Folio, price *PriceBreakdown) error {
	rate := price.TaxRate
	var charges []models.FolioCharge

	for _, rc := range price.Rooms {
		roomID := rc.RoomID
		desc := fmt.Sprintf("Room %s (%s) x %d night(s)", rc.RoomNumber, rc.RoomTypeName, rc.Nights)
		charges = append(charges, NewCharge(constants.ChargeKindRoom, desc, &roomID, rc.BaseAmount, rc.DiscountAmount, rate))
	}
	for _, sc := range price.Services {
		pkgID := sc.PackageID
		charges = append(charges, NewCharge(constants.ChargeKindService, sc.Name, &pkgID, sc.Amount, 0, rate))
	}
	if price.ExtraBedCount > 0 && price.ExtraBedCharges > 0 {
		desc := fmt.Sprintf("Extra bed x %d for %d night(s)", price.ExtraBedCount, price.Nights)
		charges = append(charges, NewCharge(constants.ChargeKindExtraBed, desc, nil, price.ExtraBedCharges, 0, rate))
	}

	for i := range charges {
		charges[i].FolioID = folio.ID
		if err := tx.AddFolioCharge(ctx, &charges[i]); err != nil {
			return apperrors.NewInternalError("failed to post folio charge", err)
		}
	}
	return b.RecomputeFolio(ctx, tx, folio)
}

// PostBookingCharges mở folio và ghi charge trong transaction riêng, chạy sau khi
// reservation đã commit
func (b *BillingService) PostBookingCharges(ctx context.Context, reservationID uint, price *PriceBreakdown) (*models.Folio, error) {
	var folio *models.Folio
	err := b.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		folio, err = b.OpenFolio(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		return b.PostCharges(ctx, tx, folio, price)
	})
	if err != nil {
		return nil, err
	}
	return folio, nil
}

// EnsureFolio trả folio active; nếu chưa có (ghi charge lúc đặt phòng thất bại)
// thì tạo mới và ghi charge từ bảng giá tính lại
func (b *BillingService) EnsureFolio(ctx context.Context, tx store.Store, r *models.Reservation) (*models.Folio, error) {
	folio, err := tx.GetOpenFolio(ctx, r.ID)
	if err == nil {
		return folio, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewInternalError("failed to load folio", err)
	}

	b.logger.Warn("reservation %d has no active folio, rebuilding charges", r.ID)
	price, err := b.pricing.calculate(ctx, tx, PriceInput{
		RoomIDs:    r.RoomIDs(),
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		PackageIDs: r.PackageIDs(),
		ExtraBed:   r.ExtraBed,
	})
	if err != nil {
		return nil, err
	}
	folio, err = b.OpenFolio(ctx, tx, r.ID)
	if err != nil {
		return nil, err
	}
	if err := b.PostCharges(ctx, tx, folio, price); err != nil {
		return nil, err
	}
	return folio, nil
}

// RecomputeFolio tính lại tổng tiền, tổng thanh toán và số dư từ dữ liệu đã ghi
func (b *BillingService) RecomputeFolio(ctx context.Context, tx store.Store, folio *models.Folio) error {
	charges, err := tx.ListFolioCharges(ctx, folio.ID)
	if err != nil {
		return apperrors.NewInternalError("failed to load folio charges", err)
	}
	payments, err := tx.ListPayments(ctx, folio.ID)
	if err != nil {
		return apperrors.NewInternalError("failed to load payments", err)
	}

	var nets, taxes, paid []float64
	for _, c := range charges {
		nets = append(nets, Sub(c.Amount, c.Discount))
		taxes = append(taxes, c.TaxAmount)
	}
	for _, p := range payments {
		paid = append(paid, p.Amount)
	}

	folio.TotalCharges = Sum(nets...)
	folio.TotalTax = Sum(taxes...)
	folio.TotalAmount = Sum(folio.TotalCharges, folio.TotalTax)
	folio.TotalPayments = Sum(paid...)
	folio.Balance = Sub(folio.TotalAmount, folio.TotalPayments)
	folio.Charges = charges

	if err := tx.UpdateFolio(ctx, folio); err != nil {
		return apperrors.NewInternalError("failed to update folio", err)
	}
	return nil
}

func invoiceStatus(total, paid float64) string {
	switch {
	case paid <= 0:
		return constants.InvoiceStatusUnpaid
	case paid < total:
		return constants.InvoiceStatusPartial
	default:
		return constants.InvoiceStatusPaid
	}
}

// GenerateInvoice chụp tổng tiền folio hiện tại thành invoice mới
func (b *BillingService) GenerateInvoice(ctx context.Context, tx store.Store, folio *models.Folio) (*models.Invoice, error) {
	count, err := tx.CountInvoices(ctx, folio.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count invoices", err)
	}

	now := b.clock.Now()
	invoice := &models.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%s-%d-%d", now.Format("20060102"), folio.ID, count+1),
		FolioID:       folio.ID,
		ReservationID: folio.ReservationID,
		Subtotal:      folio.TotalCharges,
		TaxAmount:     folio.TotalTax,
		TotalAmount:   folio.TotalAmount,
		PaidAmount:    folio.TotalPayments,
		IssuedAt:      now,
	}
	invoice.Status = invoiceStatus(invoice.TotalAmount, invoice.PaidAmount)
	if invoice.Status == constants.InvoiceStatusPaid {
		invoice.PaidAt = &now
	}

	if err := tx.CreateInvoice(ctx, invoice); err != nil {
		return nil, apperrors.NewInternalError("failed to create invoice", err)
	}
	return invoice, nil
}

// RecordPayment ghi payment cho invoice, cập nhật trạng thái invoice và số dư folio
func (b *BillingService) RecordPayment(ctx context.Context, tx store.Store, folio *models.Folio, invoice *models.Invoice, in PaymentInput) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "amount must be greater than 0", apperrors.ErrInvalidAmount)
	}

	now := b.clock.Now()
	txnID := in.TransactionID
	if txnID == "" {
		txnID = uuid.NewString()
	}
	payment := &models.Payment{
		InvoiceID:       invoice.ID,
		FolioID:         folio.ID,
		ReservationID:   folio.ReservationID,
		PaymentMethod:   in.Method,
		Amount:          Round2(in.Amount),
		TransactionID:   txnID,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
		ReceivedBy:      in.ReceivedBy,
		PaidAt:          now,
	}
	if err := tx.CreatePayment(ctx, payment); err != nil {
		return nil, apperrors.NewInternalError("failed to record payment", err)
	}

	invoice.PaidAmount = Sum(invoice.PaidAmount, payment.Amount)
	invoice.Status = invoiceStatus(invoice.TotalAmount, invoice.PaidAmount)
	if invoice.Status == constants.InvoiceStatusPaid && invoice.PaidAt == nil {
		invoice.PaidAt = &now
	}
	if err := tx.UpdateInvoice(ctx, invoice); err != nil {
		return nil, apperrors.NewInternalError("failed to update invoice", err)
	}

	if err := b.RecomputeFolio(ctx, tx, folio); err != nil {
		return nil, err
	}
	return payment, nil
}

// CloseFolio đóng folio với số dư cuối cùng
func (b *BillingService) CloseFolio(ctx context.Context, tx store.Store, folio *models.Folio, balance float64, closedBy string) error {
	now := b.clock.Now()
	folio.Status = constants.FolioStatusClosed
	folio.Balance = balance
	folio.ClosedAt = &now
	folio.ClosedBy = closedBy
	if err := tx.UpdateFolio(ctx, folio); err != nil {
		return apperrors.NewInternalError("failed to close folio", err)
	}
	return nil
}

// RepriceFolio thay toàn bộ charge của folio active bằng bảng giá mới, giữ nguyên payment.
// Không có folio active thì bỏ qua; EnsureFolio sẽ dựng lại khi cần.
func (b *BillingService) RepriceFolio(ctx context.Context, tx store.Store, reservationID uint, price *PriceBreakdown) error {
	folio, err := tx.GetOpenFolio(ctx, reservationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.NewInternalError("failed to load folio", err)
	}
	if err := tx.DeleteFolioCharges(ctx, folio.ID); err != nil {
		return apperrors.NewInternalError("failed to clear folio charges", err)
	}
	return b.PostCharges(ctx, tx, folio, price)
}
