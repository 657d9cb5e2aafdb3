package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"hotelpms/constants"
	"hotelpms/models"

	"gorm.io/gorm"
)

type memDB struct {
	roomTypes    map[uint]models.RoomType
	rooms        map[uint]models.Room
	offers       map[uint]models.PricingOffer
	packages     map[uint]models.ServicePackage
	guests       map[uint]models.Guest
	details      map[uint]models.GuestDetail // theo guest id
	reservations map[uint]models.Reservation
	folios       map[uint]models.Folio
	charges      map[uint]models.FolioCharge
	invoices     map[uint]models.Invoice
	payments     map[uint]models.Payment
	logs         map[uint]models.BookingLog
	seq          map[string]uint
}

func newMemDB() *memDB {
	return &memDB{
		roomTypes:    map[uint]models.RoomType{},
		rooms:        map[uint]models.Room{},
		offers:       map[uint]models.PricingOffer{},
		packages:     map[uint]models.ServicePackage{},
		guests:       map[uint]models.Guest{},
		details:      map[uint]models.GuestDetail{},
		reservations: map[uint]models.Reservation{},
		folios:       map[uint]models.Folio{},
		charges:      map[uint]models.FolioCharge{},
		invoices:     map[uint]models.Invoice{},
		payments:     map[uint]models.Payment{},
		logs:         map[uint]models.BookingLog{},
		seq:          map[string]uint{},
	}
}

// snapshot sao chép các map. Giá trị trong map không bao giờ bị sửa tại chỗ
// nên sao chép nông là đủ để khôi phục.
func (db *memDB) snapshot() *memDB {
	return &memDB{
		roomTypes:    copyMap(db.roomTypes),
		rooms:        copyMap(db.rooms),
		offers:       copyMap(db.offers),
		packages:     copyMap(db.packages),
		guests:       copyMap(db.guests),
		details:      copyMap(db.details),
		reservations: copyMap(db.reservations),
		folios:       copyMap(db.folios),
		charges:      copyMap(db.charges),
		invoices:     copyMap(db.invoices),
		payments:     copyMap(db.payments),
		logs:         copyMap(db.logs),
		seq:          copyMap(db.seq),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (db *memDB) nextID(table string) uint {
	db.seq[table]++
	return db.seq[table]
}

func sortedValues[V any](m map[uint]V) []V {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// MemoryStore cài đặt Store trong bộ nhớ. Mọi thao tác được tuần tự hóa,
// Transaction khôi phục snapshot khi fn trả lỗi.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memDB
	inTx bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mu: &sync.Mutex{}, data: newMemDB()}
}

func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.snapshot()
	committed := false
	defer func() {
		if !committed {
			*s.data = *snapshot
		}
	}()

	if err := fn(&MemoryStore{mu: s.mu, data: s.data, inTx: true}); err != nil {
		return err
	}
	committed = true
	return nil
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}

// Room types

func cloneRoomType(rt models.RoomType) models.RoomType {
	rt.AmenityIDs = slices.Clone(rt.AmenityIDs)
	return rt
}

func (s *MemoryStore) roomTypeNameTaken(name string, exceptID uint) bool {
	for id, rt := range s.data.roomTypes {
		if id != exceptID && rt.Name == name {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateRoomType(ctx context.Context, rt *models.RoomType) error {
	defer s.lock()()
	if s.roomTypeNameTaken(rt.Name, 0) {
		return fmt.Errorf("%w: room type name %q", ErrDuplicate, rt.Name)
	}
	rt.ID = s.data.nextID("room_types")
	stamp(&rt.CreatedAt, &rt.UpdatedAt)
	s.data.roomTypes[rt.ID] = cloneRoomType(*rt)
	return nil
}

func (s *MemoryStore) UpdateRoomType(ctx context.Context, rt *models.RoomType) error {
	defer s.lock()()
	if _, ok := s.data.roomTypes[rt.ID]; !ok {
		return ErrNotFound
	}
	if s.roomTypeNameTaken(rt.Name, rt.ID) {
		return fmt.Errorf("%w: room type name %q", ErrDuplicate, rt.Name)
	}
	stamp(nil, &rt.UpdatedAt)
	s.data.roomTypes[rt.ID] = cloneRoomType(*rt)
	return nil
}

func (s *MemoryStore) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	defer s.lock()()
	rt, ok := s.data.roomTypes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneRoomType(rt)
	return &out, nil
}

func (s *MemoryStore) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	defer s.lock()()
	out := sortedValues(s.data.roomTypes)
	for i := range out {
		out[i] = cloneRoomType(out[i])
	}
	return out, nil
}

// Rooms

func (s *MemoryStore) withRoomType(room models.Room) models.Room {
	if rt, ok := s.data.roomTypes[room.RoomTypeID]; ok {
		c := cloneRoomType(rt)
		room.RoomType = &c
	} else {
		room.RoomType = nil
	}
	return room
}

func (s *MemoryStore) roomNumberTaken(number string, exceptID uint) bool {
	for id, room := range s.data.rooms {
		if id != exceptID && room.RoomNumber == number {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateRoom(ctx context.Context, room *models.Room) error {
	defer s.lock()()
	if s.roomNumberTaken(room.RoomNumber, 0) {
		return fmt.Errorf("%w: room number %q", ErrDuplicate, room.RoomNumber)
	}
	room.ID = s.data.nextID("rooms")
	stamp(&room.CreatedAt, &room.UpdatedAt)
	stored := *room
	stored.RoomType = nil
	s.data.rooms[room.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateRoom(ctx context.Context, room *models.Room) error {
	defer s.lock()()
	if _, ok := s.data.rooms[room.ID]; !ok {
		return ErrNotFound
	}
	if s.roomNumberTaken(room.RoomNumber, room.ID) {
		return fmt.Errorf("%w: room number %q", ErrDuplicate, room.RoomNumber)
	}
	stamp(nil, &room.UpdatedAt)
	stored := *room
	stored.RoomType = nil
	s.data.rooms[room.ID] = stored
	return nil
}

func (s *MemoryStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	defer s.lock()()
	room, ok := s.data.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.withRoomType(room)
	return &out, nil
}

func (s *MemoryStore) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	defer s.lock()()
	for _, room := range s.data.rooms {
		if room.RoomNumber == number {
			out := s.withRoomType(room)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) roomsByIDs(ids []uint) []models.Room {
	var out []models.Room
	for _, room := range sortedValues(s.data.rooms) {
		if slices.Contains(ids, room.ID) {
			out = append(out, s.withRoomType(room))
		}
	}
	return out
}

func (s *MemoryStore) GetRoomsByIDs(ctx context.Context, ids []uint) ([]models.Room, error) {
	defer s.lock()()
	return s.roomsByIDs(ids), nil
}

func (s *MemoryStore) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	defer s.lock()()
	var out []models.Room
	for _, room := range s.data.rooms {
		if filter.Status != "" && room.Status != filter.Status {
			continue
		}
		if filter.RoomTypeID != 0 && room.RoomTypeID != filter.RoomTypeID {
			continue
		}
		if filter.Floor != nil && room.Floor != *filter.Floor {
			continue
		}
		out = append(out, s.withRoomType(room))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

// LockRooms: mọi thao tác đã tuần tự hóa nên chỉ cần đọc
func (s *MemoryStore) LockRooms(ctx context.Context, ids []uint) ([]models.Room, error) {
	defer s.lock()()
	return s.roomsByIDs(ids), nil
}

func (s *MemoryStore) UpdateRoomStatus(ctx context.Context, ids []uint, status string) error {
	defer s.lock()()
	now := time.Now()
	for _, id := range ids {
		room, ok := s.data.rooms[id]
		if !ok {
			continue
		}
		room.Status = status
		room.UpdatedAt = now
		s.data.rooms[id] = room
	}
	return nil
}

// Offers & packages

func (s *MemoryStore) CreateOffer(ctx context.Context, offer *models.PricingOffer) error {
	defer s.lock()()
	offer.ID = s.data.nextID("offers")
	stamp(&offer.CreatedAt, &offer.UpdatedAt)
	s.data.offers[offer.ID] = *offer
	return nil
}

func (s *MemoryStore) GetOffer(ctx context.Context, id uint) (*models.PricingOffer, error) {
	defer s.lock()()
	offer, ok := s.data.offers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &offer, nil
}

func (s *MemoryStore) ListOffers(ctx context.Context) ([]models.PricingOffer, error) {
	defer s.lock()()
	return sortedValues(s.data.offers), nil
}

func (s *MemoryStore) DeleteOffer(ctx context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.data.offers[id]; !ok {
		return ErrNotFound
	}
	delete(s.data.offers, id)
	return nil
}

func (s *MemoryStore) FindOffersInWindow(ctx context.Context, from, to time.Time) ([]models.PricingOffer, error) {
	defer s.lock()()
	var out []models.PricingOffer
	for _, offer := range sortedValues(s.data.offers) {
		if !offer.ValidFrom.After(to) && !offer.ValidTo.Before(from) {
			out = append(out, offer)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateServicePackage(ctx context.Context, pkg *models.ServicePackage) error {
	defer s.lock()()
	pkg.ID = s.data.nextID("packages")
	stamp(&pkg.CreatedAt, &pkg.UpdatedAt)
	s.data.packages[pkg.ID] = *pkg
	return nil
}

func (s *MemoryStore) ListServicePackages(ctx context.Context) ([]models.ServicePackage, error) {
	defer s.lock()()
	return sortedValues(s.data.packages), nil
}

func (s *MemoryStore) GetServicePackagesByIDs(ctx context.Context, ids []uint) ([]models.ServicePackage, error) {
	defer s.lock()()
	var out []models.ServicePackage
	for _, pkg := range sortedValues(s.data.packages) {
		if slices.Contains(ids, pkg.ID) {
			out = append(out, pkg)
		}
	}
	return out, nil
}

// Guests

func (s *MemoryStore) guestContactTaken(guest *models.Guest) bool {
	for id, g := range s.data.guests {
		if id == guest.ID || g.DeletedAt.Valid {
			continue
		}
		if guest.Email != "" && g.Email == guest.Email {
			return true
		}
		if guest.Phone != "" && g.Phone == guest.Phone {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateGuest(ctx context.Context, guest *models.Guest) error {
	defer s.lock()()
	if s.guestContactTaken(guest) {
		return fmt.Errorf("%w: guest contact", ErrDuplicate)
	}
	guest.ID = s.data.nextID("guests")
	stamp(&guest.CreatedAt, &guest.UpdatedAt)
	stored := *guest
	stored.Detail = nil
	s.data.guests[guest.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateGuest(ctx context.Context, guest *models.Guest) error {
	defer s.lock()()
	if g, ok := s.data.guests[guest.ID]; !ok || g.DeletedAt.Valid {
		return ErrNotFound
	}
	if s.guestContactTaken(guest) {
		return fmt.Errorf("%w: guest contact", ErrDuplicate)
	}
	stamp(nil, &guest.UpdatedAt)
	stored := *guest
	stored.Detail = nil
	s.data.guests[guest.ID] = stored
	return nil
}

func (s *MemoryStore) GetGuest(ctx context.Context, id uint) (*models.Guest, error) {
	defer s.lock()()
	guest, ok := s.data.guests[id]
	if !ok || guest.DeletedAt.Valid {
		return nil, ErrNotFound
	}
	if detail, ok := s.data.details[id]; ok {
		guest.Detail = &detail
	}
	return &guest, nil
}

func (s *MemoryStore) GetGuestsByIDs(ctx context.Context, ids []uint) ([]models.Guest, error) {
	defer s.lock()()
	var out []models.Guest
	for _, guest := range sortedValues(s.data.guests) {
		if !guest.DeletedAt.Valid && slices.Contains(ids, guest.ID) {
			out = append(out, guest)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindGuestByContact(ctx context.Context, email, phone string) (*models.Guest, error) {
	defer s.lock()()
	if email == "" && phone == "" {
		return nil, ErrNotFound
	}
	for _, guest := range sortedValues(s.data.guests) {
		if guest.DeletedAt.Valid {
			continue
		}
		if (email != "" && guest.Email == email) || (phone != "" && guest.Phone == phone) {
			return &guest, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListGuests(ctx context.Context) ([]models.Guest, error) {
	defer s.lock()()
	var out []models.Guest
	for _, guest := range sortedValues(s.data.guests) {
		if !guest.DeletedAt.Valid {
			out = append(out, guest)
		}
	}
	return out, nil
}

func (s *MemoryStore) DeleteGuest(ctx context.Context, id uint) error {
	defer s.lock()()
	guest, ok := s.data.guests[id]
	if !ok || guest.DeletedAt.Valid {
		return ErrNotFound
	}
	guest.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	s.data.guests[id] = guest
	return nil
}

func (s *MemoryStore) GetGuestDetail(ctx context.Context, guestID uint) (*models.GuestDetail, error) {
	defer s.lock()()
	detail, ok := s.data.details[guestID]
	if !ok {
		return nil, ErrNotFound
	}
	return &detail, nil
}

func (s *MemoryStore) SaveGuestDetail(ctx context.Context, detail *models.GuestDetail) error {
	defer s.lock()()
	if existing, ok := s.data.details[detail.GuestID]; ok {
		detail.ID = existing.ID
		detail.CreatedAt = existing.CreatedAt
	} else {
		detail.ID = s.data.nextID("guest_details")
	}
	stamp(&detail.CreatedAt, &detail.UpdatedAt)
	s.data.details[detail.GuestID] = *detail
	return nil
}

// Reservations

func cloneReservation(r models.Reservation) models.Reservation {
	r.AdditionalGuestIDs = slices.Clone(r.AdditionalGuestIDs)
	r.ServiceIDs = slices.Clone(r.ServiceIDs)
	r.Rooms = slices.Clone(r.Rooms)
	r.Guest = nil
	r.AdditionalGuests = nil
	r.Folios = nil
	return r
}

func (s *MemoryStore) bookingReferenceTaken(ref string, exceptID uint) bool {
	for id, r := range s.data.reservations {
		if id != exceptID && r.BookingReference == ref {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateReservation(ctx context.Context, r *models.Reservation) error {
	defer s.lock()()
	if s.bookingReferenceTaken(r.BookingReference, 0) {
		return fmt.Errorf("%w: booking reference %s", ErrDuplicate, r.BookingReference)
	}
	r.ID = s.data.nextID("reservations")
	stamp(&r.CreatedAt, &r.UpdatedAt)
	s.data.reservations[r.ID] = cloneReservation(*r)
	return nil
}

func (s *MemoryStore) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	defer s.lock()()
	if _, ok := s.data.reservations[r.ID]; !ok {
		return ErrNotFound
	}
	if s.bookingReferenceTaken(r.BookingReference, r.ID) {
		return fmt.Errorf("%w: booking reference %s", ErrDuplicate, r.BookingReference)
	}
	stamp(nil, &r.UpdatedAt)
	s.data.reservations[r.ID] = cloneReservation(*r)
	return nil
}

func (s *MemoryStore) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	defer s.lock()()
	stored, ok := s.data.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	r := cloneReservation(stored)

	if guest, ok := s.data.guests[r.GuestID]; ok && !guest.DeletedAt.Valid {
		r.Guest = &guest
	}
	for _, gid := range r.AdditionalGuestIDs {
		if guest, ok := s.data.guests[uint(gid)]; ok && !guest.DeletedAt.Valid {
			r.AdditionalGuests = append(r.AdditionalGuests, guest)
		}
	}
	for _, folio := range sortedValues(s.data.folios) {
		if folio.ReservationID != id {
			continue
		}
		for _, charge := range sortedValues(s.data.charges) {
			if charge.FolioID == folio.ID {
				folio.Charges = append(folio.Charges, charge)
			}
		}
		r.Folios = append(r.Folios, folio)
	}
	return &r, nil
}

func (s *MemoryStore) ListReservations(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int, error) {
	defer s.lock()()
	var out []models.Reservation
	for _, stored := range s.data.reservations {
		if filter.Status != "" && stored.BookingStatus != filter.Status {
			continue
		}
		if filter.CheckInFrom != nil && stored.CheckIn.Before(*filter.CheckInFrom) {
			continue
		}
		if filter.CheckInTo != nil && !stored.CheckIn.Before(*filter.CheckInTo) {
			continue
		}
		if filter.GuestID != 0 && stored.GuestID != filter.GuestID {
			continue
		}
		r := cloneReservation(stored)
		if guest, ok := s.data.guests[r.GuestID]; ok {
			r.Guest = &guest
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].ID > out[j].ID
		}
		return out[i].CheckIn.After(out[j].CheckIn)
	})

	total := len(out)
	if filter.Limit > 0 {
		start := filter.Page * filter.Limit
		if start > total {
			start = total
		}
		end := min(start+filter.Limit, total)
		out = out[start:end]
	}
	return out, total, nil
}

func (s *MemoryStore) BookingReferenceExists(ctx context.Context, ref string) (bool, error) {
	defer s.lock()()
	return s.bookingReferenceTaken(ref, 0), nil
}

func (s *MemoryStore) FindOverlappingReservations(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	defer s.lock()()
	var out []models.Reservation
	for _, r := range sortedValues(s.data.reservations) {
		if r.ID == excludeID || !slices.Contains(constants.ActiveBookingStatuses, r.BookingStatus) {
			continue
		}
		if !r.HasRoom(roomID) {
			continue
		}
		if r.CheckIn.Before(checkOut) && r.CheckOut.After(checkIn) {
			out = append(out, cloneReservation(r))
		}
	}
	return out, nil
}

func (s *MemoryStore) FindArrivals(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	defer s.lock()()
	var out []models.Reservation
	for _, r := range sortedValues(s.data.reservations) {
		if r.BookingStatus != constants.BookingStatusBooked {
			continue
		}
		if !r.CheckIn.Before(from) && r.CheckIn.Before(to) {
			out = append(out, cloneReservation(r))
		}
	}
	return out, nil
}

// Billing

func (s *MemoryStore) CreateFolio(ctx context.Context, folio *models.Folio) error {
	defer s.lock()()
	folio.ID = s.data.nextID("folios")
	stamp(&folio.CreatedAt, &folio.UpdatedAt)
	stored := *folio
	stored.Charges = nil
	s.data.folios[folio.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateFolio(ctx context.Context, folio *models.Folio) error {
	defer s.lock()()
	if _, ok := s.data.folios[folio.ID]; !ok {
		return ErrNotFound
	}
	stamp(nil, &folio.UpdatedAt)
	stored := *folio
	stored.Charges = nil
	s.data.folios[folio.ID] = stored
	return nil
}

func (s *MemoryStore) GetOpenFolio(ctx context.Context, reservationID uint) (*models.Folio, error) {
	defer s.lock()()
	folios := sortedValues(s.data.folios)
	for i := len(folios) - 1; i >= 0; i-- {
		f := folios[i]
		if f.ReservationID == reservationID && f.Status == constants.FolioStatusActive {
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) AddFolioCharge(ctx context.Context, charge *models.FolioCharge) error {
	defer s.lock()()
	if _, ok := s.data.folios[charge.FolioID]; !ok {
		return ErrNotFound
	}
	charge.ID = s.data.nextID("folio_charges")
	stamp(&charge.CreatedAt, nil)
	s.data.charges[charge.ID] = *charge
	return nil
}

func (s *MemoryStore) DeleteFolioCharges(ctx context.Context, folioID uint) error {
	defer s.lock()()
	for id, c := range s.data.charges {
		if c.FolioID == folioID {
			delete(s.data.charges, id)
		}
	}
	return nil
}

func (s *MemoryStore) ListFolioCharges(ctx context.Context, folioID uint) ([]models.FolioCharge, error) {
	defer s.lock()()
	var out []models.FolioCharge
	for _, charge := range sortedValues(s.data.charges) {
		if charge.FolioID == folioID {
			out = append(out, charge)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	defer s.lock()()
	for _, inv := range s.data.invoices {
		if inv.InvoiceNumber == invoice.InvoiceNumber {
			return fmt.Errorf("%w: invoice number %s", ErrDuplicate, invoice.InvoiceNumber)
		}
	}
	invoice.ID = s.data.nextID("invoices")
	stamp(&invoice.CreatedAt, &invoice.UpdatedAt)
	s.data.invoices[invoice.ID] = *invoice
	return nil
}

func (s *MemoryStore) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	defer s.lock()()
	if _, ok := s.data.invoices[invoice.ID]; !ok {
		return ErrNotFound
	}
	stamp(nil, &invoice.UpdatedAt)
	s.data.invoices[invoice.ID] = *invoice
	return nil
}

func (s *MemoryStore) CountInvoices(ctx context.Context, folioID uint) (int, error) {
	defer s.lock()()
	count := 0
	for _, inv := range s.data.invoices {
		if inv.FolioID == folioID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	defer s.lock()()
	payment.ID = s.data.nextID("payments")
	stamp(&payment.CreatedAt, nil)
	s.data.payments[payment.ID] = *payment
	return nil
}

func (s *MemoryStore) ListPayments(ctx context.Context, folioID uint) ([]models.Payment, error) {
	defer s.lock()()
	var out []models.Payment
	for _, p := range sortedValues(s.data.payments) {
		if p.FolioID == folioID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateBookingLog(ctx context.Context, log *models.BookingLog) error {
	defer s.lock()()
	log.ID = s.data.nextID("booking_logs")
	stamp(&log.CreatedAt, nil)
	stored := *log
	stored.Details = slices.Clone(log.Details)
	s.data.logs[log.ID] = stored
	return nil
}

func (s *MemoryStore) ListBookingLogs(ctx context.Context, reservationID uint) ([]models.BookingLog, error) {
	defer s.lock()()
	var out []models.BookingLog
	for _, l := range sortedValues(s.data.logs) {
		if l.ReservationID == reservationID {
			out = append(out, l)
		}
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
