package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/data/repository"
	"sigac-rental/pkg/apperror"

	"github.com/google/uuid"
)

// fakeState is the in-memory database behind the fake repositories.
type fakeState struct {
	users        map[string]*entity.User
	vehicles     map[string]*entity.Vehicle
	rates        []*entity.DailyRate
	promotions   map[string]*entity.Promotion
	reservations map[uuid.UUID]*entity.Reservation
	payments     map[uuid.UUID]*entity.Payment
	maintenances map[uuid.UUID]*entity.Maintenance
}

func newFakeState() *fakeState {
	return &fakeState{
		users:        map[string]*entity.User{},
		vehicles:     map[string]*entity.Vehicle{},
		promotions:   map[string]*entity.Promotion{},
		reservations: map[uuid.UUID]*entity.Reservation{},
		payments:     map[uuid.UUID]*entity.Payment{},
		maintenances: map[uuid.UUID]*entity.Maintenance{},
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range s.vehicles {
		cp := *v
		c.vehicles[k] = &cp
	}
	for _, v := range s.rates {
		cp := *v
		c.rates = append(c.rates, &cp)
	}
	for k, v := range s.promotions {
		cp := *v
		c.promotions[k] = &cp
	}
	for k, v := range s.reservations {
		cp := *v
		c.reservations[k] = &cp
	}
	for k, v := range s.payments {
		cp := *v
		c.payments[k] = &cp
	}
	for k, v := range s.maintenances {
		cp := *v
		c.maintenances[k] = &cp
	}
	return c
}

// faults injects errors into specific writes.
type faults struct {
	vehicleStatus error
}

type fakeDB struct {
	state  *fakeState
	faults *faults
}

func newFakeDB() *fakeDB {
	return &fakeDB{state: newFakeState(), faults: &faults{}}
}

func newFakeRepository(db *fakeDB, tokens repository.TokenRepository) *repository.Repository {
	return &repository.Repository{
		User:        &fakeUserRepo{db: db},
		Vehicle:     &fakeVehicleRepo{db: db},
		DailyRate:   &fakeDailyRateRepo{db: db},
		Promotion:   &fakePromotionRepo{db: db},
		Reservation: &fakeReservationRepo{db: db},
		Payment:     &fakePaymentRepo{db: db},
		Maintenance: &fakeMaintenanceRepo{db: db},
		Dashboard:   &fakeDashboardRepo{db: db},
		Token:       tokens,
		Transactor:  &fakeTransactor{db: db, tokens: tokens},
	}
}

// fakeTransactor works on a clone and swaps it in only when fn succeeds.
type fakeTransactor struct {
	db     *fakeDB
	tokens repository.TokenRepository
}

func (t *fakeTransactor) WithinTx(_ context.Context, fn func(repo *repository.Repository) error) error {
	txDB := &fakeDB{state: t.db.state.clone(), faults: t.db.faults}
	if err := fn(newFakeRepository(txDB, t.tokens)); err != nil {
		return err
	}
	t.db.state = txDB.state
	return nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ---------------- users ----------------

type fakeUserRepo struct{ db *fakeDB }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.db.state.users[user.CPF]; ok {
		return apperror.Conflict("user already exists")
	}
	cp := *user
	r.db.state.users[user.CPF] = &cp
	return nil
}

func (r *fakeUserRepo) FindByCPF(_ context.Context, cpf string) (*entity.User, error) {
	u, ok := r.db.state.users[cpf]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.db.state.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) filter(filter entity.UserFilter) []*entity.User {
	var out []*entity.User
	for _, u := range r.db.state.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Search != nil {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CPF < out[j].CPF })
	return out
}

func (r *fakeUserRepo) FindAll(_ context.Context, filter entity.UserFilter, offset, limit int) ([]*entity.User, error) {
	return page(r.filter(filter), offset, limit), nil
}

func (r *fakeUserRepo) CountAll(_ context.Context, filter entity.UserFilter) (int64, error) {
	return int64(len(r.filter(filter))), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.db.state.users[user.CPF]; !ok {
		return apperror.NotFound("user", user.CPF)
	}
	cp := *user
	r.db.state.users[user.CPF] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, cpf string) error {
	if _, ok := r.db.state.users[cpf]; !ok {
		return apperror.NotFound("user", cpf)
	}
	delete(r.db.state.users, cpf)
	return nil
}

// ---------------- vehicles ----------------

type fakeVehicleRepo struct{ db *fakeDB }

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *entity.Vehicle) error {
	if _, ok := r.db.state.vehicles[vehicle.Plate]; ok {
		return apperror.Conflict("vehicle already exists")
	}
	cp := *vehicle
	r.db.state.vehicles[vehicle.Plate] = &cp
	return nil
}

func (r *fakeVehicleRepo) FindByPlate(_ context.Context, plate string) (*entity.Vehicle, error) {
	v, ok := r.db.state.vehicles[plate]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) LockByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	return r.FindByPlate(ctx, plate)
}

func (r *fakeVehicleRepo) filter(status *entity.VehicleStatus) []*entity.Vehicle {
	var out []*entity.Vehicle
	for _, v := range r.db.state.vehicles {
		if status != nil && v.Status != *status {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out
}

func (r *fakeVehicleRepo) FindAll(_ context.Context, status *entity.VehicleStatus, offset, limit int) ([]*entity.Vehicle, error) {
	return page(r.filter(status), offset, limit), nil
}

func (r *fakeVehicleRepo) CountAll(_ context.Context, status *entity.VehicleStatus) (int64, error) {
	return int64(len(r.filter(status))), nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, vehicle *entity.Vehicle) error {
	if _, ok := r.db.state.vehicles[vehicle.Plate]; !ok {
		return apperror.NotFound("vehicle", vehicle.Plate)
	}
	cp := *vehicle
	r.db.state.vehicles[vehicle.Plate] = &cp
	return nil
}

func (r *fakeVehicleRepo) UpdateStatus(_ context.Context, plate string, status entity.VehicleStatus, at time.Time) error {
	if r.db.faults.vehicleStatus != nil {
		return r.db.faults.vehicleStatus
	}
	v, ok := r.db.state.vehicles[plate]
	if !ok {
		return apperror.NotFound("vehicle", plate)
	}
	v.Status = status
	v.UpdatedAt = at
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, plate string) error {
	if _, ok := r.db.state.vehicles[plate]; !ok {
		return apperror.NotFound("vehicle", plate)
	}
	delete(r.db.state.vehicles, plate)
	return nil
}

// ---------------- daily rates ----------------

type fakeDailyRateRepo struct{ db *fakeDB }

func (r *fakeDailyRateRepo) Create(_ context.Context, rate *entity.DailyRate) error {
	cp := *rate
	r.db.state.rates = append(r.db.state.rates, &cp)
	return nil
}

func (r *fakeDailyRateRepo) FindMostRecent(_ context.Context, plate string, asOf time.Time) (*entity.DailyRate, error) {
	var best *entity.DailyRate
	for _, rate := range r.db.state.rates {
		if rate.VehiclePlate != plate || rate.EffectiveFrom.After(asOf) {
			continue
		}
		if best == nil || rate.EffectiveFrom.After(best.EffectiveFrom) {
			best = rate
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *fakeDailyRateRepo) FindByVehicle(_ context.Context, plate string) ([]*entity.DailyRate, error) {
	var out []*entity.DailyRate
	for _, rate := range r.db.state.rates {
		if rate.VehiclePlate == plate {
			cp := *rate
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out, nil
}

// ---------------- promotions ----------------

type fakePromotionRepo struct{ db *fakeDB }

func (r *fakePromotionRepo) Create(_ context.Context, promotion *entity.Promotion) error {
	if _, ok := r.db.state.promotions[promotion.Code]; ok {
		return apperror.Conflict("promotion already exists")
	}
	cp := *promotion
	r.db.state.promotions[promotion.Code] = &cp
	return nil
}

func (r *fakePromotionRepo) FindByCode(_ context.Context, code string) (*entity.Promotion, error) {
	p, ok := r.db.state.promotions[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePromotionRepo) filter(status *entity.PromotionStatus) []*entity.Promotion {
	var out []*entity.Promotion
	for _, p := range r.db.state.promotions {
		if status != nil && p.Status != *status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (r *fakePromotionRepo) FindAll(_ context.Context, status *entity.PromotionStatus, offset, limit int) ([]*entity.Promotion, error) {
	return page(r.filter(status), offset, limit), nil
}

func (r *fakePromotionRepo) CountAll(_ context.Context, status *entity.PromotionStatus) (int64, error) {
	return int64(len(r.filter(status))), nil
}

func (r *fakePromotionRepo) Update(_ context.Context, promotion *entity.Promotion) error {
	if _, ok := r.db.state.promotions[promotion.Code]; !ok {
		return apperror.NotFound("promotion", promotion.Code)
	}
	cp := *promotion
	r.db.state.promotions[promotion.Code] = &cp
	return nil
}

func (r *fakePromotionRepo) Delete(_ context.Context, code string) error {
	if _, ok := r.db.state.promotions[code]; !ok {
		return apperror.NotFound("promotion", code)
	}
	delete(r.db.state.promotions, code)
	return nil
}

// ---------------- reservations ----------------

type fakeReservationRepo struct{ db *fakeDB }

func (r *fakeReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	cp := *reservation
	r.db.state.reservations[reservation.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	res, ok := r.db.state.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

// detail mirrors the JOIN the SQL repository runs.
func (r *fakeReservationRepo) detail(res *entity.Reservation) *entity.ReservationDetail {
	d := &entity.ReservationDetail{Reservation: *res}
	if c, ok := r.db.state.users[res.ClientUserCPF]; ok {
		d.ClientName = c.Name
	}
	if res.EmployeeUserCPF != nil {
		if e, ok := r.db.state.users[*res.EmployeeUserCPF]; ok {
			name := e.Name
			d.EmployeeName = &name
		}
	}
	if v, ok := r.db.state.vehicles[res.VehiclePlate]; ok {
		d.VehicleBrand = v.Brand
		d.VehicleModel = v.Model
	}
	return d
}

func (r *fakeReservationRepo) FindDetailByID(_ context.Context, id uuid.UUID) (*entity.ReservationDetail, error) {
	res, ok := r.db.state.reservations[id]
	if !ok {
		return nil, nil
	}
	return r.detail(res), nil
}

func (r *fakeReservationRepo) filter(filter entity.ReservationFilter) []*entity.ReservationDetail {
	var out []*entity.ReservationDetail
	for _, res := range r.db.state.reservations {
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.ClientUserCPF != nil && res.ClientUserCPF != *filter.ClientUserCPF {
			continue
		}
		if filter.VehiclePlate != nil && res.VehiclePlate != *filter.VehiclePlate {
			continue
		}
		out = append(out, r.detail(res))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (r *fakeReservationRepo) FindAll(_ context.Context, filter entity.ReservationFilter, offset, limit int) ([]*entity.ReservationDetail, error) {
	return page(r.filter(filter), offset, limit), nil
}

func (r *fakeReservationRepo) CountAll(_ context.Context, filter entity.ReservationFilter) (int64, error) {
	return int64(len(r.filter(filter))), nil
}

func (r *fakeReservationRepo) Update(_ context.Context, reservation *entity.Reservation) error {
	existing, ok := r.db.state.reservations[reservation.ID]
	if !ok {
		return apperror.NotFound("reservation", reservation.ID)
	}
	cp := *reservation
	cp.ClientUserCPF = existing.ClientUserCPF
	cp.ReservationDate = existing.ReservationDate
	r.db.state.reservations[reservation.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ReservationStatus, at time.Time) error {
	res, ok := r.db.state.reservations[id]
	if !ok {
		return apperror.NotFound("reservation", id)
	}
	res.Status = status
	res.UpdatedAt = at
	return nil
}

func (r *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.db.state.reservations[id]; !ok {
		return apperror.NotFound("reservation", id)
	}
	delete(r.db.state.reservations, id)
	return nil
}

func (r *fakeReservationRepo) CountConflicting(_ context.Context, plate string, start, end time.Time, excludeID *uuid.UUID) (int64, error) {
	var n int64
	for _, res := range r.db.state.reservations {
		if res.VehiclePlate != plate || !res.Status.BlocksVehicle() {
			continue
		}
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if Overlaps(Period{Start: start, End: end}, Period{Start: res.StartDate, End: res.EndDate}) {
			n++
		}
	}
	return n, nil
}

// ---------------- payments ----------------

type fakePaymentRepo struct{ db *fakeDB }

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	cp := *payment
	r.db.state.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	p, ok := r.db.state.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) filter(filter entity.PaymentFilter) []*entity.Payment {
	var out []*entity.Payment
	for _, p := range r.db.state.payments {
		if filter.ReservationID != nil && p.ReservationID != *filter.ReservationID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *fakePaymentRepo) FindAll(_ context.Context, filter entity.PaymentFilter, offset, limit int) ([]*entity.Payment, error) {
	return page(r.filter(filter), offset, limit), nil
}

func (r *fakePaymentRepo) CountAll(_ context.Context, filter entity.PaymentFilter) (int64, error) {
	return int64(len(r.filter(filter))), nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus, paidAt *time.Time, at time.Time) error {
	p, ok := r.db.state.payments[id]
	if !ok {
		return apperror.NotFound("payment", id)
	}
	p.Status = status
	p.PaidAt = paidAt
	p.UpdatedAt = at
	return nil
}

// ---------------- maintenance ----------------

type fakeMaintenanceRepo struct{ db *fakeDB }

func (r *fakeMaintenanceRepo) Create(_ context.Context, m *entity.Maintenance) error {
	cp := *m
	r.db.state.maintenances[m.ID] = &cp
	return nil
}

func (r *fakeMaintenanceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Maintenance, error) {
	m, ok := r.db.state.maintenances[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaintenanceRepo) filter(filter entity.MaintenanceFilter) []*entity.Maintenance {
	var out []*entity.Maintenance
	for _, m := range r.db.state.maintenances {
		if filter.VehiclePlate != nil && m.VehiclePlate != *filter.VehiclePlate {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

func (r *fakeMaintenanceRepo) FindAll(_ context.Context, filter entity.MaintenanceFilter, offset, limit int) ([]*entity.Maintenance, error) {
	return page(r.filter(filter), offset, limit), nil
}

func (r *fakeMaintenanceRepo) CountAll(_ context.Context, filter entity.MaintenanceFilter) (int64, error) {
	return int64(len(r.filter(filter))), nil
}

func (r *fakeMaintenanceRepo) CountOpenByVehicle(_ context.Context, plate string) (int64, error) {
	var n int64
	for _, m := range r.db.state.maintenances {
		if m.VehiclePlate == plate &&
			(m.Status == entity.MaintenanceStatusScheduled || m.Status == entity.MaintenanceStatusInProgress) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMaintenanceRepo) Update(_ context.Context, m *entity.Maintenance) error {
	if _, ok := r.db.state.maintenances[m.ID]; !ok {
		return apperror.NotFound("maintenance", m.ID)
	}
	cp := *m
	r.db.state.maintenances[m.ID] = &cp
	return nil
}

// ---------------- dashboard ----------------

type fakeDashboardRepo struct{ db *fakeDB }

func (r *fakeDashboardRepo) Stats(_ context.Context, from, to time.Time) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{
		From:                 from,
		To:                   to,
		VehiclesByStatus:     map[entity.VehicleStatus]int64{},
		ReservationsByStatus: map[entity.ReservationStatus]int64{},
	}
	for _, v := range r.db.state.vehicles {
		stats.VehiclesByStatus[v.Status]++
	}
	for _, res := range r.db.state.reservations {
		if !res.ReservationDate.Before(from) && res.ReservationDate.Before(to) {
			stats.ReservationsByStatus[res.Status]++
		}
	}
	for _, p := range r.db.state.payments {
		if p.Status == entity.PaymentStatusPaid && p.PaidAt != nil && !p.PaidAt.Before(from) && p.PaidAt.Before(to) {
			stats.Revenue += p.Amount
			stats.PaidPayments++
		}
	}
	for _, u := range r.db.state.users {
		if u.Role == entity.RoleClient {
			stats.TotalClients++
		}
	}
	return stats, nil
}
