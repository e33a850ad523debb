package usecase

import (
	"testing"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	clientCPF      = "52998224725"
	otherClientCPF = "39053344705"
	employeeCPF    = "11144477735"
	testPlate      = "ABC1D23"
	promoCode      = "PROMO10"
)

var baseNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return baseNow }

func day(n int) time.Time { return baseNow.Add(time.Duration(n) * 24 * time.Hour) }

type fixture struct {
	db   *fakeDB
	repo *repository.Repository
	log  *zap.Logger
}

// newFixture seeds two clients, an employee, one available vehicle at 100.00/day and an active 10% promotion.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newFakeDB()
	st := db.state
	for _, u := range []*entity.User{
		{CPF: clientCPF, Name: "Maria Silva", Email: "maria@example.com", Role: entity.RoleClient, IsActive: true},
		{CPF: otherClientCPF, Name: "Pedro Lima", Email: "pedro@example.com", Role: entity.RoleClient, IsActive: true},
		{CPF: employeeCPF, Name: "Joana Souza", Email: "joana@example.com", Role: entity.RoleEmployee, IsActive: true},
	} {
		st.users[u.CPF] = u
	}
	st.vehicles[testPlate] = &entity.Vehicle{
		Plate: testPlate, Brand: "Fiat", Model: "Argo", Year: 2024, Color: "Prata",
		Category: "HATCH", Status: entity.VehicleStatusAvailable,
	}
	st.rates = append(st.rates, &entity.DailyRate{
		ID: uuid.New(), VehiclePlate: testPlate, Amount: 100, EffectiveFrom: day(-30),
	})
	st.promotions[promoCode] = &entity.Promotion{
		Code: promoCode, DiscountPercentage: 10, StartDate: day(-1), EndDate: day(30),
		Status: entity.PromotionStatusActive,
	}

	return &fixture{
		db:   db,
		repo: newFakeRepository(db, nil),
		log:  zap.NewNop(),
	}
}

func (f *fixture) reservations() *reservationService {
	return newReservationService(f.repo, fixedNow, f.log)
}

func (f *fixture) pricing() *pricingCalculator {
	return newPricingCalculator(f.repo.DailyRate, f.repo.Promotion, fixedNow, f.log)
}

// seedReservation stores a reservation directly, bypassing every check.
func (f *fixture) seedReservation(status entity.ReservationStatus, start, end time.Time) *entity.Reservation {
	res := &entity.Reservation{
		ID:              uuid.New(),
		StartDate:       start,
		EndDate:         end,
		ReservationDate: day(-2),
		Status:          status,
		ClientUserCPF:   clientCPF,
		VehiclePlate:    testPlate,
		UpdatedAt:       day(-2),
	}
	f.db.state.reservations[res.ID] = res
	return res
}

func (f *fixture) vehicleStatus() entity.VehicleStatus {
	return f.db.state.vehicles[testPlate].Status
}

func (f *fixture) storedStatus(id uuid.UUID) entity.ReservationStatus {
	return f.db.state.reservations[id].Status
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
