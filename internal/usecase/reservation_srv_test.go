package usecase

import (
	"context"
	"errors"
	"testing"

	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/events"
	"sigac-rental/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	staff  = Actor{CPF: employeeCPF, Role: entity.RoleEmployee}
	client = Actor{CPF: clientCPF, Role: entity.RoleClient}
)

func createRequest(startDay, endDay int) *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		StartDate:     day(startDay),
		EndDate:       day(endDay),
		ClientUserCPF: clientCPF,
		VehiclePlate:  testPlate,
	}
}

func TestCreateReservation_Success(t *testing.T) {
	f := newFixture(t)
	svc := f.reservations()

	resp, err := svc.Create(context.Background(), staff, createRequest(1, 5))
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusPending, resp.Status)
	assert.Equal(t, clientCPF, resp.ClientUserCPF)
	assert.Equal(t, "Maria Silva", resp.ClientName)
	assert.Equal(t, "Fiat", resp.VehicleBrand)
	assert.Equal(t, "Argo", resp.VehicleModel)
	require.NotNil(t, resp.EmployeeUserCPF)
	assert.Equal(t, employeeCPF, *resp.EmployeeUserCPF, "staff creating without an employee becomes the employee")
	assert.Len(t, f.db.state.reservations, 1)
	assert.Equal(t, entity.VehicleStatusAvailable, f.vehicleStatus())
}

func TestCreateReservation_NormalizesPlateAndCPF(t *testing.T) {
	f := newFixture(t)

	req := createRequest(1, 3)
	req.VehiclePlate = "abc-1d23"
	req.ClientUserCPF = "529.982.247-25"
	req.PromotionCode = strPtr(" promo10 ")

	resp, err := f.reservations().Create(context.Background(), staff, req)
	require.NoError(t, err)
	assert.Equal(t, testPlate, resp.VehiclePlate)
	assert.Equal(t, clientCPF, resp.ClientUserCPF)
	require.NotNil(t, resp.PromotionCode)
	assert.Equal(t, promoCode, *resp.PromotionCode)
}

func TestCreateReservation_Conflict(t *testing.T) {
	f := newFixture(t)
	f.seedReservation(entity.ReservationStatusConfirmed, day(2), day(6))

	_, err := f.reservations().Create(context.Background(), staff, createRequest(1, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrVehicleUnavailable))
	assert.Equal(t, "vehicle is not available for the selected period", apperror.From(err).Message)
	assert.Len(t, f.db.state.reservations, 1, "nothing persisted on conflict")
}

func TestCreateReservation_AvailabilityRules(t *testing.T) {
	tests := []struct {
		name      string
		status    entity.ReservationStatus
		startDay  int
		endDay    int
		wantError bool
	}{
		{"pending overlap blocks", entity.ReservationStatusPending, 2, 4, true},
		{"in progress overlap blocks", entity.ReservationStatusInProgress, 0, 2, true},
		{"cancelled overlap does not block", entity.ReservationStatusCancelled, 2, 4, false},
		{"completed overlap does not block", entity.ReservationStatusCompleted, 2, 4, false},
		{"touching end does not block", entity.ReservationStatusConfirmed, 5, 8, false},
		{"touching start does not block", entity.ReservationStatusConfirmed, -1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seedReservation(tt.status, day(tt.startDay), day(tt.endDay))

			_, err := f.reservations().Create(context.Background(), staff, createRequest(1, 5))
			if tt.wantError {
				assert.True(t, errors.Is(err, apperror.ErrVehicleUnavailable))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateReservation_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*request.CreateReservationRequest)
		want   error
	}{
		{"end before start", func(r *request.CreateReservationRequest) { r.EndDate = r.StartDate.Add(-1) }, apperror.ErrValidation},
		{"start far in the past", func(r *request.CreateReservationRequest) { r.StartDate = day(-1) }, apperror.ErrValidation},
		{"bad plate", func(r *request.CreateReservationRequest) { r.VehiclePlate = "12-AB" }, apperror.ErrValidation},
		{"bad cpf", func(r *request.CreateReservationRequest) { r.ClientUserCPF = "123" }, apperror.ErrValidation},
		{"unknown vehicle", func(r *request.CreateReservationRequest) { r.VehiclePlate = "XYZ9876" }, apperror.ErrNotFound},
		{"unknown client", func(r *request.CreateReservationRequest) { r.ClientUserCPF = "00000000191" }, apperror.ErrNotFound},
		{"unknown promotion", func(r *request.CreateReservationRequest) { r.PromotionCode = strPtr("NOPE") }, apperror.ErrNotFound},
		{"employee is a client", func(r *request.CreateReservationRequest) { r.EmployeeUserCPF = strPtr(otherClientCPF) }, apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := createRequest(1, 3)
			tt.mutate(req)

			_, err := f.reservations().Create(context.Background(), staff, req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, f.db.state.reservations)
		})
	}
}

func TestCreateReservation_VehicleInMaintenance(t *testing.T) {
	f := newFixture(t)
	f.db.state.vehicles[testPlate].Status = entity.VehicleStatusMaintenance

	_, err := f.reservations().Create(context.Background(), staff, createRequest(1, 3))
	assert.True(t, errors.Is(err, apperror.ErrVehicleUnavailable))
}

func TestCreateReservation_ClientForAnotherClient(t *testing.T) {
	f := newFixture(t)
	req := createRequest(1, 3)
	req.ClientUserCPF = otherClientCPF

	_, err := f.reservations().Create(context.Background(), client, req)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	resp, err := f.reservations().Create(context.Background(), client, createRequest(1, 3))
	require.NoError(t, err)
	assert.Nil(t, resp.EmployeeUserCPF)
}

func TestGetReservation_ClientSeesOnlyOwn(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusPending, day(1), day(2))
	svc := f.reservations()

	got, err := svc.GetByID(context.Background(), client, res.ID.String())
	require.NoError(t, err)
	assert.Equal(t, res.ID.String(), got.ID)

	other := Actor{CPF: otherClientCPF, Role: entity.RoleClient}
	_, err = svc.GetByID(context.Background(), other, res.ID.String())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = svc.GetByID(context.Background(), staff, "not-a-uuid")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestListReservations_ClientFilterForced(t *testing.T) {
	f := newFixture(t)
	f.seedReservation(entity.ReservationStatusPending, day(1), day(2))
	theirs := f.seedReservation(entity.ReservationStatusPending, day(3), day(4))
	f.db.state.reservations[theirs.ID].ClientUserCPF = otherClientCPF
	svc := f.reservations()

	req := &request.ReservationListRequest{ClientUserCPF: strPtr(otherClientCPF)}
	got, err := svc.List(context.Background(), client, req)
	require.NoError(t, err)
	require.Len(t, got.Data, 1)
	assert.Equal(t, clientCPF, got.Data[0].ClientUserCPF)
	assert.Equal(t, int64(1), got.Pagination.Total)

	all, err := svc.List(context.Background(), staff, &request.ReservationListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)
	assert.Equal(t, 1, all.Pagination.Page)
}

func TestUpdateStatus_SyncsVehicle(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusConfirmed, day(0), day(2))
	svc := f.reservations()

	got, err := svc.UpdateStatus(context.Background(), res.ID.String(), &request.UpdateReservationStatusRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusInProgress, got.Status)
	assert.Equal(t, entity.VehicleStatusUnavailable, f.vehicleStatus())

	got, err = svc.UpdateStatus(context.Background(), res.ID.String(), &request.UpdateReservationStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusCompleted, got.Status)
	assert.Equal(t, entity.VehicleStatusAvailable, f.vehicleStatus())
}

func TestUpdateStatus_CompletedToCancelledIsIllegal(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusCompleted, day(-5), day(-3))

	_, err := f.reservations().UpdateStatus(context.Background(), res.ID.String(), &request.UpdateReservationStatusRequest{Status: "CANCELLED"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidStateTransition))

	var transitionErr *entity.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, entity.ReservationStatusCompleted, transitionErr.From)
	assert.Equal(t, entity.ReservationStatusCancelled, transitionErr.To)
	assert.Equal(t, entity.ReservationStatusCompleted, f.storedStatus(res.ID))
}

func TestUpdateStatus_RollsBackWhenVehicleWriteFails(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusConfirmed, day(0), day(2))
	f.db.faults.vehicleStatus = errors.New("connection reset")

	_, err := f.reservations().UpdateStatus(context.Background(), res.ID.String(), &request.UpdateReservationStatusRequest{Status: "IN_PROGRESS"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.From(err).Kind)
	assert.Equal(t, entity.ReservationStatusConfirmed, f.storedStatus(res.ID), "reservation write rolled back")
	assert.Equal(t, entity.VehicleStatusAvailable, f.vehicleStatus())
}

func TestUpdateStatus_SelfTransitionWritesNothing(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusPending, day(1), day(2))
	f.db.faults.vehicleStatus = errors.New("must not be called")

	got, err := f.reservations().UpdateStatus(context.Background(), res.ID.String(), &request.UpdateReservationStatusRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusPending, got.Status)
	assert.Equal(t, day(-2), f.db.state.reservations[res.ID].UpdatedAt)
}

func TestUpdateStatus_UnknownStatusAndReservation(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusPending, day(1), day(2))
	svc := f.reservations()

	_, err := svc.UpdateStatus(context.Background(), res.ID.String(), &request.UpdateReservationStatusRequest{Status: "LOST"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = svc.UpdateStatus(context.Background(), "6f1c1c8e-8d0a-4c43-9d1d-6f6e8a0b9a11", &request.UpdateReservationStatusRequest{Status: "CONFIRMED"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUpdateReservation_ExcludesItself(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusConfirmed, day(1), day(4))

	got, err := f.reservations().Update(context.Background(), res.ID.String(), &request.UpdateReservationRequest{
		EndDate: timePtr(day(5)),
	})
	require.NoError(t, err)
	assert.Equal(t, day(5), got.EndDate)
	assert.Equal(t, clientCPF, got.ClientUserCPF)
}

func TestUpdateReservation_ConflictWithOther(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusConfirmed, day(1), day(3))
	f.seedReservation(entity.ReservationStatusPending, day(4), day(6))

	_, err := f.reservations().Update(context.Background(), res.ID.String(), &request.UpdateReservationRequest{
		EndDate: timePtr(day(5)),
	})
	assert.True(t, errors.Is(err, apperror.ErrVehicleUnavailable))
	assert.Equal(t, day(3), f.db.state.reservations[res.ID].EndDate)
}

func TestUpdateReservation_TerminalRejectsEdits(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusCancelled, day(1), day(3))

	_, err := f.reservations().Update(context.Background(), res.ID.String(), &request.UpdateReservationRequest{
		EndDate: timePtr(day(4)),
	})
	assert.True(t, errors.Is(err, apperror.ErrInvalidStateTransition))
}

func TestUpdateReservation_StatusChangeSyncsVehicle(t *testing.T) {
	f := newFixture(t)
	res := f.seedReservation(entity.ReservationStatusConfirmed, day(0), day(2))

	got, err := f.reservations().Update(context.Background(), res.ID.String(), &request.UpdateReservationRequest{
		Status: strPtr("IN_PROGRESS"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusInProgress, got.Status)
	assert.Equal(t, entity.VehicleStatusUnavailable, f.vehicleStatus())
}

func TestUpdateReservation_PlateChangeMovesRental(t *testing.T) {
	f := newFixture(t)
	f.db.state.vehicles["XYZ9A99"] = &entity.Vehicle{
		Plate: "XYZ9A99", Brand: "VW", Model: "Polo", Year: 2023, Color: "Branco",
		Category: "HATCH", Status: entity.VehicleStatusAvailable,
	}
	res := f.seedReservation(entity.ReservationStatusInProgress, day(0), day(2))
	f.db.state.vehicles[testPlate].Status = entity.VehicleStatusUnavailable

	got, err := f.reservations().Update(context.Background(), res.ID.String(), &request.UpdateReservationRequest{
		VehiclePlate: strPtr("XYZ9A99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "XYZ9A99", got.VehiclePlate)
	assert.Equal(t, entity.ReservationStatusInProgress, got.Status)
	assert.Equal(t, entity.VehicleStatusAvailable, f.vehicleStatus())
	assert.Equal(t, entity.VehicleStatusUnavailable, f.db.state.vehicles["XYZ9A99"].Status)
}

func TestUpdateReservation_PlateChangeRollsBackOnSyncFailure(t *testing.T) {
	f := newFixture(t)
	f.db.state.vehicles["XYZ9A99"] = &entity.Vehicle{
		Plate: "XYZ9A99", Brand: "VW", Model: "Polo", Year: 2023, Color: "Branco",
		Category: "HATCH", Status: entity.VehicleStatusAvailable,
	}
	res := f.seedReservation(entity.ReservationStatusInProgress, day(0), day(2))
	f.db.state.vehicles[testPlate].Status = entity.VehicleStatusUnavailable
	f.db.faults.vehicleStatus = errors.New("connection reset")

	_, err := f.reservations().Update(context.Background(), res.ID.String(), &request.UpdateReservationRequest{
		VehiclePlate: strPtr("XYZ9A99"),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.From(err).Kind)
	assert.Equal(t, testPlate, f.db.state.reservations[res.ID].VehiclePlate)
	assert.Equal(t, entity.VehicleStatusUnavailable, f.vehicleStatus())
}

func TestDeleteReservation(t *testing.T) {
	tests := []struct {
		status  entity.ReservationStatus
		wantErr error
	}{
		{entity.ReservationStatusPending, nil},
		{entity.ReservationStatusConfirmed, nil},
		{entity.ReservationStatusCancelled, nil},
		{entity.ReservationStatusInProgress, apperror.ErrValidation},
		{entity.ReservationStatusCompleted, apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			f := newFixture(t)
			res := f.seedReservation(tt.status, day(1), day(2))

			err := f.reservations().Delete(context.Background(), res.ID.String())
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Len(t, f.db.state.reservations, 1)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, f.db.state.reservations)
		})
	}
}

func TestCalculateAmount(t *testing.T) {
	f := newFixture(t)

	got, err := f.reservations().CalculateAmount(context.Background(), &request.CalculateAmountRequest{
		StartDate:     day(1),
		EndDate:       day(5),
		VehiclePlate:  testPlate,
		PromotionCode: strPtr("promo10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Days)
	assert.Equal(t, 400.0, got.BaseAmount)
	assert.Equal(t, 10, got.DiscountPercentage)
	assert.Equal(t, 360.0, got.Amount)
}

func TestHandlePaymentSettled(t *testing.T) {
	tests := []struct {
		name    string
		status  entity.ReservationStatus
		want    entity.ReservationStatus
		wantErr error
	}{
		{"pending is confirmed", entity.ReservationStatusPending, entity.ReservationStatusConfirmed, nil},
		{"confirmed stays", entity.ReservationStatusConfirmed, entity.ReservationStatusConfirmed, nil},
		{"in progress stays", entity.ReservationStatusInProgress, entity.ReservationStatusInProgress, nil},
		{"cancelled is rejected", entity.ReservationStatusCancelled, entity.ReservationStatusCancelled, apperror.ErrInvalidStateTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res := f.seedReservation(tt.status, day(1), day(2))

			event := events.NewEvent(events.EventPaymentSettled, employeeCPF, baseNow, events.PaymentPayload{ReservationID: res.ID})
			err := f.reservations().HandlePaymentSettled(context.Background(), event)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, f.storedStatus(res.ID))
		})
	}
}
