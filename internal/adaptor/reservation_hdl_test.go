package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/dto/response"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReservationService struct {
	usecase.ReservationService

	gotActor usecase.Actor
	gotID    string
	gotList  *request.ReservationListRequest
	gotCalc  *request.CalculateAmountRequest
	err      error
}

func (f *fakeReservationService) Create(_ context.Context, actor usecase.Actor, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	f.gotActor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &response.ReservationResponse{
		ID:            "b6f7c1de-0000-4000-8000-000000000001",
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        entity.ReservationStatusPending,
		ClientUserCPF: req.ClientUserCPF,
		VehiclePlate:  req.VehiclePlate,
	}, nil
}

func (f *fakeReservationService) GetByID(_ context.Context, actor usecase.Actor, id string) (*response.ReservationResponse, error) {
	f.gotActor, f.gotID = actor, id
	if f.err != nil {
		return nil, f.err
	}
	return &response.ReservationResponse{ID: id}, nil
}

func (f *fakeReservationService) List(_ context.Context, actor usecase.Actor, req *request.ReservationListRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	f.gotActor, f.gotList = actor, req
	return response.NewPaginatedResponse([]response.ReservationResponse{}, req.Page, req.PerPage, 0), nil
}

func (f *fakeReservationService) UpdateStatus(_ context.Context, id string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return &response.ReservationResponse{ID: id, Status: entity.ReservationStatus(req.Status)}, nil
}

func (f *fakeReservationService) Delete(_ context.Context, id string) error {
	f.gotID = id
	return f.err
}

func (f *fakeReservationService) CalculateAmount(_ context.Context, req *request.CalculateAmountRequest) (*response.AmountResponse, error) {
	f.gotCalc = req
	return &response.AmountResponse{DailyRate: 100, Days: 4, BaseAmount: 400, DiscountPercentage: 10, Amount: 360}, nil
}

const (
	clientCPF   = "52998224725"
	employeeCPF = "11144477735"
)

func TestCreateReservation(t *testing.T) {
	svc := &fakeReservationService{}
	h := NewReservationHandler(svc, zap.NewNop())

	body := `{"start_date":"2026-03-11T09:00:00Z","end_date":"2026-03-15T09:00:00Z","client_user_cpf":"52998224725","vehicle_plate":"ABC1D23"}`
	rec := httptest.NewRecorder()
	h.CreateReservation(rec, newRequest(http.MethodPost, "/api/reservations", body, nil, clientCPF, entity.RoleClient))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, usecase.Actor{CPF: clientCPF, Role: entity.RoleClient}, svc.gotActor)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Status)
	assert.Contains(t, string(env.Data), `"status":"PENDING"`)
}

func TestCreateReservation_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		cpf        string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", `{}`, "", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"malformed json", `{"start_date":`, clientCPF, nil, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"vehicle unavailable", `{}`, clientCPF, apperror.VehicleUnavailable("ABC1D23"), http.StatusBadRequest, "VEHICLE_UNAVAILABLE"},
		{"not found", `{}`, clientCPF, apperror.NotFound("vehicle", "ABC1D23"), http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReservationHandler(&fakeReservationService{err: tt.err}, zap.NewNop())
			rec := httptest.NewRecorder()
			h.CreateReservation(rec, newRequest(http.MethodPost, "/api/reservations", tt.body, nil, tt.cpf, entity.RoleClient))

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Status)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}

func TestGetReservations_QueryFilters(t *testing.T) {
	svc := &fakeReservationService{}
	h := NewReservationHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetReservations(rec, newRequest(http.MethodGet, "/api/reservations?status=PENDING&vehicle_plate=ABC1D23&page=2&per_page=5", "", nil, employeeCPF, entity.RoleEmployee))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotList)
	assert.Equal(t, 2, svc.gotList.Page)
	assert.Equal(t, 5, svc.gotList.PerPage)
	require.NotNil(t, svc.gotList.Status)
	assert.Equal(t, "PENDING", *svc.gotList.Status)
	require.NotNil(t, svc.gotList.VehiclePlate)
	assert.Equal(t, "ABC1D23", *svc.gotList.VehiclePlate)
	assert.Nil(t, svc.gotList.ClientUserCPF)
}

func TestGetReservation_URLParam(t *testing.T) {
	svc := &fakeReservationService{}
	h := NewReservationHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	params := map[string]string{"id": "b6f7c1de-0000-4000-8000-000000000001"}
	h.GetReservation(rec, newRequest(http.MethodGet, "/api/reservations/x", "", params, clientCPF, entity.RoleClient))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b6f7c1de-0000-4000-8000-000000000001", svc.gotID)
}

func TestUpdateReservationStatus_IllegalTransition(t *testing.T) {
	svc := &fakeReservationService{err: &entity.InvalidTransitionError{
		From: entity.ReservationStatusCompleted,
		To:   entity.ReservationStatusCancelled,
	}}
	h := NewReservationHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.UpdateReservationStatus(rec, newRequest(http.MethodPatch, "/api/reservations/x/status", `{"status":"CANCELLED"}`,
		map[string]string{"id": "abc"}, employeeCPF, entity.RoleEmployee))

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "INVALID_STATE_TRANSITION", env.Code)
	assert.Equal(t, "cannot change reservation status from COMPLETED to CANCELLED", env.Message)
}

func TestDeleteReservation_InternalErrorIsHidden(t *testing.T) {
	svc := &fakeReservationService{err: assert.AnError}
	h := NewReservationHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.DeleteReservation(rec, newRequest(http.MethodDelete, "/api/reservations/x", "", map[string]string{"id": "abc"}, employeeCPF, entity.RoleEmployee))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", env.Message)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestCalculateAmount(t *testing.T) {
	svc := &fakeReservationService{}
	h := NewReservationHandler(svc, zap.NewNop())

	body := `{"start_date":"2026-03-11T09:00:00Z","end_date":"2026-03-15T09:00:00Z","vehicle_plate":"ABC1D23","promotion_code":"PROMO10"}`
	rec := httptest.NewRecorder()
	h.CalculateAmount(rec, newRequest(http.MethodPost, "/api/reservations/calculate-amount", body, nil, clientCPF, entity.RoleClient))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotCalc)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), svc.gotCalc.StartDate)
	assert.Contains(t, rec.Body.String(), `"amount":360`)
}
