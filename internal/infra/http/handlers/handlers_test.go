package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/http/middleware"
	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*entity.Contact, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Contact), args.Int(1), args.Error(2)
}

func (m *MockContactRepository) Update(ctx context.Context, id string, upd usecase.ContactUpdate) (*entity.Contact, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) AppendNote(ctx context.Context, id, text string, addedAt time.Time) (*entity.Contact, error) {
	args := m.Called(ctx, id, text, addedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockContactRepository) GroupByInterest(ctx context.Context) ([]usecase.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.StatusCount), args.Error(1)
}

func (m *MockContactRepository) Recent(ctx context.Context, limit int) ([]*entity.Contact, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contact), args.Error(1)
}

// MockBookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*entity.Booking, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingRepository) Update(ctx context.Context, id string, upd usecase.BookingUpdate) (*entity.Booking, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) AppendNote(ctx context.Context, id, text string, addedAt time.Time) (*entity.Booking, error) {
	args := m.Called(ctx, id, text, addedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) SetReminder(ctx context.Context, id string, r entity.Reminder) (*entity.Booking, error) {
	args := m.Called(ctx, id, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) GroupByDepartment(ctx context.Context) ([]usecase.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.StatusCount), args.Error(1)
}

func (m *MockBookingRepository) Recent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestContactSubmitCreated(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewSubmitContactUseCase(mockRepo, nil, nil)
	h := NewContactHandler(uc, NewRateLimiter(10, time.Minute))

	rec := postJSON(t, h.Submit, "/api/contact", `{
		"firstName": "Priya",
		"lastName": "Sharma",
		"phone": "+919876543210",
		"interest": "Health Insurance"
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Thank you! We will contact you within 24 hours.", body["message"])
}

func TestContactSubmitValidationEnvelope(t *testing.T) {
	mockRepo := new(MockContactRepository)
	uc := usecase.NewSubmitContactUseCase(mockRepo, nil, nil)
	h := NewContactHandler(uc, NewRateLimiter(10, time.Minute))

	rec := postJSON(t, h.Submit, "/api/contact", `{"firstName": "", "phone": ""}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["errors"])
	mockRepo.AssertNotCalled(t, "Create")
}

func TestContactSubmitInvalidJSON(t *testing.T) {
	uc := usecase.NewSubmitContactUseCase(new(MockContactRepository), nil, nil)
	h := NewContactHandler(uc, NewRateLimiter(10, time.Minute))

	rec := postJSON(t, h.Submit, "/api/contact", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactSubmitRateLimited(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewSubmitContactUseCase(mockRepo, nil, nil)
	h := NewContactHandler(uc, NewRateLimiter(2, time.Minute))

	payload := `{"firstName": "Priya", "phone": "+919876543210"}`
	for i := 0; i < 2; i++ {
		rec := postJSON(t, h.Submit, "/api/contact", payload)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := postJSON(t, h.Submit, "/api/contact", payload)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestBookingSubmitCreatedWithReference(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewSubmitBookingUseCase(mockRepo, nil, nil)
	h := NewBookingHandler(uc, NewRateLimiter(10, time.Minute))

	rec := postJSON(t, h.Submit, "/api/booking", `{
		"name": "Rahul Verma",
		"phone": "9876543210",
		"department": "loan",
		"details": {"loanAmount": "500000"}
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Regexp(t, `^CC-\d{4}-[0-9A-F]{4}$`, body["reference"])
}

func adminRouter(leads *usecase.ManageLeadsUseCase) *chi.Mux {
	h := NewAdminHandler(leads, nil)
	r := chi.NewRouter()
	r.Get("/contacts", h.ListContacts)
	r.Patch("/contacts/{id}", h.UpdateContact)
	r.Post("/contacts/{id}/notes", h.AddContactNote)
	r.Patch("/bookings/{id}", h.UpdateBooking)
	r.Put("/bookings/{id}/reminder", h.SetReminder)
	r.Delete("/bookings/{id}", h.DeleteBooking)
	return r
}

func TestAdminListContactsEnvelope(t *testing.T) {
	mockContacts := new(MockContactRepository)
	items := []*entity.Contact{{ID: "c-1"}, {ID: "c-2"}}
	mockContacts.On("List", mock.Anything, mock.Anything).Return(items, 25, nil)

	leads := usecase.NewManageLeadsUseCase(mockContacts, new(MockBookingRepository))
	router := adminRouter(leads)

	req := httptest.NewRequest(http.MethodGet, "/contacts?page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(25), pagination["total"])
	assert.Equal(t, float64(3), pagination["pages"])
}

func TestAdminPatchContactUnknownField(t *testing.T) {
	mockContacts := new(MockContactRepository)
	leads := usecase.NewManageLeadsUseCase(mockContacts, new(MockBookingRepository))
	router := adminRouter(leads)

	req := httptest.NewRequest(http.MethodPatch, "/contacts/c-1", bytes.NewBufferString(`{"phone": "000"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	mockContacts.AssertNotCalled(t, "Update")
}

func TestAdminPatchContactNotFound(t *testing.T) {
	mockContacts := new(MockContactRepository)
	mockContacts.On("Update", mock.Anything, "ghost", mock.Anything).Return(nil, entity.ErrNotFound)

	leads := usecase.NewManageLeadsUseCase(mockContacts, new(MockBookingRepository))
	router := adminRouter(leads)

	req := httptest.NewRequest(http.MethodPatch, "/contacts/ghost", bytes.NewBufferString(`{"status": "closed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminSetReminder(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	future := time.Now().Add(time.Hour).Truncate(time.Second)
	booking := &entity.Booking{
		ID:       "b-1",
		Reminder: &entity.Reminder{ScheduledAt: future, Note: "Call back"},
	}
	mockBookings.On("SetReminder", mock.Anything, "b-1", mock.Anything).Return(booking, nil)

	leads := usecase.NewManageLeadsUseCase(new(MockContactRepository), mockBookings)
	router := adminRouter(leads)

	payload, _ := json.Marshal(map[string]string{
		"scheduledAt": future.Format(time.RFC3339),
		"note":        "Call back",
	})
	req := httptest.NewRequest(http.MethodPut, "/bookings/b-1/reminder", bytes.NewBuffer(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
}

func TestAdminSetReminderPastRejected(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	leads := usecase.NewManageLeadsUseCase(new(MockContactRepository), mockBookings)
	router := adminRouter(leads)

	payload, _ := json.Marshal(map[string]string{
		"scheduledAt": time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	req := httptest.NewRequest(http.MethodPut, "/bookings/b-1/reminder", bytes.NewBuffer(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	mockBookings.AssertNotCalled(t, "SetReminder")
}

func TestAdminDeleteBooking(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("Delete", mock.Anything, "b-1").Return(nil)

	leads := usecase.NewManageLeadsUseCase(new(MockContactRepository), mockBookings)
	router := adminRouter(leads)

	req := httptest.NewRequest(http.MethodDelete, "/bookings/b-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthLoginAndVerify(t *testing.T) {
	h := NewAuthHandler("admin@covercredit.in", "s3cret", "test-signing-key")

	rec := postJSON(t, h.Login, "/api/auth/login", `{"email": "admin@covercredit.in", "password": "s3cret"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)

	// The issued token must pass the admin middleware.
	protected := middleware.RequireAdmin("test-signing-key")(http.HandlerFunc(h.Verify))
	req := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	verifyRec := httptest.NewRecorder()
	protected.ServeHTTP(verifyRec, req)

	assert.Equal(t, http.StatusOK, verifyRec.Code)
	verifyBody := decodeBody(t, verifyRec)
	user := verifyBody["user"].(map[string]interface{})
	assert.Equal(t, "admin@covercredit.in", user["email"])
}

func TestAuthLoginWrongPassword(t *testing.T) {
	h := NewAuthHandler("admin@covercredit.in", "s3cret", "test-signing-key")

	rec := postJSON(t, h.Login, "/api/auth/login", `{"email": "admin@covercredit.in", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	protected := middleware.RequireAdmin("test-signing-key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsBadToken(t *testing.T) {
	protected := middleware.RequireAdmin("test-signing-key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
