package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBusService struct {
	services.BusService
	buses   map[primitive.ObjectID]*models.Bus
	created *validators.BusCreateRequest
}

func (f *fakeBusService) GetBus(ctx context.Context, id primitive.ObjectID) (*models.Bus, error) {
	bus, ok := f.buses[id]
	if !ok {
		return nil, utils.NewNotFoundError("Bus not found.")
	}
	return bus, nil
}

func (f *fakeBusService) CreateBus(ctx context.Context, req *validators.BusCreateRequest) (*models.Bus, error) {
	f.created = req
	return &models.Bus{ID: primitive.NewObjectID(), BusNumber: req.BusNumber, PlateNumber: req.PlateNumber, Capacity: req.Capacity}, nil
}

type fakeDriverService struct {
	services.DriverService
	req   *validators.DriverCreateRequest
	image []byte
	name  string
}

func (f *fakeDriverService) CreateDriver(ctx context.Context, req *validators.DriverCreateRequest, image *services.ImageUpload) (*models.Driver, error) {
	f.req = req
	if image != nil {
		f.name = image.Filename
		f.image, _ = io.ReadAll(image.Reader)
	}
	return &models.Driver{ID: primitive.NewObjectID(), FirstName: req.FirstName, LastName: req.LastName}, nil
}

type fakeDashboardService struct {
	services.DashboardService
}

func (fakeDashboardService) ExportReport(ctx context.Context, name string) ([]byte, string, error) {
	if name != "bus-utilization" {
		return nil, "", utils.NewNotFoundError("Report not found.")
	}
	return []byte("%PDF-1.3 test"), "bus-utilization-20260315.pdf", nil
}

type pinger struct{ err error }

func (p pinger) Ping(ctx context.Context) error { return p.err }

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestGetBus(t *testing.T) {
	id := primitive.NewObjectID()
	h := NewBusHandler(&fakeBusService{buses: map[primitive.ObjectID]*models.Bus{
		id: {ID: id, BusNumber: "B-12"},
	}}, nil)
	r := gin.New()
	r.GET("/buses/:id", h.GetBus)

	tests := []struct {
		name    string
		path    string
		status  int
		message string
	}{
		{"found", "/buses/" + id.Hex(), http.StatusOK, ""},
		{"malformed id", "/buses/xyz", http.StatusBadRequest, utils.ErrInvalidID},
		{"missing", "/buses/" + primitive.NewObjectID().Hex(), http.StatusNotFound, "Bus not found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			resp := decode(t, w)
			if resp.Success != (tt.status == http.StatusOK) || resp.Message != tt.message {
				t.Fatalf("unexpected envelope %+v", resp)
			}
		})
	}
}

func TestCreateBus(t *testing.T) {
	svc := &fakeBusService{}
	h := NewBusHandler(svc, nil)
	r := gin.New()
	r.POST("/buses", h.CreateBus)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/buses", strings.NewReader(`{"bus_number":"B-7","plate_number":"ABC-123","capacity":40}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", w.Code, w.Body.String())
	}
	if svc.created == nil || svc.created.BusNumber != "B-7" {
		t.Fatalf("service not called with request: %+v", svc.created)
	}

	for _, body := range []string{`{"bus_number":`, `{"plate_number":"ABC-123","capacity":40}`, `{"bus_number":"B-8","plate_number":"X1","capacity":0}`} {
		svc.created = nil
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/buses", strings.NewReader(body)))
		if w.Code != http.StatusBadRequest || svc.created != nil {
			t.Errorf("body %s: status = %d, service called = %v", body, w.Code, svc.created != nil)
		}
	}
}

func multipartBody(t *testing.T, data string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if err := mw.WriteField("data", data); err != nil {
		t.Fatal(err)
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "face.png")
		if err != nil {
			t.Fatal(err)
		}
		part.Write(image)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return body, mw.FormDataContentType()
}

func TestCreateDriverMultipart(t *testing.T) {
	svc := &fakeDriverService{}
	h := NewDriverHandler(svc)
	r := gin.New()
	r.POST("/drivers", h.CreateDriver)

	body, contentType := multipartBody(t, `{"f_name":"Ana","l_name":"Cruz","license_number":"LIC-001","contact_number":"+63 912 345 6789"}`, []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/drivers", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if svc.req.LicenseNumber != "LIC-001" || svc.name != "face.png" || string(svc.image) != "png-bytes" {
		t.Fatalf("unexpected call: req %+v name %q image %q", svc.req, svc.name, svc.image)
	}
}

func TestCreateDriverMultipartWithoutImage(t *testing.T) {
	svc := &fakeDriverService{}
	h := NewDriverHandler(svc)
	r := gin.New()
	r.POST("/drivers", h.CreateDriver)

	body, contentType := multipartBody(t, `{"f_name":"Ana","l_name":"Cruz","license_number":"LIC-001","contact_number":"09123456789"}`, nil)
	req := httptest.NewRequest(http.MethodPost, "/drivers", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated || svc.image != nil {
		t.Fatalf("status = %d image = %v", w.Code, svc.image)
	}
}

func TestCreateDriverRejectsBadData(t *testing.T) {
	svc := &fakeDriverService{}
	h := NewDriverHandler(svc)
	r := gin.New()
	r.POST("/drivers", h.CreateDriver)

	body, contentType := multipartBody(t, `{not json`, nil)
	req := httptest.NewRequest(http.MethodPost, "/drivers", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest || svc.req != nil {
		t.Fatalf("status = %d, service called = %v", w.Code, svc.req != nil)
	}
}

func TestExportReport(t *testing.T) {
	h := NewDashboardHandler(fakeDashboardService{}, nil)
	r := gin.New()
	r.GET("/reports/:name/export", h.ExportReport)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/bus-utilization/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="bus-utilization-20260315.pdf"` {
		t.Fatalf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("body is not a pdf: %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/unknown/export", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown report status = %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Pinger
		status int
	}{
		{"healthy with disabled cache", map[string]Pinger{"mongodb": pinger{}, "redis": nil}, http.StatusOK},
		{"database down", map[string]Pinger{"mongodb": pinger{err: context.DeadlineExceeded}}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthHandler("test", tt.checks).Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}

			var body struct {
				Services map[string]string `json:"services"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if _, ok := tt.checks["redis"]; ok && body.Services["redis"] != "disabled" {
				t.Fatalf("redis = %q, want disabled", body.Services["redis"])
			}
		})
	}
}
