package services

import (
	"context"
	"net/http"
	"testing"

	"fleetadmin/internal/models"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateBusDefaultsAndAudit(t *testing.T) {
	actor := primitive.NewObjectID()
	audit, logs := newTestAudit()
	svc := NewBusService(newFakeBusRepo(), audit, logger.NewNop())

	bus, err := svc.CreateBus(actorContext(actor), &validators.BusCreateRequest{
		BusNumber: "B-12", PlateNumber: "ABC 123", Capacity: 40,
	})
	if err != nil {
		t.Fatalf("CreateBus: %v", err)
	}
	if bus.Status != models.BusStateActive {
		t.Fatalf("status = %q, want active", bus.Status)
	}
	if len(logs.logs) != 1 || logs.logs[0].Action != "bus.create" {
		t.Fatalf("audit = %+v", logs.logs)
	}
	if logs.logs[0].UserID == nil || *logs.logs[0].UserID != actor {
		t.Fatalf("audit actor = %v, want %s", logs.logs[0].UserID, actor.Hex())
	}
}

func TestCreateBusConflicts(t *testing.T) {
	existing := &models.Bus{BusNumber: "B-1", PlateNumber: "P-1", Status: models.BusStateActive}
	deleted := &models.Bus{BusNumber: "B-9", PlateNumber: "P-9", IsDeleted: true}
	audit, _ := newTestAudit()
	svc := NewBusService(newFakeBusRepo(existing, deleted), audit, logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     validators.BusCreateRequest
		message string
	}{
		{"plate checked first", validators.BusCreateRequest{BusNumber: "B-1", PlateNumber: "P-1", Capacity: 10}, msgBusPlateExists},
		{"bus number", validators.BusCreateRequest{BusNumber: "B-1", PlateNumber: "P-2", Capacity: 10}, msgBusNumberExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBus(ctx, &tt.req)
			assertStatus(t, err, http.StatusConflict, tt.message)
		})
	}

	t.Run("deleted bus does not block reuse", func(t *testing.T) {
		req := validators.BusCreateRequest{BusNumber: "B-9", PlateNumber: "P-9", Capacity: 10}
		if _, err := svc.CreateBus(ctx, &req); err != nil {
			t.Fatalf("CreateBus: %v", err)
		}
	})
}

func TestUpdateBusChecksMergedUniqueness(t *testing.T) {
	a := &models.Bus{BusNumber: "A", PlateNumber: "PA"}
	b := &models.Bus{BusNumber: "B", PlateNumber: "PB"}
	repo := newFakeBusRepo(a, b)
	audit, _ := newTestAudit()
	svc := NewBusService(repo, audit, logger.NewNop())
	ctx := context.Background()

	_, err := svc.UpdateBus(ctx, a.ID, &validators.BusUpdateRequest{BusNumber: strPtr("B")})
	assertStatus(t, err, http.StatusConflict, msgBusNumberExists)

	// keeping its own values is not a conflict
	updated, err := svc.UpdateBus(ctx, a.ID, &validators.BusUpdateRequest{PlateNumber: strPtr("PA"), Capacity: intPtr(55)})
	if err != nil {
		t.Fatalf("UpdateBus: %v", err)
	}
	if updated.Capacity != 55 {
		t.Fatalf("capacity = %d", updated.Capacity)
	}

	_, err = svc.UpdateBus(ctx, primitive.NewObjectID(), &validators.BusUpdateRequest{Capacity: intPtr(1)})
	assertStatus(t, err, http.StatusNotFound, msgBusNotFound)
}

func TestUpdateBusWithoutChangesSkipsWrite(t *testing.T) {
	bus := &models.Bus{BusNumber: "A", PlateNumber: "PA"}
	repo := newFakeBusRepo(bus)
	audit, logs := newTestAudit()
	svc := NewBusService(repo, audit, logger.NewNop())

	if _, err := svc.UpdateBus(context.Background(), bus.ID, &validators.BusUpdateRequest{}); err != nil {
		t.Fatalf("UpdateBus: %v", err)
	}
	if len(repo.updates) != 0 || len(logs.logs) != 0 {
		t.Fatalf("expected no write, got %d updates and %d audit rows", len(repo.updates), len(logs.logs))
	}
}

func TestDeleteBusTwice(t *testing.T) {
	bus := &models.Bus{BusNumber: "A", PlateNumber: "PA"}
	audit, _ := newTestAudit()
	svc := NewBusService(newFakeBusRepo(bus), audit, logger.NewNop())
	ctx := context.Background()

	deleted, err := svc.DeleteBus(ctx, bus.ID)
	if err != nil {
		t.Fatalf("DeleteBus: %v", err)
	}
	if !deleted.IsDeleted || deleted.DeletedAt == nil {
		t.Fatalf("bus not marked deleted: %+v", deleted)
	}

	_, err = svc.DeleteBus(ctx, bus.ID)
	assertStatus(t, err, http.StatusNotFound, msgBusNotFound)
	_, err = svc.GetBus(ctx, bus.ID)
	assertStatus(t, err, http.StatusNotFound, msgBusNotFound)
}

func TestOverviewHidesDriverErrors(t *testing.T) {
	audit, _ := newTestAudit()
	svc := NewBusService(newFakeBusRepo(), audit, logger.NewNop())

	_, err := svc.Overview(context.Background())
	assertStatus(t, err, http.StatusInternalServerError, "Internal server error")
}

func TestBusStatusLifecycle(t *testing.T) {
	bus := &models.Bus{BusNumber: "A", PlateNumber: "PA"}
	busRepo := newFakeBusRepo(bus)
	audit, _ := newTestAudit()
	svc := NewBusStatusService(newFakeBusStatusRepo(), busRepo, audit)
	ctx := context.Background()

	_, err := svc.CreateStatus(ctx, &validators.BusStatusCreateRequest{BusID: primitive.NewObjectID().Hex()})
	assertStatus(t, err, http.StatusNotFound, msgBusNotFound)

	status, err := svc.CreateStatus(ctx, &validators.BusStatusCreateRequest{BusID: bus.ID.Hex(), OccupancyCount: 3})
	if err != nil {
		t.Fatalf("CreateStatus: %v", err)
	}
	if status.OccupancyStatus != models.OccupancyEmpty {
		t.Fatalf("occupancy_status = %q, want empty", status.OccupancyStatus)
	}

	_, err = svc.CreateStatus(ctx, &validators.BusStatusCreateRequest{BusID: bus.ID.Hex()})
	assertStatus(t, err, http.StatusConflict, msgBusStatusExists)

	full := string(models.OccupancyFull)
	updated, err := svc.UpdateStatus(ctx, status.ID, &validators.BusStatusUpdateRequest{
		OccupancyCount:  intPtr(60),
		OccupancyStatus: &full,
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.OccupancyCount != 60 || updated.OccupancyStatus != models.OccupancyFull {
		t.Fatalf("updated = %+v", updated)
	}

	byBus, err := svc.GetStatusByBus(ctx, bus.ID)
	if err != nil || byBus.ID != status.ID {
		t.Fatalf("GetStatusByBus = %v, %v", byBus, err)
	}

	if _, err := svc.DeleteStatus(ctx, status.ID); err != nil {
		t.Fatalf("DeleteStatus: %v", err)
	}
	_, err = svc.GetStatus(ctx, status.ID)
	assertStatus(t, err, http.StatusNotFound, msgBusStatusMissing)

	// a deleted status frees the bus for a new one
	if _, err := svc.CreateStatus(ctx, &validators.BusStatusCreateRequest{BusID: bus.ID.Hex()}); err != nil {
		t.Fatalf("CreateStatus after delete: %v", err)
	}
}
