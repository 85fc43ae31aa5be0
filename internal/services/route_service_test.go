package services

import (
	"context"
	"net/http"
	"testing"

	"fleetadmin/internal/models"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/logger"
	"fleetadmin/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateRouteResolvesDistance(t *testing.T) {
	geo := &fakeGeocoder{distance: &maps.Distance{Meters: 12340, Km: 12.34}}
	audit, _ := newTestAudit()
	svc := NewRouteService(newFakeRouteRepo(), newFakeRouteStopRepo(), geo, audit, logger.NewNop())

	route, err := svc.CreateRoute(context.Background(), &validators.RouteCreateRequest{
		RouteCode: "R1", RouteName: "Downtown", Origin: "North", Destination: "South",
	})
	if err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}
	if route.DistanceKM != 12.34 {
		t.Fatalf("distance_km = %v", route.DistanceKM)
	}
	if route.Status != models.RouteStatusActive {
		t.Fatalf("status = %q", route.Status)
	}
}

func TestCreateRouteKeepsGivenDistance(t *testing.T) {
	geo := &fakeGeocoder{err: maps.ErrNoResults}
	audit, _ := newTestAudit()
	svc := NewRouteService(newFakeRouteRepo(), newFakeRouteStopRepo(), geo, audit, logger.NewNop())

	route, err := svc.CreateRoute(context.Background(), &validators.RouteCreateRequest{
		RouteCode: "R1", RouteName: "Downtown", Origin: "North", Destination: "South", DistanceKM: 8,
	})
	if err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}
	if route.DistanceKM != 8 || geo.calls != 0 {
		t.Fatalf("distance_km = %v, geocoder calls = %d", route.DistanceKM, geo.calls)
	}
}

func TestCreateRouteDuplicateCode(t *testing.T) {
	audit, _ := newTestAudit()
	svc := NewRouteService(newFakeRouteRepo(&models.Route{RouteCode: "R1"}), newFakeRouteStopRepo(), nil, audit, logger.NewNop())

	_, err := svc.CreateRoute(context.Background(), &validators.RouteCreateRequest{RouteCode: "R1", RouteName: "X", Origin: "a", Destination: "b"})
	assertStatus(t, err, http.StatusConflict, msgRouteCodeExists)
}

func TestRouteStops(t *testing.T) {
	route := &models.Route{RouteCode: "R1"}
	other := &models.Route{RouteCode: "R2"}
	stops := newFakeRouteStopRepo()
	audit, _ := newTestAudit()
	svc := NewRouteService(newFakeRouteRepo(route, other), stops, nil, audit, logger.NewNop())
	ctx := context.Background()

	_, err := svc.CreateStop(ctx, &validators.RouteStopCreateRequest{RouteID: primitive.NewObjectID().Hex(), StopName: "A", StopOrder: 1})
	assertStatus(t, err, http.StatusNotFound, msgRouteDoesNotExist)

	first, err := svc.CreateStop(ctx, &validators.RouteStopCreateRequest{RouteID: route.ID.Hex(), StopName: "A", StopOrder: 1})
	if err != nil {
		t.Fatalf("CreateStop: %v", err)
	}

	_, err = svc.CreateStop(ctx, &validators.RouteStopCreateRequest{RouteID: route.ID.Hex(), StopName: "A", StopOrder: 1})
	assertStatus(t, err, http.StatusConflict, msgRouteStopExists)

	// same name at a different order is a different stop
	second, err := svc.CreateStop(ctx, &validators.RouteStopCreateRequest{RouteID: route.ID.Hex(), StopName: "A", StopOrder: 2})
	if err != nil {
		t.Fatalf("CreateStop: %v", err)
	}

	_, err = svc.UpdateStop(ctx, second.ID, &validators.RouteStopUpdateRequest{StopOrder: intPtr(1)})
	assertStatus(t, err, http.StatusConflict, msgRouteStopExists)

	missing := primitive.NewObjectID().Hex()
	_, err = svc.UpdateStop(ctx, second.ID, &validators.RouteStopUpdateRequest{RouteID: &missing})
	assertStatus(t, err, http.StatusNotFound, msgRouteDoesNotExist)

	otherID := other.ID.Hex()
	moved, err := svc.UpdateStop(ctx, second.ID, &validators.RouteStopUpdateRequest{RouteID: &otherID, StopOrder: intPtr(1)})
	if err != nil {
		t.Fatalf("UpdateStop: %v", err)
	}
	if moved.RouteID != other.ID {
		t.Fatalf("route_id = %s", moved.RouteID.Hex())
	}

	deleted, err := svc.DeleteStop(ctx, first.ID)
	if err != nil || deleted.ID != first.ID {
		t.Fatalf("DeleteStop = %v, %v", deleted, err)
	}
	_, err = svc.GetStop(ctx, first.ID)
	assertStatus(t, err, http.StatusNotFound, msgRouteStopNotFound)
}

func TestCreateTerminalGeocodesMissingCoordinates(t *testing.T) {
	geo := &fakeGeocoder{location: &maps.Location{Latitude: 14.6, Longitude: 121.0}}
	audit, _ := newTestAudit()
	svc := NewTerminalService(newFakeTerminalRepo(), &fakeTerminalLogRepo{}, newFakeBusRepo(), geo, audit, logger.NewNop())

	terminal, err := svc.CreateTerminal(context.Background(), &validators.TerminalCreateRequest{Name: "Central", Address: "1 Main St"})
	if err != nil {
		t.Fatalf("CreateTerminal: %v", err)
	}
	if terminal.Latitude == nil || *terminal.Latitude != 14.6 || terminal.Longitude == nil || *terminal.Longitude != 121.0 {
		t.Fatalf("coordinates = %v, %v", terminal.Latitude, terminal.Longitude)
	}
	if terminal.Status != models.TerminalStatusActive {
		t.Fatalf("status = %q", terminal.Status)
	}
}

func TestCreateTerminalSurvivesGeocoderFailure(t *testing.T) {
	geo := &fakeGeocoder{err: errBoom}
	audit, _ := newTestAudit()
	svc := NewTerminalService(newFakeTerminalRepo(), &fakeTerminalLogRepo{}, newFakeBusRepo(), geo, audit, logger.NewNop())

	terminal, err := svc.CreateTerminal(context.Background(), &validators.TerminalCreateRequest{Name: "Central", Address: "1 Main St"})
	if err != nil {
		t.Fatalf("CreateTerminal: %v", err)
	}
	if terminal.Latitude != nil {
		t.Fatalf("latitude = %v, want nil", *terminal.Latitude)
	}
}

func TestUpdateTerminalAddressGeocodes(t *testing.T) {
	terminal := &models.Terminal{Name: "Central", Address: "old"}
	repo := newFakeTerminalRepo(terminal)
	geo := &fakeGeocoder{location: &maps.Location{Latitude: 1, Longitude: 2}}
	audit, _ := newTestAudit()
	svc := NewTerminalService(repo, &fakeTerminalLogRepo{}, newFakeBusRepo(), geo, audit, logger.NewNop())

	if _, err := svc.UpdateTerminal(context.Background(), terminal.ID, &validators.TerminalUpdateRequest{Address: strPtr("new")}); err != nil {
		t.Fatalf("UpdateTerminal: %v", err)
	}
	updates := repo.updates[0]
	if updates["latitude"] != 1.0 || updates["longitude"] != 2.0 || updates["address"] != "new" {
		t.Fatalf("updates = %v", updates)
	}
}

func TestTerminalNameConflict(t *testing.T) {
	audit, _ := newTestAudit()
	svc := NewTerminalService(newFakeTerminalRepo(&models.Terminal{Name: "Central"}), &fakeTerminalLogRepo{}, newFakeBusRepo(), nil, audit, logger.NewNop())

	_, err := svc.CreateTerminal(context.Background(), &validators.TerminalCreateRequest{Name: "Central", Address: "x"})
	assertStatus(t, err, http.StatusConflict, msgTerminalNameExists)
}

func TestCreateTerminalLogRequiresReferences(t *testing.T) {
	terminal := &models.Terminal{Name: "Central"}
	bus := &models.Bus{BusNumber: "B1"}
	logs := &fakeTerminalLogRepo{}
	audit, _ := newTestAudit()
	svc := NewTerminalService(newFakeTerminalRepo(terminal), logs, newFakeBusRepo(bus), nil, audit, logger.NewNop())
	ctx := context.Background()

	_, err := svc.CreateLog(ctx, &validators.TerminalLogCreateRequest{
		TerminalID: primitive.NewObjectID().Hex(), BusID: bus.ID.Hex(), EventType: "arrival",
	})
	assertStatus(t, err, http.StatusNotFound, msgTerminalNotFound)

	_, err = svc.CreateLog(ctx, &validators.TerminalLogCreateRequest{
		TerminalID: terminal.ID.Hex(), BusID: primitive.NewObjectID().Hex(), EventType: "arrival",
	})
	assertStatus(t, err, http.StatusNotFound, msgBusNotFound)

	entry, err := svc.CreateLog(ctx, &validators.TerminalLogCreateRequest{
		TerminalID: terminal.ID.Hex(), BusID: bus.ID.Hex(), EventType: "departure", Remarks: "on time",
	})
	if err != nil {
		t.Fatalf("CreateLog: %v", err)
	}
	if entry.EventType != models.TerminalEventDeparture || len(logs.logs) != 1 {
		t.Fatalf("entry = %+v, stored = %d", entry, len(logs.logs))
	}
}
