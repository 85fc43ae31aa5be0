package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/pkg/cache"
	"fleetadmin/pkg/email"
	"fleetadmin/pkg/logger"
	"fleetadmin/pkg/maps"
	"fleetadmin/pkg/sms"
	"fleetadmin/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories. Lookups mirror the Mongo implementations: soft
// deleted documents are invisible and a miss returns utils.ErrNotFound.

var errBoom = errors.New("boom")

func pageOf[T any](items []*T, params *utils.PaginationParams) []*T {
	if params == nil {
		return items
	}
	start := params.GetSkip()
	if start > len(items) {
		return []*T{}
	}
	end := start + params.GetLimit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeBusRepo struct {
	buses   map[primitive.ObjectID]*models.Bus
	updates []map[string]interface{}
}

func newFakeBusRepo(buses ...*models.Bus) *fakeBusRepo {
	r := &fakeBusRepo{buses: map[primitive.ObjectID]*models.Bus{}}
	for _, b := range buses {
		if b.ID.IsZero() {
			b.ID = primitive.NewObjectID()
		}
		r.buses[b.ID] = b
	}
	return r
}

func (r *fakeBusRepo) Create(_ context.Context, bus *models.Bus) error {
	bus.ID = primitive.NewObjectID()
	bus.CreatedAt = time.Now()
	r.buses[bus.ID] = bus
	return nil
}

func (r *fakeBusRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Bus, error) {
	if b, ok := r.buses[id]; ok && !b.IsDeleted {
		return b, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeBusRepo) find(match func(*models.Bus) bool) (*models.Bus, error) {
	for _, b := range r.buses {
		if !b.IsDeleted && match(b) {
			return b, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeBusRepo) GetByBusNumber(_ context.Context, n string) (*models.Bus, error) {
	return r.find(func(b *models.Bus) bool { return b.BusNumber == n })
}

func (r *fakeBusRepo) GetByPlateNumber(_ context.Context, p string) (*models.Bus, error) {
	return r.find(func(b *models.Bus) bool { return b.PlateNumber == p })
}

func (r *fakeBusRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Bus, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.updates = append(r.updates, updates)
	for k, v := range updates {
		switch k {
		case "bus_number":
			b.BusNumber = v.(string)
		case "plate_number":
			b.PlateNumber = v.(string)
		case "capacity":
			b.Capacity = v.(int)
		case "status":
			b.Status = v.(models.BusState)
		}
	}
	return b, nil
}

func (r *fakeBusRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Bus, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	b.IsDeleted, b.DeletedAt = true, &now
	return b, nil
}

func (r *fakeBusRepo) List(_ context.Context, _ interfaces.BusFilter, params *utils.PaginationParams) ([]*models.Bus, int64, error) {
	var out []*models.Bus
	for _, b := range r.buses {
		if !b.IsDeleted {
			out = append(out, b)
		}
	}
	return pageOf(out, params), int64(len(out)), nil
}

func (r *fakeBusRepo) Overview(context.Context) ([]*models.BusOverview, error) {
	return nil, errBoom
}

type fakeBusStatusRepo struct {
	statuses map[primitive.ObjectID]*models.BusStatus
}

func newFakeBusStatusRepo() *fakeBusStatusRepo {
	return &fakeBusStatusRepo{statuses: map[primitive.ObjectID]*models.BusStatus{}}
}

func (r *fakeBusStatusRepo) Create(_ context.Context, s *models.BusStatus) error {
	s.ID = primitive.NewObjectID()
	r.statuses[s.ID] = s
	return nil
}

func (r *fakeBusStatusRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.BusStatus, error) {
	if s, ok := r.statuses[id]; ok && !s.IsDeleted {
		return s, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeBusStatusRepo) GetByBusID(_ context.Context, busID primitive.ObjectID) (*models.BusStatus, error) {
	for _, s := range r.statuses {
		if !s.IsDeleted && s.BusID == busID {
			return s, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeBusStatusRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.BusStatus, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		switch k {
		case "occupancy_count":
			s.OccupancyCount = v.(int)
		case "occupancy_status":
			s.OccupancyStatus = v.(models.OccupancyStatus)
		case "delay_minutes":
			s.DelayMinutes = v.(int)
		case "is_skipping_stops":
			s.IsSkippingStops = v.(bool)
		default:
			return nil, errors.New("unexpected field " + k)
		}
	}
	return s, nil
}

func (r *fakeBusStatusRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.BusStatus, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.IsDeleted = true
	return s, nil
}

func (r *fakeBusStatusRepo) List(context.Context, *utils.PaginationParams) ([]*models.BusStatus, int64, error) {
	var out []*models.BusStatus
	for _, s := range r.statuses {
		if !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

type fakeDriverRepo struct {
	drivers map[primitive.ObjectID]*models.Driver
}

func newFakeDriverRepo(drivers ...*models.Driver) *fakeDriverRepo {
	r := &fakeDriverRepo{drivers: map[primitive.ObjectID]*models.Driver{}}
	for _, d := range drivers {
		if d.ID.IsZero() {
			d.ID = primitive.NewObjectID()
		}
		r.drivers[d.ID] = d
	}
	return r
}

func (r *fakeDriverRepo) Create(_ context.Context, d *models.Driver) error {
	d.ID = primitive.NewObjectID()
	r.drivers[d.ID] = d
	return nil
}

func (r *fakeDriverRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Driver, error) {
	if d, ok := r.drivers[id]; ok && !d.IsDeleted {
		return d, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeDriverRepo) GetByLicenseNumber(_ context.Context, license string) (*models.Driver, error) {
	for _, d := range r.drivers {
		if !d.IsDeleted && d.LicenseNumber == license {
			return d, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeDriverRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Driver, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		switch k {
		case "f_name":
			d.FirstName = v.(string)
		case "l_name":
			d.LastName = v.(string)
		case "license_number":
			d.LicenseNumber = v.(string)
		case "contact_number":
			d.ContactNumber = v.(string)
		case "profile_image":
			d.ProfileImage = v.(string)
		case "status":
			d.Status = v.(models.DriverStatus)
		}
	}
	return d, nil
}

func (r *fakeDriverRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.IsDeleted = true
	return d, nil
}

func (r *fakeDriverRepo) List(context.Context, interfaces.DriverFilter, *utils.PaginationParams) ([]*models.Driver, int64, error) {
	return nil, 0, nil
}

type fakeRouteRepo struct {
	routes map[primitive.ObjectID]*models.Route
}

func newFakeRouteRepo(routes ...*models.Route) *fakeRouteRepo {
	r := &fakeRouteRepo{routes: map[primitive.ObjectID]*models.Route{}}
	for _, route := range routes {
		if route.ID.IsZero() {
			route.ID = primitive.NewObjectID()
		}
		r.routes[route.ID] = route
	}
	return r
}

func (r *fakeRouteRepo) Create(_ context.Context, route *models.Route) error {
	route.ID = primitive.NewObjectID()
	r.routes[route.ID] = route
	return nil
}

func (r *fakeRouteRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Route, error) {
	if route, ok := r.routes[id]; ok && !route.IsDeleted {
		return route, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeRouteRepo) GetByRouteCode(_ context.Context, code string) (*models.Route, error) {
	for _, route := range r.routes {
		if !route.IsDeleted && route.RouteCode == code {
			return route, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeRouteRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Route, error) {
	route, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		switch k {
		case "route_code":
			route.RouteCode = v.(string)
		case "route_name":
			route.RouteName = v.(string)
		case "origin":
			route.Origin = v.(string)
		case "destination":
			route.Destination = v.(string)
		case "distance_km":
			route.DistanceKM = v.(float64)
		case "status":
			route.Status = v.(models.RouteStatus)
		}
	}
	return route, nil
}

func (r *fakeRouteRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Route, error) {
	route, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	route.IsDeleted = true
	return route, nil
}

func (r *fakeRouteRepo) List(context.Context, interfaces.RouteFilter, *utils.PaginationParams) ([]*models.Route, int64, error) {
	return nil, 0, nil
}

type fakeRouteStopRepo struct {
	stops map[primitive.ObjectID]*models.RouteStop
}

func newFakeRouteStopRepo() *fakeRouteStopRepo {
	return &fakeRouteStopRepo{stops: map[primitive.ObjectID]*models.RouteStop{}}
}

func (r *fakeRouteStopRepo) Create(_ context.Context, stop *models.RouteStop) error {
	stop.ID = primitive.NewObjectID()
	r.stops[stop.ID] = stop
	return nil
}

func (r *fakeRouteStopRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.RouteStop, error) {
	if stop, ok := r.stops[id]; ok {
		return stop, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeRouteStopRepo) FindDuplicate(_ context.Context, routeID primitive.ObjectID, name string, order int, exclude *primitive.ObjectID) (*models.RouteStop, error) {
	for _, stop := range r.stops {
		if exclude != nil && stop.ID == *exclude {
			continue
		}
		if stop.RouteID == routeID && stop.StopName == name && stop.StopOrder == order {
			return stop, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeRouteStopRepo) ListByRoute(_ context.Context, routeID primitive.ObjectID) ([]*models.RouteStop, error) {
	var out []*models.RouteStop
	for _, stop := range r.stops {
		if stop.RouteID == routeID {
			out = append(out, stop)
		}
	}
	return out, nil
}

func (r *fakeRouteStopRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.RouteStop, error) {
	stop, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		switch k {
		case "route_id":
			stop.RouteID = v.(primitive.ObjectID)
		case "stop_name":
			stop.StopName = v.(string)
		case "stop_order":
			stop.StopOrder = v.(int)
		}
	}
	return stop, nil
}

func (r *fakeRouteStopRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.RouteStop, error) {
	stop, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(r.stops, id)
	return stop, nil
}

type fakeTerminalRepo struct {
	terminals map[primitive.ObjectID]*models.Terminal
	updates   []map[string]interface{}
}

func newFakeTerminalRepo(terminals ...*models.Terminal) *fakeTerminalRepo {
	r := &fakeTerminalRepo{terminals: map[primitive.ObjectID]*models.Terminal{}}
	for _, t := range terminals {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		r.terminals[t.ID] = t
	}
	return r
}

func (r *fakeTerminalRepo) Create(_ context.Context, t *models.Terminal) error {
	t.ID = primitive.NewObjectID()
	r.terminals[t.ID] = t
	return nil
}

func (r *fakeTerminalRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Terminal, error) {
	if t, ok := r.terminals[id]; ok && !t.IsDeleted {
		return t, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeTerminalRepo) GetByName(_ context.Context, name string) (*models.Terminal, error) {
	for _, t := range r.terminals {
		if !t.IsDeleted && t.Name == name {
			return t, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeTerminalRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Terminal, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.updates = append(r.updates, updates)
	if v, ok := updates["address"]; ok {
		t.Address = v.(string)
	}
	if v, ok := updates["name"]; ok {
		t.Name = v.(string)
	}
	return t, nil
}

func (r *fakeTerminalRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Terminal, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.IsDeleted = true
	return t, nil
}

func (r *fakeTerminalRepo) List(context.Context, interfaces.TerminalFilter, *utils.PaginationParams) ([]*models.Terminal, int64, error) {
	return nil, 0, nil
}

type fakeTerminalLogRepo struct {
	logs []*models.TerminalLog
}

func (r *fakeTerminalLogRepo) Create(_ context.Context, l *models.TerminalLog) error {
	l.ID = primitive.NewObjectID()
	r.logs = append(r.logs, l)
	return nil
}

func (r *fakeTerminalLogRepo) List(context.Context, interfaces.TerminalLogFilter, *utils.PaginationParams) ([]*models.TerminalLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}

type fakeAssignmentRepo struct {
	assignments map[primitive.ObjectID]*models.BusAssignment
}

func newFakeAssignmentRepo(assignments ...*models.BusAssignment) *fakeAssignmentRepo {
	r := &fakeAssignmentRepo{assignments: map[primitive.ObjectID]*models.BusAssignment{}}
	for _, a := range assignments {
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
		r.assignments[a.ID] = a
	}
	return r
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *models.BusAssignment) error {
	a.ID = primitive.NewObjectID()
	r.assignments[a.ID] = a
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.BusAssignment, error) {
	if a, ok := r.assignments[id]; ok && !a.IsDeleted {
		return a, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeAssignmentRepo) active(match func(*models.BusAssignment) bool, exclude *primitive.ObjectID) (*models.BusAssignment, error) {
	for _, a := range r.assignments {
		if exclude != nil && a.ID == *exclude {
			continue
		}
		if !a.IsDeleted && a.Status == models.AssignmentStatusActive && match(a) {
			return a, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeAssignmentRepo) GetActiveByBus(_ context.Context, busID primitive.ObjectID, exclude *primitive.ObjectID) (*models.BusAssignment, error) {
	return r.active(func(a *models.BusAssignment) bool { return a.BusID == busID }, exclude)
}

func (r *fakeAssignmentRepo) GetActiveByDriver(_ context.Context, driverID primitive.ObjectID, exclude *primitive.ObjectID) (*models.BusAssignment, error) {
	return r.active(func(a *models.BusAssignment) bool { return a.DriverID == driverID }, exclude)
}

func (r *fakeAssignmentRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.BusAssignment, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		switch k {
		case "status":
			a.Status = v.(models.AssignmentStatus)
		case "ended_at":
			t := v.(time.Time)
			a.EndedAt = &t
		case "driver_id":
			a.DriverID = v.(primitive.ObjectID)
		case "operator_id":
			a.OperatorID = v.(primitive.ObjectID)
		case "route_id":
			a.RouteID = v.(primitive.ObjectID)
		case "terminal_id":
			a.TerminalID = v.(primitive.ObjectID)
		}
	}
	return a, nil
}

func (r *fakeAssignmentRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.BusAssignment, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.IsDeleted = true
	return a, nil
}

func (r *fakeAssignmentRepo) List(context.Context, interfaces.BusAssignmentFilter, *utils.PaginationParams) ([]*models.BusAssignment, int64, error) {
	return nil, 0, nil
}

type fakeUserRepo struct {
	users      map[primitive.ObjectID]*models.User
	lastLogins int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		u.ApplyRole()
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	u.ID = primitive.NewObjectID()
	u.ApplyRole()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := r.users[id]; ok && !u.IsDeleted {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if !u.IsDeleted && u.Email == email {
			return u, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		switch k {
		case "f_name":
			u.FirstName = v.(string)
		case "email":
			u.Email = v.(string)
		case "password":
			u.Password = v.(string)
		case "role":
			u.Role = v.(models.UserRole)
			u.ApplyRole()
		case "status":
			u.Status = v.(models.UserStatus)
		case "profile_image":
			u.ProfileImage = v.(string)
		}
	}
	return u, nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsDeleted = true
	return u, nil
}

func (r *fakeUserRepo) UpdateLastLogin(context.Context, primitive.ObjectID) error {
	r.lastLogins++
	return nil
}

func (r *fakeUserRepo) List(context.Context, interfaces.UserFilter, *utils.PaginationParams) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) ActiveIDs(context.Context) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, u := range r.users {
		if !u.IsDeleted && u.Status == models.UserStatusActive {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

type fakeNotificationRepo struct {
	created []*models.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Notification, error) {
	for _, n := range r.created {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeNotificationRepo) List(context.Context, interfaces.NotificationFilter, *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return r.created, int64(len(r.created)), nil
}

type fakeUserNotificationRepo struct {
	entries []*models.UserNotification
}

func (r *fakeUserNotificationRepo) CreateMany(_ context.Context, entries []*models.UserNotification) error {
	for _, e := range entries {
		e.ID = primitive.NewObjectID()
	}
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeUserNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.UserNotification, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserNotificationRepo) ListByUser(_ context.Context, userID primitive.ObjectID, unreadOnly bool, _ *utils.PaginationParams) ([]*models.UserNotification, int64, error) {
	var out []*models.UserNotification
	for _, e := range r.entries {
		if e.UserID == userID && (!unreadOnly || !e.IsRead) {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserNotificationRepo) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.UserNotification, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e.IsRead, e.ReadAt = true, &now
	return e, nil
}

type fakeSubscriptionRepo struct {
	subs []*models.UserSubscription
}

func sameRef(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, s *models.UserSubscription) error {
	s.ID = primitive.NewObjectID()
	r.subs = append(r.subs, s)
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.UserSubscription, error) {
	for _, s := range r.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeSubscriptionRepo) Find(_ context.Context, userID primitive.ObjectID, routeID, busID *primitive.ObjectID) (*models.UserSubscription, error) {
	for _, s := range r.subs {
		if s.UserID == userID && sameRef(s.RouteID, routeID) && sameRef(s.BusID, busID) {
			return s, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeSubscriptionRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*models.UserSubscription, error) {
	var out []*models.UserSubscription
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, id primitive.ObjectID) (*models.UserSubscription, error) {
	for i, s := range r.subs {
		if s.ID == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return s, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeSubscriptionRepo) SubscriberIDs(_ context.Context, routeID, busID *primitive.ObjectID) ([]primitive.ObjectID, error) {
	seen := map[primitive.ObjectID]bool{}
	var ids []primitive.ObjectID
	for _, s := range r.subs {
		match := (routeID != nil && s.RouteID != nil && *s.RouteID == *routeID) ||
			(busID != nil && s.BusID != nil && *s.BusID == *busID)
		if match && !seen[s.UserID] {
			seen[s.UserID] = true
			ids = append(ids, s.UserID)
		}
	}
	return ids, nil
}

type fakeSystemLogRepo struct {
	logs []*models.SystemLog
}

func (r *fakeSystemLogRepo) Create(_ context.Context, l *models.SystemLog) error {
	r.logs = append(r.logs, l)
	return nil
}

func (r *fakeSystemLogRepo) List(context.Context, interfaces.SystemLogFilter, *utils.PaginationParams) ([]*models.SystemLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}

// memoryCache implements CacheService with JSON-free value copies.
type memoryCache struct {
	mu      sync.Mutex
	values  map[string]interface{}
	ttls    map[string]time.Duration
	counter map[string]int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		values:  map[string]interface{}{},
		ttls:    map[string]time.Duration{},
		counter: map[string]int64{},
	}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *otpRecord:
		*d = v.(otpRecord)
	case *otpVerification:
		*d = v.(otpVerification)
	case *models.DashboardOverview:
		*d = *v.(*models.DashboardOverview)
	default:
		return errors.New("unsupported cache type")
	}
	return nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		delete(c.counter, k)
		delete(c.ttls, k)
	}
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

func (c *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter[key]++
	return c.counter[key], nil
}

func (c *memoryCache) SetExpire(_ context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) GetTTL(_ context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key], nil
}

func (c *memoryCache) DeletePattern(context.Context, string) error {
	return nil
}

type fakeStorage struct {
	uploaded map[string][]byte
	deleted  []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, req *storage.UploadRequest) (*storage.UploadResponse, error) {
	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, err
	}
	s.uploaded[req.Key] = data
	return &storage.UploadResponse{Key: req.Key, Size: int64(len(data))}, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.uploaded, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) FileExists(_ context.Context, key string) (bool, error) {
	_, ok := s.uploaded[key]
	return ok, nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "http://cdn.test/" + key
}

type fakeMailer struct {
	sent []*email.Message
}

func (m *fakeMailer) Send(_ context.Context, msg *email.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type fakeSMS struct {
	sent []*sms.SMSRequest
}

func (f *fakeSMS) SendSMS(_ context.Context, req *sms.SMSRequest) (*sms.SMSResponse, error) {
	f.sent = append(f.sent, req)
	return &sms.SMSResponse{MessageID: "SM1", Status: "queued"}, nil
}

func (f *fakeSMS) Name() string { return "fake" }

type fakeGeocoder struct {
	location *maps.Location
	distance *maps.Distance
	err      error
	calls    int
}

func (g *fakeGeocoder) Geocode(context.Context, string) (*maps.Location, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.location, nil
}

func (g *fakeGeocoder) DrivingDistance(context.Context, string, string) (*maps.Distance, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.distance, nil
}

func newTestAudit() (SystemLogService, *fakeSystemLogRepo) {
	repo := &fakeSystemLogRepo{}
	return NewSystemLogService(repo, logger.NewNop()), repo
}

// pngUpload returns a small valid PNG as an upload.
func pngUpload(t *testing.T, name string) *ImageUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return &ImageUpload{Filename: name, Reader: &buf}
}

func assertStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	if got := utils.StatusCodeOf(err); got != status {
		t.Fatalf("status = %d, want %d (err: %v)", got, status, err)
	}
	if message != "" {
		if got := utils.MessageOf(err); got != message {
			t.Fatalf("message = %q, want %q", got, message)
		}
	}
}

func actorContext(id primitive.ObjectID) context.Context {
	return context.WithValue(context.Background(), logger.UserIDKey, id)
}
