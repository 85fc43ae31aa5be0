package validators

import (
	"strings"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"
)

type NotificationCreateRequest struct {
	SenderID   string `json:"sender_id" validate:"omitempty,object_id"`
	BusID      string `json:"bus_id" validate:"omitempty,object_id"`
	RouteID    string `json:"route_id" validate:"omitempty,object_id"`
	TerminalID string `json:"terminal_id" validate:"omitempty,object_id"`
	Title      string `json:"title" validate:"required,min=1,max=120"`
	Message    string `json:"message" validate:"required,min=1,max=1000"`
	Type       string `json:"notification_type" validate:"required,notification_type"`
	Priority   string `json:"priority" validate:"omitempty,priority"`
	Scope      string `json:"scope" validate:"required,scope"`
}

// ValidateNotificationCreate also checks that the reference matching the
// scope is present.
func ValidateNotificationCreate(req *NotificationCreateRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Message = strings.TrimSpace(req.Message)
	if err := Validate(req); err != nil {
		return err
	}

	switch models.NotificationScope(req.Scope) {
	case models.ScopeBus:
		if req.BusID == "" {
			return utils.NewBadRequestError("bus_id is required for bus scope")
		}
	case models.ScopeRoute:
		if req.RouteID == "" {
			return utils.NewBadRequestError("route_id is required for route scope")
		}
	case models.ScopeTerminal:
		if req.TerminalID == "" {
			return utils.NewBadRequestError("terminal_id is required for terminal scope")
		}
	}
	return nil
}

type SubscriptionCreateRequest struct {
	UserID  string `json:"user_id" validate:"required,object_id"`
	RouteID string `json:"route_id" validate:"omitempty,object_id"`
	BusID   string `json:"bus_id" validate:"omitempty,object_id"`
}

func ValidateSubscriptionCreate(req *SubscriptionCreateRequest) error {
	if err := Validate(req); err != nil {
		return err
	}
	if (req.RouteID == "") == (req.BusID == "") {
		return utils.NewBadRequestError("Exactly one of route_id or bus_id is required")
	}
	return nil
}
