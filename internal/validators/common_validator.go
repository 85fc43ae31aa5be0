package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetadmin/internal/models"
	"fleetadmin/internal/utils"
)

var validate *validator.Validate

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-]{6,18}$`)

func init() {
	validate = validator.New()

	// report json names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("bus_state", enumValidator(func(s string) bool { return models.BusState(s).IsValid() }))
	validate.RegisterValidation("occupancy_status", enumValidator(func(s string) bool { return models.OccupancyStatus(s).IsValid() }))
	validate.RegisterValidation("driver_status", enumValidator(func(s string) bool { return models.DriverStatus(s).IsValid() }))
	validate.RegisterValidation("route_status", enumValidator(func(s string) bool { return models.RouteStatus(s).IsValid() }))
	validate.RegisterValidation("terminal_status", enumValidator(func(s string) bool { return models.TerminalStatus(s).IsValid() }))
	validate.RegisterValidation("terminal_event", enumValidator(func(s string) bool { return models.TerminalEventType(s).IsValid() }))
	validate.RegisterValidation("user_role", enumValidator(func(s string) bool { return models.NormalizeRole(s).IsValid() }))
	validate.RegisterValidation("user_status", enumValidator(func(s string) bool { return models.UserStatus(s).IsValid() }))
	validate.RegisterValidation("notification_type", enumValidator(func(s string) bool { return models.NotificationType(s).IsValid() }))
	validate.RegisterValidation("priority", enumValidator(func(s string) bool { return models.NotificationPriority(s).IsValid() }))
	validate.RegisterValidation("scope", enumValidator(func(s string) bool { return models.NotificationScope(s).IsValid() }))
}

var enumValues = map[string]string{
	"bus_state":         "active, maintenance, out of service",
	"occupancy_status":  "empty, few seats, standing room, full",
	"driver_status":     "active, inactive",
	"route_status":      "active, inactive",
	"terminal_status":   "active, inactive",
	"terminal_event":    "arrival, departure, delay",
	"user_role":         "user, operator, terminal admin, super admin",
	"user_status":       "active, inactive, suspended",
	"notification_type": "delay, full, skipped_stop, info",
	"priority":          "high, medium, low",
	"scope":             "bus, route, terminal, system",
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{Field: "", Tag: "invalid", Message: err.Error()}}
	}
	for _, fe := range fieldErrors {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}

	return validationErrors
}

// Validate runs ValidateStruct and converts failures into a 400 AppError.
func Validate(s interface{}) error {
	if errs := ValidateStruct(s); len(errs) > 0 {
		return utils.NewBadRequestError(errs.Error())
	}
	return nil
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
	case "numeric":
		return fmt.Sprintf("%s must be numeric", err.Field())
	case "latitude", "longitude":
		return fmt.Sprintf("%s is out of range", err.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return fmt.Sprintf("%s must be a valid ID", err.Field())
	case "phone_number":
		return "Invalid phone number format"
	case "strong_password":
		return "Password must be at least 8 characters and contain a capital letter and a special character"
	default:
		if allowed, ok := enumValues[err.Tag()]; ok {
			return fmt.Sprintf("%s must be one of: %s", err.Field(), allowed)
		}
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // required handles empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return utils.IsStrongPassword(fl.Field().String())
}

func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}

// MustObjectID converts a hex string that already passed the object_id tag.
func MustObjectID(hex string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(hex)
	return id
}

// OptionalObjectID converts a possibly empty, already validated hex string.
func OptionalObjectID(hex string) *primitive.ObjectID {
	if hex == "" {
		return nil
	}
	id := MustObjectID(hex)
	return &id
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
