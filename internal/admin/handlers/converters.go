package handlers

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gartstein/hradmin/internal/admin/auth"
	e "github.com/gartstein/hradmin/internal/admin/errors"
	"github.com/gartstein/hradmin/internal/admin/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const dateLayout = time.DateOnly

// protoToProfileUpdate reads {name, website?, logo?}.
func protoToProfileUpdate(req *structpb.Struct) (*models.CompanyProfileUpdate, error) {
	name, err := stringField(req, "name")
	if err != nil {
		return nil, err
	}
	website, err := optionalStringField(req, "website")
	if err != nil {
		return nil, err
	}
	logo, err := optionalStringField(req, "logo")
	if err != nil {
		return nil, err
	}
	return &models.CompanyProfileUpdate{Name: name, Website: website, Logo: logo}, nil
}

// protoToWorkingDays reads {workingDays: [...]}.
func protoToWorkingDays(req *structpb.Struct) (*models.WorkingDaysUpdate, error) {
	value, ok := req.GetFields()["workingDays"]
	if !ok {
		return nil, errors.New("workingDays is required")
	}
	list := value.GetListValue()
	if list == nil {
		return nil, errors.New("workingDays must be a list")
	}

	days := make([]string, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		day, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, errors.New("workingDays must contain strings")
		}
		days = append(days, day.StringValue)
	}
	return &models.WorkingDaysUpdate{Days: days}, nil
}

// protoToHolidayInput reads {name, date, isRecurring}.
func protoToHolidayInput(req *structpb.Struct) (*models.HolidayInput, error) {
	name, err := stringField(req, "name")
	if err != nil {
		return nil, err
	}
	date, err := dateField(req, "date")
	if err != nil {
		return nil, err
	}
	recurring, err := boolField(req, "isRecurring")
	if err != nil {
		return nil, err
	}
	return &models.HolidayInput{Name: name, Date: date, IsRecurring: recurring}, nil
}

// protoToHolidayUpdate reads {id, name, date, isRecurring}.
func protoToHolidayUpdate(req *structpb.Struct) (*models.HolidayUpdate, error) {
	id, err := uuidField(req, "id")
	if err != nil {
		return nil, err
	}
	input, err := protoToHolidayInput(req)
	if err != nil {
		return nil, err
	}
	return &models.HolidayUpdate{
		ID:          id,
		Name:        input.Name,
		Date:        input.Date,
		IsRecurring: input.IsRecurring,
	}, nil
}

// protoToAllowanceUpdate reads {employeeId, availableDays}.
func protoToAllowanceUpdate(req *structpb.Struct) (*models.AllowanceUpdate, error) {
	id, err := uuidField(req, "employeeId")
	if err != nil {
		return nil, err
	}
	days, err := intField(req, "availableDays")
	if err != nil {
		return nil, err
	}
	return &models.AllowanceUpdate{EmployeeID: id, AvailableDays: days}, nil
}

func resultToProto(result *models.Result) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{"success": result.Success})
}

func holidayToMap(holiday *models.CompanyHoliday) map[string]interface{} {
	return map[string]interface{}{
		"id":          holiday.ID.String(),
		"name":        holiday.Name,
		"date":        holiday.Date.UTC().Format(dateLayout),
		"isRecurring": holiday.IsRecurring,
		"companyId":   holiday.CompanyID.String(),
	}
}

func holidayToProto(holiday *models.CompanyHoliday) (*structpb.Struct, error) {
	return structpb.NewStruct(holidayToMap(holiday))
}

func holidaysToProto(holidays []models.CompanyHoliday) (*structpb.Struct, error) {
	list := make([]interface{}, 0, len(holidays))
	for i := range holidays {
		list = append(list, holidayToMap(&holidays[i]))
	}
	return structpb.NewStruct(map[string]interface{}{"holidays": list})
}

func settingsToProto(settings *models.CompanySettings) (*structpb.Struct, error) {
	days := make([]interface{}, 0, len(settings.WorkingDays))
	for _, day := range settings.WorkingDays {
		days = append(days, day)
	}
	return structpb.NewStruct(map[string]interface{}{
		"id":          settings.ID.String(),
		"name":        settings.Name,
		"website":     optional(settings.Website),
		"logo":        optional(settings.Logo),
		"workingDays": days,
	})
}

func optional(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func stringField(req *structpb.Struct, key string) (string, error) {
	value, ok := req.GetFields()[key]
	if !ok {
		return "", nil
	}
	s, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s.StringValue, nil
}

// optionalStringField returns nil when key is absent or null.
func optionalStringField(req *structpb.Struct, key string) (*string, error) {
	value, ok := req.GetFields()[key]
	if !ok {
		return nil, nil
	}
	if _, isNull := value.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, nil
	}
	s, err := stringField(req, key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func boolField(req *structpb.Struct, key string) (bool, error) {
	value, ok := req.GetFields()[key]
	if !ok {
		return false, nil
	}
	b, ok := value.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return b.BoolValue, nil
}

func intField(req *structpb.Struct, key string) (int, error) {
	value, ok := req.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int(n.NumberValue), nil
}

func uuidField(req *structpb.Struct, key string) (uuid.UUID, error) {
	raw, err := stringField(req, key)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

// dateField accepts a calendar date or an RFC 3339 timestamp, keeping the day
// as written in the timestamp's offset. Absent yields the zero time, which
// validation rejects.
func dateField(req *structpb.Struct, key string) (time.Time, error) {
	raw, err := stringField(req, key)
	if err != nil || raw == "" {
		return time.Time{}, err
	}
	if date, err := time.Parse(dateLayout, raw); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD or RFC 3339", key)
	}
	return models.CalendarDate(date), nil
}

// mapServiceError keeps the generic operation message. Only a missing identity
// and rejected input get their own codes; every other cause, whether the target
// is missing, foreign or the caller lacks the role, maps to Internal.
func (h *AdminHandler) mapServiceError(caller *auth.Identity, err error) error {
	switch {
	case caller == nil:
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, e.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		h.logger.Debug("Operation failed", zap.Error(err))
		return status.Error(codes.Internal, err.Error())
	}
}
