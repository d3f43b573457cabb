package handlers

import (
	"context"

	"github.com/gartstein/hradmin/internal/admin/auth"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// AdminHandler implements AdminServiceServer.
type AdminHandler struct {
	service AdminController
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler with the given controller and logger.
func NewAdminHandler(service AdminController, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.Named("grpc_handler"),
	}
}

func (h *AdminHandler) UpdateCompanyProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.FromContext(ctx)
	update, err := protoToProfileUpdate(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	result, err := h.service.UpdateCompanyProfile(ctx, caller, update)
	if err != nil {
		return nil, h.mapServiceError(caller, err)
	}
	return h.respond(resultToProto(result))
}

func (h *AdminHandler) UpdateCompanyWorkingDays(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.FromContext(ctx)
	update, err := protoToWorkingDays(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	result, err := h.service.UpdateCompanyWorkingDays(ctx, caller, update)
	if err != nil {
		return nil, h.mapServiceError(caller, err)
	}
	return h.respond(resultToProto(result))
}

func (h *AdminHandler) GetCompanySettings(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.FromContext(ctx)
	settings, err := h.service.GetCompanySettings(ctx, caller)
	if err != nil {
		return nil, h.mapServiceError(caller, err)
	}
	return h.respond(settingsToProto(settings))
}

func (h *AdminHandler) AddCompanyHoliday(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.FromContext(ctx)
	input, err := protoToHolidayInput(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	holiday, err := h.service.AddCompanyHoliday(ctx, caller, input)
	if err != nil {
		return nil, h.mapServiceError(caller, err)
	}
	return h.respond(holidayToProto(holiday))
}

func (h *AdminHandler) UpdateCompanyHoliday(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.FromContext(ctx)
	update, err := protoToHolidayUpdate(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	holiday, err := h.service.UpdateCompanyHoliday(ctx, caller, update)
	if err != nil {
		return nil, h.mapServiceError(caller, err)
	}
	return h.respond(holidayToProto(holiday))
}

func (h *AdminHandler) DeleteCompanyHoliday(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.FromContext(ctx)
	id, err := uuidField(req, "id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	result, err := h.service.DeleteCompanyHoliday(ctx, caller, id)
	if err != nil {
		return nil, h.mapServiceError(caller, err)
	}
	return h.respond(resultToProto(result))
}

func (h *AdminHandler) ListCompanyHolidays(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.FromContext(ctx)
	holidays, err := h.service.ListCompanyHolidays(ctx, caller)
	if err != nil {
		return nil, h.mapServiceError(caller, err)
	}
	return h.respond(holidaysToProto(holidays))
}

func (h *AdminHandler) UpdateEmployeeAllowance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.FromContext(ctx)
	update, err := protoToAllowanceUpdate(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	result, err := h.service.UpdateEmployeeAllowance(ctx, caller, update)
	if err != nil {
		return nil, h.mapServiceError(caller, err)
	}
	return h.respond(resultToProto(result))
}

func (h *AdminHandler) respond(resp *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return resp, nil
}
