package handlers

import (
	"io"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxBodyBytes caps a request body; larger bodies are rejected as malformed.
const maxBodyBytes = 1 << 20

type route struct {
	method  string
	pattern string
	call    unaryMethod
	// field receives the {id} path parameter, if any.
	field string
}

var routes = []route{
	{http.MethodGet, "/v1/company", AdminServiceServer.GetCompanySettings, ""},
	{http.MethodPatch, "/v1/company/profile", AdminServiceServer.UpdateCompanyProfile, ""},
	{http.MethodPut, "/v1/company/working-days", AdminServiceServer.UpdateCompanyWorkingDays, ""},
	{http.MethodGet, "/v1/company/holidays", AdminServiceServer.ListCompanyHolidays, ""},
	{http.MethodPost, "/v1/company/holidays", AdminServiceServer.AddCompanyHoliday, ""},
	{http.MethodPatch, "/v1/company/holidays/{id}", AdminServiceServer.UpdateCompanyHoliday, "id"},
	{http.MethodDelete, "/v1/company/holidays/{id}", AdminServiceServer.DeleteCompanyHoliday, "id"},
	{http.MethodPatch, "/v1/employees/{id}/allowance", AdminServiceServer.UpdateEmployeeAllowance, "employeeId"},
}

// RegisterRoutes mounts the REST surface on mux. Each route decodes its JSON
// body into the same Struct the gRPC method receives.
func (h *AdminHandler) RegisterRoutes(mux *runtime.ServeMux) error {
	marshaler := &runtime.JSONPb{}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, h.serveRoute(mux, marshaler, rt)); err != nil {
			return err
		}
	}
	return nil
}

func (h *AdminHandler) serveRoute(mux *runtime.ServeMux, marshaler runtime.Marshaler, rt route) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		ctx := r.Context()

		req, err := decodeBody(w, r, marshaler)
		if err != nil {
			runtime.HTTPError(ctx, mux, marshaler, w, r, status.Error(codes.InvalidArgument, "malformed request body"))
			return
		}
		if rt.field != "" {
			req.Fields[rt.field] = structpb.NewStringValue(pathParams["id"])
		}

		resp, err := rt.call(h, ctx, req)
		if err != nil {
			runtime.HTTPError(ctx, mux, marshaler, w, r, err)
			return
		}

		buf, err := marshaler.Marshal(resp)
		if err != nil {
			h.logger.Error("Failed to marshal response", zap.Error(err))
			runtime.HTTPError(ctx, mux, marshaler, w, r, status.Error(codes.Internal, "failed to encode response"))
			return
		}
		w.Header().Set("Content-Type", marshaler.ContentType(resp))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf); err != nil {
			h.logger.Warn("Failed to write response", zap.Error(err))
		}
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, marshaler runtime.Marshaler) (*structpb.Struct, error) {
	req := &structpb.Struct{}
	if r.Body != nil {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		if len(body) > 0 {
			if err := marshaler.Unmarshal(body, req); err != nil {
				return nil, err
			}
		}
	}
	if req.Fields == nil {
		req.Fields = map[string]*structpb.Value{}
	}
	return req, nil
}
