package handlers

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "hradmin.v1.AdminService"

// AdminServiceServer is the gRPC surface. Requests and responses are
// google.protobuf.Struct so the default proto codec carries them without
// generated message types.
type AdminServiceServer interface {
	UpdateCompanyProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateCompanyWorkingDays(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCompanySettings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddCompanyHoliday(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateCompanyHoliday(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCompanyHoliday(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCompanyHolidays(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEmployeeAllowance(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(AdminServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

var methods = []struct {
	name string
	call unaryMethod
}{
	{"UpdateCompanyProfile", AdminServiceServer.UpdateCompanyProfile},
	{"UpdateCompanyWorkingDays", AdminServiceServer.UpdateCompanyWorkingDays},
	{"GetCompanySettings", AdminServiceServer.GetCompanySettings},
	{"AddCompanyHoliday", AdminServiceServer.AddCompanyHoliday},
	{"UpdateCompanyHoliday", AdminServiceServer.UpdateCompanyHoliday},
	{"DeleteCompanyHoliday", AdminServiceServer.DeleteCompanyHoliday},
	{"ListCompanyHolidays", AdminServiceServer.ListCompanyHolidays},
	{"UpdateEmployeeAllowance", AdminServiceServer.UpdateEmployeeAllowance},
}

// AdminServiceDesc is registered with grpc.Server.RegisterService.
var AdminServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods:     methodDescs(),
	Streams:     []grpc.StreamDesc{},
}

// FullMethods lists every "/service/method" name, for the auth interceptor.
func FullMethods() []string {
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, fullMethod(m.name))
	}
	return names
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func methodDescs() []grpc.MethodDesc {
	descs := make([]grpc.MethodDesc, 0, len(methods))
	for _, m := range methods {
		descs = append(descs, grpc.MethodDesc{
			MethodName: m.name,
			Handler:    unaryHandler(m.name, m.call),
		})
	}
	return descs
}

func unaryHandler(name string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AdminServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(name),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AdminServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
