package rpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "recipex.v1.RecipexService"

// FullMethod returns the route of method, e.g. "/recipex.v1.RecipexService/Hello".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// RecipexServiceServer is implemented by the server. Every method answers
// with an envelope on success and a status error otherwise.
type RecipexServiceServer interface {
	Hello(context.Context, *Void) (*Envelope, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*Envelope, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*Envelope, error)
	GetUser(context.Context, *UserIDRequest) (*UserInfo, error)
	DeleteUser(context.Context, *UserIDRequest) (*Envelope, error)
	UpdateRelatives(context.Context, *RelationsRequest) (*Envelope, error)
	UpdateCaregivers(context.Context, *RelationsRequest) (*Envelope, error)
	UpdatePatients(context.Context, *RelationsRequest) (*Envelope, error)
	UpdateFirstAidInfo(context.Context, *FirstAidRequest) (*Envelope, error)
	AddMeasurement(context.Context, *AddMeasurementRequest) (*Envelope, error)
	UpdateMeasurement(context.Context, *UpdateMeasurementRequest) (*Envelope, error)
	GetMeasurement(context.Context, *MeasurementIDRequest) (*MeasurementInfo, error)
	DeleteMeasurement(context.Context, *MeasurementIDRequest) (*Envelope, error)
	GetMeasurements(context.Context, *UserIDRequest) (*UserMeasurements, error)
	ExportMeasurements(context.Context, *UserIDRequest) (*ExportInfo, error)
	SendMessage(context.Context, *SendMessageRequest) (*Envelope, error)
	GetMessage(context.Context, *MessageIDRequest) (*MessageInfo, error)
	ReadMessage(context.Context, *MessageIDRequest) (*Envelope, error)
	DeleteMessage(context.Context, *MessageIDRequest) (*Envelope, error)
	GetMessages(context.Context, *UserIDRequest) (*UserMessages, error)
	GetUnreadMessages(context.Context, *UserIDRequest) (*UserMessages, error)
}

// UnimplementedRecipexServiceServer answers codes.Unimplemented to every
// method. Embed it to stay forward compatible.
type UnimplementedRecipexServiceServer struct{}

func (UnimplementedRecipexServiceServer) Hello(context.Context, *Void) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method Hello not implemented")
}

func (UnimplementedRecipexServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}

func (UnimplementedRecipexServiceServer) UpdateUser(context.Context, *UpdateUserRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateUser not implemented")
}

func (UnimplementedRecipexServiceServer) GetUser(context.Context, *UserIDRequest) (*UserInfo, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}

func (UnimplementedRecipexServiceServer) DeleteUser(context.Context, *UserIDRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteUser not implemented")
}

func (UnimplementedRecipexServiceServer) UpdateRelatives(context.Context, *RelationsRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateRelatives not implemented")
}

func (UnimplementedRecipexServiceServer) UpdateCaregivers(context.Context, *RelationsRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateCaregivers not implemented")
}

func (UnimplementedRecipexServiceServer) UpdatePatients(context.Context, *RelationsRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePatients not implemented")
}

func (UnimplementedRecipexServiceServer) UpdateFirstAidInfo(context.Context, *FirstAidRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateFirstAidInfo not implemented")
}

func (UnimplementedRecipexServiceServer) AddMeasurement(context.Context, *AddMeasurementRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method AddMeasurement not implemented")
}

func (UnimplementedRecipexServiceServer) UpdateMeasurement(context.Context, *UpdateMeasurementRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateMeasurement not implemented")
}

func (UnimplementedRecipexServiceServer) GetMeasurement(context.Context, *MeasurementIDRequest) (*MeasurementInfo, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMeasurement not implemented")
}

func (UnimplementedRecipexServiceServer) DeleteMeasurement(context.Context, *MeasurementIDRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteMeasurement not implemented")
}

func (UnimplementedRecipexServiceServer) GetMeasurements(context.Context, *UserIDRequest) (*UserMeasurements, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMeasurements not implemented")
}

func (UnimplementedRecipexServiceServer) ExportMeasurements(context.Context, *UserIDRequest) (*ExportInfo, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportMeasurements not implemented")
}

func (UnimplementedRecipexServiceServer) SendMessage(context.Context, *SendMessageRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method SendMessage not implemented")
}

func (UnimplementedRecipexServiceServer) GetMessage(context.Context, *MessageIDRequest) (*MessageInfo, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMessage not implemented")
}

func (UnimplementedRecipexServiceServer) ReadMessage(context.Context, *MessageIDRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method ReadMessage not implemented")
}

func (UnimplementedRecipexServiceServer) DeleteMessage(context.Context, *MessageIDRequest) (*Envelope, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteMessage not implemented")
}

func (UnimplementedRecipexServiceServer) GetMessages(context.Context, *UserIDRequest) (*UserMessages, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMessages not implemented")
}

func (UnimplementedRecipexServiceServer) GetUnreadMessages(context.Context, *UserIDRequest) (*UserMessages, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUnreadMessages not implemented")
}

// unary builds the method descriptor for one RPC: it decodes the request
// and runs the handler through the server's interceptor chain.
func unary[Req, Resp any](name string, call func(RecipexServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RecipexServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RecipexServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes RecipexService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecipexServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Hello", RecipexServiceServer.Hello),
		unary("RegisterUser", RecipexServiceServer.RegisterUser),
		unary("UpdateUser", RecipexServiceServer.UpdateUser),
		unary("GetUser", RecipexServiceServer.GetUser),
		unary("DeleteUser", RecipexServiceServer.DeleteUser),
		unary("UpdateRelatives", RecipexServiceServer.UpdateRelatives),
		unary("UpdateCaregivers", RecipexServiceServer.UpdateCaregivers),
		unary("UpdatePatients", RecipexServiceServer.UpdatePatients),
		unary("UpdateFirstAidInfo", RecipexServiceServer.UpdateFirstAidInfo),
		unary("AddMeasurement", RecipexServiceServer.AddMeasurement),
		unary("UpdateMeasurement", RecipexServiceServer.UpdateMeasurement),
		unary("GetMeasurement", RecipexServiceServer.GetMeasurement),
		unary("DeleteMeasurement", RecipexServiceServer.DeleteMeasurement),
		unary("GetMeasurements", RecipexServiceServer.GetMeasurements),
		unary("ExportMeasurements", RecipexServiceServer.ExportMeasurements),
		unary("SendMessage", RecipexServiceServer.SendMessage),
		unary("GetMessage", RecipexServiceServer.GetMessage),
		unary("ReadMessage", RecipexServiceServer.ReadMessage),
		unary("DeleteMessage", RecipexServiceServer.DeleteMessage),
		unary("GetMessages", RecipexServiceServer.GetMessages),
		unary("GetUnreadMessages", RecipexServiceServer.GetUnreadMessages),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterRecipexServiceServer attaches srv to s.
func RegisterRecipexServiceServer(s grpc.ServiceRegistrar, srv RecipexServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
