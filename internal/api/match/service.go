package match

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "campusmatch.v1.MatchService"

const (
	MethodRegisterOrUpdate     = "/" + ServiceName + "/RegisterOrUpdate"
	MethodGetProfile           = "/" + ServiceName + "/GetProfile"
	MethodRequestNextCandidate = "/" + ServiceName + "/RequestNextCandidate"
	MethodSubmitAction         = "/" + ServiceName + "/SubmitAction"
	MethodListInterests        = "/" + ServiceName + "/ListInterests"
	MethodListMatches          = "/" + ServiceName + "/ListMatches"
	MethodCountMatches         = "/" + ServiceName + "/CountMatches"
)

// MatchServiceServer is the server API for MatchService.
// Implementations must embed UnimplementedMatchServiceServer.
type MatchServiceServer interface {
	RegisterOrUpdate(context.Context, *RegisterOrUpdateRequest) (*RegisterOrUpdateResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	RequestNextCandidate(context.Context, *RequestNextCandidateRequest) (*RequestNextCandidateResponse, error)
	SubmitAction(context.Context, *SubmitActionRequest) (*SubmitActionResponse, error)
	ListInterests(context.Context, *ListInterestsRequest) (*ListInterestsResponse, error)
	ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error)
	CountMatches(context.Context, *CountMatchesRequest) (*CountMatchesResponse, error)
	mustEmbedUnimplementedMatchServiceServer()
}

// UnimplementedMatchServiceServer answers Unimplemented for every method.
type UnimplementedMatchServiceServer struct{}

func (UnimplementedMatchServiceServer) RegisterOrUpdate(context.Context, *RegisterOrUpdateRequest) (*RegisterOrUpdateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterOrUpdate not implemented")
}
func (UnimplementedMatchServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedMatchServiceServer) RequestNextCandidate(context.Context, *RequestNextCandidateRequest) (*RequestNextCandidateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestNextCandidate not implemented")
}
func (UnimplementedMatchServiceServer) SubmitAction(context.Context, *SubmitActionRequest) (*SubmitActionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitAction not implemented")
}
func (UnimplementedMatchServiceServer) ListInterests(context.Context, *ListInterestsRequest) (*ListInterestsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListInterests not implemented")
}
func (UnimplementedMatchServiceServer) ListMatches(context.Context, *ListMatchesRequest) (*ListMatchesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMatches not implemented")
}
func (UnimplementedMatchServiceServer) CountMatches(context.Context, *CountMatchesRequest) (*CountMatchesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CountMatches not implemented")
}
func (UnimplementedMatchServiceServer) mustEmbedUnimplementedMatchServiceServer() {}

// RegisterMatchServiceServer attaches srv to a gRPC server.
func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed method into a grpc.MethodHandler.
func unary[Req, Resp any](
	fullMethod string,
	call func(MatchServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MatchServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MatchServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes MatchService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterOrUpdate", Handler: unary(MethodRegisterOrUpdate, MatchServiceServer.RegisterOrUpdate)},
		{MethodName: "GetProfile", Handler: unary(MethodGetProfile, MatchServiceServer.GetProfile)},
		{MethodName: "RequestNextCandidate", Handler: unary(MethodRequestNextCandidate, MatchServiceServer.RequestNextCandidate)},
		{MethodName: "SubmitAction", Handler: unary(MethodSubmitAction, MatchServiceServer.SubmitAction)},
		{MethodName: "ListInterests", Handler: unary(MethodListInterests, MatchServiceServer.ListInterests)},
		{MethodName: "ListMatches", Handler: unary(MethodListMatches, MatchServiceServer.ListMatches)},
		{MethodName: "CountMatches", Handler: unary(MethodCountMatches, MatchServiceServer.CountMatches)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "campusmatch/v1/match",
}
