package grpc

// proto.go holds the service descriptor for fraud.FraudDetectionService, written
// by hand in the shape protoc-gen-go-grpc produces. Messages travel through Codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "fraud.FraudDetectionService"

// Full method names.
const (
	AssessFraudRiskMethod   = "/" + ServiceName + "/AssessFraudRisk"
	StreamRiskUpdatesMethod = "/" + ServiceName + "/StreamRiskUpdates"
)

// FraudDetectionServiceServer is the server API for FraudDetectionService.
type FraudDetectionServiceServer interface {
	AssessFraudRisk(context.Context, *FraudAssessmentRequest) (*FraudAssessmentResponse, error)
	StreamRiskUpdates(*FraudAssessmentRequest, RiskUpdateServerStream) error
	mustEmbedUnimplementedFraudDetectionServiceServer()
}

// RiskUpdateServerStream is the server side of a StreamRiskUpdates call.
type RiskUpdateServerStream interface {
	Send(*RiskUpdate) error
	grpclib.ServerStream
}

// UnimplementedFraudDetectionServiceServer provides forward-compatible default implementations.
type UnimplementedFraudDetectionServiceServer struct{}

func (UnimplementedFraudDetectionServiceServer) AssessFraudRisk(context.Context, *FraudAssessmentRequest) (*FraudAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessFraudRisk not implemented")
}
func (UnimplementedFraudDetectionServiceServer) StreamRiskUpdates(*FraudAssessmentRequest, RiskUpdateServerStream) error {
	return status.Errorf(codes.Unimplemented, "method StreamRiskUpdates not implemented")
}
func (UnimplementedFraudDetectionServiceServer) mustEmbedUnimplementedFraudDetectionServiceServer() {}

// RegisterFraudDetectionServiceServer registers the FraudDetectionServiceServer with the gRPC server.
func RegisterFraudDetectionServiceServer(s grpclib.ServiceRegistrar, srv FraudDetectionServiceServer) {
	s.RegisterService(&fraudDetectionServiceDesc, srv)
}

var fraudDetectionServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FraudDetectionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessFraudRisk", Handler: assessFraudRiskHandler},
	},
	Streams: []grpclib.StreamDesc{
		{StreamName: "StreamRiskUpdates", Handler: streamRiskUpdatesHandler, ServerStreams: true},
	},
	Metadata: "fraud.proto",
}

func assessFraudRiskHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(FraudAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FraudDetectionServiceServer).AssessFraudRisk(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AssessFraudRiskMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FraudDetectionServiceServer).AssessFraudRisk(ctx, req.(*FraudAssessmentRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func streamRiskUpdatesHandler(srv interface{}, stream grpclib.ServerStream) error {
	req := new(FraudAssessmentRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(FraudDetectionServiceServer).StreamRiskUpdates(req, &riskUpdateServerStream{stream})
}

type riskUpdateServerStream struct {
	grpclib.ServerStream
}

func (x *riskUpdateServerStream) Send(m *RiskUpdate) error {
	return x.ServerStream.SendMsg(m)
}
