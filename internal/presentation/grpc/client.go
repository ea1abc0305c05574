package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"
)

// FraudDetectionClient calls FraudDetectionService over an existing connection.
type FraudDetectionClient struct {
	cc grpclib.ClientConnInterface
}

// NewFraudDetectionClient creates a client bound to cc.
func NewFraudDetectionClient(cc grpclib.ClientConnInterface) *FraudDetectionClient {
	return &FraudDetectionClient{cc: cc}
}

// RiskUpdateClientStream is the client side of a StreamRiskUpdates call.
type RiskUpdateClientStream interface {
	Recv() (*RiskUpdate, error)
	grpclib.ClientStream
}

// AssessFraudRisk performs the unary assessment.
func (c *FraudDetectionClient) AssessFraudRisk(ctx context.Context, in *FraudAssessmentRequest, opts ...grpclib.CallOption) (*FraudAssessmentResponse, error) {
	out := new(FraudAssessmentResponse)
	if err := c.cc.Invoke(ctx, AssessFraudRiskMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// StreamRiskUpdates opens the server-streaming assessment. Cancel ctx to abandon it.
func (c *FraudDetectionClient) StreamRiskUpdates(ctx context.Context, in *FraudAssessmentRequest, opts ...grpclib.CallOption) (RiskUpdateClientStream, error) {
	stream, err := c.cc.NewStream(ctx, &fraudDetectionServiceDesc.Streams[0], StreamRiskUpdatesMethod, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &riskUpdateClientStream{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type riskUpdateClientStream struct {
	grpclib.ClientStream
}

func (x *riskUpdateClientStream) Recv() (*RiskUpdate, error) {
	m := new(RiskUpdate)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func withCodec(opts []grpclib.CallOption) []grpclib.CallOption {
	return append([]grpclib.CallOption{grpclib.ForceCodec(Codec{})}, opts...)
}
