package grpc

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire messages of fraud.FraudDetectionService. Field numbers and types match the
// published .proto so stock protobuf clients interoperate:
//
//	message FraudAssessmentRequest {
//	  string claim_id = 1; string policy_number = 2; double estimated_amount = 3;
//	  string claim_type = 4; string incident_date = 5; int32 previous_claims_count = 6;
//	}
//	enum RiskLevel { LOW = 0; MEDIUM = 1; HIGH = 2; CRITICAL = 3; }
//	message FraudAssessmentResponse {
//	  string claim_id = 1; RiskLevel risk_level = 2; double risk_score = 3;
//	  string assessment_reason = 4; bool requires_investigation = 5;
//	}
//	message RiskUpdate { string message = 1; double current_score = 2; }

// FraudAssessmentRequest represents the proto FraudAssessmentRequest message.
type FraudAssessmentRequest struct {
	ClaimID             string
	PolicyNumber        string
	ClaimType           string
	IncidentDate        string
	EstimatedAmount     float64
	PreviousClaimsCount int32
}

// FraudAssessmentResponse represents the proto FraudAssessmentResponse message.
type FraudAssessmentResponse struct {
	ClaimID               string
	AssessmentReason      string
	RiskScore             float64
	RiskLevel             int32
	RequiresInvestigation bool
}

// RiskUpdate represents the proto RiskUpdate message.
type RiskUpdate struct {
	Message      string
	CurrentScore float64
}

// wireMessage is implemented by every message above.
type wireMessage interface {
	marshalWire() []byte
	unmarshalWire(b []byte) error
}

var (
	_ wireMessage = (*FraudAssessmentRequest)(nil)
	_ wireMessage = (*FraudAssessmentResponse)(nil)
	_ wireMessage = (*RiskUpdate)(nil)
)

func (m *FraudAssessmentRequest) marshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.ClaimID)
	b = appendString(b, 2, m.PolicyNumber)
	b = appendDouble(b, 3, m.EstimatedAmount)
	b = appendString(b, 4, m.ClaimType)
	b = appendString(b, 5, m.IncidentDate)
	b = appendVarint(b, 6, uint64(int64(m.PreviousClaimsCount)))
	return b
}

func (m *FraudAssessmentRequest) unmarshalWire(b []byte) error {
	*m = FraudAssessmentRequest{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(v, &m.ClaimID)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(v, &m.PolicyNumber)
		case num == 3 && typ == protowire.Fixed64Type:
			return consumeDouble(v, &m.EstimatedAmount)
		case num == 4 && typ == protowire.BytesType:
			return consumeString(v, &m.ClaimType)
		case num == 5 && typ == protowire.BytesType:
			return consumeString(v, &m.IncidentDate)
		case num == 6 && typ == protowire.VarintType:
			return consumeInt32(v, &m.PreviousClaimsCount)
		}
		return protowire.ConsumeFieldValue(num, typ, v)
	})
}

func (m *FraudAssessmentResponse) marshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.ClaimID)
	b = appendVarint(b, 2, uint64(int64(m.RiskLevel)))
	b = appendDouble(b, 3, m.RiskScore)
	b = appendString(b, 4, m.AssessmentReason)
	if m.RequiresInvestigation {
		b = appendVarint(b, 5, 1)
	}
	return b
}

func (m *FraudAssessmentResponse) unmarshalWire(b []byte) error {
	*m = FraudAssessmentResponse{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(v, &m.ClaimID)
		case num == 2 && typ == protowire.VarintType:
			return consumeInt32(v, &m.RiskLevel)
		case num == 3 && typ == protowire.Fixed64Type:
			return consumeDouble(v, &m.RiskScore)
		case num == 4 && typ == protowire.BytesType:
			return consumeString(v, &m.AssessmentReason)
		case num == 5 && typ == protowire.VarintType:
			return consumeBool(v, &m.RequiresInvestigation)
		}
		return protowire.ConsumeFieldValue(num, typ, v)
	})
}

func (m *RiskUpdate) marshalWire() []byte {
	var b []byte
	b = appendString(b, 1, m.Message)
	b = appendDouble(b, 2, m.CurrentScore)
	return b
}

func (m *RiskUpdate) unmarshalWire(b []byte) error {
	*m = RiskUpdate{}
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(v, &m.Message)
		case num == 2 && typ == protowire.Fixed64Type:
			return consumeDouble(v, &m.CurrentScore)
		}
		return protowire.ConsumeFieldValue(num, typ, v)
	})
}

// Encoding helpers. Zero values are omitted, as proto3 does for scalar fields.

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	bits := math.Float64bits(v)
	if bits == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, bits)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// walkFields calls fn for every field in b. fn returns the number of value
// bytes it consumed, or a negative protowire error code.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n = fn(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeString(b []byte, dst *string) int {
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeDouble(b []byte, dst *float64) int {
	v, n := protowire.ConsumeFixed64(b)
	if n >= 0 {
		*dst = math.Float64frombits(v)
	}
	return n
}

func consumeInt32(b []byte, dst *int32) int {
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = int32(v)
	}
	return n
}

func consumeBool(b []byte, dst *bool) int {
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}
