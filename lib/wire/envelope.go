// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"
)

// ErrMalformedEnvelope is returned when response bytes do not parse as
// the expected frame: truncated data, a wrong wire type for a known
// field, or a wrapper that carries no payload at all.
var ErrMalformedEnvelope = errors.New("malformed envelope")

// ServerCommands carries out-of-band instructions from the server. A
// rejected storefront request usually has no payload and a
// DisplayErrorMessage explaining why.
type ServerCommands struct {
	ClearCache          *bool   `protobuf:"varint,1,opt,name=clearCache" json:"clearCache,omitempty"`
	DisplayErrorMessage *string `protobuf:"bytes,2,opt,name=displayErrorMessage" json:"displayErrorMessage,omitempty"`
	LogErrorStacktrace  *string `protobuf:"bytes,3,opt,name=logErrorStacktrace" json:"logErrorStacktrace,omitempty"`
}

func (m *ServerCommands) Reset()         { *m = ServerCommands{} }
func (m *ServerCommands) String() string { return proto.CompactTextString(m) }
func (*ServerCommands) ProtoMessage()    {}

func (m *ServerCommands) GetDisplayErrorMessage() string {
	if m != nil && m.DisplayErrorMessage != nil {
		return *m.DisplayErrorMessage
	}
	return ""
}

// Payload holds the single sub-response selected by the endpoint that
// was invoked. All other fields are nil.
type Payload struct {
	ListResponse               *ListResponse               `protobuf:"bytes,1,opt,name=listResponse" json:"listResponse,omitempty"`
	DetailsResponse            *DetailsResponse            `protobuf:"bytes,2,opt,name=detailsResponse" json:"detailsResponse,omitempty"`
	ReviewResponse             *ReviewResponse             `protobuf:"bytes,3,opt,name=reviewResponse" json:"reviewResponse,omitempty"`
	BuyResponse                *BuyResponse                `protobuf:"bytes,4,opt,name=buyResponse" json:"buyResponse,omitempty"`
	TocResponse                *TocResponse                `protobuf:"bytes,6,opt,name=tocResponse" json:"tocResponse,omitempty"`
	DeliveryResponse           *DeliveryResponse           `protobuf:"bytes,21,opt,name=deliveryResponse" json:"deliveryResponse,omitempty"`
	UploadDeviceConfigResponse *UploadDeviceConfigResponse `protobuf:"bytes,28,opt,name=uploadDeviceConfigResponse" json:"uploadDeviceConfigResponse,omitempty"`
}

func (m *Payload) Reset()         { *m = Payload{} }
func (m *Payload) String() string { return proto.CompactTextString(m) }
func (*Payload) ProtoMessage()    {}

func (m *Payload) GetListResponse() *ListResponse {
	if m != nil {
		return m.ListResponse
	}
	return nil
}

func (m *Payload) GetDetailsResponse() *DetailsResponse {
	if m != nil {
		return m.DetailsResponse
	}
	return nil
}

func (m *Payload) GetReviewResponse() *ReviewResponse {
	if m != nil {
		return m.ReviewResponse
	}
	return nil
}

func (m *Payload) GetBuyResponse() *BuyResponse {
	if m != nil {
		return m.BuyResponse
	}
	return nil
}

func (m *Payload) GetTocResponse() *TocResponse {
	if m != nil {
		return m.TocResponse
	}
	return nil
}

func (m *Payload) GetDeliveryResponse() *DeliveryResponse {
	if m != nil {
		return m.DeliveryResponse
	}
	return nil
}

func (m *Payload) GetUploadDeviceConfigResponse() *UploadDeviceConfigResponse {
	if m != nil {
		return m.UploadDeviceConfigResponse
	}
	return nil
}

// ResponseWrapper is the outer frame of every storefront response.
type ResponseWrapper struct {
	Payload  *Payload        `protobuf:"bytes,1,opt,name=payload" json:"payload,omitempty"`
	Commands *ServerCommands `protobuf:"bytes,2,opt,name=commands" json:"commands,omitempty"`
}

func (m *ResponseWrapper) Reset()         { *m = ResponseWrapper{} }
func (m *ResponseWrapper) String() string { return proto.CompactTextString(m) }
func (*ResponseWrapper) ProtoMessage()    {}

func (m *ResponseWrapper) GetPayload() *Payload {
	if m != nil {
		return m.Payload
	}
	return nil
}

func (m *ResponseWrapper) GetCommands() *ServerCommands {
	if m != nil {
		return m.Commands
	}
	return nil
}

// APIPayload is the payload of the /fdfe/api/ family (user profile),
// which uses its own field numbering.
type APIPayload struct {
	UserProfileResponse *UserProfileResponse `protobuf:"bytes,5,opt,name=userProfileResponse" json:"userProfileResponse,omitempty"`
}

func (m *APIPayload) Reset()         { *m = APIPayload{} }
func (m *APIPayload) String() string { return proto.CompactTextString(m) }
func (*APIPayload) ProtoMessage()    {}

func (m *APIPayload) GetUserProfileResponse() *UserProfileResponse {
	if m != nil {
		return m.UserProfileResponse
	}
	return nil
}

// APIResponseWrapper frames responses of the user profile endpoint.
type APIResponseWrapper struct {
	Payload *APIPayload `protobuf:"bytes,1,opt,name=payload" json:"payload,omitempty"`
}

func (m *APIResponseWrapper) Reset()         { *m = APIResponseWrapper{} }
func (m *APIResponseWrapper) String() string { return proto.CompactTextString(m) }
func (*APIResponseWrapper) ProtoMessage()    {}

// Encode serializes a request message into the binary body expected
// by the vendor endpoint.
func Encode(message proto.Message) ([]byte, error) {
	data, err := proto.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", message, err)
	}
	return data, nil
}

// DecodeWrapper parses a complete response frame. Use [Decode] unless
// the server commands are needed (for example to report why a non-2xx
// response was rejected).
func DecodeWrapper(data []byte) (*ResponseWrapper, error) {
	var wrapper ResponseWrapper
	if err := proto.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return &wrapper, nil
}

// Decode parses a response frame and returns its payload. Only bytes
// that do not parse are malformed. A well-formed frame without a
// payload, including an empty body, yields an empty Payload; the
// caller decides whether the sub-response it expected is required.
func Decode(data []byte) (*Payload, error) {
	wrapper, err := DecodeWrapper(data)
	if err != nil {
		return nil, err
	}
	if wrapper.Payload == nil {
		return &Payload{}, nil
	}
	return wrapper.Payload, nil
}

// DecodeAPI parses an [APIResponseWrapper] and returns its payload,
// with the same semantics as [Decode].
func DecodeAPI(data []byte) (*APIPayload, error) {
	var wrapper APIResponseWrapper
	if err := proto.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if wrapper.Payload == nil {
		return &APIPayload{}, nil
	}
	return wrapper.Payload, nil
}

// DecodeCheckin parses the bare (unwrapped) response of /checkin.
func DecodeCheckin(data []byte) (*AndroidCheckinResponse, error) {
	var response AndroidCheckinResponse
	if err := proto.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("%w: checkin response: %v", ErrMalformedEnvelope, err)
	}
	return &response, nil
}
