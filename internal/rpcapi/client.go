package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls RecipexService over a connection. Calls are sent with the
// structpb content-subtype.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Hello(ctx context.Context, in *Void, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "Hello", in, opts)
}

func (c *Client) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "RegisterUser", in, opts)
}

func (c *Client) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "UpdateUser", in, opts)
}

func (c *Client) GetUser(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*UserInfo, error) {
	return invoke[UserInfo](ctx, c.cc, "GetUser", in, opts)
}

func (c *Client) DeleteUser(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "DeleteUser", in, opts)
}

func (c *Client) UpdateRelatives(ctx context.Context, in *RelationsRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "UpdateRelatives", in, opts)
}

func (c *Client) UpdateCaregivers(ctx context.Context, in *RelationsRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "UpdateCaregivers", in, opts)
}

func (c *Client) UpdatePatients(ctx context.Context, in *RelationsRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "UpdatePatients", in, opts)
}

func (c *Client) UpdateFirstAidInfo(ctx context.Context, in *FirstAidRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "UpdateFirstAidInfo", in, opts)
}

func (c *Client) AddMeasurement(ctx context.Context, in *AddMeasurementRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "AddMeasurement", in, opts)
}

func (c *Client) UpdateMeasurement(ctx context.Context, in *UpdateMeasurementRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "UpdateMeasurement", in, opts)
}

func (c *Client) GetMeasurement(ctx context.Context, in *MeasurementIDRequest, opts ...grpc.CallOption) (*MeasurementInfo, error) {
	return invoke[MeasurementInfo](ctx, c.cc, "GetMeasurement", in, opts)
}

func (c *Client) DeleteMeasurement(ctx context.Context, in *MeasurementIDRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "DeleteMeasurement", in, opts)
}

func (c *Client) GetMeasurements(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*UserMeasurements, error) {
	return invoke[UserMeasurements](ctx, c.cc, "GetMeasurements", in, opts)
}

func (c *Client) ExportMeasurements(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*ExportInfo, error) {
	return invoke[ExportInfo](ctx, c.cc, "ExportMeasurements", in, opts)
}

func (c *Client) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "SendMessage", in, opts)
}

func (c *Client) GetMessage(ctx context.Context, in *MessageIDRequest, opts ...grpc.CallOption) (*MessageInfo, error) {
	return invoke[MessageInfo](ctx, c.cc, "GetMessage", in, opts)
}

func (c *Client) ReadMessage(ctx context.Context, in *MessageIDRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "ReadMessage", in, opts)
}

func (c *Client) DeleteMessage(ctx context.Context, in *MessageIDRequest, opts ...grpc.CallOption) (*Envelope, error) {
	return invoke[Envelope](ctx, c.cc, "DeleteMessage", in, opts)
}

func (c *Client) GetMessages(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*UserMessages, error) {
	return invoke[UserMessages](ctx, c.cc, "GetMessages", in, opts)
}

func (c *Client) GetUnreadMessages(ctx context.Context, in *UserIDRequest, opts ...grpc.CallOption) (*UserMessages, error) {
	return invoke[UserMessages](ctx, c.cc, "GetUnreadMessages", in, opts)
}
