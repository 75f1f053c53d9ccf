package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages on the wire are google.protobuf.Struct documents, so the service
// is described by hand instead of through generated stubs.
const serviceName = "ixt.accounts.AccountService"

// Full method names, as seen by interceptors.
const (
	MethodPing                  = "/" + serviceName + "/Ping"
	MethodRegisterParticipant   = "/" + serviceName + "/RegisterParticipant"
	MethodLogin                 = "/" + serviceName + "/Login"
	MethodRefreshToken          = "/" + serviceName + "/RefreshToken"
	MethodChangePassword        = "/" + serviceName + "/ChangePassword"
	MethodGetProfile            = "/" + serviceName + "/GetProfile"
	MethodAllocateIdentifier    = "/" + serviceName + "/AllocateIdentifier"
	MethodCreateMember          = "/" + serviceName + "/CreateMember"
	MethodChangeRole            = "/" + serviceName + "/ChangeRole"
	MethodDeleteAccount         = "/" + serviceName + "/DeleteAccount"
	MethodSetAccountActive      = "/" + serviceName + "/SetAccountActive"
	MethodUpdateAccount         = "/" + serviceName + "/UpdateAccount"
	MethodListAccounts          = "/" + serviceName + "/ListAccounts"
	MethodListActivity          = "/" + serviceName + "/ListActivity"
	MethodProfilePhotoUploadURL = "/" + serviceName + "/ProfilePhotoUploadURL"
	MethodProfilePhotoURL       = "/" + serviceName + "/ProfilePhotoURL"
)

// AccountServiceServer is the server API of ixt.accounts.AccountService.
type AccountServiceServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegisterParticipant(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChangePassword(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AllocateIdentifier(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateMember(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChangeRole(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAccountActive(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListActivity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProfilePhotoUploadURL(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProfilePhotoURL(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(AccountServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, m unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + serviceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return m(srv.(AccountServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return m(srv.(AccountServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var accountServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc("Ping", AccountServiceServer.Ping),
		methodDesc("RegisterParticipant", AccountServiceServer.RegisterParticipant),
		methodDesc("Login", AccountServiceServer.Login),
		methodDesc("RefreshToken", AccountServiceServer.RefreshToken),
		methodDesc("ChangePassword", AccountServiceServer.ChangePassword),
		methodDesc("GetProfile", AccountServiceServer.GetProfile),
		methodDesc("AllocateIdentifier", AccountServiceServer.AllocateIdentifier),
		methodDesc("CreateMember", AccountServiceServer.CreateMember),
		methodDesc("ChangeRole", AccountServiceServer.ChangeRole),
		methodDesc("DeleteAccount", AccountServiceServer.DeleteAccount),
		methodDesc("SetAccountActive", AccountServiceServer.SetAccountActive),
		methodDesc("UpdateAccount", AccountServiceServer.UpdateAccount),
		methodDesc("ListAccounts", AccountServiceServer.ListAccounts),
		methodDesc("ListActivity", AccountServiceServer.ListActivity),
		methodDesc("ProfilePhotoUploadURL", AccountServiceServer.ProfilePhotoUploadURL),
		methodDesc("ProfilePhotoURL", AccountServiceServer.ProfilePhotoURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ixt/accounts/v1",
}

// RegisterAccountServiceServer registers srv on s.
func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&accountServiceDesc, srv)
}

// Client is a thin caller for the service, used by tools and tests.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes fullMethod with the given fields and returns the response
// fields.
func (c *Client) Call(ctx context.Context, fullMethod string, fields map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
