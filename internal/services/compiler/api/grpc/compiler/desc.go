package compiler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "spore_warriors.compiler.v1.CompilerService"

const (
	compileMethod   = "/" + ServiceName + "/Compile"
	getBundleMethod = "/" + ServiceName + "/GetBundle"
)

// CompilerServiceServer is the server API of the compiler service. Messages
// are well-known protobuf types, so no generated code is needed.
type CompilerServiceServer interface {
	// Compile takes one field per document kind and returns the bundle.
	Compile(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	// GetBundle returns a stored bundle by digest.
	GetBundle(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
}

// RegisterCompilerServiceServer registers srv on s.
func RegisterCompilerServiceServer(s grpc.ServiceRegistrar, srv CompilerServiceServer) {
	s.RegisterService(&CompilerServiceDesc, srv)
}

// CompilerServiceDesc describes the compiler service for grpc.Server.
var CompilerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CompilerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Compile", Handler: compileHandler},
		{MethodName: "GetBundle", Handler: getBundleHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "spore_warriors/compiler/v1/compiler.proto",
}

func compileHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompilerServiceServer).Compile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: compileMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CompilerServiceServer).Compile(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getBundleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompilerServiceServer).GetBundle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getBundleMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CompilerServiceServer).GetBundle(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// CompilerServiceClient is the client API of the compiler service.
type CompilerServiceClient interface {
	Compile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	GetBundle(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type compilerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCompilerServiceClient returns a client over cc.
func NewCompilerServiceClient(cc grpc.ClientConnInterface) CompilerServiceClient {
	return &compilerServiceClient{cc: cc}
}

func (c *compilerServiceClient) Compile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, compileMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *compilerServiceClient) GetBundle(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, getBundleMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
