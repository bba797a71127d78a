package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the catalog service. Requests
// and responses are google.protobuf.Struct documents.
const ServiceName = "realty.catalog.v1.CatalogService"

const (
	MethodListListings = "/" + ServiceName + "/ListListings"
	MethodGetListing   = "/" + ServiceName + "/GetListing"
	MethodGetStats     = "/" + ServiceName + "/GetStats"
)

type CatalogServiceServer interface {
	ListListings(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetListing(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetStats(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler(fullMethod string, call func(CatalogServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListListings",
			Handler: unaryHandler(MethodListListings, func(s CatalogServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.ListListings(ctx, in)
			}),
		},
		{
			MethodName: "GetListing",
			Handler: unaryHandler(MethodGetListing, func(s CatalogServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.GetListing(ctx, in)
			}),
		},
		{
			MethodName: "GetStats",
			Handler: unaryHandler(MethodGetStats, func(s CatalogServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.GetStats(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "realty/catalog/v1/catalog.proto",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

// CatalogServiceClient calls the catalog service over a client connection.
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogServiceClient) ListListings(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListListings, in, opts...)
}

func (c *CatalogServiceClient) GetListing(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetListing, in, opts...)
}

func (c *CatalogServiceClient) GetStats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetStats, in, opts...)
}
