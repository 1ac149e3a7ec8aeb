package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "wealthflow.projection.v1.ProjectionService"

// ProjectionServer is the server API of the projection service.
// Every method takes and returns a google.protobuf.Struct.
type ProjectionServer interface {
	GetProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetChart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetNetWorth(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAssetProfit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegisterAsset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAssetPrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetObjective(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type structMethod func(ProjectionServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryMethod adapts a ProjectionServer method to a grpc.MethodDesc
func unaryMethod(name string, call structMethod) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ProjectionServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ProjectionServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ProjectionServiceDesc describes the projection service for grpc.Server.RegisterService
var ProjectionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProjectionServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("GetProgress", ProjectionServer.GetProgress),
		unaryMethod("GetChart", ProjectionServer.GetChart),
		unaryMethod("GetNetWorth", ProjectionServer.GetNetWorth),
		unaryMethod("GetAssetProfit", ProjectionServer.GetAssetProfit),
		unaryMethod("RegisterAsset", ProjectionServer.RegisterAsset),
		unaryMethod("RecordTransaction", ProjectionServer.RecordTransaction),
		unaryMethod("UpdateAssetPrice", ProjectionServer.UpdateAssetPrice),
		unaryMethod("SetObjective", ProjectionServer.SetObjective),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wealthflow/projection/v1/projection.proto",
}

// RegisterProjectionServer registers srv on s
func RegisterProjectionServer(s grpc.ServiceRegistrar, srv ProjectionServer) {
	s.RegisterService(&ProjectionServiceDesc, srv)
}

// Client calls the projection service over an established connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new Client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with a request built from fields
func (c *Client) Call(ctx context.Context, method string, fields map[string]interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
