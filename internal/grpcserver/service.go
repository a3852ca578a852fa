package grpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"userAnalytics/internal/dashboard"
	"userAnalytics/internal/metrics"
	"userAnalytics/models"
)

const (
	ServiceName       = "dashboard.v1.DashboardService"
	RenderMethod      = "/" + ServiceName + "/Render"
	ListViewsMethod   = "/" + ServiceName + "/ListViews"
	healthCheckMethod = "/grpc.health.v1.Health/Check"
)

// DashboardServer renders dashboard views over gRPC. Messages are protobuf
// well-known types so no generated code is needed.
type DashboardServer interface {
	// Render takes a menu label or slug and returns the page as a Struct.
	Render(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	// ListViews returns the menu as a list of {label, slug} structs.
	ListViews(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
}

// Server implements DashboardServer over one immutable enriched dataset.
type Server struct {
	Users []models.EnrichedUser
}

func (s *Server) Render(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil || strings.TrimSpace(req.GetValue()) == "" {
		return nil, status.Error(codes.InvalidArgument, "view is required")
	}
	page, err := dashboard.Render(req.GetValue(), s.Users)
	if errors.Is(err, dashboard.ErrUnknownView) {
		return nil, status.Errorf(codes.NotFound, "view %q not found", req.GetValue())
	} else if err != nil {
		return nil, status.Errorf(codes.Internal, "render: %v", err)
	}
	metrics.RecordRender(page.Slug)

	out, err := toStruct(page)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode page: %v", err)
	}
	return out, nil
}

func (s *Server) ListViews(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	menu := dashboard.Menu()
	items := make([]any, len(menu))
	for i, m := range menu {
		items[i] = map[string]any{"label": m.Label, "slug": m.Slug}
	}
	out, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode menu: %v", err)
	}
	return out, nil
}

// toStruct converts a page through its JSON form so field names match the
// HTTP API.
func toStruct(p dashboard.Page) (*structpb.Struct, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// RegisterDashboardServer registers srv on s.
func RegisterDashboardServer(s grpc.ServiceRegistrar, srv DashboardServer) {
	s.RegisterService(&dashboardServiceDesc, srv)
}

var dashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Render", Handler: renderHandler},
		{MethodName: "ListViews", Handler: listViewsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dashboard/v1/dashboard.proto",
}

func renderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServer).Render(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RenderMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServer).Render(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func listViewsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServer).ListViews(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListViewsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServer).ListViews(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// DashboardClient calls DashboardService.
type DashboardClient struct {
	cc grpc.ClientConnInterface
}

func NewDashboardClient(cc grpc.ClientConnInterface) *DashboardClient {
	return &DashboardClient{cc: cc}
}

func (c *DashboardClient) Render(ctx context.Context, view string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RenderMethod, wrapperspb.String(view), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DashboardClient) ListViews(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListViewsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
