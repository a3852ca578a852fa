package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"userAnalytics/internal/config"
	"userAnalytics/internal/enrich"
	"userAnalytics/internal/testutil"
	"userAnalytics/models"
)

func testUsers() []models.EnrichedUser {
	return enrich.Enrich(models.Table{Rows: []models.UserRecord{
		{ID: models.Int64(1), Name: models.String("Ann"), Email: models.String("a@x.com")},
		{ID: models.Int64(2), Name: models.String("Bo"), Email: models.String("b@Y.com")},
	}})
}

// dial starts an in-process server over bufconn and returns a client connection.
func dial(t *testing.T) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(testutil.DiscardLogger(), testUsers())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRender_BarChart(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := NewDashboardClient(dial(t))

	page, err := client.Render(ctx, "Gráfico de Barras")
	require.NoError(t, err)
	fields := page.AsMap()
	assert.Equal(t, "barras", fields["view"])
	assert.Equal(t, "bar", fields["kind"])

	bars, ok := fields["bars"].([]any)
	require.True(t, ok)
	require.Len(t, bars, 2)
	for _, b := range bars {
		assert.EqualValues(t, 1, b.(map[string]any)["count"])
	}
}

func TestRender_Errors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := NewDashboardClient(dial(t))

	_, err := client.Render(ctx, "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Render(ctx, "ajustes")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestListViews(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := NewDashboardClient(dial(t))

	list, err := client.ListViews(ctx)
	require.NoError(t, err)
	views := list.AsSlice()
	require.Len(t, views, 6)
	assert.Equal(t, "Inicio", views[0].(map[string]any)["label"])
	assert.Equal(t, "Gráfico de Línea", views[5].(map[string]any)["label"])
}

func TestHealth_Serving(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hc := healthpb.NewHealthClient(dial(t))

	resp, err := hc.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestUnaryLoggingInterceptor_PassesThrough(t *testing.T) {
	interceptor := NewUnaryLoggingInterceptor(testutil.DiscardLogger(), healthCheckMethod)
	called := false
	resp, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: RenderMethod}, func(ctx context.Context, req any) (any, error) {
		called = true
		return 123, nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 123, resp)
}

func TestStartGRPC_NilLogger(t *testing.T) {
	cfg := &config.Config{GRPC: config.GRPCConfig{Address: "127.0.0.1:0"}}
	shutdown, err := StartGRPC(cfg, nil, testUsers())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}
