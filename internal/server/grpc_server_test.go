package server_test

import (
	"bytes"
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	pb "github.com/oggyb/campus-match/internal/api/match"
	"github.com/oggyb/campus-match/internal/app"
	"github.com/oggyb/campus-match/internal/config"
	"github.com/oggyb/campus-match/internal/logger"
	"github.com/oggyb/campus-match/internal/server"
	"github.com/oggyb/campus-match/internal/service/matching"
	"github.com/oggyb/campus-match/internal/testutil"
)

// syncBuffer lets the server goroutine log while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startServer(t *testing.T) (*pb.MatchServiceClient, *testutil.Fixtures, *syncBuffer) {
	t.Helper()

	database := testutil.NewDB(t)
	rc, _ := testutil.NewRedis(t)

	cfg := &config.Config{}
	cfg.Match.Interests = config.DefaultInterests
	cfg.Match.ContactHint = "tg://user?id=%s"

	logs := &syncBuffer{}
	log := logger.New(logger.Config{Level: "debug", Format: logger.FormatText, Output: logs})
	appCtx := app.New(cfg, database, rc, logger.Discard())

	lis := bufconn.Listen(1 << 20)
	srv := server.NewGRPCServer(log, matching.NewRegistrar(appCtx))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, lis, srv) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pb.NewMatchServiceClient(conn), testutil.NewFixtures(t, database), logs
}

func TestServer_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, fx, logs := startServer(t)

	fx.CreateMember("a", "IT", "Art")
	fx.CreateMember("b", "IT")

	interests, err := client.ListInterests(ctx, &pb.ListInterestsRequest{})
	require.NoError(t, err)
	assert.Contains(t, interests.Interests, "Coffee shops")

	var header metadata.MD
	next, err := client.RequestNextCandidate(ctx,
		&pb.RequestNextCandidateRequest{ExternalID: "a"},
		grpc.Header(&header),
	)
	require.NoError(t, err)
	require.NotNil(t, next.Candidate)
	assert.Equal(t, "b", next.Candidate.CandidateID)
	assert.Equal(t, int32(1), next.Candidate.SharedInterests)
	assert.Len(t, header.Get(server.RequestIDKey), 1)

	act, err := client.SubmitAction(ctx, &pb.SubmitActionRequest{ExternalID: "a", Action: "approve", CandidateID: "b"})
	require.NoError(t, err)
	assert.Equal(t, string(matching.OutcomeApprovedNoMatch), act.Outcome)
	assert.True(t, act.NoMoreCandidates)

	_, err = client.GetProfile(ctx, &pb.GetProfileRequest{ExternalID: "nobody"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	out := logs.String()
	assert.Contains(t, out, pb.MethodRequestNextCandidate)
	assert.Contains(t, out, "code=NotFound")
}

func TestServer_ReusesIncomingRequestID(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, _, logs := startServer(t)

	ctx = metadata.AppendToOutgoingContext(ctx, server.RequestIDKey, "req-123")
	var header metadata.MD
	_, err := client.ListInterests(ctx, &pb.ListInterestsRequest{}, grpc.Header(&header))
	require.NoError(t, err)

	assert.Equal(t, []string{"req-123"}, header.Get(server.RequestIDKey))
	assert.Contains(t, logs.String(), "request_id=req-123")
}

func TestNewGRPCServer_RegistersAll(t *testing.T) {
	var calls int
	count := server.RegistrarFunc(func(*grpc.Server) { calls++ })

	srv := server.NewGRPCServer(logger.Discard(), count, count)
	defer srv.Stop()

	assert.Equal(t, 2, calls)
}

func TestServe_StopsOnCancel(t *testing.T) {
	lis := bufconn.Listen(1 << 10)
	srv := server.NewGRPCServer(logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, lis, srv) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
