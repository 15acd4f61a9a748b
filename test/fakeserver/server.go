package fakeserver

import (
	"net"
	"net/http/httptest"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/replication"
	"google.golang.org/grpc"
)

// Server is a fake Vecta server: a real httptest.Server for the control
// plane and a real *grpc.Server (dialable over plain TCP) for the data
// plane, backed by one in-memory state. Every test gets its own Server,
// so there is no shared global state between tests.
type Server struct {
	st *state

	http *httptest.Server

	grpcServer *grpc.Server
	grpcLis    net.Listener
}

// New starts both transports and returns a Server ready to accept
// connections. Call Close when the test is done.
func New() *Server {
	s := &Server{st: newState()}

	s.http = httptest.NewServer(s.newMux())

	s.grpcServer = grpc.NewServer(grpc.UnknownServiceHandler(s.unknownServiceHandler))
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic("fakeserver: listen for grpc: " + err.Error())
	}
	s.grpcLis = lis
	go func() {
		_ = s.grpcServer.Serve(lis)
	}()

	return s
}

// Close tears down both transports.
func (s *Server) Close() {
	s.grpcServer.Stop()
	s.http.Close()
}

// URL is the HTTP control-plane base URL, suitable for vconfig.WithAPIKey
// connections (no /v1 suffix; pkg/transport adds it).
func (s *Server) URL() string {
	return s.http.URL
}

// GRPCAddr is the RPC data-plane dial target for vconfig.WithGRPC.
func (s *Server) GRPCAddr() string {
	return s.grpcLis.Addr().String()
}

// SetVersion controls the version GET /v1/meta reports, gating which
// capability.Gate features a connected client sees as available.
func (s *Server) SetVersion(v string) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.version = v
}

// SetReady controls whether GET /v1/.well-known/ready reports healthy.
func (s *Server) SetReady(ready bool) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.notReady = !ready
}

// PutCollection seeds a collection's schema directly, bypassing the
// schema-create HTTP round trip.
func (s *Server) PutCollection(col models.Collection) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.collections[col.Name] = col
}

// PutTenant seeds one tenant of a multi-tenancy collection.
func (s *Server) PutTenant(collection string, tenant models.Tenant) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, ok := s.st.tenants[collection]; !ok {
		s.st.tenants[collection] = map[string]models.Tenant{}
	}
	s.st.tenants[collection][tenant.Name] = tenant
}

// PutObject seeds one object directly, bypassing both the REST insert
// path and the RPC batch path; useful for search and tenant-isolation
// tests that need data in place before the assertions being tested run.
func (s *Server) PutObject(collection, uuid, tenant string, properties map[string]any, vector []float32) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	objs := s.st.collectionObjects(collection)
	objs[uuid] = &storedObject{uuid: uuid, tenant: tenant, properties: properties, vector: vector}
}

// SetShardStates seeds the cluster-wide shard placement GET
// /v1/replication/sharding-state reports.
func (s *Server) SetShardStates(states []replication.ShardState) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.shardStates = states
}

// LastObjectParams returns the query params of the most recent object-get
// request, for asserting consistency-level propagation.
func (s *Server) LastObjectParams() map[string]string {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	out := make(map[string]string, len(s.st.lastObjectParams))
	for k, v := range s.st.lastObjectParams {
		out[k] = v
	}
	return out
}

// ObjectCount reports how many objects are stored for a collection,
// letting a test assert on ingest outcomes without a round trip.
func (s *Server) ObjectCount(collection string) int {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return len(s.st.objects[collection])
}

// AggregateCallCounts reports how many times each aggregate transport was
// used, letting a test assert which path a capability gate picked.
func (s *Server) AggregateCallCounts() (graphQL, rpc int) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.st.graphQLAggregateCalls, s.st.rpcAggregateCalls
}
