// Package fakeserver is an in-process HTTP+RPC stand-in for a Vecta
// server, used by integration-style tests that need a real transport
// round trip without a real cluster. Grounded conceptually on the
// teacher's test/framework (a harness that stands up real server
// processes for tests to drive); this package plays the same role for a
// client-only module, so there is no live process to spawn, only the
// wire contract to satisfy in memory.
package fakeserver

import (
	"sort"
	"sync"

	"github.com/cuemby/vecta-go/pkg/backup"
	"github.com/cuemby/vecta-go/pkg/cluster"
	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/rbac"
	"github.com/cuemby/vecta-go/pkg/replication"
)

// storedObject is one object kept in memory, plus whatever a caller
// attached on ingest that the wire format doesn't preserve on the data
// object itself (tenant, vector).
type storedObject struct {
	uuid       string
	tenant     string
	properties map[string]any
	vector     []float32
	namedVectors map[string][]float32
}

// state is every piece of server-side data the fake implements, guarded
// by one mutex. Tests run sequentially against a given Server, so a
// single coarse lock is enough; it is never a bottleneck here.
type state struct {
	mu sync.Mutex

	version  string
	notReady bool

	collections map[string]models.Collection
	tenants     map[string]map[string]models.Tenant // collection -> tenant name -> tenant

	// objects is collection -> uuid -> stored object.
	objects map[string]map[string]*storedObject

	aliases map[string]string // alias name -> target collection

	roles      map[string]rbac.Role
	userRoles  map[string][]string
	groupRoles map[string][]string

	backups  map[string]map[string]*backup.Job // backend -> id -> job
	restores map[string]map[string]*backup.Job

	replicationOps map[string]*replication.Operation
	shardStates    []replication.ShardState

	nodes []cluster.NodeStatus

	// lastObjectParams captures the most recent GET .../objects/{collection}/{uuid}
	// call's query params, letting a test assert consistency propagation
	// without a custom round-tripper.
	lastObjectParams map[string]string

	// graphQLAggregateCalls/rpcAggregateCalls count which transport an
	// aggregate call actually used, letting a test assert the capability
	// gate picked the path its server version implies.
	graphQLAggregateCalls int
	rpcAggregateCalls     int
}

func newState() *state {
	return &state{
		version:        "1.30.0",
		collections:    map[string]models.Collection{},
		tenants:        map[string]map[string]models.Tenant{},
		objects:        map[string]map[string]*storedObject{},
		aliases:        map[string]string{},
		roles:          map[string]rbac.Role{},
		userRoles:      map[string][]string{},
		groupRoles:     map[string][]string{},
		backups:        map[string]map[string]*backup.Job{},
		restores:       map[string]map[string]*backup.Job{},
		replicationOps: map[string]*replication.Operation{},
		nodes: []cluster.NodeStatus{
			{Name: "node-1", Status: "HEALTHY"},
		},
	}
}

func (s *state) collectionObjects(name string) map[string]*storedObject {
	objs, ok := s.objects[name]
	if !ok {
		objs = map[string]*storedObject{}
		s.objects[name] = objs
	}
	return objs
}

// sortedUUIDs returns every uuid in objs in ascending order, the fake's
// stand-in for a stable server-side object ordering that an after-cursor
// can page through.
func sortedUUIDs(objs map[string]*storedObject) []string {
	out := make([]string, 0, len(objs))
	for uuid := range objs {
		out = append(out, uuid)
	}
	sort.Strings(out)
	return out
}
