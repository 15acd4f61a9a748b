package fakeserver

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/rpc"
	"google.golang.org/grpc"
)

// unknownServiceHandler is installed as grpc.UnknownServiceHandler: since
// the retrieval pack carries no .proto sources for the data-plane service,
// pkg/rpc.Channel invokes raw method-path strings rather than a generated
// client stub, so there is no service to register a normal handler
// against either. Grounded on pkg/rpc/channel.go's Invoke calls, which
// name this exact method set.
func (s *Server) unknownServiceHandler(srv any, stream grpc.ServerStream) error {
	method, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return fmt.Errorf("fakeserver: no method on stream")
	}
	switch method {
	case "/vecta.v1.Weaviate/HealthCheck":
		var req rpc.HealthCheckRequest
		if err := stream.RecvMsg(&req); err != nil {
			return err
		}
		return stream.SendMsg(&rpc.HealthCheckReply{Healthy: true})

	case "/vecta.v1.Weaviate/Search":
		var req rpc.SearchRequest
		if err := stream.RecvMsg(&req); err != nil {
			return err
		}
		return stream.SendMsg(s.runSearch(&req))

	case "/vecta.v1.Weaviate/BatchObjects":
		var req rpc.BatchObjectsRequest
		if err := stream.RecvMsg(&req); err != nil {
			return err
		}
		return stream.SendMsg(s.runBatchObjects(&req))

	case "/vecta.v1.Weaviate/TenantsGet":
		var req rpc.TenantsGetRequest
		if err := stream.RecvMsg(&req); err != nil {
			return err
		}
		return stream.SendMsg(s.runTenantsGet(&req))

	case "/vecta.v1.Weaviate/Aggregate":
		var req rpc.AggregateRequest
		if err := stream.RecvMsg(&req); err != nil {
			return err
		}
		return stream.SendMsg(s.runAggregate(&req))

	default:
		return fmt.Errorf("fakeserver: unimplemented method %s", method)
	}
}

// scoredObject pairs a stored object with whatever distance/score the
// active probe assigned it, ordered for result-tier cuts.
type scoredObject struct {
	obj      *storedObject
	distance float64
	hasScore bool
}

func (s *Server) runSearch(req *rpc.SearchRequest) *rpc.SearchReply {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	objs := s.st.collectionObjects(req.Collection)
	candidates := make([]*storedObject, 0, len(objs))
	for _, uuid := range sortedUUIDs(objs) {
		obj := objs[uuid]
		if req.Tenant != "" && obj.tenant != req.Tenant {
			continue
		}
		if req.Filters != nil && !matchFilters(req.Filters, obj.properties) {
			continue
		}
		candidates = append(candidates, obj)
	}

	scored := s.applyProbe(req, candidates)

	if req.After != "" {
		kept := scored[:0]
		pastCursor := false
		for _, so := range scored {
			if pastCursor {
				kept = append(kept, so)
				continue
			}
			if so.obj.uuid == req.After {
				pastCursor = true
			}
		}
		scored = kept
	}

	if req.Offset != nil && *req.Offset > 0 {
		off := int(*req.Offset)
		if off >= len(scored) {
			scored = nil
		} else {
			scored = scored[off:]
		}
	}

	if req.AutoLimit != nil && *req.AutoLimit > 0 {
		scored = autocut(scored, int(*req.AutoLimit))
	}

	if req.Limit != nil && int(*req.Limit) < len(scored) {
		scored = scored[:*req.Limit]
	}

	reply := &rpc.SearchReply{Results: make([]rpc.SearchResultItem, 0, len(scored))}
	for _, so := range scored {
		reply.Results = append(reply.Results, toResultItem(so))
	}
	return reply
}

// applyProbe scores and orders candidates per the request's probe, or
// leaves the uuid-ascending candidate order unchanged when no probe is set,
// matching a plain fetch_objects call.
func (s *Server) applyProbe(req *rpc.SearchRequest, candidates []*storedObject) []scoredObject {
	out := make([]scoredObject, len(candidates))
	for i, obj := range candidates {
		out[i] = scoredObject{obj: obj}
	}

	switch {
	case req.NearObject != nil:
		target := s.vectorOf(req.Collection, req.NearObject.UUID)
		for i := range out {
			out[i].distance = cosineDistance(target, out[i].obj.vector)
			out[i].hasScore = true
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].distance < out[j].distance })

	case req.NearVector != nil:
		for i := range out {
			out[i].distance = cosineDistance(req.NearVector.Vector, out[i].obj.vector)
			out[i].hasScore = true
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].distance < out[j].distance })

	case req.BM25 != nil:
		for i := range out {
			out[i].distance = -bm25Score(req.BM25.Query, out[i].obj.properties)
			out[i].hasScore = true
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].distance < out[j].distance })
		out = dropNoMatch(out)

	case req.Hybrid != nil:
		// alpha=0 is pure keyword (BM25); alpha=1 is pure vector, per
		// the hybrid fusion rule. With no stored vectors to rank
		// against, the vector term falls back to 0 so alpha=0 reduces
		// exactly to the BM25 ordering.
		for i := range out {
			kw := bm25Score(req.Hybrid.Query, out[i].obj.properties)
			vec := 0.0
			if len(req.Hybrid.Vector) > 0 && len(out[i].obj.vector) > 0 {
				vec = 1 - cosineDistance(req.Hybrid.Vector, out[i].obj.vector)
			}
			fused := req.Hybrid.Alpha*vec + (1-req.Hybrid.Alpha)*kw
			out[i].distance = -fused
			out[i].hasScore = true
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].distance < out[j].distance })
		out = dropNoMatch(out)
	}

	return out
}

// dropNoMatch removes candidates with no keyword or vector relevance at
// all (fused score exactly zero), the same way a real BM25/hybrid search
// never returns objects sharing no terms with the query.
func dropNoMatch(scored []scoredObject) []scoredObject {
	kept := scored[:0]
	for _, so := range scored {
		if so.distance < 0 {
			kept = append(kept, so)
		}
	}
	return kept
}

// autocut keeps only the first tiers groups of distinct (rounded) distance
// values, per spec.md's autocut-by-distance-tier note.
func autocut(scored []scoredObject, tiers int) []scoredObject {
	if len(scored) == 0 {
		return scored
	}
	seenTiers := 0
	var last float64
	cut := len(scored)
	for i, so := range scored {
		if i == 0 {
			last = so.distance
			seenTiers = 1
			continue
		}
		if math.Abs(so.distance-last) > 1e-9 {
			seenTiers++
			last = so.distance
			if seenTiers > tiers {
				cut = i
				break
			}
		}
	}
	return scored[:cut]
}

func (s *Server) vectorOf(collection, uuid string) []float32 {
	objs, ok := s.st.objects[collection]
	if !ok {
		return nil
	}
	obj, ok := objs[uuid]
	if !ok {
		return nil
	}
	return obj.vector
}

func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 1
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// bm25Score is a coarse keyword-overlap score, not a real BM25 formula: it
// is only used to order results, and the hybrid alpha=0 property only
// requires that order to match a pure-keyword search's order.
func bm25Score(query string, props map[string]any) float64 {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}
	var score float64
	for _, v := range props {
		text, ok := v.(string)
		if !ok {
			continue
		}
		lower := strings.ToLower(text)
		for _, term := range terms {
			score += float64(strings.Count(lower, term))
		}
	}
	return score
}

func toResultItem(so scoredObject) rpc.SearchResultItem {
	item := rpc.SearchResultItem{
		NonRefProperties: so.obj.properties,
		Metadata: rpc.RawMetadata{
			UUID:        so.obj.uuid,
			UUIDPresent: true,
		},
	}
	if len(so.obj.vector) > 0 {
		item.Metadata.Vector = so.obj.vector
		item.Metadata.VectorPresent = true
	}
	if so.hasScore {
		item.Metadata.Distance = so.distance
		item.Metadata.DistancePresent = true
	}
	return item
}

func (s *Server) runBatchObjects(req *rpc.BatchObjectsRequest) *rpc.BatchObjectsReply {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	objs := s.st.collectionObjects(req.Collection)
	schema, hasSchema := s.st.collections[req.Collection]

	reply := &rpc.BatchObjectsReply{Results: make([]rpc.BatchItemOutcome, len(req.Objects))}
	for i, wire := range req.Objects {
		if wire.UUID == "" {
			reply.Results[i] = rpc.BatchItemOutcome{Errors: []string{"uuid is required"}}
			continue
		}
		if !models.ValidUUID(wire.UUID) {
			reply.Results[i] = rpc.BatchItemOutcome{Errors: []string{"uuid is not a valid UUID"}}
			continue
		}
		if unknown, ok := firstUnknownProperty(schema, hasSchema, wire.Properties); ok {
			reply.Results[i] = rpc.BatchItemOutcome{Errors: []string{fmt.Sprintf("unknown property %q", unknown)}}
			continue
		}
		objs[wire.UUID] = &storedObject{
			uuid:         wire.UUID,
			tenant:       req.Tenant,
			properties:   wire.Properties,
			vector:       wire.Vector,
			namedVectors: wire.NamedVectors,
		}
		reply.Results[i] = rpc.BatchItemOutcome{UUID: wire.UUID}
	}
	return reply
}

// firstUnknownProperty reports a property name on wire not declared in the
// collection's schema, in the order Go's map iteration happens to produce
// (insertion order isn't tracked on either side, so tests assert by set
// membership, not position), per scenario B's "unknown property" batch
// error.
func firstUnknownProperty(schema models.Collection, hasSchema bool, properties map[string]any) (string, bool) {
	if !hasSchema || len(schema.Properties) == 0 {
		return "", false
	}
	known := make(map[string]bool, len(schema.Properties))
	for _, p := range schema.Properties {
		known[p.Name] = true
	}
	for name := range properties {
		if !known[name] {
			return name, true
		}
	}
	return "", false
}

func (s *Server) runTenantsGet(req *rpc.TenantsGetRequest) *rpc.TenantsGetReply {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	tenants := s.st.tenants[req.Collection]
	reply := &rpc.TenantsGetReply{Tenants: make([]rpc.TenantWire, 0, len(tenants))}
	for _, t := range tenants {
		reply.Tenants = append(reply.Tenants, rpc.TenantWire{Name: t.Name, ActivityStatus: string(t.ActivityStatus.Normalize())})
	}
	return reply
}

func (s *Server) runAggregate(req *rpc.AggregateRequest) *rpc.AggregateReply {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.rpcAggregateCalls++

	objs := s.st.collectionObjects(req.Collection)
	var matched []map[string]any
	for _, obj := range objs {
		if req.Tenant != "" && obj.tenant != req.Tenant {
			continue
		}
		if req.Filters != nil && !matchFilters(req.Filters, obj.properties) {
			continue
		}
		matched = append(matched, obj.properties)
	}

	if req.GroupBy == nil {
		return &rpc.AggregateReply{Groups: []rpc.AggregateGroup{{Count: int64(len(matched))}}}
	}

	buckets := map[string]int64{}
	for _, props := range matched {
		key := fmt.Sprintf("%v", props[req.GroupBy.Property])
		buckets[key]++
	}
	groups := make([]rpc.AggregateGroup, 0, len(buckets))
	for key, count := range buckets {
		groups = append(groups, rpc.AggregateGroup{
			GroupedBy: map[string]any{req.GroupBy.Property: key},
			Count:     count,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return fmt.Sprint(groups[i].GroupedBy[req.GroupBy.Property]) < fmt.Sprint(groups[j].GroupedBy[req.GroupBy.Property])
	})
	return &rpc.AggregateReply{Groups: groups}
}
