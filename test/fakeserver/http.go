package fakeserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cuemby/vecta-go/pkg/backup"
	"github.com/cuemby/vecta-go/pkg/cluster"
	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/rbac"
	"github.com/cuemby/vecta-go/pkg/replication"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// newMux builds the REST control-plane router, matching the route map
// every client package in pkg/ sends requests against.
func (s *Server) newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/.well-known/ready", s.handleReady)
	mux.HandleFunc("GET /v1/.well-known/live", s.handleLive)
	mux.HandleFunc("GET /v1/nodes", s.handleNodes)
	mux.HandleFunc("GET /v1/meta", s.handleMeta)

	mux.HandleFunc("GET /v1/schema", s.handleSchemaList)
	mux.HandleFunc("POST /v1/schema", s.handleSchemaCreate)
	mux.HandleFunc("GET /v1/schema/{name}", s.handleSchemaGet)
	mux.HandleFunc("DELETE /v1/schema/{name}", s.handleSchemaDelete)

	mux.HandleFunc("GET /v1/aliases", s.handleAliasList)
	mux.HandleFunc("POST /v1/aliases", s.handleAliasCreate)
	mux.HandleFunc("GET /v1/aliases/{name}", s.handleAliasGet)
	mux.HandleFunc("PUT /v1/aliases/{name}", s.handleAliasUpdate)
	mux.HandleFunc("DELETE /v1/aliases/{name}", s.handleAliasDelete)

	mux.HandleFunc("POST /v1/objects", s.handleObjectInsert)
	mux.HandleFunc("GET /v1/objects/{collection}/{uuid}", s.handleObjectGet)
	mux.HandleFunc("HEAD /v1/objects/{collection}/{uuid}", s.handleObjectHead)
	mux.HandleFunc("DELETE /v1/objects/{collection}/{uuid}", s.handleObjectDelete)
	mux.HandleFunc("POST /v1/batch/references", s.handleBatchReferences)
	mux.HandleFunc("POST /v1/graphql", s.handleGraphQL)

	mux.HandleFunc("POST /v1/authz/roles", s.handleRoleCreate)
	mux.HandleFunc("GET /v1/authz/roles", s.handleRoleList)
	mux.HandleFunc("GET /v1/authz/roles/{name}", s.handleRoleGet)
	mux.HandleFunc("DELETE /v1/authz/roles/{name}", s.handleRoleDelete)
	mux.HandleFunc("POST /v1/authz/users/{user}/assign", s.handleAssignUser)
	mux.HandleFunc("GET /v1/authz/users/{user}/roles", s.handleRolesForUser)
	mux.HandleFunc("POST /v1/authz/groups/{type}/{group}/assign", s.handleAssignGroup)

	mux.HandleFunc("POST /v1/backups/{backend}", s.handleBackupCreate)
	mux.HandleFunc("GET /v1/backups/{backend}/{id}", s.handleBackupStatus)
	mux.HandleFunc("POST /v1/backups/{backend}/{id}/restore", s.handleRestoreStart)
	mux.HandleFunc("GET /v1/backups/{backend}/{id}/restore", s.handleRestoreStatus)
	mux.HandleFunc("DELETE /v1/backups/{backend}/{id}", s.handleBackupDelete)

	mux.HandleFunc("POST /v1/replication/replicate", s.handleReplicationStart)
	mux.HandleFunc("GET /v1/replication/replicate/{uuid}", s.handleReplicationGet)
	mux.HandleFunc("POST /v1/replication/replicate/{uuid}/cancel", s.handleReplicationCancel)
	mux.HandleFunc("DELETE /v1/replication/replicate/{uuid}", s.handleReplicationDelete)
	mux.HandleFunc("GET /v1/replication/sharding-state", s.handleShardingState)

	return mux
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.st.mu.Lock()
	notReady := s.st.notReady
	s.st.mu.Unlock()
	if notReady {
		writeJSON(w, 503, nil)
		return
	}
	writeJSON(w, 200, nil)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, nil)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	writeJSON(w, 200, struct {
		Nodes []cluster.NodeStatus `json:"nodes"`
	}{Nodes: s.st.nodes})
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	writeJSON(w, 200, cluster.Meta{Version: s.st.version, Hostname: "fakeserver"})
}

func (s *Server) handleSchemaList(w http.ResponseWriter, r *http.Request) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	out := make([]models.Collection, 0, len(s.st.collections))
	for _, c := range s.st.collections {
		out = append(out, c)
	}
	writeJSON(w, 200, struct {
		Collections []models.Collection `json:"collections"`
	}{Collections: out})
}

func (s *Server) handleSchemaCreate(w http.ResponseWriter, r *http.Request) {
	var col models.Collection
	if err := decodeBody(r, &col); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	s.st.mu.Lock()
	s.st.collections[col.Name] = col
	s.st.mu.Unlock()
	writeJSON(w, 200, col)
}

func (s *Server) handleSchemaGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.st.mu.Lock()
	col, ok := s.findCollectionLocked(name)
	s.st.mu.Unlock()
	if !ok {
		writeJSON(w, 404, nil)
		return
	}
	writeJSON(w, 200, col)
}

func (s *Server) handleSchemaDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.st.mu.Lock()
	if key, ok := s.findCollectionKeyLocked(name); ok {
		delete(s.st.collections, key)
		delete(s.st.objects, key)
		delete(s.st.tenants, key)
	}
	s.st.mu.Unlock()
	writeJSON(w, 200, nil)
}

// findCollectionLocked looks a collection up case-insensitively, matching
// the admin-path comparison the schema client documents.
func (s *Server) findCollectionLocked(name string) (models.Collection, bool) {
	key, ok := s.findCollectionKeyLocked(name)
	if !ok {
		return models.Collection{}, false
	}
	return s.st.collections[key], true
}

func (s *Server) findCollectionKeyLocked(name string) (string, bool) {
	for key := range s.st.collections {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

func (s *Server) handleAliasList(w http.ResponseWriter, r *http.Request) {
	filterCollection := r.URL.Query().Get("class")
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	var out []aliasWire
	for name, target := range s.st.aliases {
		if filterCollection != "" && target != filterCollection {
			continue
		}
		out = append(out, aliasWire{Alias: name, Class: target})
	}
	writeJSON(w, 200, struct {
		Aliases []aliasWire `json:"aliases"`
	}{Aliases: out})
}

type aliasWire struct {
	Alias string `json:"alias"`
	Class string `json:"class"`
}

func (s *Server) handleAliasCreate(w http.ResponseWriter, r *http.Request) {
	var in aliasWire
	if err := decodeBody(r, &in); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	s.st.mu.Lock()
	s.st.aliases[in.Alias] = in.Class
	s.st.mu.Unlock()
	writeJSON(w, 200, in)
}

func (s *Server) handleAliasGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.st.mu.Lock()
	target, ok := s.st.aliases[name]
	s.st.mu.Unlock()
	if !ok {
		writeJSON(w, 404, nil)
		return
	}
	writeJSON(w, 200, aliasWire{Alias: name, Class: target})
}

func (s *Server) handleAliasUpdate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var body struct {
		Class string `json:"class"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	s.st.mu.Lock()
	s.st.aliases[name] = body.Class
	s.st.mu.Unlock()
	writeJSON(w, 200, nil)
}

func (s *Server) handleAliasDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.st.mu.Lock()
	delete(s.st.aliases, name)
	s.st.mu.Unlock()
	writeJSON(w, 204, nil)
}

func (s *Server) handleObjectInsert(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Class      string         `json:"class"`
		ID         string         `json:"id"`
		Properties map[string]any `json:"properties"`
		Tenant     string         `json:"tenant"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	s.st.mu.Lock()
	objs := s.st.collectionObjects(body.Class)
	objs[body.ID] = &storedObject{uuid: body.ID, tenant: body.Tenant, properties: body.Properties}
	s.st.mu.Unlock()
	writeJSON(w, 200, nil)
}

func (s *Server) handleObjectGet(w http.ResponseWriter, r *http.Request) {
	collection, uuid := r.PathValue("collection"), r.PathValue("uuid")
	params := map[string]string{}
	for k := range r.URL.Query() {
		params[k] = r.URL.Query().Get(k)
	}
	s.st.mu.Lock()
	s.st.lastObjectParams = params
	obj, ok := s.st.collectionObjects(collection)[uuid]
	s.st.mu.Unlock()
	if !ok {
		writeJSON(w, 404, nil)
		return
	}
	if tenant := params["tenant"]; tenant != "" && obj.tenant != tenant {
		writeJSON(w, 404, nil)
		return
	}
	writeJSON(w, 200, struct {
		Class            string               `json:"class"`
		ID               string               `json:"id"`
		Properties       map[string]any       `json:"properties"`
		Tenant           string               `json:"tenant"`
		Vector           []float32            `json:"vector,omitempty"`
		Vectors          map[string][]float32 `json:"vectors,omitempty"`
		CreationTimeUnix *int64               `json:"creationTimeUnix,omitempty"`
	}{
		Class:      collection,
		ID:         obj.uuid,
		Properties: obj.properties,
		Tenant:     obj.tenant,
		Vector:     obj.vector,
		Vectors:    obj.namedVectors,
	})
}

func (s *Server) handleObjectHead(w http.ResponseWriter, r *http.Request) {
	collection, uuid := r.PathValue("collection"), r.PathValue("uuid")
	s.st.mu.Lock()
	_, ok := s.st.collectionObjects(collection)[uuid]
	s.st.mu.Unlock()
	if !ok {
		w.WriteHeader(404)
		return
	}
	w.WriteHeader(204)
}

func (s *Server) handleObjectDelete(w http.ResponseWriter, r *http.Request) {
	collection, uuid := r.PathValue("collection"), r.PathValue("uuid")
	s.st.mu.Lock()
	delete(s.st.collectionObjects(collection), uuid)
	s.st.mu.Unlock()
	w.WriteHeader(204)
}

func (s *Server) handleBatchReferences(w http.ResponseWriter, r *http.Request) {
	var refs []struct {
		From string   `json:"from"`
		To   []string `json:"to"`
	}
	if err := decodeBody(r, &refs); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	writeJSON(w, 200, nil)
}

// handleGraphQL serves the one query shape pkg/collection's legacy
// aggregateGraphQL path composes: `{Aggregate{<Collection>{meta{count}}}}`.
func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	const prefix, suffix = "{Aggregate{", "{meta{count}}}}"
	collection := strings.TrimSuffix(strings.TrimPrefix(body.Query, prefix), suffix)

	s.st.mu.Lock()
	count := len(s.st.collectionObjects(collection))
	s.st.graphQLAggregateCalls++
	s.st.mu.Unlock()

	type meta struct {
		Count int64 `json:"count"`
	}
	type aggregateEntry struct {
		Meta meta `json:"meta"`
	}
	writeJSON(w, 200, struct {
		Data struct {
			Aggregate map[string][]aggregateEntry `json:"Aggregate"`
		} `json:"data"`
	}{
		Data: struct {
			Aggregate map[string][]aggregateEntry `json:"Aggregate"`
		}{
			Aggregate: map[string][]aggregateEntry{collection: {{Meta: meta{Count: int64(count)}}}},
		},
	})
}

func (s *Server) handleRoleCreate(w http.ResponseWriter, r *http.Request) {
	var role rbac.Role
	if err := decodeBody(r, &role); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	s.st.mu.Lock()
	s.st.roles[role.Name] = role
	s.st.mu.Unlock()
	writeJSON(w, 201, role)
}

func (s *Server) handleRoleList(w http.ResponseWriter, r *http.Request) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	out := make([]rbac.Role, 0, len(s.st.roles))
	for _, role := range s.st.roles {
		out = append(out, role)
	}
	writeJSON(w, 200, out)
}

func (s *Server) handleRoleGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.st.mu.Lock()
	role, ok := s.st.roles[name]
	s.st.mu.Unlock()
	if !ok {
		writeJSON(w, 404, nil)
		return
	}
	writeJSON(w, 200, role)
}

func (s *Server) handleRoleDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.st.mu.Lock()
	delete(s.st.roles, name)
	s.st.mu.Unlock()
	writeJSON(w, 204, nil)
}

func (s *Server) handleAssignUser(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	var body struct {
		Roles []string `json:"roles"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	s.st.mu.Lock()
	s.st.userRoles[user] = append(s.st.userRoles[user], body.Roles...)
	s.st.mu.Unlock()
	writeJSON(w, 200, nil)
}

func (s *Server) handleRolesForUser(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	s.st.mu.Lock()
	roles := append([]string(nil), s.st.userRoles[user]...)
	s.st.mu.Unlock()
	writeJSON(w, 200, roles)
}

func (s *Server) handleAssignGroup(w http.ResponseWriter, r *http.Request) {
	groupType, group := r.PathValue("type"), r.PathValue("group")
	key := groupType + "/" + group
	var body struct {
		Roles []string `json:"roles"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	s.st.mu.Lock()
	s.st.groupRoles[key] = append(s.st.groupRoles[key], body.Roles...)
	s.st.mu.Unlock()
	writeJSON(w, 200, nil)
}

func (s *Server) handleBackupCreate(w http.ResponseWriter, r *http.Request) {
	backend := r.PathValue("backend")
	var body struct {
		ID      string   `json:"id"`
		Include []string `json:"include"`
		Exclude []string `json:"exclude"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	job := &backup.Job{ID: body.ID, Backend: backend, Status: backup.StatusSuccess, Include: body.Include, Exclude: body.Exclude}
	s.st.mu.Lock()
	if _, ok := s.st.backups[backend]; !ok {
		s.st.backups[backend] = map[string]*backup.Job{}
	}
	s.st.backups[backend][body.ID] = job
	s.st.mu.Unlock()
	writeJSON(w, 200, job)
}

func (s *Server) handleBackupStatus(w http.ResponseWriter, r *http.Request) {
	backend, id := r.PathValue("backend"), r.PathValue("id")
	s.st.mu.Lock()
	job, ok := s.st.backups[backend][id]
	s.st.mu.Unlock()
	if !ok {
		writeJSON(w, 404, nil)
		return
	}
	writeJSON(w, 200, job)
}

func (s *Server) handleBackupDelete(w http.ResponseWriter, r *http.Request) {
	backend, id := r.PathValue("backend"), r.PathValue("id")
	s.st.mu.Lock()
	delete(s.st.backups[backend], id)
	s.st.mu.Unlock()
	writeJSON(w, 204, nil)
}

func (s *Server) handleRestoreStart(w http.ResponseWriter, r *http.Request) {
	backend, id := r.PathValue("backend"), r.PathValue("id")
	var body struct {
		Include []string `json:"include"`
		Exclude []string `json:"exclude"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	job := &backup.Job{ID: id, Backend: backend, Status: backup.StatusSuccess, Include: body.Include, Exclude: body.Exclude}
	s.st.mu.Lock()
	if _, ok := s.st.restores[backend]; !ok {
		s.st.restores[backend] = map[string]*backup.Job{}
	}
	s.st.restores[backend][id] = job
	s.st.mu.Unlock()
	writeJSON(w, 200, job)
}

func (s *Server) handleRestoreStatus(w http.ResponseWriter, r *http.Request) {
	backend, id := r.PathValue("backend"), r.PathValue("id")
	s.st.mu.Lock()
	job, ok := s.st.restores[backend][id]
	s.st.mu.Unlock()
	if !ok {
		writeJSON(w, 404, nil)
		return
	}
	writeJSON(w, 200, job)
}

func (s *Server) handleReplicationStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Collection   string `json:"collection"`
		Shard        string `json:"shard"`
		SourceNode   string `json:"source_node"`
		TargetNode   string `json:"target_node"`
		TransferType string `json:"transfer_type"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, 400, nil)
		return
	}
	s.st.mu.Lock()
	op := &replication.Operation{
		UUID:         uuid.NewString(),
		Collection:   body.Collection,
		Shard:        body.Shard,
		SourceNode:   body.SourceNode,
		TargetNode:   body.TargetNode,
		TransferType: replication.TransferType(body.TransferType),
		Status:       "REGISTERED",
	}
	s.st.replicationOps[op.UUID] = op
	s.st.mu.Unlock()
	writeJSON(w, 201, op)
}

func (s *Server) handleReplicationGet(w http.ResponseWriter, r *http.Request) {
	uuid := r.PathValue("uuid")
	s.st.mu.Lock()
	op, ok := s.st.replicationOps[uuid]
	s.st.mu.Unlock()
	if !ok {
		writeJSON(w, 404, nil)
		return
	}
	writeJSON(w, 200, op)
}

func (s *Server) handleReplicationCancel(w http.ResponseWriter, r *http.Request) {
	uuid := r.PathValue("uuid")
	s.st.mu.Lock()
	if op, ok := s.st.replicationOps[uuid]; ok {
		op.Status = "CANCELLED"
	}
	s.st.mu.Unlock()
	writeJSON(w, 200, nil)
}

func (s *Server) handleReplicationDelete(w http.ResponseWriter, r *http.Request) {
	uuid := r.PathValue("uuid")
	s.st.mu.Lock()
	delete(s.st.replicationOps, uuid)
	s.st.mu.Unlock()
	writeJSON(w, 204, nil)
}

func (s *Server) handleShardingState(w http.ResponseWriter, r *http.Request) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	writeJSON(w, 200, s.st.shardStates)
}
