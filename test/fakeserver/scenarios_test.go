package fakeserver_test

import (
	"context"
	"testing"

	"github.com/cuemby/vecta-go/pkg/batch"
	"github.com/cuemby/vecta-go/pkg/capability"
	"github.com/cuemby/vecta-go/pkg/collection"
	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/rpc"
	"github.com/cuemby/vecta-go/pkg/vconfig"
	"github.com/cuemby/vecta-go/pkg/vecta"
	"github.com/cuemby/vecta-go/test/fakeserver"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unboundedGate is used only to build search requests outside a live
// client in tests that don't need capability gating itself; the BM25 and
// hybrid probes these scenarios exercise have no gate-checked fields.
func unboundedGate(t *testing.T) *capability.Gate {
	t.Helper()
	gate, err := capability.NewGate("99.0.0")
	require.NoError(t, err)
	return gate
}

func connectClient(t *testing.T, fs *fakeserver.Server) *vecta.Client {
	t.Helper()
	cfg := vconfig.NewConnectConfig(fs.URL(),
		vconfig.WithAPIKey("test-key"),
		vconfig.WithGRPC(fs.GRPCAddr(), false),
	)
	c := vecta.New(cfg)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

// Scenario A: create a collection, insert one object, get it back by
// UUID, properties round trip. Also exercises testable property 1 (the
// round trip of UUIDs).
func TestScenarioACreateInsertGet(t *testing.T) {
	fs := fakeserver.New()
	defer fs.Close()

	c := connectClient(t, fs)
	ctx := context.Background()

	schemaClient, err := c.Schema()
	require.NoError(t, err)
	require.NoError(t, schemaClient.Create(ctx, models.Collection{
		Name:       "Test",
		Properties: []models.Property{{Name: "name", DataType: models.DataTypeText}},
	}))

	coll, err := c.Collection("Test")
	require.NoError(t, err)

	uuid, err := coll.Insert(ctx, models.Object{
		Properties: map[string]models.PropertyValue{
			"name": {Kind: models.PropertyValueText, Text: "hello"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, uuid)

	got, err := coll.GetByID(ctx, uuid)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uuid, got.UUID)
	assert.Equal(t, "hello", got.Properties["name"].Text)
}

// Scenario B, and testable properties 2 (batch partition law) and 3
// (order preservation): a batch of three objects, two of which carry an
// undeclared property, submitted through the production batch engine
// (Collection.Batch → Engine.AddObject/Flush), exactly the path a real
// caller ingesting data takes.
func TestScenarioBBatchPartitionLaw(t *testing.T) {
	fs := fakeserver.New()
	defer fs.Close()

	fs.PutCollection(models.Collection{
		Name:       "Article",
		Properties: []models.Property{{Name: "name", DataType: models.DataTypeText}},
	})

	c := connectClient(t, fs)
	ctx := context.Background()

	coll, err := c.Collection("Article")
	require.NoError(t, err)

	eng := coll.Batch(batch.Config{
		NumWorkers: 1,
		// Schema-validation failures ("unknown property") are not
		// transient, so they're excluded from the default retry path.
		Filter: batch.ErrorFilter{Exclude: []string{"unknown property"}},
	})

	uuids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	idx0, err := eng.AddObject(ctx, models.Object{
		UUID:       uuids[0],
		Properties: map[string]models.PropertyValue{"wrong_name": {Kind: models.PropertyValueText, Text: "x"}},
	})
	require.NoError(t, err)
	idx1, err := eng.AddObject(ctx, models.Object{
		UUID:       uuids[1],
		Properties: map[string]models.PropertyValue{"name": {Kind: models.PropertyValueText, Text: "ok"}},
	})
	require.NoError(t, err)
	idx2, err := eng.AddObject(ctx, models.Object{
		UUID:       uuids[2],
		Properties: map[string]models.PropertyValue{"wrong_name": {Kind: models.PropertyValueText, Text: "y"}},
	})
	require.NoError(t, err)

	result, err := eng.Flush(ctx, true)
	require.NoError(t, err)

	assert.Len(t, result.AllResponses, 3)
	assert.True(t, result.HasErrors())
	assert.ElementsMatch(t, []int{idx0, idx2}, keys(result.Errors))
	assert.ElementsMatch(t, []int{idx1}, keysStr(result.UUIDs))

	// order preservation: response i corresponds to request i regardless
	// of how the server iterated.
	assert.Equal(t, uuids[idx1], result.AllResponses[idx1].UUID)
	assert.NotNil(t, result.AllResponses[idx0].Err)
	assert.NotNil(t, result.AllResponses[idx2].Err)
}

func keys(m map[int]*models.BatchItemError) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysStr(m map[int]string) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Scenario C and testable property 6: an object inserted under tenant T1
// is invisible to a handle scoped to tenant T2.
func TestScenarioCTenantIsolation(t *testing.T) {
	fs := fakeserver.New()
	defer fs.Close()

	fs.PutCollection(models.Collection{Name: "Tenanted", MultiTenancyEnabled: true})
	fs.PutTenant("Tenanted", models.Tenant{Name: "T1"})
	fs.PutTenant("Tenanted", models.Tenant{Name: "T2"})

	c := connectClient(t, fs)
	ctx := context.Background()

	coll, err := c.Collection("Tenanted")
	require.NoError(t, err)

	uuid, err := coll.WithTenant("T1").Insert(ctx, models.Object{
		Properties: map[string]models.PropertyValue{"name": {Kind: models.PropertyValueText, Text: "only-in-t1"}},
	})
	require.NoError(t, err)

	gotSameTenant, err := coll.WithTenant("T1").GetByID(ctx, uuid)
	require.NoError(t, err)
	require.NotNil(t, gotSameTenant)

	gotOtherTenant, err := coll.WithTenant("T2").GetByID(ctx, uuid)
	require.NoError(t, err)
	assert.Nil(t, gotOtherTenant)
}

// Testable property 7: every request through a handle built with a
// consistency level carries that level in the outgoing request.
func TestConsistencyLevelPropagation(t *testing.T) {
	fs := fakeserver.New()
	defer fs.Close()

	c := connectClient(t, fs)
	ctx := context.Background()

	coll, err := c.Collection("Widget")
	require.NoError(t, err)

	uuid, err := coll.Insert(ctx, models.Object{Properties: map[string]models.PropertyValue{}})
	require.NoError(t, err)

	_, err = coll.WithConsistencyLevel(collection.ConsistencyQuorum).GetByID(ctx, uuid)
	require.NoError(t, err)

	assert.Equal(t, "QUORUM", fs.LastObjectParams()["consistency"])
}

// Scenario D: hybrid search with alpha=0 reduces to pure BM25 ordering —
// exactly one of two objects shares a term with the query, so hybrid
// returns exactly that one object, the first inserted.
func TestScenarioDHybridAlphaZeroEqualsBM25(t *testing.T) {
	fs := fakeserver.New()
	defer fs.Close()

	fs.PutObject("Phrase", "11111111-1111-1111-1111-111111111111", "", map[string]any{"name": "some name"}, nil)
	fs.PutObject("Phrase", "22222222-2222-2222-2222-222222222222", "", map[string]any{"name": "other word"}, nil)

	c := connectClient(t, fs)
	ctx := context.Background()

	coll, err := c.Collection("Phrase")
	require.NoError(t, err)

	req, err := coll.Query().Hybrid(rpc.HybridSearch{Query: "name", Alpha: 0}).Build(unboundedGate(t))
	require.NoError(t, err)

	decoded, err := coll.Search(ctx, req)
	require.NoError(t, err)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", decoded.Results[0].Object.UUID)
}

// Scenario E: autocut by distance tier. Four objects mention "rain" three
// times, four mention it once; auto_limit=1 keeps only the higher tier.
func TestScenarioEAutocutByDistanceTier(t *testing.T) {
	fs := fakeserver.New()
	defer fs.Close()

	for i := 0; i < 4; i++ {
		fs.PutObject("Weather", newUUID(t), "", map[string]any{"name": "rain rain rain"}, nil)
	}
	for i := 4; i < 8; i++ {
		fs.PutObject("Weather", newUUID(t), "", map[string]any{"name": "rain"}, nil)
	}

	c := connectClient(t, fs)
	ctx := context.Background()

	coll, err := c.Collection("Weather")
	require.NoError(t, err)

	req, err := coll.Query().BM25(rpc.BM25Search{Query: "rain"}).AutoLimit(1).Build(unboundedGate(t))
	require.NoError(t, err)

	decoded, err := coll.Search(ctx, req)
	require.NoError(t, err)
	assert.Len(t, decoded.Results, 4)
}

// Scenario F: aggregate path selection. A server below the RPC aggregate
// cutoff is queried over GraphQL; a server at or above it is queried over
// RPC. Both report the same total count.
func TestScenarioFAggregatePathSelection(t *testing.T) {
	fs := fakeserver.New()
	defer fs.Close()

	for i := 0; i < 3; i++ {
		fs.PutObject("Counted", newUUID(t), "", map[string]any{"name": "x"}, nil)
	}

	fs.SetVersion("1.24.0")
	oldClient := connectClient(t, fs)
	oldColl, err := oldClient.Collection("Counted")
	require.NoError(t, err)
	oldResult, err := oldColl.AggregateOverAll(context.Background())
	require.NoError(t, err)

	fs.SetVersion("1.29.0")
	newClient := connectClient(t, fs)
	newColl, err := newClient.Collection("Counted")
	require.NoError(t, err)
	newResult, err := newColl.AggregateOverAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, oldResult.TotalCount, newResult.TotalCount)

	graphQLCalls, rpcCalls := fs.AggregateCallCounts()
	assert.Equal(t, 1, graphQLCalls)
	assert.Equal(t, 1, rpcCalls)
}

func newUUID(t *testing.T) string {
	t.Helper()
	return uuid.NewString()
}
