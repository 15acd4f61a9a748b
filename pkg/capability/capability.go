// Package capability holds the connected server's parsed version and the
// hard/soft gating helpers version-sensitive operations consult before
// composing a request, per spec.md §4.3. Grounded on the teacher's version
// checks in pkg/api/server.go (ensureLeader and friends gate operations on
// cluster state before acting; here the gate is a parsed semver instead).
package capability

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cuemby/vecta-go/pkg/verrors"
)

// Version is a parsed server semver, major.minor.patch with any
// pre-release/build suffix discarded for comparison purposes.
type Version struct {
	Major, Minor, Patch int
	Raw                 string
}

// ParseVersion parses a version string like "1.24.1" or "1.24.1-rc.0".
func ParseVersion(s string) (Version, error) {
	raw := s
	s = strings.SplitN(s, "-", 2)[0]
	s = strings.SplitN(s, "+", 2)[0]
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("capability: malformed version %q", raw)
	}
	nums := make([]int, 3)
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Version{}, fmt.Errorf("capability: malformed version %q: %w", raw, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Raw: raw}, nil
}

// IsAtLeast reports whether v is >= major.minor.patch.
func (v Version) IsAtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

// String renders the version in major.minor.patch form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Gate wraps a connected server's Version and provides the hard/soft
// gating helpers used throughout the search, filter, and schema packages.
type Gate struct {
	Server Version
}

// NewGate builds a Gate from a raw server version string.
func NewGate(serverVersion string) (*Gate, error) {
	v, err := ParseVersion(serverVersion)
	if err != nil {
		return nil, err
	}
	return &Gate{Server: v}, nil
}

// RequireAtLeast hard-gates a feature: if the server is older than
// major.minor.patch it returns an UnsupportedFeatureError naming feature
// and the minimum required version, per spec.md §4.3.
func (g *Gate) RequireAtLeast(feature string, major, minor, patch int) error {
	if g.Server.IsAtLeast(major, minor, patch) {
		return nil
	}
	return &verrors.UnsupportedFeatureError{
		Feature:  feature,
		Actual:   g.Server.String(),
		Required: fmt.Sprintf("%d.%d.%d", major, minor, patch),
	}
}

// Transport identifies which wire encoding a soft-gated operation should
// use for the connected server.
type Transport int

const (
	TransportRPC Transport = iota
	TransportREST
)

// AggregateTransport soft-gates the aggregate endpoint: RPC from 1.29.0
// onward, legacy GraphQL/REST before, per spec.md §4.3.
func (g *Gate) AggregateTransport() Transport {
	if g.Server.IsAtLeast(1, 29, 0) {
		return TransportRPC
	}
	return TransportREST
}

// Named-vector and multi-target-vector gates used by the search builder.
const (
	namedVectorMajor, namedVectorMinor, namedVectorPatch       = 1, 24, 0
	multiTargetVectorMajor, multiTargetVectorMinor, multiTargetVectorPatch = 1, 26, 0
)

// RequireNamedVectors hard-gates the named-vector form of near_vector and
// multi-tenancy-aware vector configuration.
func (g *Gate) RequireNamedVectors() error {
	return g.RequireAtLeast("named_vectors", namedVectorMajor, namedVectorMinor, namedVectorPatch)
}

// RequireMultiTargetVectorJoin hard-gates the multi-name target_vector join
// form used by near_vector/near_text when searching across several named
// vectors at once.
func (g *Gate) RequireMultiTargetVectorJoin() error {
	return g.RequireAtLeast("multi_target_vector_join", multiTargetVectorMajor, multiTargetVectorMinor, multiTargetVectorPatch)
}

// refFilterMajor.refFilterMinor.refFilterPatch is the minimum server version accepting reference
// traversal filters at all (even over the legacy REST encoder).
const refFilterMajor, refFilterMinor, refFilterPatch = 1, 18, 0

// RequireReferenceFilters hard-gates reference-traversal filter nodes.
func (g *Gate) RequireReferenceFilters() error {
	return g.RequireAtLeast("reference_traversal_filter", refFilterMajor, refFilterMinor, refFilterPatch)
}
