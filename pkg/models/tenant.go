package models

import "github.com/cuemby/vecta-go/pkg/verrors"

// TenantActivityStatus is a tenant's lifecycle state. HOT and COLD are
// legacy aliases kept for back-compatibility with older server releases,
// per spec.md §3.
type TenantActivityStatus string

const (
	TenantActive   TenantActivityStatus = "ACTIVE"
	TenantInactive TenantActivityStatus = "INACTIVE"
	TenantOffloaded TenantActivityStatus = "OFFLOADED"

	// Legacy aliases. Accepted as input, normalized on the way out.
	TenantHot  TenantActivityStatus = "HOT"
	TenantCold TenantActivityStatus = "COLD"

	// Read-only states a server may report but a caller may never set.
	tenantOffloading     TenantActivityStatus = "OFFLOADING"
	tenantOnloading       TenantActivityStatus = "ONLOADING"
)

// Normalize maps legacy aliases to their canonical status.
func (s TenantActivityStatus) Normalize() TenantActivityStatus {
	switch s {
	case TenantHot:
		return TenantActive
	case TenantCold:
		return TenantInactive
	default:
		return s
	}
}

// writableStatuses is a user supplies on create/update.
var writableStatuses = map[TenantActivityStatus]bool{
	TenantActive:   true,
	TenantInactive: true,
	TenantOffloaded: true,
	TenantHot:      true,
	TenantCold:     true,
}

// Tenant is a named partition of a multi-tenant collection.
type Tenant struct {
	Name           string
	ActivityStatus TenantActivityStatus
}

// ValidateWritable rejects read-only statuses (OFFLOADING, ONLOADING) on a
// create or update call, per spec.md §3.
func ValidateWritable(status TenantActivityStatus) error {
	if writableStatuses[status] {
		return nil
	}
	return &verrors.InvalidInputError{
		Field:  "activity_status",
		Reason: "status " + string(status) + " is read-only and cannot be set by a caller",
	}
}

// TenantUpdateChunkSize is the maximum batch the client sends per tenant
// update call; larger sets are chunked client-side, per spec.md §3.
const TenantUpdateChunkSize = 100

// ChunkTenants splits tenants into groups of at most TenantUpdateChunkSize.
func ChunkTenants(tenants []Tenant) [][]Tenant {
	if len(tenants) == 0 {
		return nil
	}
	var chunks [][]Tenant
	for len(tenants) > 0 {
		n := TenantUpdateChunkSize
		if n > len(tenants) {
			n = len(tenants)
		}
		chunks = append(chunks, tenants[:n])
		tenants = tenants[n:]
	}
	return chunks
}
