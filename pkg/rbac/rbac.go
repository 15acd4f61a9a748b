// Package rbac is a thin CRUD executor over the server's role/user/group
// authorization endpoints, per spec.md §6 (`/v1/authz/roles*`,
// `/v1/authz/users*`, `/v1/authz/groups/{type}*`). It carries no business
// logic: permissions travel as a flat list in both directions, and reads
// return them in the order the server sends, not grouped by domain.
package rbac

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/transport"
)

// PermissionDomain is one of the resource domains a permission may cover.
type PermissionDomain string

const (
	DomainCollections PermissionDomain = "collections"
	DomainData        PermissionDomain = "data"
	DomainRoles       PermissionDomain = "roles"
	DomainUsers       PermissionDomain = "users"
	DomainCluster     PermissionDomain = "cluster"
	DomainNodes       PermissionDomain = "nodes"
	DomainBackups     PermissionDomain = "backups"
)

// Permission is one typed action grant over a domain.
type Permission struct {
	Domain PermissionDomain `json:"domain"`
	Action string           `json:"action"`
	Scope  string           `json:"scope,omitempty"`
}

// Role bundles permissions under a name. Permissions is a flat list on
// create and when read back; the client does not regroup it by domain.
type Role struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// Client wraps the HTTP control plane for RBAC CRUD.
type Client struct {
	http *transport.HTTP
}

// New builds an RBAC client.
func New(http *transport.HTTP) *Client {
	return &Client{http: http}
}

// CreateRole creates a role with the given permissions, flattened on the
// wire as spec.md requires.
func (c *Client) CreateRole(ctx context.Context, role Role) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       "/authz/roles",
		Body:       role,
		OKStatus:   []int{200, 201},
		ErrorLabel: "create role",
	})
	return err
}

// GetRole fetches a role by name, with its permissions as the flat list
// the server returns (not grouped by domain).
func (c *Client) GetRole(ctx context.Context, name string) (Role, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/authz/roles/%s", name),
		OKStatus:   []int{200},
		ErrorLabel: "get role",
	})
	if err != nil {
		return Role{}, err
	}
	var out Role
	if err := resp.JSON(&out); err != nil {
		return Role{}, fmt.Errorf("rbac: decode role: %w", err)
	}
	return out, nil
}

// ListRoles lists every role.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       "/authz/roles",
		OKStatus:   []int{200},
		ErrorLabel: "list roles",
	})
	if err != nil {
		return nil, err
	}
	var out []Role
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("rbac: decode roles: %w", err)
	}
	return out, nil
}

// DeleteRole removes a role.
func (c *Client) DeleteRole(ctx context.Context, name string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "DELETE",
		Path:       fmt.Sprintf("/authz/roles/%s", name),
		OKStatus:   []int{204},
		ErrorLabel: "delete role",
	})
	return err
}

// AssignRolesToUser grants roles to a user.
func (c *Client) AssignRolesToUser(ctx context.Context, user string, roles []string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       fmt.Sprintf("/authz/users/%s/assign", user),
		Body:       map[string][]string{"roles": roles},
		OKStatus:   []int{200},
		ErrorLabel: "assign roles to user",
	})
	return err
}

// RolesForUser lists the role names assigned to a user.
func (c *Client) RolesForUser(ctx context.Context, user string) ([]string, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/authz/users/%s/roles", user),
		OKStatus:   []int{200},
		ErrorLabel: "get user roles",
	})
	if err != nil {
		return nil, err
	}
	var out []string
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("rbac: decode user roles: %w", err)
	}
	return out, nil
}

// GroupType distinguishes OIDC from other group backends the server may
// federate against.
type GroupType string

const GroupTypeOIDC GroupType = "oidc"

// AssignRolesToGroup grants roles to a federated group.
func (c *Client) AssignRolesToGroup(ctx context.Context, groupType GroupType, group string, roles []string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       fmt.Sprintf("/authz/groups/%s/%s/assign", groupType, group),
		Body:       map[string][]string{"roles": roles},
		OKStatus:   []int{200},
		ErrorLabel: "assign roles to group",
	})
	return err
}
