package openrouter

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PaginationOptions pages a listing. Zero values omit the parameter.
type PaginationOptions struct {
	Offset int
	Limit  int
}

func (p *PaginationOptions) values() url.Values {
	if p == nil {
		return nil
	}
	query := url.Values{}
	if p.Offset > 0 {
		query.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}
	if len(query) == 0 {
		return nil
	}
	return query
}

// Guardrail is a spend and routing policy applied to assigned keys and
// organization members.
type Guardrail struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	LimitUSD         *float64 `json:"limit_usd,omitempty"`
	ResetInterval    string   `json:"reset_interval,omitempty"`
	AllowedProviders []string `json:"allowed_providers,omitempty"`
	AllowedModels    []string `json:"allowed_models,omitempty"`
	EnforceZDR       *bool    `json:"enforce_zdr,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
}

// GuardrailList is one page of guardrails.
type GuardrailList struct {
	Data       []Guardrail `json:"data"`
	TotalCount int         `json:"total_count"`
}

// CreateGuardrailRequest names a new guardrail and its policy.
type CreateGuardrailRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	LimitUSD         *float64 `json:"limit_usd,omitempty"`
	ResetInterval    string   `json:"reset_interval,omitempty"`
	AllowedProviders []string `json:"allowed_providers,omitempty"`
	AllowedModels    []string `json:"allowed_models,omitempty"`
	EnforceZDR       *bool    `json:"enforce_zdr,omitempty"`
}

// UpdateGuardrailRequest changes a guardrail. Nil and empty fields are
// left unchanged.
type UpdateGuardrailRequest struct {
	Name             *string  `json:"name,omitempty"`
	Description      *string  `json:"description,omitempty"`
	LimitUSD         *float64 `json:"limit_usd,omitempty"`
	ResetInterval    *string  `json:"reset_interval,omitempty"`
	AllowedProviders []string `json:"allowed_providers,omitempty"`
	AllowedModels    []string `json:"allowed_models,omitempty"`
	EnforceZDR       *bool    `json:"enforce_zdr,omitempty"`
}

// Guardrail endpoints authenticate with the provisioning key when one is
// configured, falling back to the regular API key.

// ListGuardrails returns one page of guardrails.
func (c *Client) ListGuardrails(ctx context.Context, page *PaginationOptions) (*GuardrailList, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/guardrails", page.values(), nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out GuardrailList
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateGuardrail creates a guardrail.
func (c *Client) CreateGuardrail(ctx context.Context, create *CreateGuardrailRequest) (*Guardrail, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/guardrails", nil, create, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out apiResponse[Guardrail]
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	c.logger.Info("guardrail created", "id", out.Data.ID, "name", out.Data.Name)
	return &out.Data, nil
}

// GetGuardrail returns one guardrail by id.
func (c *Client) GetGuardrail(ctx context.Context, id string) (*Guardrail, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/guardrails/"+url.PathEscape(id), nil, nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out apiResponse[Guardrail]
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateGuardrail applies the non-nil fields of update to a guardrail.
func (c *Client) UpdateGuardrail(ctx context.Context, id string, update *UpdateGuardrailRequest) (*Guardrail, error) {
	req, err := c.newRequest(ctx, http.MethodPatch, "/guardrails/"+url.PathEscape(id), nil, update, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out apiResponse[Guardrail]
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteGuardrail removes a guardrail. Assignments to it are released.
func (c *Client) DeleteGuardrail(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/guardrails/"+url.PathEscape(id), nil, nil, c.provisioningOrAPIKey())
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return err
	}

	c.logger.Info("guardrail deleted", "id", id)
	return nil
}

// GuardrailKeyAssignment binds one managed key to a guardrail.
type GuardrailKeyAssignment struct {
	ID          string `json:"id"`
	KeyHash     string `json:"key_hash"`
	GuardrailID string `json:"guardrail_id"`
	KeyName     string `json:"key_name"`
	KeyLabel    string `json:"key_label"`
	AssignedBy  string `json:"assigned_by"`
	CreatedAt   string `json:"created_at"`
}

// GuardrailMemberAssignment binds one organization member to a guardrail.
type GuardrailMemberAssignment struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	GuardrailID    string `json:"guardrail_id"`
	AssignedBy     string `json:"assigned_by"`
	CreatedAt      string `json:"created_at"`
}

// GuardrailKeyAssignments is one page of key assignments.
type GuardrailKeyAssignments struct {
	Data       []GuardrailKeyAssignment `json:"data"`
	TotalCount int                      `json:"total_count"`
}

// GuardrailMemberAssignments is one page of member assignments.
type GuardrailMemberAssignments struct {
	Data       []GuardrailMemberAssignment `json:"data"`
	TotalCount int                         `json:"total_count"`
}

type bulkKeyAssignment struct {
	KeyHashes []string `json:"key_hashes"`
}

type bulkMemberAssignment struct {
	MemberUserIDs []string `json:"member_user_ids"`
}

type assignedCount struct {
	AssignedCount int `json:"assigned_count"`
}

type unassignedCount struct {
	UnassignedCount int `json:"unassigned_count"`
}

// ListGuardrailKeyAssignments returns the keys assigned to one guardrail.
func (c *Client) ListGuardrailKeyAssignments(ctx context.Context, id string, page *PaginationOptions) (*GuardrailKeyAssignments, error) {
	path := "/guardrails/" + url.PathEscape(id) + "/assignments/keys"
	req, err := c.newRequest(ctx, http.MethodGet, path, page.values(), nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out GuardrailKeyAssignments
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignKeysToGuardrail assigns the keys identified by their hashes to a
// guardrail and returns how many assignments were made.
func (c *Client) AssignKeysToGuardrail(ctx context.Context, id string, keyHashes []string) (int, error) {
	path := "/guardrails/" + url.PathEscape(id) + "/assignments/keys"
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &bulkKeyAssignment{KeyHashes: keyHashes}, c.provisioningOrAPIKey())
	if err != nil {
		return 0, err
	}

	var out assignedCount
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.AssignedCount, nil
}

// UnassignKeysFromGuardrail removes key assignments from a guardrail and
// returns how many were removed.
func (c *Client) UnassignKeysFromGuardrail(ctx context.Context, id string, keyHashes []string) (int, error) {
	path := "/guardrails/" + url.PathEscape(id) + "/assignments/keys/remove"
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &bulkKeyAssignment{KeyHashes: keyHashes}, c.provisioningOrAPIKey())
	if err != nil {
		return 0, err
	}

	var out unassignedCount
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.UnassignedCount, nil
}

// ListGuardrailMemberAssignments returns the members assigned to one
// guardrail.
func (c *Client) ListGuardrailMemberAssignments(ctx context.Context, id string, page *PaginationOptions) (*GuardrailMemberAssignments, error) {
	path := "/guardrails/" + url.PathEscape(id) + "/assignments/members"
	req, err := c.newRequest(ctx, http.MethodGet, path, page.values(), nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out GuardrailMemberAssignments
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignMembersToGuardrail assigns organization members by user id to a
// guardrail and returns how many assignments were made.
func (c *Client) AssignMembersToGuardrail(ctx context.Context, id string, memberUserIDs []string) (int, error) {
	path := "/guardrails/" + url.PathEscape(id) + "/assignments/members"
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &bulkMemberAssignment{MemberUserIDs: memberUserIDs}, c.provisioningOrAPIKey())
	if err != nil {
		return 0, err
	}

	var out assignedCount
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.AssignedCount, nil
}

// UnassignMembersFromGuardrail removes member assignments from a guardrail
// and returns how many were removed.
func (c *Client) UnassignMembersFromGuardrail(ctx context.Context, id string, memberUserIDs []string) (int, error) {
	path := "/guardrails/" + url.PathEscape(id) + "/assignments/members/remove"
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &bulkMemberAssignment{MemberUserIDs: memberUserIDs}, c.provisioningOrAPIKey())
	if err != nil {
		return 0, err
	}

	var out unassignedCount
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.UnassignedCount, nil
}

// ListKeyAssignments returns key assignments across all guardrails.
func (c *Client) ListKeyAssignments(ctx context.Context, page *PaginationOptions) (*GuardrailKeyAssignments, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/guardrails/assignments/keys", page.values(), nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out GuardrailKeyAssignments
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMemberAssignments returns member assignments across all guardrails.
func (c *Client) ListMemberAssignments(ctx context.Context, page *PaginationOptions) (*GuardrailMemberAssignments, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/guardrails/assignments/members", page.values(), nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out GuardrailMemberAssignments
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
