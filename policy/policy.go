// Package policy quyết định vai trò nào được làm gì trên tài nguyên nào.
// Bảng quyền được dựng một lần lúc khởi động và không đổi sau đó.
package policy

import "slices"

// Tài nguyên
const (
	ResourceInventory   = "inventory"
	ResourceOffer       = "offer"
	ResourceGuest       = "guest"
	ResourceReservation = "reservation"
	ResourcePayment     = "payment"
)

// Hành động
const (
	ActionRead     = "read"
	ActionWrite    = "write"
	ActionDelete   = "delete"
	ActionCheckIn  = "check_in"
	ActionCheckout = "checkout"
	ActionReassign = "reassign"
	ActionCancel   = "cancel"
)

// Vai trò
const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleFrontDesk    = "front_desk"
	RoleHousekeeping = "housekeeping"
	RoleSystem       = "system"
)

// Checker trả lời (role, resource, action) -> cho phép / từ chối
type Checker interface {
	Allowed(role, resource, action string) bool
}

// Rules role -> resource -> actions
type Rules map[string]map[string][]string

// StaticChecker bảng quyền bất biến
type StaticChecker struct {
	rules Rules
}

// NewStaticChecker sao chép rules, thay đổi rules sau đó không ảnh hưởng checker
func NewStaticChecker(rules Rules) *StaticChecker {
	copied := make(Rules, len(rules))
	for role, resources := range rules {
		inner := make(map[string][]string, len(resources))
		for resource, actions := range resources {
			inner[resource] = slices.Clone(actions)
		}
		copied[role] = inner
	}
	return &StaticChecker{rules: copied}
}

func (c *StaticChecker) Allowed(role, resource, action string) bool {
	resources, ok := c.rules[role]
	if !ok {
		return false
	}
	if actions, ok := resources["*"]; ok && slices.Contains(actions, "*") {
		return true
	}
	actions := resources[resource]
	return slices.Contains(actions, action) || slices.Contains(actions, "*")
}

// DefaultRules bảng quyền mặc định của khách sạn
func DefaultRules() Rules {
	all := []string{"*"}
	return Rules{
		RoleAdmin:  {"*": all},
		RoleSystem: {"*": all},
		RoleManager: {
			ResourceInventory:   all,
			ResourceOffer:       all,
			ResourceGuest:       all,
			ResourceReservation: all,
			ResourcePayment:     all,
		},
		RoleFrontDesk: {
			ResourceInventory:   {ActionRead, ActionWrite},
			ResourceOffer:       {ActionRead},
			ResourceGuest:       {ActionRead, ActionWrite},
			ResourceReservation: {ActionRead, ActionWrite, ActionCheckIn, ActionCheckout, ActionReassign, ActionCancel},
			ResourcePayment:     {ActionRead, ActionWrite},
		},
		RoleHousekeeping: {
			ResourceInventory: {ActionRead, ActionWrite},
		},
	}
}
