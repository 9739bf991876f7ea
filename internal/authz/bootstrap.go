package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵，member 为登录用户的公共权限
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RoleMember,
			Policies: []Policy{
				{Object: "/v1/auth/change-password", Action: "PUT"},
				{Object: "/v2/users/:id/profile", Action: "GET"},
				{Object: "/v2/users/:id/profile", Action: "PUT"},
				{Object: "/v2/users/:id/address", Action: "GET"},
				{Object: "/v2/users/:id/address", Action: "PUT"},
				{Object: "/v2/users/:id/orders", Action: "GET"},
				{Object: "/v2/cart", Action: "POST"},
				{Object: "/v2/cart/:id", Action: "*"},
				{Object: "/v2/cart/:id/select", Action: "PUT"},
				{Object: "/v2/cart/:id/select/:sid", Action: "PUT"},
				{Object: "/v2/cart/:id/sellers/:sid", Action: "DELETE"},
				{Object: "/v2/orders", Action: "POST"},
				{Object: "/v2/orders/:id", Action: "GET"},
			},
		},
		{
			Role:     RoleBuyer,
			Inherits: []string{RoleMember},
		},
		{
			Role:     RoleSeller,
			Inherits: []string{RoleMember},
			Policies: []Policy{
				{Object: "/v1/brands", Action: "POST"},
				{Object: "/v1/brands/:id", Action: "PUT"},
				{Object: "/v1/brands/:id", Action: "DELETE"},
				{Object: "/v1/sale-items", Action: "POST"},
				{Object: "/v1/sale-items/:id", Action: "PUT"},
				{Object: "/v1/sale-items/:id", Action: "DELETE"},
				{Object: "/v2/sale-items/:id", Action: "PUT"},
				{Object: "/v2/sale-items/:id", Action: "DELETE"},
				{Object: "/v2/sellers/:id/sale-items", Action: "POST"},
				{Object: "/v2/sellers/:id/orders", Action: "GET"},
				{Object: "/v2/sellers/:id/orders/:orderId", Action: "GET"},
				{Object: "/v2/orders/new/count", Action: "GET"},
				{Object: "/v2/orders/:id/read", Action: "PUT"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，重复执行不会产生重复策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			changed = changed || added
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			changed = changed || added
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			changed = changed || added
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
