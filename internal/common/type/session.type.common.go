package types

import "github.com/Baru2006/EasyRecharge-MM/internal/common/enum"

type UserWithAuth struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"omitempty"`
	Role      enum.Role `json:"role" validate:"omitempty,enum"`
	Anonymous bool      `json:"anonymous"`
}

// EffectiveRole falls back to the customer tier for anonymous users and
// unknown roles.
func (u UserWithAuth) EffectiveRole() enum.Role {
	if u.Anonymous || !u.Role.IsValid() {
		return enum.CUSTOMER
	}
	return u.Role
}
