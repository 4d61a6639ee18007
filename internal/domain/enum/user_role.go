package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserRole is the backend role of a dashboard operator
type UserRole string

const (
	UserRoleOwner      UserRole = "OWNER"
	UserRoleManager    UserRole = "MANAGER"
	UserRoleTechnician UserRole = "TECHNICIAN"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleOwner, UserRoleManager, UserRoleTechnician:
		return true
	}
	return false
}

// CanManageCatalog reports whether the role may create, edit or delete products and categories
func (r UserRole) CanManageCatalog() bool {
	return r == UserRoleOwner || r == UserRoleManager
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v := UserRole(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid user role %q", str)
	}
	*r = v
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = ""
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(v)
	default:
		return fmt.Errorf("cannot scan %T into UserRole", value)
	}
	return nil
}
