package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Capabilities granted per role. Admins manage users, managers maintain the
// catalog, employees browse and book.
const (
	CapabilityRead  = "read"
	CapabilityWrite = "write"
	CapabilityBook  = "book"
	CapabilityAdmin = "admin"
)

const (
	RoleAdmin    int16 = 1
	RoleManager  int16 = 2
	RoleEmployee int16 = 3
)

var roleCapabilities = map[int16][]string{
	RoleAdmin:    {CapabilityRead, CapabilityWrite, CapabilityBook, CapabilityAdmin},
	RoleManager:  {CapabilityRead, CapabilityWrite, CapabilityBook},
	RoleEmployee: {CapabilityRead, CapabilityBook},
}

// ForRole returns the capabilities granted to a role. Unknown roles get none.
func ForRole(role int16) []string {
	return roleCapabilities[role]
}

// Allowed reports whether a role holds at least one of the required
// capabilities.
func Allowed(role int16, required []string) bool {
	if len(required) == 0 {
		return true
	}

	granted := ForRole(role)
	for _, capability := range required {
		if slices.Contains(granted, capability) {
			return true
		}
	}

	return false
}

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
