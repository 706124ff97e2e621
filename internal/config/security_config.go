// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecuritySession                     // Valid session token required
	SecurityAdmin                       // Session with is_admin required
)

// EndpointSecurityConfig maps named HTTP routes to their required security level.
// Routes missing from the map are treated as SecurityAdmin.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Public site
	"notifications.dispatch": SecurityPublic,
	"products.list":          SecurityPublic,
	"products.get":           SecurityPublic,
	"rentals.quote":          SecurityPublic,
	"rentals.submit":         SecurityPublic,
	"contact.submit":         SecurityPublic,
	"images.get":             SecurityPublic,

	// Auth
	"auth.signup":  SecurityPublic,
	"auth.signin":  SecurityPublic,
	"auth.signout": SecuritySession,
	"auth.session": SecuritySession,

	// Admin
	"admin.products.list":  SecurityAdmin,
	"admin.products.price": SecurityAdmin,
	"admin.products.image": SecurityAdmin,
	"admin.rentals.list":   SecurityAdmin,
	"admin.rentals.status": SecurityAdmin,
	"admin.contact.list":   SecurityAdmin,
	"admin.contact.status": SecurityAdmin,
}

// RouteSecurity returns the level for a route name, defaulting to SecurityAdmin.
func RouteSecurity(name string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[name]; ok {
		return level
	}
	return SecurityAdmin
}
