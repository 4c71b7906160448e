package domain

import "strings"

// Landing routes used by the navigation gate.
const (
	LoginRoute   = "/login"
	DefaultRoute = "/"
)

// RoutePolicy declares who may open a dashboard route.
type RoutePolicy struct {
	Path           string
	Public         bool  // Reachable without a session
	RequiredRole   *Role // Identity must carry this role
	ForbiddenRoles []Role
}

// Allows applies both the role requirement and the forbidden-role check.
// A nil identity is only allowed on public routes.
func (p RoutePolicy) Allows(identity *Identity) bool {
	if p.Public {
		return true
	}
	if identity == nil {
		return false
	}
	if p.RequiredRole != nil && identity.Role != *p.RequiredRole {
		return false
	}
	for _, r := range p.ForbiddenRoles {
		if identity.Role == r {
			return false
		}
	}
	return true
}

func role(r Role) *Role { return &r }

// RoutePolicies is the route table of the dashboard.
var RoutePolicies = []RoutePolicy{
	{Path: LoginRoute, Public: true},
	{Path: DefaultRoute},
	{Path: "/profile"},
	{Path: "/my-applications", ForbiddenRoles: []Role{RoleAdmin}},
	{Path: "/users", RequiredRole: role(RoleAdmin)},
	{Path: "/security", RequiredRole: role(RoleAdmin)},
	{Path: "/compliance", RequiredRole: role(RoleAdmin)},
	{Path: "/spend-management", RequiredRole: role(RoleAdmin)},
}

// PolicyFor returns the policy of route. Unknown routes require a session only.
func PolicyFor(route string) RoutePolicy {
	path := normalizeRoute(route)
	for _, p := range RoutePolicies {
		if p.Path == path {
			return p
		}
	}
	return RoutePolicy{Path: path}
}

// CanAccess reports whether identity may open route.
func CanAccess(route string, identity *Identity) bool {
	return PolicyFor(route).Allows(identity)
}

func normalizeRoute(route string) string {
	path := route
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return DefaultRoute
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = DefaultRoute
		}
	}
	return path
}

// NavigationState is the outcome of a navigation attempt.
type NavigationState string

const (
	NavigationLoading         NavigationState = "loading"
	NavigationUnauthenticated NavigationState = "unauthenticated"
	NavigationAuthorized      NavigationState = "authorized"
	NavigationForbidden       NavigationState = "forbidden"
)

// NavigationDecision tells the dashboard what to render for a target route.
type NavigationDecision struct {
	Target     string          `json:"target"`
	State      NavigationState `json:"state"`
	RedirectTo *string         `json:"redirectTo,omitempty"`
}
