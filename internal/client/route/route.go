// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package route derives which view to render from the requested route and the
current session state.

Resolution is a pure function: no side effects, safe to call on every render.
Role dispatch happens here once, as a variant switch, instead of equality
checks scattered through the views.
*/
package route

// View identifies a renderable page.
type View string

const (
	ViewHome           View = "home"
	ViewLogin          View = "login"
	ViewRegister       View = "register"
	ViewItems          View = "items"
	ViewContact        View = "contact"
	ViewUserDashboard  View = "dashboard:user"
	ViewStaffDashboard View = "dashboard:staff"
	ViewAdminDashboard View = "dashboard:admin"
)

// Route names a navigable location.
type Route string

const (
	RouteHome      Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteItems     Route = "/items"
	RouteContact   Route = "/contact"
	RouteDashboard Route = "/dashboard"
)

// Role labels as issued by the backend. Dashboards match exactly; there is
// no hierarchy, so an ADMIN asking for the staff dashboard falls back home.
const (
	RoleUser  = "USER"
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

/*
Resolve maps a requested route and session state to a view.

Description: Public routes resolve regardless of authentication. The
dashboard route resolves by exact role match; anything unauthenticated or
unrecognized falls back to the public home view rather than erroring or
redirect-looping.

Parameters:
  - requested: Route
  - token: string (empty when anonymous)
  - role: string (empty when anonymous)

Returns:
  - View: The page to render
*/
func Resolve(requested Route, token, role string) View {
	switch requested {
	case RouteHome:
		return ViewHome
	case RouteLogin:
		return ViewLogin
	case RouteRegister:
		return ViewRegister
	case RouteItems:
		return ViewItems
	case RouteContact:
		return ViewContact
	case RouteDashboard:
		if token == "" {
			return ViewHome
		}
		switch role {
		case RoleUser:
			return ViewUserDashboard
		case RoleStaff:
			return ViewStaffDashboard
		case RoleAdmin:
			return ViewAdminDashboard
		default:
			return ViewHome
		}
	default:
		return ViewHome
	}
}
