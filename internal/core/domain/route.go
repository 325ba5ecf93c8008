package domain

// Route names a landing screen.
type Route string

const (
	RouteLogin        Route = "Login"
	RouteHome         Route = "Home"
	RouteShopHome     Route = "ShopHome"
	RouteAdminHome    Route = "AdminHome"
	RouteCustomerHome Route = "CustomerHome"
)

var landingRoutes = map[Role]Route{
	RoleShop:     RouteShopHome,
	RoleAdmin:    RouteAdminHome,
	RoleCustomer: RouteCustomerHome,
}

// LandingRoute maps a role to its home screen. Unknown or empty roles land
// on the generic authenticated home.
func LandingRoute(role Role) Route {
	if r, ok := landingRoutes[role]; ok {
		return r
	}
	return RouteHome
}

// RouteForSession is LandingRoute for an authenticated session and the
// login screen otherwise.
func RouteForSession(s Session) Route {
	if s.IsZero() {
		return RouteLogin
	}
	return LandingRoute(s.User.RoleName)
}
