package guard

import (
	"strings"

	"github.com/diaglab/labdesk/internal/core/domain"
)

// Paths of the screens the guard redirects to.
const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathPatients  = "/patients"
	PathNotFound  = "*"
)

// Screen names rendered by the view layer.
const (
	ScreenLogin                 = "login"
	ScreenHome                  = "home"
	ScreenDashboard             = "dashboard"
	ScreenReceptionistDashboard = "receptionist-dashboard"
	ScreenPatients              = "patients"
	ScreenAddPatient            = "add-patient"
	ScreenPatientDetail         = "patient-detail"
	ScreenBilling               = "billing"
	ScreenReports               = "reports"
	ScreenPendingOrders         = "pending-orders"
	ScreenAssignTests           = "assign-tests"
	ScreenExpenses              = "expenses"
	ScreenTests                 = "tests"
	ScreenDoctors               = "doctors"
	ScreenRevenue               = "revenue"
	ScreenDiscounts             = "discounts"
	ScreenSettings              = "settings"
	ScreenNotFound              = "not-found"
)

// Access describes who may reach a route.
type Access uint8

const (
	// AccessRoles requires an identity whose role is in Route.Roles.
	AccessRoles Access = iota
	// AccessGuest is for the login screen: anyone may see it, an
	// authenticated identity is sent to its landing page instead.
	AccessGuest
	// AccessPublic is reachable by anyone without a session check.
	AccessPublic
	// AccessEntry only redirects: to the landing page or to login.
	AccessEntry
)

// Route maps a URL pattern to a screen and its access policy.
type Route struct {
	Path   string
	Screen string
	Access Access
	Roles  []domain.Role
}

// Allows reports whether role is in the route's allow-list.
func (r Route) Allows(role domain.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

var (
	adminOnly    = []domain.Role{domain.RoleAdmin}
	operatorOnly = []domain.Role{domain.RoleOperator}
	staff        = []domain.Role{domain.RoleAdmin, domain.RoleOperator}
)

// Routes is the complete route surface of the portal.
var Routes = []Route{
	{Path: PathRoot, Screen: ScreenHome, Access: AccessEntry},
	{Path: PathLogin, Screen: ScreenLogin, Access: AccessGuest},

	{Path: PathDashboard, Screen: ScreenDashboard, Roles: adminOnly},
	{Path: "/receptionist-dashboard", Screen: ScreenReceptionistDashboard, Roles: staff},

	{Path: PathPatients, Screen: ScreenPatients, Roles: staff},
	{Path: "/patients/add", Screen: ScreenAddPatient, Roles: staff},
	{Path: "/patient/:id", Screen: ScreenPatientDetail, Roles: staff},

	{Path: "/billing", Screen: ScreenBilling, Roles: operatorOnly},
	{Path: "/reports", Screen: ScreenReports, Roles: operatorOnly},
	{Path: "/pending-orders", Screen: ScreenPendingOrders, Roles: operatorOnly},
	{Path: "/assign-tests", Screen: ScreenAssignTests, Roles: operatorOnly},

	{Path: "/expenses", Screen: ScreenExpenses, Roles: adminOnly},
	{Path: "/tests", Screen: ScreenTests, Roles: adminOnly},
	{Path: "/doctors", Screen: ScreenDoctors, Roles: adminOnly},
	{Path: "/revenue", Screen: ScreenRevenue, Roles: adminOnly},
	{Path: "/discounts", Screen: ScreenDiscounts, Roles: adminOnly},
	{Path: "/settings", Screen: ScreenSettings, Roles: adminOnly},

	{Path: PathNotFound, Screen: ScreenNotFound, Access: AccessPublic},
}

// Lookup returns the route matching a request path. Segments starting with
// ':' match any single non-empty segment; unknown paths yield the not-found
// route.
func Lookup(path string) Route {
	if path == "" {
		path = PathRoot
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	for _, r := range Routes {
		if r.Path != PathNotFound && matchPattern(r.Path, path) {
			return r
		}
	}
	return Routes[len(Routes)-1]
}

// ByScreen returns the route rendering screen.
func ByScreen(screen string) (Route, bool) {
	for _, r := range Routes {
		if r.Screen == screen {
			return r, true
		}
	}
	return Route{}, false
}

func matchPattern(pattern, path string) bool {
	ps := strings.Split(pattern, "/")
	xs := strings.Split(path, "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
