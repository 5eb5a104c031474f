package domain

import (
	navdomain "edura/internal/modules/navigation/domain"
	sessiondomain "edura/internal/modules/session/domain"
)

// Rule names the gating rule that produced a view.
type Rule string

const (
	RuleGuestOnly    Rule = "guest-only"
	RuleAuthRequired Rule = "auth-required"
	RuleRoleMismatch Rule = "role-mismatch"
	RuleDefault      Rule = "default"
	RuleUnknownPage  Rule = "unknown-page"
)

// View is the resolved screen. Values are comparable.
type View struct {
	Kind      navdomain.Page
	Requested navdomain.Page
	Rule      Rule
}

// Redirected reports whether the shown view differs from the requested page.
func (v View) Redirected() bool {
	return v.Kind != v.Requested
}

var guestOnly = map[navdomain.Page]bool{
	navdomain.PageRegisterSelect:  true,
	navdomain.PageStudentRegister: true,
	navdomain.PageTeacherRegister: true,
	navdomain.PageAdminRegister:   true,
	navdomain.PageLogin:           true,
}

var profileRoles = map[navdomain.Page][]sessiondomain.Role{
	navdomain.PageStudentProfile: {sessiondomain.RoleStudent},
	navdomain.PageTeacherProfile: {sessiondomain.RoleTeacher},
	navdomain.PageAdminProfile:   {sessiondomain.RoleAdmin, sessiondomain.RoleSuperAdmin},
}

// Resolve maps the requested page and the session onto the view to show.
// Rules apply in order: guest-only pages redirect authenticated users home,
// profile pages send guests to login, profile pages for another role redirect
// home, and anything else shows verbatim. Unknown pages resolve to home.
func Resolve(page navdomain.Page, session sessiondomain.Session) View {
	authed := session.IsAuthenticated()
	if guestOnly[page] && authed {
		return View{Kind: navdomain.PageHome, Requested: page, Rule: RuleGuestOnly}
	}
	if roles, ok := profileRoles[page]; ok {
		if !authed {
			return View{Kind: navdomain.PageLogin, Requested: page, Rule: RuleAuthRequired}
		}
		if !allowed(roles, session.Role()) {
			return View{Kind: navdomain.PageHome, Requested: page, Rule: RuleRoleMismatch}
		}
	}
	if !page.Valid() {
		return View{Kind: navdomain.PageHome, Requested: page, Rule: RuleUnknownPage}
	}
	return View{Kind: page, Requested: page, Rule: RuleDefault}
}

// ProfileFor is the profile page a role lands on after authenticating.
func ProfileFor(role sessiondomain.Role) (navdomain.Page, bool) {
	switch role {
	case sessiondomain.RoleStudent:
		return navdomain.PageStudentProfile, true
	case sessiondomain.RoleTeacher:
		return navdomain.PageTeacherProfile, true
	case sessiondomain.RoleAdmin, sessiondomain.RoleSuperAdmin:
		return navdomain.PageAdminProfile, true
	}
	return "", false
}

func allowed(roles []sessiondomain.Role, role sessiondomain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
