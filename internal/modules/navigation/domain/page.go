package domain

import (
	"net/url"
	"strings"
)

// Page identifies one navigable view. The set is closed.
type Page string

const (
	PageHome            Page = "home"
	PageRegisterSelect  Page = "register-select"
	PageStudentRegister Page = "student-register"
	PageTeacherRegister Page = "teacher-register"
	PageAdminRegister   Page = "admin-register"
	PageLogin           Page = "login"
	PageStudentProfile  Page = "student-profile"
	PageTeacherProfile  Page = "teacher-profile"
	PageAdminProfile    Page = "admin-profile"
)

var pages = []Page{
	PageHome,
	PageRegisterSelect,
	PageStudentRegister,
	PageTeacherRegister,
	PageAdminRegister,
	PageLogin,
	PageStudentProfile,
	PageTeacherProfile,
	PageAdminProfile,
}

// Pages returns every page identifier.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

func (p Page) Valid() bool {
	for _, known := range pages {
		if p == known {
			return true
		}
	}
	return false
}

func ParsePage(raw string) (Page, bool) {
	p := Page(strings.ToLower(strings.TrimSpace(raw)))
	return p, p.Valid()
}

// URL is the history path for p: home is the root, every other page is /<id>.
func (p Page) URL() string {
	if p == PageHome {
		return "/"
	}
	return "/" + string(p)
}

// PageFromPath maps a URL or path onto the page set. Unrecognized paths map
// to home.
func PageFromPath(raw string) Page {
	path := strings.TrimSpace(raw)
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return PageHome
	}
	if p, ok := ParsePage(path); ok {
		return p
	}
	return PageHome
}
