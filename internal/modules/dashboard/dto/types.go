package dto

type StatOutput struct {
	Label string
	Value string
}

type StatsOutput struct {
	Role  string
	Items []StatOutput
}

type ProfileOutput struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	NIC       string
	Role      string
	Active    *bool
	CreatedAt string
}

type CourseOutput struct {
	ID          string
	Name        string
	Description string
	Teacher     string
	Price       *float64
	Students    *int
	Active      *bool
}

type ListInput struct {
	Kind   string
	Page   int
	Limit  int
	Search string
}

type MemberOutput struct {
	ID     string
	Name   string
	Email  string
	Mobile string
	Active *bool
	Joined string
}

type MemberPageOutput struct {
	Kind  string
	Items []MemberOutput
	Page  int
	Pages int
	Limit int
	Total int
}
