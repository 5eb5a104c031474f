package dto

type PageOutput struct {
	Current string
	URL     string
	History []string
}
