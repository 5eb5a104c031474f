package out

import "edura/internal/modules/navigation/domain"

// PopEvent is a native back/forward move. Tagged reports whether the entry
// arrived at was recorded by PushEntry; untagged entries come from direct URL
// entry or predate the session.
type PopEvent struct {
	Tag    domain.Page
	Tagged bool
	URL    string
}

// History is the platform's native history mechanism.
type History interface {
	PushEntry(tag domain.Page, url string)
	OnPopEntry(handler func(PopEvent))
}

// Browser is a History the client can drive itself, as the terminal does for
// back, forward and typed addresses.
type Browser interface {
	History
	Back() bool
	Forward() bool
	Visit(url string)
	URL() string
}
