package dto

import (
	navdto "edura/internal/modules/navigation/dto"
	sessiondto "edura/internal/modules/session/dto"
)

type ViewOutput struct {
	View       string
	Requested  string
	Rule       string
	Redirected bool
	Session    sessiondto.SessionOutput
	Navigation navdto.PageOutput
}
