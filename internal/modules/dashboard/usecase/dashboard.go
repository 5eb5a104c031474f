package usecase

import (
	"context"
	"fmt"
	"strings"

	"edura/internal/modules/dashboard/domain"
	dashdto "edura/internal/modules/dashboard/dto"
	dashin "edura/internal/modules/dashboard/port/in"
	"edura/internal/modules/dashboard/service"
	sessiondomain "edura/internal/modules/session/domain"
	apperrors "edura/internal/platform/errors"
)

type Interactor struct {
	svc *service.Service
}

func NewInteractor(svc *service.Service) dashin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Stats(ctx context.Context, rawRole string) (dashdto.StatsOutput, error) {
	role, err := parseRole(rawRole)
	if err != nil {
		return dashdto.StatsOutput{}, err
	}
	role, stats, err := i.svc.Stats(ctx, role)
	if err != nil {
		return dashdto.StatsOutput{}, err
	}
	out := dashdto.StatsOutput{Role: string(role), Items: make([]dashdto.StatOutput, 0, len(stats))}
	for _, s := range stats {
		out.Items = append(out.Items, dashdto.StatOutput{Label: s.Label, Value: s.Value})
	}
	return out, nil
}

func (i *Interactor) Profile(ctx context.Context, rawRole string) (dashdto.ProfileOutput, error) {
	role, err := parseRole(rawRole)
	if err != nil {
		return dashdto.ProfileOutput{}, err
	}
	p, err := i.svc.Profile(ctx, role)
	if err != nil {
		return dashdto.ProfileOutput{}, err
	}
	return dashdto.ProfileOutput{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Mobile:    p.Mobile,
		NIC:       p.NIC,
		Role:      string(p.Role),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (i *Interactor) Courses(ctx context.Context, rawRole string) ([]dashdto.CourseOutput, error) {
	role, err := parseRole(rawRole)
	if err != nil {
		return nil, err
	}
	courses, err := i.svc.Courses(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]dashdto.CourseOutput, 0, len(courses))
	for _, c := range courses {
		out = append(out, dashdto.CourseOutput{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Teacher:     c.Teacher,
			Price:       c.Price,
			Students:    c.Students,
			Active:      c.Active,
		})
	}
	return out, nil
}

func (i *Interactor) Members(ctx context.Context, input dashdto.ListInput) (dashdto.MemberPageOutput, error) {
	kind := domain.MemberKind(strings.ToLower(strings.TrimSpace(input.Kind)))
	page, err := i.svc.Members(ctx, kind, domain.ListQuery{Page: input.Page, Limit: input.Limit, Search: input.Search})
	if err != nil {
		return dashdto.MemberPageOutput{}, err
	}
	out := dashdto.MemberPageOutput{
		Kind:  string(kind),
		Items: make([]dashdto.MemberOutput, 0, len(page.Items)),
		Page:  page.Page,
		Pages: page.Pages(),
		Limit: page.Limit,
		Total: page.Total,
	}
	for _, m := range page.Items {
		out.Items = append(out.Items, dashdto.MemberOutput{
			ID:     m.ID,
			Name:   m.FullName(),
			Email:  m.Email,
			Mobile: m.Mobile,
			Active: m.Active,
			Joined: m.CreatedAt,
		})
	}
	return out, nil
}

func parseRole(raw string) (sessiondomain.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	role, err := sessiondomain.ParseRole(raw)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, apperrors.ErrInvalidRole)
	}
	return role, nil
}
