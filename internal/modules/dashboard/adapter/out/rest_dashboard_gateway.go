package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sendgrid/rest"

	"edura/internal/modules/dashboard/domain"
	dashout "edura/internal/modules/dashboard/port/out"
	sessiondomain "edura/internal/modules/session/domain"
	apperrors "edura/internal/platform/errors"
	"edura/internal/platform/restclient"
)

type RESTGateway struct {
	client *restclient.Client
}

func NewRESTGateway(client *restclient.Client) dashout.Gateway {
	return &RESTGateway{client: client}
}

// envelope is the `{message, data}` shape every dashboard endpoint answers with.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (g *RESTGateway) Stats(ctx context.Context, token string, role sessiondomain.Role) (map[string]string, error) {
	data, err := g.get(ctx, token, "/"+string(role)+"/dashboard", nil)
	if err != nil {
		return nil, err
	}
	raw := map[string]json.RawMessage{}
	if err := decode(data, &raw); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(raw))
	for key, val := range raw {
		values[key] = scalar(val)
	}
	return values, nil
}

type memberJSON struct {
	ID            string `json:"_id"`
	AltID         string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	NIC           string `json:"nic"`
	StudentStatus *bool  `json:"student_status"`
	TeacherStatus *bool  `json:"teacher_status"`
	CreatedAt     string `json:"createdAt"`
}

func (m memberJSON) member() domain.Member {
	id := m.ID
	if id == "" {
		id = m.AltID
	}
	active := m.StudentStatus
	if active == nil {
		active = m.TeacherStatus
	}
	return domain.Member{
		ID:        id,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Mobile:    m.Mobile,
		Active:    active,
		CreatedAt: m.CreatedAt,
	}
}

func (g *RESTGateway) Profile(ctx context.Context, token string, role sessiondomain.Role) (domain.Profile, error) {
	data, err := g.get(ctx, token, "/"+string(role)+"/profile", nil)
	if err != nil {
		return domain.Profile{}, err
	}
	wrapped := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		if inner, ok := wrapped[string(role)]; ok {
			data = inner
		}
	}
	m := memberJSON{}
	if err := decode(data, &m); err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{Member: m.member(), NIC: m.NIC, Role: role}, nil
}

type courseJSON struct {
	ID           string          `json:"_id"`
	ClassName    string          `json:"class_name"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        *float64        `json:"price"`
	Fee          *float64        `json:"fee"`
	Teacher      json.RawMessage `json:"teacher"`
	StudentCount *int            `json:"studentCount"`
	Status       *bool           `json:"class_status"`
}

func (c courseJSON) course() domain.Course {
	name := c.ClassName
	if name == "" {
		name = c.Name
	}
	price := c.Price
	if price == nil {
		price = c.Fee
	}
	return domain.Course{
		ID:          c.ID,
		Name:        name,
		Description: c.Description,
		Teacher:     teacherName(c.Teacher),
		Price:       price,
		Students:    c.StudentCount,
		Active:      c.Status,
	}
}

// teacherName accepts a populated teacher object or a bare id.
func teacherName(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	m := memberJSON{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	return m.member().FullName()
}

func (g *RESTGateway) Courses(ctx context.Context, token string, role sessiondomain.Role) ([]domain.Course, error) {
	data, err := g.get(ctx, token, "/"+string(role)+"/courses", nil)
	if err != nil {
		return nil, err
	}
	raw := []courseJSON{}
	if err := decodeList(data, &raw, "courses"); err != nil {
		return nil, err
	}
	out := make([]domain.Course, 0, len(raw))
	for _, c := range raw {
		out = append(out, c.course())
	}
	return out, nil
}

type memberPageJSON struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Pagination *struct {
		Total int `json:"total"`
		Page  int `json:"page"`
		Limit int `json:"limit"`
	} `json:"pagination"`
}

func (g *RESTGateway) Members(ctx context.Context, token string, kind domain.MemberKind, q domain.ListQuery) (domain.MemberPage, error) {
	query := map[string]string{
		"page":   strconv.Itoa(q.Page),
		"limit":  strconv.Itoa(q.Limit),
		"search": q.Search,
	}
	data, err := g.get(ctx, token, "/admin/users/"+string(kind), query)
	if err != nil {
		return domain.MemberPage{}, err
	}
	raw := []memberJSON{}
	if err := decodeList(data, &raw, string(kind)); err != nil {
		return domain.MemberPage{}, err
	}
	page := domain.MemberPage{Items: make([]domain.Member, 0, len(raw))}
	for _, m := range raw {
		page.Items = append(page.Items, m.member())
	}
	meta := memberPageJSON{}
	if isObject(data) && json.Unmarshal(data, &meta) == nil {
		if meta.Pagination != nil {
			meta.Total, meta.Page, meta.Limit = meta.Pagination.Total, meta.Pagination.Page, meta.Pagination.Limit
		}
		page.Total, page.Page, page.Limit = meta.Total, meta.Page, meta.Limit
	}
	return page, nil
}

func (g *RESTGateway) get(ctx context.Context, token, path string, query map[string]string) (json.RawMessage, error) {
	resp := envelope{}
	if err := g.client.Do(ctx, restclient.Call{Method: rest.Get, Path: path, Token: token, Query: query}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, &apperrors.APIError{Kind: apperrors.ErrServer, Message: resp.Message, Err: fmt.Errorf("%s: response carried no data", path)}
	}
	return resp.Data, nil
}

func decode(data json.RawMessage, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return &apperrors.APIError{Kind: apperrors.ErrServer, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// decodeList accepts a bare array or an object holding the array under key,
// "items" or "users".
func decodeList(data json.RawMessage, out any, key string) error {
	if !isObject(data) {
		return decode(data, out)
	}
	wrapped := map[string]json.RawMessage{}
	if err := decode(data, &wrapped); err != nil {
		return err
	}
	for _, k := range []string{key, "items", "users"} {
		if inner, ok := wrapped[k]; ok {
			return decode(inner, out)
		}
	}
	return &apperrors.APIError{Kind: apperrors.ErrServer, Err: fmt.Errorf("decode data: no %q list", key)}
}

func isObject(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// scalar renders a JSON value for display: strings unquoted, everything else
// as written.
func scalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}
