package notubiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vibecheck/internal/port"
)

// Module item attribute ids.
const (
	attrTitle              = 1
	attrDocument           = 2
	attrSubmissionDate     = 15
	attrResolutionDate     = 17
	attrResolutionDocument = 21
	attrExplanation        = 35
	attrSubmitters         = 36
	attrParties            = 37
	attrType               = 45
	attrResult             = 62
)

const dateLayout = "2006-01-02 15:04:05"

// Event is a calendar entry of the organisation.
type Event struct {
	ID           int64            `json:"id"`
	Announcement flag             `json:"announcement"`
	Canceled     flag             `json:"canceled"`
	Attributes   []EventAttribute `json:"attributes"`
}

// EventAttribute is an id/value pair on an event.
type EventAttribute struct {
	ID    flexInt         `json:"id"`
	Value json.RawMessage `json:"value"`
}

// Title returns the event's title attribute, or a placeholder.
func (e Event) Title() string {
	for _, a := range e.Attributes {
		if a.ID == attrTitle {
			if s := rawString(a.Value); s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("Event %d", e.ID)
}

// Meeting is an event with its agenda.
type Meeting struct {
	ModuleItems []itemRef    `json:"module_items"`
	AgendaItems []AgendaItem `json:"agenda_items"`
}

// AgendaItem is a node of a meeting's agenda tree.
type AgendaItem struct {
	ModuleItems []itemRef    `json:"module_items"`
	AgendaItems []AgendaItem `json:"agenda_items"`
}

type itemRef struct {
	ID int64 `json:"id"`
}

// ModuleItemIDs returns the ids of all module items in the meeting, top-level
// first, then depth-first through the agenda tree. Duplicates are kept.
func (m Meeting) ModuleItemIDs() []int64 {
	var ids []int64
	for _, mi := range m.ModuleItems {
		ids = append(ids, mi.ID)
	}
	var walk func(items []AgendaItem)
	walk = func(items []AgendaItem) {
		for _, it := range items {
			for _, mi := range it.ModuleItems {
				ids = append(ids, mi.ID)
			}
			walk(it.AgendaItems)
		}
	}
	walk(m.AgendaItems)
	return ids
}

// ModuleItem is a motion or amendment.
type ModuleItem struct {
	Attributes struct {
		Attribute oneOrMany[ItemAttribute] `json:"attribute"`
	} `json:"attributes"`
}

// ItemAttribute is one typed attribute of a module item.
type ItemAttribute struct {
	Meta struct {
		ID flexInt `json:"id"`
	} `json:"@attributes"`
	Value  json.RawMessage `json:"value"`
	Values struct {
		Value oneOrMany[attributeValue] `json:"value"`
	} `json:"values"`
}

type attributeValue struct {
	CData string `json:"@cdata"`
	Meta  struct {
		ID *flexInt `json:"id"`
	} `json:"@attributes"`
}

// Motion maps the item's attributes onto a council motion. Unknown
// attributes are ignored; unparseable dates are left nil.
func (it ModuleItem) Motion() port.CouncilMotion {
	var m port.CouncilMotion
	for _, a := range it.Attributes.Attribute {
		switch a.Meta.ID {
		case attrTitle:
			m.Title = rawString(a.Value)
		case attrType:
			m.Type = rawString(a.Value)
		case attrResult:
			m.Result = rawString(a.Value)
		case attrSubmissionDate:
			m.SubmissionDate = parseDate(rawString(a.Value))
		case attrResolutionDate:
			m.ResolutionDate = parseDate(rawString(a.Value))
		case attrExplanation:
			m.Explanation = rawString(a.Value)
		case attrDocument:
			m.DocumentURL = rawURL(a.Value)
		case attrResolutionDocument:
			m.ResolutionDocumentURL = rawURL(a.Value)
		case attrSubmitters:
			for _, v := range a.Values.Value {
				s := port.CouncilSubmitter{Name: v.CData}
				if v.Meta.ID != nil {
					id := int64(*v.Meta.ID)
					s.ID = &id
				}
				m.Submitters = append(m.Submitters, s)
			}
		case attrParties:
			for _, v := range a.Values.Value {
				m.Parties = append(m.Parties, v.CData)
			}
		}
	}
	return m
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// rawString returns a JSON string value, or "" for anything else.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// rawURL returns the url field of a document value object.
func rawURL(raw json.RawMessage) string {
	var doc struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	return doc.URL
}

// oneOrMany decodes either a JSON array or a single object into a slice.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*o = nil
		return nil
	case b[0] == '[':
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*o = items
		return nil
	case b[0] == '{':
		var item T
		if err := json.Unmarshal(b, &item); err != nil {
			return err
		}
		*o = []T{item}
		return nil
	}
	*o = nil
	return nil
}

// flexInt accepts a JSON number or a numeric string.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("notubiz: invalid id %s", b)
	}
	*f = flexInt(n)
	return nil
}

// flag accepts JSON booleans as well as 0/1 in number or string form.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	switch strings.Trim(string(b), `"`) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}
