package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type RefKind uint8

const (
	// RefNone is the zero value: no reference was supplied.
	RefNone RefKind = iota
	// RefRaw is a bare foreign key, kept in its string form.
	RefRaw
	// RefEmbedded is a populated reference that carries its own display name.
	RefEmbedded
)

// Ref is a foreign-key value as it arrives from a client or the store:
// either a bare id (5 or "5") or an embedded {"Id": 5, "Name": "Jo"} object.
type Ref struct {
	Kind RefKind
	Key  string
	Name string
}

func RawRef(id int) Ref {
	return Ref{Kind: RefRaw, Key: strconv.Itoa(id)}
}

func EmbeddedRef(id int, name string) Ref {
	return Ref{Kind: RefEmbedded, Key: strconv.Itoa(id), Name: name}
}

// IsZero reports whether the reference is absent or blank.
func (r Ref) IsZero() bool {
	return r.Kind == RefNone || (strings.TrimSpace(r.Key) == "" && r.Name == "")
}

// ID returns the integer identity of the reference, if it has one.
func (r Ref) ID() (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(r.Key))
	if err != nil {
		return 0, false
	}
	return id, true
}

func (r Ref) String() string {
	return r.Key
}

type embeddedRef struct {
	ID      json.RawMessage `json:"Id"`
	LowerID json.RawMessage `json:"id"`
	Name    string          `json:"Name"`
	Lower   string          `json:"name"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}

	switch data[0] {
	case '{':
		var e embeddedRef
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		raw := e.ID
		if len(raw) == 0 {
			raw = e.LowerID
		}
		key, err := scalarKey(raw)
		if err != nil {
			return err
		}
		name := e.Name
		if name == "" {
			name = e.Lower
		}
		if name == "" {
			*r = Ref{Kind: RefRaw, Key: key}
			return nil
		}
		*r = Ref{Kind: RefEmbedded, Key: key, Name: name}
		return nil
	default:
		key, err := scalarKey(data)
		if err != nil {
			return err
		}
		*r = Ref{Kind: RefRaw, Key: key}
		return nil
	}
}

func (r Ref) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefNone:
		return []byte("null"), nil
	case RefEmbedded:
		return json.Marshal(struct {
			ID   json.RawMessage `json:"Id"`
			Name string          `json:"Name"`
		}{ID: r.keyJSON(), Name: r.Name})
	default:
		return r.keyJSON(), nil
	}
}

func (r Ref) keyJSON() json.RawMessage {
	if id, ok := r.ID(); ok {
		return json.RawMessage(strconv.Itoa(id))
	}
	b, _ := json.Marshal(r.Key)
	return b
}

func scalarKey(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("reference must be a number, string or object: %w", err)
	}
	return numberKey(n), nil
}

// numberKey prints integral numbers in plain integer form, so 3.0 and 3e0
// both key as "3".
func numberKey(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return n.String()
}
