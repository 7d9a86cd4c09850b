package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/mmynk/forkful/internal/service"
)

const maxBodyBytes = 1 << 20

// fields holds a JSON object body keyed by field name, so presence and type
// can be checked per field before anything is converted.
type fields map[string]json.RawMessage

func decodeFields(w http.ResponseWriter, r *http.Request) (fields, *service.ValidationError) {
	if r.Body == nil {
		return fields{}, nil
	}
	defer r.Body.Close()

	var f fields
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return fields{}, nil
		}
		return nil, &service.ValidationError{Field: "body", Message: "Invalid JSON body"}
	}
	if f == nil {
		f = fields{}
	}
	return f, nil
}

func (f fields) has(name string) bool {
	raw, ok := f[name]
	return ok && !isNull(raw)
}

// missing returns the first of names absent from the body.
func (f fields) missing(names ...string) (string, bool) {
	for _, name := range names {
		if _, ok := f[name]; !ok {
			return name, true
		}
	}
	return "", false
}

// str decodes a string field. Present-but-null counts as the wrong type.
func (f fields) str(name string) (string, *service.ValidationError) {
	raw := bytes.TrimSpace(f[name])
	var v string
	if len(raw) == 0 || raw[0] != '"' || json.Unmarshal(raw, &v) != nil {
		return "", &service.ValidationError{Field: name, Message: "Incorrect field type: expected string"}
	}
	return v, nil
}

func (f fields) stringList(name string) ([]string, *service.ValidationError) {
	raw := bytes.TrimSpace(f[name])
	var v []string
	if len(raw) == 0 || raw[0] != '[' || json.Unmarshal(raw, &v) != nil {
		return nil, &service.ValidationError{Field: name, Message: "Incorrect field type: expected array of strings"}
	}
	return v, nil
}

func (f fields) number(name string) (float64, *service.ValidationError) {
	var v float64
	if err := json.Unmarshal(f[name], &v); err != nil {
		return 0, &service.ValidationError{Field: name, Message: "Incorrect field type: expected number"}
	}
	return v, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

type sizeBounds struct {
	field string
	min   int
	max   int
}

// createUserBounds lists the sized fields in the order they are checked.
var createUserBounds = []sizeBounds{
	{field: "username", min: 1},
	{field: "password", min: 10, max: 72},
}

// decodeCreateUser validates a registration body the way clients of the
// users resource expect: required fields, then types, then untrimmed
// credentials, then lengths. Names are trimmed silently.
func decodeCreateUser(w http.ResponseWriter, r *http.Request) (service.RegisterCommand, *service.ValidationError) {
	f, verr := decodeFields(w, r)
	if verr != nil {
		return service.RegisterCommand{}, verr
	}

	if name, ok := f.missing("username", "password"); ok {
		return service.RegisterCommand{}, &service.ValidationError{Field: name, Message: "Missing field"}
	}

	values := make(map[string]string, 4)
	for _, name := range []string{"username", "password", "firstName", "lastName"} {
		if _, ok := f[name]; !ok {
			continue
		}
		v, verr := f.str(name)
		if verr != nil {
			return service.RegisterCommand{}, verr
		}
		values[name] = v
	}

	for _, name := range []string{"username", "password"} {
		if strings.TrimSpace(values[name]) != values[name] {
			return service.RegisterCommand{}, &service.ValidationError{Field: name, Message: "Cannot start or end with whitespace"}
		}
	}

	var tooLarge *sizeBounds
	for i, b := range createUserBounds {
		n := utf8.RuneCountInString(values[b.field])
		if n < b.min {
			return service.RegisterCommand{}, &service.ValidationError{
				Field:   b.field,
				Message: fmt.Sprintf("Must be at least %d characters long", b.min),
			}
		}
		if tooLarge == nil && b.max > 0 && n > b.max {
			tooLarge = &createUserBounds[i]
		}
	}
	if tooLarge != nil {
		return service.RegisterCommand{}, &service.ValidationError{
			Field:   tooLarge.field,
			Message: fmt.Sprintf("Must be at most %d characters long", tooLarge.max),
		}
	}

	return service.RegisterCommand{
		Username:  values["username"],
		Password:  values["password"],
		FirstName: strings.TrimSpace(values["firstName"]),
		LastName:  strings.TrimSpace(values["lastName"]),
	}, nil
}

// decodeLogin reads {username, password}. Bad credentials and malformed
// bodies are both reported as 401 by the caller.
func decodeLogin(w http.ResponseWriter, r *http.Request) (username, password string, ok bool) {
	f, verr := decodeFields(w, r)
	if verr != nil {
		return "", "", false
	}
	username, uerr := f.str("username")
	password, perr := f.str("password")
	if uerr != nil || perr != nil {
		return "", "", false
	}
	return username, password, true
}

// decodeCreateGroup reads {groupName, members, votes}. members and votes are
// optional arrays of IDs.
func decodeCreateGroup(w http.ResponseWriter, r *http.Request) (service.CreateGroupCommand, *service.ValidationError) {
	f, verr := decodeFields(w, r)
	if verr != nil {
		return service.CreateGroupCommand{}, verr
	}

	if name, ok := f.missing("groupName"); ok {
		return service.CreateGroupCommand{}, &service.ValidationError{Field: name, Message: "Missing field"}
	}

	groupName, verr := f.str("groupName")
	if verr != nil {
		return service.CreateGroupCommand{}, verr
	}
	groupName = strings.TrimSpace(groupName)
	if groupName == "" {
		return service.CreateGroupCommand{}, &service.ValidationError{Field: "groupName", Message: "Must be at least 1 characters long"}
	}

	cmd := service.CreateGroupCommand{GroupName: groupName}
	for _, name := range []string{"members", "votes"} {
		if !f.has(name) {
			continue
		}
		ids, verr := f.stringList(name)
		if verr != nil {
			return service.CreateGroupCommand{}, verr
		}
		for _, id := range ids {
			if strings.TrimSpace(id) == "" {
				return service.CreateGroupCommand{}, &service.ValidationError{Field: name, Message: "IDs must be non-empty"}
			}
		}
		if name == "members" {
			cmd.Members = ids
		} else {
			cmd.Votes = ids
		}
	}

	return cmd, nil
}

// decodeCastVote reads {categories, rating}. rating is optional and may be
// null.
func decodeCastVote(w http.ResponseWriter, r *http.Request, groupID, memberID string) (service.CastVoteCommand, *service.ValidationError) {
	f, verr := decodeFields(w, r)
	if verr != nil {
		return service.CastVoteCommand{}, verr
	}

	if name, ok := f.missing("categories"); ok {
		return service.CastVoteCommand{}, &service.ValidationError{Field: name, Message: "Missing field"}
	}
	categories, verr := f.stringList("categories")
	if verr != nil {
		return service.CastVoteCommand{}, verr
	}

	cmd := service.CastVoteCommand{
		GroupID:    groupID,
		MemberID:   memberID,
		Categories: categories,
	}
	if f.has("rating") {
		rating, verr := f.number("rating")
		if verr != nil {
			return service.CastVoteCommand{}, verr
		}
		cmd.Rating = &rating
	}

	return cmd, nil
}
