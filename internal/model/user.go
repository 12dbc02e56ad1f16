package model

import "encoding/json"

// User is one known account holder.
type User struct {
	ID           string
	Username     string
	DisplayImage string
}

// UnmarshalJSON normalizes the wire form: the identifier may arrive as "id" or
// the data source's legacy "_id", and as either a string or a bare number.
// Either way User.ID ends up as its string form.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           json.RawMessage `json:"id"`
		AltID        json.RawMessage `json:"_id"`
		Username     string          `json:"username"`
		DisplayImage string          `json:"displayImage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.ID = idString(raw.ID)
	if u.ID == "" {
		u.ID = idString(raw.AltID)
	}
	u.Username = raw.Username
	u.DisplayImage = raw.DisplayImage
	return nil
}

// idString renders a JSON identifier as a string, whether it was sent quoted
// or as a number.
func idString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
