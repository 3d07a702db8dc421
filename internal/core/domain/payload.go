package domain

import "encoding/json"

// Inbound wire shapes. Only the routing-relevant fields are modeled; the
// remote service sends more, which json.Unmarshal drops.

type InteractionPayload struct {
	ID            string           `json:"id"`
	ApplicationID string           `json:"application_id"`
	Type          InteractionType  `json:"type"`
	Data          *InteractionData `json:"data"`
	GuildID       string           `json:"guild_id"`
	ChannelID     string           `json:"channel_id"`
	Member        *Member          `json:"member"`
	User          *User            `json:"user"`
	Message       *Message         `json:"message"`
	Token         string           `json:"token"`
	Version       int              `json:"version"`
}

type InteractionData struct {
	// Command and autocomplete interactions.
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     CommandType     `json:"type"`
	Options  []OptionPayload `json:"options"`
	Resolved *ResolvedData   `json:"resolved"`
	TargetID string          `json:"target_id"`

	// Component and modal interactions.
	CustomID      string         `json:"custom_id"`
	ComponentType ComponentType  `json:"component_type"`
	Values        []string       `json:"values"`
	Components    []ComponentRow `json:"components"`
}

type OptionPayload struct {
	Name    string          `json:"name"`
	Type    OptionType      `json:"type"`
	Value   json.RawMessage `json:"value"`
	Options []OptionPayload `json:"options"`
	Focused bool            `json:"focused"`
}

// ResolvedData is the side table of full records for IDs referenced by
// options and context-menu targets, keyed by string ID.
type ResolvedData struct {
	Users    map[string]*User    `json:"users"`
	Members  map[string]*Member  `json:"members"`
	Roles    map[string]*Role    `json:"roles"`
	Channels map[string]*Channel `json:"channels"`
	Messages map[string]*Message `json:"messages"`
}

// ComponentRow is one action row of a submitted modal.
type ComponentRow struct {
	Type       ComponentType    `json:"type"`
	Components []SubmittedField `json:"components"`
}

type SubmittedField struct {
	Type     ComponentType `json:"type"`
	CustomID string        `json:"custom_id"`
	Value    string        `json:"value"`
}
