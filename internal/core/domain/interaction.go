package domain

import (
	"encoding/json"
	"fmt"
)

// Interaction is one inbound event representing a remote user action that
// needs a response. It is created once per gateway event and never reused.
type Interaction struct {
	ID            string
	ApplicationID string
	Type          InteractionType
	Data          *InteractionData
	GuildID       string
	ChannelID     string
	Token         string
	Version       int

	// User is the invoking user; Member is set instead when the interaction
	// originated inside a guild.
	User   *User
	Member *Member

	// Message is the message the interacted component was attached to.
	// Only present on component interactions.
	Message *Message

	// Query holds the focused option's raw text during autocomplete
	// dispatch. Empty otherwise.
	Query string

	// Target is the resolved user, member or message of a context-menu
	// command. Populated during command dispatch.
	Target any

	// Response is the single-use response handle for this interaction.
	Response *Response
}

// ParseInteraction decodes a raw gateway payload into an Interaction.
// The returned interaction has no response handle attached yet.
func ParseInteraction(raw []byte) (*Interaction, error) {
	var p InteractionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("malformed interaction payload: %w", err)
	}

	if p.ID == "" || p.Type == 0 {
		return nil, fmt.Errorf("interaction payload missing id or type")
	}

	ix := &Interaction{
		ID:            p.ID,
		ApplicationID: p.ApplicationID,
		Type:          p.Type,
		Data:          p.Data,
		GuildID:       p.GuildID,
		ChannelID:     p.ChannelID,
		Token:         p.Token,
		Version:       p.Version,
		Message:       p.Message,
	}

	if p.Member != nil {
		p.Member.GuildID = p.GuildID
		ix.Member = p.Member
		if p.Member.User != nil {
			ix.User = p.Member.User
		}
	} else {
		ix.User = p.User
	}

	return ix, nil
}

// InvokingUser returns the invoking user regardless of guild context.
func (ix *Interaction) InvokingUser() *User {
	if ix.User != nil {
		return ix.User
	}
	if ix.Member != nil {
		return ix.Member.User
	}
	return nil
}

// AttachResponder installs the single-use response handle. Called by the
// router before any handler can observe the interaction.
func (ix *Interaction) AttachResponder(create CreateResponseFunc) {
	ix.Response = &Response{ix: ix, create: create}
}

// AttachFollowup installs the followup surface for editing or deleting the
// original response message after the initial response was sent. Requires a
// response handle.
func (ix *Interaction) AttachFollowup(edit EditOriginalFunc, del DeleteOriginalFunc) {
	if ix.Response == nil {
		return
	}
	ix.Response.edit = edit
	ix.Response.del = del
}

// Responded reports whether a response has been sent for this interaction.
func (ix *Interaction) Responded() bool {
	return ix.Response != nil && ix.Response.IsDone()
}
