package domain

// Entities referenced by interactions. IDs are the remote service's string
// snowflakes; they are kept opaque here.

type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Bot           bool   `json:"bot"`
}

// Member is a guild-scoped user record. User is only populated when the
// payload carried both a bare-user and a member record for the same ID.
type Member struct {
	User        *User    `json:"user"`
	GuildID     string   `json:"-"`
	Nick        string   `json:"nick"`
	Roles       []string `json:"roles"`
	JoinedAt    string   `json:"joined_at"`
	Permissions string   `json:"permissions"`
}

// ID returns the member's user ID, or an empty string for a member record
// that carried no user.
func (m *Member) ID() string {
	if m.User == nil {
		return ""
	}
	return m.User.ID
}

type Role struct {
	ID          string `json:"id"`
	GuildID     string `json:"-"`
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Position    int    `json:"position"`
	Permissions string `json:"permissions"`
	Managed     bool   `json:"managed"`
	Mentionable bool   `json:"mentionable"`
}

// Channel may be a partial record synthesized from the resolved-entities
// table. Optional fields are pointers so that an absent field is
// distinguishable from a zero value; Partial marks synthesized records.
type Channel struct {
	ID          string      `json:"id"`
	Type        ChannelType `json:"type"`
	GuildID     string      `json:"-"`
	Name        *string     `json:"name"`
	Topic       *string     `json:"topic"`
	Position    *int        `json:"position"`
	ParentID    *string     `json:"parent_id"`
	Permissions *string     `json:"permissions"`
	Partial     bool        `json:"-"`
}

type Guild struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

type Message struct {
	ID        string   `json:"id"`
	ChannelID string   `json:"channel_id"`
	GuildID   string   `json:"-"`
	Author    *User    `json:"author"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
	Channel   *Channel `json:"-"`
}

// Mentionable is an ambiguous user-or-role reference. The raw ID is kept
// as-is; callers decide how to resolve it.
type Mentionable struct {
	ID string
}
