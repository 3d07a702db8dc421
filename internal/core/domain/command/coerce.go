package command

import (
	"encoding/json"
	"fmt"

	"cordial/internal/core/domain"
	"cordial/internal/core/port"
)

// Coerce converts the raw wire option entries for a resolved leaf into a
// typed Invocation, cross-referencing the payload's resolved-entities table
// and the read-only entity cache.
func Coerce(
	leaf *Definition,
	opts []domain.OptionPayload,
	resolved *domain.ResolvedData,
	guildID string,
	cache port.EntityCache,
) (*Invocation, error) {
	inv := newInvocation(leaf)

	for _, opt := range opts {
		if opt.Focused {
			// Focused autocomplete entries carry partial text, not a value.
			continue
		}

		if _, declared := leaf.Option(opt.Name); !declared {
			return nil, fmt.Errorf("%w: command %q has no option %q",
				domain.ErrSchemaMismatch, leaf.QualifiedName(), opt.Name)
		}

		value, err := coerceValue(opt, resolved, guildID, cache)
		if err != nil {
			return nil, err
		}
		inv.set(opt.Name, value)
	}

	return inv, nil
}

func coerceValue(
	opt domain.OptionPayload,
	resolved *domain.ResolvedData,
	guildID string,
	cache port.EntityCache,
) (any, error) {
	switch opt.Type {
	case domain.OptionUser:
		id, err := stringValue(opt)
		if err != nil {
			return nil, err
		}
		return resolveUser(resolved, guildID, id)

	case domain.OptionChannel:
		id, err := stringValue(opt)
		if err != nil {
			return nil, err
		}
		return resolveChannel(resolved, guildID, id, cache)

	case domain.OptionRole:
		id, err := stringValue(opt)
		if err != nil {
			return nil, err
		}
		// The payload's role record is fresher than anything cached.
		role, ok := lookupRole(resolved, id)
		if !ok {
			return nil, fmt.Errorf("%w: role %s missing from resolved data", domain.ErrSchemaMismatch, id)
		}
		role.GuildID = guildID
		return role, nil

	case domain.OptionMentionable:
		id, err := stringValue(opt)
		if err != nil {
			return nil, err
		}
		return &domain.Mentionable{ID: id}, nil

	default:
		var v any
		if err := json.Unmarshal(opt.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: option %q carried an undecodable value",
				domain.ErrSchemaMismatch, opt.Name)
		}
		return v, nil
	}
}

func stringValue(opt domain.OptionPayload) (string, error) {
	var s string
	if err := json.Unmarshal(opt.Value, &s); err != nil {
		return "", fmt.Errorf("%w: option %q value is not an id", domain.ErrSchemaMismatch, opt.Name)
	}
	return s, nil
}

// resolveUser merges the users and members sub-tables. When both records
// exist the user fields are folded into the member record; a member without
// guild context degrades to its bare user.
func resolveUser(resolved *domain.ResolvedData, guildID, id string) (any, error) {
	var user *domain.User
	var member *domain.Member

	if resolved != nil {
		user = resolved.Users[id]
		member = resolved.Members[id]
	}

	if member != nil && user != nil {
		member.User = user
	}

	if member != nil && guildID != "" {
		member.GuildID = guildID
		return member, nil
	}
	if user != nil {
		return user, nil
	}

	return nil, fmt.Errorf("%w: user %s missing from resolved data", domain.ErrSchemaMismatch, id)
}

// resolveChannel prefers the entity cache, whose records are fresher and
// complete. Otherwise a partial channel is synthesized from the resolved
// table, keeping absent fields absent instead of zeroed.
func resolveChannel(resolved *domain.ResolvedData, guildID, id string, cache port.EntityCache) (*domain.Channel, error) {
	if cache != nil {
		if ch, ok := cache.Channel(id); ok {
			return ch, nil
		}
	}

	if resolved == nil || resolved.Channels[id] == nil {
		return nil, fmt.Errorf("%w: channel %s missing from resolved data", domain.ErrSchemaMismatch, id)
	}

	ch := resolved.Channels[id]
	ch.GuildID = guildID
	ch.Partial = true
	return ch, nil
}

func lookupRole(resolved *domain.ResolvedData, id string) (*domain.Role, bool) {
	if resolved == nil {
		return nil, false
	}
	role, ok := resolved.Roles[id]
	return role, ok
}

// ResolveUserTarget resolves a user-target context menu command's target
// from the resolved-entities table.
func ResolveUserTarget(resolved *domain.ResolvedData, guildID, targetID string) (any, error) {
	return resolveUser(resolved, guildID, targetID)
}

// ResolveMessageTarget synthesizes the target message of a message-target
// context menu command, injecting the interaction's guild ID and a cached
// channel reference when available.
func ResolveMessageTarget(
	resolved *domain.ResolvedData,
	guildID, targetID string,
	cache port.EntityCache,
) (*domain.Message, error) {
	if resolved == nil || resolved.Messages[targetID] == nil {
		return nil, fmt.Errorf("%w: message %s missing from resolved data", domain.ErrSchemaMismatch, targetID)
	}

	msg := resolved.Messages[targetID]
	msg.GuildID = guildID
	if cache != nil {
		if ch, ok := cache.Channel(msg.ChannelID); ok {
			msg.Channel = ch
		}
	}
	return msg, nil
}
