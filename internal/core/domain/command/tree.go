package command

import "github.com/rs/zerolog/log"

// Tree is a registration-time collection of top-level commands, split into
// the global scope and per-guild scopes. It exists to batch schema uploads;
// runtime dispatch goes through the command store instead.
type Tree struct {
	name   string
	global []*Definition
	guilds map[string][]*Definition
}

func NewTree(name string) *Tree {
	return &Tree{name: name, guilds: map[string][]*Definition{}}
}

// Add places a command in the scope its definition declares.
func (t *Tree) Add(def *Definition) {
	log.Debug().Str("tree", t.name).Str("command", def.Name()).Msg("adding command to tree")

	if def.GuildID() == "" {
		t.global = append(t.global, def)
		return
	}
	t.guilds[def.GuildID()] = append(t.guilds[def.GuildID()], def)
}

func (t *Tree) AddAll(defs ...*Definition) {
	for _, def := range defs {
		t.Add(def)
	}
}

// Commands returns every command in the tree, guild-scoped first.
func (t *Tree) Commands() []*Definition {
	out := make([]*Definition, 0, len(t.global))
	for _, defs := range t.guilds {
		out = append(out, defs...)
	}
	out = append(out, t.global...)
	return out
}

func (t *Tree) GlobalCommands() []*Definition {
	return append([]*Definition(nil), t.global...)
}

func (t *Tree) GuildCommands(guildID string) []*Definition {
	return append([]*Definition(nil), t.guilds[guildID]...)
}

// Schemas derives the wire schemas for a bulk registration upload.
func (t *Tree) Schemas() []Schema {
	cmds := t.Commands()
	out := make([]Schema, 0, len(cmds))
	for _, def := range cmds {
		out = append(out, def.ToWire())
	}
	return out
}
