package domain

// Wire enums. The numeric values are fixed by the remote service's
// interaction protocol and must not be reordered.

type InteractionType int

const (
	InteractionPing         InteractionType = 1
	InteractionCommand      InteractionType = 2
	InteractionComponent    InteractionType = 3
	InteractionAutocomplete InteractionType = 4
	InteractionModalSubmit  InteractionType = 5
)

type CommandType int

const (
	CommandChatInput CommandType = 1
	CommandUser      CommandType = 2
	CommandMessage   CommandType = 3
)

type OptionType int

const (
	OptionSubcommand      OptionType = 1
	OptionSubcommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionNumber          OptionType = 10
)

// IsScalar reports whether the option carries its value inline on the wire
// instead of referencing the resolved-entities table.
func (t OptionType) IsScalar() bool {
	switch t {
	case OptionString, OptionInteger, OptionBoolean, OptionNumber:
		return true
	}
	return false
}

type ComponentType int

const (
	ComponentActionRow  ComponentType = 1
	ComponentButton     ComponentType = 2
	ComponentSelectMenu ComponentType = 3
	ComponentTextInput  ComponentType = 4
)

type ChannelType int

const (
	ChannelText          ChannelType = 0
	ChannelPrivate       ChannelType = 1
	ChannelVoice         ChannelType = 2
	ChannelGroup         ChannelType = 3
	ChannelCategory      ChannelType = 4
	ChannelNews          ChannelType = 5
	ChannelStore         ChannelType = 6
	ChannelNewsThread    ChannelType = 10
	ChannelPublicThread  ChannelType = 11
	ChannelPrivateThread ChannelType = 12
	ChannelStageVoice    ChannelType = 13
)

type ResponseType int

const (
	ResponsePong                   ResponseType = 1
	ResponseChannelMessage         ResponseType = 4
	ResponseDeferredChannelMessage ResponseType = 5
	ResponseDeferredMessageUpdate  ResponseType = 6
	ResponseMessageUpdate          ResponseType = 7
	ResponseAutocompleteResult     ResponseType = 8
	ResponseModal                  ResponseType = 9
)

type ButtonStyle int

const (
	ButtonPrimary   ButtonStyle = 1
	ButtonSecondary ButtonStyle = 2
	ButtonSuccess   ButtonStyle = 3
	ButtonDanger    ButtonStyle = 4
	ButtonLink      ButtonStyle = 5
)

type TextInputStyle int

const (
	TextInputShort     TextInputStyle = 1
	TextInputParagraph TextInputStyle = 2
)
