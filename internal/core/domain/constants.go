package domain

import "errors"

var (
	// ErrSchemaMismatch signals that the locally registered command tree can
	// no longer resolve the payload's shape, usually because the remote
	// schema drifted out of band. It is routed, never raised to callers.
	ErrSchemaMismatch = errors.New("registered command schema does not match payload")

	// ErrNotRegistered signals a command ID with no local definition.
	ErrNotRegistered = errors.New("command id not registered")

	// ErrAlreadyResponded is returned on a second response attempt for the
	// same interaction. Responding is a single-use operation.
	ErrAlreadyResponded = errors.New("interaction was already responded to")

	// ErrBadResponseKind is returned when a response kind is used on an
	// interaction type that cannot accept it.
	ErrBadResponseKind = errors.New("response kind not valid for this interaction type")

	// ErrNoFollowup is returned from followup calls when no followup
	// surface was attached to the interaction.
	ErrNoFollowup = errors.New("no followup responder attached")

	ErrNoOpenSpace     = errors.New("no open space for item")
	ErrRowFull         = errors.New("item does not fit in requested row")
	ErrRowOutOfRange   = errors.New("row must be between 0 and 4")
	ErrTooManyChildren = errors.New("maximum number of children exceeded")
)

// MaxAutocompleteChoices is the protocol cap on autocomplete results; longer
// sequences are truncated before transmission.
const MaxAutocompleteChoices = 25
