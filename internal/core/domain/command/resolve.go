package command

import (
	"fmt"

	"cordial/internal/core/domain"
)

// Resolve walks the registered command tree against the payload's top-level
// option list and returns the concrete leaf definition together with the
// option entries scoped to it.
//
// The first option's wire type decides the depth: a group descends twice
// (group then nested subcommand), a subcommand descends once, anything else
// means the root declared no children and is itself the leaf. A name miss at
// any depth is a schema mismatch: the remote service's registered schema has
// drifted from the local definition.
func Resolve(root *Definition, options []domain.OptionPayload) (*Definition, []domain.OptionPayload, error) {
	if len(options) == 0 {
		return root, options, nil
	}

	first := options[0]
	if first.Type != domain.OptionSubcommand && first.Type != domain.OptionSubcommandGroup {
		return root, options, nil
	}

	child, ok := root.Child(first.Name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: command %q has no child %q",
			domain.ErrSchemaMismatch, root.Name(), first.Name)
	}
	scoped := first.Options

	if first.Type == domain.OptionSubcommandGroup {
		if len(scoped) == 0 {
			return nil, nil, fmt.Errorf("%w: group %q carried no subcommand",
				domain.ErrSchemaMismatch, child.Name())
		}

		leaf, ok := child.Child(scoped[0].Name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: group %q has no child %q",
				domain.ErrSchemaMismatch, child.Name(), scoped[0].Name)
		}
		return leaf, scoped[0].Options, nil
	}

	return child, scoped, nil
}
