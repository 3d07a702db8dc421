package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cordial/internal/core/domain"
)

func TestOptionConstructorsSetTypes(t *testing.T) {
	type TestCase struct {
		description string
		option      *Option
		want        domain.OptionType
	}

	testCases := []TestCase{
		{"string", StringOption("s", "d"), domain.OptionString},
		{"integer", IntegerOption("i", "d"), domain.OptionInteger},
		{"boolean", BooleanOption("b", "d"), domain.OptionBoolean},
		{"number", NumberOption("n", "d"), domain.OptionNumber},
		{"user", UserOption("u", "d"), domain.OptionUser},
		{"channel", ChannelOption("c", "d"), domain.OptionChannel},
		{"role", RoleOption("r", "d"), domain.OptionRole},
		{"mentionable", MentionableOption("m", "d"), domain.OptionMentionable},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.option.Type)
			assert.NoError(t, testCase.option.validate())
		})
	}
}

func TestOptionValidateRejectsChoicesWithAutocomplete(t *testing.T) {
	o := StringOption("fruit", "pick one").
		WithValueChoices("apple", "banana").
		WithAutocomplete(func(_ context.Context, _ *domain.Interaction, _ *Invocation) ([]domain.AutocompleteChoice, error) {
			return nil, nil
		})

	require.Error(t, o.validate())
}

func TestOptionValidateRejectsChoicesOnNonScalar(t *testing.T) {
	o := UserOption("who", "a user")
	o.Choices = []Choice{{Name: "x", Value: "y"}}

	require.Error(t, o.validate())
}

func TestOptionValidateRejectsChannelTypesOnNonChannel(t *testing.T) {
	o := StringOption("s", "d")
	o.ChannelTypes = []domain.ChannelType{domain.ChannelText}

	require.Error(t, o.validate())
}

func TestOptionValidateRejectsBoundsOnNonNumeric(t *testing.T) {
	o := StringOption("s", "d").WithBounds(0, 10)

	require.Error(t, o.validate())
}

func TestOptionValidateRejectsInvertedBounds(t *testing.T) {
	o := IntegerOption("i", "d").WithBounds(10, 0)

	require.Error(t, o.validate())
}

func TestOptionValidateRequiresNameAndDescription(t *testing.T) {
	require.Error(t, StringOption("", "d").validate())
	require.Error(t, StringOption("s", "").validate())
}

func TestWithValueChoicesDerivesNames(t *testing.T) {
	o := IntegerOption("count", "how many").WithValueChoices(1, 2, 3)

	require.Len(t, o.Choices, 3)
	assert.Equal(t, "2", o.Choices[1].Name)
	assert.Equal(t, 2, o.Choices[1].Value)
	assert.NoError(t, o.validate())
}
