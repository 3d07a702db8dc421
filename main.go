package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"cordial/internal/adapters/cache"
	"cordial/internal/adapters/gateway"
	"cordial/internal/adapters/sender"
	"cordial/internal/core/domain"
	"cordial/internal/core/domain/command"
	"cordial/internal/core/domain/component"
	"cordial/internal/core/service"
)

func main() {
	log.Info().Msg("starting cordial...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetDefault("engine.log_level", "info")
	viper.SetDefault("engine.view_timeout", "3m")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("engine.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	viewTimeout, err := time.ParseDuration(viper.GetString("engine.view_timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid view timeout in config")
	}

	memCache := cache.NewMemoryCache()
	recorder := sender.NewRecorder()
	router := service.NewRouter(recorder, memCache)

	tree := command.NewTree("cordial-demo")
	tree.AddAll(
		mathCommand(),
		counterCommand(viewTimeout),
		feedbackCommand(viewTimeout),
	)
	router.RegisterCommands(tree)

	replayPath := viper.GetString("engine.replay_file")
	if replayPath == "" {
		log.Fatal().Msg("no replay file configured")
	}

	replay, f, err := gateway.NewReplayFile(replayPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open replay file")
	}
	defer f.Close()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		return router.Serve(gctx, replay)
	})

	log.Info().Str("file", replayPath).Msg("replaying events")
	if err := grp.Wait(); err != nil {
		log.Error().Err(err).Msg("replay stopped")
	}

	router.Shutdown()
	log.Info().Int("responses", len(recorder.Created())).Msg("replay finished")
}

// mathCommand demonstrates subcommand resolution, typed option access and
// autocomplete.
func mathCommand() *command.Definition {
	operations := []string{"add", "sub"}

	return command.New("math", "integer arithmetic").
		MustAddSubcommand(command.New("add", "add two integers").
			MustAddOption(command.IntegerOption("x", "first operand").WithRequired()).
			MustAddOption(command.IntegerOption("y", "second operand").WithRequired()).
			MustSetHandler(func(ctx context.Context, ix *domain.Interaction, inv *command.Invocation) error {
				return ix.Response.SendMessage(ctx, &domain.MessagePayload{
					Content: strconv.FormatInt(inv.Int("x")+inv.Int("y"), 10),
				})
			})).
		MustAddSubcommand(command.New("sub", "subtract two integers").
			MustAddOption(command.IntegerOption("x", "first operand").WithRequired()).
			MustAddOption(command.IntegerOption("y", "second operand").WithRequired()).
			MustSetHandler(func(ctx context.Context, ix *domain.Interaction, inv *command.Invocation) error {
				return ix.Response.SendMessage(ctx, &domain.MessagePayload{
					Content: strconv.FormatInt(inv.Int("x")-inv.Int("y"), 10),
				})
			})).
		MustAddSubcommand(command.New("help", "describe an operation").
			MustAddOption(command.StringOption("operation", "operation name").
				WithAutocomplete(func(_ context.Context, ix *domain.Interaction, _ *command.Invocation) ([]domain.AutocompleteChoice, error) {
					var choices []domain.AutocompleteChoice
					for _, op := range operations {
						if strings.HasPrefix(op, strings.ToLower(ix.Query)) {
							choices = append(choices, domain.AutocompleteChoice{Name: op, Value: op})
						}
					}
					return choices, nil
				})).
			MustSetHandler(func(ctx context.Context, ix *domain.Interaction, inv *command.Invocation) error {
				return ix.Response.SendMessage(ctx, &domain.MessagePayload{
					Content: fmt.Sprintf("%s takes two integers x and y", inv.String("operation")),
				})
			}))
}

// counterCommand demonstrates a live view: each invocation sends a message
// whose button increments a counter until the view times out.
func counterCommand(timeout time.Duration) *command.Definition {
	return command.New("counter", "a button that counts clicks").
		MustSetHandler(func(ctx context.Context, ix *domain.Interaction, _ *command.Invocation) error {
			var clicks atomic.Int64

			view := component.NewView(timeout)
			view.MustAddItem(component.NewButton(domain.ButtonPrimary, "Click me").
				OnClick(func(ctx context.Context, ix *domain.Interaction) error {
					return ix.Response.EditMessage(ctx, &domain.MessagePayload{
						Content: fmt.Sprintf("clicks: %d", clicks.Add(1)),
					})
				}))

			return ix.Response.SendMessage(ctx, &domain.MessagePayload{
				Content: "clicks: 0",
				View:    view,
			})
		})
}

// feedbackCommand demonstrates a modal round trip: the command responds
// with a form whose submission is echoed back.
func feedbackCommand(timeout time.Duration) *command.Definition {
	return command.New("feedback", "leave feedback via a form").
		MustSetHandler(func(ctx context.Context, ix *domain.Interaction, _ *command.Invocation) error {
			input := component.NewTextInput("Your feedback").
				WithStyle(domain.TextInputParagraph).
				WithRequired()

			modal := component.NewModal("Feedback", timeout)
			modal.MustAddItem(input)
			modal.Handler = func(ctx context.Context, ix *domain.Interaction) error {
				text, ok := input.Value()
				if !ok {
					return fmt.Errorf("feedback submission carried no value")
				}
				return ix.Response.SendMessage(ctx, &domain.MessagePayload{
					Content:   "thanks: " + text,
					Ephemeral: true,
				})
			}

			return ix.Response.SendModal(ctx, modal)
		})
}
