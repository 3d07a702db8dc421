package gateway

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Replay feeds line-delimited JSON interaction payloads from a reader into
// the dispatch function, one event per line. Blank lines and # comments are
// skipped. It implements port.EventSource for demos and integration tests.
type Replay struct {
	r io.Reader
}

func NewReplay(r io.Reader) *Replay {
	return &Replay{r: r}
}

// NewReplayFile opens the events file at path for replaying. The caller
// owns closing the returned file.
func NewReplayFile(path string) (*Replay, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening replay file: %w", err)
	}
	return NewReplay(f), f, nil
}

func (g *Replay) Run(ctx context.Context, dispatch func(ctx context.Context, raw []byte)) error {
	scanner := bufio.NewScanner(g.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 || raw[0] == '#' {
			continue
		}

		log.Debug().Int("line", line).Msg("replaying event")
		dispatch(ctx, append([]byte(nil), raw...))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading replay stream: %w", err)
	}
	return nil
}
