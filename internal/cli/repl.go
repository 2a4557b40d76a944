package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/saeidalz13/battleship-fleet/db/sqlc"
	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
	"github.com/saeidalz13/battleship-fleet/internal/render"
	"github.com/saeidalz13/battleship-fleet/internal/session"
)

const helpText = `commands:
  select <size>      pick a ship size to place
  toggle             flip between HORIZONTAL and VERTICAL
  place <col> <row>  place the ship with its anchor at col,row (e.g. place A 1)
  cancel             put the selected size back
  submit             send the completed fleet
  show               print the board
  stats              print stored placement and submission counts
  quit               leave
`

type REPL struct {
	session       *session.Session
	out           io.Writer
	submitTimeout time.Duration
	stats         StatsReader
}

// StatsReader reports the stored placement outcomes and submissions.
type StatsReader interface {
	FleetStats(ctx context.Context, gameId string) ([]sqlc.StatCount, error)
}

type Option func(*REPL)

func WithStats(stats StatsReader) Option {
	return func(r *REPL) {
		r.stats = stats
	}
}

func NewREPL(s *session.Session, out io.Writer, submitTimeout time.Duration, opts ...Option) *REPL {
	r := REPL{session: s, out: out, submitTimeout: submitTimeout}
	for _, opt := range opts {
		opt(&r)
	}
	return &r
}

// Run reads commands from in until quit, EOF, a successful submission or
// ctx is done. A done ctx is returned as its error.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprint(r.out, helpText)
	fmt.Fprint(r.out, render.Render(r.session.Engine()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go readLines(ctx, in, lines, scanErr)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()

		case l, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return <-scanErr
			}
			line = l
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		quit, err := r.exec(ctx, fields)
		if err != nil {
			fmt.Fprintln(r.out, "error:", err)
		}
		if quit || r.session.Ended() {
			return nil
		}
	}
}

// readLines feeds lines to Run so a blocked read on in never holds up
// cancellation. The reader goroutine stays parked on in until it yields.
func readLines(ctx context.Context, in io.Reader, lines chan<- string, scanErr chan<- error) {
	var err error
	defer func() {
		scanErr <- err
		close(lines)
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	err = scanner.Err()
}

func (r *REPL) exec(ctx context.Context, fields []string) (bool, error) {
	engine := r.session.Engine()

	switch strings.ToLower(fields[0]) {
	case "select":
		if len(fields) != 2 {
			return false, cerr.ErrInvalidCommand(strings.Join(fields, " "))
		}
		size, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, cerr.ErrInvalidCommand(strings.Join(fields, " "))
		}
		return false, engine.SelectSize(size)

	case "toggle":
		return false, engine.ToggleOrientation()

	case "place":
		column, row, err := placeArgs(fields[1:])
		if err != nil {
			return false, err
		}
		_, err = engine.PlaceShip(column, row)
		return false, err

	case "cancel":
		return false, engine.CancelSelection()

	case "submit":
		ctx, cancel := context.WithTimeout(ctx, r.submitTimeout)
		defer cancel()
		return false, r.session.Submit(ctx)

	case "show":
		fmt.Fprint(r.out, render.Render(engine))
		return false, nil

	case "stats":
		return false, r.printStats(ctx)

	case "help":
		fmt.Fprint(r.out, helpText)
		return false, nil

	case "quit", "exit":
		return true, nil

	default:
		return false, cerr.ErrInvalidCommand(fields[0])
	}
}

func (r *REPL) printStats(ctx context.Context) error {
	if r.stats == nil {
		return cerr.ErrStatsUnavailable
	}

	stats, err := r.stats.FleetStats(ctx, r.session.GameId())
	if err != nil {
		return err
	}
	for _, stat := range stats {
		fmt.Fprintf(r.out, "%-16s %d\n", stat.Name, stat.Count)
	}
	return nil
}

// placeArgs accepts "A 1" as well as "A1".
func placeArgs(args []string) (string, string, error) {
	switch len(args) {
	case 2:
		return args[0], args[1], nil
	case 1:
		if len(args[0]) < 2 {
			return "", "", cerr.ErrInvalidCommand("place " + args[0])
		}
		return args[0][:1], args[0][1:], nil
	default:
		return "", "", cerr.ErrInvalidCommand("place " + strings.Join(args, " "))
	}
}
