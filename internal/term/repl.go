package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jaminalder/tic-tac-toe-history/internal/app"
	"github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

const help = "commands: play <cell 0-8> | jump <move> | sort | show | help | quit"

// Run reads line commands from in until quit or EOF, rendering the game to out
// after every command that changes what is shown.
func Run(in io.Reader, out io.Writer, svc *app.Service, r *Renderer) error {
	if err := r.Render(out, svc.Snapshot().View); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		if _, err := io.WriteString(out, "> "); err != nil {
			return err
		}
		if !sc.Scan() {
			return sc.Err()
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var snap app.Snapshot
		switch cmd := strings.ToLower(fields[0]); cmd {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			_, _ = fmt.Fprintln(out, help)
			continue
		case "show":
			snap = svc.Snapshot()
		case "sort":
			snap = svc.ToggleSortOrder()
		case "play", "jump":
			n, err := argument(fields)
			if err != nil {
				_, _ = fmt.Fprintf(out, "%s: %v\n", cmd, err)
				continue
			}
			if cmd == "play" {
				snap, _ = svc.Play(n)
				break
			}
			snap, err = svc.JumpTo(n)
			if errors.Is(err, domain.ErrMoveOutOfRange) {
				_, _ = fmt.Fprintf(out, "jump: no move #%d\n", n)
				continue
			}
		default:
			_, _ = fmt.Fprintf(out, "unknown command %q; %s\n", cmd, help)
			continue
		}

		if err := r.Render(out, snap.View); err != nil {
			return err
		}
	}
}

func argument(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, errors.New("expected one number")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", fields[1])
	}
	return n, nil
}
