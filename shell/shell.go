package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect6/board"
	"github.com/domino14/connect6/config"
	"github.com/domino14/connect6/move"
	"github.com/domino14/connect6/turnplayer"
	"github.com/domino14/connect6/zobrist"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errGameOver          = errors.New("the game is over; start a new one with `new`")
	errQuit              = errors.New("sending quit signal")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// ShellController runs an interactive game against a computer opponent.
// The controller's board is the authoritative one; the opponent keeps its
// own copy and is only told about moves.
type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config   *config.Config
	strategy string
	opponent turnplayer.TurnPlayer

	board     *board.Board
	userColor board.Color
	history   []*move.Move
	gameOver  bool

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mconnect6>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc, err := newController(cfg, l.Stderr())
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func newController(cfg *config.Config, out io.Writer) (*ShellController, error) {
	sc := &ShellController{
		out:       out,
		config:    cfg,
		strategy:  cfg.GetString(config.ConfigStrategy),
		board:     board.NewBoard(zobrist.New(board.NumCells, cfg.GetUint64(config.ConfigZobristSeed))),
		userColor: board.Black,
	}
	if err := sc.setOpponent(sc.strategy); err != nil {
		return nil, err
	}
	return sc, nil
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// Execute runs a single command line and prints its result.
func (sc *ShellController) Execute(sig chan os.Signal, line string) error {
	resp, err := sc.standardModeSwitch(line)
	if errors.Is(err, errQuit) {
		sig <- syscall.SIGINT
		return err
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) standardModeSwitch(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "new":
		return sc.newGame(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "show", "s":
		return msg(sc.boardText()), nil
	case "moves":
		return sc.moves()
	case "eval":
		return sc.eval()
	case "strategy":
		return sc.setStrategy(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "help":
		usage(sc.out)
		return nil, nil
	case "exit", "bye":
		return nil, errQuit
	}
	log.Debug().Msgf("you said: %v", line)
	return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.Execute(sig, line); err != nil {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any background work.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
		<-sc.autoplayDone
	}
}
