// Package console provides the line-oriented game loop used when no
// terminal UI is available.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/codebreaker/internal/game"
	"github.com/verte-zerg/codebreaker/internal/history"
	"github.com/verte-zerg/codebreaker/internal/match"
	"github.com/verte-zerg/codebreaker/internal/stats"
)

const instructionsFormat = "You select a code length. The computer will pick a random numeric code of that length.  " +
	"You then try to guess the code.  On every guess, the computer will tell you how many numbers in your guess " +
	"are both the correct number and in the correct position (%s) and how many are the correct number but not " +
	"in the correct position (%s).  Using this information, you should eventually be able to deduce the correct code!"

// Options controls the console game.
type Options struct {
	// Length skips the code length prompt when greater than zero.
	Length int
	Reveal bool
	Glyphs match.Glyphs
}

// Console runs the menu and game loop over a reader and writer.
type Console struct {
	session *game.Session
	scanner *bufio.Scanner
	out     io.Writer
	opts    Options
}

// New constructs a console game.
func New(session *game.Session, in io.Reader, out io.Writer, opts Options) *Console {
	if opts.Glyphs == (match.Glyphs{}) {
		opts.Glyphs = match.EmojiGlyphs
	}
	return &Console{
		session: session,
		scanner: bufio.NewScanner(in),
		out:     out,
		opts:    opts,
	}
}

// Run shows the main menu until the player quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	c.println("CODE⚡BREAKER")
	for {
		c.println()
		c.println("What do you want to do?")
		c.println("(i) Show instructions")
		c.println("(s) High scores")
		c.println("(p) Play a game")
		c.println("(q) Quit")

		choice, err := c.readLine("")
		if err != nil {
			return ignoreEOF(err)
		}
		switch strings.ToLower(choice) {
		case "i":
			c.println(InstructionsText(c.opts.Glyphs))
		case "s":
			if err := stats.RenderScores(c.out, c.session.History()); err != nil {
				return err
			}
		case "p":
			if err := c.PlayRound(ctx); err != nil {
				return ignoreEOF(err)
			}
		case "q":
			c.println("Ok bye!")
			return nil
		default:
			c.println("I don't understand...")
		}
	}
}

// PlayRound plays one game and records it when the code is cracked.
func (c *Console) PlayRound(ctx context.Context) error {
	length := c.opts.Length
	if length <= 0 {
		var err error
		if length, err = c.readCodeLength(); err != nil {
			return err
		}
	}
	c.println(c.session.Summary(length))

	round := c.session.NewRound(length)
	if c.opts.Reveal {
		c.printf("(the code is %s)\n", round.Code())
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		turn, err := c.readGuess(round)
		if err != nil {
			return err
		}
		if round.Solved() {
			break
		}
		c.println(match.Render(turn.Result, length, c.opts.Glyphs))
	}

	c.printf("You cracked the code!  Number of guesses: %d\n", round.Guesses())
	notice, err := c.session.Complete(ctx, round)
	if msg := notice.String(); msg != "" {
		c.println(msg)
	}
	if err != nil {
		c.reportCompleteError(err)
	}
	return nil
}

func (c *Console) readCodeLength() (int, error) {
	for {
		input, err := c.readLine("How long do you want the code to be? ")
		if err != nil {
			return 0, err
		}
		length, err := game.ParseCodeLength(input)
		if err == nil {
			return length, nil
		}
		c.println(game.Message(err, 0))
	}
}

func (c *Console) readGuess(round *game.Round) (game.Turn, error) {
	for {
		input, err := c.readLine("Guess the code: ")
		if err != nil {
			return game.Turn{}, err
		}
		turn, err := round.Submit(input)
		if err == nil {
			return turn, nil
		}
		c.println(game.Message(err, round.Length()))
	}
}

func (c *Console) reportCompleteError(err error) {
	if errors.Is(err, history.ErrPersistence) {
		c.println("Uh oh, the history file couldn't be updated")
	}
	c.printf("warning: %v\n", err)
}

func (c *Console) readLine(prompt string) (string, error) {
	if prompt != "" {
		c.printf("%s", prompt)
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *Console) println(args ...any) {
	if _, err := fmt.Fprintln(c.out, args...); err != nil {
		// Best-effort output.
		_ = err
	}
}

func (c *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		// Best-effort output.
		_ = err
	}
}

// InstructionsText returns the rules using the given glyphs.
func InstructionsText(g match.Glyphs) string {
	return fmt.Sprintf(instructionsFormat, g.Exact, g.Partial)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
