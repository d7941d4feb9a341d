package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"kwikquiz/internal/app"
	"kwikquiz/internal/domain"
)

func newPlayCmd(configPath *string) *cobra.Command {
	var playerName string
	cmd := &cobra.Command{
		Use:   "play <join-code>",
		Short: "Join a quiz by code and play it under the countdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			quiz, err := service.Catalog.FindByCode(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrQuizNotFound) {
				return fmt.Errorf("no quiz matches code %q", args[0])
			}
			if err != nil {
				return err
			}

			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if playerName == "" {
				fmt.Fprint(out, "your name: ")
				playerName, err = readLine(in)
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(playerName) == "" {
				return fmt.Errorf("player name must not be empty")
			}

			session, err := service.StartSession(quiz, playerName)
			if err != nil {
				return err
			}
			return runPlayLoop(session, in, out)
		},
	}
	cmd.Flags().StringVar(&playerName, "name", "", "name shown on the leaderboard")
	return cmd
}

// runPlayLoop renders session snapshots and feeds typed answers into the
// state machine until the session completes. Typing a letter selects that
// option; an empty line submits the current selection.
func runPlayLoop(session *app.PlaySession, in *bufio.Reader, out io.Writer) error {
	updates, cancel := session.Subscribe()
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := in.ReadString('\n')
			if err != nil {
				return
			}
			lines <- strings.TrimSpace(line)
		}
	}()

	quiz := session.Quiz()
	lastQuestion := -1
	lastState := app.SessionState(-1)

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			if snap.State == app.StateAwaitingAnswer && snap.QuestionIndex != lastQuestion {
				lastQuestion = snap.QuestionIndex
				printQuestion(out, quiz, snap.QuestionIndex)
			}
			if snap.State == app.StateAwaitingAnswer && snap.State == lastState {
				fmt.Fprintf(out, "  %ds left\n", snap.TimeRemaining)
			}
			if snap.State == app.StateShowingFeedback && lastState != app.StateShowingFeedback {
				if snap.WasCorrect {
					fmt.Fprintln(out, "correct!")
				} else {
					correct := quiz.Questions[snap.QuestionIndex].CorrectIndex
					fmt.Fprintf(out, "incorrect. the answer was %c\n", 'A'+correct)
				}
			}
			if snap.State == app.StateCompleted {
				result, _ := session.Result()
				fmt.Fprintf(out, "\ndone! %s scored %d/%d (%d%%)\n",
					result.PlayerName, result.Score, result.TotalQuestions, result.Percentage())
				return nil
			}
			lastState = snap.State
		case line, ok := <-lines:
			if !ok {
				lines = nil // stdin closed; keep draining session updates
				continue
			}
			if line == "" {
				if err := session.Submit(); errors.Is(err, domain.ErrInvalidTransition) {
					fmt.Fprintln(out, "pick an option first")
				}
				continue
			}
			index, err := optionIndex(line, len(quiz.Questions[maxInt(lastQuestion, 0)].Options))
			if err != nil {
				fmt.Fprintln(out, "type a letter to select, empty line to submit")
				continue
			}
			if err := session.Select(index); err == nil {
				fmt.Fprintf(out, "selected %c (empty line to submit)\n", 'A'+index)
			}
		}
	}
}

func printQuestion(out io.Writer, quiz domain.Quiz, index int) {
	q := quiz.Questions[index]
	fmt.Fprintf(out, "\nquestion %d of %d: %s\n", index+1, len(quiz.Questions), q.Prompt)
	for i, option := range q.Options {
		fmt.Fprintf(out, "  %c. %s\n", 'A'+i, option)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
