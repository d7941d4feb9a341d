package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kwikquiz/internal/domain"
)

func newCreateCmd(configPath *string) *cobra.Command {
	var title string
	var seconds int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Author a new quiz interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			creator, err := service.Accounts.CurrentUser(cmd.Context())
			if errors.Is(err, domain.ErrAccountNotFound) {
				return fmt.Errorf("log in before creating a quiz")
			}
			if err != nil {
				return err
			}

			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			questions, err := readQuestions(in, out)
			if err != nil {
				return err
			}

			quiz, err := service.Catalog.Create(cmd.Context(), title, seconds, questions, creator)
			if errors.Is(err, domain.ErrValidation) {
				return fmt.Errorf("quiz rejected: %w", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\nquiz %q saved, %d questions, %ds per question\n", quiz.Title, len(quiz.Questions), quiz.SecondsPerQuestion)
			fmt.Fprintf(out, "share this join code: %s\n", quiz.JoinCode)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "quiz title")
	cmd.Flags().IntVar(&seconds, "seconds", 10, "seconds per question (5, 10, 15, 30 or 60)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// readQuestions prompts for questions until the author declines to add more.
func readQuestions(in *bufio.Reader, out io.Writer) ([]domain.Question, error) {
	var questions []domain.Question
	for {
		fmt.Fprintf(out, "\nquestion %d prompt: ", len(questions)+1)
		prompt, err := readLine(in)
		if err != nil {
			return nil, err
		}

		options := make([]string, 4)
		for i := range options {
			fmt.Fprintf(out, "option %c: ", 'A'+i)
			options[i], err = readLine(in)
			if err != nil {
				return nil, err
			}
		}

		fmt.Fprint(out, "correct option (A-D): ")
		answer, err := readLine(in)
		if err != nil {
			return nil, err
		}
		correct, err := optionIndex(answer, len(options))
		if err != nil {
			return nil, err
		}

		questions = append(questions, domain.Question{
			Prompt:       prompt,
			Options:      options,
			CorrectIndex: correct,
		})

		fmt.Fprint(out, "add another question? (y/N): ")
		more, err := readLine(in)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(more, "y") {
			return questions, nil
		}
	}
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// optionIndex accepts a letter (A-D) or a 1-based number.
func optionIndex(raw string, count int) (int, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if len(raw) == 1 && raw[0] >= 'A' && raw[0] < byte('A'+count) {
		return int(raw[0] - 'A'), nil
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= count {
		return n - 1, nil
	}
	return 0, fmt.Errorf("%w: choose one of A-%c", domain.ErrValidation, 'A'+count-1)
}
