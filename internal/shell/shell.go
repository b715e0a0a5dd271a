// Package shell implements the interactive session: repository prompt,
// report menu, dispatch to the analysis functions and the optional chat
// turns. All session state (current repository data, chat transcript)
// lives in the Session value, never in package globals.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"github.com/acuervo/repolens/internal/chat"
	"github.com/acuervo/repolens/internal/domain"
	"github.com/acuervo/repolens/internal/gateway"
	"github.com/acuervo/repolens/internal/presenter"
	"github.com/acuervo/repolens/internal/usecase"
)

// Defaults used when the repository prompt is left blank.
const (
	DefaultOwner = "mozilla-ai"
	DefaultRepo  = "lumigator"
)

// Session drives one interactive run. agent is nil for the local variant;
// when present, the menu gains a free-form question option.
type Session struct {
	fetcher   gateway.Fetcher
	agent     *chat.Agent
	logger    *logrus.Logger
	in        *bufio.Scanner
	out       io.Writer
	presenter *presenter.Presenter

	owner string
	repo  string
	data  *domain.RepoData
}

// New creates a Session reading choices from in and writing reports to out.
func New(fetcher gateway.Fetcher, agent *chat.Agent, logger *logrus.Logger, in io.Reader, out io.Writer) *Session {
	return &Session{
		fetcher:   fetcher,
		agent:     agent,
		logger:    logger,
		in:        bufio.NewScanner(in),
		out:       out,
		presenter: presenter.New(out),
	}
}

// Run loops through repository selection and the report menu until the
// user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	s.banner()

	for {
		if !s.promptRepository() {
			return nil
		}
		if !s.load(ctx) {
			// Repository info could not be fetched; back to the prompt.
			continue
		}
		if s.menuLoop(ctx) {
			return nil
		}
	}
}

func (s *Session) banner() {
	title := "GITHUB REPOSITORY ANALYZER"
	if s.agent != nil {
		title = "GITHUB REPOSITORY ANALYSIS AGENT"
	}
	pterm.DefaultHeader.Println(title)
}

// promptRepository collects owner and repo, defaulting to the example
// pair on blank input. Returns false on end of input.
func (s *Session) promptRepository() bool {
	fmt.Fprintln(s.out, "\nEnter the repository to analyze:")

	owner, ok := s.readLine(fmt.Sprintf("Owner (e.g. %s): ", DefaultOwner))
	if !ok {
		return false
	}
	repo, ok := s.readLine(fmt.Sprintf("Repo (e.g. %s): ", DefaultRepo))
	if !ok {
		return false
	}

	if owner == "" {
		owner = DefaultOwner
	}
	if repo == "" {
		repo = DefaultRepo
	}
	s.owner, s.repo = owner, repo
	return true
}

// load fetches the repository once per selection and seeds the chat
// context. Reports false when the fetch failed.
func (s *Session) load(ctx context.Context) bool {
	data, err := s.fetcher.FetchRepository(ctx, s.owner, s.repo)
	if err != nil {
		s.logger.WithError(err).Warn("repository fetch failed")
		pterm.Error.Println("Could not retrieve repository data")
		fmt.Fprintf(s.out, "Could not retrieve data for %s/%s\n", s.owner, s.repo)
		return false
	}
	s.data = data

	if s.agent != nil {
		s.agent.SetContext(usecase.BuildContext(s.owner, s.repo, data))
	}
	pterm.Success.Printf("Loaded %s/%s\n", s.owner, s.repo)
	return true
}

// menuLoop dispatches menu choices until the user exits (true) or asks
// for another repository (false).
func (s *Session) menuLoop(ctx context.Context) (exit bool) {
	for {
		s.printMenu()
		choice, ok := s.readLine("\nChoose an option: ")
		if !ok {
			return true
		}

		switch strings.ToLower(choice) {
		case "1":
			s.presenter.Contributors(usecase.RankContributors(s.data.Contributors))
		case "2":
			s.presenter.Velocity(usecase.AnalyzeVelocity(s.data.Commits), s.data.Repo)
		case "3":
			s.presenter.Complexity(usecase.AnalyzeComplexity(s.data.Tree))
		case "4":
			s.presenter.Documentation(usecase.AnalyzeDocumentation(s.data.Tree), s.data.Repo)
		case "5":
			s.presenter.Summary(usecase.Summarize(s.data))
		case "6":
			s.fullAnalysis()
		case "7":
			// Back to the repository prompt.
			return false
		case "8":
			if s.agent == nil {
				fmt.Fprintln(s.out, "Invalid option")
				continue
			}
			s.askQuestion(ctx)
		case "0", "q":
			fmt.Fprintln(s.out, "\nGoodbye!")
			return true
		default:
			fmt.Fprintln(s.out, "Invalid option")
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out, "\nANALYSIS OPTIONS:")
	fmt.Fprintln(s.out, "1. Top contributors")
	fmt.Fprintln(s.out, "2. Development velocity")
	fmt.Fprintln(s.out, "3. Most complex code area")
	fmt.Fprintln(s.out, "4. Documentation review")
	fmt.Fprintln(s.out, "5. Executive summary")
	fmt.Fprintln(s.out, "6. Full analysis")
	fmt.Fprintln(s.out, "7. Switch repository")
	if s.agent != nil {
		fmt.Fprintln(s.out, "8. Ask a question about this repository")
	}
	fmt.Fprintln(s.out, "0. Exit")
}

func (s *Session) fullAnalysis() {
	fmt.Fprintf(s.out, "\nFULL ANALYSIS: %s/%s\n\n", s.owner, s.repo)
	s.presenter.FullAnalysis(s.data,
		usecase.Summarize(s.data),
		usecase.RankContributors(s.data.Contributors),
		usecase.AnalyzeVelocity(s.data.Commits),
		usecase.AnalyzeComplexity(s.data.Tree),
		usecase.AnalyzeDocumentation(s.data.Tree),
	)
}

func (s *Session) askQuestion(ctx context.Context) {
	question, ok := s.readLine("\nYour question: ")
	if !ok || question == "" {
		return
	}

	spinner, _ := pterm.DefaultSpinner.Start("Analyzing...")
	answer, err := s.agent.Ask(ctx, question)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		if errors.Is(err, chat.ErrNoContext) {
			pterm.Warning.Println("Run a repository analysis first")
			return
		}
		s.logger.WithError(err).Warn("chat turn failed")
		fmt.Fprintf(s.out, "Could not get an answer: %v\n", err)
		return
	}

	fmt.Fprintln(s.out, strings.Repeat("=", 60))
	fmt.Fprintln(s.out, "ANSWER:")
	fmt.Fprintln(s.out, strings.Repeat("=", 60))
	fmt.Fprintln(s.out, answer)
	fmt.Fprintln(s.out, strings.Repeat("=", 60))
}

// readLine prints the prompt and reads one trimmed line. ok is false when
// the input is exhausted.
func (s *Session) readLine(prompt string) (line string, ok bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
