package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
	"github.com/Kamar-Folarin/ghost-vault/internal/vault"
)

const defaultSwitchMonths = 6

// SeedFile describes users and the projects they ghost
type SeedFile struct {
	Users    []SeedUser    `yaml:"users"`
	Projects []SeedProject `yaml:"projects"`
}

type SeedUser struct {
	Email       string `yaml:"email"`
	DisplayName string `yaml:"display_name"`
	RealName    string `yaml:"real_name"`
}

type SeedProject struct {
	Owner               string `yaml:"owner"`
	Title               string `yaml:"title"`
	GithubURL           string `yaml:"github_url"`
	GhostLog            string `yaml:"ghost_log"`
	DeadManSwitchMonths int    `yaml:"dead_man_switch_months"`
}

// SeedResult counts what a seed run did
type SeedResult struct {
	Users    int
	Projects int
	Skipped  int
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load users and projects from a YAML file",
	Long: `Sign in every user listed in the file and ghost their projects.
Repositories already in the vault are skipped, so seeding is repeatable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := LoadSeed(args[0])
		if err != nil {
			return err
		}

		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		a.logger.SetOutput(os.Stderr)

		result, err := applySeed(cmd.Context(), seed, a.auth, a.projects)
		if err != nil {
			return err
		}
		ui.Success("Seeded %d users and %d projects (%d already present)", result.Users, result.Projects, result.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// LoadSeed reads and validates a seed file
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	users := make(map[string]bool, len(seed.Users))
	for i, u := range seed.Users {
		if u.Email == "" {
			return nil, fmt.Errorf("user %d has no email", i+1)
		}
		users[strings.ToLower(u.Email)] = true
	}
	for i, p := range seed.Projects {
		if !users[strings.ToLower(p.Owner)] {
			return nil, fmt.Errorf("project %d: owner %q is not listed under users", i+1, p.Owner)
		}
		if p.Title == "" || p.GithubURL == "" {
			return nil, fmt.Errorf("project %d: title and github_url are required", i+1)
		}
		if p.DeadManSwitchMonths == 0 {
			seed.Projects[i].DeadManSwitchMonths = defaultSwitchMonths
		}
	}
	return &seed, nil
}

type seedSignIn interface {
	SignIn(ctx context.Context, req vault.SignInRequest) (*models.Session, error)
}

type seedSubmit interface {
	Submit(ctx context.Context, session *models.Session, req vault.SubmitRequest) (*models.Project, error)
}

func applySeed(ctx context.Context, seed *SeedFile, auth seedSignIn, projects seedSubmit) (SeedResult, error) {
	var result SeedResult

	sessions := make(map[string]*models.Session, len(seed.Users))
	for _, u := range seed.Users {
		session, err := auth.SignIn(ctx, vault.SignInRequest{
			Email:       u.Email,
			DisplayName: u.DisplayName,
			RealName:    u.RealName,
		})
		if err != nil {
			return result, fmt.Errorf("failed to sign in %s: %w", u.Email, err)
		}
		sessions[strings.ToLower(u.Email)] = session
		result.Users++
	}

	for _, p := range seed.Projects {
		_, err := projects.Submit(ctx, sessions[strings.ToLower(p.Owner)], vault.SubmitRequest{
			Title:               p.Title,
			GithubURL:           p.GithubURL,
			GhostLog:            p.GhostLog,
			DeadManSwitchMonths: p.DeadManSwitchMonths,
		})
		switch {
		case apperrors.IsConflict(err):
			result.Skipped++
			ui.Info("%s is already in the vault", p.GithubURL)
		case err != nil:
			return result, fmt.Errorf("failed to ghost %s: %w", p.GithubURL, err)
		default:
			result.Projects++
			ui.Info("Ghosted %s", p.GithubURL)
		}
	}

	return result, nil
}
