package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

const barWidth = 30

type category struct {
	name   string
	points int
	max    int
}

func categories(score health.HealthScore) []category {
	if score.Policy == health.PolicySubmission {
		return []category{
			{"Documentation", score.Documentation, 30},
			{"Structure", score.Structure, 30},
			{"Activity", score.Freshness, 40},
		}
	}
	return []category{
		{"Documentation", score.Documentation, health.MaxDocumentation},
		{"Structure", score.Structure, health.MaxStructure},
		{"Freshness", score.Freshness, health.MaxFreshness},
		{"Stability", score.Stability, health.MaxStability},
	}
}

// Score prints the health report of one repository.
func (u *UI) Score(name string, facts health.RepoFacts, score health.HealthScore, now time.Time) {
	fmt.Fprintln(u.Out, StyleHeader.Render(name))
	fmt.Fprintf(u.Out, "%s %3d/100  %s  %s\n\n",
		HealthBar(score.Total, barWidth), score.Total, GradeColor(score.Grade), score.Status)

	table := u.Table([]string{"Category", "Points", "Max"})
	for _, c := range categories(score) {
		_ = table.Append([]string{c.name, strconv.Itoa(c.points), strconv.Itoa(c.max)})
	}
	_ = table.Render()

	fmt.Fprintln(u.Out)
	lastCommit := "unknown"
	if facts.HasKnownCommit() {
		lastCommit = fmt.Sprintf("%s (%.1f months ago)",
			facts.LastCommitDate.Format("2006-01-02"), health.MonthsSince(facts.LastCommitDate, now))
	}
	u.field("README", fmt.Sprintf("%t, %d words", facts.HasReadme, facts.ReadmeWordCount))
	u.field("Dependencies", strconv.FormatBool(facts.HasDependencyFile))
	u.field("Tests", strconv.FormatBool(facts.HasTestsFolder))
	u.field("Workflows", strconv.FormatBool(facts.HasGithubWorkflows))
	u.field("Root entries", strconv.Itoa(facts.FileCount))
	u.field("Last commit", lastCommit)
	u.field("Policy", StyleMuted.Render(score.Policy))
}

func (u *UI) field(label, value string) {
	fmt.Fprintf(u.Out, "%s%s\n", StyleLabel.Render(label), value)
}

// Projects prints a listing of projects.
func (u *UI) Projects(projects []*models.Project, now time.Time) {
	table := u.Table([]string{"Repository", "Owner", "Health", "Grade", "Status", "Switch"})
	for _, p := range projects {
		grade := "-"
		if p.HealthScore != nil {
			grade = GradeColor(p.HealthScore.Grade)
		}
		status := string(p.Status)
		if p.IsExpired(now) {
			status = string(models.ProjectExpired)
		}
		_ = table.Append([]string{
			Cyan(p.RepoFullName),
			p.OwnerGhostName,
			HealthBar(p.TotalScore(), 10) + " " + strconv.Itoa(p.TotalScore()),
			grade,
			StatusColor(status),
			health.TimeUntilExpiry(p.ExpiryDate, now),
		})
	}
	_ = table.Render()
}
