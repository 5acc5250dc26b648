package issues

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Milestone is the subset of the GitHub milestone object this tool uses.
type Milestone struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
}

// Issue is the subset of the GitHub issue object this tool uses.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
}

// IssueSpec is a single issue to create, read from a definition file.
type IssueSpec struct {
	Title  string   `yaml:"title"`
	Body   string   `yaml:"body"`
	Labels []string `yaml:"labels"`
}

// Definition is a milestone-scoped batch of issues to create.
type Definition struct {
	Milestone string      `yaml:"milestone"`
	Issues    []IssueSpec `yaml:"issues"`
}

// LoadDefinition parses an issue definition YAML file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading issue definitions %s: %w", path, err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing issue definitions %s: %w", path, err)
	}
	if def.Milestone == "" {
		return nil, fmt.Errorf("issue definitions %s: milestone is required", path)
	}
	return &def, nil
}

// BootstrapResult reports what happened to one issue spec.
type BootstrapResult struct {
	Title   string
	Number  int
	Skipped bool
}

// Bootstrap ensures the definition's milestone exists, then creates every
// issue in it that does not already exist by title. Existing titles are
// skipped, so re-running a definition file is harmless.
func (c *Client) Bootstrap(ctx context.Context, def *Definition) ([]BootstrapResult, error) {
	milestone, err := c.ensureMilestone(ctx, def.Milestone)
	if err != nil {
		return nil, err
	}

	existing, err := c.listIssues(ctx, "all", milestone.Number)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]Issue, len(existing))
	for _, issue := range existing {
		byTitle[issue.Title] = issue
	}

	results := make([]BootstrapResult, 0, len(def.Issues))
	for _, spec := range def.Issues {
		if found, ok := byTitle[spec.Title]; ok {
			c.logger.Info("issue exists, skipping", "title", spec.Title, "number", found.Number)
			results = append(results, BootstrapResult{
				Title: spec.Title, Number: found.Number, Skipped: true,
			})
			continue
		}

		var created Issue
		err := c.post(ctx, "/repos/"+c.repo+"/issues", map[string]interface{}{
			"title":     spec.Title,
			"body":      spec.Body,
			"labels":    spec.Labels,
			"milestone": milestone.Number,
		}, &created)
		if err != nil {
			return results, fmt.Errorf("creating issue %q: %w", spec.Title, err)
		}
		c.logger.Info("issue created", "title", spec.Title, "number", created.Number)
		results = append(results, BootstrapResult{Title: spec.Title, Number: created.Number})
	}

	return results, nil
}

// CloseMilestone closes every open issue in the named milestone and
// returns the closed issues.
func (c *Client) CloseMilestone(ctx context.Context, title string) ([]Issue, error) {
	milestone, err := c.findMilestone(ctx, title)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, fmt.Errorf("milestone %q not found", title)
	}

	open, err := c.listIssues(ctx, "open", milestone.Number)
	if err != nil {
		return nil, err
	}

	closed := make([]Issue, 0, len(open))
	for _, issue := range open {
		path := fmt.Sprintf("/repos/%s/issues/%d", c.repo, issue.Number)
		if err := c.patch(ctx, path, map[string]string{"state": "closed"}, nil); err != nil {
			return closed, fmt.Errorf("closing issue #%d: %w", issue.Number, err)
		}
		c.logger.Info("issue closed", "title", issue.Title, "number", issue.Number)
		closed = append(closed, issue)
	}

	return closed, nil
}

// ensureMilestone finds the named milestone, creating it when absent.
func (c *Client) ensureMilestone(ctx context.Context, title string) (*Milestone, error) {
	milestone, err := c.findMilestone(ctx, title)
	if err != nil {
		return nil, err
	}
	if milestone != nil {
		return milestone, nil
	}

	var created Milestone
	err = c.post(ctx, "/repos/"+c.repo+"/milestones",
		map[string]string{"title": title}, &created)
	if err != nil {
		return nil, fmt.Errorf("creating milestone %q: %w", title, err)
	}
	c.logger.Info("milestone created", "title", title, "number", created.Number)
	return &created, nil
}

// findMilestone returns the milestone with the given title, or nil.
func (c *Client) findMilestone(ctx context.Context, title string) (*Milestone, error) {
	var milestones []Milestone
	err := c.get(ctx, "/repos/"+c.repo+"/milestones?state=all&per_page=100", &milestones)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}

	for _, m := range milestones {
		if m.Title == title {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

// listIssues returns issues in a milestone filtered by state
// ("open", "closed", or "all").
func (c *Client) listIssues(ctx context.Context, state string, milestone int) ([]Issue, error) {
	path := fmt.Sprintf("/repos/%s/issues?state=%s&milestone=%d&per_page=100",
		c.repo, url.QueryEscape(state), milestone)

	var issues []Issue
	if err := c.get(ctx, path, &issues); err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	return issues, nil
}
