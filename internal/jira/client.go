// Package jira handles all interactions with the Jira REST API.
package jira

import (
	"context"
	"errors"
	"fmt"
	"sort"

	jira "github.com/andygrunwald/go-jira"

	"github.com/conductor-cli/conductor/internal/logging"
	"github.com/conductor-cli/conductor/pkg/models"
)

// ErrNoTickets means a search ran fine but matched nothing. Callers treat
// it as a normal outcome, not a failure.
var ErrNoTickets = errors.New("no tickets found")

// Client wraps the Jira REST API for the handful of calls the tool makes.
type Client struct {
	client *jira.Client
}

// Project is one selectable Jira project.
type Project struct {
	Key  string
	Name string
}

// NewClient creates a Jira client authenticating with basic auth, which
// Atlassian Cloud expects to be the account email plus an API token.
func NewClient(server, username, token string) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: username,
		Password: token,
	}

	client, err := jira.NewClient(tp.Client(), server)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &Client{client: client}, nil
}

// Verify checks the credentials by requesting the authenticated user's own
// profile.
func (c *Client) Verify(ctx context.Context) error {
	self, resp, err := c.client.User.GetSelfWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to jira: %v (status: %d)", err, statusCode(resp))
	}

	logging.Debug("jira credentials verified", "account", self.EmailAddress)
	return nil
}

// SearchTickets runs the JQL query and converts the results. It returns
// ErrNoTickets when the query matches nothing, and capped reports whether
// the result count hit the maxResults limit.
func (c *Client) SearchTickets(ctx context.Context, jql string, maxResults int) (tickets []models.Ticket, capped bool, err error) {
	logging.Debug("searching jira",
		"jql", jql,
		"max_results", maxResults)

	opts := &jira.SearchOptions{
		StartAt:    0,
		MaxResults: maxResults,
	}

	issues, resp, err := c.client.Issue.SearchWithContext(ctx, jql, opts)
	if err != nil {
		return nil, false, fmt.Errorf("failed to search jira issues: %v (status: %d)", err, statusCode(resp))
	}
	if len(issues) == 0 {
		return nil, false, ErrNoTickets
	}

	tickets = make([]models.Ticket, 0, len(issues))
	for _, issue := range issues {
		ticket, err := convertIssue(issue)
		if err != nil {
			return nil, false, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, len(issues) >= maxResults, nil
}

// Projects lists the projects visible to the user, sorted by key.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	list, resp, err := c.client.Project.GetListWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jira projects: %v (status: %d)", err, statusCode(resp))
	}

	projects := make([]Project, 0, len(*list))
	for _, project := range *list {
		projects = append(projects, Project{Key: project.Key, Name: project.Name})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Key < projects[j].Key })

	return projects, nil
}

// Statuses lists the distinct workflow status names, sorted.
func (c *Client) Statuses(ctx context.Context) ([]string, error) {
	statuses, resp, err := c.client.Status.GetAllStatusesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jira statuses: %v (status: %d)", err, statusCode(resp))
	}

	seen := map[string]bool{}
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		if status.Name == "" || seen[status.Name] {
			continue
		}
		seen[status.Name] = true
		names = append(names, status.Name)
	}
	sort.Strings(names)

	return names, nil
}

// convertIssue maps an API issue onto the fixed-shape ticket record.
// Issues missing a required field are rejected up front instead of
// surfacing as blank branch names later in the workflow. An empty summary
// is allowed.
func convertIssue(issue jira.Issue) (models.Ticket, error) {
	if issue.Key == "" {
		return models.Ticket{}, fmt.Errorf("jira returned an issue without a key")
	}
	if issue.Fields == nil {
		return models.Ticket{}, fmt.Errorf("issue %s has no fields", issue.Key)
	}
	if issue.Fields.Type.Name == "" {
		return models.Ticket{}, fmt.Errorf("issue %s has no issue type", issue.Key)
	}
	if issue.Fields.Status == nil || issue.Fields.Status.Name == "" {
		return models.Ticket{}, fmt.Errorf("issue %s has no status", issue.Key)
	}

	return models.Ticket{
		Key:     issue.Key,
		Type:    issue.Fields.Type.Name,
		Summary: issue.Fields.Summary,
		Status:  issue.Fields.Status.Name,
	}, nil
}

// statusCode is nil-safe against transport-level failures that produce no
// HTTP response.
func statusCode(resp *jira.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
