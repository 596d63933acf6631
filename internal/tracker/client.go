// Package tracker fetches ticket snapshots from a Redmine-compatible issue
// tracker over its REST API. It owns all tracker I/O so the SLA core stays
// free of blocking calls.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/lcibils/monitor-neuratek/internal/config"
	"github.com/lcibils/monitor-neuratek/internal/domain"
	apperrors "github.com/lcibils/monitor-neuratek/pkg/util"
)

const pageSize = 100

// Client talks to the Redmine REST API.
type Client struct {
	cfg        config.RedmineConfig
	httpClient *http.Client
	logger     *zap.Logger

	mu sync.Mutex
	// authorCustomer caches the customer custom field per author id; user
	// records change far less often than tickets.
	authorCustomer map[int]string
}

// NewClient constructs a tracker client.
func NewClient(cfg config.RedmineConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: cfg.Timeout()},
		logger:         logger,
		authorCustomer: make(map[int]string),
	}
}

// FetchSnapshots retrieves the configured issue set with journals and maps
// each issue to a TicketSnapshot.
func (c *Client) FetchSnapshots(ctx context.Context) ([]domain.TicketSnapshot, error) {
	statuses, err := c.statusIDs(ctx)
	if err != nil {
		return nil, err
	}
	inProgressID, ok := statuses[c.cfg.InProgressStatus]
	if !ok {
		return nil, apperrors.NewConfigurationError("in-progress status not found in tracker", map[string]any{
			"status": c.cfg.InProgressStatus,
		})
	}
	resolvedID, ok := statuses[c.cfg.ResolvedStatus]
	if !ok {
		return nil, apperrors.NewConfigurationError("resolved status not found in tracker", map[string]any{
			"status": c.cfg.ResolvedStatus,
		})
	}

	var snapshots []domain.TicketSnapshot
	offset := 0
	for {
		page, total, err := c.fetchIssuePage(ctx, offset)
		if err != nil {
			return nil, err
		}
		for i := range page {
			issue := &page[i]
			customer, err := c.customerForAuthor(ctx, issue.Author.ID)
			if err != nil {
				c.logger.Warn("author lookup failed",
					zap.Int("issue_id", issue.ID),
					zap.Int("author_id", issue.Author.ID),
					zap.Error(err))
				customer = ""
			}
			snapshot, err := snapshotFromIssue(issue, customer, inProgressID, resolvedID, c.cfg.EstimateField)
			if err != nil {
				c.logger.Warn("skipping unparsable issue", zap.Int("issue_id", issue.ID), zap.Error(err))
				continue
			}
			snapshots = append(snapshots, snapshot)
		}
		offset += len(page)
		if offset >= total || len(page) == 0 {
			break
		}
	}
	return snapshots, nil
}

func (c *Client) fetchIssuePage(ctx context.Context, offset int) ([]issuePayload, int, error) {
	params := url.Values{}
	params.Set("status_id", c.cfg.StatusFilter)
	params.Set("include", "journals")
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("offset", strconv.Itoa(offset))
	if c.cfg.ProjectID != "" {
		params.Set("project_id", c.cfg.ProjectID)
	}

	var payload issuesResponse
	if err := c.getJSON(ctx, "/issues.json?"+params.Encode(), &payload); err != nil {
		return nil, 0, err
	}
	return payload.Issues, payload.TotalCount, nil
}

func (c *Client) statusIDs(ctx context.Context) (map[string]int, error) {
	var payload statusesResponse
	if err := c.getJSON(ctx, "/issue_statuses.json", &payload); err != nil {
		return nil, err
	}
	statuses := make(map[string]int, len(payload.IssueStatuses))
	for _, s := range payload.IssueStatuses {
		statuses[s.Name] = s.ID
	}
	return statuses, nil
}

func (c *Client) customerForAuthor(ctx context.Context, authorID int) (string, error) {
	c.mu.Lock()
	cached, ok := c.authorCustomer[authorID]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	var payload userResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d.json", authorID), &payload); err != nil {
		return "", err
	}

	customer := ""
	for _, field := range payload.User.CustomFields {
		if field.Name == c.cfg.CustomerField {
			customer = field.StringValue()
			break
		}
	}

	c.mu.Lock()
	c.authorCustomer[authorID] = customer
	c.mu.Unlock()
	return customer, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Redmine-API-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUnavailable("tracker request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewUnavailable(fmt.Sprintf("tracker returned status %d for %s", resp.StatusCode, path), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tracker response for %s: %w", path, err)
	}
	return nil
}
