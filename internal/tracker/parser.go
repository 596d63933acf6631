package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

type issuesResponse struct {
	Issues     []issuePayload `json:"issues"`
	TotalCount int            `json:"total_count"`
}

type issuePayload struct {
	ID           int              `json:"id"`
	Subject      string           `json:"subject"`
	Status       namedRef         `json:"status"`
	Author       namedRef         `json:"author"`
	Category     *namedRef        `json:"category"`
	CreatedOn    string           `json:"created_on"`
	UpdatedOn    string           `json:"updated_on"`
	CustomFields []customField    `json:"custom_fields"`
	Journals     []journalPayload `json:"journals"`
}

type namedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type customField struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// StringValue normalizes the custom field value; Redmine emits strings for
// single-value fields and arrays for multi-value ones.
func (f customField) StringValue() string {
	var single string
	if err := json.Unmarshal(f.Value, &single); err == nil {
		return single
	}
	var multi []string
	if err := json.Unmarshal(f.Value, &multi); err == nil && len(multi) > 0 {
		return multi[0]
	}
	return ""
}

type journalPayload struct {
	ID        int             `json:"id"`
	CreatedOn string          `json:"created_on"`
	Details   []journalDetail `json:"details"`
}

type journalDetail struct {
	Property string `json:"property"`
	Name     string `json:"name"`
	NewValue string `json:"new_value"`
}

type statusesResponse struct {
	IssueStatuses []namedRef `json:"issue_statuses"`
}

type userResponse struct {
	User struct {
		ID           int           `json:"id"`
		CustomFields []customField `json:"custom_fields"`
	} `json:"user"`
}

// snapshotFromIssue maps one tracker issue onto the evaluation input type.
func snapshotFromIssue(issue *issuePayload, customer string, inProgressID, resolvedID int, estimateField string) (domain.TicketSnapshot, error) {
	created, err := parseTrackerTime(issue.CreatedOn)
	if err != nil {
		return domain.TicketSnapshot{}, fmt.Errorf("issue %d: bad created_on %q", issue.ID, issue.CreatedOn)
	}

	snapshot := domain.TicketSnapshot{
		ID:           issue.ID,
		CustomerName: customer,
		Author:       issue.Author.Name,
		Status:       issue.Status.Name,
		CreatedAt:    created,
	}
	if issue.Category != nil {
		snapshot.Category = issue.Category.Name
	}
	if updated, err := parseTrackerTime(issue.UpdatedOn); err == nil {
		snapshot.UpdatedAt = &updated
	}

	snapshot.EnteredInProgressAt, snapshot.ResolvedAt = milestoneTimes(issue.Journals, inProgressID, resolvedID)

	for _, field := range issue.CustomFields {
		if field.Name != estimateField {
			continue
		}
		if raw := field.StringValue(); raw != "" {
			if estimate, err := time.Parse("2006-01-02", raw); err == nil {
				snapshot.ExternallyEstimatedDate = &estimate
			}
		}
		break
	}

	return snapshot, nil
}

// milestoneTimes walks the issue journals oldest-first and records the first
// transition into each tracked status.
func milestoneTimes(journals []journalPayload, inProgressID, resolvedID int) (inProgress, resolved *time.Time) {
	for _, journal := range journals {
		if inProgress != nil && resolved != nil {
			break
		}
		for _, detail := range journal.Details {
			if detail.Property != "attr" || detail.Name != "status_id" {
				continue
			}
			target, err := strconv.Atoi(detail.NewValue)
			if err != nil {
				continue
			}
			when, err := parseTrackerTime(journal.CreatedOn)
			if err != nil {
				continue
			}
			if inProgress == nil && target == inProgressID {
				t := when
				inProgress = &t
			}
			if resolved == nil && target == resolvedID {
				t := when
				resolved = &t
			}
		}
	}
	return inProgress, resolved
}

func parseTrackerTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	return time.Parse(time.RFC3339, value)
}
