package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"reels-dash-go/pkg/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateJob submits a new scraping job. Inputs are checked locally first,
// so an invalid job never reaches the network.
func (c *Client) CreateJob(ctx context.Context, params models.CreateJobParams) (*models.CreateJobResponse, error) {
	const op = "create job"

	params.JobName = strings.TrimSpace(params.JobName)
	urls := make([]string, 0, len(params.ProfileURLs))
	for _, u := range params.ProfileURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	params.ProfileURLs = urls
	params.TargetDate = strings.TrimSpace(params.TargetDate)

	if err := validate.Struct(params); err != nil {
		return nil, newValidationError(op, describeValidation(err))
	}

	var resp models.CreateJobResponse
	if err := c.doJSONRequest(ctx, op, http.MethodPost, "/api/jobs", params, "jobId", &resp); err != nil {
		return nil, err
	}
	if resp.JobID == "" && resp.Job != nil {
		resp.JobID = resp.Job.ID
	}
	return &resp, nil
}

// GetJobs lists jobs. Zero-valued filters are left out of the query.
func (c *Client) GetJobs(ctx context.Context, params models.ListJobsParams) (*models.JobList, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	var list models.JobList
	if err := c.doGetRequest(ctx, "get jobs", "/api/jobs", q, "jobs", &list); err != nil {
		return nil, err
	}
	if list.Jobs == nil {
		list.Jobs = []models.Job{}
	}
	return &list, nil
}

// GetJob fetches a single job with its results so far
func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	const op = "get job"
	if strings.TrimSpace(id) == "" {
		return nil, newValidationError(op, "job ID is required")
	}

	var job models.Job
	if err := c.doGetRequest(ctx, op, "/api/jobs/"+pathEscape(id), nil, "id", &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob sends DELETE /api/jobs/:id. Whether that cancels or removes the
// job is the server's call; its message is returned verbatim.
func (c *Client) DeleteJob(ctx context.Context, id string) (string, error) {
	const op = "delete job"
	if strings.TrimSpace(id) == "" {
		return "", newValidationError(op, "job ID is required")
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.doJSONRequest(ctx, op, http.MethodDelete, "/api/jobs/"+pathEscape(id), nil, "message", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// describeValidation turns validator errors into one readable sentence.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.StructField() {
		case "JobName":
			msgs = append(msgs, "job name is required")
		case "ProfileURLs":
			msgs = append(msgs, "at least one profile URL is required")
		case "Concurrency":
			msgs = append(msgs, "concurrency must be at least 1")
		case "ExtractionMode":
			msgs = append(msgs, fmt.Sprintf("extraction mode must be one of profile, main, comprehensive (got %q)", fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
