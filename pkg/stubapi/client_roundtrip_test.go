package stubapi_test

import (
	"context"
	"net/http/httptest"
	"strings"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/format"
	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/stubapi"
	"reels-dash-go/pkg/stubapi/handlers"
	"reels-dash-go/pkg/stubapi/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client against the stub API", func() {
	for _, envelope := range []handlers.Envelope{handlers.EnvelopeInline, handlers.EnvelopeWrapped, handlers.EnvelopeMixed} {
		envelope := envelope

		Context("with the "+string(envelope)+" envelope", func() {
			var (
				ctx context.Context
				srv *httptest.Server
				c   *client.Client
				st  *store.Store
			)

			BeforeEach(func() {
				ctx = context.Background()
				st = store.New()
				server := stubapi.NewServer(st, stubapi.Options{Envelope: envelope})
				srv = httptest.NewServer(server.Router)
				c = client.NewClient(srv.URL)
			})

			AfterEach(func() {
				srv.Close()
			})

			It("round-trips a created job through the job list", func() {
				created, err := c.CreateJob(ctx, models.CreateJobParams{
					JobName:     "round trip",
					ProfileURLs: []string{"https://facebook.com/a", "https://facebook.com/b"},
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(created.JobID).NotTo(BeEmpty())

				list, err := c.GetJobs(ctx, models.ListJobsParams{})
				Expect(err).NotTo(HaveOccurred())
				Expect(list.Jobs).To(HaveLen(1))

				job := list.Jobs[0]
				Expect(job.ID).To(Equal(created.JobID))
				Expect(job.ProfileURLs).To(HaveLen(2))
				Expect(job.Status).To(BeElementOf(models.JobStatusQueued, models.JobStatusProcessing))
				Expect(list.Pagination.Total).To(Equal(1))
			})

			It("fetches a single job and cancels it", func() {
				created, err := c.CreateJob(ctx, models.CreateJobParams{
					JobName:     "to cancel",
					ProfileURLs: []string{"https://facebook.com/a"},
				})
				Expect(err).NotTo(HaveOccurred())

				job, err := c.GetJob(ctx, created.JobID)
				Expect(err).NotTo(HaveOccurred())
				Expect(job.Name).To(Equal("to cancel"))

				msg, err := c.DeleteJob(ctx, created.JobID)
				Expect(err).NotTo(HaveOccurred())
				Expect(msg).To(ContainSubstring("cancelled"))

				job, err = c.GetJob(ctx, created.JobID)
				Expect(err).NotTo(HaveOccurred())
				Expect(job.Status).To(Equal(models.JobStatusCancelled))
			})

			It("reports a missing job as an HTTP error", func() {
				_, err := c.GetJob(ctx, "does-not-exist")
				Expect(client.IsHTTP(err)).To(BeTrue())
				Expect(client.StatusCode(err)).To(Equal(404))
			})

			It("rejects non-Facebook URLs on job creation", func() {
				_, err := c.CreateJob(ctx, models.CreateJobParams{
					JobName:     "bad",
					ProfileURLs: []string{"https://example.com/a"},
				})
				Expect(client.IsHTTP(err)).To(BeTrue())
				Expect(client.StatusCode(err)).To(Equal(400))
			})

			It("validates profiles in submitted order", func() {
				res, err := c.ValidateProfiles(ctx, []string{"https://facebook.com/b", "nope", "https://facebook.com/a"})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.ValidURLs).To(Equal([]string{"https://facebook.com/b", "https://facebook.com/a"}))
				Expect(res.InvalidURLs).To(Equal([]string{"nope"}))
				Expect(res.Validation["nope"].Error).NotTo(BeEmpty())
			})

			It("serves seeded results, stats and exports", func() {
				store.Seed(st)

				results, err := c.GetResults(ctx, models.ListResultsParams{})
				Expect(err).NotTo(HaveOccurred())
				Expect(results.Results).To(HaveLen(3))

				first := results.Results[0]
				Expect(first.Success).To(BeTrue())
				one, err := c.GetResult(ctx, first.ProfileID)
				Expect(err).NotTo(HaveOccurred())
				Expect(one.ProfileURL).To(Equal(first.ProfileURL))
				Expect(format.ComputeSummaryStats(one.Data).TotalReels).To(Equal(len(first.Data.Reels)))

				stats, err := c.GetStats(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(stats.Stats.TotalJobs).To(Equal(1))
				Expect(stats.Stats.CompletedJobs).To(Equal(1))
				Expect(stats.Stats.TotalProfilesProcessed).To(Equal(3))

				jobs, err := c.GetJobs(ctx, models.ListJobsParams{Status: models.JobStatusCompleted})
				Expect(err).NotTo(HaveOccurred())
				Expect(jobs.Jobs).To(HaveLen(1))
				Expect(jobs.Jobs[0].Progress.Current).To(Equal(3))
				Expect(*jobs.Jobs[0].Results[0].Data.Reels[0].ViewCountNumeric).To(BeNumerically("==", 1250))

				csv, err := c.ExportResults(ctx, jobs.Jobs[0].ID, client.ExportCSV)
				Expect(err).NotTo(HaveOccurred())
				Expect(strings.HasPrefix(string(csv), "Profile URL,")).To(BeTrue())

				_, err = c.ExportResults(ctx, "missing", client.ExportJSON)
				Expect(client.IsExport(err)).To(BeTrue())
			})

			It("reports health, status, config and logs", func() {
				h, err := c.GetMonitoringHealth(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(h.Status).To(Equal("healthy"))
				Expect(h.Memory.HeapUsed).To(BeNumerically(">", 0))

				basic, err := c.GetHealth(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(basic.Version).To(Equal(stubapi.Version))

				status, err := c.GetStatus(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(status.Status).To(Equal("running"))

				cfg, err := c.GetConfig(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.MaxConcurrentProfiles).To(Equal(5))

				logs, err := c.GetLogs(ctx, 10)
				Expect(err).NotTo(HaveOccurred())
				Expect(logs.RequestedLines).To(Equal(10))
				Expect(len(logs.Logs)).To(BeNumerically("<=", 10))
				Expect(logs.Logs).NotTo(BeEmpty())
			})

			It("answers the legacy scrape endpoint with an HTTP error", func() {
				_, err := c.ScrapeProfile(ctx, models.ScrapeParams{ProfileURL: "https://facebook.com/a"})
				Expect(client.IsHTTP(err)).To(BeTrue())
				Expect(client.StatusCode(err)).To(Equal(501))
			})
		})
	}
})
