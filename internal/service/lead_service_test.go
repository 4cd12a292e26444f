package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/store"
)

func newTestLeadService(t *testing.T) (*LeadService, *AttachmentService) {
	t.Helper()
	attachments, _ := newTestAttachmentService(t)
	counters := NewCounterService(store.NewMemoryCounters(nil), DefaultLeadCategories())
	return NewLeadService(counters, attachments, NewLinkBuilder("6381865341"), "Rishidar"), attachments
}

func validLead() LeadInput {
	return LeadInput{
		CategoryIDs:  []string{"1", "3"},
		MinBudget:    500,
		MaxBudget:    2000,
		StartDate:    "2024-05-01",
		EndDate:      "2024-05-20",
		Requirements: "Edit two reels",
	}
}

func TestLeadMessage(t *testing.T) {
	msg := LeadMessage("Rishidar", []string{"Video Editor", "Web Developer"}, models.Lead{
		MinBudget:    500,
		MaxBudget:    2000,
		StartDate:    "2024-05-01",
		EndDate:      "2024-05-20",
		Requirements: "Edit two reels",
	})

	expected := "Hi Rishidar,\n\nI'd like to work with:\nVideo Editor\nWeb Developer\n\n" +
		"Budget Range: ₹500 - ₹2000\n\nTimeline:\nStart: 2024-05-01\nEnd: 2024-05-20\n\n" +
		"Requirements:\nEdit two reels"
	assert.Equal(t, expected, msg)
}

func TestLeadService_Compose(t *testing.T) {
	svc, _ := newTestLeadService(t)

	link, err := svc.Compose(context.Background(), uuid.New(), validLead())
	require.NoError(t, err)

	assert.Contains(t, link.Message, "Video Editor\nWeb Developer")
	require.True(t, strings.HasPrefix(link.URL, "https://wa.me/6381865341?text="))

	u, err := url.Parse(link.URL)
	require.NoError(t, err)
	assert.Equal(t, link.Message, u.Query().Get("text"))
	assert.NotContains(t, link.URL, "attached_file")
}

func TestLeadService_ComposeWithAttachments(t *testing.T) {
	svc, attachments := newTestLeadService(t)
	ctx := context.Background()
	session := uuid.New()

	att, err := attachments.Upload(ctx, session, "mood board.png", pngFile())
	require.NoError(t, err)

	in := validLead()
	in.AttachmentIDs = []uuid.UUID{att.ID}

	link, err := svc.Compose(ctx, session, in)
	require.NoError(t, err)

	u, err := url.Parse(link.URL)
	require.NoError(t, err)
	assert.Equal(t, "mood_board.png", u.Query().Get("attached_file"))
	assert.Equal(t, attachments.PublicURL(att), u.Query().Get("file_url"))

	_, err = svc.Compose(ctx, uuid.New(), in)
	assert.ErrorIs(t, err, apperror.ErrAttachmentNotFound)
}

func TestLeadService_Validation(t *testing.T) {
	svc, _ := newTestLeadService(t)
	ctx := context.Background()

	cases := map[string]func(*LeadInput){
		"no categories":       func(in *LeadInput) { in.CategoryIDs = nil },
		"blank categories":    func(in *LeadInput) { in.CategoryIDs = []string{" ", ""} },
		"min below 200":       func(in *LeadInput) { in.MinBudget = 199 },
		"max above 200000":    func(in *LeadInput) { in.MaxBudget = 200001 },
		"min above max":       func(in *LeadInput) { in.MinBudget, in.MaxBudget = 3000, 2000 },
		"bad date":            func(in *LeadInput) { in.StartDate = "01/05/2024" },
		"end before start":    func(in *LeadInput) { in.StartDate, in.EndDate = "2024-06-01", "2024-05-01" },
		"requirements length": func(in *LeadInput) { in.Requirements = strings.Repeat("a", 5001) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validLead()
			mutate(&in)
			_, err := svc.Compose(ctx, uuid.New(), in)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err), err.Error())
		})
	}
}

func TestLeadService_BudgetBounds(t *testing.T) {
	svc, _ := newTestLeadService(t)

	in := validLead()
	in.MinBudget, in.MaxBudget = 200, 200000
	_, err := svc.Compose(context.Background(), uuid.New(), in)
	assert.NoError(t, err)
}

func TestLeadService_DuplicateAndUnknownCategories(t *testing.T) {
	svc, _ := newTestLeadService(t)
	ctx := context.Background()

	in := validLead()
	in.CategoryIDs = []string{"2", "2", " 2 "}
	link, err := svc.Compose(ctx, uuid.New(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(link.Message, "Graphic Designer"))

	in.CategoryIDs = []string{"42"}
	_, err = svc.Compose(ctx, uuid.New(), in)
	assert.ErrorIs(t, err, ErrLeadCategoryNotFound)
}

func TestLeadService_OptionalDates(t *testing.T) {
	svc, _ := newTestLeadService(t)

	in := validLead()
	in.StartDate, in.EndDate = "", ""
	link, err := svc.Compose(context.Background(), uuid.New(), in)
	require.NoError(t, err)
	assert.Contains(t, link.Message, "Start: \nEnd: \n")
}
