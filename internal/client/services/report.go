package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/reportgen"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/reports"
	"github.com/dmitrijs2005/distincto/internal/common"
	"github.com/google/uuid"
)

// ReportService generates and stores reports. Reports are never edited.
type ReportService struct {
	repo    reports.Repository
	journal *JournalService
	food    *FoodService
	gen     reportgen.Generator
	now     func() time.Time
}

func NewReportService(repo reports.Repository, journal *JournalService, food *FoodService, gen reportgen.Generator) *ReportService {
	return &ReportService{
		repo:    repo,
		journal: journal,
		food:    food,
		gen:     gen,
		now:     time.Now,
	}
}

// Generate builds a report of type typ over the entries and food items of
// childName, or of every child when childName is empty or common.AllChildren.
// GeneratedFrom records the ids of the entries used, newest first.
func (s *ReportService) Generate(ctx context.Context, typ models.ReportType, childName string) (*models.Report, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidReportType, typ)
	}
	if childName == "" {
		childName = common.AllChildren
	}
	filter := childName
	if filter == common.AllChildren {
		filter = ""
	}

	entries, err := s.journal.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.food.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	content, err := s.gen.Generate(ctx, reportgen.Request{
		Type:           typ,
		ChildName:      childName,
		JournalEntries: entries,
		FoodItems:      items,
	})
	if err != nil {
		return nil, err
	}

	from := make([]string, 0, len(entries))
	for _, e := range entries {
		from = append(from, e.ID)
	}

	r := &models.Report{
		ID:            uuid.NewString(),
		Type:          typ,
		Content:       content,
		Timestamp:     s.now().UnixMilli(),
		ChildName:     childName,
		GeneratedFrom: from,
	}
	if err := s.repo.Put(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReportService) Get(ctx context.Context, id string) (*models.Report, error) {
	return s.repo.Get(ctx, id)
}

// List returns reports for childName together with the all-children ones,
// newest first.
func (s *ReportService) List(ctx context.Context, childName string) ([]*models.Report, error) {
	rs, err := s.repo.GetByChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Timestamp > rs[j].Timestamp
	})
	return rs, nil
}

func (s *ReportService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// TestConnection checks the report generator.
func (s *ReportService) TestConnection(ctx context.Context) error {
	return s.gen.TestConnection(ctx)
}
