package reportgen

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
)

// Request is the input of one report generation.
type Request struct {
	Type           models.ReportType
	ChildName      string
	JournalEntries []*models.JournalEntry
	FoodItems      []*models.FoodItem
}

type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	TestConnection(ctx context.Context) error
}

//go:embed canned/*.md
var cannedFS embed.FS

var canned = template.Must(template.ParseFS(cannedFS, "canned/*.md"))

type CannedGenerator struct{}

func NewCannedGenerator() *CannedGenerator {
	return &CannedGenerator{}
}

type cannedData struct {
	Child     string
	Entries   int
	Foods     int
	SafeFoods int
}

func (g *CannedGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if !req.Type.Valid() {
		return "", fmt.Errorf("failed to generate report: %w: %q", common.ErrInvalidReportType, req.Type)
	}

	data := cannedData{
		Entries: len(req.JournalEntries),
		Foods:   len(req.FoodItems),
	}
	if req.ChildName != common.AllChildren {
		data.Child = req.ChildName
	}
	for _, f := range req.FoodItems {
		if f.Category == models.FoodCategorySafe {
			data.SafeFoods++
		}
	}

	var buf bytes.Buffer
	if err := canned.ExecuteTemplate(&buf, string(req.Type)+".md", data); err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", req.Type, err)
	}
	return buf.String(), nil
}

func (g *CannedGenerator) TestConnection(ctx context.Context) error {
	return nil
}
