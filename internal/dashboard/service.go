package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"telemarketing/adapters/charts"
	"telemarketing/adapters/excel"
	"telemarketing/domain/dataset"
	"telemarketing/internal"
	"telemarketing/internal/analysis"
	"telemarketing/internal/errors"
	"telemarketing/internal/session"

	"golang.org/x/sync/semaphore"
)

const (
	RawChartTitle      = "Raw data"
	FilteredChartTitle = "Filtered data"
)

// Config holds the dashboard's analysis settings
type Config struct {
	OutcomeColumn       string
	PreviewRows         int
	MaxConcurrentParses int64
	Fields              []FilterField
}

// Result is the outcome of one filter-and-aggregate pass, without presentation
type Result struct {
	Raw          *dataset.Table
	Filtered     *dataset.Table
	Spec         dataset.FilterSpec
	RawDist      dataset.OutcomeDistribution
	FilteredDist dataset.OutcomeDistribution
	Summaries    []analysis.ColumnSummary
	Comparison   *analysis.Comparison
}

// Chart is a rendered bar chart
type Chart struct {
	Title        string
	Distribution dataset.OutcomeDistribution
	Image        template.URL
}

// View is everything the page needs for one render
type View struct {
	Filename      string
	HasData       bool
	OutcomeColumn string
	Columns       []string
	Preview       [][]string
	TotalRows     int
	FilteredRows  int
	Widgets       []Widget
	RawChart      *Chart
	FilteredChart *Chart
	Summaries     []analysis.ColumnSummary
	Comparison    string
	Warnings      []string
	Errors        []string
}

// AddError appends a user-visible error message
func (v *View) AddError(err error) {
	v.Errors = append(v.Errors, errors.UserMessage(err))
}

// Service runs the load, filter, aggregate and render pipeline for a session
type Service struct {
	config   Config
	reader   *excel.DataReader
	renderer *charts.BarChartRenderer
	parseSem *semaphore.Weighted
	logger   *internal.Logger
}

// NewService wires the dashboard pipeline
func NewService(config Config, reader *excel.DataReader, renderer *charts.BarChartRenderer) *Service {
	if len(config.Fields) == 0 {
		config.Fields = DefaultFilterFields
	}
	if config.MaxConcurrentParses <= 0 {
		config.MaxConcurrentParses = 1
	}
	return &Service{
		config:   config,
		reader:   reader,
		renderer: renderer,
		parseSem: semaphore.NewWeighted(config.MaxConcurrentParses),
		logger:   internal.DefaultLogger.With("Dashboard"),
	}
}

// Fields returns the filter fields the service offers
func (s *Service) Fields() []FilterField {
	return s.config.Fields
}

// Upload parses src and makes it the session's raw table. On any error the
// session keeps whatever it held before.
func (s *Service) Upload(ctx context.Context, sess *session.Session, filename string, src io.Reader) error {
	if err := s.parseSem.Acquire(ctx, 1); err != nil {
		return errors.Wrap(err, "upload cancelled while waiting for a parser")
	}
	defer s.parseSem.Release(1)

	table, err := s.reader.Load(filename, src)
	if err != nil {
		s.logger.Warn("session %s: upload %s failed: %v", sess.ID, filename, err)
		return err
	}
	if table.IsEmpty() {
		return errors.MissingData(fmt.Sprintf("%s has no data rows", filename))
	}

	sess.SetData(filename, table)
	s.logger.Info("session %s: loaded %s (%d rows, %d columns)", sess.ID, filename, table.Len(), len(table.Columns()))
	return nil
}

// SpecFromSelections builds a filter spec from submitted widget values. Only
// offered fields present in table are considered. When applied is false,
// nothing was submitted and every field is a wildcard; otherwise a field with
// no submitted values gets an empty selection.
func (s *Service) SpecFromSelections(table *dataset.Table, selections map[string][]string, applied bool) dataset.FilterSpec {
	spec := make(dataset.FilterSpec)
	for _, field := range s.config.Fields {
		if table == nil || !table.HasColumn(field.Column) {
			continue
		}
		values, ok := selections[field.Column]
		switch {
		case !applied:
			spec[field.Column] = []string{dataset.Wildcard}
		case !ok:
			spec[field.Column] = []string{}
		default:
			spec[field.Column] = values
		}
	}
	return spec
}

// Analyze filters raw with spec and aggregates both sides. The raw
// distribution is taken from the session cache when sess is given.
func (s *Service) Analyze(sess *session.Session, raw *dataset.Table, spec dataset.FilterSpec) (*Result, error) {
	if raw.IsEmpty() {
		return nil, errors.MissingData("Upload a CSV or Excel file to start.")
	}

	filtered, err := analysis.ApplyFilters(raw, spec)
	if err != nil {
		return nil, err
	}

	compute := func(t *dataset.Table) (dataset.OutcomeDistribution, error) {
		return analysis.OutcomeDistribution(t, s.config.OutcomeColumn)
	}
	var rawDist dataset.OutcomeDistribution
	if sess != nil {
		rawDist, err = sess.RawDistribution(raw, compute)
	} else {
		rawDist, err = compute(raw)
	}
	if err != nil {
		return nil, err
	}

	filteredDist, err := compute(filtered)
	if err != nil {
		return nil, err
	}

	summaries, err := analysis.SummarizeNumeric(filtered)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Raw:          raw,
		Filtered:     filtered,
		Spec:         spec,
		RawDist:      rawDist,
		FilteredDist: filteredDist,
		Summaries:    summaries,
	}
	if cmp, ok := analysis.CompareDistributions(rawDist, filteredDist); ok {
		result.Comparison = &cmp
	}
	return result, nil
}

// Render runs one recomputation pass for the session. A nil spec reuses the
// session's last filters, or wildcards for a fresh upload.
func (s *Service) Render(sess *session.Session, spec dataset.FilterSpec) *View {
	filename, raw := sess.Data()
	view := &View{
		Filename:      filename,
		OutcomeColumn: s.config.OutcomeColumn,
	}
	if raw.IsEmpty() {
		return view
	}
	view.HasData = true

	if spec == nil {
		spec = sess.Filters()
	}
	if spec == nil {
		spec = s.SpecFromSelections(raw, nil, false)
	}
	sess.SetFilters(spec)

	view.Columns = raw.Columns()
	view.Preview = raw.Head(s.config.PreviewRows).Rows()
	view.TotalRows = raw.Len()

	for _, field := range s.config.Fields {
		if !raw.HasColumn(field.Column) {
			continue
		}
		widget, err := buildWidget(raw, field, spec)
		if err != nil {
			view.AddError(err)
			continue
		}
		view.Widgets = append(view.Widgets, widget)
	}

	result, err := s.Analyze(sess, raw, spec)
	if err != nil {
		s.logger.Warn("session %s: analysis failed: %v", sess.ID, err)
		view.AddError(err)
		return view
	}
	view.FilteredRows = result.Filtered.Len()
	view.Summaries = result.Summaries
	if result.Comparison != nil {
		view.Comparison = result.Comparison.Describe()
	}

	view.RawChart = s.chart(view, RawChartTitle, result.RawDist)
	if result.Filtered.IsEmpty() {
		view.Warnings = append(view.Warnings, errors.UserMessage(errors.EmptyResult("No rows match the selected filters.")))
		return view
	}
	view.FilteredChart = s.chart(view, FilteredChartTitle, result.FilteredDist)
	return view
}

// chart renders dist, or records a warning and returns nil when there is nothing to draw
func (s *Service) chart(view *View, title string, dist dataset.OutcomeDistribution) *Chart {
	if dist.IsEmpty() {
		view.Warnings = append(view.Warnings, fmt.Sprintf("%s: no %q values to plot.", title, dist.Column))
		return nil
	}
	uri, err := s.renderer.RenderDataURI(title, dist)
	if err != nil {
		s.logger.Error("chart %q failed: %v", title, err)
		view.AddError(err)
		return nil
	}
	return &Chart{
		Title:        title,
		Distribution: dist,
		Image:        template.URL(uri),
	}
}

// Export returns the session's filtered table as .xlsx bytes
func (s *Service) Export(sess *session.Session) ([]byte, error) {
	_, raw := sess.Data()
	if raw.IsEmpty() {
		return nil, errors.MissingData("There is no data to export yet.")
	}

	spec := sess.Filters()
	if spec == nil {
		spec = s.SpecFromSelections(raw, nil, false)
	}
	filtered, err := analysis.ApplyFilters(raw, spec)
	if err != nil {
		return nil, err
	}
	return excel.ToExcel(filtered)
}
